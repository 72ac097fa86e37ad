package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/shelter-adoption-api/internal/dto"
	"github.com/noah-isme/shelter-adoption-api/internal/models"
	appErrors "github.com/noah-isme/shelter-adoption-api/pkg/errors"
)

const (
	dashboardCacheKey     = "dashboard:adoptions"
	dashboardCachePattern = "dashboard:*"
)

type adoptionStatsReader interface {
	CountByStatus(ctx context.Context) ([]models.StatusCount, error)
	CountPendingByVetReview(ctx context.Context) ([]models.StatusCount, error)
	RecentApprovals(ctx context.Context, limit int) ([]models.AdoptionRequest, error)
}

type dogStatsReader interface {
	CountByStatus(ctx context.Context) ([]models.StatusCount, error)
}

type followUpProgressReader interface {
	Progress(ctx context.Context) (*models.FollowUpProgress, error)
}

// DashboardServiceConfig tunes dashboard behaviour.
type DashboardServiceConfig struct {
	CacheTTL          time.Duration
	RecentApprovalMax int
}

// DashboardService composes the admin adoption overview.
type DashboardService struct {
	adoptions adoptionStatsReader
	dogs      dogStatsReader
	followUps followUpProgressReader
	cache     *CacheService
	logger    *zap.Logger
	now       func() time.Time
	cfg       DashboardServiceConfig
}

// DashboardServiceParams groups constructor dependencies.
type DashboardServiceParams struct {
	Adoptions adoptionStatsReader
	Dogs      dogStatsReader
	FollowUps followUpProgressReader
	Cache     *CacheService
	Logger    *zap.Logger
	Config    DashboardServiceConfig
}

// NewDashboardService constructs a DashboardService with sane defaults.
func NewDashboardService(params DashboardServiceParams) *DashboardService {
	cfg := params.Config
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	if cfg.RecentApprovalMax <= 0 {
		cfg.RecentApprovalMax = 5
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		adoptions: params.Adoptions,
		dogs:      params.Dogs,
		followUps: params.FollowUps,
		cache:     params.Cache,
		logger:    logger,
		now:       time.Now,
		cfg:       cfg,
	}
}

// Adoptions returns the admin dashboard and whether it was served from cache.
func (s *DashboardService) Adoptions(ctx context.Context) (*dto.AdoptionDashboardResponse, bool, error) {
	var cached dto.AdoptionDashboardResponse
	if s.cache.Get(ctx, dashboardCacheKey, &cached) {
		return &cached, true, nil
	}

	summary, err := s.compose(ctx)
	if err != nil {
		return nil, false, err
	}
	s.cache.Set(ctx, dashboardCacheKey, summary, s.cfg.CacheTTL)
	return summary, false, nil
}

func (s *DashboardService) compose(ctx context.Context) (*dto.AdoptionDashboardResponse, error) {
	requestCounts, err := s.adoptions.CountByStatus(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count adoption requests")
	}
	vetCounts, err := s.adoptions.CountPendingByVetReview(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count vet reviews")
	}
	dogCounts, err := s.dogs.CountByStatus(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count dogs")
	}
	recent, err := s.adoptions.RecentApprovals(ctx, s.cfg.RecentApprovalMax)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load recent approvals")
	}

	resp := &dto.AdoptionDashboardResponse{
		RecentApprovals: make([]dto.RecentAdoption, 0, len(recent)),
		GeneratedAt:     s.now().UTC(),
	}
	for _, row := range requestCounts {
		resp.Requests.Total += row.Count
		switch models.AdoptionStatus(row.Status) {
		case models.AdoptionStatusPending:
			resp.Requests.Pending = row.Count
		case models.AdoptionStatusApproved:
			resp.Requests.Approved = row.Count
		case models.AdoptionStatusRejected:
			resp.Requests.Rejected = row.Count
		}
	}
	for _, row := range vetCounts {
		switch models.VetReviewStatus(row.Status) {
		case models.VetReviewPending:
			resp.VetReview.Pending = row.Count
		case models.VetReviewCleared:
			resp.VetReview.Cleared = row.Count
		case models.VetReviewFlagged:
			resp.VetReview.Flagged = row.Count
		}
	}
	for _, row := range dogCounts {
		resp.Dogs.Total += row.Count
		switch models.DogStatus(row.Status) {
		case models.DogStatusAdoption:
			resp.Dogs.Adoption = row.Count
		case models.DogStatusTreatment:
			resp.Dogs.Treatment = row.Count
		case models.DogStatusAdopted:
			resp.Dogs.Adopted = row.Count
		}
	}
	for _, item := range recent {
		resp.RecentApprovals = append(resp.RecentApprovals, dto.RecentAdoption{
			AdoptionRequestID: item.ID,
			DogID:             item.DogID,
			AdopterName:       item.FullName,
			ApprovedAt:        item.DecidedAt,
		})
	}

	if s.followUps != nil {
		progress, err := s.followUps.Progress(ctx)
		if err != nil {
			s.logger.Warn("follow-up progress unavailable", zap.Error(err))
		} else if progress != nil {
			resp.FollowUps = *progress
		}
	}
	return resp, nil
}

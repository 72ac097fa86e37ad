package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/shelter-adoption-api/internal/dto"
	"github.com/noah-isme/shelter-adoption-api/internal/models"
	"github.com/noah-isme/shelter-adoption-api/internal/repository"
	appErrors "github.com/noah-isme/shelter-adoption-api/pkg/errors"
	"github.com/noah-isme/shelter-adoption-api/pkg/export"
)

type adoptionStore interface {
	Create(ctx context.Context, req *models.AdoptionRequest) error
	GetByID(ctx context.Context, id string) (*models.AdoptionRequest, error)
	ExistsForAdopterAndDog(ctx context.Context, adopterID, dogID string) (bool, error)
	List(ctx context.Context, filter models.AdoptionRequestFilter) ([]models.AdoptionRequest, int, error)
	ListAll(ctx context.Context, filter models.AdoptionRequestFilter) ([]models.AdoptionRequest, error)
	UpdateDetails(ctx context.Context, params repository.UpdateAdoptionParams) error
	Decide(ctx context.Context, params repository.DecisionParams) error
	UpdateVetReview(ctx context.Context, params repository.VetReviewParams) error
	Delete(ctx context.Context, id string) error
}

type dogReader interface {
	GetByID(ctx context.Context, id string) (*models.Dog, error)
}

type auditLogger interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

// CertificateScheduler pre-renders certificates for freshly approved adoptions.
type CertificateScheduler interface {
	Schedule(adoptionRequestID string)
}

// AdoptionService drives the adoption request lifecycle. A request starts pending and
// moves once, to approved or rejected; both are terminal.
type AdoptionService struct {
	repo         adoptionStore
	dogs         dogReader
	audit        auditLogger
	validator    *validator.Validate
	logger       *zap.Logger
	cache        *CacheService
	metrics      *MetricsService
	certificates CertificateScheduler
	csv          *export.CSVExporter
	now          func() time.Time
}

// AdoptionServiceOption configures the service.
type AdoptionServiceOption func(*AdoptionService)

// WithAdoptionCache invalidates the dashboard cache after every state change.
func WithAdoptionCache(cache *CacheService) AdoptionServiceOption {
	return func(s *AdoptionService) {
		s.cache = cache
	}
}

// WithAdoptionMetrics records lifecycle counters.
func WithAdoptionMetrics(metrics *MetricsService) AdoptionServiceOption {
	return func(s *AdoptionService) {
		s.metrics = metrics
	}
}

// WithCertificateScheduler hands approved requests to the certificate renderer.
func WithCertificateScheduler(scheduler CertificateScheduler) AdoptionServiceOption {
	return func(s *AdoptionService) {
		s.certificates = scheduler
	}
}

// NewAdoptionService constructs the service with defaults.
func NewAdoptionService(repo adoptionStore, dogs dogReader, audit auditLogger, validate *validator.Validate, logger *zap.Logger, opts ...AdoptionServiceOption) *AdoptionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	svc := &AdoptionService{
		repo:      repo,
		dogs:      dogs,
		audit:     audit,
		validator: validate,
		logger:    logger,
		csv:       export.NewCSVExporter(),
		now:       time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(svc)
		}
	}
	return svc
}

// Create files a new pending request for the calling adopter.
func (s *AdoptionService) Create(ctx context.Context, req dto.CreateAdoptionRequest, actor *models.JWTClaims) (*models.AdoptionRequest, error) {
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if actor.Role != models.RoleAdopter {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only adopters can request an adoption")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid adoption request payload")
	}
	if err := s.ensureDogAvailable(ctx, req.DogID); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsForAdopterAndDog(ctx, actor.UserID, req.DogID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check existing requests")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "you already requested this dog")
	}

	item := &models.AdoptionRequest{
		AdopterID:     actor.UserID,
		DogID:         req.DogID,
		FullName:      strings.TrimSpace(req.FullName),
		Email:         strings.TrimSpace(req.Email),
		Phone:         strings.TrimSpace(req.Phone),
		Address:       strings.TrimSpace(req.Address),
		AdopterStatus: req.AdopterStatus,
		HomeType:      req.HomeType,
		HasOtherPets:  req.HasOtherPets,
		Agreed:        req.Agreed,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "you already requested this dog")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create adoption request")
	}

	s.emitAudit(ctx, &models.AuditLog{
		UserID:     &actor.UserID,
		Action:     models.AuditActionAdoptionCreate,
		Resource:   "adoption_request",
		ResourceID: &item.ID,
		NewValues:  auditJSON(map[string]interface{}{"dogId": item.DogID, "requestStatus": item.RequestStatus}),
	})
	s.afterChange(ctx, "create")
	return item, nil
}

// Get returns a request visible to its adopter and to shelter staff.
func (s *AdoptionService) Get(ctx context.Context, id string, actor *models.JWTClaims) (*models.AdoptionRequest, error) {
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}
	item, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Role.IsStaff() && item.AdopterID != actor.UserID {
		return nil, appErrors.ErrForbidden
	}
	return item, nil
}

// List returns requests for staff queues.
func (s *AdoptionService) List(ctx context.Context, query dto.AdoptionQuery) ([]models.AdoptionRequest, *models.Pagination, error) {
	return s.list(ctx, models.AdoptionRequestFilter{Status: query.Status, VetReview: query.VetReview, DogID: query.DogID}, query.Page, query.PageSize)
}

// ListMine returns the caller's own requests.
func (s *AdoptionService) ListMine(ctx context.Context, query dto.AdoptionQuery, actor *models.JWTClaims) ([]models.AdoptionRequest, *models.Pagination, error) {
	if actor == nil {
		return nil, nil, appErrors.ErrUnauthorized
	}
	return s.list(ctx, models.AdoptionRequestFilter{Status: query.Status, AdopterID: actor.UserID}, query.Page, query.PageSize)
}

// ListByDog returns every request filed for one dog.
func (s *AdoptionService) ListByDog(ctx context.Context, dogID string, query dto.AdoptionQuery) ([]models.AdoptionRequest, *models.Pagination, error) {
	if strings.TrimSpace(dogID) == "" {
		return nil, nil, appErrors.Clone(appErrors.ErrValidation, "dogId is required")
	}
	return s.list(ctx, models.AdoptionRequestFilter{Status: query.Status, DogID: dogID}, query.Page, query.PageSize)
}

func (s *AdoptionService) list(ctx context.Context, filter models.AdoptionRequestFilter, page, pageSize int) ([]models.AdoptionRequest, *models.Pagination, error) {
	for _, status := range filter.Status {
		if status != models.AdoptionStatusPending && !status.IsTerminal() {
			return nil, nil, appErrors.Clone(appErrors.ErrValidation, "unknown status "+string(status))
		}
	}
	page, pageSize = normalisePage(page, pageSize)
	filter.Limit = pageSize
	filter.Offset = (page - 1) * pageSize
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list adoption requests")
	}
	if items == nil {
		items = []models.AdoptionRequest{}
	}
	return items, &models.Pagination{Page: page, PageSize: pageSize, TotalCount: total}, nil
}

var adoptionExportColumns = []export.Column{
	{Key: "id", Title: "ID"},
	{Key: "dogId", Title: "Dog ID"},
	{Key: "adopterId", Title: "Adopter ID"},
	{Key: "fullName", Title: "Full Name"},
	{Key: "email", Title: "Email"},
	{Key: "phone", Title: "Phone"},
	{Key: "homeType", Title: "Home Type"},
	{Key: "requestStatus", Title: "Status"},
	{Key: "vetReviewStatus", Title: "Vet Review"},
	{Key: "createdAt", Title: "Requested At"},
	{Key: "decidedAt", Title: "Decided At"},
}

// Export writes every matching request as CSV.
func (s *AdoptionService) Export(ctx context.Context, query dto.AdoptionQuery, w io.Writer) error {
	items, err := s.repo.ListAll(ctx, models.AdoptionRequestFilter{Status: query.Status, VetReview: query.VetReview, DogID: query.DogID})
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load adoption requests")
	}
	table := export.Table{Columns: adoptionExportColumns, Rows: make([]map[string]string, 0, len(items))}
	for _, item := range items {
		row := map[string]string{
			"id":              item.ID,
			"dogId":           item.DogID,
			"adopterId":       item.AdopterID,
			"fullName":        item.FullName,
			"email":           item.Email,
			"phone":           item.Phone,
			"homeType":        item.HomeType,
			"requestStatus":   string(item.RequestStatus),
			"vetReviewStatus": string(item.VetReview),
			"createdAt":       item.CreatedAt.UTC().Format(time.RFC3339),
		}
		if item.DecidedAt != nil {
			row["decidedAt"] = item.DecidedAt.UTC().Format(time.RFC3339)
		}
		table.Rows = append(table.Rows, row)
	}
	if err := s.csv.Write(w, table); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}
	return nil
}

// Update edits a pending request. Adopters may change their own contact and household
// details; admins may also move the request to another dog.
func (s *AdoptionService) Update(ctx context.Context, id string, req dto.UpdateAdoptionRequest, actor *models.JWTClaims) (*models.AdoptionRequest, error) {
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid update payload")
	}
	if req.IsEmpty() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "no fields to update")
	}
	item, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.OwnsOrAdmin(item.AdopterID) {
		return nil, appErrors.ErrForbidden
	}
	if req.DogID != nil && !actor.IsAdmin() {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only admins can move a request to another dog")
	}
	if item.RequestStatus.IsTerminal() {
		return nil, invalidTransition(item.RequestStatus)
	}
	if req.DogID != nil && *req.DogID != item.DogID {
		if err := s.ensureDogAvailable(ctx, *req.DogID); err != nil {
			return nil, err
		}
	}

	params := repository.UpdateAdoptionParams{
		ID:            item.ID,
		DogID:         req.DogID,
		FullName:      trimmed(req.FullName),
		Email:         trimmed(req.Email),
		Phone:         trimmed(req.Phone),
		Address:       trimmed(req.Address),
		AdopterStatus: req.AdopterStatus,
		HomeType:      req.HomeType,
		HasOtherPets:  req.HasOtherPets,
		UpdatedAt:     s.now().UTC(),
	}
	if err := s.repo.UpdateDetails(ctx, params); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, s.lostRace(ctx, id)
		case errors.Is(err, repository.ErrDuplicate):
			return nil, appErrors.Clone(appErrors.ErrConflict, "adopter already has a request for that dog")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update adoption request")
	}

	updated, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	s.emitAudit(ctx, &models.AuditLog{
		UserID:     &actor.UserID,
		Action:     models.AuditActionAdoptionUpdate,
		Resource:   "adoption_request",
		ResourceID: &item.ID,
		OldValues:  auditJSON(item),
		NewValues:  auditJSON(updated),
	})
	s.afterChange(ctx, "update")
	return updated, nil
}

// Approve moves a pending request to approved and marks the dog adopted.
func (s *AdoptionService) Approve(ctx context.Context, id string, req dto.DecisionRequest, actor *models.JWTClaims) (*dto.ApproveResponse, error) {
	item, err := s.decide(ctx, id, models.AdoptionStatusApproved, req, actor)
	if err != nil {
		return nil, err
	}
	if s.certificates != nil {
		s.certificates.Schedule(item.ID)
	}
	return &dto.ApproveResponse{
		ID:        item.ID,
		Status:    models.AdoptionStatusApproved,
		DogID:     item.DogID,
		DogStatus: models.DogStatusAdopted,
	}, nil
}

// Reject moves a pending request to rejected. The dog is left untouched.
func (s *AdoptionService) Reject(ctx context.Context, id string, req dto.DecisionRequest, actor *models.JWTClaims) (*dto.RejectResponse, error) {
	item, err := s.decide(ctx, id, models.AdoptionStatusRejected, req, actor)
	if err != nil {
		return nil, err
	}
	return &dto.RejectResponse{ID: item.ID, Status: models.AdoptionStatusRejected}, nil
}

func (s *AdoptionService) decide(ctx context.Context, id string, target models.AdoptionStatus, req dto.DecisionRequest, actor *models.JWTClaims) (*models.AdoptionRequest, error) {
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if !actor.IsAdmin() {
		return nil, appErrors.ErrForbidden
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid decision payload")
	}
	item, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.RequestStatus.IsTerminal() {
		return nil, invalidTransition(item.RequestStatus)
	}

	if target == models.AdoptionStatusApproved {
		if err := s.ensureDogAvailable(ctx, item.DogID); err != nil {
			return nil, err
		}
	}

	decidedAt := s.now().UTC()
	err = s.repo.Decide(ctx, repository.DecisionParams{
		ID:        item.ID,
		Status:    target,
		DecidedBy: actor.UserID,
		DecidedAt: decidedAt,
		Note:      optionalString(req.Note),
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, s.lostRace(ctx, id)
		}
		if errors.Is(err, repository.ErrDogUnavailable) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "dog has already been adopted")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record decision")
	}

	action, verb := models.AuditActionAdoptionApprove, "approve"
	if target == models.AdoptionStatusRejected {
		action, verb = models.AuditActionAdoptionReject, "reject"
	}
	newValues := map[string]interface{}{"requestStatus": target, "decidedAt": decidedAt}
	if target == models.AdoptionStatusApproved {
		newValues["dogId"] = item.DogID
		newValues["dogStatus"] = models.DogStatusAdopted
	}
	if note := optionalString(req.Note); note != nil {
		newValues["note"] = *note
	}
	s.emitAudit(ctx, &models.AuditLog{
		UserID:     &actor.UserID,
		Action:     action,
		Resource:   "adoption_request",
		ResourceID: &item.ID,
		OldValues:  auditJSON(map[string]interface{}{"requestStatus": item.RequestStatus}),
		NewValues:  auditJSON(newValues),
	})
	s.afterChange(ctx, verb)

	item.RequestStatus = target
	item.DecidedBy = &actor.UserID
	item.DecidedAt = &decidedAt
	return item, nil
}

// RecordVetReview stores the advisory vet assessment of a pending request. It never
// blocks or triggers a decision.
func (s *AdoptionService) RecordVetReview(ctx context.Context, id string, req dto.VetReviewRequest, actor *models.JWTClaims) (*models.AdoptionRequest, error) {
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if !actor.Role.IsStaff() {
		return nil, appErrors.ErrForbidden
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid vet review payload")
	}
	item, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.RequestStatus.IsTerminal() {
		return nil, invalidTransition(item.RequestStatus)
	}

	reviewedAt := s.now().UTC()
	note := optionalString(req.Note)
	err = s.repo.UpdateVetReview(ctx, repository.VetReviewParams{
		ID:         item.ID,
		Status:     req.Status,
		Note:       note,
		ReviewedBy: actor.UserID,
		ReviewedAt: reviewedAt,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, s.lostRace(ctx, id)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record vet review")
	}

	s.emitAudit(ctx, &models.AuditLog{
		UserID:     &actor.UserID,
		Action:     models.AuditActionAdoptionVetReview,
		Resource:   "adoption_request",
		ResourceID: &item.ID,
		OldValues:  auditJSON(map[string]interface{}{"vetReviewStatus": item.VetReview}),
		NewValues:  auditJSON(map[string]interface{}{"vetReviewStatus": req.Status, "note": note}),
	})
	s.afterChange(ctx, "vet_review")

	item.VetReview = req.Status
	item.VetReviewNote = note
	item.VetReviewedBy = &actor.UserID
	item.VetReviewedAt = &reviewedAt
	item.UpdatedAt = reviewedAt
	return item, nil
}

// Delete withdraws a pending request. Decided requests are kept as history.
func (s *AdoptionService) Delete(ctx context.Context, id string, actor *models.JWTClaims) error {
	if actor == nil {
		return appErrors.ErrUnauthorized
	}
	item, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if !actor.OwnsOrAdmin(item.AdopterID) {
		return appErrors.ErrForbidden
	}
	if item.RequestStatus.IsTerminal() {
		return invalidTransition(item.RequestStatus)
	}
	if err := s.repo.Delete(ctx, item.ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return s.lostRace(ctx, id)
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete adoption request")
	}
	s.emitAudit(ctx, &models.AuditLog{
		UserID:     &actor.UserID,
		Action:     models.AuditActionAdoptionDelete,
		Resource:   "adoption_request",
		ResourceID: &item.ID,
		OldValues:  auditJSON(item),
	})
	s.afterChange(ctx, "delete")
	return nil
}

func (s *AdoptionService) load(ctx context.Context, id string) (*models.AdoptionRequest, error) {
	if strings.TrimSpace(id) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "id is required")
	}
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "adoption request not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load adoption request")
	}
	return item, nil
}

// lostRace explains a conditional write that matched no row: the request either
// disappeared or left pending after it was read.
func (s *AdoptionService) lostRace(ctx context.Context, id string) error {
	current, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	return invalidTransition(current.RequestStatus)
}

func (s *AdoptionService) ensureDogAvailable(ctx context.Context, dogID string) error {
	if s.dogs == nil {
		return nil
	}
	dog, err := s.dogs.GetByID(ctx, dogID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "dog not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load dog")
	}
	if dog.Status == models.DogStatusAdopted {
		return appErrors.Clone(appErrors.ErrConflict, "dog has already been adopted")
	}
	return nil
}

func (s *AdoptionService) afterChange(ctx context.Context, action string) {
	s.metrics.RecordTransition(action)
	s.cache.Invalidate(ctx, dashboardCachePattern)
}

func (s *AdoptionService) emitAudit(ctx context.Context, log *models.AuditLog) {
	if s.audit == nil || log == nil {
		return
	}
	log.IPAddress = "system"
	log.UserAgent = "adoption-service"
	if err := s.audit.CreateAuditLog(ctx, log); err != nil {
		s.logger.Warn("failed to persist audit log", zap.String("action", log.Action), zap.Error(err))
	}
}

func invalidTransition(current models.AdoptionStatus) error {
	return appErrors.Clone(appErrors.ErrInvalidTransition, "adoption request is already "+string(current))
}

func normalisePage(page, pageSize int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}

func optionalString(value string) *string {
	v := strings.TrimSpace(value)
	if v == "" {
		return nil
	}
	return &v
}

func trimmed(value *string) *string {
	if value == nil {
		return nil
	}
	v := strings.TrimSpace(*value)
	return &v
}

func auditJSON(value interface{}) []byte {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil
	}
	return raw
}

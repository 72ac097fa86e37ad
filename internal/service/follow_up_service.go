package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/shelter-adoption-api/internal/dto"
	"github.com/noah-isme/shelter-adoption-api/internal/models"
	"github.com/noah-isme/shelter-adoption-api/internal/repository"
	appErrors "github.com/noah-isme/shelter-adoption-api/pkg/errors"
	"github.com/noah-isme/shelter-adoption-api/pkg/storage"
)

const (
	attachmentKindPhoto     = "photo"
	attachmentKindVetReport = "vetReport"
)

type followUpStore interface {
	Create(ctx context.Context, report *models.FollowUpReport) error
	GetByID(ctx context.Context, id string) (*models.FollowUpReport, error)
	ListByAdoptionRequest(ctx context.Context, adoptionRequestID string) ([]models.FollowUpReport, error)
}

type adoptionReader interface {
	GetByID(ctx context.Context, id string) (*models.AdoptionRequest, error)
}

type attachmentStore interface {
	Save(name string, data []byte) (string, error)
	Open(name string) (*os.File, error)
	Delete(name string) error
}

type downloadSigner interface {
	Sign(resourceID, relPath string) (string, time.Time, error)
	Verify(token string) (storage.Grant, error)
}

// Attachment is an uploaded file handed to SubmitReport.
type Attachment struct {
	Filename string
	Data     []byte
}

// FollowUpServiceConfig bounds attachment uploads.
type FollowUpServiceConfig struct {
	MaxFileSizeBytes int64
	MaxPhotos        int
	AllowedMIMEs     []string
	// LinkBase prefixes signed download links, e.g. "/api/v1".
	LinkBase string
}

// FollowUpService accepts the weekly post-adoption check-ins of approved adoptions.
type FollowUpService struct {
	reports   followUpStore
	adoptions adoptionReader
	files     attachmentStore
	signer    downloadSigner
	audit     auditLogger
	validator *validator.Validate
	logger    *zap.Logger
	cache     *CacheService
	metrics   *MetricsService
	cfg       FollowUpServiceConfig
	allowed   map[string]struct{}
	now       func() time.Time
}

// FollowUpServiceParams groups constructor dependencies.
type FollowUpServiceParams struct {
	Reports   followUpStore
	Adoptions adoptionReader
	Files     attachmentStore
	Signer    downloadSigner
	Audit     auditLogger
	Validator *validator.Validate
	Logger    *zap.Logger
	Cache     *CacheService
	Metrics   *MetricsService
	Config    FollowUpServiceConfig
}

// NewFollowUpService constructs the service with defaults.
func NewFollowUpService(params FollowUpServiceParams) *FollowUpService {
	cfg := params.Config
	if cfg.MaxFileSizeBytes <= 0 {
		cfg.MaxFileSizeBytes = 5 * 1024 * 1024
	}
	if cfg.MaxPhotos <= 0 {
		cfg.MaxPhotos = 5
	}
	if len(cfg.AllowedMIMEs) == 0 {
		cfg.AllowedMIMEs = []string{"image/jpeg", "image/png", "image/webp", "application/pdf"}
	}
	cfg.LinkBase = strings.TrimRight(cfg.LinkBase, "/")
	allowed := make(map[string]struct{}, len(cfg.AllowedMIMEs))
	for _, mime := range cfg.AllowedMIMEs {
		allowed[strings.ToLower(strings.TrimSpace(mime))] = struct{}{}
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	validate := params.Validator
	if validate == nil {
		validate = validator.New()
	}
	return &FollowUpService{
		reports:   params.Reports,
		adoptions: params.Adoptions,
		files:     params.Files,
		signer:    params.Signer,
		audit:     params.Audit,
		validator: validate,
		logger:    logger,
		cache:     params.Cache,
		metrics:   params.Metrics,
		cfg:       cfg,
		allowed:   allowed,
		now:       time.Now,
	}
}

// BuildFollowUpSummary derives progress from the stored reports of one adoption request.
// Weeks are scanned in order and the first missing week is the next one due.
func BuildFollowUpSummary(adoptionRequestID string, reports []models.FollowUpReport) models.FollowUpSummary {
	seen := make(map[int]struct{}, len(reports))
	submitted := make([]int, 0, len(reports))
	for _, report := range reports {
		if report.Week < 1 || report.Week > models.FollowUpWeeksRequired {
			continue
		}
		if _, dup := seen[report.Week]; dup {
			continue
		}
		seen[report.Week] = struct{}{}
		submitted = append(submitted, report.Week)
	}
	sort.Ints(submitted)

	summary := models.FollowUpSummary{
		AdoptionRequestID: adoptionRequestID,
		TotalRequired:     models.FollowUpWeeksRequired,
		Completed:         len(submitted),
		SubmittedWeeks:    submitted,
	}
	for week := 1; week <= models.FollowUpWeeksRequired; week++ {
		if _, ok := seen[week]; !ok {
			next := week
			summary.NextDueWeek = &next
			break
		}
	}
	summary.IsComplete = summary.NextDueWeek == nil
	return summary
}

// SubmitReport stores the next due weekly report for an approved adoption.
func (s *FollowUpService) SubmitReport(ctx context.Context, req dto.SubmitFollowUpRequest, photos []Attachment, vetReport *Attachment, actor *models.JWTClaims) (*dto.FollowUpReportResponse, error) {
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if strings.TrimSpace(req.AdoptionRequestID) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "adoptionRequestId is required")
	}
	adoption, err := s.loadAdoption(ctx, req.AdoptionRequestID)
	if err != nil {
		return nil, err
	}
	if adoption.AdopterID != actor.UserID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only the adopter can file follow-up reports")
	}
	if adoption.RequestStatus != models.AdoptionStatusApproved {
		return nil, appErrors.Clone(appErrors.ErrNotEligible, "follow-up reports require an approved adoption")
	}

	existing, err := s.reports.ListByAdoptionRequest(ctx, adoption.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load follow-up reports")
	}
	summary := BuildFollowUpSummary(adoption.ID, existing)
	if summary.IsComplete {
		return nil, appErrors.ErrAllWeeksComplete
	}
	due := *summary.NextDueWeek
	if req.Week != 0 && req.Week != due {
		return nil, appErrors.Clone(appErrors.ErrWeekMismatch, fmt.Sprintf("week %d is due", due))
	}
	req.Week = due

	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid follow-up report payload")
	}
	if req.DogID != "" && req.DogID != adoption.DogID {
		return nil, appErrors.Clone(appErrors.ErrValidation, "dogId does not match the adoption request")
	}
	if err := s.checkAttachments(photos, vetReport); err != nil {
		return nil, err
	}

	report := &models.FollowUpReport{
		ID:                uuid.NewString(),
		AdoptionRequestID: adoption.ID,
		DogID:             adoption.DogID,
		AdopterID:         adoption.AdopterID,
		Week:              due,
		HealthCondition:   req.HealthCondition,
		FeedingStatus:     req.FeedingStatus,
		FeedingNotes:      strings.TrimSpace(req.FeedingNotes),
		BehaviorChecklist: dedupeTags(req.BehaviorChecklist),
		BehaviorNotes:     strings.TrimSpace(req.BehaviorNotes),
		EnvironmentCheck:  strings.TrimSpace(req.EnvironmentCheck),
		OptionalNotes:     strings.TrimSpace(req.OptionalNotes),
		CreatedAt:         s.now().UTC(),
	}

	stored, err := s.storeAttachments(report, photos, vetReport)
	if err != nil {
		return nil, err
	}
	if err := s.reports.Create(ctx, report); err != nil {
		s.removeFiles(stored)
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, appErrors.Clone(appErrors.ErrWeekMismatch, fmt.Sprintf("week %d was already submitted", due))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store follow-up report")
	}

	s.emitAudit(ctx, &models.AuditLog{
		UserID:     &actor.UserID,
		Action:     models.AuditActionFollowUpSubmit,
		Resource:   "follow_up_report",
		ResourceID: &report.ID,
		NewValues:  auditJSON(map[string]interface{}{"adoptionRequestId": report.AdoptionRequestID, "week": report.Week}),
	})
	s.metrics.RecordFollowUp(report.Week)
	s.cache.Invalidate(ctx, dashboardCachePattern)

	return s.withLinks(*report), nil
}

// Summary returns follow-up progress for an adoption request.
func (s *FollowUpService) Summary(ctx context.Context, adoptionRequestID string, actor *models.JWTClaims) (*models.FollowUpSummary, error) {
	adoption, err := s.authorizeRead(ctx, adoptionRequestID, actor)
	if err != nil {
		return nil, err
	}
	reports, err := s.reports.ListByAdoptionRequest(ctx, adoption.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load follow-up reports")
	}
	summary := BuildFollowUpSummary(adoption.ID, reports)
	return &summary, nil
}

// ListReports returns the stored reports of an adoption request ordered by week.
func (s *FollowUpService) ListReports(ctx context.Context, adoptionRequestID string, actor *models.JWTClaims) ([]dto.FollowUpReportResponse, error) {
	adoption, err := s.authorizeRead(ctx, adoptionRequestID, actor)
	if err != nil {
		return nil, err
	}
	reports, err := s.reports.ListByAdoptionRequest(ctx, adoption.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load follow-up reports")
	}
	sort.SliceStable(reports, func(i, j int) bool { return reports[i].Week < reports[j].Week })
	out := make([]dto.FollowUpReportResponse, 0, len(reports))
	for _, report := range reports {
		out = append(out, *s.withLinks(report))
	}
	return out, nil
}

// Download opens the attachment at index of a report after checking its signed token.
// Photos take indexes 0..n-1 and the vet report follows them.
func (s *FollowUpService) Download(ctx context.Context, reportID string, index int, token string, actor *models.JWTClaims) (*os.File, string, error) {
	if actor == nil {
		return nil, "", appErrors.ErrUnauthorized
	}
	if s.signer == nil || s.files == nil {
		return nil, "", appErrors.Clone(appErrors.ErrNotFound, "attachments are not available")
	}
	grant, err := s.signer.Verify(token)
	if err != nil {
		if errors.Is(err, storage.ErrTokenExpired) {
			return nil, "", appErrors.Clone(appErrors.ErrForbidden, "download link expired")
		}
		return nil, "", appErrors.Clone(appErrors.ErrForbidden, "invalid download link")
	}
	if grant.ResourceID != reportID {
		return nil, "", appErrors.Clone(appErrors.ErrForbidden, "invalid download link")
	}

	report, err := s.reports.GetByID(ctx, reportID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", appErrors.Clone(appErrors.ErrNotFound, "follow-up report not found")
		}
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load follow-up report")
	}
	if report.AdopterID != actor.UserID && !actor.Role.IsStaff() {
		return nil, "", appErrors.ErrForbidden
	}
	name, ok := attachmentAt(*report, index)
	if !ok {
		return nil, "", appErrors.Clone(appErrors.ErrNotFound, "attachment not found")
	}
	if grant.Path != name {
		return nil, "", appErrors.Clone(appErrors.ErrForbidden, "invalid download link")
	}
	file, err := s.files.Open(name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, "", appErrors.Clone(appErrors.ErrNotFound, "attachment not found")
		}
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open attachment")
	}
	return file, path.Base(name), nil
}

func (s *FollowUpService) authorizeRead(ctx context.Context, adoptionRequestID string, actor *models.JWTClaims) (*models.AdoptionRequest, error) {
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if strings.TrimSpace(adoptionRequestID) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "adoptionRequestId is required")
	}
	adoption, err := s.loadAdoption(ctx, adoptionRequestID)
	if err != nil {
		return nil, err
	}
	if adoption.AdopterID != actor.UserID && !actor.Role.IsStaff() {
		return nil, appErrors.ErrForbidden
	}
	return adoption, nil
}

func (s *FollowUpService) loadAdoption(ctx context.Context, id string) (*models.AdoptionRequest, error) {
	adoption, err := s.adoptions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "adoption request not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load adoption request")
	}
	return adoption, nil
}

func (s *FollowUpService) checkAttachments(photos []Attachment, vetReport *Attachment) error {
	if len(photos) > s.cfg.MaxPhotos {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("at most %d photos are allowed", s.cfg.MaxPhotos))
	}
	for _, photo := range photos {
		if _, err := s.detectMIME(photo); err != nil {
			return err
		}
	}
	if vetReport != nil {
		if _, err := s.detectMIME(*vetReport); err != nil {
			return err
		}
	}
	return nil
}

func (s *FollowUpService) detectMIME(file Attachment) (string, error) {
	if len(file.Data) == 0 {
		return "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s is empty", file.Filename))
	}
	if int64(len(file.Data)) > s.cfg.MaxFileSizeBytes {
		return "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s exceeds the %d byte limit", file.Filename, s.cfg.MaxFileSizeBytes))
	}
	mime := http.DetectContentType(file.Data)
	if idx := strings.Index(mime, ";"); idx >= 0 {
		mime = mime[:idx]
	}
	if _, ok := s.allowed[mime]; !ok {
		return "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s has unsupported type %s", file.Filename, mime))
	}
	return mime, nil
}

// storeAttachments writes the uploads and records their names on report. Files already
// written are removed when a later write fails.
func (s *FollowUpService) storeAttachments(report *models.FollowUpReport, photos []Attachment, vetReport *Attachment) ([]string, error) {
	report.Photos = []string{}
	if len(photos) == 0 && vetReport == nil {
		return nil, nil
	}
	if s.files == nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, "attachment storage is not configured")
	}
	dir := fmt.Sprintf("%s/week-%d/%s", report.AdoptionRequestID, report.Week, report.ID)
	stored := make([]string, 0, len(photos)+1)
	save := func(base string, file Attachment) (string, error) {
		mime, _ := s.detectMIME(file)
		name, err := s.files.Save(dir+"/"+base+extensionFor(mime), file.Data)
		if err != nil {
			s.removeFiles(stored)
			return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store attachment")
		}
		stored = append(stored, name)
		return name, nil
	}
	for i, photo := range photos {
		name, err := save(fmt.Sprintf("photo-%d", i+1), photo)
		if err != nil {
			return nil, err
		}
		report.Photos = append(report.Photos, name)
	}
	if vetReport != nil {
		name, err := save("vet-report", *vetReport)
		if err != nil {
			return nil, err
		}
		report.VetReport = &name
	}
	return stored, nil
}

func (s *FollowUpService) removeFiles(names []string) {
	for _, name := range names {
		if err := s.files.Delete(name); err != nil {
			s.logger.Warn("failed to remove orphaned attachment", zap.String("file", name), zap.Error(err))
		}
	}
}

func (s *FollowUpService) withLinks(report models.FollowUpReport) *dto.FollowUpReportResponse {
	resp := &dto.FollowUpReportResponse{FollowUpReport: report, Attachments: []dto.AttachmentLink{}}
	if s.signer == nil {
		return resp
	}
	add := func(kind string, index int, name string) {
		token, expiresAt, err := s.signer.Sign(report.ID, name)
		if err != nil {
			s.logger.Warn("failed to sign attachment link", zap.String("report_id", report.ID), zap.Error(err))
			return
		}
		resp.Attachments = append(resp.Attachments, dto.AttachmentLink{
			Kind:      kind,
			Index:     index,
			URL:       fmt.Sprintf("%s/follow-up-reports/files/%s/%d?token=%s", s.cfg.LinkBase, report.ID, index, url.QueryEscape(token)),
			ExpiresAt: expiresAt,
		})
	}
	for i, name := range report.Photos {
		add(attachmentKindPhoto, i, name)
	}
	if report.VetReport != nil && *report.VetReport != "" {
		add(attachmentKindVetReport, len(report.Photos), *report.VetReport)
	}
	return resp
}

func (s *FollowUpService) emitAudit(ctx context.Context, log *models.AuditLog) {
	if s.audit == nil || log == nil {
		return
	}
	log.IPAddress = "system"
	log.UserAgent = "follow-up-service"
	if err := s.audit.CreateAuditLog(ctx, log); err != nil {
		s.logger.Warn("failed to persist audit log", zap.String("action", log.Action), zap.Error(err))
	}
}

func attachmentAt(report models.FollowUpReport, index int) (string, bool) {
	if index < 0 {
		return "", false
	}
	if index < len(report.Photos) {
		return report.Photos[index], true
	}
	if index == len(report.Photos) && report.VetReport != nil && *report.VetReport != "" {
		return *report.VetReport, true
	}
	return "", false
}

func extensionFor(mime string) string {
	switch mime {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "application/pdf":
		return ".pdf"
	default:
		return ".bin"
	}
}

func dedupeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

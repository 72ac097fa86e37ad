package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/shelter-adoption-api/internal/models"
	appErrors "github.com/noah-isme/shelter-adoption-api/pkg/errors"
	"github.com/noah-isme/shelter-adoption-api/pkg/export"
	"github.com/noah-isme/shelter-adoption-api/pkg/jobs"
)

const certificateTaskKind = "certificate"

type certificateRenderer interface {
	RenderCertificate(cert export.Certificate) ([]byte, error)
}

type certificateFiles interface {
	Save(name string, data []byte) (string, error)
	Open(name string) (*os.File, error)
	Exists(name string) bool
}

type taskSubmitter interface {
	Submit(task jobs.Task) error
}

// CertificateServiceParams groups constructor dependencies.
type CertificateServiceParams struct {
	Adoptions adoptionReader
	Dogs      dogReader
	Renderer  certificateRenderer
	Files     certificateFiles
	Metrics   *MetricsService
	Logger    *zap.Logger
}

// CertificateService issues adoption certificates for approved requests and keeps a
// rendered PDF copy in the file store.
type CertificateService struct {
	adoptions adoptionReader
	dogs      dogReader
	renderer  certificateRenderer
	files     certificateFiles
	queue     taskSubmitter
	metrics   *MetricsService
	logger    *zap.Logger
	now       func() time.Time
}

// NewCertificateService constructs the service.
func NewCertificateService(params CertificateServiceParams) *CertificateService {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	renderer := params.Renderer
	if renderer == nil {
		renderer = export.NewPDFExporter("")
	}
	return &CertificateService{
		adoptions: params.Adoptions,
		dogs:      params.Dogs,
		renderer:  renderer,
		files:     params.Files,
		metrics:   params.Metrics,
		logger:    logger,
		now:       time.Now,
	}
}

// AttachQueue enables background pre-rendering through queue.
func (s *CertificateService) AttachQueue(queue taskSubmitter) {
	s.queue = queue
}

// Certificate returns the certificate data of an approved adoption to its adopter or an admin.
func (s *CertificateService) Certificate(ctx context.Context, adoptionRequestID string, actor *models.JWTClaims) (*models.AdoptionCertificate, error) {
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}
	adoption, err := s.loadAdoption(ctx, adoptionRequestID)
	if err != nil {
		return nil, err
	}
	if !actor.OwnsOrAdmin(adoption.AdopterID) {
		return nil, appErrors.ErrForbidden
	}
	return s.build(ctx, adoption)
}

// PDF returns the rendered certificate and a download filename. A stored copy is served
// when present; otherwise the PDF is rendered and stored.
func (s *CertificateService) PDF(ctx context.Context, adoptionRequestID string, actor *models.JWTClaims) ([]byte, string, error) {
	cert, err := s.Certificate(ctx, adoptionRequestID, actor)
	if err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("adoption-certificate-%s.pdf", cert.CertificateNo)

	if data, ok := s.readStored(cert.AdoptionRequestID); ok {
		s.metrics.RecordCertificate("stored")
		return data, filename, nil
	}
	data, err := s.renderAndStore(cert)
	if err != nil {
		s.metrics.RecordCertificate("failed")
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render certificate")
	}
	s.metrics.RecordCertificate("rendered")
	return data, filename, nil
}

// Schedule queues background rendering for an approved request. Failures only log.
func (s *CertificateService) Schedule(adoptionRequestID string) {
	if s.queue == nil || adoptionRequestID == "" {
		return
	}
	err := s.queue.Submit(jobs.Task{
		Key:     certificateTaskKind + ":" + adoptionRequestID,
		Kind:    certificateTaskKind,
		Payload: adoptionRequestID,
	})
	if err != nil {
		s.logger.Warn("failed to queue certificate rendering", zap.String("adoption_request_id", adoptionRequestID), zap.Error(err))
	}
}

// HandleTask renders and stores the certificate named by a queued task.
func (s *CertificateService) HandleTask(ctx context.Context, task jobs.Task) error {
	id, ok := task.Payload.(string)
	if !ok || id == "" {
		return fmt.Errorf("certificate task %q carries no adoption request id", task.Key)
	}
	if s.files != nil && s.files.Exists(storedCertificateName(id)) {
		return nil
	}
	adoption, err := s.loadAdoption(ctx, id)
	if err != nil {
		return err
	}
	cert, err := s.build(ctx, adoption)
	if err != nil {
		return err
	}
	if _, err := s.renderAndStore(cert); err != nil {
		s.metrics.RecordCertificate("failed")
		return err
	}
	s.metrics.RecordCertificate("prerendered")
	return nil
}

func (s *CertificateService) build(ctx context.Context, adoption *models.AdoptionRequest) (*models.AdoptionCertificate, error) {
	if adoption.RequestStatus != models.AdoptionStatusApproved {
		return nil, appErrors.Clone(appErrors.ErrNotEligible, "certificates are issued for approved adoptions only")
	}
	dog, err := s.dogs.GetByID(ctx, adoption.DogID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "dog not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load dog")
	}
	adoptedAt := adoption.UpdatedAt
	if adoption.DecidedAt != nil {
		adoptedAt = *adoption.DecidedAt
	}
	return &models.AdoptionCertificate{
		AdoptionRequestID: adoption.ID,
		CertificateNo:     certificateNumber(adoption.ID, adoptedAt),
		AdopterName:       adoption.FullName,
		AdopterEmail:      adoption.Email,
		DogID:             dog.ID,
		DogName:           dog.Name,
		DogBreed:          dog.Breed,
		AdoptedAt:         adoptedAt.UTC(),
		IssuedAt:          s.now().UTC(),
	}, nil
}

func (s *CertificateService) renderAndStore(cert *models.AdoptionCertificate) ([]byte, error) {
	data, err := s.renderer.RenderCertificate(export.Certificate{
		Number:      cert.CertificateNo,
		AdopterName: cert.AdopterName,
		DogName:     cert.DogName,
		DogBreed:    cert.DogBreed,
		AdoptedOn:   cert.AdoptedAt.Format("2 January 2006"),
		IssuedOn:    cert.IssuedAt.Format("2 January 2006"),
	})
	if err != nil {
		return nil, err
	}
	if s.files != nil {
		if _, err := s.files.Save(storedCertificateName(cert.AdoptionRequestID), data); err != nil {
			s.logger.Warn("failed to store certificate", zap.String("adoption_request_id", cert.AdoptionRequestID), zap.Error(err))
		}
	}
	return data, nil
}

func (s *CertificateService) readStored(adoptionRequestID string) ([]byte, bool) {
	if s.files == nil {
		return nil, false
	}
	name := storedCertificateName(adoptionRequestID)
	if !s.files.Exists(name) {
		return nil, false
	}
	file, err := s.files.Open(name)
	if err != nil {
		s.logger.Warn("failed to open stored certificate", zap.String("file", name), zap.Error(err))
		return nil, false
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil || len(data) == 0 {
		return nil, false
	}
	return data, true
}

func (s *CertificateService) loadAdoption(ctx context.Context, id string) (*models.AdoptionRequest, error) {
	if strings.TrimSpace(id) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "id is required")
	}
	adoption, err := s.adoptions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "adoption request not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load adoption request")
	}
	return adoption, nil
}

func storedCertificateName(adoptionRequestID string) string {
	return adoptionRequestID + ".pdf"
}

func certificateNumber(id string, adoptedAt time.Time) string {
	short := strings.ToUpper(strings.ReplaceAll(id, "-", ""))
	if len(short) > 8 {
		short = short[:8]
	}
	return fmt.Sprintf("SDR-%s-%s", adoptedAt.UTC().Format("20060102"), short)
}

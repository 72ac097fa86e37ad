package handler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/shelter-adoption-api/internal/dto"
	"github.com/noah-isme/shelter-adoption-api/internal/models"
	appErrors "github.com/noah-isme/shelter-adoption-api/pkg/errors"
	"github.com/noah-isme/shelter-adoption-api/pkg/response"
)

type adoptionService interface {
	Create(ctx context.Context, req dto.CreateAdoptionRequest, actor *models.JWTClaims) (*models.AdoptionRequest, error)
	Get(ctx context.Context, id string, actor *models.JWTClaims) (*models.AdoptionRequest, error)
	List(ctx context.Context, query dto.AdoptionQuery) ([]models.AdoptionRequest, *models.Pagination, error)
	ListMine(ctx context.Context, query dto.AdoptionQuery, actor *models.JWTClaims) ([]models.AdoptionRequest, *models.Pagination, error)
	ListByDog(ctx context.Context, dogID string, query dto.AdoptionQuery) ([]models.AdoptionRequest, *models.Pagination, error)
	Export(ctx context.Context, query dto.AdoptionQuery, w io.Writer) error
	Update(ctx context.Context, id string, req dto.UpdateAdoptionRequest, actor *models.JWTClaims) (*models.AdoptionRequest, error)
	Approve(ctx context.Context, id string, req dto.DecisionRequest, actor *models.JWTClaims) (*dto.ApproveResponse, error)
	Reject(ctx context.Context, id string, req dto.DecisionRequest, actor *models.JWTClaims) (*dto.RejectResponse, error)
	RecordVetReview(ctx context.Context, id string, req dto.VetReviewRequest, actor *models.JWTClaims) (*models.AdoptionRequest, error)
	Delete(ctx context.Context, id string, actor *models.JWTClaims) error
}

type certificateService interface {
	Certificate(ctx context.Context, adoptionRequestID string, actor *models.JWTClaims) (*models.AdoptionCertificate, error)
	PDF(ctx context.Context, adoptionRequestID string, actor *models.JWTClaims) ([]byte, string, error)
}

// AdoptionHandler exposes the adoption request lifecycle over HTTP.
type AdoptionHandler struct {
	service      adoptionService
	certificates certificateService
	now          func() time.Time
}

// NewAdoptionHandler constructs the handler. certificates may be nil when certificates are disabled.
func NewAdoptionHandler(service adoptionService, certificates certificateService) *AdoptionHandler {
	return &AdoptionHandler{service: service, certificates: certificates, now: time.Now}
}

func (h *AdoptionHandler) ready(c *gin.Context) (*models.JWTClaims, bool) {
	if h.service == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrInternal, "adoption service not configured"))
		return nil, false
	}
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return nil, false
	}
	return claims, true
}

// Create godoc
// @Summary Request to adopt a dog
// @Tags Adoptions
// @Accept json
// @Produce json
// @Param payload body dto.CreateAdoptionRequest true "Adoption application"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /adoption-requests [post]
func (h *AdoptionHandler) Create(c *gin.Context) {
	claims, ok := h.ready(c)
	if !ok {
		return
	}
	var req dto.CreateAdoptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid adoption request payload"))
		return
	}
	item, err := h.service.Create(c.Request.Context(), req, claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// List godoc
// @Summary List adoption requests
// @Tags Adoptions
// @Produce json
// @Param status query string false "Comma separated statuses (pending, approved, rejected)"
// @Param vetReviewStatus query string false "Vet review status"
// @Param dogId query string false "Dog ID"
// @Param page query int false "Page"
// @Param pageSize query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /adoption-requests [get]
func (h *AdoptionHandler) List(c *gin.Context) {
	if _, ok := h.ready(c); !ok {
		return
	}
	items, pagination, err := h.service.List(c.Request.Context(), adoptionQueryFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, pagination)
}

// ListMine godoc
// @Summary List the caller's adoption requests
// @Tags Adoptions
// @Produce json
// @Param status query string false "Comma separated statuses"
// @Success 200 {object} response.Envelope
// @Router /adoption-requests/mine [get]
func (h *AdoptionHandler) ListMine(c *gin.Context) {
	claims, ok := h.ready(c)
	if !ok {
		return
	}
	items, pagination, err := h.service.ListMine(c.Request.Context(), adoptionQueryFromContext(c), claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, pagination)
}

// ListByDog godoc
// @Summary List adoption requests for a dog
// @Tags Adoptions
// @Produce json
// @Param dogId path string true "Dog ID"
// @Success 200 {object} response.Envelope
// @Router /adoption-requests/dog/{dogId} [get]
func (h *AdoptionHandler) ListByDog(c *gin.Context) {
	if _, ok := h.ready(c); !ok {
		return
	}
	items, pagination, err := h.service.ListByDog(c.Request.Context(), c.Param("dogId"), adoptionQueryFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, pagination)
}

// Export godoc
// @Summary Export adoption requests as CSV
// @Tags Adoptions
// @Produce text/csv
// @Param status query string false "Comma separated statuses"
// @Success 200 {file} file
// @Router /adoption-requests/export [get]
func (h *AdoptionHandler) Export(c *gin.Context) {
	if _, ok := h.ready(c); !ok {
		return
	}
	var buf bytes.Buffer
	if err := h.service.Export(c.Request.Context(), adoptionQueryFromContext(c), &buf); err != nil {
		response.Error(c, err)
		return
	}
	filename := fmt.Sprintf("adoption-requests-%s.csv", h.now().UTC().Format("20060102"))
	response.Attachment(c, filename, "text/csv; charset=utf-8", buf.Bytes())
}

// Get godoc
// @Summary Get an adoption request
// @Tags Adoptions
// @Produce json
// @Param id path string true "Adoption request ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /adoption-requests/{id} [get]
func (h *AdoptionHandler) Get(c *gin.Context) {
	claims, ok := h.ready(c)
	if !ok {
		return
	}
	item, err := h.service.Get(c.Request.Context(), c.Param("id"), claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Update godoc
// @Summary Edit a pending adoption request
// @Tags Adoptions
// @Accept json
// @Produce json
// @Param id path string true "Adoption request ID"
// @Param payload body dto.UpdateAdoptionRequest true "Fields to change"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /adoption-requests/{id} [put]
func (h *AdoptionHandler) Update(c *gin.Context) {
	claims, ok := h.ready(c)
	if !ok {
		return
	}
	var req dto.UpdateAdoptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid update payload"))
		return
	}
	item, err := h.service.Update(c.Request.Context(), c.Param("id"), req, claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Delete godoc
// @Summary Withdraw a pending adoption request
// @Tags Adoptions
// @Param id path string true "Adoption request ID"
// @Success 204
// @Failure 409 {object} response.Envelope
// @Router /adoption-requests/{id} [delete]
func (h *AdoptionHandler) Delete(c *gin.Context) {
	claims, ok := h.ready(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), c.Param("id"), claims); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Approve godoc
// @Summary Approve an adoption request
// @Tags Adoptions
// @Accept json
// @Produce json
// @Param id path string true "Adoption request ID"
// @Param payload body dto.DecisionRequest false "Decision note"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /adoption-requests/{id}/approve [post]
func (h *AdoptionHandler) Approve(c *gin.Context) {
	claims, ok := h.ready(c)
	if !ok {
		return
	}
	req, ok := bindDecision(c)
	if !ok {
		return
	}
	result, err := h.service.Approve(c.Request.Context(), c.Param("id"), req, claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Reject godoc
// @Summary Reject an adoption request
// @Tags Adoptions
// @Accept json
// @Produce json
// @Param id path string true "Adoption request ID"
// @Param payload body dto.DecisionRequest false "Decision note"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /adoption-requests/{id}/reject [post]
func (h *AdoptionHandler) Reject(c *gin.Context) {
	claims, ok := h.ready(c)
	if !ok {
		return
	}
	req, ok := bindDecision(c)
	if !ok {
		return
	}
	result, err := h.service.Reject(c.Request.Context(), c.Param("id"), req, claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// VetReview godoc
// @Summary Record the advisory vet review
// @Tags Adoptions
// @Accept json
// @Produce json
// @Param id path string true "Adoption request ID"
// @Param payload body dto.VetReviewRequest true "Vet review"
// @Success 200 {object} response.Envelope
// @Router /adoption-requests/{id}/vet-review [post]
func (h *AdoptionHandler) VetReview(c *gin.Context) {
	claims, ok := h.ready(c)
	if !ok {
		return
	}
	var req dto.VetReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid vet review payload"))
		return
	}
	item, err := h.service.RecordVetReview(c.Request.Context(), c.Param("id"), req, claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Certificate godoc
// @Summary Get adoption certificate data
// @Tags Adoptions
// @Produce json
// @Param id path string true "Adoption request ID"
// @Success 200 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /adoption-requests/{id}/certificate [get]
func (h *AdoptionHandler) Certificate(c *gin.Context) {
	claims, ok := h.certificateReady(c)
	if !ok {
		return
	}
	cert, err := h.certificates.Certificate(c.Request.Context(), c.Param("id"), claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, cert, nil)
}

// CertificatePDF godoc
// @Summary Download the adoption certificate as PDF
// @Tags Adoptions
// @Produce application/pdf
// @Param id path string true "Adoption request ID"
// @Success 200 {file} file
// @Failure 422 {object} response.Envelope
// @Router /adoption-requests/{id}/certificate/pdf [get]
func (h *AdoptionHandler) CertificatePDF(c *gin.Context) {
	claims, ok := h.certificateReady(c)
	if !ok {
		return
	}
	data, filename, err := h.certificates.PDF(c.Request.Context(), c.Param("id"), claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, filename, "application/pdf", data)
}

func (h *AdoptionHandler) certificateReady(c *gin.Context) (*models.JWTClaims, bool) {
	if h.certificates == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "certificates are disabled"))
		return nil, false
	}
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return nil, false
	}
	return claims, true
}

// bindDecision accepts an empty body as a decision without a note.
func bindDecision(c *gin.Context) (dto.DecisionRequest, bool) {
	var req dto.DecisionRequest
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return req, true
	}
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid decision payload"))
		return req, false
	}
	return req, true
}

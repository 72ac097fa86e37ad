package handler

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/shelter-adoption-api/internal/dto"
	"github.com/noah-isme/shelter-adoption-api/internal/models"
	"github.com/noah-isme/shelter-adoption-api/internal/service"
	appErrors "github.com/noah-isme/shelter-adoption-api/pkg/errors"
	"github.com/noah-isme/shelter-adoption-api/pkg/response"
)

type followUpService interface {
	SubmitReport(ctx context.Context, req dto.SubmitFollowUpRequest, photos []service.Attachment, vetReport *service.Attachment, actor *models.JWTClaims) (*dto.FollowUpReportResponse, error)
	Summary(ctx context.Context, adoptionRequestID string, actor *models.JWTClaims) (*models.FollowUpSummary, error)
	ListReports(ctx context.Context, adoptionRequestID string, actor *models.JWTClaims) ([]dto.FollowUpReportResponse, error)
	Download(ctx context.Context, reportID string, index int, token string, actor *models.JWTClaims) (*os.File, string, error)
}

// FollowUpHandler exposes weekly post-adoption reports.
type FollowUpHandler struct {
	service     followUpService
	maxFileSize int64
}

// NewFollowUpHandler constructs the handler. maxFileSize caps each uploaded part.
func NewFollowUpHandler(service followUpService, maxFileSize int64) *FollowUpHandler {
	if maxFileSize <= 0 {
		maxFileSize = 5 * 1024 * 1024
	}
	return &FollowUpHandler{service: service, maxFileSize: maxFileSize}
}

func (h *FollowUpHandler) ready(c *gin.Context) (*models.JWTClaims, bool) {
	if h.service == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrInternal, "follow-up service not configured"))
		return nil, false
	}
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return nil, false
	}
	return claims, true
}

// Submit godoc
// @Summary Submit the next weekly follow-up report
// @Tags FollowUps
// @Accept mpfd
// @Produce json
// @Param adoptionRequestId formData string true "Adoption request ID"
// @Param week formData int false "Week (defaults to the next due week)"
// @Param healthCondition formData string true "healthy, needs_attention or critical"
// @Param feedingStatus formData string true "regular, irregular or skipped_meals"
// @Param behaviorChecklist formData []string false "playful, aggressive, calm, anxious"
// @Param photos formData file false "Photos"
// @Param vetReport formData file false "Vet report"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /follow-up-reports [post]
func (h *FollowUpHandler) Submit(c *gin.Context) {
	claims, ok := h.ready(c)
	if !ok {
		return
	}
	var req dto.SubmitFollowUpRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid follow-up report payload"))
		return
	}

	var (
		photos    []service.Attachment
		vetReport *service.Attachment
	)
	if form, err := c.MultipartForm(); err == nil && form != nil {
		headers := form.File["photos"]
		if len(headers) == 0 {
			headers = form.File["photos[]"]
		}
		for _, header := range headers {
			attachment, err := h.readPart(header)
			if err != nil {
				response.Error(c, err)
				return
			}
			photos = append(photos, attachment)
		}
		if parts := form.File["vetReport"]; len(parts) > 0 {
			attachment, err := h.readPart(parts[0])
			if err != nil {
				response.Error(c, err)
				return
			}
			vetReport = &attachment
		}
	}

	report, err := h.service.SubmitReport(c.Request.Context(), req, photos, vetReport, claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, report)
}

// List godoc
// @Summary List follow-up reports of an adoption
// @Tags FollowUps
// @Produce json
// @Param adoptionRequestId path string true "Adoption request ID"
// @Success 200 {object} response.Envelope
// @Router /follow-up-reports/{adoptionRequestId} [get]
func (h *FollowUpHandler) List(c *gin.Context) {
	claims, ok := h.ready(c)
	if !ok {
		return
	}
	reports, err := h.service.ListReports(c.Request.Context(), c.Param("adoptionRequestId"), claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, reports, nil)
}

// Summary godoc
// @Summary Follow-up progress of an adoption
// @Tags FollowUps
// @Produce json
// @Param adoptionRequestId path string true "Adoption request ID"
// @Success 200 {object} response.Envelope
// @Router /follow-up-reports/{adoptionRequestId}/summary [get]
func (h *FollowUpHandler) Summary(c *gin.Context) {
	claims, ok := h.ready(c)
	if !ok {
		return
	}
	summary, err := h.service.Summary(c.Request.Context(), c.Param("adoptionRequestId"), claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, nil)
}

// Download godoc
// @Summary Download a follow-up attachment through a signed link
// @Tags FollowUps
// @Produce octet-stream
// @Param reportId path string true "Report ID"
// @Param index path int true "Attachment index"
// @Param token query string true "Signed token"
// @Success 200 {file} file
// @Failure 403 {object} response.Envelope
// @Router /follow-up-reports/files/{reportId}/{index} [get]
func (h *FollowUpHandler) Download(c *gin.Context) {
	claims, ok := h.ready(c)
	if !ok {
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "index must be a number"))
		return
	}
	file, name, err := h.service.Download(c.Request.Context(), c.Param("reportId"), index, c.Query("token"), claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close()
	info, err := file.Stat()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read attachment"))
		return
	}
	c.Header("Cache-Control", "private, no-store")
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", name))
	http.ServeContent(c.Writer, c.Request, name, info.ModTime(), file)
}

func (h *FollowUpHandler) readPart(header *multipart.FileHeader) (service.Attachment, error) {
	if header.Size > h.maxFileSize {
		return service.Attachment{}, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s exceeds the %d byte limit", header.Filename, h.maxFileSize))
	}
	file, err := header.Open()
	if err != nil {
		return service.Attachment{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "unreadable upload")
	}
	defer file.Close()
	data, err := io.ReadAll(io.LimitReader(file, h.maxFileSize+1))
	if err != nil {
		return service.Attachment{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "unreadable upload")
	}
	return service.Attachment{Filename: header.Filename, Data: data}, nil
}

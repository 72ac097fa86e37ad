package handler

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/shelter-adoption-api/internal/dto"
	"github.com/noah-isme/shelter-adoption-api/internal/middleware"
	"github.com/noah-isme/shelter-adoption-api/internal/models"
	"github.com/noah-isme/shelter-adoption-api/internal/service"
	appErrors "github.com/noah-isme/shelter-adoption-api/pkg/errors"
)

type fakeFollowUpSrv struct {
	lastReq     dto.SubmitFollowUpRequest
	lastPhotos  []service.Attachment
	lastVet     *service.Attachment
	lastIndex   int
	lastToken   string
	summary     *models.FollowUpSummary
	reports     []dto.FollowUpReportResponse
	downloadDir string
	err         error
}

func (f *fakeFollowUpSrv) SubmitReport(_ context.Context, req dto.SubmitFollowUpRequest, photos []service.Attachment, vet *service.Attachment, _ *models.JWTClaims) (*dto.FollowUpReportResponse, error) {
	f.lastReq, f.lastPhotos, f.lastVet = req, photos, vet
	if f.err != nil {
		return nil, f.err
	}
	return &dto.FollowUpReportResponse{FollowUpReport: models.FollowUpReport{ID: "rep-1", Week: 1}}, nil
}

func (f *fakeFollowUpSrv) Summary(context.Context, string, *models.JWTClaims) (*models.FollowUpSummary, error) {
	return f.summary, f.err
}

func (f *fakeFollowUpSrv) ListReports(context.Context, string, *models.JWTClaims) ([]dto.FollowUpReportResponse, error) {
	return f.reports, f.err
}

func (f *fakeFollowUpSrv) Download(_ context.Context, _ string, index int, token string, _ *models.JWTClaims) (*os.File, string, error) {
	f.lastIndex, f.lastToken = index, token
	if f.err != nil {
		return nil, "", f.err
	}
	file, err := os.Open(filepath.Join(f.downloadDir, "photo-1.png"))
	return file, "photo-1.png", err
}

func multipartRequest(t *testing.T, fields map[string][]string, files map[string][]byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for key, values := range fields {
		for _, value := range values {
			require.NoError(t, writer.WriteField(key, value))
		}
	}
	for field, data := range files {
		part, err := writer.CreateFormFile(field, field+".bin")
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	req := httptest.NewRequest(http.MethodPost, "/follow-up-reports", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestFollowUpHandlerSubmitMultipart(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeFollowUpSrv{}
	h := NewFollowUpHandler(srv, 1024)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = multipartRequest(t, map[string][]string{
		"adoptionRequestId": {"req-1"},
		"week":              {"1"},
		"healthCondition":   {"healthy"},
		"feedingStatus":     {"regular"},
		"behaviorChecklist": {"playful", "calm"},
	}, map[string][]byte{
		"photos":    []byte("\x89PNG\r\n\x1a\n"),
		"vetReport": []byte("%PDF-1.4"),
	})
	c.Set(middleware.ContextUserKey, adopterClaims)

	h.Submit(c)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "req-1", srv.lastReq.AdoptionRequestID)
	assert.Equal(t, 1, srv.lastReq.Week)
	assert.Equal(t, models.HealthHealthy, srv.lastReq.HealthCondition)
	assert.Equal(t, []string{"playful", "calm"}, srv.lastReq.BehaviorChecklist)
	require.Len(t, srv.lastPhotos, 1)
	assert.Equal(t, "photos.bin", srv.lastPhotos[0].Filename)
	require.NotNil(t, srv.lastVet)
	assert.Equal(t, []byte("%PDF-1.4"), srv.lastVet.Data)
}

func TestFollowUpHandlerSubmitRejectsOversizedPart(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeFollowUpSrv{}
	h := NewFollowUpHandler(srv, 4)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = multipartRequest(t, map[string][]string{"adoptionRequestId": {"req-1"}}, map[string][]byte{
		"photos": []byte("0123456789"),
	})
	c.Set(middleware.ContextUserKey, adopterClaims)

	h.Submit(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, srv.lastReq.AdoptionRequestID)
}

func TestFollowUpHandlerSubmitJSONAndErrors(t *testing.T) {
	srv := &fakeFollowUpSrv{err: appErrors.Clone(appErrors.ErrWeekMismatch, "week 2 is due")}
	h := NewFollowUpHandler(srv, 0)

	c, rec := newTestContext(http.MethodPost, "/follow-up-reports", `{"adoptionRequestId":"req-1","week":1,"healthCondition":"healthy","feedingStatus":"regular"}`, adopterClaims)
	h.Submit(c)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "WEEK_MISMATCH", decodeEnvelope(t, rec).Error.Code)
	assert.Nil(t, srv.lastPhotos)

	srv.err = appErrors.ErrNotEligible
	c, rec = newTestContext(http.MethodPost, "/follow-up-reports", `{"adoptionRequestId":"req-1"}`, adopterClaims)
	h.Submit(c)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	c, rec = newTestContext(http.MethodPost, "/follow-up-reports", `{}`, nil)
	h.Submit(c)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestFollowUpHandlerSummaryAndList(t *testing.T) {
	next := 2
	srv := &fakeFollowUpSrv{
		summary: &models.FollowUpSummary{AdoptionRequestID: "req-1", TotalRequired: 4, Completed: 1, NextDueWeek: &next, SubmittedWeeks: []int{1}},
		reports: []dto.FollowUpReportResponse{{FollowUpReport: models.FollowUpReport{ID: "rep-1", Week: 1}}},
	}
	h := NewFollowUpHandler(srv, 0)

	c, rec := newTestContext(http.MethodGet, "/follow-up-reports/req-1/summary", "", adopterClaims)
	c.Params = gin.Params{{Key: "adoptionRequestId", Value: "req-1"}}
	h.Summary(c)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"adoptionRequestId":"req-1","totalRequired":4,"completed":1,"nextDueWeek":2,"submittedWeeks":[1],"isComplete":false}`,
		string(decodeEnvelope(t, rec).Data))

	c, rec = newTestContext(http.MethodGet, "/follow-up-reports/req-1", "", adminClaims)
	h.List(c)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestFollowUpHandlerDownload(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "photo-1.png"), []byte("\x89PNG\r\n\x1a\npixels"), 0o644))
	srv := &fakeFollowUpSrv{downloadDir: dir}
	h := NewFollowUpHandler(srv, 0)

	c, rec := newTestContext(http.MethodGet, "/follow-up-reports/files/rep-1/0?token=abc", "", adopterClaims)
	c.Params = gin.Params{{Key: "reportId", Value: "rep-1"}, {Key: "index", Value: "0"}}
	h.Download(c)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "abc", srv.lastToken)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, "\x89PNG\r\n\x1a\npixels", rec.Body.String())

	c, rec = newTestContext(http.MethodGet, "/follow-up-reports/files/rep-1/x", "", adopterClaims)
	c.Params = gin.Params{{Key: "reportId", Value: "rep-1"}, {Key: "index", Value: "x"}}
	h.Download(c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	srv.err = appErrors.Clone(appErrors.ErrForbidden, "download link expired")
	c, rec = newTestContext(http.MethodGet, "/follow-up-reports/files/rep-1/0?token=old", "", adopterClaims)
	c.Params = gin.Params{{Key: "reportId", Value: "rep-1"}, {Key: "index", Value: "0"}}
	h.Download(c)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/shelter-adoption-api/internal/dto"
)

type fakeDashboardSrv struct {
	resp *dto.AdoptionDashboardResponse
	hit  bool
	err  error
}

func (f *fakeDashboardSrv) Adoptions(context.Context) (*dto.AdoptionDashboardResponse, bool, error) {
	return f.resp, f.hit, f.err
}

func TestDashboardHandlerAdoptions(t *testing.T) {
	handler := NewDashboardHandler(&fakeDashboardSrv{
		resp: &dto.AdoptionDashboardResponse{Requests: dto.RequestStatusSection{Total: 3, Pending: 2, Approved: 1}},
		hit:  true,
	})

	c, rec := newTestContext(http.MethodGet, "/dashboard/adoptions", "", adminClaims)
	handler.Adoptions(c)

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, true, env.Meta["cacheHit"])
	assert.Contains(t, env.Meta, "processing_time_ms")
	var body dto.AdoptionDashboardResponse
	require.NoError(t, json.Unmarshal(env.Data, &body))
	assert.Equal(t, 2, body.Requests.Pending)
}

func TestDashboardHandlerAdoptionsError(t *testing.T) {
	handler := NewDashboardHandler(&fakeDashboardSrv{err: errors.New("db down")})

	c, rec := newTestContext(http.MethodGet, "/dashboard/adoptions", "", adminClaims)
	handler.Adoptions(c)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	c, rec = newTestContext(http.MethodGet, "/dashboard/adoptions", "", adminClaims)
	NewDashboardHandler(nil).Adoptions(c)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/noah-isme/shelter-adoption-api/pkg/config"
	"github.com/noah-isme/shelter-adoption-api/pkg/middleware/requestid"
)

func TestBuildConfig(t *testing.T) {
	cfg := buildConfig(config.EnvProduction, config.LogConfig{Level: "debug", Format: "console"})
	assert.Equal(t, "console", cfg.Encoding)
	assert.Equal(t, zapcore.DebugLevel, cfg.Level.Level())

	cfg = buildConfig(config.EnvDevelopment, config.LogConfig{Level: "loud"})
	assert.Equal(t, "json", cfg.Encoding)
	assert.Equal(t, zapcore.InfoLevel, cfg.Level.Level())
}

func TestGinMiddlewareLevels(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.DebugLevel)

	r := gin.New()
	r.Use(requestid.Middleware(), GinMiddleware(zap.New(core)))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	for _, path := range []string{"/ok", "/missing", "/boom"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	assert.Equal(t, "/missing", entries[1].ContextMap()["route"])
	assert.NotEmpty(t, entries[0].ContextMap()["request_id"])
}

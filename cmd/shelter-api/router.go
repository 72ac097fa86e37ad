package main

import (
	"strings"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/shelter-adoption-api/internal/handler"
	"github.com/noah-isme/shelter-adoption-api/internal/middleware"
	"github.com/noah-isme/shelter-adoption-api/internal/models"
	"github.com/noah-isme/shelter-adoption-api/internal/service"
	"github.com/noah-isme/shelter-adoption-api/pkg/config"
	"github.com/noah-isme/shelter-adoption-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/shelter-adoption-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/shelter-adoption-api/pkg/middleware/requestid"
)

func newRouter(cfg *config.Config, logr *zap.Logger, a *app, ops *handler.MetricsHandler, metrics *service.MetricsService) *gin.Engine {
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	if metrics != nil {
		r.Use(middleware.Metrics(metrics))
	}

	r.GET("/health", ops.Health)
	r.GET("/ready", ops.Ready)
	r.GET("/metrics", ops.Prometheus)
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	prefix := "/" + strings.Trim(cfg.APIPrefix, "/")
	api := r.Group(prefix)
	api.Use(middleware.JWT(a.auth))

	staff := middleware.RequireRoles(models.RoleAdmin, models.RoleVet)
	admin := middleware.RequireRoles(models.RoleAdmin)
	adopter := middleware.RequireRoles(models.RoleAdopter)
	anyone := middleware.RequireRoles(models.RoleAdmin, models.RoleVet, models.RoleAdopter)

	adoptions := api.Group("/adoption-requests")
	adoptions.POST("", adopter, a.adoptions.Create)
	adoptions.GET("", staff, a.adoptions.List)
	adoptions.GET("/mine", adopter, a.adoptions.ListMine)
	adoptions.GET("/export", admin, a.adoptions.Export)
	adoptions.GET("/dog/:dogId", admin, a.adoptions.ListByDog)
	adoptions.GET("/:id", anyone, a.adoptions.Get)
	adoptions.PUT("/:id", anyone, a.adoptions.Update)
	adoptions.DELETE("/:id", anyone, a.adoptions.Delete)
	adoptions.POST("/:id/approve", admin, a.adoptions.Approve)
	adoptions.POST("/:id/reject", admin, a.adoptions.Reject)
	adoptions.POST("/:id/vet-review", staff, a.adoptions.VetReview)
	adoptions.GET("/:id/certificate", anyone, a.adoptions.Certificate)
	adoptions.GET("/:id/certificate/pdf", anyone, a.adoptions.CertificatePDF)

	followUps := api.Group("/follow-up-reports")
	followUps.POST("", adopter, a.followUps.Submit)
	followUps.GET("/files/:reportId/:index", anyone, a.followUps.Download)
	followUps.GET("/:adoptionRequestId", anyone, a.followUps.List)
	followUps.GET("/:adoptionRequestId/summary", anyone, a.followUps.Summary)

	if a.dashboard != nil {
		api.GET("/dashboard/adoptions", admin, a.dashboard.Adoptions)
	}

	return r
}

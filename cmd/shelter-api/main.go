package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/noah-isme/shelter-adoption-api/api/swagger"
	"github.com/noah-isme/shelter-adoption-api/internal/handler"
	"github.com/noah-isme/shelter-adoption-api/internal/repository"
	"github.com/noah-isme/shelter-adoption-api/internal/service"
	"github.com/noah-isme/shelter-adoption-api/pkg/cache"
	"github.com/noah-isme/shelter-adoption-api/pkg/config"
	"github.com/noah-isme/shelter-adoption-api/pkg/database"
	"github.com/noah-isme/shelter-adoption-api/pkg/jobs"
	"github.com/noah-isme/shelter-adoption-api/pkg/logger"
	"github.com/noah-isme/shelter-adoption-api/pkg/storage"
)

// @title Shelter Adoption API
// @version 1.0.0
// @description Adoption requests, approvals and post-adoption follow-up for a dog shelter.
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg.Env, cfg.Log)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logr); err != nil {
		logr.Fatal("server stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, logr *zap.Logger) error {
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(db.DB); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		logr.Info("database migrated")
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, caching disabled", zap.Error(err))
		} else {
			defer redisClient.Close()
		}
	}

	var metrics *service.MetricsService
	if cfg.Metrics.Enabled {
		metrics = service.NewMetricsService()
	}

	app, err := buildApp(cfg, logr, db, redisClient, metrics)
	if err != nil {
		return err
	}
	if app.certificatePool != nil {
		app.certificatePool.Start(ctx)
		defer app.certificatePool.Stop()
	}

	checks := map[string]handler.ReadinessCheck{"database": db.PingContext}
	if redisClient != nil {
		checks["redis"] = cache.Check(redisClient)
	}
	router := newRouter(cfg, logr, app, handler.NewMetricsHandler(metrics, checks), metrics)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

type app struct {
	auth            *service.AuthService
	adoptions       *handler.AdoptionHandler
	followUps       *handler.FollowUpHandler
	dashboard       *handler.DashboardHandler
	certificatePool *jobs.Pool
}

func buildApp(cfg *config.Config, logr *zap.Logger, db *sqlx.DB, redisClient *redis.Client, metrics *service.MetricsService) (*app, error) {
	validate := validator.New()

	var cacheRepo service.CacheRepository
	if redisClient != nil {
		cacheRepo = repository.NewCacheRepository(redisClient, logr)
	}
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Dashboard.CacheTTL, logr, redisClient != nil)

	adoptionRepo := repository.NewAdoptionRequestRepository(db)
	dogRepo := repository.NewDogRepository(db)
	reportRepo := repository.NewFollowUpReportRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	authSvc := service.NewAuthService(validate, logr, service.AuthConfig{
		Secret: cfg.JWT.Secret,
		Expiry: cfg.JWT.Expiration,
		Issuer: cfg.JWT.Issuer,
	})

	opts := []service.AdoptionServiceOption{
		service.WithAdoptionCache(cacheSvc),
		service.WithAdoptionMetrics(metrics),
	}

	result := &app{auth: authSvc}
	var certificateSvc *service.CertificateService
	if cfg.Certificates.Enabled {
		certFiles, err := storage.NewFileStore(cfg.Certificates.StorageDir)
		if err != nil {
			return nil, fmt.Errorf("certificate storage: %w", err)
		}
		certificateSvc = service.NewCertificateService(service.CertificateServiceParams{
			Adoptions: adoptionRepo,
			Dogs:      dogRepo,
			Files:     certFiles,
			Metrics:   metrics,
			Logger:    logr,
		})
		pool := jobs.NewPool("certificates", certificateSvc.HandleTask, jobs.Config{
			Workers:    cfg.Certificates.WorkerConcurrency,
			MaxRetries: cfg.Certificates.WorkerRetries,
			Logger:     logr,
		})
		certificateSvc.AttachQueue(pool)
		result.certificatePool = pool
		opts = append(opts, service.WithCertificateScheduler(certificateSvc))
	}

	adoptionSvc := service.NewAdoptionService(adoptionRepo, dogRepo, auditRepo, validate, logr, opts...)
	if certificateSvc != nil {
		result.adoptions = handler.NewAdoptionHandler(adoptionSvc, certificateSvc)
	} else {
		result.adoptions = handler.NewAdoptionHandler(adoptionSvc, nil)
	}

	attachments, err := storage.NewFileStore(cfg.FollowUps.StorageDir)
	if err != nil {
		return nil, fmt.Errorf("follow-up storage: %w", err)
	}
	followUpSvc := service.NewFollowUpService(service.FollowUpServiceParams{
		Reports:   reportRepo,
		Adoptions: adoptionRepo,
		Files:     attachments,
		Signer:    storage.NewURLSigner(cfg.FollowUps.SignedURLSecret, cfg.FollowUps.SignedURLTTL),
		Audit:     auditRepo,
		Validator: validate,
		Logger:    logr,
		Cache:     cacheSvc,
		Metrics:   metrics,
		Config: service.FollowUpServiceConfig{
			MaxFileSizeBytes: cfg.FollowUps.MaxFileSizeBytes,
			MaxPhotos:        cfg.FollowUps.MaxPhotos,
			AllowedMIMEs:     cfg.FollowUps.AllowedMIMEs,
			LinkBase:         cfg.APIPrefix,
		},
	})
	result.followUps = handler.NewFollowUpHandler(followUpSvc, cfg.FollowUps.MaxFileSizeBytes)

	if cfg.Dashboard.Enabled {
		result.dashboard = handler.NewDashboardHandler(service.NewDashboardService(service.DashboardServiceParams{
			Adoptions: adoptionRepo,
			Dogs:      dogRepo,
			FollowUps: reportRepo,
			Cache:     cacheSvc,
			Logger:    logr,
			Config:    service.DashboardServiceConfig{CacheTTL: cfg.Dashboard.CacheTTL},
		}))
	}

	return result, nil
}

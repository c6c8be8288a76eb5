package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	billingapp "github.com/sitekhata/backend/internal/application/billing"
	catalogapp "github.com/sitekhata/backend/internal/application/catalog"
	identityapp "github.com/sitekhata/backend/internal/application/identity"
	importerapp "github.com/sitekhata/backend/internal/application/importer"
	partnerapp "github.com/sitekhata/backend/internal/application/partner"
	reportapp "github.com/sitekhata/backend/internal/application/report"
	worklogapp "github.com/sitekhata/backend/internal/application/worklog"
	"github.com/sitekhata/backend/internal/infrastructure/auth"
	"github.com/sitekhata/backend/internal/infrastructure/cache"
	"github.com/sitekhata/backend/internal/infrastructure/config"
	"github.com/sitekhata/backend/internal/infrastructure/logger"
	"github.com/sitekhata/backend/internal/infrastructure/persistence"
	"github.com/sitekhata/backend/internal/infrastructure/storage"
	"github.com/sitekhata/backend/internal/infrastructure/telemetry"
	"github.com/sitekhata/backend/internal/interfaces/http/handler"
	"github.com/sitekhata/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.NewFromConfig(cfg.Log, cfg.App.Env)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting SiteKhata backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Tracing is a no-op provider when telemetry is disabled, so the
	// shutdown path is the same either way.
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	// Route GORM's SQL logging through zap at the configured level.
	db.DB.Logger = logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	log.Info("Database connected", zap.String("driver", cfg.Database.Driver))

	// Repositories
	vendorRepo := persistence.NewGormVendorRepository(db.DB)
	itemRepo := persistence.NewGormItemRepository(db.DB)
	entryRepo := persistence.NewGormLedgerEntryRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	allocationRepo := persistence.NewGormAllocationRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	reportRepo := persistence.NewGormReportRepository(db.DB)
	workLogRepo := persistence.NewGormWorkLogRepository(db.DB)
	txManager := persistence.NewGormTransactionManager(db.DB)

	// Report cache: redis when configured, in-process map otherwise
	var reportCache reportapp.Cache
	if cfg.Redis.Enabled {
		redisCache, err := cache.NewRedisCache(cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to redis", zap.Error(err))
		}
		reportCache = redisCache
		log.Info("Redis cache connected", zap.String("addr", cfg.Redis.Addr()))
	} else {
		reportCache = cache.NewMemoryCache()
	}

	// Work log media storage: S3-compatible when configured, otherwise a
	// stub that keeps the worklog API functional without object storage
	var mediaStorage worklogapp.ObjectStorageService
	if cfg.Storage.Enabled {
		s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage,
			storage.WithLogger(log),
			storage.WithPresignExpiration(cfg.Storage.PresignExpiration),
		)
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		if err := s3Storage.EnsureBucket(context.Background()); err != nil {
			log.Fatal("Failed to ensure storage bucket", zap.Error(err))
		}
		mediaStorage = s3Storage
		log.Info("Object storage ready", zap.String("bucket", cfg.Storage.Bucket))
	} else {
		mediaStorage = storage.NewStubObjectStorage()
	}

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, identityapp.AuthServiceConfig{
		MaxLoginAttempts: cfg.Auth.MaxLoginAttempts,
		LockDuration:     cfg.Auth.LockDuration,
	}, log)
	userService := identityapp.NewUserService(userRepo, log)
	vendorService := partnerapp.NewVendorService(vendorRepo)
	itemService := catalogapp.NewItemService(itemRepo)
	entryService := billingapp.NewLedgerEntryService(entryRepo, allocationRepo, vendorRepo, itemRepo)
	paymentService := billingapp.NewPaymentService(paymentRepo, allocationRepo, vendorRepo)
	allocationService := billingapp.NewAllocationAppService(paymentRepo, entryRepo, allocationRepo, txManager, log)
	reconciliationService := billingapp.NewReconciliationService(vendorRepo, paymentRepo, entryRepo, allocationRepo, txManager, log)
	reportService := reportapp.NewReportService(reportRepo, reportCache, log)
	workLogService := worklogapp.NewWorkLogService(workLogRepo, mediaStorage, worklogapp.WorkLogServiceConfig{
		UploadURLExpiry:   cfg.Storage.PresignExpiration,
		DownloadURLExpiry: cfg.Storage.PresignExpiration,
	}, log)
	importService := importerapp.NewLedgerImportService(
		vendorRepo, itemService, entryRepo, paymentRepo, reconciliationService, log,
	)

	engine := router.Setup(cfg, log, jwtService, router.Handlers{
		System:         handler.NewSystemHandler(db.DB),
		Auth:           handler.NewAuthHandler(authService),
		User:           handler.NewUserHandler(userService),
		Vendor:         handler.NewVendorHandler(vendorService),
		Item:           handler.NewItemHandler(itemService),
		Entry:          handler.NewLedgerEntryHandler(entryService),
		Payment:        handler.NewPaymentHandler(paymentService, allocationService),
		Reconciliation: handler.NewReconciliationHandler(reconciliationService),
		Report:         handler.NewReportHandler(reportService),
		WorkLog:        handler.NewWorkLogHandler(workLogService),
		Import:         handler.NewImportHandler(importService),
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Ujjwal3492/Fitness/internal/handler"
	"github.com/Ujjwal3492/Fitness/internal/lifecycle"
	"github.com/Ujjwal3492/Fitness/internal/middleware"
	"github.com/Ujjwal3492/Fitness/internal/repository"
	"github.com/Ujjwal3492/Fitness/internal/webhook"
	"github.com/Ujjwal3492/Fitness/pkg/cache"
	"github.com/Ujjwal3492/Fitness/pkg/config"
	"github.com/Ujjwal3492/Fitness/pkg/database"
	"github.com/Ujjwal3492/Fitness/pkg/logger"
	"github.com/Ujjwal3492/Fitness/pkg/mediastore"
	"github.com/Ujjwal3492/Fitness/pkg/whatsapp"
	"github.com/Ujjwal3492/Fitness/prometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	log.Info("Starting fitness service...", zap.String("environment", cfg.Server.Env))

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Error("Failed to initialize database", zap.Error(err))
		return err
	}
	if err := database.Migrate(db, log); err != nil {
		return err
	}
	log.Info("Database connection established and migrations completed")

	metrics := prometheus.NewMetrics(cfg.Metrics.Prefix, nil)
	log.Info("Prometheus metrics initialized")

	listCache, err := cache.New(cfg.Cache, log)
	if err != nil {
		log.Warn("List cache unavailable, serving lists uncached",
			zap.String("backend", cfg.Cache.Backend),
			zap.Error(err))
		listCache = cache.Nop{}
	}
	if closer, ok := listCache.(io.Closer); ok {
		defer closer.Close()
	}

	e, err := newServer(ctx, cfg, log, db, metrics, listCache)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server", zap.Duration("timeout", cfg.Server.ShutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("Server stopped with error", zap.Error(err))
		return err
	}
	log.Info("Server stopped")
	return nil
}

// newServer wires every component and mounts the routes
func newServer(ctx context.Context, cfg *config.Config, log *zap.Logger, db *gorm.DB, metrics *prometheus.Metrics, listCache cache.Cache) (*echo.Echo, error) {
	backend, err := mediastore.NewBackend(ctx, cfg.Media)
	if err != nil {
		log.Warn("Media backend unavailable, uploads will fail",
			zap.String("backend", cfg.Media.Backend),
			zap.Error(err))
		backend = mediastore.Unavailable(cfg.Media.Backend, err)
	}
	store := mediastore.NewAdapter(backend, log, metrics)

	staging, err := mediastore.NewStaging(cfg.Media.StagingDir)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare staging directory: %w", err)
	}

	opts := lifecycle.Options{Store: store, Cache: listCache, Log: log, Metrics: metrics}

	trainerRepo := repository.NewTrainerRepository(db, metrics)
	testimonialRepo := repository.NewTestimonialRepository(db, metrics)
	leadRepo := repository.NewLeadRepository(db, metrics)

	waClient := whatsapp.NewClient(cfg.WhatsApp, log.Named("whatsapp"))
	ingestor := webhook.NewIngestor(leadRepo, waClient, cfg.WhatsApp, log.Named("webhook"), metrics)

	e := echo.New()
	e.HideBanner = true

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)
	e.Use(logger.Middleware(log))
	e.Use(metrics.Middleware())
	if cfg.Media.MaxUploadBytes > 0 {
		e.Use(echomiddleware.BodyLimit(fmt.Sprintf("%dB", cfg.Media.MaxUploadBytes)))
	}

	if fs, ok := backend.(*mediastore.FileSystemBackend); ok && strings.HasPrefix(cfg.Media.PublicBaseURL, "/") {
		e.Static(cfg.Media.PublicBaseURL, fs.Dir())
	}

	handler.RegisterRoutes(e, handler.Handlers{
		Trainers:     handler.NewTrainerHandler(trainerRepo, lifecycle.NewTrainers(trainerRepo, opts), staging, listCache, metrics),
		Testimonials: handler.NewTestimonialHandler(testimonialRepo, lifecycle.NewTestimonials(testimonialRepo, opts), staging, listCache, metrics),
		Webhook:      handler.NewWebhookHandler(cfg.WhatsApp.VerifyToken, ingestor),
		Health:       handler.NewHealthHandler(func() error { return database.Ping(db) }),
		Metrics:      metrics,
	})

	return e, nil
}

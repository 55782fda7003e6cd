package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"jobtracker/internal/auth"
	"jobtracker/internal/brand"
	"jobtracker/internal/cache"
	"jobtracker/internal/database"
	"jobtracker/internal/database/migration"
	"jobtracker/internal/export"
	handlers "jobtracker/internal/http/handler"
	"jobtracker/internal/http/middleware"
	"jobtracker/internal/llm"
	"jobtracker/internal/logger"
	"jobtracker/internal/otel"
	"jobtracker/internal/repository/postgres"
	"jobtracker/internal/service"
	"jobtracker/internal/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log := bootstrap()
	defer log.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			log.Warn("tracing shutdown failed", logger.Error(err))
		}
	}()

	db, err := database.NewPostgres(ctx, cfg.Database, log)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()
	if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
		return err
	}

	redisClient, err := cache.Connect(ctx, cfg.Redis, log)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer redisClient.Close()
	store := cache.NewStore(redisClient)

	hasher, err := auth.NewPasswordHasher(cfg.JWT.BcryptCost)
	if err != nil {
		return err
	}
	tokens, err := auth.NewTokenService(cfg.JWT.Secret, cfg.JWT.Expiration)
	if err != nil {
		return err
	}
	authSvc := auth.NewService(postgres.NewUserPostgres(db), hasher, tokens, store, log)

	deps := service.Deps{
		Repo:            postgres.NewApplicationPostgres(db),
		Cache:           store,
		Log:             log,
		BulkConcurrency: cfg.BulkConcurrency,
		Now: func() time.Time {
			return time.Now().In(cfg.Location())
		},
	}

	if cfg.MinIO.Endpoint != "" {
		objStore, err := storage.NewMinIO(ctx, cfg.MinIO, log)
		if err != nil {
			return fmt.Errorf("init object storage: %w", err)
		}
		deps.Publisher = export.NewPublisher(objStore, cfg.MinIO.PresignExpiry)
	} else {
		log.Warn("MINIO_ENDPOINT not set; exports disabled")
	}

	if cfg.Gemini.APIKey != "" {
		gen, err := llm.NewGeminiClient(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			return err
		}
		defer gen.Close()
		deps.Generator = gen
	} else {
		log.Warn("GEMINI_API_KEY not set; document generation disabled")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    10 * 1024 * 1024,
	})
	app.Use(otelfiber.Middleware())
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(log))
	app.Use(metrics.Handler())

	handlers.RegisterRoutes(app, handlers.Deps{
		DB:       db,
		Apps:     service.NewApplicationService(deps),
		Auth:     authSvc,
		Brand:    brand.NewClient(cfg.Brand.WebhookURL, cfg.Brand.Timeout),
		Metrics:  reg,
		Location: cfg.Location(),
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", logger.String("port", cfg.Port))
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down", logger.Duration("timeout", cfg.ShutdownTimeout))
	if err := app.ShutdownWithTimeout(cfg.ShutdownTimeout); err != nil {
		log.Error("graceful shutdown failed", logger.Error(err))
		return err
	}
	return nil
}

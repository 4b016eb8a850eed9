package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tutorialhub/backend/internal/api"
	"github.com/tutorialhub/backend/internal/api/handlers"
	"github.com/tutorialhub/backend/internal/auth"
	"github.com/tutorialhub/backend/internal/compiler"
	"github.com/tutorialhub/backend/internal/config"
	"github.com/tutorialhub/backend/internal/db"
	"github.com/tutorialhub/backend/internal/logger"
	"github.com/tutorialhub/backend/internal/metrics"
	"github.com/tutorialhub/backend/internal/middleware"
	"github.com/tutorialhub/backend/internal/repository/postgres"
	"github.com/tutorialhub/backend/internal/services"
	"github.com/tutorialhub/backend/internal/storage"
	"github.com/tutorialhub/backend/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "err", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if os.Getenv("APP_MIGRATE") == "true" {
		if err := db.RunMigrations(ctx, pool); err != nil {
			log.Error("migrations", "err", err)
			os.Exit(1)
		}
	}

	repos := postgres.NewRepositories(pool)
	wp := worker.NewPool(4)
	defer wp.Stop()

	tm := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTRefreshSecret, cfg.JWTIssuer, 15*time.Minute, 7*24*time.Hour)

	userSvc := services.NewUserService(repos.Users, tm)
	tutorialSvc := services.NewTutorialService(repos.Tutorials, repos.Categories, repos.Languages, wp)
	taxonomySvc := services.NewTaxonomyService(repos.Categories, repos.Languages, repos.ReadTimePresets)
	analyticsSvc := services.NewAnalyticsService(repos.Analytics)

	exec := compiler.New(cfg.ExecMode, cfg.Judge0URL, cfg.Judge0APIKey)

	var objectStore storage.ObjectStore
	if s3Store, err := storage.NewS3Store(ctx, cfg.S3Region, cfg.S3Bucket, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3BaseURL); err != nil {
		// Uploads stay disabled until storage is configured; the rest of the
		// API still serves.
		log.Warn("object storage not configured, uploads disabled", "err", err)
	} else {
		objectStore = s3Store
	}
	uploader := storage.NewUploader(objectStore)

	metrics.Init()
	r := api.NewRouter(api.Deps{
		Cfg:       cfg,
		Auth:      middleware.NewAuthMiddleware(tm, repos.Users),
		AuthH:     handlers.NewAuthHandler(userSvc),
		Tutorials: handlers.NewTutorialsHandler(tutorialSvc),
		Taxonomy:  handlers.NewTaxonomyHandler(taxonomySvc),
		Users:     handlers.NewUsersHandler(userSvc, analyticsSvc),
		Compiler:  handlers.NewCompilerHandler(exec),
		Upload:    handlers.NewUploadHandler(uploader),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.HTTPPort, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server", "err", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/animus-labs/headless-bridge/internal/config"
	"github.com/animus-labs/headless-bridge/internal/platform/auditlog"
	"github.com/animus-labs/headless-bridge/internal/platform/httpserver"
	"github.com/animus-labs/headless-bridge/internal/platform/objectstore"
	"github.com/animus-labs/headless-bridge/internal/platform/postgres"
	"github.com/animus-labs/headless-bridge/internal/runtimeexec"
	"github.com/animus-labs/headless-bridge/internal/service/runs"
	storageobjectstore "github.com/animus-labs/headless-bridge/internal/storage/objectstore"
	"github.com/go-chi/chi/v5"
)

// writeTimeoutSlack covers plan startup and response encoding on top of the agent timeout.
const writeTimeoutSlack = 30 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	ctx := context.Background()
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	settings, err := config.Load()
	if err != nil {
		logger.Error("invalid config", "error", err)
		os.Exit(2)
	}
	logger = logger.With("service", settings.ServiceName)

	var (
		opts   []runs.Option
		checks []httpserver.ReadinessCheck
	)

	if settings.AuditEnabled {
		dbCfg, err := postgres.ConfigFromEnv(config.EnvPrefix)
		if err != nil {
			logger.Error("invalid database config", "error", err)
			os.Exit(2)
		}
		db, err := postgres.Open(ctx, dbCfg)
		if err != nil {
			logger.Error("database unavailable", "error", err)
			os.Exit(1)
		}
		defer func() { _ = db.Close() }()

		startupCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err = auditlog.EnsureSchema(startupCtx, db)
		cancel()
		if err != nil {
			logger.Error("audit schema unavailable", "error", err)
			os.Exit(1)
		}

		opts = append(opts, runs.WithAuditor(auditlog.NewAppender(db, settings.ServiceName)))
		checks = append(checks, postgresCheck(db))
	}

	if settings.ArchiveEnabled {
		storeCfg, err := objectstore.ConfigFromEnv(config.EnvPrefix)
		if err != nil {
			logger.Error("invalid object store config", "error", err)
			os.Exit(2)
		}
		storeClient, err := objectstore.NewMinIOClient(storeCfg)
		if err != nil {
			logger.Error("object store client init failed", "error", err)
			os.Exit(2)
		}
		startupCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err = objectstore.EnsureBuckets(startupCtx, storeClient, storeCfg)
		cancel()
		if err != nil {
			logger.Error("object store unavailable", "error", err)
			os.Exit(1)
		}

		store, err := storageobjectstore.NewMinioStoreWithClient(storeClient)
		if err != nil {
			logger.Error("object store init failed", "error", err)
			os.Exit(2)
		}
		archiver, err := storageobjectstore.NewRunArchiver(store, storeCfg.BucketRuns)
		if err != nil {
			logger.Error("run archiver init failed", "error", err)
			os.Exit(2)
		}

		opts = append(opts, runs.WithArchiver(archiver))
		checks = append(checks, httpserver.ReadinessCheck{
			Name: "minio",
			Check: func(ctx context.Context) error {
				checkCtx, cancel := context.WithTimeout(ctx, 750*time.Millisecond)
				defer cancel()
				return objectstore.CheckBuckets(checkCtx, storeClient, storeCfg)
			},
		})
	}

	service := runs.New(logger, runtimeexec.NewProcessExecutor(), settings, opts...)
	api := newBridgeAPI(logger, service, settings.AuthFile, defaultMaxBodyBytes)

	router := chi.NewRouter()
	router.Get("/healthz", httpserver.Healthz(settings.ServiceName))
	router.Get("/readyz", httpserver.ReadyzWithChecks(settings.ServiceName, checks...))
	api.register(router)

	cfg := httpserver.Config{
		Service:         settings.ServiceName,
		Addr:            settings.HTTPAddr,
		ShutdownTimeout: settings.ShutdownTimeout,
		WriteTimeout:    settings.CodexTimeout + writeTimeoutSlack,
	}

	logger.Info("bridge configured",
		"codex_bin", settings.CodexBin,
		"codex_timeout_ms", settings.CodexTimeout.Milliseconds(),
		"auth_file", settings.AuthFile,
		"audit_enabled", settings.AuditEnabled,
		"archive_enabled", settings.ArchiveEnabled,
	)

	if err := httpserver.Run(ctx, logger, cfg, httpserver.Wrap(logger, router)); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func postgresCheck(db *sql.DB) httpserver.ReadinessCheck {
	return httpserver.ReadinessCheck{
		Name: "postgres",
		Check: func(ctx context.Context) error {
			checkCtx, cancel := context.WithTimeout(ctx, 750*time.Millisecond)
			defer cancel()
			return db.PingContext(checkCtx)
		},
	}
}

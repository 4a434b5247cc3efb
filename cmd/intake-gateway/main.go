// cmd/intake-gateway/main.go
package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"esports-waitlist/internal/api"
	"esports-waitlist/internal/common/auth"
	"esports-waitlist/internal/common/config"
	"esports-waitlist/internal/common/database"
	commonhttp "esports-waitlist/internal/common/http"
	"esports-waitlist/internal/common/logger"
	"esports-waitlist/internal/common/observability"
	"esports-waitlist/internal/intake/ledger"
	"esports-waitlist/internal/intake/session"
	"esports-waitlist/internal/intake/submit"
	"esports-waitlist/internal/models"
	"esports-waitlist/pkg/registry"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting intake gateway...",
		zap.String("environment", cfg.App.Environment),
		zap.String("upstream", cfg.Upstream.BaseURL),
	)

	ctx := context.Background()

	obs := observability.New(cfg.App.Name, log)
	defer obs.Shutdown()
	if endpoint := cfg.Observability.OTLPEndpoint; endpoint != "" {
		if err := obs.EnableTracing(ctx, endpoint); err != nil {
			zapLog.Warn("Tracing disabled", zap.String("endpoint", endpoint), zap.Error(err))
		} else {
			zapLog.Info("Tracing enabled", zap.String("endpoint", endpoint))
		}
	}
	checks := map[string]api.HealthCheck{}

	// --- Redis draft store ---
	redis := database.NewRedis(cfg.Database.Redis)
	err = retryWithBackoff(func() error {
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	checks["redis"] = redis.Ping
	zapLog.Info("Redis connected successfully")

	store := session.NewRedisStore(redis.Client, time.Duration(cfg.Intake.DraftTTL)*time.Minute)

	// --- Optional Postgres ledger ---
	var submissions ledger.Ledger = ledger.NopLedger{}
	if cfg.Database.Postgres.Enabled() {
		var pg *database.PostgresClient
		err = retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(ctx, cfg.Database.Postgres)
			return err
		}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
		if err != nil {
			zapLog.Fatal("postgres failed after retries", zap.Error(err))
		}
		defer pg.Close()

		pgLedger := ledger.NewPostgresLedger(pg, log)
		if err := pgLedger.EnsureSchema(ctx); err != nil {
			zapLog.Fatal("ledger schema setup failed", zap.Error(err))
		}
		submissions = pgLedger
		checks["postgres"] = pg.Ping
		zapLog.Info("PostgreSQL ledger enabled")
	} else {
		zapLog.Info("No postgres host configured, submission ledger disabled")
	}

	// --- Identity provider ---
	var identity auth.IdentityProvider
	kc := cfg.Auth.Keycloak
	if kc.URL != "" && kc.Realm != "" {
		identity = auth.NewKeycloakClient(kc.URL, kc.Realm, kc.ClientID, kc.ClientSecret, kc.RedirectURL)
	} else {
		identity = auth.StaticIdentity{}
		zapLog.Warn("Keycloak not configured, identity affordances disabled")
	}

	// --- Catalog ---
	catalog := models.LaunchCatalog()
	if cfg.Intake.CatalogPath != "" {
		reg, err := registry.LoadRegistry(cfg.Intake.CatalogPath)
		if err != nil {
			zapLog.Fatal("game catalog load failed", zap.String("path", cfg.Intake.CatalogPath), zap.Error(err))
		}
		catalog = reg.Catalog()
		zapLog.Info("Game catalog loaded",
			zap.String("version", reg.Version),
			zap.Int("games", len(catalog.Games())),
		)
	}

	upstreamClient := submit.NewClient(commonhttp.NewClient(config.GetDuration(cfg.Upstream.Timeout)), log)
	coordinator := submit.NewCoordinator(upstreamClient)

	sessions := session.NewService(session.Dependencies{
		Store:         store,
		Coordinator:   coordinator,
		Ledger:        submissions,
		Catalog:       catalog,
		Upstream:      cfg.Upstream,
		Observability: obs,
		Logger:        log,
	})

	srv := api.NewServer(cfg.Server, sessions, identity, checks, log)
	go func() {
		zapLog.Info("Intake gateway listening", zap.String("address", cfg.Server.Address))
		if err := srv.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			zapLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, draining requests...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	coordinator.CancelAll()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down HTTP server", zap.Error(err))
	}

	zapLog.Info("Intake gateway stopped gracefully")
}

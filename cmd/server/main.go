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

	_ "github.com/lib/pq" // Postgres driver

	"rsvpbackend/config"
	_ "rsvpbackend/docs"
	"rsvpbackend/internal/adapters/email"
	"rsvpbackend/internal/cache"
	deliveryhttp "rsvpbackend/internal/delivery/http"
	"rsvpbackend/internal/delivery/http/controllers"
	"rsvpbackend/internal/delivery/http/middleware"
	"rsvpbackend/internal/domain"
	"rsvpbackend/internal/repository/memory"
	"rsvpbackend/internal/repository/postgres"
	"rsvpbackend/internal/services"
)

const shutdownTimeout = 10 * time.Second

// @title RSVP API
// @version 1.0
// @description Collects guest RSVPs for events and reports per-status counts.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	logger := config.NewLogger(os.Stdout, cfg.Environment, cfg.LogLevel)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	notifier, err := newNotifier(cfg, logger)
	if err != nil {
		return err
	}

	responseCache := cache.NewResponseCache(cfg.CacheTTL)
	go responseCache.Start()
	defer responseCache.Stop()

	proxies, err := middleware.NewTrustedProxies(cfg.TrustedProxies)
	if err != nil {
		return err
	}
	globalLimiter := middleware.NewRateLimiter(cfg.RateLimitMax, cfg.RateLimitWindow)
	submitLimiter := middleware.NewRateLimiter(cfg.SubmitLimitMax, cfg.RateLimitWindow)
	go globalLimiter.Start()
	go submitLimiter.Start()
	defer globalLimiter.Stop()
	defer submitLimiter.Stop()

	rsvpService := services.NewRSVPService(repo, services.NewAggregator(repo), notifier, logger)
	rsvpController := controllers.NewRSVPController(logger, rsvpService, responseCache)

	handler := deliveryhttp.NewHandler(rsvpController, deliveryhttp.RouterConfig{
		AllowedOrigins: cfg.CORSOrigins,
		GlobalLimiter:  globalLimiter,
		SubmitLimiter:  submitLimiter,
		TrustedProxies: proxies,
	}, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "store", cfg.StoreDriver, "cors_origins", cfg.CORSOrigins)
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

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (domain.RSVPRepository, func(), error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		logger.Warn("using in-memory store; RSVPs are lost on restart")
		return memory.NewRSVPRepository(), func() {}, nil
	}

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		return nil, nil, err
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, nil, err
	}
	if cfg.DBAutoSchema {
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			db.Close()
			return nil, nil, err
		}
		logger.Info("database schema ensured")
	}
	logger.Info("connected to database")
	return postgres.NewRSVPRepository(db), func() { db.Close() }, nil
}

func newNotifier(cfg *config.Config, logger *slog.Logger) (domain.Notifier, error) {
	if cfg.NotifyEmail == "" {
		return nil, nil
	}
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.MailProvider,
		FromAddress: cfg.MailFromAddress,
		FromName:    cfg.MailFromName,
		SES: email.SESConfig{
			Region:             cfg.AWSRegion,
			AccessKeyID:        cfg.AWSAccessKeyID,
			SecretAccessKey:    cfg.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.SESInsecureSkipTLS,
		},
	}, logger)
	if err != nil {
		return nil, err
	}
	renderer, err := email.NewTemplateRenderer()
	if err != nil {
		return nil, err
	}
	return services.NewEmailNotifier(mailer, renderer, cfg.NotifyEmail, logger), nil
}

package main

import (
	"context"
	"crypto/tls"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/swiftfreight/forwarding-backend/cmd/mainconfig"
	"github.com/swiftfreight/forwarding-backend/internal/api/router"
	"github.com/swiftfreight/forwarding-backend/internal/audit"
	appconfig "github.com/swiftfreight/forwarding-backend/internal/config"
	httpmiddleware "github.com/swiftfreight/forwarding-backend/internal/http/middleware"
	"github.com/swiftfreight/forwarding-backend/internal/inquiries"
	"github.com/swiftfreight/forwarding-backend/internal/intake"
	"github.com/swiftfreight/forwarding-backend/internal/lead"
	"github.com/swiftfreight/forwarding-backend/internal/notify"
	"github.com/swiftfreight/forwarding-backend/internal/observability/metrics"
	"github.com/swiftfreight/forwarding-backend/internal/quotes"
	"github.com/swiftfreight/forwarding-backend/internal/triage"
	"github.com/swiftfreight/forwarding-backend/pkg/logging"
)

func main() {
	// Load .env when present; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting forwarding-backend API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()

	// Repositories: Postgres when configured, in-memory otherwise.
	var (
		quoteRepo   quotes.Repository
		inquiryRepo inquiries.Repository
		recorder    *audit.Recorder
	)
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to create database pool", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		if err := pool.Ping(ctx); err != nil {
			logger.Error("failed to reach database", "error", err)
			os.Exit(1)
		}
		quoteRepo = quotes.NewPostgresRepository(pool)
		inquiryRepo = inquiries.NewPostgresRepository(pool)

		auditDB, err := sql.Open("pgx", cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to open audit database handle", "error", err)
			os.Exit(1)
		}
		defer func() { _ = auditDB.Close() }()
		recorder = audit.NewRecorder(auditDB)
	} else {
		logger.Warn("DATABASE_URL not set, using in-memory repositories")
		quoteRepo = quotes.NewMemoryRepository()
		inquiryRepo = inquiries.NewMemoryRepository()
	}

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	leadMetrics := metrics.NewLeadMetrics(registry)

	// Email notifications for the ops inbox
	var sender notify.EmailSender
	switch cfg.EmailProvider {
	case "sendgrid":
		if sg := notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.SendGridFromEmail,
			FromName:  cfg.SendGridFromName,
		}, logger); sg != nil {
			sender = sg
		}
	case "ses":
		awsCfg, err := mainconfig.LoadAWSConfig(ctx, cfg)
		if err != nil {
			logger.Error("failed to load AWS config", "error", err)
			os.Exit(1)
		}
		if ses := notify.NewSESSender(sesv2.NewFromConfig(awsCfg), notify.SESConfig{
			FromEmail: cfg.SESFromEmail,
			FromName:  cfg.SendGridFromName,
		}, logger); ses != nil {
			sender = ses
		}
	}
	notifier := notify.NewService(sender, cfg.NotifyInboxEmail, logger)
	if notifier == nil {
		logger.Info("email notifications disabled")
	}

	// Intake throttling: Redis-backed when configured so the limit holds
	// across replicas, in-process token bucket otherwise.
	var intakeLimit func(http.Handler) http.Handler
	if cfg.UseRedisRateLimit && cfg.RedisAddr != "" {
		opts := &redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword}
		if cfg.RedisTLS {
			opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		limiter := httpmiddleware.NewRedisRateLimiter(
			redis.NewClient(opts),
			int64(cfg.RateLimitPerMinute),
			cfg.RateLimitWindow(),
			logger,
		)
		intakeLimit = limiter.Middleware
	} else {
		perSecond := float64(cfg.RateLimitPerMinute) / 60
		intakeLimit = httpmiddleware.RateLimit(perSecond, cfg.RateLimitBurst)
	}

	// Triage authorization. Production requires the JWT middleware; local
	// development runs open with a fixed identity.
	var (
		authorizer lead.Authorizer
		adminAuth  func(http.Handler) http.Handler
	)
	if cfg.AdminJWTSecret != "" {
		adminAuth = httpmiddleware.AdminJWT(cfg.AdminJWTSecret)
		authorizer = httpmiddleware.JWTAuthorizer{}
	} else {
		if cfg.IsProduction() {
			logger.Error("ADMIN_JWT_SECRET is required in production")
			os.Exit(1)
		}
		logger.Warn("admin auth disabled, triage endpoints are open")
		authorizer = lead.AllowAll{}
	}

	intakeSvc := intake.NewService(quoteRepo, inquiryRepo, notifier, leadMetrics, logger)
	triageSvc := triage.NewService(quoteRepo, inquiryRepo, authorizer, recorder, leadMetrics, logger)

	r := router.New(&router.Config{
		Logger:             logger,
		IntakeHandler:      intake.NewHandler(intakeSvc, logger),
		TriageHandler:      triage.NewHandler(triageSvc, logger),
		MetricsHandler:     promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		AdminAuth:          adminAuth,
		IntakeLimit:        intakeLimit,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
	fmt.Println("Server exited gracefully")
}

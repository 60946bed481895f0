package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shashiX07/email-service/internal/auth"
	"github.com/shashiX07/email-service/internal/config"
	"github.com/shashiX07/email-service/internal/database"
	"github.com/shashiX07/email-service/internal/handler"
	"github.com/shashiX07/email-service/internal/logger"
	"github.com/shashiX07/email-service/internal/middleware"
	"github.com/shashiX07/email-service/internal/model"
	"github.com/shashiX07/email-service/internal/ratelimit"
	"github.com/shashiX07/email-service/internal/repository"
	"github.com/shashiX07/email-service/internal/router"
	"github.com/shashiX07/email-service/internal/service"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "1.0.0"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	log.Info().Str("version", version).Str("environment", cfg.Environment).Msg("starting email gateway")

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if !cfg.SMTPConfigured() {
		log.Warn().Str("provider", cfg.SMTP.Provider).Msg("transport credentials are not configured; sends will fail")
	}

	ctx := context.Background()
	var deps []handler.Dependency

	// Rate limit store
	var limiter ratelimit.Store
	if cfg.RateLimit.Enabled {
		switch cfg.RateLimit.Store {
		case "redis":
			rdb, err := database.NewRedis(ctx, cfg.Redis)
			if err != nil {
				log.Fatal().Err(err).Msg("failed to connect to Redis")
			}
			defer rdb.Close()
			log.Info().Str("addr", cfg.Redis.Addr()).Msg("connected to Redis")

			limiter = ratelimit.NewRedisStore(rdb.Client, log)
			deps = append(deps, rdb)
		default:
			mem := ratelimit.NewMemoryStore(time.Minute)
			defer mem.Stop()
			limiter = mem
		}
		log.Info().
			Str("store", cfg.RateLimit.Store).
			Int("limit", cfg.RateLimit.Limit).
			Dur("window", cfg.RateLimit.Window).
			Msg("rate limiting enabled")
	} else {
		log.Warn().Msg("rate limiting disabled")
	}

	// Optional delivery log
	var recorder service.DeliveryRecorder
	if cfg.Database.Enabled {
		db, err := database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer db.Close()
		log.Info().Msg("connected to PostgreSQL")

		recorder = repository.NewDeliveryRepository(db)
		deps = append(deps, db)
	}

	// Delivery transport
	transport, err := service.NewTransport(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize transport")
	}
	log.Info().Str("provider", transport.Name()).Msg("transport initialized")

	mailSvc := service.NewMailService(cfg, transport, recorder, version, log)

	// Initialize handlers
	h := handler.New(mailSvc, deps, log, cfg, version)

	// Initialize middleware
	mw := middleware.New(limiter, auth.NewKeyVerifier(cfg.API.Key), log, cfg)
	log.Info().Str("key_fingerprint", auth.Fingerprint(cfg.API.Key)).Msg("API key loaded")

	// Set up router
	r := router.New(h, mw, cfg.CORS.AllowedOrigins)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal().Err(err).Str("addr", addr).Msg("failed to listen")
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	if cfg.Notifications.StartupEmail {
		go func() {
			res, err := mailSvc.SendStartupNotification(ctx, model.EndpointStartup)
			if err != nil {
				log.Error().Err(err).Msg("failed to send startup notification")
				return
			}
			log.Info().Str("message_id", res.MessageID).Msg("startup notification sent")
		}()
	}

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

package handler

import (
	"context"

	"github.com/shashiX07/email-service/internal/config"
	"github.com/shashiX07/email-service/internal/logger"
	"github.com/shashiX07/email-service/internal/service"
)

// Dependency is an optional backing service probed by the readiness check
type Dependency interface {
	Name() string
	HealthCheck(ctx context.Context) error
}

// Handler holds all HTTP handlers
type Handler struct {
	mail    *service.MailService
	deps    []Dependency
	log     *logger.Logger
	cfg     *config.Config
	version string
}

// New creates a new Handler instance
func New(mail *service.MailService, deps []Dependency, log *logger.Logger, cfg *config.Config, version string) *Handler {
	return &Handler{
		mail:    mail,
		deps:    deps,
		log:     log,
		cfg:     cfg,
		version: version,
	}
}

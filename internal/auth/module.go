// Package auth provides email/password authentication with JWT access
// tokens and rotating refresh tokens.
package auth

import (
	"printshop_backend/internal/auth/handler"
	"printshop_backend/internal/auth/repository"
	"printshop_backend/internal/auth/service"
	"printshop_backend/internal/email"
	apphttp "printshop_backend/internal/http"
	"printshop_backend/platform/config"
	"printshop_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Config combines the config interfaces the auth module needs.
type Config interface {
	config.AuthServiceConfig
	config.CookieConfig
}

// Module represents the auth domain module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new auth module with all dependencies wired.
func NewModule(pool *pgxpool.Pool, cfg Config, mailer email.Sender, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, cfg, mailer)
	h := handler.New(svc, cfg, val)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "auth"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes registers the module's routes. Auth endpoints get the
// stricter rate limiter.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	authGroup := ctx.V1.Group("/auth")
	authGroup.Use(ctx.AuthRateLimiter)
	m.handler.RegisterRoutes(authGroup)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)

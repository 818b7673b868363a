// Package profiles provides the user profile domain module.
package profiles

import (
	"printshop_backend/internal/adapters/storage"
	apphttp "printshop_backend/internal/http"
	"printshop_backend/internal/profiles/handler"
	"printshop_backend/internal/profiles/repository"
	"printshop_backend/internal/profiles/service"
	"printshop_backend/platform/logger"
	"printshop_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the profiles domain module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new profiles module with all dependencies wired.
func NewModule(pool *pgxpool.Pool, storageSvc storage.StorageService, avatarBucket string, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, storageSvc, avatarBucket, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "profiles"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes registers the module's routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/profiles"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)

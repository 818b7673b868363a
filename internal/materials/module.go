// Package materials provides the filament inventory domain module.
package materials

import (
	apphttp "printshop_backend/internal/http"
	"printshop_backend/internal/materials/handler"
	"printshop_backend/internal/materials/repository"
	"printshop_backend/internal/materials/service"
	"printshop_backend/platform/events"
	"printshop_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the materials domain module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new materials module with all dependencies wired.
func NewModule(pool *pgxpool.Pool, bus events.Bus, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, bus)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "materials"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes registers the module's routes. Inventory mutations are
// restricted to staff.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/materials"))
	m.handler.RegisterStaffRoutes(ctx.Staff.Group("/materials"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)

// Package budgets provides the price quote domain module: the pricing
// calculator, the quote form and history controllers, and persistence.
package budgets

import (
	"printshop_backend/internal/budgets/handler"
	"printshop_backend/internal/budgets/repository"
	"printshop_backend/internal/budgets/service"
	apphttp "printshop_backend/internal/http"
	"printshop_backend/platform/events"
	"printshop_backend/platform/logger"
	"printshop_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the budgets domain module.
type Module struct {
	handler    *handler.Handler
	service    *service.Service
	repository *repository.Repository
}

// NewModule creates a new budgets module with all dependencies wired.
func NewModule(pool *pgxpool.Pool, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, bus, log)
	h := handler.New(svc, val)

	return &Module{
		handler:    h,
		service:    svc,
		repository: repo,
	}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "budgets"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the repository for the history controller.
func (m *Module) Repository() *repository.Repository {
	return m.repository
}

// SetReminderScheduler wires the optional delivery reminder scheduler.
func (m *Module) SetReminderScheduler(scheduler service.DeliveryReminderScheduler) {
	m.service.SetReminderScheduler(scheduler)
}

// RegisterRoutes registers the module's routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/budgets"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)

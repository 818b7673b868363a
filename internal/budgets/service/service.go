package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"printshop_backend/internal/budgets/repository"
	domainevents "printshop_backend/internal/events"
	"printshop_backend/platform/apperr"
	"printshop_backend/platform/events"
	"printshop_backend/platform/logger"

	"github.com/google/uuid"
)

const deliveryDateLayout = "2006-01-02"

// DeliveryReminderScheduler enqueues a reminder task for a budget with
// a delivery date.
type DeliveryReminderScheduler interface {
	ScheduleDeliveryReminder(ctx context.Context, budgetID int64, userID uuid.UUID, projectName string, deliveryDate time.Time) error
}

type Service struct {
	repo      *repository.Repository
	bus       events.Bus
	reminders DeliveryReminderScheduler
	log       *logger.Logger
}

func New(repo *repository.Repository, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, bus: bus, log: log}
}

// SetReminderScheduler wires the optional delivery reminder scheduler.
func (s *Service) SetReminderScheduler(scheduler DeliveryReminderScheduler) {
	s.reminders = scheduler
}

// Calculate is the pure pricing preview.
func (s *Service) Calculate(in QuoteInput) QuoteResult {
	return Compute(in)
}

// Create validates and persists a budget draft, publishes a change
// event, and schedules a delivery reminder when a delivery date is set.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, draft BudgetDraft) (repository.Budget, error) {
	if strings.TrimSpace(draft.ClientName) == "" {
		return repository.Budget{}, apperr.Validation("client name is required")
	}
	if strings.TrimSpace(draft.ProjectName) == "" {
		return repository.Budget{}, apperr.Validation("project name is required")
	}
	if draft.TotalCost <= 0 {
		return repository.Budget{}, apperr.Validation("total must be greater than zero")
	}

	var deliveryDate *time.Time
	if draft.DeliveryDate != nil {
		parsed, err := time.Parse(deliveryDateLayout, *draft.DeliveryDate)
		if err != nil {
			return repository.Budget{}, apperr.Validation("delivery date must be YYYY-MM-DD")
		}
		deliveryDate = &parsed
	}

	budget, err := s.repo.Insert(ctx, repository.InsertParams{
		UserID:         userID,
		ClientName:     strings.TrimSpace(draft.ClientName),
		ProjectName:    strings.TrimSpace(draft.ProjectName),
		TotalCost:      draft.TotalCost,
		Grams:          draft.Grams,
		PrintTimeHours: draft.PrintTimeHours,
		IsUrgent:       draft.IsUrgent,
		DeliveryDate:   deliveryDate,
		Notes:          draft.Notes,
	})
	if err != nil {
		return repository.Budget{}, err
	}

	s.bus.Publish(ctx, domainevents.NewChangeEvent(
		domainevents.BudgetsChanged, "budgets", domainevents.ActionInsert))

	if s.reminders != nil && budget.DeliveryDate != nil {
		if err := s.reminders.ScheduleDeliveryReminder(ctx, budget.ID, userID, budget.ProjectName, *budget.DeliveryDate); err != nil {
			s.log.Error("failed to schedule delivery reminder", "budget_id", budget.ID, "error", err)
		}
	}

	return budget, nil
}

// Insert adapts Create to the BudgetWriter interface used by the form
// controller.
func (s *Service) Insert(ctx context.Context, userID uuid.UUID, draft BudgetDraft) error {
	_, err := s.Create(ctx, userID, draft)
	return err
}

func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]repository.Budget, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) Delete(ctx context.Context, id int64, userID uuid.UUID) error {
	err := s.repo.Delete(ctx, id, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound("budget not found")
	}
	if err != nil {
		return err
	}

	s.bus.Publish(ctx, domainevents.NewChangeEvent(
		domainevents.BudgetsChanged, "budgets", domainevents.ActionDelete))
	return nil
}

// Compile-time checks for the controller interfaces.
var _ BudgetWriter = (*Service)(nil)
var _ BudgetStore = (*repository.Repository)(nil)

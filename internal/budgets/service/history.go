package service

import (
	"context"
	"sync"

	"printshop_backend/internal/budgets/repository"
	"printshop_backend/platform/logger"

	"github.com/google/uuid"
)

// BudgetStore reads and deletes persisted budgets.
type BudgetStore interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]repository.Budget, error)
	Delete(ctx context.Context, id int64, userID uuid.UUID) error
}

// HistoryObserver receives the list and loading flag after changes.
type HistoryObserver func(budgets []repository.Budget, loading bool)

// HistoryController owns the saved-quote list for one user. Failures
// are logged and swallowed: a failed refresh keeps the prior list and
// a failed delete does not alter it (no optimistic removal).
type HistoryController struct {
	mu        sync.Mutex
	store     BudgetStore
	log       *logger.Logger
	userID    uuid.UUID
	budgets   []repository.Budget
	loading   bool
	observers []HistoryObserver
}

// NewHistoryController creates a controller for the given user.
func NewHistoryController(store BudgetStore, log *logger.Logger, userID uuid.UUID) *HistoryController {
	return &HistoryController{
		store:   store,
		log:     log,
		userID:  userID,
		budgets: make([]repository.Budget, 0),
	}
}

// Subscribe registers an observer notified on every change.
func (c *HistoryController) Subscribe(fn HistoryObserver) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, fn)
}

// Budgets returns a snapshot of the current list.
func (c *HistoryController) Budgets() []repository.Budget {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]repository.Budget, len(c.budgets))
	copy(out, c.budgets)
	return out
}

// Loading reports whether a refresh or delete is in progress.
func (c *HistoryController) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Refresh reloads the list, newest first. On failure the prior list is
// kept.
func (c *HistoryController) Refresh(ctx context.Context) {
	c.setLoading(true)
	defer c.setLoading(false)

	budgets, err := c.store.ListByUser(ctx, c.userID)
	if err != nil {
		c.log.Error("budget history refresh failed", "user_id", c.userID.String(), "error", err)
		return
	}

	c.mu.Lock()
	c.budgets = budgets
	c.mu.Unlock()
	c.notify()
}

// Delete removes one budget and refreshes. On failure the list is left
// untouched.
func (c *HistoryController) Delete(ctx context.Context, id int64) {
	c.setLoading(true)

	if err := c.store.Delete(ctx, id, c.userID); err != nil {
		c.log.Error("budget delete failed", "user_id", c.userID.String(), "budget_id", id, "error", err)
		c.setLoading(false)
		return
	}

	c.setLoading(false)
	c.Refresh(ctx)
}

func (c *HistoryController) setLoading(loading bool) {
	c.mu.Lock()
	c.loading = loading
	c.mu.Unlock()
	c.notify()
}

func (c *HistoryController) notify() {
	c.mu.Lock()
	budgets := make([]repository.Budget, len(c.budgets))
	copy(budgets, c.budgets)
	loading := c.loading
	observers := c.observers
	c.mu.Unlock()

	for _, fn := range observers {
		fn(budgets, loading)
	}
}

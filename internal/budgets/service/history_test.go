package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"printshop_backend/internal/budgets/repository"
	"printshop_backend/platform/logger"

	"github.com/google/uuid"
)

// fakeStore serves a fixed list and can fail list or delete calls.
type fakeStore struct {
	budgets   []repository.Budget
	listErr   error
	deleteErr error
	deleted   []int64
}

func (s *fakeStore) ListByUser(_ context.Context, _ uuid.UUID) ([]repository.Budget, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := make([]repository.Budget, len(s.budgets))
	copy(out, s.budgets)
	return out, nil
}

func (s *fakeStore) Delete(_ context.Context, id int64, _ uuid.UUID) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = append(s.deleted, id)
	for i, b := range s.budgets {
		if b.ID == id {
			s.budgets = append(s.budgets[:i], s.budgets[i+1:]...)
			break
		}
	}
	return nil
}

func sampleBudgets() []repository.Budget {
	now := time.Now()
	return []repository.Budget{
		{ID: 2, ClientName: "Acme", ProjectName: "Bracket", TotalCost: 79.7, CreatedAt: now},
		{ID: 1, ClientName: "Beta", ProjectName: "Gear", TotalCost: 42.0, CreatedAt: now.Add(-time.Hour)},
	}
}

func TestHistoryRefresh_LoadsList(t *testing.T) {
	store := &fakeStore{budgets: sampleBudgets()}
	c := NewHistoryController(store, logger.New("test"), uuid.New())

	c.Refresh(context.Background())

	got := c.Budgets()
	if len(got) != 2 {
		t.Fatalf("expected 2 budgets, got %d", len(got))
	}
	if got[0].ID != 2 {
		t.Fatalf("expected newest first, got id %d", got[0].ID)
	}
	if c.Loading() {
		t.Fatalf("expected loading false after refresh")
	}
}

func TestHistoryRefresh_FailureKeepsPriorList(t *testing.T) {
	store := &fakeStore{budgets: sampleBudgets()}
	c := NewHistoryController(store, logger.New("test"), uuid.New())
	c.Refresh(context.Background())

	store.listErr = errors.New("connection reset")
	c.Refresh(context.Background())

	got := c.Budgets()
	if len(got) != 2 {
		t.Fatalf("expected prior list kept, got %d budgets", len(got))
	}
	if c.Loading() {
		t.Fatalf("expected loading false after failed refresh")
	}
}

func TestHistoryDelete_FailureLeavesListUntouched(t *testing.T) {
	store := &fakeStore{budgets: sampleBudgets()}
	c := NewHistoryController(store, logger.New("test"), uuid.New())
	c.Refresh(context.Background())

	store.deleteErr = errors.New("connection reset")
	c.Delete(context.Background(), 2)

	got := c.Budgets()
	if len(got) != 2 {
		t.Fatalf("expected list untouched after failed delete, got %d", len(got))
	}
	if got[0].ID != 2 {
		t.Fatalf("expected budget 2 still present")
	}
}

func TestHistoryDelete_SuccessRefreshes(t *testing.T) {
	store := &fakeStore{budgets: sampleBudgets()}
	c := NewHistoryController(store, logger.New("test"), uuid.New())
	c.Refresh(context.Background())

	c.Delete(context.Background(), 2)

	if len(store.deleted) != 1 || store.deleted[0] != 2 {
		t.Fatalf("expected delete of budget 2, got %v", store.deleted)
	}
	got := c.Budgets()
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("expected refreshed list without budget 2, got %v", got)
	}
}

func TestHistorySubscribe_ObserverSeesChanges(t *testing.T) {
	store := &fakeStore{budgets: sampleBudgets()}
	c := NewHistoryController(store, logger.New("test"), uuid.New())

	var lastLen int
	c.Subscribe(func(budgets []repository.Budget, _ bool) {
		lastLen = len(budgets)
	})

	c.Refresh(context.Background())

	if lastLen != 2 {
		t.Fatalf("expected observer to see 2 budgets, got %d", lastLen)
	}
}

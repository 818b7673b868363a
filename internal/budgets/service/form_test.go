package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"printshop_backend/platform/apperr"

	"github.com/google/uuid"
)

// fakeWriter records inserted drafts and can block or fail on demand.
type fakeWriter struct {
	mu      sync.Mutex
	inserts int
	last    BudgetDraft
	failErr error
	block   chan struct{}
}

func (w *fakeWriter) Insert(_ context.Context, _ uuid.UUID, draft BudgetDraft) error {
	if w.block != nil {
		<-w.block
	}
	w.mu.Lock()
	w.inserts++
	w.last = draft
	w.mu.Unlock()
	return w.failErr
}

func (w *fakeWriter) count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.inserts
}

func (w *fakeWriter) lastDraft() BudgetDraft {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.last
}

func validForm(c *FormController) {
	c.Apply(FormEvent{Field: FieldClientName, Value: "Acme"})
	c.Apply(FormEvent{Field: FieldProjectName, Value: "Bracket"})
	c.Apply(FormEvent{Field: FieldWeightGrams, Value: "100"})
	c.Apply(FormEvent{Field: FieldPrintHours, Value: "2"})
}

func TestNewFormState_DefaultsComputed(t *testing.T) {
	state := NewFormState()

	if state.Input.MaterialCostPerKg != DefaultMaterialCostPerKg {
		t.Fatalf("expected default material cost, got %q", state.Input.MaterialCostPerKg)
	}
	if state.Result.Total != 0 {
		t.Fatalf("expected zero total on empty form, got %v", state.Result.Total)
	}
}

func TestReduce_PricingEditRecomputes(t *testing.T) {
	state := NewFormState()
	state = Reduce(state, FormEvent{Field: FieldWeightGrams, Value: "100"})

	if state.Result.MaterialCost == 0 {
		t.Fatalf("expected material cost after weight edit, got 0")
	}

	withUrgent := Reduce(state, FormEvent{Field: FieldUrgent, Flag: true})
	if withUrgent.Result.Total <= state.Result.Total {
		t.Fatalf("expected urgent toggle to raise total")
	}
}

func TestReduce_DescriptiveEditDoesNotRecompute(t *testing.T) {
	state := NewFormState()
	state = Reduce(state, FormEvent{Field: FieldWeightGrams, Value: "100"})
	before := state.Result

	state = Reduce(state, FormEvent{Field: FieldClientName, Value: "Acme"})
	state = Reduce(state, FormEvent{Field: FieldNotes, Value: "two-tone"})

	if state.Result != before {
		t.Fatalf("expected result unchanged by descriptive edits")
	}
	if state.ClientName != "Acme" || state.Notes != "two-tone" {
		t.Fatalf("expected descriptive fields applied")
	}
}

func TestSave_ValidationFailureSkipsInsert(t *testing.T) {
	writer := &fakeWriter{}
	c := NewFormController(writer)
	c.Apply(FormEvent{Field: FieldProjectName, Value: "Bracket"})
	c.Apply(FormEvent{Field: FieldWeightGrams, Value: "100"})

	err := c.Save(context.Background(), uuid.New())

	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if writer.count() != 0 {
		t.Fatalf("expected no insert, got %d", writer.count())
	}
	state := c.State()
	if !state.MessageIsError || state.Message != "client name is required" {
		t.Fatalf("expected validation message, got %q", state.Message)
	}
}

func TestSave_ZeroTotalRejected(t *testing.T) {
	writer := &fakeWriter{}
	c := NewFormController(writer)
	c.Apply(FormEvent{Field: FieldClientName, Value: "Acme"})
	c.Apply(FormEvent{Field: FieldProjectName, Value: "Bracket"})

	err := c.Save(context.Background(), uuid.New())

	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if writer.count() != 0 {
		t.Fatalf("expected no insert, got %d", writer.count())
	}
}

func TestSave_SuccessResetsForm(t *testing.T) {
	writer := &fakeWriter{}
	c := NewFormController(writer)
	validForm(c)

	if err := c.Save(context.Background(), uuid.New()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if writer.count() != 1 {
		t.Fatalf("expected one insert, got %d", writer.count())
	}

	state := c.State()
	if state.ClientName != "" || state.Input.WeightGrams != "" {
		t.Fatalf("expected form reset after save")
	}
	if state.Input.MaterialCostPerKg != DefaultMaterialCostPerKg {
		t.Fatalf("expected pricing defaults restored")
	}
	if state.Message != "quote saved" || state.MessageIsError {
		t.Fatalf("expected success message, got %q", state.Message)
	}
}

func TestSave_DraftMatchesComputedResult(t *testing.T) {
	writer := &fakeWriter{}
	c := NewFormController(writer)
	validForm(c)
	c.Apply(FormEvent{Field: FieldPrintMinutes, Value: "30"})
	c.Apply(FormEvent{Field: FieldUrgent, Flag: true})
	c.Apply(FormEvent{Field: FieldDeliveryDate, Value: "  2026-09-15  "})
	c.Apply(FormEvent{Field: FieldNotes, Value: "   "})

	want := c.State().Result

	if err := c.Save(context.Background(), uuid.New()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	draft := writer.lastDraft()
	if draft.TotalCost != want.Total {
		t.Fatalf("expected persisted total %v, got %v", want.Total, draft.TotalCost)
	}
	if draft.PrintTimeHours != 2.5 {
		t.Fatalf("expected print time 2.5 hours, got %v", draft.PrintTimeHours)
	}
	if draft.Grams != 100 {
		t.Fatalf("expected 100 grams, got %v", draft.Grams)
	}
	if !draft.IsUrgent {
		t.Fatalf("expected urgent flag persisted")
	}
	if draft.ClientName != "Acme" || draft.ProjectName != "Bracket" {
		t.Fatalf("expected trimmed names, got %q/%q", draft.ClientName, draft.ProjectName)
	}
	if draft.DeliveryDate == nil || *draft.DeliveryDate != "2026-09-15" {
		t.Fatalf("expected trimmed delivery date, got %v", draft.DeliveryDate)
	}
	if draft.Notes != nil {
		t.Fatalf("expected blank notes to be absent, got %q", *draft.Notes)
	}
}

func TestSave_DatastoreFailureKeepsForm(t *testing.T) {
	writer := &fakeWriter{failErr: errors.New("connection refused")}
	c := NewFormController(writer)
	validForm(c)

	err := c.Save(context.Background(), uuid.New())

	if !apperr.Is(err, apperr.KindInternal) {
		t.Fatalf("expected internal error, got %v", err)
	}
	state := c.State()
	if state.ClientName != "Acme" {
		t.Fatalf("expected form kept after failure, got client %q", state.ClientName)
	}
	if !state.MessageIsError || state.Message != "could not save the quote" {
		t.Fatalf("expected failure message, got %q", state.Message)
	}

	// No retry happens on its own.
	if writer.count() != 1 {
		t.Fatalf("expected exactly one insert attempt, got %d", writer.count())
	}
}

func TestSave_SecondSaveConflictsWhileInFlight(t *testing.T) {
	writer := &fakeWriter{block: make(chan struct{})}
	c := NewFormController(writer)
	validForm(c)

	saving := make(chan struct{})
	c.Subscribe(func(state FormState) {
		if state.Saving {
			select {
			case <-saving:
			default:
				close(saving)
			}
		}
	})

	done := make(chan error, 1)
	go func() {
		done <- c.Save(context.Background(), uuid.New())
	}()
	<-saving

	err := c.Save(context.Background(), uuid.New())
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}

	close(writer.block)
	if err := <-done; err != nil {
		t.Fatalf("unexpected error from first save: %v", err)
	}
	if writer.count() != 1 {
		t.Fatalf("expected one insert, got %d", writer.count())
	}
}

func TestApply_NotifiesObservers(t *testing.T) {
	c := NewFormController(&fakeWriter{})

	var got []FormState
	c.Subscribe(func(state FormState) {
		got = append(got, state)
	})

	c.Apply(FormEvent{Field: FieldClientName, Value: "Acme"})
	c.Apply(FormEvent{Field: FieldWeightGrams, Value: "50"})

	if len(got) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(got))
	}
	if got[1].Input.WeightGrams != "50" {
		t.Fatalf("expected latest state in notification")
	}
}

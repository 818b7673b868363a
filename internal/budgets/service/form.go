package service

import (
	"context"
	"strings"
	"sync"

	"printshop_backend/platform/apperr"

	"github.com/google/uuid"
)

// FormField identifies a quote form field for events.
type FormField int

const (
	FieldClientName FormField = iota
	FieldProjectName
	FieldDeliveryDate
	FieldNotes
	FieldWeightGrams
	FieldPrintHours
	FieldPrintMinutes
	FieldMaterialCostPerKg
	FieldElectricityCostPerKwh
	FieldPrinterWatts
	FieldMachineWearPerHour
	FieldProfitMarginPercent
	FieldUrgent
	FieldStudent
)

// FormEvent is a single user edit. Value carries text input, Flag
// carries toggle input for FieldUrgent and FieldStudent.
type FormEvent struct {
	Field FormField
	Value string
	Flag  bool
}

// FormState is the complete state of a quote form. Descriptive fields
// live beside the pricing input and its current result.
type FormState struct {
	ClientName   string
	ProjectName  string
	DeliveryDate string
	Notes        string

	Input  QuoteInput
	Result QuoteResult

	Saving         bool
	Message        string
	MessageIsError bool
}

// NewFormState returns a form initialized with the pricing defaults
// and the result computed from them.
func NewFormState() FormState {
	input := QuoteInput{
		MaterialCostPerKg:     DefaultMaterialCostPerKg,
		ElectricityCostPerKwh: DefaultElectricityCostPerKwh,
		PrinterWatts:          DefaultPrinterWatts,
		MachineWearPerHour:    DefaultMachineWearPerHour,
		ProfitMarginPercent:   DefaultProfitMarginPercent,
	}
	return FormState{
		Input:  input,
		Result: Compute(input),
	}
}

// Reduce applies one form event and returns the next state. Pricing
// edits recompute the result synchronously; descriptive edits do not.
// Reduce is pure: it never touches a datastore.
func Reduce(state FormState, ev FormEvent) FormState {
	switch ev.Field {
	case FieldClientName:
		state.ClientName = ev.Value
		return state
	case FieldProjectName:
		state.ProjectName = ev.Value
		return state
	case FieldDeliveryDate:
		state.DeliveryDate = ev.Value
		return state
	case FieldNotes:
		state.Notes = ev.Value
		return state
	case FieldWeightGrams:
		state.Input.WeightGrams = ev.Value
	case FieldPrintHours:
		state.Input.PrintHours = ev.Value
	case FieldPrintMinutes:
		state.Input.PrintMinutes = ev.Value
	case FieldMaterialCostPerKg:
		state.Input.MaterialCostPerKg = ev.Value
	case FieldElectricityCostPerKwh:
		state.Input.ElectricityCostPerKwh = ev.Value
	case FieldPrinterWatts:
		state.Input.PrinterWatts = ev.Value
	case FieldMachineWearPerHour:
		state.Input.MachineWearPerHour = ev.Value
	case FieldProfitMarginPercent:
		state.Input.ProfitMarginPercent = ev.Value
	case FieldUrgent:
		state.Input.IsUrgent = ev.Flag
	case FieldStudent:
		state.Input.IsStudent = ev.Flag
	}
	state.Result = Compute(state.Input)
	return state
}

// BudgetDraft is the write model built from a valid form at save time.
type BudgetDraft struct {
	ClientName     string
	ProjectName    string
	TotalCost      float64
	Grams          float64
	PrintTimeHours float64
	IsUrgent       bool
	DeliveryDate   *string
	Notes          *string
}

// BudgetWriter persists a budget draft for a user.
type BudgetWriter interface {
	Insert(ctx context.Context, userID uuid.UUID, draft BudgetDraft) error
}

// Observer receives the new form state after every change.
type Observer func(FormState)

// FormController owns a form's state and serializes edits and saves.
// A second Save while one is in flight fails fast with a conflict
// error and performs no insert.
type FormController struct {
	mu        sync.Mutex
	state     FormState
	writer    BudgetWriter
	observers []Observer
	inFlight  bool
}

// NewFormController creates a controller with default form state.
func NewFormController(writer BudgetWriter) *FormController {
	return &FormController{
		state:  NewFormState(),
		writer: writer,
	}
}

// Subscribe registers an observer notified on every state change.
func (c *FormController) Subscribe(fn Observer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, fn)
}

// State returns a snapshot of the current form state.
func (c *FormController) State() FormState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Apply runs one event through the reducer and notifies observers.
func (c *FormController) Apply(ev FormEvent) {
	c.mu.Lock()
	c.state = Reduce(c.state, ev)
	state := c.state
	observers := c.observers
	c.mu.Unlock()

	for _, fn := range observers {
		fn(state)
	}
}

// Save validates the form and persists it. Validation failures set a
// user-visible message and perform no I/O. Datastore failures surface
// as an error message and are never retried. On success the editable
// fields reset to defaults.
func (c *FormController) Save(ctx context.Context, userID uuid.UUID) error {
	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return apperr.Conflict("a save is already in progress")
	}

	state := c.state
	if err := validateDraft(state); err != nil {
		c.state.Message = err.Error()
		c.state.MessageIsError = true
		c.notifyLocked()
		c.mu.Unlock()
		return err
	}

	c.inFlight = true
	c.state.Saving = true
	c.state.Message = ""
	c.state.MessageIsError = false
	draft := buildDraft(state)
	c.notifyLocked()
	c.mu.Unlock()

	err := c.writer.Insert(ctx, userID, draft)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight = false
	c.state.Saving = false
	if err != nil {
		c.state.Message = "could not save the quote"
		c.state.MessageIsError = true
		c.notifyLocked()
		return apperr.Persistence("budgets.save", err)
	}

	reset := NewFormState()
	reset.Message = "quote saved"
	c.state = reset
	c.notifyLocked()
	return nil
}

// notifyLocked invokes observers with the current state. Callers must
// hold the mutex; observers must not call back into the controller.
func (c *FormController) notifyLocked() {
	state := c.state
	for _, fn := range c.observers {
		fn(state)
	}
}

func validateDraft(state FormState) error {
	if strings.TrimSpace(state.ClientName) == "" {
		return apperr.Validation("client name is required")
	}
	if strings.TrimSpace(state.ProjectName) == "" {
		return apperr.Validation("project name is required")
	}
	if state.Result.Total <= 0 {
		return apperr.Validation("total must be greater than zero")
	}
	return nil
}

func buildDraft(state FormState) BudgetDraft {
	draft := BudgetDraft{
		ClientName:     strings.TrimSpace(state.ClientName),
		ProjectName:    strings.TrimSpace(state.ProjectName),
		TotalCost:      state.Result.Total,
		Grams:          parseAmount(state.Input.WeightGrams),
		PrintTimeHours: state.Result.TotalHours,
		IsUrgent:       state.Input.IsUrgent,
	}
	if d := strings.TrimSpace(state.DeliveryDate); d != "" {
		draft.DeliveryDate = &d
	}
	if n := strings.TrimSpace(state.Notes); n != "" {
		draft.Notes = &n
	}
	return draft
}

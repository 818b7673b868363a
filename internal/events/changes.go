// Package events defines the domain events exchanged between modules.
package events

import (
	platformevents "printshop_backend/platform/events"
)

// Event names for data change notifications. Realtime subscribers use
// these to tell connected clients which table to refetch.
const (
	PrintersChanged  = "printers.changed"
	MaterialsChanged = "materials.changed"
	BudgetsChanged   = "budgets.changed"
)

// Change actions.
const (
	ActionInsert = "INSERT"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"
)

// ChangeEvent signals that rows in a table changed. Payloads carry no
// row data; consumers refetch the table they care about.
type ChangeEvent struct {
	platformevents.BaseEvent
	Table  string
	Action string
}

// NewChangeEvent creates a change event for the given table and action.
// The event name is derived from the table name.
func NewChangeEvent(name, table, action string) ChangeEvent {
	return ChangeEvent{
		BaseEvent: platformevents.NewBaseEvent(name),
		Table:     table,
		Action:    action,
	}
}

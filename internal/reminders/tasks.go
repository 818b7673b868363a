// Package reminders schedules and processes delivery-due reminder
// tasks on a Redis-backed queue.
package reminders

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskDeliveryReminder = "budgets.delivery_reminder"

type DeliveryReminderPayload struct {
	BudgetID     int64  `json:"budgetId"`
	UserID       string `json:"userId"`
	ProjectName  string `json:"projectName"`
	DeliveryDate string `json:"deliveryDate"`
}

func NewDeliveryReminderTask(payload DeliveryReminderPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskDeliveryReminder, data), nil
}

func ParseDeliveryReminderPayload(task *asynq.Task) (DeliveryReminderPayload, error) {
	var payload DeliveryReminderPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return DeliveryReminderPayload{}, err
	}
	return payload, nil
}

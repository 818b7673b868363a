package reminders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

// reminderHourUTC is when the reminder fires on the delivery date.
const reminderHourUTC = 9

type Client struct {
	client *asynq.Client
}

// NewClient creates an asynq client from the Redis URL.
func NewClient(redisURL string) (*Client, error) {
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL)
	if err != nil {
		return nil, err
	}

	return &Client{client: asynq.NewClient(opt)}, nil
}

func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// ScheduleDeliveryReminder enqueues a reminder that fires on the
// morning of the delivery date.
func (c *Client) ScheduleDeliveryReminder(ctx context.Context, budgetID int64, userID uuid.UUID, projectName string, deliveryDate time.Time) error {
	if c == nil || c.client == nil {
		return nil
	}

	task, err := NewDeliveryReminderTask(DeliveryReminderPayload{
		BudgetID:     budgetID,
		UserID:       userID.String(),
		ProjectName:  projectName,
		DeliveryDate: deliveryDate.Format("2006-01-02"),
	})
	if err != nil {
		return err
	}

	runAt := time.Date(deliveryDate.Year(), deliveryDate.Month(), deliveryDate.Day(),
		reminderHourUTC, 0, 0, 0, time.UTC)

	_, err = c.client.EnqueueContext(ctx, task, asynq.ProcessAt(runAt))
	return err
}

func redisClientOpt(redisURL string) (asynq.RedisClientOpt, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return asynq.RedisClientOpt{}, err
	}

	return asynq.RedisClientOpt{
		Addr:      opt.Addr,
		Password:  opt.Password,
		DB:        opt.DB,
		TLSConfig: opt.TLSConfig,
	}, nil
}

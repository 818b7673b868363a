package reminders

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"

	"printshop_backend/internal/auth/repository"
	"printshop_backend/internal/email"
	domainevents "printshop_backend/internal/events"
	"printshop_backend/internal/realtime"
	"printshop_backend/internal/realtime/sse"
	"printshop_backend/platform/logger"
)

// Worker consumes reminder tasks from the queue, emails the budget
// owner and notifies connected clients through the realtime bridge.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	users  *repository.Repository
	mail   email.Sender
	bridge *realtime.Bridge
	log    *logger.Logger
}

// NewWorker builds the task server. The bridge may be nil; reminders
// are then delivered by email only.
func NewWorker(redisURL string, pool *pgxpool.Pool, mail email.Sender, bridge *realtime.Bridge, log *logger.Logger) (*Worker, error) {
	opt, err := redisClientOpt(redisURL)
	if err != nil {
		return nil, err
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: 5,
		Logger:      asynqLogger{log: log},
	})

	w := &Worker{
		server: server,
		mux:    asynq.NewServeMux(),
		users:  repository.New(pool),
		mail:   mail,
		bridge: bridge,
		log:    log,
	}
	w.mux.HandleFunc(TaskDeliveryReminder, w.handleDeliveryReminder)

	return w, nil
}

// Run starts the task server and blocks until the context is canceled.
func (w *Worker) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()
	return w.server.Run(w.mux)
}

func (w *Worker) handleDeliveryReminder(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseDeliveryReminderPayload(task)
	if err != nil {
		return fmt.Errorf("parse delivery reminder payload: %w", err)
	}

	userID, err := uuid.Parse(payload.UserID)
	if err != nil {
		return fmt.Errorf("parse user id %q: %w", payload.UserID, err)
	}

	user, err := w.users.GetUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("load user %s: %w", userID, err)
	}

	if err := w.mail.SendDeliveryReminderEmail(ctx, user.Email, payload.ProjectName, payload.DeliveryDate); err != nil {
		return fmt.Errorf("send delivery reminder for budget %d: %w", payload.BudgetID, err)
	}

	w.log.Info("delivery reminder sent",
		"budget_id", payload.BudgetID,
		"user_id", userID.String(),
		"delivery_date", payload.DeliveryDate)

	if w.bridge != nil {
		n := sse.Notification{Table: "budgets", Action: domainevents.ActionUpdate}
		if err := w.bridge.Publish(ctx, n); err != nil {
			w.log.Error("publish reminder notification failed", "budget_id", payload.BudgetID, "error", err)
		}
	}

	return nil
}

// asynqLogger adapts the structured logger to asynq's interface.
type asynqLogger struct {
	log *logger.Logger
}

func (l asynqLogger) Debug(args ...interface{}) { l.log.Debug(fmt.Sprint(args...)) }
func (l asynqLogger) Info(args ...interface{})  { l.log.Info(fmt.Sprint(args...)) }
func (l asynqLogger) Warn(args ...interface{})  { l.log.Warn(fmt.Sprint(args...)) }
func (l asynqLogger) Error(args ...interface{}) { l.log.Error(fmt.Sprint(args...)) }
func (l asynqLogger) Fatal(args ...interface{}) { l.log.Error(fmt.Sprint(args...)) }

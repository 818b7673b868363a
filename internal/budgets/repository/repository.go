package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("not found")

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Budget is the persisted read model of a saved quote.
type Budget struct {
	ID             int64
	UserID         uuid.UUID
	ClientName     string
	ProjectName    string
	TotalCost      float64
	Grams          float64
	PrintTimeHours float64
	IsUrgent       bool
	DeliveryDate   *time.Time
	Notes          *string
	CreatedAt      time.Time
}

type InsertParams struct {
	UserID         uuid.UUID
	ClientName     string
	ProjectName    string
	TotalCost      float64
	Grams          float64
	PrintTimeHours float64
	IsUrgent       bool
	DeliveryDate   *time.Time
	Notes          *string
}

const budgetColumns = `
	id, user_id, client_name, project_name, total_cost, grams,
	print_time_hours, is_urgent, delivery_date, notes, created_at`

func scanBudget(row pgx.Row) (Budget, error) {
	var b Budget
	err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.ClientName,
		&b.ProjectName,
		&b.TotalCost,
		&b.Grams,
		&b.PrintTimeHours,
		&b.IsUrgent,
		&b.DeliveryDate,
		&b.Notes,
		&b.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Budget{}, ErrNotFound
	}
	return b, err
}

func (r *Repository) Insert(ctx context.Context, params InsertParams) (Budget, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO budgets (user_id, client_name, project_name, total_cost, grams,
			print_time_hours, is_urgent, delivery_date, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+budgetColumns+`
	`, params.UserID, params.ClientName, params.ProjectName, params.TotalCost,
		params.Grams, params.PrintTimeHours, params.IsUrgent, params.DeliveryDate, params.Notes)
	return scanBudget(row)
}

// ListByUser returns the user's budgets newest first.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Budget, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+budgetColumns+`
		FROM budgets
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	budgets := make([]Budget, 0)
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, b)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return budgets, nil
}

// Delete removes a budget only when it belongs to the user.
func (r *Repository) Delete(ctx context.Context, id int64, userID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM budgets WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

package repository

import (
	"context"
	"errors"
	"time"

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

type Printer struct {
	ID             int64
	Name           string
	Model          string
	Location       *string
	Status         string
	CurrentOrderID *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// List returns all printers ordered by id ascending so the dashboard
// renders a stable layout.
func (r *Repository) List(ctx context.Context) ([]Printer, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, model, location, status, current_order_id, created_at, updated_at
		FROM printers
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	printers := make([]Printer, 0)
	for rows.Next() {
		var p Printer
		if err := rows.Scan(&p.ID, &p.Name, &p.Model, &p.Location, &p.Status, &p.CurrentOrderID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		printers = append(printers, p)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return printers, nil
}

func (r *Repository) UpdateStatus(ctx context.Context, id int64, status string, currentOrderID *string) (Printer, error) {
	var p Printer
	err := r.pool.QueryRow(ctx, `
		UPDATE printers
		SET status = $2, current_order_id = $3, updated_at = now()
		WHERE id = $1
		RETURNING id, name, model, location, status, current_order_id, created_at, updated_at
	`, id, status, currentOrderID).Scan(
		&p.ID, &p.Name, &p.Model, &p.Location, &p.Status, &p.CurrentOrderID, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Printer{}, ErrNotFound
	}
	return p, err
}

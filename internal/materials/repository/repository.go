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

type Material struct {
	ID               uuid.UUID
	Type             string
	Brand            string
	Color            string
	ColorHex         string
	InitialWeightG   float64
	RemainingWeightG float64
	CostPerUnit      float64
	IsActive         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

const materialColumns = `
	id, type, brand, color, color_hex, initial_weight_g, remaining_weight_g,
	cost_per_unit, is_active, created_at, updated_at`

func scanMaterial(row pgx.Row) (Material, error) {
	var m Material
	err := row.Scan(
		&m.ID,
		&m.Type,
		&m.Brand,
		&m.Color,
		&m.ColorHex,
		&m.InitialWeightG,
		&m.RemainingWeightG,
		&m.CostPerUnit,
		&m.IsActive,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Material{}, ErrNotFound
	}
	return m, err
}

// ListActive returns active spools ordered by filament type.
func (r *Repository) ListActive(ctx context.Context) ([]Material, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+materialColumns+`
		FROM materials
		WHERE is_active = true
		ORDER BY type ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	materials := make([]Material, 0)
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, err
		}
		materials = append(materials, m)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return materials, nil
}

type CreateParams struct {
	Type           string
	Brand          string
	Color          string
	ColorHex       string
	InitialWeightG float64
	CostPerUnit    float64
}

// Create inserts a new spool. Remaining weight starts at the initial
// weight.
func (r *Repository) Create(ctx context.Context, params CreateParams) (Material, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO materials (type, brand, color, color_hex, initial_weight_g, remaining_weight_g, cost_per_unit)
		VALUES ($1, $2, $3, $4, $5, $5, $6)
		RETURNING `+materialColumns+`
	`, params.Type, params.Brand, params.Color, params.ColorHex, params.InitialWeightG, params.CostPerUnit)
	return scanMaterial(row)
}

// Consume subtracts grams from the remaining weight, clamping at zero.
func (r *Repository) Consume(ctx context.Context, id uuid.UUID, grams float64) (Material, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE materials
		SET remaining_weight_g = GREATEST(remaining_weight_g - $2, 0), updated_at = now()
		WHERE id = $1
		RETURNING `+materialColumns+`
	`, id, grams)
	return scanMaterial(row)
}

func (r *Repository) Deactivate(ctx context.Context, id uuid.UUID) (Material, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE materials
		SET is_active = false, updated_at = now()
		WHERE id = $1
		RETURNING `+materialColumns+`
	`, id)
	return scanMaterial(row)
}

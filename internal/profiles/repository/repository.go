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

type Profile struct {
	UserID        uuid.UUID
	FullName      *string
	Email         *string
	Role          string
	AvatarURL     *string
	Info          string
	IsExternal    bool
	ControlNumber *string
	Career        *string
	Semester      *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

const profileColumns = `
	user_id, full_name, email, role, avatar_url, info, is_external,
	control_number, career, semester, created_at, updated_at`

func scanProfile(row pgx.Row) (Profile, error) {
	var p Profile
	err := row.Scan(
		&p.UserID,
		&p.FullName,
		&p.Email,
		&p.Role,
		&p.AvatarURL,
		&p.Info,
		&p.IsExternal,
		&p.ControlNumber,
		&p.Career,
		&p.Semester,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Profile{}, ErrNotFound
	}
	return p, err
}

func (r *Repository) GetByUserID(ctx context.Context, userID uuid.UUID) (Profile, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+profileColumns+`
		FROM profiles WHERE user_id = $1
	`, userID)
	return scanProfile(row)
}

type UpdateParams struct {
	FullName      *string
	Info          *string
	IsExternal    *bool
	ControlNumber *string
	Career        *string
	Semester      *string
}

// Update applies the non-nil fields and returns the updated profile.
func (r *Repository) Update(ctx context.Context, userID uuid.UUID, params UpdateParams) (Profile, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE profiles SET
			full_name = COALESCE($2, full_name),
			info = COALESCE($3, info),
			is_external = COALESCE($4, is_external),
			control_number = COALESCE($5, control_number),
			career = COALESCE($6, career),
			semester = COALESCE($7, semester),
			updated_at = now()
		WHERE user_id = $1
		RETURNING `+profileColumns+`
	`, userID, params.FullName, params.Info, params.IsExternal,
		params.ControlNumber, params.Career, params.Semester)
	return scanProfile(row)
}

func (r *Repository) UpdateAvatarURL(ctx context.Context, userID uuid.UUID, avatarURL string) (Profile, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE profiles SET avatar_url = $2, updated_at = now()
		WHERE user_id = $1
		RETURNING `+profileColumns+`
	`, userID, avatarURL)
	return scanProfile(row)
}

package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/worklane/timekeep-backend-go/internal/domain/timeoff"
	"github.com/worklane/timekeep-backend-go/internal/pkg/database"
)

type timeOffTypeRepositoryImpl struct {
	db *database.DB
}

func NewTimeOffTypeRepository(db *database.DB) timeoff.TimeOffTypeRepository {
	return &timeOffTypeRepositoryImpl{db: db}
}

// Create implements timeoff.TimeOffTypeRepository.
func (r *timeOffTypeRepositoryImpl) Create(ctx context.Context, t timeoff.TimeOffType) (timeoff.TimeOffType, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO time_off_types (id, name, is_paid, max_days_per_year, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query, t.Name, t.IsPaid, t.MaxDaysPerYear).
		Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return timeoff.TimeOffType{}, err
	}
	return t, nil
}

// GetByID implements timeoff.TimeOffTypeRepository.
func (r *timeOffTypeRepositoryImpl) GetByID(ctx context.Context, id string) (timeoff.TimeOffType, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, name, is_paid, max_days_per_year, created_at, updated_at
		FROM time_off_types
		WHERE id = $1
	`

	var t timeoff.TimeOffType
	err := q.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.Name, &t.IsPaid, &t.MaxDaysPerYear, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timeoff.TimeOffType{}, timeoff.ErrTypeNotFound
		}
		return timeoff.TimeOffType{}, err
	}
	return t, nil
}

// List implements timeoff.TimeOffTypeRepository.
func (r *timeOffTypeRepositoryImpl) List(ctx context.Context) ([]timeoff.TimeOffType, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, name, is_paid, max_days_per_year, created_at, updated_at
		FROM time_off_types
		ORDER BY name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	types := make([]timeoff.TimeOffType, 0)
	for rows.Next() {
		var t timeoff.TimeOffType
		if err := rows.Scan(
			&t.ID, &t.Name, &t.IsPaid, &t.MaxDaysPerYear, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		types = append(types, t)
	}

	return types, rows.Err()
}

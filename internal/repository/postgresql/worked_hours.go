package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/attend-hq/attendance-backend-go/internal/domain/attendance"
	"github.com/attend-hq/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type workedHoursRepository struct {
	db *database.DB
}

func NewWorkedHoursRepository(db *database.DB) attendance.WorkedHoursRepository {
	return &workedHoursRepository{db: db}
}

func scanWorkedHours(row pgx.Row) (*attendance.WorkedHours, error) {
	var wh attendance.WorkedHours
	var total string
	err := row.Scan(&wh.ID, &wh.EmployeeCode, &wh.Date, &total, &wh.CreatedAt, &wh.UpdatedAt)
	if err != nil {
		return nil, err
	}

	// The column keeps the legacy "H.MM" encoding; parse it back into the
	// value type so callers never do decimal math on it.
	wh.Total, err = attendance.ParseWorkHours(total)
	if err != nil {
		return nil, fmt.Errorf("stored worked hours is malformed: %w", err)
	}

	return &wh, nil
}

// GetForUpdate implements attendance.WorkedHoursRepository. Inside a
// transaction the FOR UPDATE lock serializes concurrent merges on the same
// employee-day row.
func (r *workedHoursRepository) GetForUpdate(ctx context.Context, employeeCode string, date time.Time) (*attendance.WorkedHours, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_code, work_date, total_hours, created_at, updated_at
		FROM worked_hours
		WHERE employee_code = $1 AND work_date = $2
		FOR UPDATE
	`

	wh, err := scanWorkedHours(q.QueryRow(ctx, query, employeeCode, date.Format("2006-01-02")))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get worked hours for update: %w", err)
	}

	return wh, nil
}

// GetByEmployeeAndDate implements attendance.WorkedHoursRepository.
func (r *workedHoursRepository) GetByEmployeeAndDate(ctx context.Context, employeeCode string, date time.Time) (*attendance.WorkedHours, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_code, work_date, total_hours, created_at, updated_at
		FROM worked_hours
		WHERE employee_code = $1 AND work_date = $2
	`

	wh, err := scanWorkedHours(q.QueryRow(ctx, query, employeeCode, date.Format("2006-01-02")))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get worked hours: %w", err)
	}

	return wh, nil
}

// Create implements attendance.WorkedHoursRepository.
func (r *workedHoursRepository) Create(ctx context.Context, wh attendance.WorkedHours) (attendance.WorkedHours, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO worked_hours (employee_code, work_date, total_hours)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		wh.EmployeeCode,
		wh.Date.Format("2006-01-02"),
		wh.Total.String(),
	).Scan(&wh.ID, &wh.CreatedAt, &wh.UpdatedAt)

	if err != nil {
		return attendance.WorkedHours{}, fmt.Errorf("failed to create worked hours: %w", err)
	}

	return wh, nil
}

// UpdateTotal implements attendance.WorkedHoursRepository.
func (r *workedHoursRepository) UpdateTotal(ctx context.Context, id int64, total attendance.WorkHours) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE worked_hours
		SET total_hours = $1, updated_at = NOW()
		WHERE id = $2
	`

	tag, err := q.Exec(ctx, query, total.String(), id)
	if err != nil {
		return fmt.Errorf("failed to update worked hours: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("worked hours row %d not found", id)
	}

	return nil
}

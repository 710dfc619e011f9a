package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/attend-hq/attendance-backend-go/internal/domain/attendance"
	"github.com/attend-hq/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type activityRepository struct {
	db *database.DB
}

func NewActivityRepository(db *database.DB) attendance.ActivityRepository {
	return &activityRepository{db: db}
}

// AcquireEmployeeLock implements attendance.ActivityRepository.
func (r *activityRepository) AcquireEmployeeLock(ctx context.Context, employeeCode string) error {
	return acquireTxLock(ctx, GetQuerier(ctx, r.db), lockClassActivityStream, employeeCode)
}

// Append implements attendance.ActivityRepository.
func (r *activityRepository) Append(ctx context.Context, activity attendance.Activity) (attendance.Activity, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employee_activities (employee_code, kind, ts)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := q.QueryRow(ctx, query,
		activity.EmployeeCode,
		activity.Kind,
		activity.Timestamp,
	).Scan(&activity.ID)

	if err != nil {
		return attendance.Activity{}, fmt.Errorf("failed to append activity: %w", err)
	}

	return activity, nil
}

// GetLatest implements attendance.ActivityRepository.
func (r *activityRepository) GetLatest(ctx context.Context, employeeCode string) (*attendance.Activity, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_code, kind, ts
		FROM employee_activities
		WHERE employee_code = $1
		ORDER BY ts DESC, id DESC
		LIMIT 1
	`

	var act attendance.Activity
	err := q.QueryRow(ctx, query, employeeCode).Scan(
		&act.ID, &act.EmployeeCode, &act.Kind, &act.Timestamp,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest activity: %w", err)
	}

	return &act, nil
}

// GetLatestCheckInOn implements attendance.ActivityRepository.
func (r *activityRepository) GetLatestCheckInOn(ctx context.Context, employeeCode string, date time.Time) (*attendance.Activity, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_code, kind, ts
		FROM employee_activities
		WHERE employee_code = $1
		  AND kind = $2
		  AND ts >= $3
		  AND ts < $4
		ORDER BY ts DESC, id DESC
		LIMIT 1
	`

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	var act attendance.Activity
	err := q.QueryRow(ctx, query, employeeCode, attendance.KindCheckIn, dayStart, dayEnd).Scan(
		&act.ID, &act.EmployeeCode, &act.Kind, &act.Timestamp,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest check-in for day: %w", err)
	}

	return &act, nil
}

// List implements attendance.ActivityRepository.
func (r *activityRepository) List(ctx context.Context, filter attendance.ActivityFilter) ([]attendance.Activity, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argPos := 1

	if filter.EmployeeCode != nil {
		conditions = append(conditions, fmt.Sprintf("employee_code = $%d", argPos))
		args = append(args, *filter.EmployeeCode)
		argPos++
	}

	if filter.Kind != nil {
		conditions = append(conditions, fmt.Sprintf("kind = $%d", argPos))
		args = append(args, *filter.Kind)
		argPos++
	}

	if filter.StartDate != nil {
		conditions = append(conditions, fmt.Sprintf("ts >= $%d::date", argPos))
		args = append(args, *filter.StartDate)
		argPos++
	}

	if filter.EndDate != nil {
		conditions = append(conditions, fmt.Sprintf("ts < $%d::date + interval '1 day'", argPos))
		args = append(args, *filter.EndDate)
		argPos++
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM employee_activities WHERE %s", where)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count activities: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, employee_code, kind, ts
		FROM employee_activities
		WHERE %s
		ORDER BY ts DESC, id DESC
		LIMIT $%d OFFSET $%d
	`, where, argPos, argPos+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	var activities []attendance.Activity
	for rows.Next() {
		var act attendance.Activity
		if err := rows.Scan(&act.ID, &act.EmployeeCode, &act.Kind, &act.Timestamp); err != nil {
			return nil, 0, fmt.Errorf("failed to scan activity: %w", err)
		}
		activities = append(activities, act)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate activities: %w", err)
	}

	return activities, total, nil
}

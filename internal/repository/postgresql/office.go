package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/attend-hq/attendance-backend-go/internal/domain/office"
	"github.com/attend-hq/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type officeLocationRepository struct {
	db *database.DB
}

func NewOfficeLocationRepository(db *database.DB) office.LocationRepository {
	return &officeLocationRepository{db: db}
}

// AcquireCreateLock implements office.LocationRepository.
func (r *officeLocationRepository) AcquireCreateLock(ctx context.Context) error {
	return acquireTxLock(ctx, GetQuerier(ctx, r.db), lockClassOfficeLocation, "office_locations")
}

// Create implements office.LocationRepository.
func (r *officeLocationRepository) Create(ctx context.Context, loc office.Location) (office.Location, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO office_locations (latitude, longitude, is_valid)
		VALUES ($1, $2, true)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query, loc.Latitude, loc.Longitude).Scan(&loc.ID, &loc.CreatedAt)
	if err != nil {
		return office.Location{}, fmt.Errorf("failed to create office location: %w", err)
	}
	loc.IsValid = true

	return loc, nil
}

// InvalidateAll implements office.LocationRepository.
func (r *officeLocationRepository) InvalidateAll(ctx context.Context) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `UPDATE office_locations SET is_valid = false WHERE is_valid = true`); err != nil {
		return fmt.Errorf("failed to invalidate office locations: %w", err)
	}

	return nil
}

// GetActive implements office.LocationRepository.
func (r *officeLocationRepository) GetActive(ctx context.Context) (office.Location, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, latitude, longitude, is_valid, created_at
		FROM office_locations
		WHERE is_valid = true
		ORDER BY created_at DESC
		LIMIT 1
	`

	var loc office.Location
	err := q.QueryRow(ctx, query).Scan(&loc.ID, &loc.Latitude, &loc.Longitude, &loc.IsValid, &loc.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return office.Location{}, office.ErrNoValidLocation
		}
		return office.Location{}, fmt.Errorf("failed to get active office location: %w", err)
	}

	return loc, nil
}

// List implements office.LocationRepository.
func (r *officeLocationRepository) List(ctx context.Context) ([]office.Location, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, latitude, longitude, is_valid, created_at
		FROM office_locations
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list office locations: %w", err)
	}
	defer rows.Close()

	var locations []office.Location
	for rows.Next() {
		var loc office.Location
		if err := rows.Scan(&loc.ID, &loc.Latitude, &loc.Longitude, &loc.IsValid, &loc.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan office location: %w", err)
		}
		locations = append(locations, loc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate office locations: %w", err)
	}

	return locations, nil
}

package office

import (
	"context"
	"fmt"

	"github.com/attend-hq/attendance-backend-go/internal/domain/office"
	"github.com/attend-hq/attendance-backend-go/internal/pkg/database"
)

type LocationServiceImpl struct {
	tx database.TxManager
	office.LocationRepository
}

func NewLocationService(tx database.TxManager, locationRepo office.LocationRepository) office.LocationService {
	return &LocationServiceImpl{
		tx:                 tx,
		LocationRepository: locationRepo,
	}
}

const timestampFormat = "2006-01-02 15:04:05"

// Create implements office.LocationService. Invalidate-then-insert runs in
// one transaction behind the creation lock, so exactly one location is valid
// at all times even under concurrent creates.
func (s *LocationServiceImpl) Create(ctx context.Context, req office.CreateLocationRequest) (office.LocationResponse, error) {
	if err := req.Validate(); err != nil {
		return office.LocationResponse{}, err
	}

	var created office.Location

	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.LocationRepository.AcquireCreateLock(ctx); err != nil {
			return err
		}

		if err := s.LocationRepository.InvalidateAll(ctx); err != nil {
			return err
		}

		var err error
		created, err = s.LocationRepository.Create(ctx, office.Location{
			Latitude:  req.Latitude,
			Longitude: req.Longitude,
		})
		return err
	})
	if err != nil {
		return office.LocationResponse{}, err
	}

	return mapLocationToResponse(created), nil
}

// GetActive implements office.LocationService.
func (s *LocationServiceImpl) GetActive(ctx context.Context) (office.LocationResponse, error) {
	loc, err := s.LocationRepository.GetActive(ctx)
	if err != nil {
		return office.LocationResponse{}, err
	}

	return mapLocationToResponse(loc), nil
}

// List implements office.LocationService.
func (s *LocationServiceImpl) List(ctx context.Context) ([]office.LocationResponse, error) {
	locations, err := s.LocationRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list office locations: %w", err)
	}

	responses := make([]office.LocationResponse, 0, len(locations))
	for _, loc := range locations {
		responses = append(responses, mapLocationToResponse(loc))
	}

	return responses, nil
}

func mapLocationToResponse(loc office.Location) office.LocationResponse {
	return office.LocationResponse{
		ID:        loc.ID,
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
		IsValid:   loc.IsValid,
		CreatedAt: loc.CreatedAt.Format(timestampFormat),
	}
}

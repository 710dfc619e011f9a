package office

import "context"

type LocationRepository interface {
	// AcquireCreateLock serializes location creation until the surrounding
	// transaction ends, so concurrent creates cannot both insert a valid row.
	AcquireCreateLock(ctx context.Context) error

	// Create inserts a new valid location.
	Create(ctx context.Context, loc Location) (Location, error)

	// InvalidateAll marks every valid location invalid. Runs inside the
	// creation transaction so there is never a window with two valid rows.
	InvalidateAll(ctx context.Context) error

	// GetActive returns the single valid location, or ErrNoValidLocation.
	GetActive(ctx context.Context) (Location, error)

	// List returns locations newest first.
	List(ctx context.Context) ([]Location, error)
}

type LocationService interface {
	Create(ctx context.Context, req CreateLocationRequest) (LocationResponse, error)
	GetActive(ctx context.Context) (LocationResponse, error)
	List(ctx context.Context) ([]LocationResponse, error)
}

package ports

import (
	"context"

	"koligo/internal/features/tour/domain"
)

// TourRepository defines the secondary port for tour storage on the backend.
// Implementations return deep copies; callers persist changes through Save.
type TourRepository interface {
	// GetOrCreate returns the driver's tour for the current day, seeding a
	// fresh one on first access.
	GetOrCreate(ctx context.Context, driverID string) (*domain.Tour, error)
	// Save replaces the stored tour for its driver and day.
	Save(ctx context.Context, tour *domain.Tour) error
}

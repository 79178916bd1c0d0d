package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"koligo/internal/core/cache"
	"koligo/internal/core/logger"
	"koligo/internal/features/tour/domain"

	"go.uber.org/zap"
)

const tourKeyPrefix = "tournee:tour:"

// Snapshots outlive the working day but not much more; a stale snapshot
// is superseded by the first successful fetch anyway.
const snapshotTTL = 48 * time.Hour

// RedisTourStore implements ports.TourStore on top of the cache port.
// It is the device-local persistence that lets the app render a tour
// before the network answers.
type RedisTourStore struct {
	cache cache.Cache
}

// NewRedisTourStore creates a new RedisTourStore.
func NewRedisTourStore(c cache.Cache) *RedisTourStore {
	return &RedisTourStore{
		cache: c,
	}
}

// Load reads the cached tour for a driver. A missing, corrupt or
// mismatched entry yields (nil, nil): the caller degrades to no cache.
func (s *RedisTourStore) Load(ctx context.Context, driverID string) (*domain.Tour, error) {
	data, err := s.cache.Get(ctx, tourKeyPrefix+driverID)
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read tour snapshot: %w", err)
	}

	var tour domain.Tour
	if err := json.Unmarshal(data, &tour); err != nil {
		logger.Get().Warn("Discarding corrupt tour snapshot",
			zap.String("driver_id", driverID),
			zap.Error(err),
		)
		return nil, nil
	}

	if tour.DriverID != driverID {
		logger.Get().Warn("Discarding tour snapshot for another driver",
			zap.String("driver_id", driverID),
			zap.String("snapshot_driver_id", tour.DriverID),
		)
		return nil, nil
	}

	return &tour, nil
}

// Save writes the tour snapshot for its driver.
func (s *RedisTourStore) Save(ctx context.Context, tour *domain.Tour) error {
	data, err := json.Marshal(tour)
	if err != nil {
		return fmt.Errorf("failed to marshal tour snapshot: %w", err)
	}

	if err := s.cache.Set(ctx, tourKeyPrefix+tour.DriverID, data, snapshotTTL); err != nil {
		return fmt.Errorf("failed to save tour snapshot: %w", err)
	}
	return nil
}

// Clear removes the snapshot for a driver.
func (s *RedisTourStore) Clear(ctx context.Context, driverID string) error {
	if err := s.cache.Delete(ctx, tourKeyPrefix+driverID); err != nil {
		return fmt.Errorf("failed to clear tour snapshot: %w", err)
	}
	return nil
}

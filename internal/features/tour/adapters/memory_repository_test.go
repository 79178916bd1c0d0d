package adapters

import (
	"context"
	"testing"
	"time"

	"koligo/internal/features/tour/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMemoryTourRepository_Seeding verifies a tour is created lazily and reused.
func TestMemoryTourRepository_Seeding(t *testing.T) {
	repo := NewMemoryTourRepository()
	ctx := context.Background()

	tour, err := repo.GetOrCreate(ctx, "drv-1")
	require.NoError(t, err)
	require.NotNil(t, tour)

	assert.Equal(t, "drv-1", tour.DriverID)
	assert.Equal(t, domain.TourStatusNotStarted, tour.Status)
	assert.Len(t, tour.Parcels, len(seedParcels))
	for i, p := range tour.Parcels {
		assert.Equal(t, domain.ParcelStatusPending, p.Status)
		assert.Equal(t, i+1, p.Order)
		assert.NotEmpty(t, p.ID)
		assert.NotEmpty(t, p.Barcode)
	}

	again, err := repo.GetOrCreate(ctx, "drv-1")
	require.NoError(t, err)
	assert.Equal(t, tour.ID, again.ID, "same day, same tour")
}

// TestMemoryTourRepository_PerDriver verifies drivers get distinct tours.
func TestMemoryTourRepository_PerDriver(t *testing.T) {
	repo := NewMemoryTourRepository()
	ctx := context.Background()

	t1, err := repo.GetOrCreate(ctx, "drv-1")
	require.NoError(t, err)
	t2, err := repo.GetOrCreate(ctx, "drv-2")
	require.NoError(t, err)

	assert.NotEqual(t, t1.ID, t2.ID)
	assert.NotEqual(t, t1.Parcels[0].ID, t2.Parcels[0].ID)
}

// TestMemoryTourRepository_PerDay verifies a new tour is seeded when the day changes.
func TestMemoryTourRepository_PerDay(t *testing.T) {
	repo := NewMemoryTourRepository()
	ctx := context.Background()

	day := time.Date(2026, 8, 29, 8, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return day }

	t1, err := repo.GetOrCreate(ctx, "drv-1")
	require.NoError(t, err)

	repo.now = func() time.Time { return day.AddDate(0, 0, 1) }

	t2, err := repo.GetOrCreate(ctx, "drv-1")
	require.NoError(t, err)

	assert.NotEqual(t, t1.ID, t2.ID)
	assert.Equal(t, "2026-08-30", t2.Date)
}

// TestMemoryTourRepository_SaveRoundTrip verifies Save replaces the stored tour.
func TestMemoryTourRepository_SaveRoundTrip(t *testing.T) {
	repo := NewMemoryTourRepository()
	ctx := context.Background()

	tour, err := repo.GetOrCreate(ctx, "drv-1")
	require.NoError(t, err)

	tour.Status = domain.TourStatusInProgress
	require.NoError(t, repo.Save(ctx, tour))

	stored, err := repo.GetOrCreate(ctx, "drv-1")
	require.NoError(t, err)
	assert.Equal(t, domain.TourStatusInProgress, stored.Status)
}

// TestMemoryTourRepository_CopySemantics verifies callers cannot mutate stored state in place.
func TestMemoryTourRepository_CopySemantics(t *testing.T) {
	repo := NewMemoryTourRepository()
	ctx := context.Background()

	tour, err := repo.GetOrCreate(ctx, "drv-1")
	require.NoError(t, err)

	tour.Parcels[0].Status = domain.ParcelStatusDelivered

	stored, err := repo.GetOrCreate(ctx, "drv-1")
	require.NoError(t, err)
	assert.Equal(t, domain.ParcelStatusPending, stored.Parcels[0].Status)
}

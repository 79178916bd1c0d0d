package adapters

import (
	"context"
	"testing"
	"time"

	"koligo/internal/core/cache"
	"koligo/internal/features/tour/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStoreForTest(t *testing.T) (*RedisTourStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	c, err := cache.NewRedisAdapter("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })

	return NewRedisTourStore(c), mr
}

func snapshotTour(driverID string) *domain.Tour {
	start := time.Date(2026, 8, 29, 8, 30, 0, 0, time.UTC)
	return &domain.Tour{
		ID:        "tour-1",
		DriverID:  driverID,
		Date:      "2026-08-29",
		Status:    domain.TourStatusInProgress,
		StartTime: &start,
		Parcels: []domain.Parcel{
			{ID: "p1", Barcode: "BC-1", Status: domain.ParcelStatusDelivered, Order: 1},
			{ID: "p2", Barcode: "BC-2", Status: domain.ParcelStatusPending, Order: 2},
		},
	}
}

func TestRedisTourStore_SaveLoad(t *testing.T) {
	store, _ := newStoreForTest(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, snapshotTour("drv-1")))

	loaded, err := store.Load(ctx, "drv-1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "tour-1", loaded.ID)
	assert.Equal(t, domain.TourStatusInProgress, loaded.Status)
	require.NotNil(t, loaded.StartTime)
	assert.True(t, loaded.StartTime.Equal(time.Date(2026, 8, 29, 8, 30, 0, 0, time.UTC)))
	require.Len(t, loaded.Parcels, 2)
	assert.Equal(t, domain.ParcelStatusDelivered, loaded.Parcels[0].Status)
}

func TestRedisTourStore_LoadMiss(t *testing.T) {
	store, _ := newStoreForTest(t)

	loaded, err := store.Load(context.Background(), "drv-1")
	assert.NoError(t, err)
	assert.Nil(t, loaded, "a missing snapshot is not an error")
}

func TestRedisTourStore_LoadCorrupt(t *testing.T) {
	store, mr := newStoreForTest(t)

	require.NoError(t, mr.Set("tournee:tour:drv-1", "{not json"))

	loaded, err := store.Load(context.Background(), "drv-1")
	assert.NoError(t, err)
	assert.Nil(t, loaded, "a corrupt snapshot is discarded, not fatal")
}

func TestRedisTourStore_LoadDriverMismatch(t *testing.T) {
	store, _ := newStoreForTest(t)
	ctx := context.Background()

	// A snapshot written under the wrong key must never leak across drivers.
	other := snapshotTour("drv-2")
	require.NoError(t, store.Save(ctx, other))
	data, err := store.cache.Get(ctx, "tournee:tour:drv-2")
	require.NoError(t, err)
	require.NoError(t, store.cache.Set(ctx, "tournee:tour:drv-1", data, 0))

	loaded, err := store.Load(ctx, "drv-1")
	assert.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestRedisTourStore_Clear(t *testing.T) {
	store, _ := newStoreForTest(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, snapshotTour("drv-1")))
	require.NoError(t, store.Clear(ctx, "drv-1"))

	loaded, err := store.Load(ctx, "drv-1")
	assert.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestRedisTourStore_TTL(t *testing.T) {
	store, mr := newStoreForTest(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, snapshotTour("drv-1")))

	mr.FastForward(49 * time.Hour)

	loaded, err := store.Load(ctx, "drv-1")
	assert.NoError(t, err)
	assert.Nil(t, loaded, "snapshots expire after two days")
}

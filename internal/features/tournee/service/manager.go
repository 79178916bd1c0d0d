package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"koligo/internal/core/logger"
	"koligo/internal/features/tour/domain"
	"koligo/internal/features/tournee/ports"

	"go.uber.org/zap"
)

// ErrNoTour is returned when an operation needs a tour but neither the
// cache nor the network produced one.
var ErrNoTour = errors.New("no tour available")

// Manager owns the client-side copy of one driver's tour: it fetches and
// caches the tour and its stats, applies optimistic merges after parcel
// mutations, persists snapshots write-through, and reconciles with the
// backend afterwards. One Manager exists per authenticated session; it is
// created at login and discarded at logout. All reads go through its
// accessors, which hand out copies; readers never share pointers with the
// manager's internal state.
type Manager struct {
	api      ports.TourAPI
	store    ports.TourStore
	driverID string
	log      *zap.Logger
	now      func() time.Time

	// seq tags every fetch and mutation. A fetch response is applied only
	// if its tag is not older than the last applied one for that concern,
	// so a slow refresh can never overwrite a newer local mutation.
	seq atomic.Uint64

	mu         sync.RWMutex
	tour       *domain.Tour
	stats      *domain.TourStats
	index      map[string]int // parcel id -> position in tour.Parcels
	tourSeq    uint64
	statsSeq   uint64
	loading    bool
	refreshing int
	lastErr    error
}

// NewManager creates a Manager for one driver session.
func NewManager(api ports.TourAPI, store ports.TourStore, driverID string) *Manager {
	return &Manager{
		api:      api,
		store:    store,
		driverID: driverID,
		log:      logger.Get().With(zap.String("driver_id", driverID)),
		now:      time.Now,
	}
}

// Initialize loads the cached tour snapshot if one exists, then refreshes
// from the backend. The cached copy is provisional: it is visible to
// readers immediately and superseded by the first successful fetch. A
// cache failure never blocks the network; the call fails only when both
// sources came up empty.
func (m *Manager) Initialize(ctx context.Context) error {
	m.mu.Lock()
	m.loading = true
	m.mu.Unlock()
	defer func() {
		m.mu.Lock()
		m.loading = false
		m.mu.Unlock()
	}()

	if m.store != nil {
		cached, err := m.store.Load(ctx, m.driverID)
		if err != nil {
			m.log.Warn("Tour snapshot load failed, continuing without cache", zap.Error(err))
		} else if cached != nil {
			m.mu.Lock()
			// Sequence 0: any fetch response supersedes the snapshot.
			m.setTourLocked(cached, 0)
			stats := domain.ComputeStats(cached)
			m.stats = &stats
			m.mu.Unlock()
			m.log.Debug("Rendered tour from snapshot", zap.String("tour_id", cached.ID))
		}
	}

	err := m.Refresh(ctx)

	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.tour == nil {
		if err != nil {
			return err
		}
		return ErrNoTour
	}
	return nil
}

// Refresh re-fetches the tour and its stats. It is safe to call while a
// previous refresh is still in flight: each concern keeps the response
// of the newest fetch and discards older ones. On failure the prior state
// is kept and the error is recorded as metadata for the UI.
func (m *Manager) Refresh(ctx context.Context) error {
	seq := m.seq.Add(1)

	m.mu.Lock()
	m.refreshing++
	m.mu.Unlock()
	defer func() {
		m.mu.Lock()
		m.refreshing--
		m.mu.Unlock()
	}()

	tour, tourErr := m.api.GetTour(ctx, m.driverID)
	if tourErr == nil {
		if m.applyTour(tour, seq) {
			m.persist(ctx, tour)
		}
	}

	stats, statsErr := m.api.GetTourStats(ctx, m.driverID)
	if statsErr == nil {
		m.applyStats(stats, seq)
	}

	err := errors.Join(tourErr, statsErr)

	m.mu.Lock()
	m.lastErr = err
	m.mu.Unlock()

	if err != nil {
		m.log.Warn("Tour refresh failed, keeping previous state", zap.Error(err))
	}
	return err
}

// StartTour starts the tour on the backend and replaces the local copy
// with the returned one. Idempotent: the backend keeps the original
// start time on repeat calls.
func (m *Manager) StartTour(ctx context.Context) (*domain.Tour, error) {
	tour, err := m.api.StartTour(ctx, m.driverID)
	if err != nil {
		return nil, err
	}

	seq := m.seq.Add(1)
	m.mu.Lock()
	m.setTourLocked(tour, seq)
	stats := domain.ComputeStats(tour)
	m.stats = &stats
	m.statsSeq = seq
	m.mu.Unlock()

	m.persist(ctx, tour)

	return tour.Clone(), nil
}

// DeliverParcel validates the proof locally, then confirms the delivery
// remotely and merges the result. The barcode and GPS preconditions fail
// fast without any network call; the backend re-validates them anyway.
func (m *Manager) DeliverParcel(ctx context.Context, parcelID string, proof domain.DeliveryProof) (*domain.Parcel, error) {
	parcel, ok := m.GetParcelByID(parcelID)
	if !ok {
		return nil, domain.ErrParcelNotFound
	}

	if !proof.MatchesBarcode(parcel.Barcode) {
		return nil, domain.ErrBarcodeMismatch
	}
	if proof.Coordinates == nil || !proof.Coordinates.Finite() {
		return nil, domain.ErrLocationUnavailable
	}

	return m.applyParcelMutation(ctx, func(ctx context.Context) (*domain.Parcel, error) {
		return m.api.DeliverParcel(ctx, m.driverID, parcelID, proof)
	})
}

// ReportIncident validates the report locally, then submits it and merges
// the failed parcel the backend returns.
func (m *Manager) ReportIncident(ctx context.Context, parcelID string, report domain.IncidentReport) (*domain.Parcel, error) {
	if !report.Type.Valid() {
		return nil, domain.ErrInvalidIncidentType
	}
	report.Description = strings.TrimSpace(report.Description)
	if report.Description == "" {
		return nil, domain.ErrEmptyDescription
	}

	if _, ok := m.GetParcelByID(parcelID); !ok {
		return nil, domain.ErrParcelNotFound
	}

	return m.applyParcelMutation(ctx, func(ctx context.Context) (*domain.Parcel, error) {
		return m.api.ReportIncident(ctx, m.driverID, parcelID, report)
	})
}

// applyParcelMutation runs the remote call and, on success, merges the
// returned parcel into a fresh tour value, recomputes stats and the tour
// status, persists the snapshot write-through, and kicks off a background
// reconciliation fetch. On failure nothing local changes.
func (m *Manager) applyParcelMutation(ctx context.Context, call func(context.Context) (*domain.Parcel, error)) (*domain.Parcel, error) {
	updated, err := call(ctx)
	if err != nil {
		return nil, err
	}

	seq := m.seq.Add(1)

	m.mu.Lock()
	var merged *domain.Tour
	if m.tour != nil {
		merged, err = m.tour.MergeParcel(*updated)
		if err != nil {
			// Unknown locally: keep the sequence untouched and let the
			// reconciliation fetch bring the full picture.
			m.log.Warn("Mutated parcel not in local tour", zap.String("parcel_id", updated.ID))
			merged = nil
		}
	}
	if merged != nil {
		merged.Recalculate(m.now())
		m.setTourLocked(merged, seq)
		stats := domain.ComputeStats(merged)
		m.stats = &stats
		m.statsSeq = seq
	}
	m.mu.Unlock()

	// Write-through: the snapshot is durable before the caller continues.
	if merged != nil {
		m.persist(ctx, merged)
	}

	// Reconcile server-derived fields the optimistic merge could not know
	// about. Detached from the caller's context: navigating away from the
	// screen must not cancel it.
	go func() {
		if err := m.Refresh(context.Background()); err != nil {
			m.log.Debug("Background reconciliation failed", zap.Error(err))
		}
	}()

	return updated, nil
}

// applyTour installs a fetched tour unless a newer state is already applied.
func (m *Manager) applyTour(tour *domain.Tour, seq uint64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if seq < m.tourSeq {
		m.log.Debug("Discarding stale tour fetch",
			zap.Uint64("fetch_seq", seq),
			zap.Uint64("applied_seq", m.tourSeq),
		)
		return false
	}
	m.setTourLocked(tour, seq)
	return true
}

// applyStats installs fetched stats unless a newer state is already applied.
func (m *Manager) applyStats(stats domain.TourStats, seq uint64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if seq < m.statsSeq {
		m.log.Debug("Discarding stale stats fetch",
			zap.Uint64("fetch_seq", seq),
			zap.Uint64("applied_seq", m.statsSeq),
		)
		return false
	}
	m.stats = &stats
	m.statsSeq = seq
	return true
}

// setTourLocked replaces the tour and rebuilds the parcel index.
// Caller holds m.mu.
func (m *Manager) setTourLocked(tour *domain.Tour, seq uint64) {
	m.tour = tour
	m.tourSeq = seq
	m.index = make(map[string]int, len(tour.Parcels))
	for i, p := range tour.Parcels {
		m.index[p.ID] = i
	}
}

// persist writes the snapshot through to the store. Storage failures are
// logged and otherwise ignored: the app degrades to no cache.
func (m *Manager) persist(ctx context.Context, tour *domain.Tour) {
	if m.store == nil {
		return
	}
	if err := m.store.Save(ctx, tour); err != nil {
		m.log.Warn("Tour snapshot save failed", zap.Error(err))
	}
}

// Logout discards the in-memory state and the stored snapshot.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	m.tour = nil
	m.stats = nil
	m.index = nil
	m.lastErr = nil
	m.mu.Unlock()

	if m.store == nil {
		return nil
	}
	if err := m.store.Clear(ctx, m.driverID); err != nil {
		m.log.Warn("Tour snapshot clear failed", zap.Error(err))
	}
	return nil
}

// Tour returns a copy of the current tour, or nil if none is loaded yet.
func (m *Manager) Tour() *domain.Tour {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tour.Clone()
}

// Stats returns a copy of the current stats, or nil if none are known yet.
func (m *Manager) Stats() *domain.TourStats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.stats == nil {
		return nil
	}
	stats := *m.stats
	return &stats
}

// GetParcelByID returns a copy of the parcel with the given id. The false
// return is a normal state (e.g., a deep link to an id from a previous
// day), not an error.
func (m *Manager) GetParcelByID(id string) (domain.Parcel, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	idx, ok := m.index[id]
	if !ok || m.tour == nil || idx >= len(m.tour.Parcels) {
		return domain.Parcel{}, false
	}
	return m.tour.Parcels[idx].Clone(), true
}

// Remaining returns the number of parcels still to attempt
// (pending plus in progress).
func (m *Manager) Remaining() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.stats == nil {
		return 0
	}
	return m.stats.Pending + m.stats.InProgress
}

// IsLoading reports whether the initial load is still running.
func (m *Manager) IsLoading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loading
}

// IsRefreshing reports whether at least one refresh is in flight.
func (m *Manager) IsRefreshing() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.refreshing > 0
}

// LastError returns the outcome of the most recent refresh. A non-nil
// value means the visible state may be stale; it is metadata for the UI,
// not a hard failure.
func (m *Manager) LastError() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastErr
}

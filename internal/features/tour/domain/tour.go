package domain

import (
	"math"
	"time"
)

// ComputeStats derives the counters for a tour.
// A nil tour or an empty parcel list yields zero counts and 0 percent.
func ComputeStats(t *Tour) TourStats {
	var stats TourStats
	if t == nil {
		return stats
	}

	stats.Total = len(t.Parcels)
	for _, p := range t.Parcels {
		switch p.Status {
		case ParcelStatusDelivered:
			stats.Delivered++
		case ParcelStatusFailed:
			stats.Failed++
		case ParcelStatusInProgress:
			stats.InProgress++
		default:
			stats.Pending++
		}
	}

	if stats.Total > 0 {
		stats.ProgressPercent = int(math.Round(float64(stats.Delivered) / float64(stats.Total) * 100))
	}

	return stats
}

// AllTerminal returns true if every parcel is delivered or failed.
func (t *Tour) AllTerminal() bool {
	for _, p := range t.Parcels {
		if !p.Status.Terminal() {
			return false
		}
	}
	return true
}

// Recalculate re-derives the tour status after a mutating action.
// The first mutation moves a not_started tour to in_progress and stamps
// StartTime; once every parcel is terminal the tour completes and EndTime
// is stamped. Existing timestamps are never overwritten.
func (t *Tour) Recalculate(now time.Time) {
	if len(t.Parcels) > 0 && t.AllTerminal() {
		t.Status = TourStatusCompleted
		if t.EndTime == nil {
			end := now
			t.EndTime = &end
		}
		return
	}

	if t.Status == TourStatusNotStarted {
		t.Status = TourStatusInProgress
		if t.StartTime == nil {
			start := now
			t.StartTime = &start
		}
	}
}

// Start moves a not_started tour to in_progress. Calling it on a tour that
// already started or completed is a no-op, preserving StartTime and Status.
func (t *Tour) Start(now time.Time) {
	if t.Status != TourStatusNotStarted {
		return
	}
	t.Status = TourStatusInProgress
	start := now
	t.StartTime = &start
}

// Clone returns a deep copy of the tour. Mutating the copy never affects
// the original, which is what lets state transitions produce fresh values
// instead of editing objects shared with readers.
func (t *Tour) Clone() *Tour {
	if t == nil {
		return nil
	}

	out := *t
	out.StartTime = copyTime(t.StartTime)
	out.EndTime = copyTime(t.EndTime)
	out.Parcels = make([]Parcel, len(t.Parcels))
	for i, p := range t.Parcels {
		out.Parcels[i] = p.Clone()
	}
	return &out
}

// Clone returns a deep copy of the parcel.
func (p Parcel) Clone() Parcel {
	out := p
	out.DeliveredAt = copyTime(p.DeliveredAt)
	if p.Dimensions != nil {
		d := *p.Dimensions
		out.Dimensions = &d
	}
	if p.DeliveryProof != nil {
		proof := *p.DeliveryProof
		if p.DeliveryProof.Coordinates != nil {
			c := *p.DeliveryProof.Coordinates
			proof.Coordinates = &c
		}
		out.DeliveryProof = &proof
	}
	if p.Incident != nil {
		inc := *p.Incident
		if p.Incident.Coordinates != nil {
			c := *p.Incident.Coordinates
			inc.Coordinates = &c
		}
		out.Incident = &inc
	}
	return out
}

// MergeParcel returns a new tour with the parcel whose id matches replaced.
// The parcel sequence keeps the same length and order; all siblings are
// untouched. Returns ErrParcelNotFound if the id is not in the tour.
func (t *Tour) MergeParcel(updated Parcel) (*Tour, error) {
	idx := -1
	for i, p := range t.Parcels {
		if p.ID == updated.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrParcelNotFound
	}

	out := t.Clone()
	out.Parcels[idx] = updated.Clone()
	return out, nil
}

// FindParcel returns a copy of the parcel with the given id.
// The second return value is false when the id is not in the tour; callers
// treat that as a normal state, not an error.
func (t *Tour) FindParcel(id string) (Parcel, bool) {
	if t == nil {
		return Parcel{}, false
	}
	for _, p := range t.Parcels {
		if p.ID == id {
			return p.Clone(), true
		}
	}
	return Parcel{}, false
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

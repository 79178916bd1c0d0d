package service

import (
	"context"
	"fmt"
	"time"

	"koligo/internal/features/tour/domain"
	"koligo/internal/features/tour/ports"

	"github.com/google/uuid"
)

// TourService is the authoritative side of the tour contract: it owns the
// per-driver daily tours and applies every mutation server-side, including
// the checks the client already ran as early feedback.
type TourService struct {
	repo ports.TourRepository
	now  func() time.Time
}

// NewTourService creates a new TourService.
func NewTourService(repo ports.TourRepository) *TourService {
	return &TourService{
		repo: repo,
		now:  time.Now,
	}
}

// GetTour returns the driver's tour for today, creating it on first access.
func (s *TourService) GetTour(ctx context.Context, driverID string) (*domain.Tour, error) {
	tour, err := s.repo.GetOrCreate(ctx, driverID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load tour: %w", err)
	}
	return tour, nil
}

// GetStats returns the derived counters for the driver's tour.
func (s *TourService) GetStats(ctx context.Context, driverID string) (domain.TourStats, error) {
	tour, err := s.repo.GetOrCreate(ctx, driverID)
	if err != nil {
		return domain.TourStats{}, fmt.Errorf("service: failed to load tour: %w", err)
	}
	return domain.ComputeStats(tour), nil
}

// GetParcel returns a single parcel by id.
func (s *TourService) GetParcel(ctx context.Context, driverID, parcelID string) (*domain.Parcel, error) {
	tour, err := s.repo.GetOrCreate(ctx, driverID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load tour: %w", err)
	}

	parcel, ok := tour.FindParcel(parcelID)
	if !ok {
		return nil, domain.ErrParcelNotFound
	}
	return &parcel, nil
}

// UpdateParcelStatus sets a parcel's status directly.
// Rejects values outside the status enum.
func (s *TourService) UpdateParcelStatus(ctx context.Context, driverID, parcelID string, status domain.ParcelStatus) (*domain.Parcel, error) {
	if !status.Valid() {
		return nil, domain.ErrInvalidStatus
	}

	return s.mutateParcel(ctx, driverID, parcelID, func(p *domain.Parcel) error {
		p.Status = status
		if status == domain.ParcelStatusDelivered && p.DeliveredAt == nil {
			at := s.now()
			p.DeliveredAt = &at
		}
		return nil
	})
}

// DeliverParcel confirms delivery with proof. The proof completeness and
// barcode checks are re-validated here authoritatively; the client-side
// checks are an optimization, not a trust boundary.
func (s *TourService) DeliverParcel(ctx context.Context, driverID, parcelID string, proof domain.DeliveryProof) (*domain.Parcel, error) {
	if !proof.Complete() {
		return nil, domain.ErrIncompleteProof
	}

	return s.mutateParcel(ctx, driverID, parcelID, func(p *domain.Parcel) error {
		if !proof.MatchesBarcode(p.Barcode) {
			return domain.ErrBarcodeMismatch
		}

		at := s.now()
		stamped := proof
		stamped.Timestamp = at

		p.Status = domain.ParcelStatusDelivered
		p.DeliveredAt = &at
		p.DeliveryProof = &stamped
		return nil
	})
}

// ReportIncident records a failed delivery attempt. The incident id and
// timestamp are assigned here; the parcel moves to failed.
func (s *TourService) ReportIncident(ctx context.Context, driverID, parcelID string, report domain.IncidentReport) (*domain.Parcel, error) {
	if !report.Type.Valid() {
		return nil, domain.ErrInvalidIncidentType
	}

	return s.mutateParcel(ctx, driverID, parcelID, func(p *domain.Parcel) error {
		p.Status = domain.ParcelStatusFailed
		p.Incident = &domain.Incident{
			ID:          "inc-" + uuid.NewString(),
			Type:        report.Type,
			Description: report.Description,
			PhotoURI:    report.PhotoURI,
			Timestamp:   s.now(),
			Coordinates: report.Coordinates,
		}
		return nil
	})
}

// StartTour moves the tour to in_progress. Starting an already started or
// completed tour changes nothing.
func (s *TourService) StartTour(ctx context.Context, driverID string) (*domain.Tour, error) {
	tour, err := s.repo.GetOrCreate(ctx, driverID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load tour: %w", err)
	}

	tour.Start(s.now())

	if err := s.repo.Save(ctx, tour); err != nil {
		return nil, fmt.Errorf("service: failed to save tour: %w", err)
	}
	return tour, nil
}

// mutateParcel applies fn to one parcel, re-derives the tour status and
// persists the whole tour before returning the updated parcel.
func (s *TourService) mutateParcel(ctx context.Context, driverID, parcelID string, fn func(*domain.Parcel) error) (*domain.Parcel, error) {
	tour, err := s.repo.GetOrCreate(ctx, driverID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load tour: %w", err)
	}

	idx := -1
	for i := range tour.Parcels {
		if tour.Parcels[i].ID == parcelID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, domain.ErrParcelNotFound
	}

	if err := fn(&tour.Parcels[idx]); err != nil {
		return nil, err
	}

	tour.Recalculate(s.now())

	if err := s.repo.Save(ctx, tour); err != nil {
		return nil, fmt.Errorf("service: failed to save tour: %w", err)
	}

	parcel := tour.Parcels[idx].Clone()
	return &parcel, nil
}

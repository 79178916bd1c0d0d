package ports

import (
	"context"

	"koligo/internal/features/tour/domain"
)

// TourAPI is the client-side port onto the remote tour service.
// Every call is bounded by the context and the underlying HTTP timeout.
type TourAPI interface {
	// Login exchanges credentials for a session token and driver profile.
	Login(ctx context.Context, input domain.LoginInput) (*domain.AuthResponse, error)
	// GetTour fetches the authoritative tour for a driver.
	GetTour(ctx context.Context, driverID string) (*domain.Tour, error)
	// GetTourStats fetches the server-derived counters for a driver's tour.
	GetTourStats(ctx context.Context, driverID string) (domain.TourStats, error)
	// GetParcel fetches a single parcel.
	GetParcel(ctx context.Context, driverID, parcelID string) (*domain.Parcel, error)
	// UpdateParcelStatus sets a parcel status directly and returns the updated parcel.
	UpdateParcelStatus(ctx context.Context, driverID, parcelID string, status domain.ParcelStatus) (*domain.Parcel, error)
	// DeliverParcel confirms delivery with proof and returns the updated parcel.
	DeliverParcel(ctx context.Context, driverID, parcelID string, proof domain.DeliveryProof) (*domain.Parcel, error)
	// ReportIncident submits an incident report and returns the updated parcel.
	ReportIncident(ctx context.Context, driverID, parcelID string, report domain.IncidentReport) (*domain.Parcel, error)
	// StartTour starts the driver's tour and returns the whole updated tour.
	StartTour(ctx context.Context, driverID string) (*domain.Tour, error)
}

// TourStore is the client-side port onto durable device storage.
// It holds at most one tour snapshot per driver so the UI has data before
// the network answers. Load returns (nil, nil) when no usable snapshot
// exists; corrupt or mismatched entries are discarded, never surfaced.
type TourStore interface {
	Load(ctx context.Context, driverID string) (*domain.Tour, error)
	Save(ctx context.Context, tour *domain.Tour) error
	Clear(ctx context.Context, driverID string) error
}

package adapters

import (
	"context"
	"fmt"
	"sync"
	"time"

	"koligo/internal/features/tour/domain"

	"github.com/google/uuid"
)

// MemoryTourRepository implements ports.TourRepository with an in-memory map.
// Tours are created lazily per driver per calendar day, the same way the
// backend would assign a daily tournee. Not durable across restarts.
type MemoryTourRepository struct {
	mu    sync.Mutex
	tours map[string]*domain.Tour
	now   func() time.Time
}

// NewMemoryTourRepository creates an empty in-memory tour repository.
func NewMemoryTourRepository() *MemoryTourRepository {
	return &MemoryTourRepository{
		tours: make(map[string]*domain.Tour),
		now:   time.Now,
	}
}

// GetOrCreate returns a copy of the driver's tour for today, seeding it on first access.
func (r *MemoryTourRepository) GetOrCreate(ctx context.Context, driverID string) (*domain.Tour, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := r.key(driverID)
	tour, ok := r.tours[key]
	if !ok {
		tour = seedTour(driverID, r.now().Format("2006-01-02"))
		r.tours[key] = tour
	}
	return tour.Clone(), nil
}

// Save replaces the stored tour for its driver and day.
func (r *MemoryTourRepository) Save(ctx context.Context, tour *domain.Tour) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tours[r.key(tour.DriverID)] = tour.Clone()
	return nil
}

func (r *MemoryTourRepository) key(driverID string) string {
	return fmt.Sprintf("%s-%s", driverID, r.now().Format("2006-01-02"))
}

// seedParcel describes one entry of the mock tour template.
type seedParcel struct {
	recipient string
	phone     string
	street    string
	city      string
	postal    string
	lat       float64
	lng       float64
	weight    float64
	priority  domain.Priority
	notes     string
}

var seedParcels = []seedParcel{
	{"Marie Lefevre", "+33612345001", "12 Rue de la Paix", "Paris", "75002", 48.8691, 2.3316, 1.2, domain.PriorityNormal, ""},
	{"Jean Moreau", "+33612345002", "45 Avenue des Champs-Elysees", "Paris", "75008", 48.8708, 2.3053, 3.5, domain.PriorityExpress, "Code porte 4512"},
	{"Sophie Bernard", "+33612345003", "8 Rue du Faubourg Saint-Honore", "Paris", "75008", 48.8700, 2.3165, 0.8, domain.PriorityNormal, ""},
	{"Lucas Petit", "+33612345004", "23 Boulevard Haussmann", "Paris", "75009", 48.8734, 2.3325, 5.1, domain.PriorityUrgent, "Fragile"},
	{"Emma Dubois", "+33612345005", "67 Rue de Rivoli", "Paris", "75001", 48.8598, 2.3472, 2.0, domain.PriorityNormal, ""},
	{"Hugo Lambert", "+33612345006", "3 Place de la Bastille", "Paris", "75011", 48.8532, 2.3692, 1.7, domain.PriorityNormal, "Sonner deux fois"},
	{"Chloe Rousseau", "+33612345007", "15 Rue Oberkampf", "Paris", "75011", 48.8649, 2.3699, 4.2, domain.PriorityExpress, ""},
	{"Nathan Girard", "+33612345008", "92 Rue de la Roquette", "Paris", "75011", 48.8565, 2.3781, 0.5, domain.PriorityNormal, ""},
}

// seedTour builds a fresh mock tour for a driver and day.
// Parcel ids and codes are unique per tour; addresses come from a fixed template.
func seedTour(driverID, date string) *domain.Tour {
	parcels := make([]domain.Parcel, len(seedParcels))
	for i, s := range seedParcels {
		parcels[i] = domain.Parcel{
			ID:           uuid.NewString(),
			TrackingCode: fmt.Sprintf("KG%s%03d", date[8:], i+1),
			Barcode:      fmt.Sprintf("370%s%04d", uuid.NewString()[:6], i+1),
			Status:       domain.ParcelStatusPending,
			Recipient: domain.Recipient{
				Name:  s.recipient,
				Phone: s.phone,
			},
			Address: domain.Address{
				Street:     s.street,
				City:       s.city,
				PostalCode: s.postal,
				Country:    "France",
				Coordinates: domain.GeoCoordinates{
					Latitude:  s.lat,
					Longitude: s.lng,
				},
			},
			Weight:   s.weight,
			Priority: s.priority,
			Notes:    s.notes,
			Order:    i + 1,
		}
	}

	return &domain.Tour{
		ID:       uuid.NewString(),
		DriverID: driverID,
		Date:     date,
		Parcels:  parcels,
		Status:   domain.TourStatusNotStarted,
	}
}

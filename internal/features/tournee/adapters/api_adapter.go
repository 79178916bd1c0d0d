package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"koligo/internal/core/httpclient"
	"koligo/internal/features/tour/domain"
)

// APIError is a remote rejection (4xx/5xx) with the backend's message
// passed through verbatim.
type APIError struct {
	// StatusCode is the HTTP status returned by the backend.
	StatusCode int
	// Message is the backend-provided error description.
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
}

// APIAdapter implements ports.TourAPI over the backend's HTTP contract.
type APIAdapter struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewAPIAdapter creates a new APIAdapter for the given backend base URL.
func NewAPIAdapter(baseURL string, timeout time.Duration) *APIAdapter {
	return &APIAdapter{
		baseURL: baseURL,
		client:  httpclient.NewClient(timeout),
	}
}

// SetToken installs the bearer token sent on every subsequent request.
func (a *APIAdapter) SetToken(token string) {
	a.token = token
}

// request executes one HTTP call and decodes the JSON response into out.
// Non-2xx responses become *APIError; transport failures are wrapped.
func (a *APIAdapter) request(ctx context.Context, method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var remote struct {
			Message string `json:"message"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&remote); decodeErr != nil || remote.Message == "" {
			remote.Message = resp.Status
		}
		return &APIError{StatusCode: resp.StatusCode, Message: remote.Message}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Login implements ports.TourAPI.
func (a *APIAdapter) Login(ctx context.Context, input domain.LoginInput) (*domain.AuthResponse, error) {
	var resp domain.AuthResponse
	if err := a.request(ctx, http.MethodPost, "/api/auth/login", input, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetTour implements ports.TourAPI.
func (a *APIAdapter) GetTour(ctx context.Context, driverID string) (*domain.Tour, error) {
	var tour domain.Tour
	if err := a.request(ctx, http.MethodGet, "/api/tour/"+driverID, nil, &tour); err != nil {
		return nil, err
	}
	return &tour, nil
}

// GetTourStats implements ports.TourAPI.
func (a *APIAdapter) GetTourStats(ctx context.Context, driverID string) (domain.TourStats, error) {
	var stats domain.TourStats
	if err := a.request(ctx, http.MethodGet, "/api/tour/"+driverID+"/stats", nil, &stats); err != nil {
		return domain.TourStats{}, err
	}
	return stats, nil
}

// GetParcel implements ports.TourAPI.
func (a *APIAdapter) GetParcel(ctx context.Context, driverID, parcelID string) (*domain.Parcel, error) {
	var parcel domain.Parcel
	if err := a.request(ctx, http.MethodGet, "/api/tour/"+driverID+"/parcel/"+parcelID, nil, &parcel); err != nil {
		return nil, err
	}
	return &parcel, nil
}

// UpdateParcelStatus implements ports.TourAPI.
func (a *APIAdapter) UpdateParcelStatus(ctx context.Context, driverID, parcelID string, status domain.ParcelStatus) (*domain.Parcel, error) {
	body := struct {
		Status domain.ParcelStatus `json:"status"`
	}{Status: status}

	var parcel domain.Parcel
	if err := a.request(ctx, http.MethodPut, "/api/tour/"+driverID+"/parcel/"+parcelID+"/status", body, &parcel); err != nil {
		return nil, err
	}
	return &parcel, nil
}

// DeliverParcel implements ports.TourAPI.
func (a *APIAdapter) DeliverParcel(ctx context.Context, driverID, parcelID string, proof domain.DeliveryProof) (*domain.Parcel, error) {
	var parcel domain.Parcel
	if err := a.request(ctx, http.MethodPost, "/api/tour/"+driverID+"/parcel/"+parcelID+"/deliver", proof, &parcel); err != nil {
		return nil, err
	}
	return &parcel, nil
}

// ReportIncident implements ports.TourAPI.
func (a *APIAdapter) ReportIncident(ctx context.Context, driverID, parcelID string, report domain.IncidentReport) (*domain.Parcel, error) {
	var parcel domain.Parcel
	if err := a.request(ctx, http.MethodPost, "/api/tour/"+driverID+"/parcel/"+parcelID+"/incident", report, &parcel); err != nil {
		return nil, err
	}
	return &parcel, nil
}

// StartTour implements ports.TourAPI.
func (a *APIAdapter) StartTour(ctx context.Context, driverID string) (*domain.Tour, error) {
	var tour domain.Tour
	if err := a.request(ctx, http.MethodPost, "/api/tour/"+driverID+"/start", struct{}{}, &tour); err != nil {
		return nil, err
	}
	return &tour, nil
}

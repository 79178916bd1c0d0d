package domain

import (
	"math"
	"strings"
	"time"
)

// ParcelStatus represents the delivery state of a single parcel.
type ParcelStatus string

const (
	// ParcelStatusPending indicates the parcel has not been attempted yet.
	ParcelStatusPending ParcelStatus = "pending"
	// ParcelStatusInProgress indicates the parcel is currently being handled.
	ParcelStatusInProgress ParcelStatus = "in_progress"
	// ParcelStatusDelivered indicates the parcel was handed off with proof.
	ParcelStatusDelivered ParcelStatus = "delivered"
	// ParcelStatusFailed indicates the delivery attempt ended with an incident.
	ParcelStatusFailed ParcelStatus = "failed"
)

// Valid returns true if the status is one of the known parcel statuses.
func (s ParcelStatus) Valid() bool {
	switch s {
	case ParcelStatusPending, ParcelStatusInProgress, ParcelStatusDelivered, ParcelStatusFailed:
		return true
	}
	return false
}

// Terminal returns true if no further delivery attempt is expected for this status.
func (s ParcelStatus) Terminal() bool {
	return s == ParcelStatusDelivered || s == ParcelStatusFailed
}

// TourStatus represents the overall state of a driver's daily tour.
type TourStatus string

const (
	// TourStatusNotStarted indicates no mutating action has occurred yet.
	TourStatusNotStarted TourStatus = "not_started"
	// TourStatusInProgress indicates at least one parcel action or an explicit start.
	TourStatusInProgress TourStatus = "in_progress"
	// TourStatusCompleted indicates every parcel reached a terminal status.
	TourStatusCompleted TourStatus = "completed"
)

// IncidentType classifies a failed delivery attempt.
type IncidentType string

const (
	IncidentTypeAbsent       IncidentType = "absent"
	IncidentTypeDamaged      IncidentType = "damaged"
	IncidentTypeWrongAddress IncidentType = "wrong_address"
	IncidentTypeAccessDenied IncidentType = "access_denied"
	IncidentTypeOther        IncidentType = "other"
)

// Valid returns true if the type is one of the five known incident kinds.
func (t IncidentType) Valid() bool {
	switch t {
	case IncidentTypeAbsent, IncidentTypeDamaged, IncidentTypeWrongAddress, IncidentTypeAccessDenied, IncidentTypeOther:
		return true
	}
	return false
}

// Priority represents the urgency level of a parcel.
type Priority string

const (
	PriorityNormal  Priority = "normal"
	PriorityExpress Priority = "express"
	PriorityUrgent  Priority = "urgent"
)

// GeoCoordinates is a WGS84 position.
type GeoCoordinates struct {
	// Latitude in decimal degrees.
	Latitude float64 `json:"latitude"`
	// Longitude in decimal degrees.
	Longitude float64 `json:"longitude"`
}

// Finite returns true if both components are real numbers (not NaN or Inf).
func (g GeoCoordinates) Finite() bool {
	return !math.IsNaN(g.Latitude) && !math.IsInf(g.Latitude, 0) &&
		!math.IsNaN(g.Longitude) && !math.IsInf(g.Longitude, 0)
}

// Address is a delivery destination.
type Address struct {
	Street     string         `json:"street"`
	City       string         `json:"city"`
	PostalCode string         `json:"postalCode"`
	Country    string         `json:"country"`
	Coordinates GeoCoordinates `json:"coordinates"`
}

// Recipient identifies who receives a parcel.
type Recipient struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`
}

// Dimensions are the physical measurements of a parcel in centimeters.
type Dimensions struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Driver is the authenticated operator of a tour.
// Immutable once loaded for a session; replaced wholesale on login.
type Driver struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employeeId"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Phone      string `json:"phone"`
	VehicleID  string `json:"vehicleId"`
	Avatar     string `json:"avatar,omitempty"`
}

// DeliveryProof is the immutable record certifying a successful handoff.
// Created exactly once at delivery confirmation, never mutated afterwards.
type DeliveryProof struct {
	// Timestamp is the confirmation instant, set server-side.
	Timestamp time.Time `json:"timestamp"`
	// Coordinates is the GPS position at confirmation. Nil means no fix was available.
	Coordinates *GeoCoordinates `json:"coordinates,omitempty"`
	// ScannedBarcode is the code read from the parcel label.
	ScannedBarcode string `json:"scannedBarcode"`
	// PhotoURI is an optional photo reference.
	PhotoURI string `json:"photoUri,omitempty"`
	// SignatureURI is an optional signature reference.
	SignatureURI string `json:"signatureUri,omitempty"`
}

// Complete returns true if the proof carries a barcode and a usable GPS position.
func (p DeliveryProof) Complete() bool {
	return strings.TrimSpace(p.ScannedBarcode) != "" && p.Coordinates != nil && p.Coordinates.Finite()
}

// MatchesBarcode compares the scanned code against the parcel barcode.
// Comparison is exact string equality after trimming whitespace.
func (p DeliveryProof) MatchesBarcode(barcode string) bool {
	return strings.TrimSpace(p.ScannedBarcode) == strings.TrimSpace(barcode)
}

// Incident is the immutable report of a failed or blocked delivery attempt.
type Incident struct {
	// ID is assigned server-side at submission.
	ID string `json:"id"`
	Type IncidentType `json:"type"`
	Description string `json:"description"`
	PhotoURI string `json:"photoUri,omitempty"`
	// Timestamp is the submission instant, set server-side.
	Timestamp time.Time `json:"timestamp"`
	Coordinates *GeoCoordinates `json:"coordinates,omitempty"`
}

// IncidentReport is the client-submitted portion of an incident.
// The id and timestamp are assigned by the backend.
type IncidentReport struct {
	Type        IncidentType    `json:"type"`
	Description string          `json:"description"`
	PhotoURI    string          `json:"photoUri,omitempty"`
	Coordinates *GeoCoordinates `json:"coordinates,omitempty"`
}

// Parcel is a single delivery unit, owned by exactly one Tour.
// Identity is stable across refreshes; merges happen by id, never by position.
type Parcel struct {
	ID           string         `json:"id"`
	TrackingCode string         `json:"trackingCode"`
	Barcode      string         `json:"barcode"`
	Status       ParcelStatus   `json:"status"`
	Recipient    Recipient      `json:"recipient"`
	Address      Address        `json:"address"`
	// Weight in kilograms.
	Weight     float64     `json:"weight"`
	Dimensions *Dimensions `json:"dimensions,omitempty"`
	Priority   Priority    `json:"priority"`
	Notes      string      `json:"notes,omitempty"`
	// DeliveredAt is set iff Status is delivered.
	DeliveredAt   *time.Time     `json:"deliveredAt,omitempty"`
	DeliveryProof *DeliveryProof `json:"deliveryProof,omitempty"`
	// Incident is set iff Status is failed via the report-incident path.
	Incident *Incident `json:"incident,omitempty"`
	// Order defines the display and route sequence within the tour.
	Order int `json:"order"`
}

// Tour is one driver's work unit for one calendar day.
type Tour struct {
	ID       string     `json:"id"`
	DriverID string     `json:"driverId"`
	// Date is the calendar day in YYYY-MM-DD form.
	Date      string     `json:"date"`
	Parcels   []Parcel   `json:"parcels"`
	StartTime *time.Time `json:"startTime,omitempty"`
	EndTime   *time.Time `json:"endTime,omitempty"`
	Status    TourStatus `json:"status"`
}

// TourStats are derived counters over a tour's parcels.
// Never stored independently; always recomputable from the parcel statuses.
type TourStats struct {
	Total           int `json:"total"`
	Delivered       int `json:"delivered"`
	Failed          int `json:"failed"`
	Pending         int `json:"pending"`
	InProgress      int `json:"inProgress"`
	ProgressPercent int `json:"progressPercent"`
}

// LoginInput is the credential pair submitted at login.
type LoginInput struct {
	EmployeeID string `json:"employeeId"`
	Password   string `json:"password"`
}

// AuthResponse is the payload returned on successful login.
type AuthResponse struct {
	Token  string `json:"token"`
	Driver Driver `json:"driver"`
}

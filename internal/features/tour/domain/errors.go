package domain

import "errors"

var (
	// ErrParcelNotFound is returned when a parcel id does not exist in the tour.
	ErrParcelNotFound = errors.New("parcel not found")
	// ErrBarcodeMismatch is returned when the scanned code does not match the parcel barcode.
	ErrBarcodeMismatch = errors.New("scanned barcode does not match parcel")
	// ErrLocationUnavailable is returned when a delivery proof has no usable GPS position.
	ErrLocationUnavailable = errors.New("location unavailable for delivery proof")
	// ErrIncompleteProof is returned when a delivery proof is missing the barcode or coordinates.
	ErrIncompleteProof = errors.New("delivery proof is incomplete")
	// ErrEmptyDescription is returned when an incident report has no description.
	ErrEmptyDescription = errors.New("incident description is required")
	// ErrInvalidIncidentType is returned when an incident type is not one of the known kinds.
	ErrInvalidIncidentType = errors.New("invalid incident type")
	// ErrInvalidStatus is returned when a parcel status value is outside the enum.
	ErrInvalidStatus = errors.New("invalid parcel status")
)

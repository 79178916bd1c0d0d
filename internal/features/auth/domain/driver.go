package domain

import (
	"errors"
	"strings"

	tour "koligo/internal/features/tour/domain"
)

var (
	// ErrMissingCredentials is returned when the employee id or password is absent.
	ErrMissingCredentials = errors.New("employee id and password are required")
	// ErrUnknownEmployee is returned when no driver matches the employee id.
	ErrUnknownEmployee = errors.New("unknown employee id")
	// ErrInvalidPassword is returned when the password does not meet the mock policy.
	ErrInvalidPassword = errors.New("invalid password")
	// ErrInvalidToken is returned when a bearer token cannot be verified.
	ErrInvalidToken = errors.New("invalid or expired token")
)

// MinPasswordLength is the mock backend's only password rule.
const MinPasswordLength = 4

// ValidateLogin checks that both credential fields are present.
func ValidateLogin(input tour.LoginInput) error {
	if strings.TrimSpace(input.EmployeeID) == "" || input.Password == "" {
		return ErrMissingCredentials
	}
	return nil
}

// MockDrivers is the fixed roster the mock backend authenticates against.
var MockDrivers = []tour.Driver{
	{
		ID:         "drv-001",
		EmployeeID: "EMP1001",
		FirstName:  "Thomas",
		LastName:   "Martin",
		Phone:      "+33699001122",
		VehicleID:  "VL-204",
	},
	{
		ID:         "drv-002",
		EmployeeID: "EMP1002",
		FirstName:  "Laura",
		LastName:   "Blanc",
		Phone:      "+33699003344",
		VehicleID:  "VL-311",
	},
}

// FindDriverByEmployeeID returns the mock driver with the given employee id.
func FindDriverByEmployeeID(employeeID string) (tour.Driver, bool) {
	for _, d := range MockDrivers {
		if d.EmployeeID == employeeID {
			return d, true
		}
	}
	return tour.Driver{}, false
}

package service

import (
	"testing"
	"time"

	authdomain "koligo/internal/features/auth/domain"
	tour "koligo/internal/features/tour/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAuthService_Login_Success verifies a valid login returns a verifiable token.
func TestAuthService_Login_Success(t *testing.T) {
	svc := NewAuthService("test-secret", time.Hour)

	resp, err := svc.Login(tour.LoginInput{EmployeeID: "EMP1001", Password: "1234"})
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "drv-001", resp.Driver.ID)
	assert.Equal(t, "EMP1001", resp.Driver.EmployeeID)

	driverID, err := svc.VerifyToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "drv-001", driverID)
}

// TestAuthService_Login_Failures verifies each rejection path.
func TestAuthService_Login_Failures(t *testing.T) {
	svc := NewAuthService("test-secret", time.Hour)

	tests := []struct {
		name  string
		input tour.LoginInput
		want  error
	}{
		{"MissingEmployeeID", tour.LoginInput{Password: "1234"}, authdomain.ErrMissingCredentials},
		{"MissingPassword", tour.LoginInput{EmployeeID: "EMP1001"}, authdomain.ErrMissingCredentials},
		{"UnknownEmployee", tour.LoginInput{EmployeeID: "EMP9999", Password: "1234"}, authdomain.ErrUnknownEmployee},
		{"ShortPassword", tour.LoginInput{EmployeeID: "EMP1001", Password: "123"}, authdomain.ErrInvalidPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.Login(tt.input)
			assert.Nil(t, resp)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

// TestAuthService_VerifyToken_Invalid verifies garbage and wrong-key tokens are rejected.
func TestAuthService_VerifyToken_Invalid(t *testing.T) {
	svc := NewAuthService("test-secret", time.Hour)

	_, err := svc.VerifyToken("not-a-token")
	assert.ErrorIs(t, err, authdomain.ErrInvalidToken)

	other := NewAuthService("other-secret", time.Hour)
	resp, err := other.Login(tour.LoginInput{EmployeeID: "EMP1001", Password: "1234"})
	require.NoError(t, err)

	_, err = svc.VerifyToken(resp.Token)
	assert.ErrorIs(t, err, authdomain.ErrInvalidToken)
}

// TestAuthService_VerifyToken_Expired verifies expired tokens are rejected.
func TestAuthService_VerifyToken_Expired(t *testing.T) {
	svc := NewAuthService("test-secret", time.Minute)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Minute) }

	resp, err := svc.Login(tour.LoginInput{EmployeeID: "EMP1001", Password: "1234"})
	require.NoError(t, err)

	_, err = svc.VerifyToken(resp.Token)
	assert.ErrorIs(t, err, authdomain.ErrInvalidToken)
}

package service

import (
	"fmt"
	"time"

	authdomain "koligo/internal/features/auth/domain"
	tour "koligo/internal/features/tour/domain"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the driver identity inside a session token.
type Claims struct {
	DriverID   string `json:"driver_id"`
	EmployeeID string `json:"employee_id"`
	jwt.RegisteredClaims
}

// AuthService authenticates drivers against the mock roster and issues
// HS256 session tokens.
type AuthService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewAuthService creates a new AuthService with the given signing secret and token lifetime.
func NewAuthService(secret string, ttl time.Duration) *AuthService {
	return &AuthService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Login validates the credentials and returns a token plus the driver profile.
func (s *AuthService) Login(input tour.LoginInput) (*tour.AuthResponse, error) {
	if err := authdomain.ValidateLogin(input); err != nil {
		return nil, err
	}

	driver, ok := authdomain.FindDriverByEmployeeID(input.EmployeeID)
	if !ok {
		return nil, authdomain.ErrUnknownEmployee
	}

	if len(input.Password) < authdomain.MinPasswordLength {
		return nil, authdomain.ErrInvalidPassword
	}

	now := s.now()
	claims := &Claims{
		DriverID:   driver.ID,
		EmployeeID: driver.EmployeeID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &tour.AuthResponse{
		Token:  token,
		Driver: driver,
	}, nil
}

// VerifyToken parses and validates a session token, returning the driver id.
func (s *AuthService) VerifyToken(tokenString string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", authdomain.ErrInvalidToken
	}
	return claims.DriverID, nil
}

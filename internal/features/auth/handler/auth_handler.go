package handler

import (
	"errors"
	"strings"

	authdomain "koligo/internal/features/auth/domain"
	"koligo/internal/features/auth/service"
	tour "koligo/internal/features/tour/domain"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

func rayID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return ""
}

// Login godoc
// @Summary Authenticate a driver
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body tour.LoginInput true "Employee credentials"
// @Success 200 {object} tour.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input tour.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: "invalid request body", RayID: rayID(c)})
	}

	resp, err := h.authService.Login(input)
	if err != nil {
		switch {
		case errors.Is(err, authdomain.ErrMissingCredentials):
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: err.Error(), RayID: rayID(c)})
		case errors.Is(err, authdomain.ErrUnknownEmployee), errors.Is(err, authdomain.ErrInvalidPassword):
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{Message: err.Error(), RayID: rayID(c)})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Message: "internal server error", RayID: rayID(c)})
	}

	return c.JSON(resp)
}

// RequireBearer returns a middleware enforcing a valid bearer token.
// The verified driver id is stored in c.Locals("driverID").
func RequireBearer(authService *service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{Message: "missing bearer token", RayID: rayID(c)})
		}

		driverID, err := authService.VerifyToken(strings.TrimSpace(token))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{Message: err.Error(), RayID: rayID(c)})
		}

		c.Locals("driverID", driverID)
		return c.Next()
	}
}

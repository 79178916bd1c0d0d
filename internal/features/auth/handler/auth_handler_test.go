package handler

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"koligo/internal/features/auth/service"
	tour "koligo/internal/features/tour/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp() (*fiber.App, *service.AuthService) {
	svc := service.NewAuthService("test-secret", time.Hour)
	h := NewAuthHandler(svc)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("requestid", "test-ray-id")
		return c.Next()
	})
	app.Post("/api/auth/login", h.Login)
	app.Get("/api/protected", RequireBearer(svc), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"driverId": c.Locals("driverID")})
	})
	return app, svc
}

func login(t *testing.T, app *fiber.App, input tour.LoginInput) (*fiber.App, int, []byte) {
	t.Helper()
	data, err := json.Marshal(input)
	require.NoError(t, err)
	req := httptest.NewRequest("POST", "/api/auth/login", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	return app, resp.StatusCode, buf.Bytes()
}

// TestAuthHandler_Login_Success verifies a valid login returns token and driver.
func TestAuthHandler_Login_Success(t *testing.T) {
	app, _ := newTestApp()

	_, code, body := login(t, app, tour.LoginInput{EmployeeID: "EMP1001", Password: "1234"})
	require.Equal(t, fiber.StatusOK, code, string(body))

	var resp tour.AuthResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "EMP1001", resp.Driver.EmployeeID)
}

// TestAuthHandler_Login_MissingFields verifies 400 when credentials are absent.
func TestAuthHandler_Login_MissingFields(t *testing.T) {
	app, _ := newTestApp()

	_, code, body := login(t, app, tour.LoginInput{EmployeeID: "EMP1001"})
	assert.Equal(t, fiber.StatusBadRequest, code)

	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(body, &errResp))
	assert.Equal(t, "test-ray-id", errResp.RayID)
}

// TestAuthHandler_Login_Unauthorized verifies 401 for unknown ids and short passwords.
func TestAuthHandler_Login_Unauthorized(t *testing.T) {
	app, _ := newTestApp()

	_, code, _ := login(t, app, tour.LoginInput{EmployeeID: "EMP9999", Password: "1234"})
	assert.Equal(t, fiber.StatusUnauthorized, code)

	_, code, _ = login(t, app, tour.LoginInput{EmployeeID: "EMP1001", Password: "12"})
	assert.Equal(t, fiber.StatusUnauthorized, code)
}

// TestRequireBearer verifies the middleware gates protected routes.
func TestRequireBearer(t *testing.T) {
	app, _ := newTestApp()

	req := httptest.NewRequest("GET", "/api/protected", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	_, code, body := login(t, app, tour.LoginInput{EmployeeID: "EMP1001", Password: "1234"})
	require.Equal(t, fiber.StatusOK, code)
	var authResp tour.AuthResponse
	require.NoError(t, json.Unmarshal(body, &authResp))

	req = httptest.NewRequest("GET", "/api/protected", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+authResp.Token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "drv-001", out["driverId"])

	req = httptest.NewRequest("GET", "/api/protected", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer garbage")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

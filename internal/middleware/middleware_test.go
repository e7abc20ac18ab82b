package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/roomsync-backend/internal/config"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, secret string, sub string, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sub,
		"exp": exp.Unix(),
	})
	s, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func protectedApp(cfg *config.Config) *fiber.App {
	app := fiber.New()
	app.Use(SecurityHeaders())
	app.Get("/me", JWTProtected(cfg), func(c *fiber.Ctx) error {
		id, err := GetUserID(c)
		if err != nil {
			return fiber.ErrUnauthorized
		}
		return c.SendString(id.String())
	})
	return app
}

func TestJWTProtected(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}
	app := protectedApp(cfg)
	userID := uuid.New()

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"valid token", "Bearer " + signedToken(t, "test-secret", userID.String(), time.Now().Add(time.Hour)), http.StatusOK},
		{"missing token", "", http.StatusUnauthorized},
		{"wrong secret", "Bearer " + signedToken(t, "other", userID.String(), time.Now().Add(time.Hour)), http.StatusUnauthorized},
		{"expired", "Bearer " + signedToken(t, "test-secret", userID.String(), time.Now().Add(-time.Hour)), http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
			assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
		})
	}
}

func TestGetUserIDRejectsBadSubject(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}
	app := protectedApp(cfg)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, "test-secret", "not-a-uuid", time.Now().Add(time.Hour)))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

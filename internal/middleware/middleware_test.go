package middleware

import (
	"bytes"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(buf *bytes.Buffer) *fiber.App {
	app := fiber.New()
	app.Use(RequestLogger(zerolog.New(buf)))
	app.Use(EnsurePlayerID())
	app.Get("/whoami", func(c *fiber.Ctx) error {
		return c.SendString(PlayerID(c))
	})
	app.Get("/ws/:gameId", WebSocketUpgrade(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestEnsurePlayerID(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		header     string
		wantStatus int
		wantBody   string
	}{
		{name: "header", target: "/whoami", header: "p1", wantStatus: fiber.StatusOK, wantBody: "p1"},
		{name: "query", target: "/whoami?playerId=p2", wantStatus: fiber.StatusOK, wantBody: "p2"},
		{name: "header wins", target: "/whoami?playerId=p2", header: "p1", wantStatus: fiber.StatusOK, wantBody: "p1"},
		{name: "missing", target: "/whoami", wantStatus: fiber.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newApp(&bytes.Buffer{})
			req := httptest.NewRequest(fiber.MethodGet, tt.target, nil)
			if tt.header != "" {
				req.Header.Set(PlayerIDHeader, tt.header)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantBody != "" {
				body, err := io.ReadAll(resp.Body)
				require.NoError(t, err)
				assert.Equal(t, tt.wantBody, string(body))
			}
		})
	}
}

func TestWebSocketUpgradeRequiresUpgrade(t *testing.T) {
	app := newApp(&bytes.Buffer{})
	req := httptest.NewRequest(fiber.MethodGet, "/ws/g1?playerId=p1", nil)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUpgradeRequired, resp.StatusCode)
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	app := newApp(&buf)
	req := httptest.NewRequest(fiber.MethodGet, "/whoami", nil)
	req.Header.Set(PlayerIDHeader, "p1")

	_, err := app.Test(req)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), `"path":"/whoami"`)
	assert.Contains(t, buf.String(), `"status":200`)
	assert.Contains(t, buf.String(), `"player":"p1"`)
}

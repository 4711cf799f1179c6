package middleware

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(cfg Config) (*fiber.App, Middleware) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	m := New(logger, cfg)
	app := fiber.New()
	app.Use(m.NewRequestIDMiddleware())
	app.Use(m.NewLoggingMiddleware())
	app.Get("/id", func(c *fiber.Ctx) error {
		return c.SendString(m.GetRequestID(c))
	})
	app.Get("/limited", m.NewRateLimiter, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	return app, m
}

func TestRequestIDGenerated(t *testing.T) {
	app, _ := newTestApp(Config{})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/id", nil))
	require.NoError(t, err)

	body, _ := io.ReadAll(resp.Body)
	assert.Len(t, string(body), 26)
	assert.Equal(t, string(body), resp.Header.Get(RequestIDKey))
}

func TestRequestIDPropagated(t *testing.T) {
	app, _ := newTestApp(Config{})

	req := httptest.NewRequest(fiber.MethodGet, "/id", nil)
	req.Header.Set(RequestIDKey, "abc-123")
	resp, err := app.Test(req)
	require.NoError(t, err)

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "abc-123", string(body))
}

func TestRequestIDUnsafeValueReplaced(t *testing.T) {
	app, _ := newTestApp(Config{})

	req := httptest.NewRequest(fiber.MethodGet, "/id", nil)
	req.Header.Set(RequestIDKey, "../../etc")
	resp, err := app.Test(req)
	require.NoError(t, err)

	body, _ := io.ReadAll(resp.Body)
	assert.NotEqual(t, "../../etc", string(body))
	assert.Len(t, string(body), 26)
}

func TestRateLimiter(t *testing.T) {
	app, _ := newTestApp(Config{RequestRate: 0.001, BurstSize: 2})

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/limited", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	}

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/limited", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderRetryAfter))
}

func TestSanitizeRequestBody(t *testing.T) {
	assert.Equal(t, `{"token":"[SECRET]","url":"https://example.com"}`, sanitizeRequestBody(`{"url":"https://example.com","token":"abc"}`))
	assert.Equal(t, "[non-JSON body]", sanitizeRequestBody("url=x"))
}

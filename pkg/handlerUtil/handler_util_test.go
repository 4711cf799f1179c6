package handlerUtil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"VirtualFitting/pkg/response"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, err error) (int, ErrorResponse) {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return New(logger).Handle(c, "req-1", err, c.Path(), "test")
	})

	resp, reqErr := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	require.NoError(t, reqErr)

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestHandleResponseError(t *testing.T) {
	code, body := serve(t, response.NewError(http.StatusUnprocessableEntity, "no body"))
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, "no body", body.Error)
}

func TestHandleWrappedResponseError(t *testing.T) {
	err := fmt.Errorf("%w: timeout", response.NewError(http.StatusInternalServerError, "Error scraping images"))
	code, body := serve(t, err)
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "Error scraping images: timeout", body.Error)
}

func TestHandleValidationError(t *testing.T) {
	type req struct {
		URL string `validate:"required"`
	}
	err := validator.New().Struct(req{})
	code, body := serve(t, err)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "VALIDATION_ERROR", body.Code)
}

func TestHandleFiberError(t *testing.T) {
	code, body := serve(t, fiber.ErrUnprocessableEntity)
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, "Unprocessable Entity", body.Error)
}

func TestHandleUnexpectedError(t *testing.T) {
	code, body := serve(t, errors.New("disk on fire"))
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "An unexpected error occurred", body.Error)
	assert.Equal(t, "req-1", body.TraceID)
}

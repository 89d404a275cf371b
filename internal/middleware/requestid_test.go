package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Ujjwal3492/Fitness/pkg/logger"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDMiddleware_GeneratesID(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen string
	h := RequestIDMiddleware(func(c echo.Context) error {
		seen, _ = c.Get(logger.RequestIDKey).(string)
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))

	_, err := uuid.Parse(seen)
	assert.NoError(t, err)
	assert.Equal(t, seen, rec.Header().Get(logger.RequestIDKey))
}

func TestRequestIDMiddleware_KeepsIncomingID(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(logger.RequestIDKey, "abc-123")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := RequestIDMiddleware(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))

	assert.Equal(t, "abc-123", rec.Header().Get(logger.RequestIDKey))
}

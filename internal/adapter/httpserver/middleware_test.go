package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pscheid92/pollpulse/internal/domain"
	"github.com/pscheid92/pollpulse/internal/platform/correlation"
	apperrors "github.com/pscheid92/pollpulse/internal/platform/errors"
)

func runErrorMiddleware(t *testing.T, handlerErr error) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := ErrorHandlingMiddleware()(func(echo.Context) error {
		return handlerErr
	})(c)
	return rec, err
}

func TestErrorMiddleware_AllErrorTypes(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   apperrors.ErrorType
		wantMsg    string
	}{
		{"validation", apperrors.ValidationError("invalid input"), http.StatusBadRequest, apperrors.TypeValidation, "invalid input"},
		{"not found", apperrors.NotFoundError("poll not found").Wrap(domain.ErrPollNotFound), http.StatusNotFound, apperrors.TypeNotFound, "poll not found"},
		{"internal", apperrors.InternalError("failed to store response", errors.New("db down")), http.StatusInternalServerError, apperrors.TypeInternal, "failed to store response"},
		{"plain error", errors.New("standard error"), http.StatusInternalServerError, apperrors.TypeInternal, "internal server error"},
		{"wrapped structured", fmt.Errorf("outer: %w", apperrors.ValidationError("bad")), http.StatusBadRequest, apperrors.TypeValidation, "bad"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := runErrorMiddleware(t, tt.err)
			require.NoError(t, err)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var resp apperrors.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantType, resp.Type)
			assert.Equal(t, tt.wantMsg, resp.Error)
		})
	}
}

func TestErrorMiddleware_ContextFieldsInResponse(t *testing.T) {
	rec, err := runErrorMiddleware(t, apperrors.NotFoundError("no responses found for this poll").WithField("poll_id", int64(3)))
	require.NoError(t, err)

	assert.JSONEq(t, `{"error":"no responses found for this poll","type":"not_found","context":{"poll_id":3}}`, rec.Body.String())
}

func TestErrorMiddleware_NoError(t *testing.T) {
	rec, err := runErrorMiddleware(t, nil)
	require.NoError(t, err)
	assert.Empty(t, rec.Body.String())
}

func TestErrorMiddleware_PassesHTTPErrorThrough(t *testing.T) {
	httpErr := echo.NewHTTPError(http.StatusMethodNotAllowed, "nope")

	_, err := runErrorMiddleware(t, httpErr)
	assert.Equal(t, httpErr, err)
}

func TestErrorMiddleware_StructuredWrappingHTTPError(t *testing.T) {
	cause := echo.NewHTTPError(http.StatusUnsupportedMediaType, "unsupported")

	rec, err := runErrorMiddleware(t, apperrors.ValidationError("invalid request body").Wrap(cause))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCorrelationMiddleware_GeneratesID(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen string
	err := correlationMiddleware(func(c echo.Context) error {
		seen, _ = correlation.ID(c.Request().Context())
		return nil
	})(c)
	require.NoError(t, err)

	_, parseErr := uuid.Parse(seen)
	assert.NoError(t, parseErr)
	assert.Equal(t, seen, rec.Header().Get(correlation.HeaderName))
}

func TestCorrelationMiddleware_ReusesHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(correlation.HeaderName, "abc-123")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen string
	err := correlationMiddleware(func(c echo.Context) error {
		seen, _ = correlation.ID(c.Request().Context())
		return nil
	})(c)
	require.NoError(t, err)

	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", rec.Header().Get(correlation.HeaderName))
}

package httpserver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/pscheid92/pollpulse/internal/domain"
	"github.com/pscheid92/pollpulse/internal/platform/config"
)

// --- Mock implementations ---

type mockAppService struct {
	createPollFn     func(ctx context.Context, question string) (*domain.Poll, error)
	listPollsFn      func(ctx context.Context) ([]domain.Poll, error)
	submitResponseFn func(ctx context.Context, pollID int64, answer string) (*domain.Response, error)
	getResultsFn     func(ctx context.Context, pollID int64) (*domain.ResultsReport, error)
}

func (m *mockAppService) CreatePoll(ctx context.Context, question string) (*domain.Poll, error) {
	if m.createPollFn != nil {
		return m.createPollFn(ctx, question)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAppService) ListPolls(ctx context.Context) ([]domain.Poll, error) {
	if m.listPollsFn != nil {
		return m.listPollsFn(ctx)
	}
	return []domain.Poll{}, nil
}

func (m *mockAppService) SubmitResponse(ctx context.Context, pollID int64, answer string) (*domain.Response, error) {
	if m.submitResponseFn != nil {
		return m.submitResponseFn(ctx, pollID, answer)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAppService) GetResults(ctx context.Context, pollID int64) (*domain.ResultsReport, error) {
	if m.getResultsFn != nil {
		return m.getResultsFn(ctx, pollID)
	}
	return nil, errors.New("not implemented")
}

// --- Test helpers ---

func testConfig() *config.Config {
	return &config.Config{
		Port:               "0",
		StorageBackend:     config.BackendMemory,
		RateLimitPerSecond: 100,
		RateLimitBurst:     100,
	}
}

func newTestServer(t *testing.T, app appService, opts ...func(*Server)) *Server {
	t.Helper()

	srv := &Server{
		echo:   echo.New(),
		config: testConfig(),
		app:    app,
	}

	for _, opt := range opts {
		opt(srv)
	}

	srv.registerRoutes()

	return srv
}

func withHealthChecks(checks ...HealthCheck) func(*Server) {
	return func(s *Server) {
		s.healthChecks = checks
	}
}

func withConfig(cfg *config.Config) func(*Server) {
	return func(s *Server) {
		s.config = cfg
	}
}

// callHandler wraps a handler with error middleware, matching production behavior
func callHandler(handler echo.HandlerFunc, c echo.Context) error {
	return ErrorHandlingMiddleware()(handler)(c)
}

// serve runs a request through the full router and middleware stack.
func serve(srv *Server, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)
	return rec
}

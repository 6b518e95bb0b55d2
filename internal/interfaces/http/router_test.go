package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/SPAC-Sentinel/internal/application/compliance"
	"github.com/turtacn/SPAC-Sentinel/internal/domain/checklist"
	"github.com/turtacn/SPAC-Sentinel/internal/domain/filing"
	"github.com/turtacn/SPAC-Sentinel/internal/domain/spac"
	"github.com/turtacn/SPAC-Sentinel/internal/interfaces/http/handlers"
	"github.com/turtacn/SPAC-Sentinel/internal/interfaces/http/middleware"
	"github.com/turtacn/SPAC-Sentinel/pkg/errors"
)

type stubService struct {
	deadlines []compliance.FilingDeadlineItem
	alerts    []compliance.DeadlineAlert
	dashboard *compliance.Dashboard
	err       error
}

func (s *stubService) GetDeadlines(_ context.Context, spacID string) ([]compliance.FilingDeadlineItem, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.deadlines, nil
}

func (s *stubService) ListDeadlines(_ context.Context, _ spac.ListFilter) ([]compliance.FilingDeadlineItem, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.deadlines, nil
}

func (s *stubService) GetAlerts(_ context.Context, _ spac.ListFilter) ([]compliance.DeadlineAlert, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.alerts, nil
}

func (s *stubService) GetChecklist(_ context.Context, filingType filing.FilingType) (checklist.ChecklistTemplate, error) {
	registry, err := checklist.NewDefaultRegistry()
	if err != nil {
		return checklist.ChecklistTemplate{}, err
	}
	return registry.TemplateFor(filingType)
}

func (s *stubService) GetChecklistProgress(_ context.Context, spacID string, filingType filing.FilingType) (*compliance.ChecklistProgressView, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &compliance.ChecklistProgressView{SpacID: spacID, FilingType: filingType}, nil
}

func (s *stubService) GetDashboard(_ context.Context) (*compliance.Dashboard, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.dashboard, nil
}

func newTestRouter(svc compliance.Service) http.Handler {
	return NewRouter(RouterConfig{
		ComplianceHandler: handlers.NewComplianceHandler(svc),
		ChecklistHandler:  handlers.NewChecklistHandler(svc),
		RegistryHandler:   handlers.NewRegistryHandler(),
		HealthHandler:     handlers.NewHealthHandler(nil),
		CORSConfig:        middleware.DefaultCORSConfig(),
		Mode:              "test",
	})
}

func doRequest(t *testing.T, router http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRouterSpacDeadlines(t *testing.T) {
	svc := &stubService{deadlines: []compliance.FilingDeadlineItem{
		{ID: "spac-atlas-10-K-1743379200", SpacID: "spac-atlas"},
	}}
	rec := doRequest(t, newTestRouter(svc), http.MethodGet, "/api/v1/spacs/spac-atlas/deadlines")

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Count     int                              `json:"count"`
		Deadlines []compliance.FilingDeadlineItem `json:"deadlines"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Count)
	assert.Equal(t, "spac-atlas", body.Deadlines[0].SpacID)
}

func TestRouterSpacDeadlines_NotFound(t *testing.T) {
	svc := &stubService{err: errors.New(errors.ErrCodeSpacNotFound, "spac not found: nope")}
	rec := doRequest(t, newTestRouter(svc), http.MethodGet, "/api/v1/spacs/nope/deadlines")

	require.Equal(t, http.StatusNotFound, rec.Code)
	var body handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "SPAC_001", body.Code)
}

func TestRouterListDeadlines_InvalidStatus(t *testing.T) {
	rec := doRequest(t, newTestRouter(&stubService{}), http.MethodGet, "/api/v1/deadlines?status=BOGUS")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouterAlerts_SeverityFilter(t *testing.T) {
	svc := &stubService{alerts: []compliance.DeadlineAlert{
		{ID: "a1", Severity: compliance.SeverityCritical},
		{ID: "a2", Severity: compliance.SeverityInfo},
	}}
	rec := doRequest(t, newTestRouter(svc), http.MethodGet, "/api/v1/alerts?severity=critical")

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Count  int                        `json:"count"`
		Alerts []compliance.DeadlineAlert `json:"alerts"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, 1, body.Count)
	assert.Equal(t, compliance.SeverityCritical, body.Alerts[0].Severity)
}

func TestRouterRegistry(t *testing.T) {
	router := newTestRouter(&stubService{})

	rec := doRequest(t, router, http.MethodGet, "/api/v1/registry/filings")
	require.Equal(t, http.StatusOK, rec.Code)
	var filings struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &filings))
	assert.Equal(t, len(filing.AllFilingTypes), filings.Count)

	rec = doRequest(t, router, http.MethodGet, "/api/v1/registry/filings/8-K")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/v1/registry/filer-statuses")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/v1/registry/statuses")
	require.Equal(t, http.StatusOK, rec.Code)
	var statuses struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &statuses))
	assert.Equal(t, len(spac.AllStatuses), statuses.Count)
}

func TestRouterChecklistTemplate(t *testing.T) {
	router := newTestRouter(&stubService{})

	rec := doRequest(t, router, http.MethodGet, "/api/v1/checklists/10-K")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/v1/checklists/NOPE")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouterHealthz(t *testing.T) {
	rec := doRequest(t, newTestRouter(&stubService{}), http.MethodGet, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouterReadyz_DegradedDependency(t *testing.T) {
	router := NewRouter(RouterConfig{
		HealthHandler: handlers.NewHealthHandler(map[string]handlers.HealthChecker{
			"postgres": func(_ context.Context) error { return nil },
			"redis": func(_ context.Context) error {
				return errors.New(errors.ErrCodeCacheError, "connection refused")
			},
		}),
		CORSConfig: middleware.DefaultCORSConfig(),
		Mode:       "test",
	})
	rec := doRequest(t, router, http.MethodGet, "/readyz")

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var body struct {
		Status       string            `json:"status"`
		Dependencies map[string]string `json:"dependencies"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "degraded", body.Status)
	assert.Equal(t, "ok", body.Dependencies["postgres"])
}

func TestRouterRateLimit(t *testing.T) {
	limiter := middleware.NewClientRateLimiter(1, 2, 0)
	defer limiter.Stop()

	cfg := middleware.DefaultRateLimitConfig()
	router := NewRouter(RouterConfig{
		RegistryHandler: handlers.NewRegistryHandler(),
		RateLimiter:     limiter,
		RateLimitConfig: cfg,
		CORSConfig:      middleware.DefaultCORSConfig(),
		Mode:            "test",
	})

	var lastCode int
	for i := 0; i < 5; i++ {
		rec := doRequest(t, router, http.MethodGet, "/api/v1/registry/blackouts")
		lastCode = rec.Code
	}
	assert.Equal(t, http.StatusTooManyRequests, lastCode)

	// healthz is on the skip list and never throttled
	time.Sleep(10 * time.Millisecond)
	rec := doRequest(t, router, http.MethodGet, "/healthz")
	assert.NotEqual(t, http.StatusTooManyRequests, rec.Code)
}

package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fpapulse/internal/services"
)

type okPinger struct{}

func (okPinger) Ping(ctx context.Context) error { return nil }

type configuredCompleter struct{}

func (configuredCompleter) Configured() bool { return true }
func (configuredCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	return "ok", nil
}

func TestHealthEndpoints(t *testing.T) {
	svc := services.NewHealthService("v1.0.0", "", okPinger{}, configuredCompleter{}, testLogger())
	h := NewHealthHandler(svc, testLogger())

	t.Run("health", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.HealthCheck(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"ok"`)
	})

	t.Run("ready", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ReadinessCheck(w, httptest.NewRequest(http.MethodGet, "/api/health/ready", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"ready"`)
	})

	t.Run("live", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.LivenessCheck(w, httptest.NewRequest(http.MethodGet, "/api/health/live", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"alive"`)
	})

	t.Run("version", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.Version(w, httptest.NewRequest(http.MethodGet, "/api/version", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "v1.0.0")
	})
}

func TestReadinessNotReady(t *testing.T) {
	svc := services.NewHealthService("v1.0.0", "", nil, nil, testLogger())
	h := NewHealthHandler(svc, testLogger())

	w := httptest.NewRecorder()
	h.ReadinessCheck(w, httptest.NewRequest(http.MethodGet, "/api/health/ready", nil))

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "not_ready")
}

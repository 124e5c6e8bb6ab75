package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bootcli/internal/config"
	"bootcli/internal/infrastructure"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:            18080,
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     30 * time.Second,
			ShutdownTimeout: 5 * time.Second,
			RateLimit:       config.RateLimitConfig{Enabled: false},
		},
		Logging: config.LoggingConfig{Level: "error", Format: "json", Output: "console"},
		Engine: config.EngineConfig{
			Replicates:    200,
			MaxReplicates: 5000,
			Workers:       2,
			Seed:          3,
			Confidence:    0.95,
		},
	}
}

func newTestApp(t *testing.T) *Application {
	t.Helper()
	infrastructure.ResetLoggerForTesting()

	app, err := New(testConfig())
	require.NoError(t, err)
	return app
}

func TestRouterHealth(t *testing.T) {
	app := newTestApp(t)

	rec := httptest.NewRecorder()
	app.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestRouterBootstrapRoundTrip(t *testing.T) {
	app := newTestApp(t)

	body, err := json.Marshal(map[string]interface{}{
		"sample":    []float64{0.01, -0.02, 0.03, 0.015, -0.005, 0.02},
		"statistic": "var",
		"params":    map[string]float64{"alpha": 0.1},
		"parallel":  true,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/bootstrap", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var outcome struct {
		Statistic  string `json:"statistic"`
		Replicates int    `json:"replicates"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &outcome))
	assert.Equal(t, "var", outcome.Statistic)
	assert.Equal(t, 200, outcome.Replicates)
}

func TestRouterStatistics(t *testing.T) {
	app := newTestApp(t)

	rec := httptest.NewRecorder()
	app.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/statistics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "maxdrawdown")
}

func TestRouterMetrics(t *testing.T) {
	app := newTestApp(t)

	rec := httptest.NewRecorder()
	app.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouterUnknownRoute(t *testing.T) {
	app := newTestApp(t)

	rec := httptest.NewRecorder()
	app.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bootcli/internal/config"
	"bootcli/internal/services"
)

func testService() *services.BootstrapService {
	return services.NewBootstrapService(config.EngineConfig{
		Replicates:    200,
		MaxReplicates: 5000,
		Workers:       2,
		Seed:          11,
		Confidence:    0.95,
	}, nil)
}

func postBootstrap(t *testing.T, handler *BootstrapHandler, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/bootstrap", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	handler.Run(rec, req)
	return rec
}

func TestBootstrapHandlerRun(t *testing.T) {
	handler := NewBootstrapHandler(testService(), nil)

	rec := postBootstrap(t, handler, map[string]interface{}{
		"sample":     []float64{0.01, -0.02, 0.03, 0.015, -0.005, 0.02},
		"statistic":  "mean",
		"replicates": 300,
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var outcome services.RunOutcome
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &outcome))
	assert.Equal(t, "mean", outcome.Statistic)
	assert.Equal(t, 300, outcome.Replicates)
	assert.Len(t, outcome.Result.Estimates, 300)
	assert.NotNil(t, outcome.Analytic)
}

func TestBootstrapHandlerValidation(t *testing.T) {
	handler := NewBootstrapHandler(testService(), nil)

	tests := []struct {
		name string
		body map[string]interface{}
		code string
	}{
		{
			name: "missing sample",
			body: map[string]interface{}{"statistic": "mean"},
			code: "VALIDATION_FAILED",
		},
		{
			name: "missing statistic",
			body: map[string]interface{}{"sample": []float64{1, 2, 3}},
			code: "VALIDATION_FAILED",
		},
		{
			name: "confidence out of range",
			body: map[string]interface{}{
				"sample":     []float64{1, 2, 3},
				"statistic":  "mean",
				"confidence": 1.5,
			},
			code: "VALIDATION_FAILED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postBootstrap(t, handler, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var resp struct {
				Error struct {
					ErrorCode string `json:"error_code"`
				} `json:"error"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.code, resp.Error.ErrorCode)
		})
	}
}

func TestBootstrapHandlerUnknownStatistic(t *testing.T) {
	handler := NewBootstrapHandler(testService(), nil)

	rec := postBootstrap(t, handler, map[string]interface{}{
		"sample":    []float64{1, 2, 3},
		"statistic": "kurtosis",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBootstrapHandlerStatisticFailure(t *testing.T) {
	handler := NewBootstrapHandler(testService(), nil)

	// A constant sample has an empty loss tail, so expected shortfall fails
	// on every replicate.
	rec := postBootstrap(t, handler, map[string]interface{}{
		"sample":    []float64{0.01, 0.01, 0.01, 0.01},
		"statistic": "es",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestBootstrapHandlerMalformedBody(t *testing.T) {
	handler := NewBootstrapHandler(testService(), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/bootstrap", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.Run(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStatisticsHandlerList(t *testing.T) {
	handler := NewStatisticsHandler()

	rec := httptest.NewRecorder()
	handler.List(rec, httptest.NewRequest(http.MethodGet, "/api/statistics", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp StatisticsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Statistics)

	names := make([]string, 0, len(resp.Statistics))
	for _, info := range resp.Statistics {
		names = append(names, info.Name)
	}
	assert.Contains(t, names, "mean")
	assert.Contains(t, names, "sharpe")
	assert.Contains(t, names, "es")
}

func TestHealthHandler(t *testing.T) {
	handler := NewHealthHandler()

	rec := httptest.NewRecorder()
	handler.HealthCheck(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])

	rec = httptest.NewRecorder()
	handler.VersionInfo(rec, httptest.NewRequest(http.MethodGet, "/api/version", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}

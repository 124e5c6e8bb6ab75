package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bootcli/internal/bootstrap"
)

func TestAPIError(t *testing.T) {
	err := New(http.StatusBadRequest, "INVALID_REQUEST", "bad payload")
	assert.Equal(t, "bad payload", err.Error())
	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	assert.Equal(t, "INVALID_REQUEST", err.ErrorCode)
}

func TestFromEngine(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "input error maps to 400",
			err:        &bootstrap.InputError{Reason: "sample must not be empty"},
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_FAILED",
		},
		{
			name:       "statistic error maps to 422",
			err:        &bootstrap.StatisticError{Replicate: 3, Err: errors.New("empty tail")},
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "STATISTIC_FAILED",
		},
		{
			name:       "worker error maps to 500",
			err:        &bootstrap.WorkerError{Worker: 1, Err: errors.New("panic: oom")},
			wantStatus: http.StatusInternalServerError,
			wantCode:   "WORKER_FAILED",
		},
		{
			name:       "unknown error maps to 500",
			err:        errors.New("something else"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_SERVER_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := FromEngine(tt.err)
			assert.Equal(t, tt.wantStatus, apiErr.StatusCode)
			assert.Equal(t, tt.wantCode, apiErr.ErrorCode)
		})
	}
}

func TestFromEngineUnwrapsWrappedErrors(t *testing.T) {
	wrapped := &bootstrap.StatisticError{Replicate: 0, Err: errors.New("zero volatility")}
	apiErr := FromEngine(wrapped)
	assert.Equal(t, "STATISTIC_FAILED", apiErr.ErrorCode)
	assert.Equal(t, "zero volatility", apiErr.Details)
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, ErrValidation("replicates", "must be >= 1"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "VALIDATION_FAILED", resp.Error.ErrorCode)
}

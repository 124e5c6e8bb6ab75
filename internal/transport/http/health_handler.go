package http

import (
	"net/http"
	"runtime"
	"time"

	"github.com/go-chi/render"
)

// Build metadata, set via -ldflags at release time.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// HealthHandler serves liveness, readiness, and version endpoints.
type HealthHandler struct {
	started time.Time
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{started: time.Now()}
}

// HealthCheck handles GET /api/health.
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]interface{}{
		"status":    "healthy",
		"uptime":    time.Since(h.started).String(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// LivenessCheck handles GET /api/health/live.
func (h *HealthHandler) LivenessCheck(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "alive"})
}

// ReadinessCheck handles GET /api/health/ready. The engine has no external
// dependencies, so readiness follows liveness.
func (h *HealthHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "ready"})
}

// VersionInfo handles GET /api/version.
func (h *HealthHandler) VersionInfo(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{
		"version":    Version,
		"build_time": BuildTime,
		"go_version": runtime.Version(),
	})
}

package http

import (
	"net/http"

	"github.com/go-chi/render"

	"bootcli/internal/statistic"
)

// StatisticsHandler serves the statistic catalog.
type StatisticsHandler struct{}

// NewStatisticsHandler creates a new statistics handler.
func NewStatisticsHandler() *StatisticsHandler {
	return &StatisticsHandler{}
}

// StatisticsResponse is the body for GET /api/statistics.
type StatisticsResponse struct {
	Statistics []statistic.Info `json:"statistics"`
}

// List handles GET /api/statistics.
func (h *StatisticsHandler) List(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, StatisticsResponse{Statistics: statistic.Catalog()})
}

package http

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	apierrors "bootcli/internal/errors"
)

// Stream frame types.
const (
	frameProgress = "progress"
	frameResult   = "result"
	frameError    = "error"
)

// StreamFrame is one message on the bootstrap progress stream.
type StreamFrame struct {
	Type      string      `json:"type"`
	Completed int         `json:"completed,omitempty"`
	Total     int         `json:"total,omitempty"`
	Outcome   interface{} `json:"outcome,omitempty"`
	Error     interface{} `json:"error,omitempty"`
}

// StreamHandler runs a bootstrap over a WebSocket, streaming replicate
// progress before the final result.
type StreamHandler struct {
	service  BootstrapRunner
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewStreamHandler creates a new stream handler.
func NewStreamHandler(service BootstrapRunner, logger *slog.Logger) *StreamHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &StreamHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		logger: logger.With(slog.String("handler", "stream")),
	}
}

// Stream handles GET /api/bootstrap/stream. The client sends one
// BootstrapRequest as the first text frame; the server answers with
// progress frames and a terminal result or error frame.
func (h *StreamHandler) Stream(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WarnContext(ctx, "websocket upgrade failed",
			slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	var req BootstrapRequest
	if err := conn.ReadJSON(&req); err != nil {
		h.writeFrame(conn, StreamFrame{
			Type:  frameError,
			Error: apierrors.InvalidRequestWithError(err),
		})
		return
	}

	sender := &frameSender{conn: conn}

	// Progress fires once per completed worker chunk, so the frame volume is
	// bounded by the worker count.
	outcome, err := h.service.RunWithProgress(ctx, req.toService(), func(completed, total int) {
		sender.send(StreamFrame{Type: frameProgress, Completed: completed, Total: total})
	})
	if err != nil {
		apiErr := apierrors.FromEngine(err)
		h.logger.WarnContext(ctx, "streamed bootstrap run failed",
			slog.String("statistic", req.Statistic),
			slog.String("error_code", apiErr.ErrorCode))
		sender.send(StreamFrame{Type: frameError, Error: apiErr})
		return
	}

	sender.send(StreamFrame{Type: frameResult, Outcome: outcome})
}

func (h *StreamHandler) writeFrame(conn *websocket.Conn, frame StreamFrame) {
	if err := conn.WriteJSON(frame); err != nil {
		h.logger.Warn("failed to write stream frame", slog.String("error", err.Error()))
	}
}

// frameSender serializes concurrent frame writes. Progress callbacks arrive
// from worker goroutines and gorilla allows one writer at a time.
type frameSender struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (s *frameSender) send(frame StreamFrame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.conn.WriteJSON(frame)
}

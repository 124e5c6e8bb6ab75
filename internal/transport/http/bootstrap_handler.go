package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "bootcli/internal/errors"
	"bootcli/internal/services"
	"bootcli/internal/statistic"
)

// BootstrapRunner is the service contract the handlers need.
type BootstrapRunner interface {
	Run(ctx context.Context, req services.RunRequest) (*services.RunOutcome, error)
	RunWithProgress(ctx context.Context, req services.RunRequest, progress func(completed, total int)) (*services.RunOutcome, error)
}

// BootstrapHandler handles bootstrap run requests.
type BootstrapHandler struct {
	service  BootstrapRunner
	validate *validator.Validate
	logger   *slog.Logger
}

// NewBootstrapHandler creates a new bootstrap handler.
func NewBootstrapHandler(service BootstrapRunner, logger *slog.Logger) *BootstrapHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &BootstrapHandler{
		service:  service,
		validate: validator.New(),
		logger:   logger.With(slog.String("handler", "bootstrap")),
	}
}

// BootstrapRequest is the JSON body for POST /api/bootstrap.
type BootstrapRequest struct {
	Sample     []float64        `json:"sample" validate:"required,min=1"`
	Statistic  string           `json:"statistic" validate:"required"`
	Params     statistic.Params `json:"params"`
	Replicates int              `json:"replicates" validate:"omitempty,min=1"`
	Confidence float64          `json:"confidence" validate:"omitempty,gt=0,lt=1"`
	Parallel   bool             `json:"parallel"`
	Workers    int              `json:"workers" validate:"omitempty,min=1"`
	Seed       int64            `json:"seed"`
}

// Bind implements render.Binder.
func (req *BootstrapRequest) Bind(r *http.Request) error {
	return nil
}

func (req *BootstrapRequest) toService() services.RunRequest {
	return services.RunRequest{
		Sample:     req.Sample,
		Statistic:  req.Statistic,
		Params:     req.Params,
		Replicates: req.Replicates,
		Confidence: req.Confidence,
		Parallel:   req.Parallel,
		Workers:    req.Workers,
		Seed:       req.Seed,
	}
}

// Run handles POST /api/bootstrap.
func (h *BootstrapHandler) Run(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req BootstrapRequest
	if err := render.Bind(r, &req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode bootstrap request",
			slog.String("error", err.Error()))
		render.Render(w, r, apierrors.NewErrorResponse(apierrors.InvalidRequestWithError(err)))
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		render.Render(w, r, apierrors.NewErrorResponse(validationError(err)))
		return
	}

	outcome, err := h.service.Run(ctx, req.toService())
	if err != nil {
		apiErr := apierrors.FromEngine(err)
		h.logger.WarnContext(ctx, "bootstrap run failed",
			slog.String("statistic", req.Statistic),
			slog.String("error_code", apiErr.ErrorCode),
			slog.String("error", err.Error()))
		render.Render(w, r, apierrors.NewErrorResponse(apiErr))
		return
	}

	render.JSON(w, r, outcome)
}

// validationError flattens validator.ValidationErrors into the shared
// error envelope.
func validationError(err error) *apierrors.APIError {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apierrors.InvalidRequestWithError(err)
	}

	fields := make([]apierrors.ValidationError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, apierrors.ValidationError{
			Field:   fe.Field(),
			Message: "failed validation rule " + fe.Tag(),
		})
	}
	return apierrors.NewValidationErrors(fields)
}

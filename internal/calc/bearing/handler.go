package bearing

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/arenoe-studio/terzaghi-calculator/internal/api"
	"github.com/arenoe-studio/terzaghi-calculator/internal/metrics"
)

type Handler struct {
	Logger *slog.Logger
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := api.Decode(r, &input); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	res, err := Evaluate(input)
	if err != nil {
		WriteError(w, h.log(), err)
		return
	}
	api.OK(w, res)
}

// Evaluate runs Calculate and records the outcome in the calculation metrics.
func Evaluate(in Input) (Result, error) {
	res, err := Calculate(in)
	shape, mode := string(in.Shape), string(in.FailureMode)
	if !in.Shape.valid() {
		shape = "unknown"
	}
	if !in.FailureMode.valid() {
		mode = "unknown"
	}
	metrics.ObserveCalculation(shape, mode, Outcome(err))
	return res, err
}

// Outcome classifies a Calculate error for metrics and batch reports.
func Outcome(err error) string {
	var ve *ValidationError
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &ve):
		return "invalid"
	default:
		return "error"
	}
}

// WriteError maps a Calculate error onto the JSON error envelope: 400 with
// the field name for invalid input, 422 for interpolation failures.
func WriteError(w http.ResponseWriter, log *slog.Logger, err error) {
	var ie *InterpolationError
	if errors.As(err, &ie) {
		log.Error("interpolation failed", slog.String("error", err.Error()))
		api.Error(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	api.Invalid(w, err)
}

func (h *Handler) log() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

package report

import (
	"bytes"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/arenoe-studio/terzaghi-calculator/internal/api"
	"github.com/arenoe-studio/terzaghi-calculator/internal/calc/bearing"
)

type Handler struct {
	Logger *slog.Logger
	Now    func() time.Time
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := api.Decode(r, &input); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	res, err := bearing.Evaluate(input.Calculation)
	if err != nil {
		bearing.WriteError(w, h.log(), err)
		return
	}

	now := time.Now()
	if h.Now != nil {
		now = h.Now()
	}
	var buf bytes.Buffer
	if err := Render(&buf, input, res, now); err != nil {
		h.log().Error("render report", "err", err)
		api.Error(w, http.StatusInternalServerError, "Report generation error")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"bearing-capacity.pdf\"")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	buf.WriteTo(w)
}

func (h *Handler) log() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

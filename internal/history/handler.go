package history

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/arenoe-studio/terzaghi-calculator/internal/api"
	"github.com/arenoe-studio/terzaghi-calculator/internal/auth"
	"github.com/arenoe-studio/terzaghi-calculator/internal/calc/bearing"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	Store  *Store
	Logger *slog.Logger
}

type SaveRequest struct {
	Description string        `json:"description"`
	Input       bearing.Input `json:"input"`
}

type saved struct {
	RowIndex int            `json:"rowIndex"`
	Result   bearing.Result `json:"result"`
}

func (h *Handler) log() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

func identity(r *http.Request) (string, bool) {
	u, ok := auth.UserFromContext(r.Context())
	return u.Login, ok
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNoIdentity):
		api.Error(w, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, ErrInvalidRow):
		api.Error(w, http.StatusNotFound, "Invalid row index")
	default:
		h.log().Error("history operation failed", "err", err)
		api.Error(w, http.StatusInternalServerError, "History storage error")
	}
}

// List serves GET /api/user/history?limit=N.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(r)
	if !ok {
		h.fail(w, ErrNoIdentity)
		return
	}
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			api.WriteJSON(w, http.StatusBadRequest, api.Envelope{Error: "limit must be an integer", Field: "limit"})
			return
		}
		limit = n
	}
	entries, err := h.Store.List(r.Context(), id, limit)
	if err != nil {
		h.fail(w, err)
		return
	}
	n := len(entries)
	api.WriteJSON(w, http.StatusOK, api.Envelope{Success: true, Data: entries, Count: &n})
}

// Save serves POST /api/user/history: it calculates the input and appends
// the outcome. Invalid inputs are never stored.
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(r)
	if !ok {
		h.fail(w, ErrNoIdentity)
		return
	}
	var req SaveRequest
	if err := api.Decode(r, &req); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	res, err := bearing.Evaluate(req.Input)
	if err != nil {
		bearing.WriteError(w, h.log(), err)
		return
	}
	row, err := h.Store.Append(r.Context(), id, RecordFromCalculation(req.Input, res, req.Description))
	if err != nil {
		h.fail(w, err)
		return
	}
	api.WriteJSON(w, http.StatusCreated, api.Envelope{
		Success: true,
		Message: "Calculation saved",
		Data:    saved{RowIndex: row, Result: res},
	})
}

// Delete serves DELETE /api/user/history/{row}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(r)
	if !ok {
		h.fail(w, ErrNoIdentity)
		return
	}
	row, err := strconv.Atoi(mux.Vars(r)["row"])
	if err != nil {
		api.WriteJSON(w, http.StatusBadRequest, api.Envelope{Error: "row must be an integer", Field: "row"})
		return
	}
	if err := h.Store.Delete(r.Context(), id, row); err != nil {
		h.fail(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, api.Envelope{Success: true, Message: "Calculation deleted"})
}

// Download serves GET /api/user/history/file as an xlsx attachment.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(r)
	if !ok {
		h.fail(w, ErrNoIdentity)
		return
	}
	path, err := h.Store.Path(id)
	if err != nil {
		h.fail(w, err)
		return
	}
	var buf bytes.Buffer
	if err := h.Store.WriteTo(r.Context(), id, &buf); err != nil {
		h.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filepath.Base(path)))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.log().Warn("history download interrupted", "identity", id, "err", err)
	}
}

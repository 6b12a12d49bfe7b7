package profile

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/arenoe-studio/terzaghi-calculator/internal/api"
	"github.com/arenoe-studio/terzaghi-calculator/internal/auth"
	"github.com/arenoe-studio/terzaghi-calculator/internal/repo"
)

const historyURL = "/api/user/history/file"

// HistoryCounter reports how many calculations an identity has saved.
type HistoryCounter interface {
	Count(ctx context.Context, identity string) (int, error)
}

type ProfileHandler struct {
	Repo    repo.Repository
	History HistoryCounter
	Logger  *slog.Logger
}

type Info struct {
	Authenticated bool   `json:"authenticated"`
	Login         string `json:"login,omitempty"`
	Email         string `json:"email,omitempty"`
	Name          string `json:"name,omitempty"`
	HistoryURL    string `json:"historyUrl,omitempty"`
	HistoryCount  int    `json:"historyCount"`
}

// DisplayName is the local part of an email address, or the whole string
// when it has no @.
func DisplayName(email string) string {
	name, _, _ := strings.Cut(email, "@")
	return name
}

func (h *ProfileHandler) log() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// GetInfo serves GET /api/user/info. Anonymous callers get
// {authenticated:false} rather than an error.
func (h *ProfileHandler) GetInfo(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.UserFromContext(r.Context())
	if !ok {
		api.OK(w, Info{Authenticated: false})
		return
	}

	user, err := h.Repo.GetByID(r.Context(), u.ID)
	if errors.Is(err, repo.ErrNotFound) {
		api.Error(w, http.StatusNotFound, "Profile not found")
		return
	}
	if err != nil {
		h.log().Error("load profile", "id", u.ID, "err", err)
		api.Error(w, http.StatusInternalServerError, "DB error")
		return
	}

	info := Info{
		Authenticated: true,
		Login:         user.Login,
		Email:         user.Email,
		Name:          DisplayName(user.Email),
		HistoryURL:    historyURL,
	}
	if h.History != nil {
		n, err := h.History.Count(r.Context(), u.Login)
		if err != nil {
			h.log().Warn("count history", "login", u.Login, "err", err)
		}
		info.HistoryCount = n
	}
	api.OK(w, info)
}

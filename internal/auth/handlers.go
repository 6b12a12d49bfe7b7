package auth

import (
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/arenoe-studio/terzaghi-calculator/internal/api"
	"github.com/arenoe-studio/terzaghi-calculator/internal/repo"
)

const minPasswordLen = 6

type Loginrequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type Registerrequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

type session struct {
	ID    int    `json:"id"`
	Login string `json:"login"`
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func (env *Authenv) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req Registerrequest
	if err := api.Decode(r, &req); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	req.Login = strings.TrimSpace(req.Login)
	req.Email = strings.TrimSpace(req.Email)
	if req.Login == "" || req.Email == "" || req.Password == "" {
		api.Error(w, http.StatusBadRequest, "Login, email and password required")
		return
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid email address")
		return
	}
	if len(req.Password) < minPasswordLen {
		api.Error(w, http.StatusBadRequest, "Password too short")
		return
	}

	hashedPassword, err := HashPassword(req.Password)
	if err != nil {
		env.log().Error("hash password", "err", err)
		api.Error(w, http.StatusInternalServerError, "Error hashing password")
		return
	}
	id, err := env.Repo.CreateUser(r.Context(), req.Login, req.Email, hashedPassword)
	if err != nil {
		env.log().Warn("create user", "login", req.Login, "err", err)
		api.Error(w, http.StatusConflict, "User already exists or DB error")
		return
	}

	u := User{ID: id, Login: req.Login}
	if err := env.addCookie(w, u); err != nil {
		env.log().Error("issue token", "err", err)
		api.Error(w, http.StatusInternalServerError, "Could not start session")
		return
	}
	env.log().Info("user registered", "login", u.Login, "id", u.ID)
	api.WriteJSON(w, http.StatusCreated, api.Envelope{
		Success: true,
		Message: "Registration successful",
		Data:    session{ID: u.ID, Login: u.Login},
	})
}

func (env *Authenv) AuthHandler(w http.ResponseWriter, r *http.Request) {
	var req Loginrequest
	if err := api.Decode(r, &req); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	req.Login = strings.TrimSpace(req.Login)
	if req.Login == "" || req.Password == "" {
		api.Error(w, http.StatusBadRequest, "Login and password required")
		return
	}

	id, storedHash, err := env.Repo.GetBylogin(r.Context(), req.Login)
	if errors.Is(err, repo.ErrNotFound) {
		api.Error(w, http.StatusUnauthorized, "Invalid login or password")
		return
	}
	if err != nil {
		env.log().Error("lookup user", "login", req.Login, "err", err)
		api.Error(w, http.StatusInternalServerError, "DB error")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(req.Password)); err != nil {
		api.Error(w, http.StatusUnauthorized, "Invalid login or password")
		return
	}

	u := User{ID: id, Login: req.Login}
	if err := env.addCookie(w, u); err != nil {
		env.log().Error("issue token", "err", err)
		api.Error(w, http.StatusInternalServerError, "Could not start session")
		return
	}
	api.WriteJSON(w, http.StatusOK, api.Envelope{
		Success: true,
		Message: "Authentication successful",
		Data:    session{ID: u.ID, Login: u.Login},
	})
}

func (env *Authenv) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	env.clearCookie(w)
	api.WriteJSON(w, http.StatusOK, api.Envelope{Success: true, Message: "Logged out"})
}

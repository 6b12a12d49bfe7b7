package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/arenoe-studio/terzaghi-calculator/internal/api"
	"github.com/arenoe-studio/terzaghi-calculator/internal/repo"
)

const (
	cookieName = "session_token"
	tokenTTL   = 30 * 24 * time.Hour
)

type contextKey string

const userKey contextKey = "user"

// User is the authenticated principal carried in the request context.
type User struct {
	ID    int
	Login string
}

func WithUser(ctx context.Context, u User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

func UserFromContext(ctx context.Context) (User, bool) {
	u, ok := ctx.Value(userKey).(User)
	return u, ok && u.ID != 0 && u.Login != ""
}

type Authenv struct {
	JWTkey []byte
	Repo   repo.Repository
	Logger *slog.Logger
	// Secure marks the session cookie HTTPS-only.
	Secure bool
	Now    func() time.Time
}

func (env *Authenv) log() *slog.Logger {
	if env.Logger != nil {
		return env.Logger
	}
	return slog.Default()
}

func (env *Authenv) now() time.Time {
	if env.Now != nil {
		return env.Now()
	}
	return time.Now()
}

func (env *Authenv) issueToken(u User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": u.ID,
		"login":   u.Login,
		"exp":     env.now().Add(tokenTTL).Unix(),
	})
	return token.SignedString(env.JWTkey)
}

// parseToken verifies the HMAC signature and expiry and extracts the user.
func (env *Authenv) parseToken(tokenString string) (User, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return env.JWTkey, nil
	}, jwt.WithTimeFunc(env.now))
	if err != nil {
		return User{}, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return User{}, jwt.ErrTokenInvalidClaims
	}
	id, ok := claims["user_id"].(float64)
	if !ok || id == 0 {
		return User{}, errors.New("token has no user_id")
	}
	login, ok := claims["login"].(string)
	if !ok || login == "" {
		return User{}, errors.New("token has no login")
	}
	return User{ID: int(id), Login: login}, nil
}

// AuthMiddleware rejects requests without a valid session cookie with a
// JSON 401 and stores the user in the context otherwise.
func (env *Authenv) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(cookieName)
		if err != nil {
			api.Error(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		u, err := env.parseToken(cookie.Value)
		if err != nil {
			env.log().Debug("rejected session token", "err", err)
			api.Error(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
	})
}

// OptionalUser attaches the user when a valid cookie is present and passes
// anonymous requests through unchanged.
func (env *Authenv) OptionalUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie(cookieName); err == nil {
			if u, err := env.parseToken(cookie.Value); err == nil {
				r = r.WithContext(WithUser(r.Context(), u))
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (env *Authenv) addCookie(w http.ResponseWriter, u User) error {
	tokenString, err := env.issueToken(u)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    tokenString,
		Expires:  env.now().Add(tokenTTL),
		Path:     "/",
		HttpOnly: true,
		Secure:   env.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (env *Authenv) clearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		Path:     "/",
		HttpOnly: true,
		Secure:   env.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

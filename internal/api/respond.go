package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

// Envelope is the body of every JSON API response.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Field   string `json:"field,omitempty"`
}

// FieldError is implemented by errors that name an offending input field.
type FieldError interface {
	error
	FieldName() string
}

func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Default().Error("failed to encode response", slog.String("error", err.Error()))
	}
}

func OK(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, Envelope{Success: true, Data: data})
}

func Error(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, Envelope{Success: false, Error: msg})
}

// Invalid writes a 400 naming the field when err carries one.
func Invalid(w http.ResponseWriter, err error) {
	env := Envelope{Success: false, Error: err.Error()}
	var fe FieldError
	if errors.As(err, &fe) {
		env.Field = fe.FieldName()
	}
	WriteJSON(w, http.StatusBadRequest, env)
}

func Decode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

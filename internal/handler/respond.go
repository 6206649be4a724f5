package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"libroteca/internal/service"
)

// jsonError responde {"error": ...} con el código dado.
func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// serviceError traduce los errores centinela del dominio a HTTP.
func serviceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrInvalidGrade),
		errors.Is(err, service.ErrDuplicateRating),
		errors.Is(err, service.ErrEmailTaken):
		jsonError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrBadCredential):
		jsonError(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, service.ErrTokenInvalid),
		errors.Is(err, service.ErrTokenExpired):
		jsonError(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, service.ErrBookNotFound):
		jsonError(w, err.Error(), http.StatusNotFound)
	default:
		jsonError(w, err.Error(), http.StatusInternalServerError)
	}
}

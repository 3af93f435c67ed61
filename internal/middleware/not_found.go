package middleware

import (
	"net/http"

	"github.com/onerilhan/go-point-api/internal/middleware/errors"
)

// NotFoundJSONHandler JSON formatında 404 Not Found döner
func NotFoundJSONHandler(config *errors.ErrorConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, r, errors.NewValidationError(http.StatusNotFound, "path",
			"Endpoint bulunamadı. Desteklenen endpoint'ler /point/{id} altındadır.", r.URL.Path), config)
	}
}

// MethodNotAllowedJSONHandler JSON formatında 405 Method Not Allowed döner
func MethodNotAllowedJSONHandler(config *errors.ErrorConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, r, errors.NewValidationError(http.StatusMethodNotAllowed, "method",
			"HTTP metodu bu endpoint için desteklenmiyor.", r.Method), config)
	}
}

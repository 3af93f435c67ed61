package middleware

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/onerilhan/go-point-api/internal/middleware/errors"
	"github.com/onerilhan/go-point-api/internal/utils"
)

// ErrorHandlingMiddleware panic recovery yapar ve panic'i ErrorResponse'a çevirir.
// Auth ve RBAC middleware'leri APIError ile panic atar, status korunur.
func ErrorHandlingMiddleware(config *errors.ErrorConfig) func(http.Handler) http.Handler {
	if config == nil {
		config = errors.DefaultErrorConfig()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			wrapped := &headerTrackingWriter{ResponseWriter: w}

			defer func() {
				if recovered := recover(); recovered != nil {
					recoverPanic(wrapped, r, recovered, config)
				}
			}()

			next.ServeHTTP(wrapped, r)
		})
	}
}

// WriteError handler'ların döndürdüğü hatayı ErrorResponse olarak yazar.
// APIError status'u kullanılır, diğer tüm hatalar 500 olur.
// 500 cevaplarında iç hata mesajı client'a gönderilmez.
func WriteError(w http.ResponseWriter, r *http.Request, err error, config *errors.ErrorConfig) {
	if config == nil {
		config = errors.DefaultErrorConfig()
	}

	statusCode := http.StatusInternalServerError
	var apiErr errors.APIError
	if stderrors.As(err, &apiErr) {
		statusCode = apiErr.Status()
		logAPIError(apiErr, r)
	}

	sendErrorResponse(w, r, statusCode, clientMessage(statusCode, err, config), config, "", err)
}

// recoverPanic yakalanan panic için cevap üretir
func recoverPanic(w *headerTrackingWriter, r *http.Request, recovered interface{}, config *errors.ErrorConfig) {
	statusCode := http.StatusInternalServerError
	var message, stack string
	var cause error

	switch err := recovered.(type) {
	case errors.APIError:
		statusCode = err.Status()
		message = clientMessage(statusCode, err, config)
		cause = err
		logAPIError(err, r)

	default:
		panicInfo := &errors.PanicInfo{
			Value:     recovered,
			Stack:     string(debug.Stack()),
			RequestID: w.Header().Get("X-Request-ID"),
			Method:    r.Method,
			Path:      r.URL.Path,
			ClientIP:  utils.GetClientIP(r),
			Timestamp: time.Now(),
		}
		logPanic(panicInfo, config)

		message = getErrorMessage(statusCode, config)
		stack = panicInfo.Stack
		if e, ok := recovered.(error); ok {
			cause = e
		} else {
			cause = fmt.Errorf("panic: %v", recovered)
		}
	}

	// Handler cevabı yazmaya başladıysa ikinci bir status yazılamaz
	if w.wroteHeader {
		log.Error().
			Str("request_id", w.Header().Get("X-Request-ID")).
			Str("path", r.URL.Path).
			Msg("Panic response yazılamadı, cevap zaten başlamıştı")
		return
	}

	sendErrorResponse(w, r, statusCode, message, config, stack, cause)
}

// clientMessage client'a gösterilecek mesajı seçer
func clientMessage(statusCode int, err error, config *errors.ErrorConfig) string {
	if statusCode >= http.StatusInternalServerError || err == nil {
		return getErrorMessage(statusCode, config)
	}
	return err.Error()
}

// headerTrackingWriter header'ın yazılıp yazılmadığını takip eder
type headerTrackingWriter struct {
	http.ResponseWriter
	wroteHeader bool
}

func (w *headerTrackingWriter) WriteHeader(code int) {
	if w.wroteHeader {
		return
	}
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(code)
}

func (w *headerTrackingWriter) Write(b []byte) (int, error) {
	w.wroteHeader = true
	return w.ResponseWriter.Write(b)
}

// sendErrorResponse standardized error response gönderir
func sendErrorResponse(w http.ResponseWriter, r *http.Request, statusCode int, message string, config *errors.ErrorConfig, stack string, cause error) {
	response := errors.ErrorResponse{
		Success:   false,
		Error:     truncateString(message, config.MaxErrorLength),
		Code:      statusCode,
		Timestamp: time.Now().Format(time.RFC3339),
		RequestID: w.Header().Get("X-Request-ID"),
		Details: map[string]interface{}{
			"method": r.Method,
			"path":   r.URL.Path,
		},
	}

	// Stack ve iç hata sadece development'ta
	if config.ShowStackTrace {
		response.Stack = stack
		if cause != nil && statusCode >= http.StatusInternalServerError {
			response.Details["cause"] = cause.Error()
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Error().
			Err(err).
			Str("request_id", response.RequestID).
			Int("status_code", statusCode).
			Msg("Error response JSON encoding failed")
		return
	}

	logError(r, statusCode, message, response.RequestID, cause)
}

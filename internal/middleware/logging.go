package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/onerilhan/go-point-api/internal/utils"
)

// RequestIDContextKey context'teki request ID anahtarı
const RequestIDContextKey ContextKey = "request_id"

// statusRecorder status code ve response boyutunu yakalar
type statusRecorder struct {
	http.ResponseWriter
	statusCode   int
	responseSize int64
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *statusRecorder) Write(b []byte) (int, error) {
	size, err := rw.ResponseWriter.Write(b)
	rw.responseSize += int64(size)
	return size, err
}

// LoggingConfig logging middleware ayarları
type LoggingConfig struct {
	SkipPaths []string // Log'lanmayacak path'ler, sonda * prefix eşleşmesi demek
}

// DefaultLoggingConfig varsayılan logging ayarları
func DefaultLoggingConfig() *LoggingConfig {
	return &LoggingConfig{
		SkipPaths: []string{
			"/health",
			"/metrics",
			"/favicon.ico",
		},
	}
}

// RequestIDFromContext request ID'yi context'ten okur
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDContextKey).(string)
	return id
}

// RequestLoggingMiddleware her isteğe X-Request-ID atar ve isteği loglar.
// Gelen X-Request-ID header'ı varsa o kullanılır.
func RequestLoggingMiddleware(config *LoggingConfig) func(http.Handler) http.Handler {
	if config == nil {
		config = DefaultLoggingConfig()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = uuid.New().String()
			}
			w.Header().Set("X-Request-ID", requestID)
			r = r.WithContext(context.WithValue(r.Context(), RequestIDContextKey, requestID))

			if shouldSkipLogging(r.URL.Path, config.SkipPaths) {
				next.ServeHTTP(w, r)
				return
			}

			startTime := time.Now()
			wrapped := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

			reqLogger := log.With().
				Str("request_id", requestID).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("client_ip", utils.GetClientIP(r)).
				Logger()

			reqLogger.Debug().
				Str("user_agent", r.Header.Get("User-Agent")).
				Int64("request_size", r.ContentLength).
				Msg("Request started")

			next.ServeHTTP(wrapped, r)

			duration := time.Since(startTime)

			var event *zerolog.Event
			switch {
			case wrapped.statusCode >= 500:
				event = reqLogger.Error()
			case wrapped.statusCode >= 400:
				event = reqLogger.Warn()
			default:
				event = reqLogger.Info()
			}

			event.
				Int("status_code", wrapped.statusCode).
				Int64("response_size", wrapped.responseSize).
				Dur("duration", duration).
				Msg("Request completed")
		})
	}
}

// shouldSkipLogging path'in log'lanmaması gerekip gerekmediğini kontrol eder
func shouldSkipLogging(path string, skipPaths []string) bool {
	for _, skipPath := range skipPaths {
		if path == skipPath {
			return true
		}
		if prefix, ok := strings.CutSuffix(skipPath, "*"); ok && strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

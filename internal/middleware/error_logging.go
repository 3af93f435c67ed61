package middleware

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/onerilhan/go-point-api/internal/apperrors"
	"github.com/onerilhan/go-point-api/internal/middleware/errors"
	"github.com/onerilhan/go-point-api/internal/utils"
)

// logAPIError API error'ları kategorisine göre loglar
func logAPIError(err errors.APIError, r *http.Request) {
	logEvent := log.Warn()
	if err.Status() >= http.StatusInternalServerError {
		logEvent = log.Error()
	}

	logEvent = logEvent.
		Str("error_type", fmt.Sprintf("%T", err)).
		Str("error_message", err.Error()).
		Int("status_code", err.Status()).
		Str("path", r.URL.Path).
		Str("method", r.Method).
		Str("client_ip", utils.GetClientIP(r))

	switch e := err.(type) {
	case *errors.AuthError:
		logEvent.Str("category", "authentication").
			Msg("Authentication failed")

	case *errors.RBACError:
		logEvent.Str("category", "authorization").
			Int64("token_user_id", e.TokenUserID).
			Str("target_id", e.TargetID).
			Msg("Authorization failed")

	case *errors.ValidationError:
		logEvent.Str("category", "validation").
			Str("field", e.Field).
			Interface("value", e.Value).
			Msg("Validation failed")

	case *errors.RateLimitError:
		logEvent.Str("category", "rate_limit").
			Int("retry_after", e.RetryAfter).
			Msg("Rate limit exceeded")

	case *apperrors.Error:
		logEvent.Str("category", "point").
			Str("kind", e.Kind.String()).
			Msg("Point işlemi reddedildi")

	default:
		logEvent.Str("category", "api_error").
			Msg("API error occurred")
	}
}

// logPanic panic durumunu detaylı şekilde loglar
func logPanic(panicInfo *errors.PanicInfo, config *errors.ErrorConfig) {
	logEvent := log.Error().
		Str("type", "panic").
		Str("request_id", panicInfo.RequestID).
		Str("method", panicInfo.Method).
		Str("path", panicInfo.Path).
		Str("client_ip", panicInfo.ClientIP).
		Time("timestamp", panicInfo.Timestamp).
		Interface("panic_value", panicInfo.Value)

	if config.EnablePanicLogs {
		logEvent.Str("stack_trace", panicInfo.Stack)
	}

	logEvent.Msg("Server panic occurred")
}

// logError gönderilen error response'u status'a göre loglar
func logError(r *http.Request, statusCode int, message string, requestID string, cause error) {
	logEvent := log.With().
		Str("request_id", requestID).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Str("client_ip", utils.GetClientIP(r)).
		Int("status_code", statusCode).
		Str("error", message).
		Logger()

	switch {
	case statusCode >= 500:
		logEvent.Error().AnErr("cause", cause).Msg("Server error occurred")
	default:
		logEvent.Warn().Msg("Client error occurred")
	}
}

package errors

import "net/http"

// APIError HTTP status taşıyan hata tipleri.
// apperrors.Error da bu interface'i sağlar.
type APIError interface {
	error
	Status() int
}

// AuthError kimlik doğrulama hatası (401)
type AuthError struct {
	Message    string
	StatusCode int
}

// NewAuthError 401 AuthError oluşturur
func NewAuthError(message string) *AuthError {
	return &AuthError{Message: message, StatusCode: http.StatusUnauthorized}
}

func (e *AuthError) Error() string { return e.Message }

func (e *AuthError) Status() int { return e.StatusCode }

// RBACError başka kullanıcının puanına erişim denemesi (403)
type RBACError struct {
	Message     string
	StatusCode  int
	TokenUserID int64
	TargetID    string
}

// NewRBACError 403 RBACError oluşturur
func NewRBACError(tokenUserID int64, targetID string) *RBACError {
	return &RBACError{
		Message:     "Bu kullanıcının puanı üzerinde işlem yetkiniz yok",
		StatusCode:  http.StatusForbidden,
		TokenUserID: tokenUserID,
		TargetID:    targetID,
	}
}

func (e *RBACError) Error() string { return e.Message }

func (e *RBACError) Status() int { return e.StatusCode }

// ValidationError request seviyesindeki doğrulama hatası (400, 413, 415)
type ValidationError struct {
	Message    string
	StatusCode int
	Field      string
	Value      interface{}
}

// NewValidationError verilen status ile ValidationError oluşturur
func NewValidationError(statusCode int, field, message string, value interface{}) *ValidationError {
	return &ValidationError{Message: message, StatusCode: statusCode, Field: field, Value: value}
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Status() int { return e.StatusCode }

// RateLimitError istek limiti aşıldı (429)
type RateLimitError struct {
	Message    string
	RetryAfter int // saniye
}

func (e *RateLimitError) Error() string { return e.Message }

func (e *RateLimitError) Status() int { return http.StatusTooManyRequests }

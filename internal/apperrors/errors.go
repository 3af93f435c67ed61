// Package apperrors servis katmanının hata sınıflandırmasını tanımlar.
// Transport katmanı yalnızca Kind'a bakarak 400 ile 500'ü ayırır.
package apperrors

import (
	"errors"
	"net/http"
)

// Kind hatanın sınıfı
type Kind int

const (
	// KindInternal beklenmeyen, çağıranın düzeltemeyeceği hata
	KindInternal Kind = iota
	// KindInvalidArgument geçersiz girdi veya iş kuralı ihlali
	KindInvalidArgument
)

// String log alanları için okunabilir isim döner
func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "invalid_argument"
	default:
		return "internal"
	}
}

// Error sınıfı ve mesajı olan uygulama hatası
type Error struct {
	Kind    Kind
	Message string
	Err     error // sarmalanan alt hata (opsiyonel)
}

// Error error interface implementation'ı
func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap errors.Is / errors.As zinciri için
func (e *Error) Unwrap() error {
	return e.Err
}

// Status middleware/errors.APIError ile uyumlu HTTP status döner
func (e *Error) Status() int {
	if e.Kind == KindInvalidArgument {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// InvalidArgument yeni bir girdi hatası oluşturur
func InvalidArgument(message string) *Error {
	return &Error{Kind: KindInvalidArgument, Message: message}
}

// Internal alt hatayı beklenmeyen hata olarak sarmalar
func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// KindOf zincirdeki ilk *Error'un sınıfını döner, yoksa KindInternal
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsInvalidArgument hata zincirinde girdi hatası var mı
func IsInvalidArgument(err error) bool {
	return err != nil && KindOf(err) == KindInvalidArgument
}

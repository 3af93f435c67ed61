package repository

import (
	"errors"

	"github.com/lib/pq"
)

// ErrNegativeBalance güncelleme bakiyeyi sıfırın altına düşürecekse döner
var ErrNegativeBalance = errors.New("bakiye negatif olamaz")

// PostgreSQL check_violation kodu
const pqCheckViolation = "23514"

// isCheckViolation pq hatası CHECK constraint ihlali mi
func isCheckViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pqCheckViolation
	}
	return false
}

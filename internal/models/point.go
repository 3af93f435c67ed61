package models

import "time"

// TransactionType puan hareketinin yönünü belirtir
type TransactionType string

const (
	TransactionTypeCharge TransactionType = "CHARGE"
	TransactionTypeUse    TransactionType = "USE"
)

// IsValid bilinen bir hareket tipi mi kontrol eder
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeCharge || t == TransactionTypeUse
}

// UserPoint kullanıcının güncel puan bakiyesini temsil eder
type UserPoint struct {
	ID        int64     `json:"id" db:"id"`
	Point     int64     `json:"point" db:"point"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// PointHistory bakiye değiştiren her işlemin değişmez kaydı
type PointHistory struct {
	ID        int64           `json:"id" db:"id"`
	UserID    int64           `json:"user_id" db:"user_id"`
	Amount    int64           `json:"amount" db:"amount"` // her zaman pozitif, yönü Type belirler
	Type      TransactionType `json:"type" db:"type"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}

// PointAmountRequest charge/use istek gövdesi; Amount nil ise alan gönderilmemiştir
type PointAmountRequest struct {
	Amount *int64 `json:"amount"`
}

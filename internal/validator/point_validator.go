package validator

import (
	"fmt"

	"github.com/onerilhan/go-point-api/internal/apperrors"
	"github.com/onerilhan/go-point-api/internal/interfaces"
)

// DefaultMaxAmount tek işlemde yüklenebilecek/harcanabilecek varsayılan üst sınır
const DefaultMaxAmount int64 = 10_000_000

// PointValidator charge/use tutarlarını kontrol eder
type PointValidator struct {
	userPointRepo interfaces.UserPointRepositoryInterface
	maxAmount     int64 // 0 ise üst sınır kapalı
}

var _ interfaces.PointValidatorInterface = (*PointValidator)(nil)

// NewPointValidator yeni validator oluşturur; maxAmount <= 0 üst sınırı kapatır
func NewPointValidator(userPointRepo interfaces.UserPointRepositoryInterface, maxAmount int64) *PointValidator {
	if maxAmount < 0 {
		maxAmount = 0
	}
	return &PointValidator{
		userPointRepo: userPointRepo,
		maxAmount:     maxAmount,
	}
}

// MaxAmount aktif üst sınırı döner
func (v *PointValidator) MaxAmount() int64 {
	return v.maxAmount
}

// ValidateChargeAmount yükleme tutarını kontrol eder
func (v *PointValidator) ValidateChargeAmount(amount int64) error {
	if amount <= 0 {
		return apperrors.InvalidArgument("yükleme tutarı sıfırdan büyük olmalıdır")
	}
	if v.exceedsCeiling(amount) {
		return apperrors.InvalidArgument(fmt.Sprintf("yükleme tutarı %d puanı aşamaz", v.maxAmount))
	}
	return nil
}

// ValidateUseAmount harcama tutarını ve mevcut bakiyeyi kontrol eder.
// Bakiye kullanıcı kilidi alındıktan sonra okunmalı.
func (v *PointValidator) ValidateUseAmount(userID, amount int64) error {
	if amount <= 0 {
		return apperrors.InvalidArgument("kullanım tutarı sıfırdan büyük olmalıdır")
	}
	if v.exceedsCeiling(amount) {
		return apperrors.InvalidArgument(fmt.Sprintf("kullanım tutarı %d puanı aşamaz", v.maxAmount))
	}

	current, err := v.userPointRepo.SelectByID(userID)
	if err != nil {
		return apperrors.Internal("bakiye sorgulanamadı", err)
	}
	if current == nil || current.Point < amount {
		return apperrors.InvalidArgument("yetersiz puan")
	}

	return nil
}

func (v *PointValidator) exceedsCeiling(amount int64) bool {
	return v.maxAmount > 0 && amount > v.maxAmount
}

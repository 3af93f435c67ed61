package validator

import (
	"github.com/onerilhan/go-point-api/internal/apperrors"
	"github.com/onerilhan/go-point-api/internal/interfaces"
)

// UserValidator kullanıcı kimliğini ve varlığını kontrol eder
type UserValidator struct {
	userPointRepo interfaces.UserPointRepositoryInterface
}

var _ interfaces.UserValidatorInterface = (*UserValidator)(nil)

// NewUserValidator yeni validator oluşturur
func NewUserValidator(userPointRepo interfaces.UserPointRepositoryInterface) *UserValidator {
	return &UserValidator{userPointRepo: userPointRepo}
}

// ValidateUser ID pozitif mi ve bakiye kaydı var mı kontrol eder
func (v *UserValidator) ValidateUser(userID int64) error {
	if userID <= 0 {
		return apperrors.InvalidArgument("geçersiz kullanıcı ID")
	}

	point, err := v.userPointRepo.SelectByID(userID)
	if err != nil {
		return apperrors.Internal("kullanıcı sorgulanamadı", err)
	}
	if point == nil {
		return apperrors.InvalidArgument("kullanıcı bulunamadı")
	}

	return nil
}

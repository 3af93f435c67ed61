// internal/interfaces/service.go
package interfaces

import "github.com/onerilhan/go-point-api/internal/models"

// PointServiceInterface puan business logic için interface
type PointServiceInterface interface {
	// GetUserPoint kullanıcının güncel bakiyesini getirir
	GetUserPoint(userID int64) (*models.UserPoint, error)

	// GetPointHistories kullanıcının puan geçmişini eskiden yeniye getirir
	GetPointHistories(userID int64) ([]*models.PointHistory, error)

	// ChargeUserPoint kullanıcıya puan yükler
	ChargeUserPoint(userID, amount int64) (*models.UserPoint, error)

	// UseUserPoint kullanıcının puanını harcar
	UseUserPoint(userID, amount int64) (*models.UserPoint, error)

	// RegisterUser sıfır bakiyeli kullanıcı kaydı açar; kayıt varsa created false döner
	RegisterUser(userID int64) (point *models.UserPoint, created bool, err error)
}

// UserValidatorInterface kullanıcı doğrulama kuralları
type UserValidatorInterface interface {
	ValidateUser(userID int64) error
}

// PointValidatorInterface tutar doğrulama kuralları
type PointValidatorInterface interface {
	ValidateChargeAmount(amount int64) error
	ValidateUseAmount(userID, amount int64) error
}

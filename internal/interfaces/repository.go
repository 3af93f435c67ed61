// internal/interfaces/repository.go
package interfaces

import (
	"time"

	"github.com/onerilhan/go-point-api/internal/models"
)

// UserPointRepositoryInterface kullanıcı bakiye deposu için interface
type UserPointRepositoryInterface interface {
	// SelectByID kullanıcının bakiyesini getirir, kayıt yoksa (nil, nil) döner
	SelectByID(userID int64) (*models.UserPoint, error)

	// InsertOrUpdate bakiyeye delta ekler, kayıt yoksa sıfırdan oluşturur
	// ve güncellenmiş kaydı döner
	InsertOrUpdate(userID int64, delta int64) (*models.UserPoint, error)
}

// PointHistoryRepositoryInterface puan geçmişi deposu için interface
type PointHistoryRepositoryInterface interface {
	// Insert yeni geçmiş kaydı ekler
	Insert(userID int64, amount int64, txType models.TransactionType, at time.Time) (*models.PointHistory, error)

	// SelectAllByUserID kullanıcının tüm kayıtlarını eklenme sırasıyla getirir
	SelectAllByUserID(userID int64) ([]*models.PointHistory, error)
}

package repository

import (
	"fmt"
	"sync"
	"time"

	"github.com/onerilhan/go-point-api/internal/interfaces"
	"github.com/onerilhan/go-point-api/internal/models"
)

// UserPointRepository bakiyeleri bellekte tutar
type UserPointRepository struct {
	table map[int64]*models.UserPoint
	mutex sync.RWMutex // her çağrı tek başına atomik
	now   func() time.Time
}

var _ interfaces.UserPointRepositoryInterface = (*UserPointRepository)(nil)

// NewUserPointRepository boş bir bellek içi depo oluşturur
func NewUserPointRepository() *UserPointRepository {
	return &UserPointRepository{
		table: make(map[int64]*models.UserPoint),
		now:   time.Now,
	}
}

// SelectByID kullanıcının bakiyesini getirir
func (r *UserPointRepository) SelectByID(userID int64) (*models.UserPoint, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	point, exists := r.table[userID]
	if !exists {
		return nil, nil
	}

	// Çağıranın iç state'i değiştirmemesi için kopya dön
	result := *point
	return &result, nil
}

// InsertOrUpdate bakiyeye delta ekler
func (r *UserPointRepository) InsertOrUpdate(userID int64, delta int64) (*models.UserPoint, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	point, exists := r.table[userID]
	if !exists {
		point = &models.UserPoint{ID: userID}
	}

	newPoint := point.Point + delta
	if newPoint < 0 {
		return nil, fmt.Errorf("kullanıcı %d: %w", userID, ErrNegativeBalance)
	}

	point.Point = newPoint
	point.UpdatedAt = r.now()
	r.table[userID] = point

	result := *point
	return &result, nil
}

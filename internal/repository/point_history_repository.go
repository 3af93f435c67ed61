package repository

import (
	"fmt"
	"sync"
	"time"

	"github.com/onerilhan/go-point-api/internal/interfaces"
	"github.com/onerilhan/go-point-api/internal/models"
)

// PointHistoryRepository puan geçmişini bellekte, sadece ekleme ile tutar
type PointHistoryRepository struct {
	byUser map[int64][]*models.PointHistory
	nextID int64
	mutex  sync.RWMutex
}

var _ interfaces.PointHistoryRepositoryInterface = (*PointHistoryRepository)(nil)

// NewPointHistoryRepository boş bir bellek içi geçmiş deposu oluşturur
func NewPointHistoryRepository() *PointHistoryRepository {
	return &PointHistoryRepository{
		byUser: make(map[int64][]*models.PointHistory),
		nextID: 1,
	}
}

// Insert yeni geçmiş kaydı ekler
func (r *PointHistoryRepository) Insert(userID int64, amount int64, txType models.TransactionType, at time.Time) (*models.PointHistory, error) {
	if !txType.IsValid() {
		return nil, fmt.Errorf("geçersiz işlem tipi: %s", txType)
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	history := &models.PointHistory{
		ID:        r.nextID,
		UserID:    userID,
		Amount:    amount,
		Type:      txType,
		CreatedAt: at,
	}
	r.nextID++
	r.byUser[userID] = append(r.byUser[userID], history)

	result := *history
	return &result, nil
}

// SelectAllByUserID kullanıcının kayıtlarını eklenme sırasıyla döner
func (r *PointHistoryRepository) SelectAllByUserID(userID int64) ([]*models.PointHistory, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	records := r.byUser[userID]
	histories := make([]*models.PointHistory, 0, len(records))
	for _, h := range records {
		copied := *h
		histories = append(histories, &copied)
	}

	return histories, nil
}

package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/onerilhan/go-point-api/internal/interfaces"
	"github.com/onerilhan/go-point-api/internal/models"
)

// PgPointHistoryRepository puan geçmişini PostgreSQL'de tutar
type PgPointHistoryRepository struct {
	db *sql.DB
}

var _ interfaces.PointHistoryRepositoryInterface = (*PgPointHistoryRepository)(nil)

// NewPgPointHistoryRepository yeni repository oluşturur
func NewPgPointHistoryRepository(database *sql.DB) *PgPointHistoryRepository {
	return &PgPointHistoryRepository{db: database}
}

// Insert yeni geçmiş kaydı ekler
func (r *PgPointHistoryRepository) Insert(userID int64, amount int64, txType models.TransactionType, at time.Time) (*models.PointHistory, error) {
	if !txType.IsValid() {
		return nil, fmt.Errorf("geçersiz işlem tipi: %s", txType)
	}

	query := `
		INSERT INTO point_histories (user_id, amount, type, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	history := &models.PointHistory{
		UserID:    userID,
		Amount:    amount,
		Type:      txType,
		CreatedAt: at,
	}

	err := r.db.QueryRow(query, userID, amount, string(txType), at).Scan(&history.ID)
	if err != nil {
		return nil, fmt.Errorf("puan geçmişi eklenemedi: %w", err)
	}

	return history, nil
}

// SelectAllByUserID kullanıcının kayıtlarını eklenme sırasıyla getirir
func (r *PgPointHistoryRepository) SelectAllByUserID(userID int64) ([]*models.PointHistory, error) {
	query := `
		SELECT id, user_id, amount, type, created_at
		FROM point_histories
		WHERE user_id = $1
		ORDER BY id ASC
	`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("puan geçmişi sorgusu hatası: %w", err)
	}
	defer rows.Close()

	histories := make([]*models.PointHistory, 0)
	for rows.Next() {
		var h models.PointHistory
		err := rows.Scan(
			&h.ID,
			&h.UserID,
			&h.Amount,
			&h.Type,
			&h.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("puan geçmişi scan hatası: %w", err)
		}
		histories = append(histories, &h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("puan geçmişi okuma hatası: %w", err)
	}

	return histories, nil
}

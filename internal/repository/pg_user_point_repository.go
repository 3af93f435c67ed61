package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/onerilhan/go-point-api/internal/db"
	"github.com/onerilhan/go-point-api/internal/interfaces"
	"github.com/onerilhan/go-point-api/internal/models"
)

// PgUserPointRepository bakiyeleri PostgreSQL'de tutar
type PgUserPointRepository struct {
	db *sql.DB
}

var _ interfaces.UserPointRepositoryInterface = (*PgUserPointRepository)(nil)

// NewPgUserPointRepository yeni repository oluşturur
func NewPgUserPointRepository(database *sql.DB) *PgUserPointRepository {
	return &PgUserPointRepository{db: database}
}

// SelectByID kullanıcının bakiyesini getirir
func (r *PgUserPointRepository) SelectByID(userID int64) (*models.UserPoint, error) {
	query := `
		SELECT id, point, updated_at
		FROM user_points
		WHERE id = $1
	`

	var point models.UserPoint
	err := r.db.QueryRow(query, userID).Scan(
		&point.ID,
		&point.Point,
		&point.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("bakiye arama hatası: %w", err)
	}

	return &point, nil
}

// InsertOrUpdate bakiyeye delta ekler, kayıt yoksa oluşturur.
// Tek upsert ifadesi satırı kilitlediği için okuma-yazma arası başka yazma giremez.
func (r *PgUserPointRepository) InsertOrUpdate(userID int64, delta int64) (*models.UserPoint, error) {
	query := `
		INSERT INTO user_points (id, point, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (id) DO UPDATE
		SET point = user_points.point + EXCLUDED.point,
		    updated_at = NOW()
		RETURNING id, point, updated_at
	`

	var point models.UserPoint
	err := db.WithTransaction(r.db, func(tx *sql.Tx) error {
		return tx.QueryRow(query, userID, delta).Scan(
			&point.ID,
			&point.Point,
			&point.UpdatedAt,
		)
	})

	if err != nil {
		if isCheckViolation(err) {
			return nil, fmt.Errorf("kullanıcı %d: %w", userID, ErrNegativeBalance)
		}
		return nil, fmt.Errorf("bakiye güncellenemedi: %w", err)
	}

	return &point, nil
}

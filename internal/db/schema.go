package db

import (
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"
)

// schemaStatements idempotent tablo tanımları
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS user_points (
		id         BIGINT PRIMARY KEY,
		point      BIGINT NOT NULL DEFAULT 0 CHECK (point >= 0),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS point_histories (
		id         BIGSERIAL PRIMARY KEY,
		user_id    BIGINT NOT NULL,
		amount     BIGINT NOT NULL CHECK (amount >= 0),
		type       VARCHAR(16) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_point_histories_user_id ON point_histories (user_id, id)`,
}

// EnsureSchema gerekli tabloları yoksa oluşturur
func EnsureSchema(database *sql.DB) error {
	err := WithTransaction(database, func(tx *sql.Tx) error {
		for _, stmt := range schemaStatements {
			if _, err := tx.Exec(stmt); err != nil {
				return fmt.Errorf("şema oluşturulamadı: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Info().Int("statements", len(schemaStatements)).Msg("🗄️  Veritabanı şeması hazır")
	return nil
}

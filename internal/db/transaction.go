package db

import (
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"
)

// TxFunc transaction içinde çalışacak fonksiyon
type TxFunc func(tx *sql.Tx) error

// WithTransaction fn'i tek transaction içinde çalıştırır.
// fn hata dönerse veya panic olursa rollback, aksi halde commit yapılır.
func WithTransaction(database *sql.DB, fn TxFunc) error {
	tx, err := database.Begin()
	if err != nil {
		return fmt.Errorf("transaction başlatılamadı: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				log.Error().Err(rollbackErr).Msg("Rollback hatası (panic)")
			}
			log.Error().Interface("panic", r).Msg("Transaction panic ile rollback yapıldı")
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			log.Error().Err(rollbackErr).Msg("Rollback hatası")
			return fmt.Errorf("transaction hatası: %w (rollback: %v)", err, rollbackErr)
		}
		log.Debug().Err(err).Msg("Transaction rollback yapıldı")
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("transaction commit hatası: %w", err)
	}

	return nil
}

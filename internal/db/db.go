package db

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/rs/zerolog/log"
)

// PoolConfig bağlantı havuzu ayarları
type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DefaultPoolConfig varsayılan havuz ayarları
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		MaxOpenConns:    20,
		MaxIdleConns:    5,
		ConnMaxLifetime: 30 * time.Minute,
	}
}

// Connect veritabanına bağlantı açar
func Connect(dsn string, pool PoolConfig) (*sql.DB, error) {
	database, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("veritabanı açılırken hata: %w", err)
	}

	database.SetMaxOpenConns(pool.MaxOpenConns)
	database.SetMaxIdleConns(pool.MaxIdleConns)
	database.SetConnMaxLifetime(pool.ConnMaxLifetime)

	// Bağlantıyı test et
	if err := database.Ping(); err != nil {
		database.Close()
		return nil, fmt.Errorf("veritabanına ping atılamadı: %w", err)
	}

	log.Info().
		Int("max_open_conns", pool.MaxOpenConns).
		Int("max_idle_conns", pool.MaxIdleConns).
		Msg("✅ PostgreSQL veritabanına başarıyla bağlandı")
	return database, nil
}

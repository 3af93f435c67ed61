package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// Config ortam yapılandırmalarını tutar
type Config struct {
	AppEnv   string
	Port     string
	LogLevel string

	StorageDriver string // "memory" veya "postgres"
	DBHost        string
	DBPort        string
	DBUser        string
	DBPass        string
	DBName        string

	PointMaxAmount int64      // tek işlem üst sınırı, 0 kapalı
	SeedUsers      []SeedUser // açılışta oluşturulacak kullanıcılar

	JWTSecret      string // boşsa auth kapalı
	RateLimitRPM   int
	RateLimitBurst int
}

// SeedUser açılışta oluşturulacak kullanıcı ve başlangıç bakiyesi
type SeedUser struct {
	UserID int64
	Point  int64
}

// yardımcı fonksiyon: ortam değişkeni yoksa default değeri döner
func getEnv(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

// getEnvInt64 sayısal ortam değişkenini okur, parse edilemezse default döner
func getEnvInt64(key string, defaultVal int64) int64 {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultVal
	}
	val, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		log.Warn().Str("key", key).Str("value", raw).Msg("Geçersiz sayısal config, varsayılan kullanılıyor")
		return defaultVal
	}
	return val
}

// LoadConfig tüm yapılandırmayı yükler
func LoadConfig() *Config {
	seeds, err := ParseSeedUsers(getEnv("SEED_USERS", ""))
	if err != nil {
		log.Warn().Err(err).Msg("SEED_USERS okunamadı, seed atlanıyor")
		seeds = nil
	}

	return &Config{
		AppEnv:   getEnv("APP_ENV", "development"),
		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		StorageDriver: strings.ToLower(getEnv("STORAGE_DRIVER", "memory")),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "point"),
		DBPass:        getEnv("DB_PASS", "password"),
		DBName:        getEnv("DB_NAME", "pointdb"),

		PointMaxAmount: getEnvInt64("POINT_MAX_AMOUNT", 10_000_000),
		SeedUsers:      seeds,

		JWTSecret:      getEnv("JWT_SECRET", ""),
		RateLimitRPM:   int(getEnvInt64("RATE_LIMIT_RPM", 120)),
		RateLimitBurst: int(getEnvInt64("RATE_LIMIT_BURST", 20)),
	}
}

// GetDSN veritabanı bağlantı URL'sini döner
func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPass, c.DBHost, c.DBPort, c.DBName,
	)
}

// UsePostgres PostgreSQL depolaması seçili mi
func (c *Config) UsePostgres() bool {
	return c.StorageDriver == "postgres"
}

// ParseSeedUsers "1:1000,2:0" formatını çözer; bakiye verilmezse 0 kabul edilir
func ParseSeedUsers(raw string) ([]SeedUser, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	var seeds []SeedUser
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		idStr, pointStr, hasPoint := strings.Cut(part, ":")
		userID, err := strconv.ParseInt(strings.TrimSpace(idStr), 10, 64)
		if err != nil || userID <= 0 {
			return nil, fmt.Errorf("geçersiz seed kullanıcı ID: %q", idStr)
		}

		var point int64
		if hasPoint {
			point, err = strconv.ParseInt(strings.TrimSpace(pointStr), 10, 64)
			if err != nil || point < 0 {
				return nil, fmt.Errorf("geçersiz seed bakiyesi: %q", pointStr)
			}
		}

		seeds = append(seeds, SeedUser{UserID: userID, Point: point})
	}

	return seeds, nil
}

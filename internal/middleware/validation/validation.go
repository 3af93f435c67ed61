// Package validation puan değiştiren isteklerin body'sini handler'a
// ulaşmadan önce doğrular.
package validation

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/onerilhan/go-point-api/internal/utils"
)

// Config validation middleware ayarları
type Config struct {
	MaxBodySize         int64    // Maximum request body size (bytes)
	ContentTypes        []string // Allowed content types
	JSONValidation      bool     // JSON body parse edilebilir olmalı
	RequireNonEmptyBody bool
}

// DefaultConfig /charge ve /use için ayarlar: body `{"amount":n}` ya da çıplak sayı
func DefaultConfig() *Config {
	return &Config{
		MaxBodySize: 1024,
		ContentTypes: []string{
			"application/json",
			"text/plain",
		},
		JSONValidation:      true,
		RequireNonEmptyBody: true,
	}
}

// Middleware body validation middleware'i; hatada ValidationError ile panic atar
func Middleware(config *Config) func(http.Handler) http.Handler {
	if config == nil {
		config = DefaultConfig()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := ValidateContent(r, config); err != nil {
				log.Debug().
					Str("client_ip", utils.GetClientIP(r)).
					Str("path", r.URL.Path).
					Err(err).
					Msg("Request body validation failed")
				panic(err)
			}

			next.ServeHTTP(w, r)
		})
	}
}

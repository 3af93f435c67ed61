package middleware

import (
	"fmt"
	"net/http"
	"unicode/utf8"

	"github.com/onerilhan/go-point-api/internal/middleware/errors"
)

// getErrorMessage status code'a göre genel hata mesajı döner
func getErrorMessage(statusCode int, config *errors.ErrorConfig) string {
	if customMessage, exists := config.CustomErrorMap[statusCode]; exists {
		return customMessage
	}

	if text := http.StatusText(statusCode); text != "" {
		return text
	}
	return fmt.Sprintf("HTTP Error %d", statusCode)
}

// truncateString string'i en fazla maxLength byte olacak şekilde keser.
// Kesim rune sınırına çekilir, çok byte'lı karakter bölünmez.
func truncateString(s string, maxLength int) string {
	if maxLength <= 0 || len(s) <= maxLength {
		return s
	}

	suffix := "..."
	if maxLength <= len(suffix) {
		suffix = ""
	}

	cut := maxLength - len(suffix)
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + suffix
}

package validation

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/onerilhan/go-point-api/internal/middleware/errors"
)

// ValidateContent Content-Length, Content-Type ve body formatını doğrular.
// Body okunur ve handler için yeniden yerine konur.
func ValidateContent(r *http.Request, config *Config) *errors.ValidationError {
	if config.MaxBodySize > 0 && r.ContentLength > config.MaxBodySize {
		return errors.NewValidationError(http.StatusRequestEntityTooLarge, "body",
			fmt.Sprintf("request body çok büyük. Maksimum boyut: %d bytes", config.MaxBodySize), r.ContentLength)
	}

	mediaType, err := validateContentType(r, config.ContentTypes)
	if err != nil {
		return err
	}

	body, readErr := readBody(r, config.MaxBodySize)
	if readErr != nil {
		var maxErr *http.MaxBytesError
		if stderrors.As(readErr, &maxErr) {
			return errors.NewValidationError(http.StatusRequestEntityTooLarge, "body",
				fmt.Sprintf("request body çok büyük. Maksimum boyut: %d bytes", config.MaxBodySize), nil)
		}
		return errors.NewValidationError(http.StatusBadRequest, "body", "request body okunamadı", nil)
	}

	if len(bytes.TrimSpace(body)) == 0 {
		if config.RequireNonEmptyBody {
			return errors.NewValidationError(http.StatusBadRequest, "body", "request body boş olamaz", nil)
		}
		return nil
	}

	if config.JSONValidation && mediaType == "application/json" && !json.Valid(body) {
		return errors.NewValidationError(http.StatusBadRequest, "body", "geçersiz JSON formatı", nil)
	}

	return nil
}

// validateContentType Content-Type'ı izin verilen tiplerle karşılaştırır.
// charset gibi parametreler yok sayılır.
func validateContentType(r *http.Request, allowedTypes []string) (string, *errors.ValidationError) {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return "", errors.NewValidationError(http.StatusUnsupportedMediaType, "Content-Type",
			"Content-Type header gerekli", nil)
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", errors.NewValidationError(http.StatusUnsupportedMediaType, "Content-Type",
			"geçersiz Content-Type", contentType)
	}

	for _, allowedType := range allowedTypes {
		if mediaType == allowedType {
			return mediaType, nil
		}
	}

	return "", errors.NewValidationError(http.StatusUnsupportedMediaType, "Content-Type",
		fmt.Sprintf("desteklenmeyen Content-Type: %s. İzin verilen tipler: %s",
			mediaType, strings.Join(allowedTypes, ", ")), contentType)
}

// readBody body'yi limit dahilinde okur ve request'e geri koyar
func readBody(r *http.Request, limit int64) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}

	reader := r.Body
	if limit > 0 {
		reader = http.MaxBytesReader(nil, r.Body, limit)
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}

	r.Body = io.NopCloser(bytes.NewReader(body))
	return body, nil
}

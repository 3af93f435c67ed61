package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onerilhan/go-point-api/internal/apperrors"
	"github.com/onerilhan/go-point-api/internal/middleware/errors"
)

func decodeErrorResponse(t *testing.T, rec *httptest.ResponseRecorder) errors.ErrorResponse {
	t.Helper()
	var body errors.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestWriteError_StatusAndMessage(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{"invalid argument", apperrors.InvalidArgument("yetersiz puan"), http.StatusBadRequest, "yetersiz puan"},
		{"wrapped invalid argument", fmt.Errorf("charge: %w", apperrors.InvalidArgument("tutar pozitif olmalı")), http.StatusBadRequest, "charge: tutar pozitif olmalı"},
		{"internal", apperrors.Internal("bakiye güncellenemedi", fmt.Errorf("conn reset")), http.StatusInternalServerError, "Bir hata oluştu."},
		{"plain error", fmt.Errorf("boom"), http.StatusInternalServerError, "Bir hata oluştu."},
		{"auth error", errors.NewAuthError("Geçersiz token"), http.StatusUnauthorized, "Geçersiz token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/point/1", nil)

			WriteError(rec, req, tt.err, nil)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			body := decodeErrorResponse(t, rec)
			assert.False(t, body.Success)
			assert.Equal(t, tt.wantStatus, body.Code)
			assert.Equal(t, tt.wantMessage, body.Error)
			assert.Equal(t, "/point/1", body.Details["path"])
		})
	}
}

func TestWriteError_DevelopmentShowsCause(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/point/1", nil)

	WriteError(rec, req, apperrors.Internal("bakiye alınamadı", fmt.Errorf("conn reset")), errors.DevelopmentErrorConfig())

	body := decodeErrorResponse(t, rec)
	assert.Equal(t, http.StatusInternalServerError, body.Code)
	assert.Contains(t, body.Details["cause"], "conn reset")
}

func TestErrorHandlingMiddleware_RecoversPanics(t *testing.T) {
	tests := []struct {
		name       string
		panicValue interface{}
		wantStatus int
	}{
		{"api error keeps status", errors.NewRBACError(1, "2"), http.StatusForbidden},
		{"validation error keeps status", errors.NewValidationError(http.StatusUnsupportedMediaType, "Content-Type", "desteklenmeyen", nil), http.StatusUnsupportedMediaType},
		{"plain error", fmt.Errorf("nil map"), http.StatusInternalServerError},
		{"string panic", "beklenmeyen durum", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := ErrorHandlingMiddleware(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				panic(tt.panicValue)
			}))

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/point/1", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := decodeErrorResponse(t, rec)
			assert.Equal(t, tt.wantStatus, body.Code)
			assert.Empty(t, body.Stack)
		})
	}
}

func TestErrorHandlingMiddleware_DevelopmentIncludesStack(t *testing.T) {
	handler := ErrorHandlingMiddleware(errors.DevelopmentErrorConfig())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	body := decodeErrorResponse(t, rec)
	assert.Equal(t, http.StatusInternalServerError, body.Code)
	assert.NotEmpty(t, body.Stack)
}

func TestErrorHandlingMiddleware_PanicAfterWriteKeepsOriginalResponse(t *testing.T) {
	handler := ErrorHandlingMiddleware(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("partial"))
		panic("late")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "partial", rec.Body.String())
}

func TestErrorHandlingMiddleware_PassesThroughSuccess(t *testing.T) {
	handler := ErrorHandlingMiddleware(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/point/1", nil))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "kısa", truncateString("kısa", 10))
	assert.Equal(t, "abcdefg...", truncateString("abcdefghijklmnop", 10))
	assert.Equal(t, "ab", truncateString("abcdef", 2))
	assert.Equal(t, "abcdef", truncateString("abcdef", 0))
}

func TestTruncateString_KeepsRunesWhole(t *testing.T) {
	msg := "yetersiz puan: işlem reddedildi"

	for maxLength := 1; maxLength < len(msg); maxLength++ {
		got := truncateString(msg, maxLength)

		assert.True(t, utf8.ValidString(got), "maxLength=%d got=%q", maxLength, got)
		assert.LessOrEqual(t, len(got), maxLength)
	}

	// "ş" iki byte; kesim onun ortasına denk gelirse önceki rune'da durulur
	assert.Equal(t, "i...", truncateString("işlem", 5))
}

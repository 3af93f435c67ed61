package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/onerilhan/go-point-api/internal/apperrors"
	"github.com/onerilhan/go-point-api/internal/interfaces"
	"github.com/onerilhan/go-point-api/internal/middleware"
	"github.com/onerilhan/go-point-api/internal/middleware/errors"
	"github.com/onerilhan/go-point-api/internal/models"
	"github.com/onerilhan/go-point-api/internal/utils"
)

// PointHandler /point HTTP isteklerini yönetir
type PointHandler struct {
	pointService interfaces.PointServiceInterface
	errorConfig  *errors.ErrorConfig
}

// NewPointHandler yeni handler oluşturur; errorConfig nil ise varsayılan kullanılır
func NewPointHandler(pointService interfaces.PointServiceInterface, errorConfig *errors.ErrorConfig) *PointHandler {
	if errorConfig == nil {
		errorConfig = errors.DefaultErrorConfig()
	}
	return &PointHandler{pointService: pointService, errorConfig: errorConfig}
}

// GetUserPoint GET /point/{id}
func (h *PointHandler) GetUserPoint(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userIDFromPath(w, r)
	if !ok {
		return
	}

	point, err := h.pointService.GetUserPoint(userID)
	if err != nil {
		middleware.WriteError(w, r, err, h.errorConfig)
		return
	}

	writeSuccess(w, http.StatusOK, point, "Puan bilgisi getirildi")
}

// GetPointHistories GET /point/{id}/histories
func (h *PointHandler) GetPointHistories(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userIDFromPath(w, r)
	if !ok {
		return
	}

	histories, err := h.pointService.GetPointHistories(userID)
	if err != nil {
		middleware.WriteError(w, r, err, h.errorConfig)
		return
	}

	writeSuccess(w, http.StatusOK, histories, "Puan geçmişi getirildi")
}

// Charge PATCH /point/{id}/charge
func (h *PointHandler) Charge(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userIDFromPath(w, r)
	if !ok {
		return
	}

	amount, err := decodeAmount(r.Body)
	if err != nil {
		middleware.WriteError(w, r, err, h.errorConfig)
		return
	}

	point, err := h.pointService.ChargeUserPoint(userID, amount)
	if err != nil {
		middleware.WriteError(w, r, err, h.errorConfig)
		return
	}

	writeSuccess(w, http.StatusOK, point, "Puan yüklendi")
}

// Use PATCH /point/{id}/use
func (h *PointHandler) Use(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userIDFromPath(w, r)
	if !ok {
		return
	}

	amount, err := decodeAmount(r.Body)
	if err != nil {
		middleware.WriteError(w, r, err, h.errorConfig)
		return
	}

	point, err := h.pointService.UseUserPoint(userID, amount)
	if err != nil {
		middleware.WriteError(w, r, err, h.errorConfig)
		return
	}

	writeSuccess(w, http.StatusOK, point, "Puan kullanıldı")
}

// Register POST /point/{id}
// Kayıt yeni açıldıysa 201, zaten varsa 200 döner.
func (h *PointHandler) Register(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userIDFromPath(w, r)
	if !ok {
		return
	}

	point, created, err := h.pointService.RegisterUser(userID)
	if err != nil {
		middleware.WriteError(w, r, err, h.errorConfig)
		return
	}

	if created {
		writeSuccess(w, http.StatusCreated, point, "Kullanıcı puan kaydı oluşturuldu")
		return
	}
	writeSuccess(w, http.StatusOK, point, "Kullanıcı puan kaydı zaten mevcut")
}

// Health GET /health
func Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]string{"status": "ok"}); err != nil {
		log.Error().Err(err).Msg("Health response yazılamadı")
	}
}

func (h *PointHandler) userIDFromPath(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, err := utils.PathInt64(r, "id")
	if err != nil {
		middleware.WriteError(w, r, apperrors.InvalidArgument("geçersiz kullanıcı ID"), h.errorConfig)
		return 0, false
	}
	return userID, true
}

// decodeAmount body'den tutarı okur: {"amount": n} ya da çıplak sayı
func decodeAmount(body io.Reader) (int64, error) {
	if body == nil {
		return 0, apperrors.InvalidArgument("tutar gerekli")
	}

	raw, err := io.ReadAll(body)
	if err != nil {
		return 0, apperrors.InvalidArgument("request body okunamadı")
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0, apperrors.InvalidArgument("tutar gerekli")
	}

	if raw[0] == '{' {
		var req models.PointAmountRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			return 0, apperrors.InvalidArgument("geçersiz JSON formatı")
		}
		if req.Amount == nil {
			return 0, apperrors.InvalidArgument("amount alanı gerekli")
		}
		return *req.Amount, nil
	}

	amount, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return 0, apperrors.InvalidArgument("tutar tam sayı olmalı")
	}
	return amount, nil
}

// writeSuccess standart success response yazar
func writeSuccess(w http.ResponseWriter, statusCode int, data interface{}, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := errors.SuccessResponse{
		Success: true,
		Data:    data,
		Message: message,
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Error().Err(err).Msg("Success response yazılamadı")
	}
}

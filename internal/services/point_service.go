package services

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/onerilhan/go-point-api/internal/apperrors"
	"github.com/onerilhan/go-point-api/internal/interfaces"
	"github.com/onerilhan/go-point-api/internal/lock"
	"github.com/onerilhan/go-point-api/internal/models"
)

// PointService kullanıcı puanı business logic'i.
// Aynı kullanıcıya yapılan charge/use işlemleri kullanıcı kilidiyle sıralanır,
// farklı kullanıcılar paralel ilerler. Okumalar kilit almaz.
type PointService struct {
	userPointRepo  interfaces.UserPointRepositoryInterface
	historyRepo    interfaces.PointHistoryRepositoryInterface
	userValidator  interfaces.UserValidatorInterface
	pointValidator interfaces.PointValidatorInterface
	locks          *lock.Registry
	observer       PointObserver
	now            func() time.Time
}

var _ interfaces.PointServiceInterface = (*PointService)(nil)

// NewPointService yeni service oluşturur; observer nil olabilir
func NewPointService(
	userPointRepo interfaces.UserPointRepositoryInterface,
	historyRepo interfaces.PointHistoryRepositoryInterface,
	userValidator interfaces.UserValidatorInterface,
	pointValidator interfaces.PointValidatorInterface,
	observer PointObserver,
) *PointService {
	if observer == nil {
		observer = noopObserver{}
	}
	return &PointService{
		userPointRepo:  userPointRepo,
		historyRepo:    historyRepo,
		userValidator:  userValidator,
		pointValidator: pointValidator,
		locks:          lock.NewRegistry(),
		observer:       observer,
		now:            time.Now,
	}
}

// GetUserPoint kullanıcının güncel bakiyesini getirir
func (s *PointService) GetUserPoint(userID int64) (*models.UserPoint, error) {
	if err := s.userValidator.ValidateUser(userID); err != nil {
		return nil, err
	}

	point, err := s.userPointRepo.SelectByID(userID)
	if err != nil {
		return nil, apperrors.Internal("bakiye alınamadı", err)
	}
	if point == nil {
		// Doğrulama ile okuma arasında kayıt kaybolamaz; olduysa depo tutarsız
		return nil, apperrors.Internal("bakiye kaydı kayboldu", nil)
	}

	return point, nil
}

// GetPointHistories kullanıcının puan geçmişini eskiden yeniye getirir
func (s *PointService) GetPointHistories(userID int64) ([]*models.PointHistory, error) {
	if err := s.userValidator.ValidateUser(userID); err != nil {
		return nil, err
	}

	histories, err := s.historyRepo.SelectAllByUserID(userID)
	if err != nil {
		return nil, apperrors.Internal("puan geçmişi alınamadı", err)
	}

	return histories, nil
}

// ChargeUserPoint kullanıcıya puan yükler
func (s *PointService) ChargeUserPoint(userID, amount int64) (*models.UserPoint, error) {
	start := time.Now()
	point, err := s.mutate(userID, amount, models.TransactionTypeCharge, func() error {
		return s.pointValidator.ValidateChargeAmount(amount)
	})
	s.observer.RecordOperation(models.TransactionTypeCharge, amount, time.Since(start), err)
	return point, err
}

// UseUserPoint kullanıcının puanını harcar
func (s *PointService) UseUserPoint(userID, amount int64) (*models.UserPoint, error) {
	start := time.Now()
	point, err := s.mutate(userID, amount, models.TransactionTypeUse, func() error {
		// Kilit alındıktan sonra çalışır, bakiye son commit edilen değerden okunur
		return s.pointValidator.ValidateUseAmount(userID, amount)
	})
	s.observer.RecordOperation(models.TransactionTypeUse, amount, time.Since(start), err)
	return point, err
}

// mutate kilit altında doğrula -> bakiyeyi güncelle -> geçmişe ekle sırasını uygular.
// Kilit her çıkış yolunda bırakılır.
func (s *PointService) mutate(userID, amount int64, txType models.TransactionType, validateAmount func() error) (*models.UserPoint, error) {
	handle := s.locks.Acquire(userID)
	defer s.locks.Release(handle)

	if err := s.userValidator.ValidateUser(userID); err != nil {
		logRejected(userID, amount, txType, err)
		return nil, err
	}
	if err := validateAmount(); err != nil {
		logRejected(userID, amount, txType, err)
		return nil, err
	}

	delta := amount
	if txType == models.TransactionTypeUse {
		delta = -amount
	}

	updated, err := s.userPointRepo.InsertOrUpdate(userID, delta)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Str("type", string(txType)).Msg("Bakiye güncellenemedi")
		return nil, apperrors.Internal("bakiye güncellenemedi", err)
	}

	history, err := s.historyRepo.Insert(userID, amount, txType, s.now())
	if err != nil {
		log.Error().
			Err(err).
			Int64("user_id", userID).
			Int64("amount", amount).
			Str("type", string(txType)).
			Int64("point", updated.Point).
			Msg("🚨 Bakiye güncellendi ama geçmiş kaydı eklenemedi")
		return nil, apperrors.Internal("puan geçmişi kaydedilemedi", err)
	}

	log.Info().
		Str("event", "point_audit").
		Int64("user_id", userID).
		Int64("history_id", history.ID).
		Str("type", string(txType)).
		Int64("amount", amount).
		Int64("point", updated.Point).
		Msg("Puan işlemi tamamlandı")

	return updated, nil
}

// RegisterUser kullanıcı için sıfır bakiyeli kayıt açar; kayıt varsa olduğu gibi döner
func (s *PointService) RegisterUser(userID int64) (*models.UserPoint, bool, error) {
	return s.SeedUser(userID, 0)
}

// SeedUser kayıt yoksa başlangıç bakiyesiyle oluşturur, geçmişe kayıt düşmez.
// İkinci dönüş değeri kaydın bu çağrıda oluşturulup oluşturulmadığıdır.
func (s *PointService) SeedUser(userID, initialPoint int64) (*models.UserPoint, bool, error) {
	if userID <= 0 {
		return nil, false, apperrors.InvalidArgument("geçersiz kullanıcı ID")
	}
	if initialPoint < 0 {
		return nil, false, apperrors.InvalidArgument("başlangıç bakiyesi negatif olamaz")
	}

	handle := s.locks.Acquire(userID)
	defer s.locks.Release(handle)

	existing, err := s.userPointRepo.SelectByID(userID)
	if err != nil {
		return nil, false, apperrors.Internal("kullanıcı sorgulanamadı", err)
	}
	if existing != nil {
		return existing, false, nil
	}

	created, err := s.userPointRepo.InsertOrUpdate(userID, initialPoint)
	if err != nil {
		return nil, false, apperrors.Internal("kullanıcı kaydı oluşturulamadı", err)
	}

	log.Info().
		Int64("user_id", userID).
		Int64("point", created.Point).
		Msg("Kullanıcı puan kaydı oluşturuldu")

	return created, true, nil
}

func logRejected(userID, amount int64, txType models.TransactionType, err error) {
	log.Debug().
		Err(err).
		Int64("user_id", userID).
		Int64("amount", amount).
		Str("type", string(txType)).
		Str("kind", apperrors.KindOf(err).String()).
		Msg("Puan işlemi reddedildi")
}

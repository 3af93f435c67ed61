package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/onerilhan/go-point-api/internal/apperrors"
	"github.com/onerilhan/go-point-api/internal/interfaces"
	"github.com/onerilhan/go-point-api/internal/models"
)

// MockUserPointRepository, UserPointRepositoryInterface için sahte (mock) bir yapıdır.
type MockUserPointRepository struct {
	mock.Mock
}

var _ interfaces.UserPointRepositoryInterface = (*MockUserPointRepository)(nil)

func (m *MockUserPointRepository) SelectByID(userID int64) (*models.UserPoint, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserPoint), args.Error(1)
}

func (m *MockUserPointRepository) InsertOrUpdate(userID int64, delta int64) (*models.UserPoint, error) {
	args := m.Called(userID, delta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserPoint), args.Error(1)
}

// MockPointHistoryRepository, PointHistoryRepositoryInterface için sahte (mock) bir yapıdır.
type MockPointHistoryRepository struct {
	mock.Mock
}

var _ interfaces.PointHistoryRepositoryInterface = (*MockPointHistoryRepository)(nil)

func (m *MockPointHistoryRepository) Insert(userID int64, amount int64, txType models.TransactionType, at time.Time) (*models.PointHistory, error) {
	args := m.Called(userID, amount, txType, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PointHistory), args.Error(1)
}

func (m *MockPointHistoryRepository) SelectAllByUserID(userID int64) ([]*models.PointHistory, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.PointHistory), args.Error(1)
}

// MockUserValidator, UserValidatorInterface için sahte (mock) bir yapıdır.
type MockUserValidator struct {
	mock.Mock
}

var _ interfaces.UserValidatorInterface = (*MockUserValidator)(nil)

func (m *MockUserValidator) ValidateUser(userID int64) error {
	return m.Called(userID).Error(0)
}

// MockPointValidator, PointValidatorInterface için sahte (mock) bir yapıdır.
type MockPointValidator struct {
	mock.Mock
}

var _ interfaces.PointValidatorInterface = (*MockPointValidator)(nil)

func (m *MockPointValidator) ValidateChargeAmount(amount int64) error {
	return m.Called(amount).Error(0)
}

func (m *MockPointValidator) ValidateUseAmount(userID, amount int64) error {
	return m.Called(userID, amount).Error(0)
}

type serviceMocks struct {
	userPointRepo  *MockUserPointRepository
	historyRepo    *MockPointHistoryRepository
	userValidator  *MockUserValidator
	pointValidator *MockPointValidator
}

func newMockedService() (*PointService, *serviceMocks) {
	m := &serviceMocks{
		userPointRepo:  new(MockUserPointRepository),
		historyRepo:    new(MockPointHistoryRepository),
		userValidator:  new(MockUserValidator),
		pointValidator: new(MockPointValidator),
	}
	svc := NewPointService(m.userPointRepo, m.historyRepo, m.userValidator, m.pointValidator, nil)
	return svc, m
}

func TestPointService_GetUserPoint_Success(t *testing.T) {
	// Arrange
	svc, m := newMockedService()
	expected := &models.UserPoint{ID: 1, Point: 1000, UpdatedAt: time.Now()}
	m.userValidator.On("ValidateUser", int64(1)).Return(nil)
	m.userPointRepo.On("SelectByID", int64(1)).Return(expected, nil)

	// Act
	result, err := svc.GetUserPoint(1)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, expected, result)
	m.userValidator.AssertExpectations(t)
	m.userPointRepo.AssertExpectations(t)
}

func TestPointService_GetUserPoint_InvalidUser(t *testing.T) {
	svc, m := newMockedService()
	m.userValidator.On("ValidateUser", int64(-1)).Return(apperrors.InvalidArgument("geçersiz kullanıcı ID"))

	result, err := svc.GetUserPoint(-1)

	assert.Nil(t, result)
	assert.True(t, apperrors.IsInvalidArgument(err))
	m.userPointRepo.AssertNotCalled(t, "SelectByID", mock.Anything)
}

func TestPointService_GetUserPoint_RepositoryError(t *testing.T) {
	svc, m := newMockedService()
	m.userValidator.On("ValidateUser", int64(1)).Return(nil)
	m.userPointRepo.On("SelectByID", int64(1)).Return(nil, errors.New("veritabanı hatası"))

	result, err := svc.GetUserPoint(1)

	assert.Nil(t, result)
	assert.Equal(t, apperrors.KindInternal, apperrors.KindOf(err))
}

func TestPointService_GetPointHistories_Success(t *testing.T) {
	svc, m := newMockedService()
	now := time.Now()
	expected := []*models.PointHistory{
		{ID: 1, UserID: 1, Amount: 500, Type: models.TransactionTypeCharge, CreatedAt: now},
		{ID: 2, UserID: 1, Amount: 300, Type: models.TransactionTypeUse, CreatedAt: now},
	}
	m.userValidator.On("ValidateUser", int64(1)).Return(nil)
	m.historyRepo.On("SelectAllByUserID", int64(1)).Return(expected, nil)

	result, err := svc.GetPointHistories(1)

	assert.NoError(t, err)
	assert.Equal(t, expected, result)
	m.historyRepo.AssertExpectations(t)
}

func TestPointService_ChargeUserPoint_Success(t *testing.T) {
	// Arrange
	svc, m := newMockedService()
	updated := &models.UserPoint{ID: 1, Point: 1500, UpdatedAt: time.Now()}
	m.userValidator.On("ValidateUser", int64(1)).Return(nil)
	m.pointValidator.On("ValidateChargeAmount", int64(500)).Return(nil)
	m.userPointRepo.On("InsertOrUpdate", int64(1), int64(500)).Return(updated, nil)
	m.historyRepo.On("Insert", int64(1), int64(500), models.TransactionTypeCharge, mock.AnythingOfType("time.Time")).
		Return(&models.PointHistory{ID: 1}, nil)

	// Act
	result, err := svc.ChargeUserPoint(1, 500)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, updated, result)
	m.userValidator.AssertExpectations(t)
	m.pointValidator.AssertExpectations(t)
	m.userPointRepo.AssertExpectations(t)
	m.historyRepo.AssertExpectations(t)
}

func TestPointService_UseUserPoint_SubtractsAndRecordsPositiveAmount(t *testing.T) {
	svc, m := newMockedService()
	updated := &models.UserPoint{ID: 1, Point: 700}
	m.userValidator.On("ValidateUser", int64(1)).Return(nil)
	m.pointValidator.On("ValidateUseAmount", int64(1), int64(300)).Return(nil)
	m.userPointRepo.On("InsertOrUpdate", int64(1), int64(-300)).Return(updated, nil)
	m.historyRepo.On("Insert", int64(1), int64(300), models.TransactionTypeUse, mock.AnythingOfType("time.Time")).
		Return(&models.PointHistory{ID: 2}, nil)

	result, err := svc.UseUserPoint(1, 300)

	assert.NoError(t, err)
	assert.Equal(t, int64(700), result.Point)
	m.historyRepo.AssertExpectations(t)
}

func TestPointService_ChargeUserPoint_ValidationFailureMutatesNothing(t *testing.T) {
	svc, m := newMockedService()
	m.userValidator.On("ValidateUser", int64(1)).Return(nil)
	m.pointValidator.On("ValidateChargeAmount", int64(0)).Return(apperrors.InvalidArgument("yükleme tutarı sıfırdan büyük olmalıdır"))

	result, err := svc.ChargeUserPoint(1, 0)

	assert.Nil(t, result)
	assert.True(t, apperrors.IsInvalidArgument(err))
	m.userPointRepo.AssertNotCalled(t, "InsertOrUpdate", mock.Anything, mock.Anything)
	m.historyRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPointService_UseUserPoint_UnknownUserSkipsAmountValidation(t *testing.T) {
	svc, m := newMockedService()
	m.userValidator.On("ValidateUser", int64(9)).Return(apperrors.InvalidArgument("kullanıcı bulunamadı"))

	_, err := svc.UseUserPoint(9, 10)

	assert.True(t, apperrors.IsInvalidArgument(err))
	m.pointValidator.AssertNotCalled(t, "ValidateUseAmount", mock.Anything, mock.Anything)
}

func TestPointService_ChargeUserPoint_StorageFailureIsInternal(t *testing.T) {
	svc, m := newMockedService()
	m.userValidator.On("ValidateUser", int64(1)).Return(nil)
	m.pointValidator.On("ValidateChargeAmount", int64(10)).Return(nil)
	m.userPointRepo.On("InsertOrUpdate", int64(1), int64(10)).Return(nil, errors.New("disk dolu"))

	_, err := svc.ChargeUserPoint(1, 10)

	assert.Error(t, err)
	assert.Equal(t, apperrors.KindInternal, apperrors.KindOf(err))
	m.historyRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPointService_ChargeUserPoint_HistoryFailureIsInternal(t *testing.T) {
	svc, m := newMockedService()
	m.userValidator.On("ValidateUser", int64(1)).Return(nil)
	m.pointValidator.On("ValidateChargeAmount", int64(10)).Return(nil)
	m.userPointRepo.On("InsertOrUpdate", int64(1), int64(10)).Return(&models.UserPoint{ID: 1, Point: 10}, nil)
	m.historyRepo.On("Insert", int64(1), int64(10), models.TransactionTypeCharge, mock.Anything).
		Return(nil, errors.New("yazılamadı"))

	result, err := svc.ChargeUserPoint(1, 10)

	assert.Nil(t, result)
	assert.Equal(t, apperrors.KindInternal, apperrors.KindOf(err))
}

func TestPointService_LockIsReleasedAfterFailure(t *testing.T) {
	svc, m := newMockedService()
	m.userValidator.On("ValidateUser", int64(1)).Return(apperrors.InvalidArgument("kullanıcı bulunamadı")).Once()
	m.userValidator.On("ValidateUser", int64(1)).Return(apperrors.InvalidArgument("kullanıcı bulunamadı")).Once()

	_, firstErr := svc.ChargeUserPoint(1, 10)

	done := make(chan error, 1)
	go func() {
		_, err := svc.ChargeUserPoint(1, 10)
		done <- err
	}()

	select {
	case err := <-done:
		assert.True(t, apperrors.IsInvalidArgument(err))
	case <-time.After(time.Second):
		t.Fatal("başarısız işlemden sonra kilit bırakılmadı")
	}
	require.True(t, apperrors.IsInvalidArgument(firstErr))
}

func TestPointService_RegisterUser_CreatesOnce(t *testing.T) {
	svc, m := newMockedService()
	created := &models.UserPoint{ID: 5, Point: 0}
	m.userPointRepo.On("SelectByID", int64(5)).Return(nil, nil).Once()
	m.userPointRepo.On("InsertOrUpdate", int64(5), int64(0)).Return(created, nil).Once()
	m.userPointRepo.On("SelectByID", int64(5)).Return(created, nil).Once()

	first, wasCreated, err := svc.RegisterUser(5)
	require.NoError(t, err)
	assert.True(t, wasCreated)
	second, wasCreated, err := svc.RegisterUser(5)
	require.NoError(t, err)
	assert.False(t, wasCreated)

	assert.Equal(t, created, first)
	assert.Equal(t, created, second)
	m.userPointRepo.AssertExpectations(t)
	m.historyRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPointService_SeedUser_RejectsInvalidInput(t *testing.T) {
	svc, m := newMockedService()

	_, _, err := svc.SeedUser(0, 100)
	assert.True(t, apperrors.IsInvalidArgument(err))

	_, _, err = svc.SeedUser(1, -1)
	assert.True(t, apperrors.IsInvalidArgument(err))

	m.userPointRepo.AssertNotCalled(t, "SelectByID", mock.Anything)
}

package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

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

func TestUserValidator_ValidateUser_NonPositiveID(t *testing.T) {
	mockRepo := new(MockUserPointRepository)
	v := NewUserValidator(mockRepo)

	for _, id := range []int64{0, -1} {
		err := v.ValidateUser(id)
		assert.True(t, apperrors.IsInvalidArgument(err), "id=%d", id)
	}

	// Repository'ye hiç gidilmemeli
	mockRepo.AssertNotCalled(t, "SelectByID", mock.Anything)
}

func TestUserValidator_ValidateUser_Unknown(t *testing.T) {
	mockRepo := new(MockUserPointRepository)
	v := NewUserValidator(mockRepo)
	mockRepo.On("SelectByID", int64(99)).Return(nil, nil)

	err := v.ValidateUser(99)

	assert.True(t, apperrors.IsInvalidArgument(err))
	assert.Contains(t, err.Error(), "kullanıcı bulunamadı")
	mockRepo.AssertExpectations(t)
}

func TestUserValidator_ValidateUser_Exists(t *testing.T) {
	mockRepo := new(MockUserPointRepository)
	v := NewUserValidator(mockRepo)
	mockRepo.On("SelectByID", int64(1)).Return(&models.UserPoint{ID: 1, Point: 0}, nil)

	assert.NoError(t, v.ValidateUser(1))
	mockRepo.AssertExpectations(t)
}

func TestUserValidator_ValidateUser_RepositoryFailureIsInternal(t *testing.T) {
	mockRepo := new(MockUserPointRepository)
	v := NewUserValidator(mockRepo)
	mockRepo.On("SelectByID", int64(1)).Return(nil, errors.New("veritabanı hatası"))

	err := v.ValidateUser(1)

	assert.Error(t, err)
	assert.Equal(t, apperrors.KindInternal, apperrors.KindOf(err))
}

func TestPointValidator_ValidateChargeAmount(t *testing.T) {
	v := NewPointValidator(new(MockUserPointRepository), DefaultMaxAmount)

	tests := []struct {
		name    string
		amount  int64
		wantErr bool
	}{
		{"sıfır", 0, true},
		{"negatif", -1, true},
		{"pozitif", 500, false},
		{"tam sınır", DefaultMaxAmount, false},
		{"sınır üstü", DefaultMaxAmount + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateChargeAmount(tt.amount)
			if tt.wantErr {
				assert.True(t, apperrors.IsInvalidArgument(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPointValidator_CeilingDisabled(t *testing.T) {
	v := NewPointValidator(new(MockUserPointRepository), 0)

	assert.Equal(t, int64(0), v.MaxAmount())
	assert.NoError(t, v.ValidateChargeAmount(DefaultMaxAmount*10))
}

func TestPointValidator_ValidateUseAmount_Sufficient(t *testing.T) {
	mockRepo := new(MockUserPointRepository)
	v := NewPointValidator(mockRepo, DefaultMaxAmount)
	mockRepo.On("SelectByID", int64(1)).Return(&models.UserPoint{ID: 1, Point: 1000}, nil)

	assert.NoError(t, v.ValidateUseAmount(1, 1000))
	mockRepo.AssertExpectations(t)
}

func TestPointValidator_ValidateUseAmount_Insufficient(t *testing.T) {
	mockRepo := new(MockUserPointRepository)
	v := NewPointValidator(mockRepo, DefaultMaxAmount)
	mockRepo.On("SelectByID", int64(1)).Return(&models.UserPoint{ID: 1, Point: 299}, nil)

	err := v.ValidateUseAmount(1, 300)

	assert.True(t, apperrors.IsInvalidArgument(err))
	assert.Contains(t, err.Error(), "yetersiz puan")
}

func TestPointValidator_ValidateUseAmount_AbsentRecord(t *testing.T) {
	mockRepo := new(MockUserPointRepository)
	v := NewPointValidator(mockRepo, DefaultMaxAmount)
	mockRepo.On("SelectByID", int64(3)).Return(nil, nil)

	assert.True(t, apperrors.IsInvalidArgument(v.ValidateUseAmount(3, 1)))
}

func TestPointValidator_ValidateUseAmount_RejectsBeforeBalanceLookup(t *testing.T) {
	mockRepo := new(MockUserPointRepository)
	v := NewPointValidator(mockRepo, 100)

	assert.True(t, apperrors.IsInvalidArgument(v.ValidateUseAmount(1, 0)))
	assert.True(t, apperrors.IsInvalidArgument(v.ValidateUseAmount(1, 101)))
	mockRepo.AssertNotCalled(t, "SelectByID", mock.Anything)
}

package seeder

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/simaogato/advisordesk-backend/internal/domain"
)

// MockAssetClassRepository is a mock implementation of AssetClassRepository
type MockAssetClassRepository struct {
	mock.Mock
}

func (m *MockAssetClassRepository) GetByCode(ctx context.Context, code string) (*domain.AssetClass, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AssetClass), args.Error(1)
}

func (m *MockAssetClassRepository) List(ctx context.Context) ([]*domain.AssetClass, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.AssetClass), args.Error(1)
}

func (m *MockAssetClassRepository) Create(ctx context.Context, class *domain.AssetClass) error {
	args := m.Called(ctx, class)
	return args.Error(0)
}

func TestCatalogSeeder_Seed_ClassesMissing(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockAssetClassRepository)
	seeder := NewCatalogSeeder(mockRepo)

	mockRepo.On("GetByCode", ctx, mock.AnythingOfType("string")).Return(nil, domain.ErrNotFound)
	mockRepo.On("Create", ctx, mock.MatchedBy(func(class *domain.AssetClass) bool {
		return class.Code != "" && !class.DefaultPassThroughPercent.IsNegative()
	})).Return(nil)

	created, err := seeder.Seed(ctx)

	assert.NoError(t, err)
	assert.Equal(t, len(DefaultAssetClasses), created)
	mockRepo.AssertNumberOfCalls(t, "Create", len(DefaultAssetClasses))
}

func TestCatalogSeeder_Seed_ClassesExist(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockAssetClassRepository)
	seeder := NewCatalogSeeder(mockRepo)

	mockRepo.On("GetByCode", ctx, mock.AnythingOfType("string")).Return(&domain.AssetClass{Code: "existing"}, nil)

	created, err := seeder.Seed(ctx)

	assert.NoError(t, err)
	assert.Equal(t, 0, created)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCatalogSeeder_Seed_LookupError(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockAssetClassRepository)
	seeder := NewCatalogSeeder(mockRepo)

	mockRepo.On("GetByCode", ctx, "RF").Return(nil, errors.New("connection refused"))

	created, err := seeder.Seed(ctx)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Equal(t, 0, created)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCatalogSeeder_Seed_CreateError(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockAssetClassRepository)
	seeder := NewCatalogSeeder(mockRepo)

	mockRepo.On("GetByCode", ctx, "RF").Return(nil, domain.ErrNotFound)
	mockRepo.On("Create", ctx, mock.Anything).Return(errors.New("disk full"))

	_, err := seeder.Seed(ctx)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/kaiwa/internal/models"
)

// MockMaterialRepository is a mock implementation of repository.MaterialRepository
type MockMaterialRepository struct {
	mock.Mock
}

func (m *MockMaterialRepository) Create(ctx context.Context, material models.Material) error {
	args := m.Called(ctx, material)
	return args.Error(0)
}

func (m *MockMaterialRepository) Get(ctx context.Context, id string) (*models.Material, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Material), args.Error(1)
}

func (m *MockMaterialRepository) List(ctx context.Context, filter models.MaterialFilter) ([]models.Material, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Material), args.Error(1)
}

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/kaiwa/internal/models"
)

// MockAnalysisRepository is a mock implementation of repository.AnalysisRepository
type MockAnalysisRepository struct {
	mock.Mock
}

func (m *MockAnalysisRepository) Create(ctx context.Context, analysis models.Analysis) error {
	args := m.Called(ctx, analysis)
	return args.Error(0)
}

func (m *MockAnalysisRepository) Get(ctx context.Context, id string) (*models.Analysis, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Analysis), args.Error(1)
}

func (m *MockAnalysisRepository) GetByConversation(ctx context.Context, conversationID string) (*models.Analysis, error) {
	args := m.Called(ctx, conversationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Analysis), args.Error(1)
}

func (m *MockAnalysisRepository) List(ctx context.Context, filter models.AnalysisFilter) ([]models.Analysis, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Analysis), args.Error(1)
}

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/kaiwa/internal/ai"
	"github.com/vytor/kaiwa/internal/models"
)

// MockTutor is a mock implementation of ai.Tutor
type MockTutor struct {
	mock.Mock
}

func (m *MockTutor) Reply(ctx context.Context, systemPrompt string, history []models.Message) (string, error) {
	args := m.Called(ctx, systemPrompt, history)
	return args.String(0), args.Error(1)
}

func (m *MockTutor) Analyze(ctx context.Context, in ai.AnalysisInput) (*ai.AnalysisResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ai.AnalysisResult), args.Error(1)
}

func (m *MockTutor) GenerateMaterial(ctx context.Context, in ai.MaterialInput) (*ai.MaterialResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ai.MaterialResult), args.Error(1)
}

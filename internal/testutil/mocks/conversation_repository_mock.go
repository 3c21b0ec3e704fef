package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/kaiwa/internal/models"
)

// MockConversationRepository is a mock implementation of repository.ConversationRepository
type MockConversationRepository struct {
	mock.Mock
}

func (m *MockConversationRepository) Create(ctx context.Context, conv models.Conversation) error {
	args := m.Called(ctx, conv)
	return args.Error(0)
}

func (m *MockConversationRepository) Get(ctx context.Context, id string) (*models.Conversation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Conversation), args.Error(1)
}

func (m *MockConversationRepository) List(ctx context.Context, filter models.ConversationFilter) ([]models.Conversation, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Conversation), args.Error(1)
}

func (m *MockConversationRepository) AppendMessages(ctx context.Context, id string, msgs ...models.Message) error {
	args := m.Called(ctx, id, msgs)
	return args.Error(0)
}

func (m *MockConversationRepository) UpdateStatus(ctx context.Context, id string, status models.ConversationStatus, endedAt *time.Time) error {
	args := m.Called(ctx, id, status, endedAt)
	return args.Error(0)
}

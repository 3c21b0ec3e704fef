package repository

import (
	"context"
	"time"

	"github.com/vytor/kaiwa/internal/models"
)

// ConversationRepository handles conversation data access.
// List returns conversations newest first by start time.
type ConversationRepository interface {
	Create(ctx context.Context, conv models.Conversation) error
	Get(ctx context.Context, id string) (*models.Conversation, error)
	List(ctx context.Context, filter models.ConversationFilter) ([]models.Conversation, error)
	AppendMessages(ctx context.Context, id string, msgs ...models.Message) error
	UpdateStatus(ctx context.Context, id string, status models.ConversationStatus, endedAt *time.Time) error
}

// AnalysisRepository handles analysis data access.
// List returns analyses newest first by creation time.
type AnalysisRepository interface {
	Create(ctx context.Context, analysis models.Analysis) error
	Get(ctx context.Context, id string) (*models.Analysis, error)
	GetByConversation(ctx context.Context, conversationID string) (*models.Analysis, error)
	List(ctx context.Context, filter models.AnalysisFilter) ([]models.Analysis, error)
}

// MaterialRepository handles learning material data access.
type MaterialRepository interface {
	Create(ctx context.Context, material models.Material) error
	Get(ctx context.Context, id string) (*models.Material, error)
	List(ctx context.Context, filter models.MaterialFilter) ([]models.Material, error)
}

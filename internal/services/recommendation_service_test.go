package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vytor/kaiwa/internal/errors"
	"github.com/vytor/kaiwa/internal/models"
	"github.com/vytor/kaiwa/internal/recommend"
	"github.com/vytor/kaiwa/internal/services"
	"github.com/vytor/kaiwa/internal/testutil/mocks"
)

func TestRecommendationService_GetRecommendationsForUser(t *testing.T) {
	analysisRepo := &mocks.MockAnalysisRepository{}
	convRepo := &mocks.MockConversationRepository{}
	svc := services.NewRecommendationService(analysisRepo, convRepo)

	start := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(10 * time.Minute)
	conversations := []models.Conversation{{
		ID:         "conv-1",
		UserID:     "user-1",
		Scenario:   models.ScenarioShopping,
		Difficulty: 2,
		Status:     models.StatusCompleted,
		StartedAt:  start,
		EndedAt:    &end,
		Messages:   []models.Message{{Role: models.RoleUser, Content: "これをください"}},
	}}
	analyses := []models.Analysis{{
		ID:             "an-1",
		UserID:         "user-1",
		ConversationID: "conv-1",
		Score:          85,
		Errors:         []models.ConversationError{{Type: models.ErrorGrammar}},
		CreatedAt:      end,
	}}

	analysisRepo.On("List", mock.Anything, models.AnalysisFilter{UserID: "user-1", Limit: recommend.FetchLimit}).Return(analyses, nil)
	convRepo.On("List", mock.Anything, models.ConversationFilter{UserID: "user-1", Limit: recommend.FetchLimit}).Return(conversations, nil)

	bundle, err := svc.GetRecommendationsForUser(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, 1, bundle.Stats.TotalSessions)
	assert.Equal(t, 85, bundle.Stats.AverageScore)
	assert.NotEmpty(t, bundle.Recommendations)
	assert.LessOrEqual(t, len(bundle.Recommendations), 3)
	require.Len(t, bundle.RecentSessions, 1)
	assert.Equal(t, "conv-1", bundle.RecentSessions[0].ID)
	analysisRepo.AssertExpectations(t)
	convRepo.AssertExpectations(t)
}

func TestRecommendationService_EmptyHistory(t *testing.T) {
	analysisRepo := &mocks.MockAnalysisRepository{}
	convRepo := &mocks.MockConversationRepository{}
	svc := services.NewRecommendationService(analysisRepo, convRepo)

	analysisRepo.On("List", mock.Anything, mock.Anything).Return([]models.Analysis{}, nil)
	convRepo.On("List", mock.Anything, mock.Anything).Return([]models.Conversation{}, nil)

	bundle, err := svc.GetRecommendationsForUser(context.Background(), "new-user")
	require.NoError(t, err)

	assert.Equal(t, 0, bundle.Stats.TotalSessions)
	assert.Empty(t, bundle.RecentSessions)
	assert.NotEmpty(t, bundle.Recommendations)
}

func TestRecommendationService_Errors(t *testing.T) {
	t.Run("missing user", func(t *testing.T) {
		svc := services.NewRecommendationService(&mocks.MockAnalysisRepository{}, &mocks.MockConversationRepository{})
		_, err := svc.GetRecommendationsForUser(context.Background(), " ")
		requireAppError(t, err, errors.ErrCodeValidation)
	})

	t.Run("analyses fetch failure", func(t *testing.T) {
		analysisRepo := &mocks.MockAnalysisRepository{}
		convRepo := &mocks.MockConversationRepository{}
		analysisRepo.On("List", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("no such table"))
		convRepo.On("List", mock.Anything, mock.Anything).Return([]models.Conversation{}, nil).Maybe()

		svc := services.NewRecommendationService(analysisRepo, convRepo)
		bundle, err := svc.GetRecommendationsForUser(context.Background(), "user-1")
		requireAppError(t, err, errors.ErrCodeInternal)
		assert.Nil(t, bundle)
	})

	t.Run("conversations fetch failure", func(t *testing.T) {
		analysisRepo := &mocks.MockAnalysisRepository{}
		convRepo := &mocks.MockConversationRepository{}
		analysisRepo.On("List", mock.Anything, mock.Anything).Return([]models.Analysis{{ID: "an-1", Score: 90}}, nil).Maybe()
		convRepo.On("List", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("database is locked"))

		svc := services.NewRecommendationService(analysisRepo, convRepo)
		bundle, err := svc.GetRecommendationsForUser(context.Background(), "user-1")
		requireAppError(t, err, errors.ErrCodeInternal)
		assert.Nil(t, bundle)
		convRepo.AssertExpectations(t)
	})
}

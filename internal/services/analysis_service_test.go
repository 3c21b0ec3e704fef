package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vytor/kaiwa/internal/errors"
	"github.com/vytor/kaiwa/internal/models"
	"github.com/vytor/kaiwa/internal/services"
	"github.com/vytor/kaiwa/internal/testutil/mocks"
)

func TestAnalysisService_ListAnalyses_DefaultLimit(t *testing.T) {
	repo := &mocks.MockAnalysisRepository{}
	svc := services.NewAnalysisService(repo)

	repo.On("List", mock.Anything, models.AnalysisFilter{UserID: "user-1", Limit: services.DefaultListLimit}).
		Return([]models.Analysis{{ID: "an-1"}}, nil)

	got, err := svc.ListAnalyses(context.Background(), "user-1", 0)
	require.NoError(t, err)
	assert.Len(t, got, 1)
	repo.AssertExpectations(t)
}

func TestAnalysisService_ListAnalyses_RequiresUser(t *testing.T) {
	svc := services.NewAnalysisService(&mocks.MockAnalysisRepository{})
	_, err := svc.ListAnalyses(context.Background(), "", 10)
	requireAppError(t, err, errors.ErrCodeValidation)
}

func TestAnalysisService_GetAnalysis(t *testing.T) {
	repo := &mocks.MockAnalysisRepository{}
	svc := services.NewAnalysisService(repo)

	repo.On("Get", mock.Anything, "an-1").Return(&models.Analysis{ID: "an-1", Score: 64}, nil)
	repo.On("Get", mock.Anything, "missing").Return(nil, nil)

	got, err := svc.GetAnalysis(context.Background(), "an-1")
	require.NoError(t, err)
	assert.Equal(t, 64, got.Score)

	_, err = svc.GetAnalysis(context.Background(), "missing")
	requireAppError(t, err, errors.ErrCodeNotFound)
}

func TestAnalysisService_GetAnalysisForConversation(t *testing.T) {
	repo := &mocks.MockAnalysisRepository{}
	svc := services.NewAnalysisService(repo)

	repo.On("GetByConversation", mock.Anything, "conv-1").Return(&models.Analysis{ID: "an-1", ConversationID: "conv-1"}, nil)
	repo.On("GetByConversation", mock.Anything, "conv-2").Return(nil, nil)

	got, err := svc.GetAnalysisForConversation(context.Background(), "conv-1")
	require.NoError(t, err)
	assert.Equal(t, "an-1", got.ID)

	_, err = svc.GetAnalysisForConversation(context.Background(), "conv-2")
	requireAppError(t, err, errors.ErrCodeNotFound)
}

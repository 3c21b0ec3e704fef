package services

import (
	"context"
	"strings"

	"github.com/vytor/kaiwa/internal/errors"
	"github.com/vytor/kaiwa/internal/logger"
	"github.com/vytor/kaiwa/internal/models"
	"github.com/vytor/kaiwa/internal/repository"
)

// DefaultListLimit applies when a listing request carries no limit.
const DefaultListLimit = 20

// AnalysisService handles analysis-related business logic
type AnalysisService interface {
	ListAnalyses(ctx context.Context, userID string, limit int) ([]models.Analysis, error)
	GetAnalysis(ctx context.Context, id string) (*models.Analysis, error)
	GetAnalysisForConversation(ctx context.Context, conversationID string) (*models.Analysis, error)
}

type analysisService struct {
	analysisRepo repository.AnalysisRepository
}

// NewAnalysisService creates a new AnalysisService
func NewAnalysisService(analysisRepo repository.AnalysisRepository) AnalysisService {
	return &analysisService{analysisRepo: analysisRepo}
}

func (s *analysisService) ListAnalyses(ctx context.Context, userID string, limit int) ([]models.Analysis, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing analyses: user_id=%s, limit=%d", userID, limit)

	if strings.TrimSpace(userID) == "" {
		return nil, errors.NewValidationError("userId", "is required")
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}

	analyses, err := s.analysisRepo.List(ctx, models.AnalysisFilter{UserID: userID, Limit: limit})
	if err != nil {
		log.Error("failed to list analyses: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return analyses, nil
}

func (s *analysisService) GetAnalysis(ctx context.Context, id string) (*models.Analysis, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting analysis: id=%s", id)

	analysis, err := s.analysisRepo.Get(ctx, id)
	if err != nil {
		log.Error("failed to get analysis: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if analysis == nil {
		return nil, errors.NewNotFoundError("analysis", id)
	}
	return analysis, nil
}

func (s *analysisService) GetAnalysisForConversation(ctx context.Context, conversationID string) (*models.Analysis, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting analysis for conversation: conversation_id=%s", conversationID)

	analysis, err := s.analysisRepo.GetByConversation(ctx, conversationID)
	if err != nil {
		log.Error("failed to get analysis for conversation: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if analysis == nil {
		return nil, errors.NewNotFoundError("analysis for conversation", conversationID)
	}
	return analysis, nil
}

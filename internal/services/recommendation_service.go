package services

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/vytor/kaiwa/internal/errors"
	"github.com/vytor/kaiwa/internal/logger"
	"github.com/vytor/kaiwa/internal/models"
	"github.com/vytor/kaiwa/internal/recommend"
	"github.com/vytor/kaiwa/internal/repository"
)

// RecommendationService builds personalised practice suggestions from a
// learner's history.
type RecommendationService interface {
	GetRecommendationsForUser(ctx context.Context, userID string) (*models.RecommendationBundle, error)
}

type recommendationService struct {
	analysisRepo     repository.AnalysisRepository
	conversationRepo repository.ConversationRepository
}

// NewRecommendationService creates a new RecommendationService
func NewRecommendationService(analysisRepo repository.AnalysisRepository, conversationRepo repository.ConversationRepository) RecommendationService {
	return &recommendationService{
		analysisRepo:     analysisRepo,
		conversationRepo: conversationRepo,
	}
}

func (s *recommendationService) GetRecommendationsForUser(ctx context.Context, userID string) (*models.RecommendationBundle, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting recommendations: user_id=%s", userID)

	if strings.TrimSpace(userID) == "" {
		return nil, errors.NewValidationError("userId", "is required")
	}

	var (
		analyses      []models.Analysis
		conversations []models.Conversation
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		analyses, err = s.analysisRepo.List(gctx, models.AnalysisFilter{UserID: userID, Limit: recommend.FetchLimit})
		return err
	})
	g.Go(func() error {
		var err error
		conversations, err = s.conversationRepo.List(gctx, models.ConversationFilter{UserID: userID, Limit: recommend.FetchLimit})
		return err
	})
	if err := g.Wait(); err != nil {
		log.Error("failed to load history for recommendations: %v", err)
		return nil, errors.NewInternalError(err)
	}

	bundle := recommend.Build(analyses, conversations)
	log.Info("built recommendations: user_id=%s, count=%d, sessions=%d", userID, len(bundle.Recommendations), bundle.Stats.TotalSessions)
	return &bundle, nil
}

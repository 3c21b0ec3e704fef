package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vytor/kaiwa/internal/ai"
	"github.com/vytor/kaiwa/internal/errors"
	"github.com/vytor/kaiwa/internal/logger"
	"github.com/vytor/kaiwa/internal/models"
	"github.com/vytor/kaiwa/internal/repository"
	"github.com/vytor/kaiwa/internal/scenario"
)

// AnonymousUserID owns sessions started without a user.
const AnonymousUserID = "anonymous"

type StartConversationInput struct {
	UserID     string          `json:"userId"`
	Scenario   models.Scenario `json:"scenario"`
	Difficulty int             `json:"difficulty"`
}

type StartConversationResult struct {
	SessionID          string         `json:"sessionId"`
	InitialMessage     models.Message `json:"initialMessage"`
	SuggestedResponses []string       `json:"suggestedResponses"`
}

type SendMessageResult struct {
	UserMessage      models.Message `json:"userMessage"`
	AssistantMessage models.Message `json:"assistantMessage"`
}

// EndConversationResult describes a finished session. AnalysisID is nil when
// the learner never spoke, in which case Message explains why.
type EndConversationResult struct {
	SessionID  string  `json:"sessionId"`
	AnalysisID *string `json:"analysisId"`
	Score      int     `json:"score"`
	ErrorCount int     `json:"errorCount"`
	Message    string  `json:"message,omitempty"`
}

// ConversationService runs practice sessions.
type ConversationService interface {
	Start(ctx context.Context, in StartConversationInput) (*StartConversationResult, error)
	SendMessage(ctx context.Context, sessionID, content string) (*SendMessageResult, error)
	End(ctx context.Context, sessionID, locale string) (*EndConversationResult, error)
	GetConversation(ctx context.Context, id string) (*models.Conversation, error)
	ListConversations(ctx context.Context, filter models.ConversationFilter) ([]models.Conversation, error)
	// AbandonStale closes active conversations started before cutoff and
	// reports how many it closed.
	AbandonStale(ctx context.Context, cutoff time.Time) (int, error)
}

const abandonBatchSize = 100

type conversationService struct {
	conversationRepo repository.ConversationRepository
	analysisRepo     repository.AnalysisRepository
	tutor            ai.Tutor
	now              func() time.Time
}

// NewConversationService creates a new ConversationService
func NewConversationService(conversationRepo repository.ConversationRepository, analysisRepo repository.AnalysisRepository, tutor ai.Tutor) ConversationService {
	return &conversationService{
		conversationRepo: conversationRepo,
		analysisRepo:     analysisRepo,
		tutor:            tutor,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

func messageID(t time.Time) string {
	return fmt.Sprintf("msg-%d", t.UnixMilli())
}

func (s *conversationService) Start(ctx context.Context, in StartConversationInput) (*StartConversationResult, error) {
	log := logger.FromContext(ctx)
	log.Debug("starting conversation: user_id=%s, scenario=%s, difficulty=%d", in.UserID, in.Scenario, in.Difficulty)

	cfg, ok := scenario.Lookup(in.Scenario)
	if !ok {
		return nil, errors.NewValidationError("scenario", "Invalid scenario")
	}
	if in.Difficulty < models.MinDifficulty || in.Difficulty > models.MaxDifficulty {
		return nil, errors.NewValidationError("difficulty", "Difficulty must be between 1 and 5")
	}

	userID := strings.TrimSpace(in.UserID)
	if userID == "" {
		userID = AnonymousUserID
	}

	now := s.now()
	initial := models.Message{
		ID:        messageID(now),
		Role:      models.RoleAssistant,
		Content:   cfg.InitialMessage,
		Timestamp: now,
	}

	conv := models.Conversation{
		ID:         uuid.NewString(),
		UserID:     userID,
		Scenario:   in.Scenario,
		Difficulty: in.Difficulty,
		Messages:   []models.Message{initial},
		Status:     models.StatusActive,
		StartedAt:  now,
	}
	if err := s.conversationRepo.Create(ctx, conv); err != nil {
		log.Error("failed to create conversation: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.Info("conversation started: id=%s, user_id=%s, scenario=%s", conv.ID, userID, in.Scenario)
	return &StartConversationResult{
		SessionID:          conv.ID,
		InitialMessage:     initial,
		SuggestedResponses: cfg.SuggestedResponses,
	}, nil
}

func (s *conversationService) SendMessage(ctx context.Context, sessionID, content string) (*SendMessageResult, error) {
	log := logger.FromContext(ctx)
	log.Debug("sending message: session_id=%s", sessionID)

	if sessionID == "" {
		return nil, errors.NewValidationError("sessionId", "Session ID is required")
	}
	if strings.TrimSpace(content) == "" {
		return nil, errors.NewValidationError("content", "Message content is required")
	}

	conv, err := s.loadConversation(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if conv.Status != models.StatusActive {
		return nil, errors.NewValidationError("sessionId", "Conversation is not active")
	}

	cfg, ok := scenario.Lookup(conv.Scenario)
	if !ok {
		return nil, errors.NewInternalError(fmt.Errorf("conversation %s has unknown scenario %q", conv.ID, conv.Scenario))
	}

	now := s.now()
	userMsg := models.Message{
		ID:        messageID(now),
		Role:      models.RoleUser,
		Content:   content,
		Timestamp: now,
	}

	history := make([]models.Message, 0, len(conv.Messages)+1)
	history = append(history, conv.Messages...)
	history = append(history, userMsg)

	reply, err := s.tutor.Reply(ctx, scenario.DifficultyPrompt(cfg.SystemPrompt, conv.Difficulty), history)
	if err != nil {
		log.Error("failed to get tutor reply: session_id=%s, err=%v", sessionID, err)
		return nil, mapAIError(err)
	}

	replyAt := now.Add(time.Millisecond)
	assistantMsg := models.Message{
		ID:        messageID(replyAt),
		Role:      models.RoleAssistant,
		Content:   reply,
		Timestamp: replyAt,
	}

	if err := s.conversationRepo.AppendMessages(ctx, sessionID, userMsg, assistantMsg); err != nil {
		log.Error("failed to append messages: session_id=%s, err=%v", sessionID, err)
		return nil, errors.NewInternalError(err)
	}

	return &SendMessageResult{UserMessage: userMsg, AssistantMessage: assistantMsg}, nil
}

func (s *conversationService) End(ctx context.Context, sessionID, locale string) (*EndConversationResult, error) {
	log := logger.FromContext(ctx)
	log.Debug("ending conversation: session_id=%s", sessionID)

	if sessionID == "" {
		return nil, errors.NewValidationError("sessionId", "Session ID is required")
	}

	conv, err := s.loadConversation(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if conv.Status != models.StatusActive {
		return nil, errors.NewValidationError("sessionId", "Conversation is already ended")
	}

	endedAt := s.now()
	if err := s.conversationRepo.UpdateStatus(ctx, sessionID, models.StatusCompleted, &endedAt); err != nil {
		log.Error("failed to complete conversation: session_id=%s, err=%v", sessionID, err)
		return nil, errors.NewInternalError(err)
	}

	if conv.UserMessageCount() == 0 {
		log.Info("conversation ended without learner turns: session_id=%s", sessionID)
		return &EndConversationResult{SessionID: sessionID, Message: "No user messages to analyze"}, nil
	}

	if locale == "" {
		locale = ai.DefaultLocale
	}

	result, err := s.tutor.Analyze(ctx, ai.AnalysisInput{
		Scenario:   conv.Scenario,
		Difficulty: conv.Difficulty,
		Messages:   conv.Messages,
		Locale:     locale,
	})
	if err != nil {
		log.Error("failed to analyze conversation: session_id=%s, err=%v", sessionID, err)
		return nil, mapAIError(err)
	}

	convErrors := make([]models.ConversationError, len(result.Errors))
	for i, e := range result.Errors {
		e.ID = fmt.Sprintf("error-%d", i)
		convErrors[i] = e
	}

	analysis := models.Analysis{
		ID:             uuid.NewString(),
		UserID:         conv.UserID,
		ConversationID: conv.ID,
		Score:          result.Score,
		Errors:         convErrors,
		Suggestions:    result.Suggestions,
		CreatedAt:      s.now(),
	}
	if err := s.analysisRepo.Create(ctx, analysis); err != nil {
		log.Error("failed to save analysis: session_id=%s, err=%v", sessionID, err)
		return nil, errors.NewInternalError(err)
	}

	log.Info("conversation analyzed: session_id=%s, analysis_id=%s, score=%d, errors=%d", sessionID, analysis.ID, analysis.Score, len(convErrors))
	return &EndConversationResult{
		SessionID:  sessionID,
		AnalysisID: &analysis.ID,
		Score:      analysis.Score,
		ErrorCount: len(convErrors),
	}, nil
}

func (s *conversationService) GetConversation(ctx context.Context, id string) (*models.Conversation, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting conversation: id=%s", id)

	return s.loadConversation(ctx, id)
}

func (s *conversationService) ListConversations(ctx context.Context, filter models.ConversationFilter) ([]models.Conversation, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing conversations: user_id=%s, status=%s, limit=%d", filter.UserID, filter.Status, filter.Limit)

	if strings.TrimSpace(filter.UserID) == "" {
		return nil, errors.NewValidationError("userId", "is required")
	}

	convs, err := s.conversationRepo.List(ctx, filter)
	if err != nil {
		log.Error("failed to list conversations: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return convs, nil
}

func (s *conversationService) AbandonStale(ctx context.Context, cutoff time.Time) (int, error) {
	log := logger.FromContext(ctx)
	log.Debug("abandoning stale conversations: cutoff=%s", cutoff.Format(time.RFC3339))

	closed := 0
	for {
		stale, err := s.conversationRepo.List(ctx, models.ConversationFilter{
			Status:        models.StatusActive,
			StartedBefore: &cutoff,
			Limit:         abandonBatchSize,
		})
		if err != nil {
			log.Error("failed to list stale conversations: %v", err)
			return closed, errors.NewInternalError(err)
		}

		for _, c := range stale {
			endedAt := s.now()
			if err := s.conversationRepo.UpdateStatus(ctx, c.ID, models.StatusAbandoned, &endedAt); err != nil {
				log.Error("failed to abandon conversation: id=%s, err=%v", c.ID, err)
				return closed, errors.NewInternalError(err)
			}
			closed++
		}

		if len(stale) < abandonBatchSize {
			break
		}
	}

	if closed > 0 {
		log.Info("abandoned %d stale conversations", closed)
	}
	return closed, nil
}

func (s *conversationService) loadConversation(ctx context.Context, id string) (*models.Conversation, error) {
	conv, err := s.conversationRepo.Get(ctx, id)
	if err != nil {
		logger.FromContext(ctx).Error("failed to get conversation: id=%s, err=%v", id, err)
		return nil, errors.NewInternalError(err)
	}
	if conv == nil {
		return nil, errors.NewNotFoundError("conversation", id)
	}
	return conv, nil
}

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
)

// GenerateMaterialInput selects the mistake to study. Either AnalysisID with
// ErrorIndex names a stored mistake, or ErrorType, Original and Correction
// describe one directly.
type GenerateMaterialInput struct {
	AnalysisID  string           `json:"analysisId"`
	ErrorIndex  *int             `json:"errorIndex"`
	ErrorType   models.ErrorType `json:"errorType"`
	Original    string           `json:"original"`
	Correction  string           `json:"correction"`
	Explanation string           `json:"explanation"`
	Language    string           `json:"language"`
}

// GenerateMaterialResult carries the full Material only when it was not
// persisted.
type GenerateMaterialResult struct {
	MaterialID   string           `json:"materialId"`
	GrammarPoint string           `json:"grammarPoint,omitempty"`
	Material     *models.Material `json:"material,omitempty"`
}

// MaterialService handles learning material business logic
type MaterialService interface {
	ListMaterials(ctx context.Context, userID string, limit int) ([]models.Material, error)
	GetMaterial(ctx context.Context, id string) (*models.Material, error)
	Generate(ctx context.Context, in GenerateMaterialInput) (*GenerateMaterialResult, error)
}

type materialService struct {
	materialRepo repository.MaterialRepository
	analysisRepo repository.AnalysisRepository
	tutor        ai.Tutor
	now          func() time.Time
}

// NewMaterialService creates a new MaterialService
func NewMaterialService(materialRepo repository.MaterialRepository, analysisRepo repository.AnalysisRepository, tutor ai.Tutor) MaterialService {
	return &materialService{
		materialRepo: materialRepo,
		analysisRepo: analysisRepo,
		tutor:        tutor,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (s *materialService) ListMaterials(ctx context.Context, userID string, limit int) ([]models.Material, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing materials: user_id=%s, limit=%d", userID, limit)

	if strings.TrimSpace(userID) == "" {
		return nil, errors.NewValidationError("userId", "is required")
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}

	materials, err := s.materialRepo.List(ctx, models.MaterialFilter{UserID: userID, Limit: limit})
	if err != nil {
		log.Error("failed to list materials: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return materials, nil
}

func (s *materialService) GetMaterial(ctx context.Context, id string) (*models.Material, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting material: id=%s", id)

	material, err := s.materialRepo.Get(ctx, id)
	if err != nil {
		log.Error("failed to get material: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if material == nil {
		return nil, errors.NewNotFoundError("material", id)
	}
	return material, nil
}

func (s *materialService) Generate(ctx context.Context, in GenerateMaterialInput) (*GenerateMaterialResult, error) {
	log := logger.FromContext(ctx)
	log.Debug("generating material: analysis_id=%s, error_type=%s", in.AnalysisID, in.ErrorType)

	var (
		mistake models.ConversationError
		userID  = AnonymousUserID
		persist bool
	)

	switch {
	case in.AnalysisID != "" && in.ErrorIndex != nil:
		analysis, err := s.analysisRepo.Get(ctx, in.AnalysisID)
		if err != nil {
			log.Error("failed to get analysis: %v", err)
			return nil, errors.NewInternalError(err)
		}
		if analysis == nil {
			return nil, errors.NewNotFoundError("analysis", in.AnalysisID)
		}
		idx := *in.ErrorIndex
		if idx < 0 || idx >= len(analysis.Errors) {
			return nil, errors.NewNotFoundError("error at index", idx)
		}
		mistake = analysis.Errors[idx]
		userID = analysis.UserID
		persist = true
	case in.ErrorType != "" && in.Original != "" && in.Correction != "":
		if !in.ErrorType.Valid() {
			return nil, errors.NewValidationError("errorType", fmt.Sprintf("unknown error type %q", in.ErrorType))
		}
		mistake = models.ConversationError{
			Type:        in.ErrorType,
			Original:    in.Original,
			Correction:  in.Correction,
			Explanation: in.Explanation,
		}
	default:
		return nil, errors.NewValidationError("request", "Either analysisId+errorIndex or error details (errorType, original, correction) are required")
	}

	locale := in.Language
	if locale == "" {
		locale = ai.DefaultLocale
	}

	content, err := s.tutor.GenerateMaterial(ctx, ai.MaterialInput{
		ErrorType:   mistake.Type,
		Original:    mistake.Original,
		Correction:  mistake.Correction,
		Explanation: mistake.Explanation,
		Locale:      locale,
	})
	if err != nil {
		log.Error("failed to generate material: %v", err)
		return nil, mapAIError(err)
	}

	exercises := make([]models.Exercise, len(content.Exercises))
	for i, ex := range content.Exercises {
		ex.ID = fmt.Sprintf("exercise-%d", i)
		exercises[i] = ex
	}

	now := s.now()
	material := models.Material{
		UserID:       userID,
		ErrorType:    mistake.Type,
		GrammarPoint: content.GrammarPoint,
		Explanation:  content.Explanation,
		Examples:     content.Examples,
		Exercises:    exercises,
		CreatedAt:    now,
	}

	if !persist {
		material.ID = fmt.Sprintf("temp-%d", now.UnixMilli())
		log.Info("generated unsaved material: id=%s, error_type=%s", material.ID, material.ErrorType)
		return &GenerateMaterialResult{MaterialID: material.ID, Material: &material}, nil
	}

	material.ID = uuid.NewString()
	material.AnalysisID = in.AnalysisID
	if err := s.materialRepo.Create(ctx, material); err != nil {
		log.Error("failed to save material: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.Info("material generated: id=%s, analysis_id=%s, grammar_point=%s", material.ID, in.AnalysisID, material.GrammarPoint)
	return &GenerateMaterialResult{MaterialID: material.ID, GrammarPoint: material.GrammarPoint}, nil
}

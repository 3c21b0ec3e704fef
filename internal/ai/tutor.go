package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/vytor/kaiwa/internal/logger"
	"github.com/vytor/kaiwa/internal/models"
)

// Tutor is the model-backed side of a practice session.
type Tutor interface {
	// Reply continues the conversation as the scenario character.
	Reply(ctx context.Context, systemPrompt string, history []models.Message) (string, error)
	// Analyze scores the learner's side of a finished conversation.
	Analyze(ctx context.Context, in AnalysisInput) (*AnalysisResult, error)
	// GenerateMaterial writes study material for one mistake.
	GenerateMaterial(ctx context.Context, in MaterialInput) (*MaterialResult, error)
}

type AnalysisInput struct {
	Scenario   models.Scenario
	Difficulty int
	Messages   []models.Message
	Locale     string
}

type AnalysisResult struct {
	Score       int                        `json:"score"`
	Errors      []models.ConversationError `json:"errors"`
	Suggestions []string                   `json:"suggestions"`
}

// UnmarshalJSON accepts scores written as floats, such as 85.0.
func (r *AnalysisResult) UnmarshalJSON(data []byte) error {
	type plain AnalysisResult
	aux := struct {
		*plain
		Score float64 `json:"score"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.Score = int(math.Round(aux.Score))
	return nil
}

type MaterialInput struct {
	ErrorType   models.ErrorType
	Original    string
	Correction  string
	Explanation string
	Locale      string
}

type MaterialResult struct {
	GrammarPoint string            `json:"grammarPoint"`
	Explanation  string            `json:"explanation"`
	Examples     []string          `json:"examples"`
	Exercises    []models.Exercise `json:"exercises"`
}

type tutor struct {
	provider Provider
	timeout  time.Duration
}

// NewTutor builds a Tutor on p. Each call is bounded by timeout when it is
// positive.
func NewTutor(p Provider, timeout time.Duration) Tutor {
	return &tutor{provider: p, timeout: timeout}
}

func (t *tutor) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if t.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, t.timeout)
}

func (t *tutor) Reply(ctx context.Context, systemPrompt string, history []models.Message) (string, error) {
	log := logger.FromContext(ctx).WithPrefix("tutor")
	ctx, cancel := t.withTimeout(ctx)
	defer cancel()

	msgs := make([]Message, 0, len(history))
	for _, m := range history {
		role := RoleUser
		if m.Role == models.RoleAssistant {
			role = RoleModel
		}
		msgs = append(msgs, Message{Role: role, Content: m.Content})
	}

	start := time.Now()
	resp, err := t.provider.Generate(ctx, Request{System: systemPrompt, Messages: msgs, Temperature: 0.7})
	if err != nil {
		log.Error("chat reply failed: %v", err)
		return "", err
	}
	log.Debug("chat reply in %s: model=%s, tokens=%d", time.Since(start), resp.Model, resp.Usage.TotalTokens)
	return strings.TrimSpace(resp.Text), nil
}

func (t *tutor) Analyze(ctx context.Context, in AnalysisInput) (*AnalysisResult, error) {
	log := logger.FromContext(ctx).WithPrefix("tutor")
	log.Debug("analyzing conversation: scenario=%s, difficulty=%d, messages=%d", in.Scenario, in.Difficulty, len(in.Messages))

	var out AnalysisResult
	if err := t.generateJSON(ctx, analysisPrompt(in), analysisSchema, &out); err != nil {
		log.Error("analysis failed: %v", err)
		return nil, err
	}
	out.Score = min(max(out.Score, 0), 100)
	if out.Errors == nil {
		out.Errors = []models.ConversationError{}
	}
	if out.Suggestions == nil {
		out.Suggestions = []string{}
	}
	log.Info("analysis complete: score=%d, errors=%d", out.Score, len(out.Errors))
	return &out, nil
}

func (t *tutor) GenerateMaterial(ctx context.Context, in MaterialInput) (*MaterialResult, error) {
	log := logger.FromContext(ctx).WithPrefix("tutor")
	log.Debug("generating material: error_type=%s", in.ErrorType)

	var out MaterialResult
	if err := t.generateJSON(ctx, materialPrompt(in), materialSchema, &out); err != nil {
		log.Error("material generation failed: %v", err)
		return nil, err
	}
	for i, ex := range out.Exercises {
		if ex.CorrectIndex >= len(ex.Options) {
			return nil, &ErrInvalidResponse{Err: fmt.Errorf("exercise %d: correct index %d out of range", i, ex.CorrectIndex)}
		}
	}
	return &out, nil
}

func (t *tutor) generateJSON(ctx context.Context, prompt string, schema *Schema, dst any) error {
	ctx, cancel := t.withTimeout(ctx)
	defer cancel()

	resp, err := t.provider.Generate(ctx, Request{
		Messages: []Message{{Role: RoleUser, Content: prompt}},
		Schema:   schema,
	})
	if err != nil {
		return err
	}
	if err := json.Unmarshal(resp.Content, dst); err != nil {
		return &ErrInvalidResponse{Content: resp.Content, Err: err}
	}
	return nil
}

// IsRateLimited reports whether err came from provider throttling.
func IsRateLimited(err error) bool {
	var rl *ErrRateLimit
	return errors.As(err, &rl)
}

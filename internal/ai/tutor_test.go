package ai_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/kaiwa/internal/ai"
	"github.com/vytor/kaiwa/internal/models"
)

func TestTutor_Reply(t *testing.T) {
	mock := ai.NewMockProvider(ai.MockResponse{Text: "  かしこまりました。 \n"})
	tutor := ai.NewTutor(mock, time.Second)

	reply, err := tutor.Reply(context.Background(), "You are staff.", []models.Message{
		{Role: models.RoleAssistant, Content: "いらっしゃいませ！"},
		{Role: models.RoleUser, Content: "一人です"},
	})

	require.NoError(t, err)
	assert.Equal(t, "かしこまりました。", reply)
	require.Len(t, mock.Calls, 1)
	call := mock.Calls[0]
	assert.Equal(t, "You are staff.", call.System)
	assert.Nil(t, call.Schema)
	assert.Equal(t, []ai.Message{
		{Role: ai.RoleModel, Content: "いらっしゃいませ！"},
		{Role: ai.RoleUser, Content: "一人です"},
	}, call.Messages)
}

func TestTutor_ReplyEmpty(t *testing.T) {
	tutor := ai.NewTutor(ai.NewMockProvider(ai.MockResponse{Text: ""}), 0)

	_, err := tutor.Reply(context.Background(), "sys", nil)

	var invalid *ai.ErrInvalidResponse
	assert.ErrorAs(t, err, &invalid)
}

func TestTutor_Analyze(t *testing.T) {
	mock := ai.NewMockProvider(ai.MockResponse{Text: "```json\n" + `{
		"score": 72,
		"errors": [{"type": "politeness", "original": "水をくれ", "correction": "お水をください", "explanation": "更礼貌"}],
		"suggestions": ["多使用敬语"]
	}` + "\n```"})
	tutor := ai.NewTutor(mock, time.Second)

	res, err := tutor.Analyze(context.Background(), ai.AnalysisInput{
		Scenario:   models.ScenarioRestaurant,
		Difficulty: 2,
		Messages: []models.Message{
			{Role: models.RoleAssistant, Content: "いらっしゃいませ"},
			{Role: models.RoleUser, Content: "水をくれ"},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 72, res.Score)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, models.ErrorPoliteness, res.Errors[0].Type)
	assert.Equal(t, []string{"多使用敬语"}, res.Suggestions)

	prompt := mock.Calls[0].Messages[0].Content
	assert.Contains(t, prompt, "Scenario: restaurant")
	assert.Contains(t, prompt, "Difficulty Level: 2/5")
	assert.Contains(t, prompt, "AI: いらっしゃいませ\nUser: 水をくれ")
	assert.Contains(t, prompt, "Chinese (简体中文)", "default locale")
	assert.NotNil(t, mock.Calls[0].Schema)
}

func TestTutor_AnalyzeLocale(t *testing.T) {
	mock := ai.NewMockProvider(ai.MockResponse{Text: `{"score":100,"errors":[],"suggestions":[]}`})

	res, err := ai.NewTutor(mock, 0).Analyze(context.Background(), ai.AnalysisInput{Locale: "en"})

	require.NoError(t, err)
	assert.Empty(t, res.Errors)
	assert.Contains(t, mock.Calls[0].Messages[0].Content, "MUST be written in English")
}

func TestTutor_AnalyzeFloatScore(t *testing.T) {
	mock := ai.NewMockProvider(ai.MockResponse{Text: `{"score":85.0,"errors":[],"suggestions":["続けましょう"]}`})

	res, err := ai.NewTutor(mock, 0).Analyze(context.Background(), ai.AnalysisInput{})

	require.NoError(t, err)
	assert.Equal(t, 85, res.Score)
	assert.Equal(t, []string{"続けましょう"}, res.Suggestions)
	assert.Equal(t, 1, mock.CallCount())
}

func TestTutor_AnalyzeRejectsSchemaViolation(t *testing.T) {
	mock := ai.NewMockProvider(ai.MockResponse{Text: `{"score":"high"}`})

	_, err := ai.NewTutor(mock, 0).Analyze(context.Background(), ai.AnalysisInput{})

	var invalid *ai.ErrInvalidResponse
	assert.ErrorAs(t, err, &invalid)
}

func TestTutor_GenerateMaterial(t *testing.T) {
	mock := ai.NewMockProvider(ai.MockResponse{Text: `{
		"grammarPoint": "〜をください",
		"explanation": "Polite request form.",
		"examples": ["水をください", "メニューをください", "これをください"],
		"exercises": [{"question": "水＿ください", "options": ["を", "が", "に", "で"], "correctIndex": 0}]
	}`})

	res, err := ai.NewTutor(mock, time.Second).GenerateMaterial(context.Background(), ai.MaterialInput{
		ErrorType:  models.ErrorPoliteness,
		Original:   "水をくれ",
		Correction: "水をください",
		Locale:     "ja",
	})

	require.NoError(t, err)
	assert.Equal(t, "〜をください", res.GrammarPoint)
	assert.Len(t, res.Examples, 3)
	require.Len(t, res.Exercises, 1)
	assert.Equal(t, 0, res.Exercises[0].CorrectIndex)

	prompt := mock.Calls[0].Messages[0].Content
	assert.Contains(t, prompt, "- Type: politeness")
	assert.Contains(t, prompt, "- Original (incorrect): 水をくれ")
	assert.Contains(t, prompt, "learning material in Japanese")
}

func TestTutor_GenerateMaterialBadCorrectIndex(t *testing.T) {
	mock := ai.NewMockProvider(ai.MockResponse{Text: `{
		"grammarPoint": "g", "explanation": "e", "examples": [],
		"exercises": [{"question": "q", "options": ["a", "b"], "correctIndex": 4}]
	}`})

	_, err := ai.NewTutor(mock, 0).GenerateMaterial(context.Background(), ai.MaterialInput{ErrorType: models.ErrorGrammar})

	var invalid *ai.ErrInvalidResponse
	assert.ErrorAs(t, err, &invalid)
}

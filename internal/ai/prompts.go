package ai

import (
	"fmt"
	"strings"

	"github.com/vytor/kaiwa/internal/models"
)

const DefaultLocale = "zh"

var analysisLanguages = map[string]string{
	"zh": "Chinese (简体中文)",
	"ja": "Japanese (日本語)",
	"en": "English",
}

var materialLanguages = map[string]string{
	"zh": "Chinese",
	"ja": "Japanese",
	"en": "English",
}

func languageFor(table map[string]string, locale string) string {
	if l, ok := table[locale]; ok {
		return l
	}
	return table[DefaultLocale]
}

func errorTypeEnum() []any {
	out := make([]any, 0, len(models.ErrorTypes))
	for _, t := range models.ErrorTypes {
		out = append(out, string(t))
	}
	return out
}

var analysisSchema = &Schema{
	Name: "conversation-analysis",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"score": map[string]any{"type": "integer", "minimum": 0, "maximum": 100},
			"errors": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"type":        map[string]any{"type": "string", "enum": errorTypeEnum()},
						"original":    map[string]any{"type": "string"},
						"correction":  map[string]any{"type": "string"},
						"explanation": map[string]any{"type": "string"},
					},
					"required": []any{"type", "original", "correction", "explanation"},
				},
			},
			"suggestions": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		},
		"required": []any{"score", "errors", "suggestions"},
	},
}

var materialSchema = &Schema{
	Name: "learning-material",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"grammarPoint": map[string]any{"type": "string"},
			"explanation":  map[string]any{"type": "string"},
			"examples":     map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"exercises": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question":     map[string]any{"type": "string"},
						"options":      map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
						"correctIndex": map[string]any{"type": "integer", "minimum": 0},
					},
					"required": []any{"question", "options", "correctIndex"},
				},
			},
		},
		"required": []any{"grammarPoint", "explanation", "examples", "exercises"},
	},
}

func transcript(msgs []models.Message) string {
	lines := make([]string, 0, len(msgs))
	for _, m := range msgs {
		speaker := "AI"
		if m.Role == models.RoleUser {
			speaker = "User"
		}
		lines = append(lines, fmt.Sprintf("%s: %s", speaker, m.Content))
	}
	return strings.Join(lines, "\n")
}

func analysisPrompt(in AnalysisInput) string {
	lang := languageFor(analysisLanguages, in.Locale)
	return fmt.Sprintf(`Analyze this Japanese conversation practice session.
Scenario: %s
Difficulty Level: %d/5

Conversation:
%s

Please analyze the user's responses and provide:
1. An overall score (0-100)
2. A list of errors found (grammar, vocabulary, word order, politeness issues)
3. Improvement suggestions

IMPORTANT: All explanations and suggestions MUST be written in %s.

Respond in JSON format:
{
  "score": number,
  "errors": [
    {
      "type": "grammar" | "vocabulary" | "wordOrder" | "politeness",
      "original": "what the user said (keep in Japanese)",
      "correction": "correct version (keep in Japanese)",
      "explanation": "explanation in %s"
    }
  ],
  "suggestions": ["suggestion in %s", "suggestion in %s"]
}
`, in.Scenario, in.Difficulty, transcript(in.Messages), lang, lang, lang, lang)
}

func materialPrompt(in MaterialInput) string {
	return fmt.Sprintf(`Generate learning material for a Japanese language learner.

Error Information:
- Type: %s
- Original (incorrect): %s
- Correction: %s
- Explanation: %s

Please create learning material in %s that includes:
1. The grammar point or vocabulary being taught
2. A clear explanation
3. 3-5 example sentences
4. 3 multiple choice exercises

Respond in JSON format:
{
  "grammarPoint": "grammar point title",
  "explanation": "detailed explanation",
  "examples": ["example 1", "example 2", "example 3"],
  "exercises": [
    {
      "question": "Fill in the blank: ___",
      "options": ["option a", "option b", "option c", "option d"],
      "correctIndex": 0
    }
  ]
}
`, in.ErrorType, in.Original, in.Correction, in.Explanation, languageFor(materialLanguages, in.Locale))
}

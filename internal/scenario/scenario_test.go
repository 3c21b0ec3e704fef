package scenario_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/kaiwa/internal/models"
	"github.com/vytor/kaiwa/internal/scenario"
)

func TestAll_CoversEveryScenarioInOrder(t *testing.T) {
	configs := scenario.All()
	require.Len(t, configs, len(models.Scenarios))

	for i, cfg := range configs {
		assert.Equal(t, models.Scenarios[i], cfg.ID)
		assert.NotEmpty(t, cfg.InitialMessage, cfg.ID)
		assert.Len(t, cfg.SuggestedResponses, 3, cfg.ID)
		assert.Contains(t, cfg.SystemPrompt, "Difficulty levels:\n1: ", cfg.ID)
		assert.Contains(t, cfg.SystemPrompt, "Keep responses concise", cfg.ID)
	}
}

func TestLookup(t *testing.T) {
	cfg, ok := scenario.Lookup(models.ScenarioRestaurant)
	require.True(t, ok)
	assert.Equal(t, "いらっしゃいませ！何名様でしょうか？", cfg.InitialMessage)
	assert.Equal(t, "practice.scenarios.restaurant.title", cfg.TitleKey)

	_, ok = scenario.Lookup(models.Scenario("spaceport"))
	assert.False(t, ok)
}

func TestDifficultyPrompt(t *testing.T) {
	got := scenario.DifficultyPrompt("base", 4)
	assert.Equal(t, "base\n\nCurrent difficulty level: 4/5\nPlease adjust your language complexity accordingly.", got)
}

package recommend

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/vytor/kaiwa/internal/models"
)

const (
	maxRecommendations = 3
	recentWindow       = 3
	fallbackScenario   = models.ScenarioRestaurant
	reasonKeyPrefix    = "dashboard.recommendations.reasons."
)

// scenariosFor lists, per error type, the scenarios that exercise it most.
var scenariosFor = map[models.ErrorType][]models.Scenario{
	models.ErrorGrammar:    {models.ScenarioIntroduction, models.ScenarioShopping, models.ScenarioDirections, models.ScenarioHotel},
	models.ErrorVocabulary: {models.ScenarioRestaurant, models.ScenarioShopping, models.ScenarioConvenience, models.ScenarioHospital},
	models.ErrorWordOrder:  {models.ScenarioIntroduction, models.ScenarioRestaurant, models.ScenarioBank, models.ScenarioStation},
	models.ErrorPoliteness: {models.ScenarioRestaurant, models.ScenarioIntroduction, models.ScenarioHotel, models.ScenarioBank},
}

// TargetScenarios returns the scenarios mapped to an error type.
func TargetScenarios(t models.ErrorType) []models.Scenario {
	return scenariosFor[t]
}

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// newID returns a fresh recommendation identifier. Identifiers are not
// stable across calls.
func newID() string {
	suffix := make([]byte, 7)
	for i := range suffix {
		suffix[i] = idAlphabet[rand.IntN(len(idAlphabet))]
	}
	return fmt.Sprintf("rec-%d-%s", time.Now().UnixMilli(), suffix)
}

// Generate builds up to three recommendations for the next practice session.
// It never returns an empty list.
func Generate(analyses []models.Analysis, conversations []models.Conversation) []models.Recommendation {
	weak := ErrorStats(analyses).WeakPoints

	window := conversations
	if len(window) > recentWindow {
		window = window[:recentWindow]
	}
	recent := make(map[models.Scenario]struct{}, len(window))
	for _, c := range window {
		recent[c.Scenario] = struct{}{}
	}

	last := 1
	if len(conversations) > 0 {
		last = conversations[0].Difficulty
	}
	difficulty := AdjustDifficulty(analyses, last)

	recs := make([]models.Recommendation, 0, maxRecommendations)
	build := func(s models.Scenario, reason, key string, p models.Priority, targets []models.ErrorType) models.Recommendation {
		return models.Recommendation{
			ID:               newID(),
			Scenario:         s,
			Difficulty:       difficulty,
			Reason:           reason,
			ReasonKey:        reasonKeyPrefix + key,
			Priority:         p,
			TargetWeakPoints: targets,
		}
	}

	if len(weak) > 0 {
		top := weak[0]
		for _, s := range scenariosFor[top.Type] {
			_, practiced := recent[s]
			// Once the window is full every candidate is fair game again.
			if !practiced || len(recent) >= recentWindow {
				recs = append(recs, build(s, fmt.Sprintf("Focus on %s improvement", top.Type),
					string(top.Type), models.PriorityHigh, []models.ErrorType{top.Type}))
				break
			}
		}

		if len(weak) > 1 && weak[1].Count > 0 {
			second := weak[1]
			for _, s := range scenariosFor[second.Type] {
				if containsScenario(recs, s) {
					continue
				}
				recs = append(recs, build(s, fmt.Sprintf("Practice %s", second.Type),
					string(second.Type), models.PriorityMedium, []models.ErrorType{second.Type}))
				break
			}
		}
	}

	if len(recs) == 0 {
		for _, s := range models.Scenarios {
			if _, practiced := recent[s]; practiced {
				continue
			}
			recs = append(recs, build(s, "Try a new scenario", "variety", models.PriorityMedium, []models.ErrorType{}))
			break
		}
	}

	if len(recs) == 0 {
		recs = append(recs, build(fallbackScenario, "Continue practicing", "continue", models.PriorityLow, []models.ErrorType{}))
	}

	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}
	return recs
}

func containsScenario(recs []models.Recommendation, s models.Scenario) bool {
	for _, r := range recs {
		if r.Scenario == s {
			return true
		}
	}
	return false
}

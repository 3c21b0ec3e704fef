package recommend

import "github.com/vytor/kaiwa/internal/models"

// FetchLimit is how many analyses and conversations Build expects per user.
const FetchLimit = 10

const recentSessionCount = 5

// RecentSessions joins each conversation with its analysis, if any. Output
// order and length match conversations.
func RecentSessions(conversations []models.Conversation, analyses []models.Analysis) []models.RecentSession {
	out := make([]models.RecentSession, 0, len(conversations))
	for _, c := range conversations {
		rs := models.RecentSession{
			ID:         c.ID,
			Scenario:   c.Scenario,
			Difficulty: c.Difficulty,
			StartedAt:  c.StartedAt,
			EndedAt:    c.EndedAt,
		}
		for _, a := range analyses {
			if a.ConversationID != c.ID {
				continue
			}
			id := a.ID
			rs.Score = a.Score
			rs.ErrorCount = len(a.Errors)
			rs.AnalysisID = &id
			break
		}
		out = append(out, rs)
	}
	return out
}

// Build assembles the full dashboard bundle from fetched history. Only
// completed conversations appear in the recent session list.
func Build(analyses []models.Analysis, conversations []models.Conversation) models.RecommendationBundle {
	completed := make([]models.Conversation, 0, recentSessionCount)
	for _, c := range conversations {
		if c.Status != models.StatusCompleted {
			continue
		}
		completed = append(completed, c)
		if len(completed) == recentSessionCount {
			break
		}
	}

	return models.RecommendationBundle{
		Recommendations: Generate(analyses, conversations),
		Stats:           Stats(analyses, conversations),
		RecentSessions:  RecentSessions(completed, analyses),
	}
}

package recommend

import "github.com/vytor/kaiwa/internal/models"

const recentScoreCount = 5

// Stats summarises a learner's history for the dashboard.
func Stats(analyses []models.Analysis, conversations []models.Conversation) models.RecommendationStats {
	summary := ErrorStats(analyses)

	n := min(len(analyses), recentScoreCount)
	scores := make([]models.ScorePoint, 0, n)
	for _, a := range analyses[:n] {
		sc := models.ScenarioRestaurant
		if c, ok := findConversation(conversations, a.ConversationID); ok && c.Scenario != "" {
			sc = c.Scenario
		}
		scores = append(scores, models.ScorePoint{
			SessionID: a.ConversationID,
			Score:     a.Score,
			Scenario:  sc,
			Date:      a.CreatedAt,
		})
	}

	completed := 0
	for _, c := range conversations {
		if c.Status == models.StatusCompleted {
			completed++
		}
	}

	return models.RecommendationStats{
		TotalSessions: completed,
		AverageScore:  AverageScore(analyses),
		WeakPoints:    summary.WeakPoints,
		StrongPoints:  summary.StrongPoints,
		RecentScores:  scores,
	}
}

func findConversation(conversations []models.Conversation, id string) (models.Conversation, bool) {
	for _, c := range conversations {
		if c.ID == id {
			return c, true
		}
	}
	return models.Conversation{}, false
}

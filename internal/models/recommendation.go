package models

import "time"

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

type Recommendation struct {
	ID               string      `json:"id"`
	Scenario         Scenario    `json:"scenario"`
	Difficulty       int         `json:"difficulty"`
	Reason           string      `json:"reason"`
	ReasonKey        string      `json:"reasonKey"`
	Priority         Priority    `json:"priority"`
	TargetWeakPoints []ErrorType `json:"targetWeakPoints"`
}

type ErrorStat struct {
	Type       ErrorType `json:"type"`
	Count      int       `json:"count"`
	Percentage int       `json:"percentage"`
}

type ScorePoint struct {
	SessionID string    `json:"sessionId"`
	Score     int       `json:"score"`
	Scenario  Scenario  `json:"scenario"`
	Date      time.Time `json:"date"`
}

type RecommendationStats struct {
	TotalSessions int          `json:"totalSessions"`
	AverageScore  int          `json:"averageScore"`
	WeakPoints    []ErrorStat  `json:"weakPoints"`
	StrongPoints  []ErrorStat  `json:"strongPoints"`
	RecentScores  []ScorePoint `json:"recentScores"`
}

type RecentSession struct {
	ID         string     `json:"id"`
	Scenario   Scenario   `json:"scenario"`
	Difficulty int        `json:"difficulty"`
	Score      int        `json:"score"`
	ErrorCount int        `json:"errorCount"`
	StartedAt  time.Time  `json:"startedAt"`
	EndedAt    *time.Time `json:"endedAt"`
	AnalysisID *string    `json:"analysisId"`
}

// RecommendationBundle is everything the dashboard needs in one response.
type RecommendationBundle struct {
	Recommendations []Recommendation    `json:"recommendations"`
	Stats           RecommendationStats `json:"stats"`
	RecentSessions  []RecentSession     `json:"recentSessions"`
}

package models

import "time"

type Exercise struct {
	ID           string   `json:"id"`
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
}

// Material is generated study content targeting one learner mistake.
type Material struct {
	ID           string     `json:"id"`
	UserID       string     `json:"userId"`
	AnalysisID   string     `json:"analysisId,omitempty"`
	ErrorType    ErrorType  `json:"errorType"`
	GrammarPoint string     `json:"grammarPoint"`
	Explanation  string     `json:"explanation"`
	Examples     []string   `json:"examples"`
	Exercises    []Exercise `json:"exercises"`
	CreatedAt    time.Time  `json:"createdAt"`
}

type MaterialFilter struct {
	UserID     string
	AnalysisID string
	Limit      int
	Offset     int
}

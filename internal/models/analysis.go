package models

import "time"

// ErrorType is the closed taxonomy of learner mistakes.
type ErrorType string

const (
	ErrorGrammar    ErrorType = "grammar"
	ErrorVocabulary ErrorType = "vocabulary"
	ErrorWordOrder  ErrorType = "wordOrder"
	ErrorPoliteness ErrorType = "politeness"
)

// ErrorTypes lists the taxonomy in canonical order.
var ErrorTypes = []ErrorType{ErrorGrammar, ErrorVocabulary, ErrorWordOrder, ErrorPoliteness}

// Valid reports whether t belongs to the taxonomy.
func (t ErrorType) Valid() bool {
	switch t {
	case ErrorGrammar, ErrorVocabulary, ErrorWordOrder, ErrorPoliteness:
		return true
	}
	return false
}

type ConversationError struct {
	ID          string    `json:"id"`
	Type        ErrorType `json:"type"`
	Original    string    `json:"original"`
	Correction  string    `json:"correction"`
	Explanation string    `json:"explanation"`
}

// Analysis is the scored evaluation of one completed conversation.
type Analysis struct {
	ID             string              `json:"id"`
	UserID         string              `json:"userId"`
	ConversationID string              `json:"conversationId"`
	Score          int                 `json:"score"`
	Errors         []ConversationError `json:"errors"`
	Suggestions    []string            `json:"suggestions"`
	CreatedAt      time.Time           `json:"createdAt"`
}

type AnalysisFilter struct {
	UserID string
	Limit  int
	Offset int
}

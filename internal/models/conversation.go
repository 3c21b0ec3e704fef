package models

import "time"

// Scenario is a named conversational context drawn from a fixed set.
type Scenario string

const (
	ScenarioRestaurant   Scenario = "restaurant"
	ScenarioShopping     Scenario = "shopping"
	ScenarioIntroduction Scenario = "introduction"
	ScenarioStation      Scenario = "station"
	ScenarioHotel        Scenario = "hotel"
	ScenarioHospital     Scenario = "hospital"
	ScenarioBank         Scenario = "bank"
	ScenarioConvenience  Scenario = "convenience"
	ScenarioDirections   Scenario = "directions"
)

// Scenarios lists every scenario in canonical order.
var Scenarios = []Scenario{
	ScenarioRestaurant,
	ScenarioShopping,
	ScenarioIntroduction,
	ScenarioStation,
	ScenarioHotel,
	ScenarioHospital,
	ScenarioBank,
	ScenarioConvenience,
	ScenarioDirections,
}

// Valid reports whether s is one of the known scenarios.
func (s Scenario) Valid() bool {
	switch s {
	case ScenarioRestaurant, ScenarioShopping, ScenarioIntroduction, ScenarioStation,
		ScenarioHotel, ScenarioHospital, ScenarioBank, ScenarioConvenience, ScenarioDirections:
		return true
	}
	return false
}

const (
	MinDifficulty = 1
	MaxDifficulty = 5
)

type ConversationStatus string

const (
	StatusActive    ConversationStatus = "active"
	StatusCompleted ConversationStatus = "completed"
	StatusAbandoned ConversationStatus = "abandoned"
)

type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

type Message struct {
	ID        string      `json:"id,omitempty"`
	Role      MessageRole `json:"role"`
	Content   string      `json:"content"`
	Timestamp time.Time   `json:"timestamp"`
}

// Conversation is one practice session.
type Conversation struct {
	ID         string             `json:"id"`
	UserID     string             `json:"userId"`
	Scenario   Scenario           `json:"scenario"`
	Difficulty int                `json:"difficulty"`
	Messages   []Message          `json:"messages"`
	Status     ConversationStatus `json:"status"`
	StartedAt  time.Time          `json:"startedAt"`
	EndedAt    *time.Time         `json:"endedAt"`
}

// UserMessageCount returns how many turns the learner took.
func (c Conversation) UserMessageCount() int {
	n := 0
	for _, m := range c.Messages {
		if m.Role == RoleUser {
			n++
		}
	}
	return n
}

type ConversationFilter struct {
	UserID string
	Status ConversationStatus
	// StartedBefore keeps only conversations started strictly before it.
	StartedBefore *time.Time
	Limit         int
	Offset        int
}

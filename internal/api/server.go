package api

import (
	"context"
	"time"

	"github.com/vytor/kaiwa/internal/services"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	RecommendationService services.RecommendationService
	ConversationService   services.ConversationService
	AnalysisService       services.AnalysisService
	MaterialService       services.MaterialService
	SpeechService         services.SpeechService
	DB                    Pinger
	RequestTimeout        time.Duration
}

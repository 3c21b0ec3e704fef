package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/vytor/kaiwa/internal/errors"
	"github.com/vytor/kaiwa/internal/logger"
	"github.com/vytor/kaiwa/internal/speech"
)

// MaxSynthesisChars bounds a single text-to-speech request.
const MaxSynthesisChars = 5000

// SpeechService handles speech recognition and synthesis requests.
type SpeechService interface {
	Transcribe(ctx context.Context, audio []byte, contentType string) (*speech.Transcription, error)
	Synthesize(ctx context.Context, text string, voice speech.Voice) ([]byte, error)
}

type speechService struct {
	client speech.Client
}

// NewSpeechService creates a new SpeechService. A nil client yields a service
// that reports itself unavailable.
func NewSpeechService(client speech.Client) SpeechService {
	return &speechService{client: client}
}

func (s *speechService) Transcribe(ctx context.Context, audio []byte, contentType string) (*speech.Transcription, error) {
	log := logger.FromContext(ctx)
	log.Debug("transcribing audio: bytes=%d, content_type=%s", len(audio), contentType)

	if len(audio) == 0 {
		return nil, errors.NewValidationError("audio", "Audio file is required")
	}
	if s.client == nil {
		return nil, errors.NewServiceUnavailableError("speech service", nil)
	}

	result, err := s.client.Transcribe(ctx, audio, contentType)
	if err != nil {
		log.Error("failed to transcribe audio: %v", err)
		return nil, mapSpeechError(err)
	}
	return result, nil
}

func (s *speechService) Synthesize(ctx context.Context, text string, voice speech.Voice) ([]byte, error) {
	log := logger.FromContext(ctx)
	log.Debug("synthesizing speech: chars=%d, voice=%s", utf8.RuneCountInString(text), voice.Name)

	if strings.TrimSpace(text) == "" {
		return nil, errors.NewValidationError("text", "Text is required")
	}
	if n := utf8.RuneCountInString(text); n > MaxSynthesisChars {
		return nil, errors.NewValidationError("text", fmt.Sprintf("Text must be %d characters or less, got %d", MaxSynthesisChars, n))
	}
	if s.client == nil {
		return nil, errors.NewServiceUnavailableError("speech service", nil)
	}

	audio, err := s.client.Synthesize(ctx, text, voice)
	if err != nil {
		log.Error("failed to synthesize speech: %v", err)
		return nil, mapSpeechError(err)
	}
	return audio, nil
}

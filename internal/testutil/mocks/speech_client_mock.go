package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/kaiwa/internal/speech"
)

// MockSpeechClient is a mock implementation of speech.Client
type MockSpeechClient struct {
	mock.Mock
}

func (m *MockSpeechClient) Transcribe(ctx context.Context, audio []byte, contentType string) (*speech.Transcription, error) {
	args := m.Called(ctx, audio, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*speech.Transcription), args.Error(1)
}

func (m *MockSpeechClient) Synthesize(ctx context.Context, text string, voice speech.Voice) ([]byte, error) {
	args := m.Called(ctx, text, voice)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockSpeechClient) Close() error {
	args := m.Called()
	return args.Error(0)
}

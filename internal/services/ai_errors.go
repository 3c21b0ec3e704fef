package services

import (
	"context"
	stderrors "errors"

	"github.com/vytor/kaiwa/internal/ai"
	"github.com/vytor/kaiwa/internal/errors"
	"github.com/vytor/kaiwa/internal/speech"
)

// mapAIError converts a tutor failure into the error surfaced to clients.
func mapAIError(err error) *errors.AppError {
	if appErr, ok := errors.As(err); ok {
		return appErr
	}

	var unavailable *ai.ErrProviderUnavailable
	switch {
	case ai.IsRateLimited(err):
		return errors.NewRateLimitError(err)
	case stderrors.As(err, &unavailable), stderrors.Is(err, context.DeadlineExceeded):
		return errors.NewServiceUnavailableError("AI service", err)
	default:
		return errors.NewInternalError(err)
	}
}

func mapSpeechError(err error) *errors.AppError {
	switch {
	case stderrors.Is(err, speech.ErrRateLimited):
		return errors.NewRateLimitError(err)
	case stderrors.Is(err, speech.ErrUnavailable), stderrors.Is(err, context.DeadlineExceeded):
		return errors.NewServiceUnavailableError("speech service", err)
	default:
		return errors.NewInternalError(err)
	}
}

package worker

import (
	"context"
	"time"
)

// ConversationSweeper closes conversations nobody finished.
type ConversationSweeper interface {
	AbandonStale(ctx context.Context, cutoff time.Time) (int, error)
}

// AbandonStaleJob abandons active conversations older than MaxAge.
type AbandonStaleJob struct {
	Sweeper ConversationSweeper
	MaxAge  time.Duration
	Now     func() time.Time
}

func (j *AbandonStaleJob) Name() string { return "abandon_stale_conversations" }

func (j *AbandonStaleJob) Run(ctx context.Context) error {
	now := time.Now
	if j.Now != nil {
		now = j.Now
	}
	_, err := j.Sweeper.AbandonStale(ctx, now().UTC().Add(-j.MaxAge))
	return err
}

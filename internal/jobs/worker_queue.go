package jobs

import (
	"context"
	"time"

	"github.com/vytor/kaiwa/internal/logger"
	"github.com/vytor/kaiwa/internal/worker"
)

// WorkerQueue implements JobQueue using a worker pool
type WorkerQueue struct {
	pool      *worker.Pool
	sweeper   worker.ConversationSweeper
	abandonAt time.Duration
}

// NewWorkerQueue creates a new WorkerQueue. Conversations left active for
// longer than abandonAfter are swept.
func NewWorkerQueue(pool *worker.Pool, sweeper worker.ConversationSweeper, abandonAfter time.Duration) *WorkerQueue {
	return &WorkerQueue{
		pool:      pool,
		sweeper:   sweeper,
		abandonAt: abandonAfter,
	}
}

func (q *WorkerQueue) EnqueueAbandonSweep() error {
	return q.pool.Submit(&worker.AbandonStaleJob{
		Sweeper: q.sweeper,
		MaxAge:  q.abandonAt,
	})
}

// Schedule enqueues a sweep every interval until ctx is done. A full queue
// skips that tick.
func Schedule(ctx context.Context, q JobQueue, interval time.Duration) {
	log := logger.FromContext(ctx).WithPrefix("scheduler")
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Debug("scheduler stopped")
			return
		case <-ticker.C:
			if err := q.EnqueueAbandonSweep(); err != nil {
				log.Warn("skipping abandon sweep: %v", err)
			}
		}
	}
}

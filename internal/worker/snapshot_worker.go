package worker

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/formcraft/formcraft-backend/internal/repository"
)

type snapshotJob struct {
	slot    string
	version int
	payload []byte
}

// SnapshotWorker writes store snapshots to the slot database in the
// background. Mutating stores hand their serialized state to Persist
// (fire-and-forget); jobs coalesce per slot, so only the latest snapshot
// for each slot is ever written. A failed write is logged and the job
// dropped; the in-memory store remains authoritative for the session.
type SnapshotWorker struct {
	repo *repository.SnapshotRepository
	log  zerolog.Logger

	mu      sync.Mutex
	pending map[string]snapshotJob
	wake    chan struct{}
}

// NewSnapshotWorker creates a new SnapshotWorker.
func NewSnapshotWorker(repo *repository.SnapshotRepository, log zerolog.Logger) *SnapshotWorker {
	return &SnapshotWorker{
		repo:    repo,
		log:     log.With().Str("component", "snapshot_worker").Logger(),
		pending: map[string]snapshotJob{},
		wake:    make(chan struct{}, 1),
	}
}

// Persist implements repository.SnapshotSink. It never blocks the caller:
// the snapshot replaces any pending one for the same slot and the worker
// is nudged.
func (w *SnapshotWorker) Persist(slot string, version int, payload []byte) {
	w.mu.Lock()
	w.pending[slot] = snapshotJob{slot: slot, version: version, payload: payload}
	w.mu.Unlock()

	select {
	case w.wake <- struct{}{}:
	default: // already scheduled
	}
}

// Start begins the worker loop. Call in a goroutine. On context
// cancellation the remaining pending snapshots are drained before exit.
func (w *SnapshotWorker) Start(ctx context.Context) {
	w.log.Info().Msg("Worker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopping...")
			w.Flush(context.Background())
			w.log.Info().Msg("Worker stopped")
			return
		case <-w.wake:
			w.Flush(ctx)
		}
	}
}

// Flush synchronously writes every pending snapshot. Exposed so shutdown
// and tests can force the queue empty.
func (w *SnapshotWorker) Flush(ctx context.Context) {
	for _, job := range w.takePending() {
		if err := w.repo.Save(ctx, job.slot, job.version, job.payload); err != nil {
			w.log.Error().Err(err).Str("slot", job.slot).Msg("Snapshot write failed")
		}
	}
}

func (w *SnapshotWorker) takePending() []snapshotJob {
	w.mu.Lock()
	defer w.mu.Unlock()
	jobs := make([]snapshotJob, 0, len(w.pending))
	for _, job := range w.pending {
		jobs = append(jobs, job)
	}
	w.pending = map[string]snapshotJob{}
	return jobs
}

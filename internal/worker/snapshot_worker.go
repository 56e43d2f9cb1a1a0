package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/portal-backend/internal/model"
	"github.com/stemsi/portal-backend/internal/repository"
	"github.com/stemsi/portal-backend/internal/service"
)

const (
	SnapshotBatchSize    = 50
	SnapshotBatchTimeout = 2 * time.Second
	SnapshotPollTimeout  = 1 * time.Second
)

// RecomputeQueue is the work queue the worker drains and requeues into.
type RecomputeQueue interface {
	Pop(ctx context.Context, timeout time.Duration) (studentID int, ok bool, err error)
	Enqueue(ctx context.Context, studentID int) error
}

// Recomputer builds a fresh results view, bypassing any cache.
type Recomputer interface {
	Compute(ctx context.Context, studentID int) (*model.ResultView, error)
}

// SnapshotStore persists summaries.
type SnapshotStore interface {
	BulkUpsert(ctx context.Context, batch []repository.SnapshotInput) error
	Upsert(ctx context.Context, s repository.SnapshotInput) error
}

// SnapshotWorker consumes recompute_results_queue, stores the summary of
// each student in result_snapshots and pushes the new view to live clients.
type SnapshotWorker struct {
	queue   RecomputeQueue
	results Recomputer
	store   SnapshotStore
	feed    service.ResultFeed
	log     zerolog.Logger
}

// NewSnapshotWorker creates a SnapshotWorker. feed may be nil.
func NewSnapshotWorker(queue RecomputeQueue, results Recomputer, store SnapshotStore, feed service.ResultFeed, log zerolog.Logger) *SnapshotWorker {
	return &SnapshotWorker{
		queue:   queue,
		results: results,
		store:   store,
		feed:    feed,
		log:     log.With().Str("component", "snapshot_worker").Logger(),
	}
}

// ----------------------------------------------------------------
// Worker loop with batching
// ----------------------------------------------------------------

// Start runs until ctx is done, then flushes what it already popped.
func (w *SnapshotWorker) Start(ctx context.Context) {
	w.log.Info().Msg("SnapshotWorker started")

	batch := make([]int, 0, SnapshotBatchSize)
	lastFlush := time.Now()

	for {
		if len(batch) > 0 &&
			(len(batch) >= SnapshotBatchSize || time.Since(lastFlush) >= SnapshotBatchTimeout) {
			w.flushSafe(ctx, batch)
			batch = batch[:0]
			lastFlush = time.Now()
		}

		select {
		case <-ctx.Done():
			w.log.Info().Int("pending", len(batch)).Msg("Shutdown requested. Flushing remaining batch...")
			w.flushSafe(context.Background(), batch)
			return

		default:
			studentID, ok, err := w.queue.Pop(ctx, SnapshotPollTimeout)
			if err != nil {
				if ctx.Err() == nil {
					w.log.Error().Err(err).Msg("Queue pop error")
				}
				continue
			}
			if !ok {
				continue
			}
			batch = append(batch, studentID)
		}
	}
}

// ----------------------------------------------------------------
// Batch recompute + upsert
// ----------------------------------------------------------------

func (w *SnapshotWorker) flushSafe(ctx context.Context, batch []int) {
	ids := dedupe(batch)
	if len(ids) == 0 {
		return
	}

	views := make([]*model.ResultView, 0, len(ids))
	inputs := make([]repository.SnapshotInput, 0, len(ids))
	for _, id := range ids {
		view, err := w.results.Compute(ctx, id)
		if err != nil {
			w.log.Error().Err(err).Int("student_id", id).Msg("Recompute failed, dropping")
			continue
		}
		views = append(views, view)
		inputs = append(inputs, repository.SnapshotInput{StudentID: id, Summary: view.Summary})
	}

	if len(inputs) == 0 {
		return
	}

	if err := w.store.BulkUpsert(ctx, inputs); err != nil {
		w.log.Warn().Err(err).Int("size", len(inputs)).Msg("Bulk snapshot upsert failed, using fallback")

		stored := make([]*model.ResultView, 0, len(views))
		for i, in := range inputs {
			if err := w.store.Upsert(ctx, in); err != nil {
				w.log.Error().Err(err).Int("student_id", in.StudentID).Msg("Upsert failed, requeueing")
				if err := w.queue.Enqueue(ctx, in.StudentID); err != nil {
					w.log.Error().Err(err).Int("student_id", in.StudentID).Msg("Requeue failed")
				}
				continue
			}
			stored = append(stored, views[i])
		}
		views = stored
	}

	w.publish(ctx, views)
	w.log.Debug().Int("students", len(views)).Msg("Snapshots stored")
}

func (w *SnapshotWorker) publish(ctx context.Context, views []*model.ResultView) {
	if w.feed == nil {
		return
	}
	for _, v := range views {
		if err := w.feed.Publish(ctx, v); err != nil {
			w.log.Warn().Err(err).Int("student_id", v.StudentID).Msg("Publish failed")
		}
	}
}

// dedupe keeps the first occurrence of each id.
func dedupe(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

package search

import (
	"context"
	"time"

	"github.com/openquarry/hashquarry/lib/digest"
	"github.com/openquarry/hashquarry/lib/keyspace"
	"github.com/openquarry/hashquarry/shared"
)

const (
	// cancelPollInterval is how many candidates a worker processes between
	// cancellation checks. Checking every candidate would put a synchronization
	// point in the hot loop, so after cancellation is raised a worker may
	// overshoot by at most this many candidates before stopping.
	cancelPollInterval = 10_000

	// maxProgressBatch caps how many candidates accumulate before a progress
	// report, so huge keyspaces still report at a usable cadence.
	maxProgressBatch = 2_000_000
)

// progressBatchSize derives the progress reporting cadence from the total
// workload: roughly one report per percent of the keyspace, clamped so tiny
// spaces still report and huge ones don't go quiet for minutes.
func progressBatchSize(total uint64) uint64 {
	batch := total / 100
	if batch < 1 {
		batch = 1
	}

	if batch > maxProgressBatch {
		batch = maxProgressBatch
	}

	return batch
}

// worker sequentially enumerates one chunk of the keyspace, testing each
// candidate against the target set. It owns its chunk exclusively and shares
// nothing mutable with other workers; results flow out through the progress
// and match channels only.
type worker struct {
	id       int
	chunk    Chunk
	space    *keyspace.Space
	targets  digest.TargetSet
	hash     digest.Func
	batch    uint64
	started  time.Time
	progress chan<- ProgressEvent
	matches  chan<- MatchEvent
}

// run iterates the worker's chunk until completion or cancellation.
// Pending progress is flushed on match, on cadence, and at the terminal
// state, so every processed candidate is reported exactly once.
func (w *worker) run(ctx context.Context) {
	shared.WorkerLog.Info("Worker started processing",
		"worker_id", w.id, "start", w.chunk.Start, "end", w.chunk.End)

	buf := make([]byte, 0, w.space.Length())

	var pending uint64

	for index := w.chunk.Start; index < w.chunk.End; index++ {
		if (index-w.chunk.Start)%cancelPollInterval == 0 {
			select {
			case <-ctx.Done():
				w.flush(&pending)
				shared.WorkerLog.Info("Worker received stop signal and is stopping", "worker_id", w.id)

				return
			default:
			}
		}

		buf = w.space.AppendCandidate(buf[:0], index)
		sum := w.hash(buf)
		pending++

		if w.targets.Contains(sum) {
			w.matches <- MatchEvent{
				Digest:    sum,
				Candidate: string(buf),
				Elapsed:   time.Since(w.started),
			}
			// Flush alongside the match so the found count is never left
			// stranded behind an unflushed progress batch.
			w.flush(&pending)
		}

		if pending >= w.batch {
			w.flush(&pending)
		}
	}

	w.flush(&pending)
	shared.WorkerLog.Info("Worker finished processing", "worker_id", w.id)
}

// flush emits any accumulated progress delta and resets the counter.
func (w *worker) flush(pending *uint64) {
	if *pending == 0 {
		return
	}

	w.progress <- ProgressEvent{WorkerID: w.id, Delta: *pending, ChunkSize: w.chunk.Size()}
	*pending = 0
}

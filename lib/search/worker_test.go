package search

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openquarry/hashquarry/lib/digest"
	"github.com/openquarry/hashquarry/lib/keyspace"
)

const md5Of10 = "d3d9446802a44259755d38e6d163e820"

// newTestWorker builds a worker over the given space and chunk with buffered
// event channels large enough to run the worker synchronously.
func newTestWorker(t *testing.T, space *keyspace.Space, chunk Chunk, targets digest.TargetSet, batch uint64) (*worker, chan ProgressEvent, chan MatchEvent) {
	t.Helper()

	hash, err := digest.MD5.Func()
	require.NoError(t, err)

	progressCh := make(chan ProgressEvent, 64)
	matchCh := make(chan MatchEvent, 64)

	return &worker{
		id:       chunk.WorkerID,
		chunk:    chunk,
		space:    space,
		targets:  targets,
		hash:     hash,
		batch:    batch,
		started:  time.Now(),
		progress: progressCh,
		matches:  matchCh,
	}, progressCh, matchCh
}

func drainProgress(ch chan ProgressEvent) (events int, total uint64) {
	for {
		select {
		case ev := <-ch:
			events++
			total += ev.Delta
		default:
			return events, total
		}
	}
}

func TestWorkerFindsMatchAndReportsExactProgress(t *testing.T) {
	space, err := keyspace.New("01", 2)
	require.NoError(t, err)

	targets := digest.NewTargetSet([]string{md5Of10})
	w, progressCh, matchCh := newTestWorker(t, space, Chunk{WorkerID: 0, Start: 0, End: 4}, targets, 1)

	w.run(context.Background())

	_, processed := drainProgress(progressCh)
	assert.Equal(t, uint64(4), processed, "every candidate counted exactly once")

	require.Len(t, matchCh, 1)
	match := <-matchCh
	assert.Equal(t, md5Of10, match.Digest)
	assert.Equal(t, "10", match.Candidate)
	assert.GreaterOrEqual(t, match.Elapsed, time.Duration(0))
}

func TestWorkerBatchesProgress(t *testing.T) {
	space, err := keyspace.New("0123456789", 2)
	require.NoError(t, err)

	// No targets in range; batch of 25 over 100 candidates yields 4 reports.
	targets := digest.NewTargetSet([]string{"00000000000000000000000000000000"})
	w, progressCh, matchCh := newTestWorker(t, space, Chunk{WorkerID: 0, Start: 0, End: 100}, targets, 25)

	w.run(context.Background())

	events, processed := drainProgress(progressCh)
	assert.Equal(t, uint64(100), processed)
	assert.Equal(t, 4, events)
	assert.Empty(t, matchCh)
}

func TestWorkerObservesCancellation(t *testing.T) {
	space, err := keyspace.New("01", 2)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	targets := digest.NewTargetSet([]string{md5Of10})
	w, progressCh, matchCh := newTestWorker(t, space, Chunk{WorkerID: 0, Start: 0, End: 4}, targets, 1)

	w.run(ctx)

	// The first cancellation poll fires before any candidate is hashed.
	assert.Empty(t, progressCh)
	assert.Empty(t, matchCh)
}

func TestWorkerEmptyChunkIsNoOp(t *testing.T) {
	space, err := keyspace.New("01", 2)
	require.NoError(t, err)

	targets := digest.NewTargetSet([]string{md5Of10})
	w, progressCh, matchCh := newTestWorker(t, space, Chunk{WorkerID: 3, Start: 2, End: 2}, targets, 1)

	w.run(context.Background())

	assert.Empty(t, progressCh)
	assert.Empty(t, matchCh)
}

func TestProgressBatchSize(t *testing.T) {
	tests := []struct {
		name  string
		total uint64
		want  uint64
	}{
		{name: "tiny keyspace still reports", total: 4, want: 1},
		{name: "one percent of total", total: 10000, want: 100},
		{name: "capped for huge keyspaces", total: 1 << 40, want: maxProgressBatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, progressBatchSize(tt.total))
		})
	}
}

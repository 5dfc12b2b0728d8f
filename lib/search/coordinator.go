package search

import (
	"context"
	"fmt"
	"time"

	"github.com/openquarry/hashquarry/lib/digest"
	"github.com/openquarry/hashquarry/lib/keyspace"
	"github.com/openquarry/hashquarry/shared"
)

// livenessInterval bounds how long the aggregation loop blocks without waking
// up, keeping it responsive for periodic liveness logging.
const livenessInterval = time.Second

// Config describes one search run. Space and Targets are constructed once and
// shared read-only with every worker; neither is mutated after handoff.
type Config struct {
	Space     *keyspace.Space
	Targets   digest.TargetSet
	Algorithm digest.Algorithm
	Workers   int

	// OnProgress and OnMatch, when set, are invoked from the coordinator's
	// aggregation loop (a single goroutine) for every event. They back the
	// console progress bars and must not block for long.
	OnProgress func(ev ProgressEvent, processed, total uint64)
	OnMatch    func(ev MatchEvent, found, wanted int)
}

// Coordinator owns the lifecycle of a search: partitioning the keyspace,
// launching workers, aggregating their events, raising cancellation once
// every target is found, and producing the final result.
type Coordinator struct {
	cfg    Config
	hash   digest.Func
	chunks []Chunk
}

// NewCoordinator validates the configuration, resolves the digest function
// once, and partitions the keyspace. Configuration problems are reported here,
// before any work starts.
func NewCoordinator(cfg Config) (*Coordinator, error) {
	if cfg.Space == nil {
		return nil, fmt.Errorf("%w: no keyspace", ErrConfiguration)
	}

	if cfg.Workers < 1 {
		return nil, fmt.Errorf("%w: worker count %d, need at least 1", ErrConfiguration, cfg.Workers)
	}

	if cfg.Targets.Size() == 0 {
		return nil, fmt.Errorf("%w: target set is empty", ErrConfiguration)
	}

	hash, err := cfg.Algorithm.Func()
	if err != nil {
		return nil, err
	}

	return &Coordinator{
		cfg:    cfg,
		hash:   hash,
		chunks: Partition(cfg.Space.Total(), cfg.Workers),
	}, nil
}

// Chunks returns the chunk assignment, one per worker.
func (c *Coordinator) Chunks() []Chunk {
	return c.chunks
}

// workerDone signals that a worker reached a terminal state. A non-nil err
// means the worker terminated abnormally mid-chunk.
type workerDone struct {
	id    int
	chunk Chunk
	err   error
}

// Run executes the search and blocks until every worker has reached a
// terminal state. Cancellation is raised exactly once as soon as all targets
// are found; workers observe it cooperatively (see cancelPollInterval).
// Cancelling the parent context ends the search early and returns the partial
// result. A worker failure aborts the search with a *WorkerError.
func (c *Coordinator) Run(ctx context.Context) (*Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	progressCh := make(chan ProgressEvent, c.cfg.Workers*4)
	matchCh := make(chan MatchEvent, c.cfg.Workers)
	doneCh := make(chan workerDone, c.cfg.Workers)

	started := time.Now()
	batch := progressBatchSize(c.cfg.Space.Total())

	shared.Logger.Debug("Launching workers",
		"workers", c.cfg.Workers, "total", c.cfg.Space.Total(), "progress_batch", batch)

	for _, chunk := range c.chunks {
		w := &worker{
			id:       chunk.WorkerID,
			chunk:    chunk,
			space:    c.cfg.Space,
			targets:  c.cfg.Targets,
			hash:     c.hash,
			batch:    batch,
			started:  started,
			progress: progressCh,
			matches:  matchCh,
		}

		go func() {
			defer func() {
				if r := recover(); r != nil {
					doneCh <- workerDone{id: w.id, chunk: w.chunk, err: fmt.Errorf("panic: %v", r)}
				}
			}()

			w.run(ctx)
			doneCh <- workerDone{id: w.id, chunk: w.chunk}
		}()
	}

	var (
		processed uint64
		matches   []Match
		workerErr error
		cancelled bool
	)

	wanted := c.cfg.Targets.Size()
	found := make(map[string]struct{}, wanted)
	total := c.cfg.Space.Total()
	running := len(c.chunks)

	liveness := time.NewTicker(livenessInterval)
	defer liveness.Stop()

	handleProgress := func(ev ProgressEvent) {
		processed += ev.Delta
		if c.cfg.OnProgress != nil {
			c.cfg.OnProgress(ev, processed, total)
		}
	}

	handleMatch := func(ev MatchEvent) {
		// Deduplicate by digest. A cryptographic digest should never be
		// matched by two candidates, but the contract holds regardless.
		if _, dup := found[ev.Digest]; dup {
			return
		}

		found[ev.Digest] = struct{}{}
		matches = append(matches, Match{Digest: ev.Digest, Candidate: ev.Candidate, Elapsed: ev.Elapsed})

		if c.cfg.OnMatch != nil {
			c.cfg.OnMatch(ev, len(found), wanted)
		}

		if len(found) >= wanted && !cancelled {
			cancelled = true

			shared.Logger.Info("All targets found, signalling workers to stop", "found", len(found))
			cancel()
		}
	}

	for running > 0 {
		select {
		case ev := <-progressCh:
			handleProgress(ev)
		case ev := <-matchCh:
			handleMatch(ev)
		case d := <-doneCh:
			running--

			if d.err != nil {
				if workerErr == nil {
					workerErr = &WorkerError{WorkerID: d.id, Chunk: d.chunk, Err: d.err}
					cancel()
				}

				shared.ErrorLogger.Error("Worker terminated abnormally",
					"worker_id", d.id, "start", d.chunk.Start, "end", d.chunk.End, "error", d.err)
			}
		case <-liveness.C:
			shared.Logger.Debug("Search in progress",
				"processed", processed, "total", total, "found", len(found), "running_workers", running)
		}
	}

	// All workers have joined; drain any residual buffered events.
drain:
	for {
		select {
		case ev := <-progressCh:
			handleProgress(ev)
		case ev := <-matchCh:
			handleMatch(ev)
		default:
			break drain
		}
	}

	if workerErr != nil {
		return nil, workerErr
	}

	return &Result{
		Matches:   matches,
		Processed: processed,
		Total:     total,
		Elapsed:   time.Since(started),
	}, nil
}

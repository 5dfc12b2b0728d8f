package search

import "time"

// ProgressEvent reports candidates processed by one worker since its last
// report. Deltas are exact: each candidate is counted in exactly one event.
type ProgressEvent struct {
	WorkerID  int
	Delta     uint64 // candidates processed since the previous event
	ChunkSize uint64 // total candidates in the worker's chunk
}

// MatchEvent reports a recovered pre-image. It is emitted immediately on
// match, exactly once per successful match, carrying the time elapsed since
// the search started.
type MatchEvent struct {
	Digest    string
	Candidate string
	Elapsed   time.Duration
}

// Match is one recovered pre-image in the final result.
type Match struct {
	Digest    string
	Candidate string
	Elapsed   time.Duration
}

// Result summarizes a completed search.
type Result struct {
	Matches   []Match       // recovered pre-images in discovery order, deduplicated by digest
	Processed uint64        // total candidates hashed across all workers
	Total     uint64        // size of the keyspace
	Elapsed   time.Duration // wall-clock duration of the search
}

// FoundCount returns the number of distinct target digests recovered.
func (r *Result) FoundCount() int {
	return len(r.Matches)
}

// AverageTimePerMatch returns the mean elapsed time per recovered pre-image,
// or zero when nothing was found.
func (r *Result) AverageTimePerMatch() time.Duration {
	if len(r.Matches) == 0 {
		return 0
	}

	return r.Elapsed / time.Duration(len(r.Matches))
}

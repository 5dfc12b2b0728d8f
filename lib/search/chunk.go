package search

// Chunk is a contiguous sub-range [Start, End) of the keyspace's linear index
// space, owned by exactly one worker for its lifetime. A chunk with
// Start == End is a legitimate no-op assignment, produced when there are more
// workers than candidates.
type Chunk struct {
	WorkerID int
	Start    uint64
	End      uint64
}

// Size returns the number of candidates in the chunk.
func (c Chunk) Size() uint64 {
	return c.End - c.Start
}

// Partition splits [0, total) into exactly workers contiguous, non-overlapping
// chunks that cover the whole range. Each chunk gets total/workers candidates;
// the last chunk absorbs the remainder of the integer division.
func Partition(total uint64, workers int) []Chunk {
	size := total / uint64(workers)
	chunks := make([]Chunk, workers)

	for i := range chunks {
		chunks[i] = Chunk{
			WorkerID: i,
			Start:    uint64(i) * size,
			End:      uint64(i+1) * size,
		}
	}

	chunks[workers-1].End = total

	return chunks
}

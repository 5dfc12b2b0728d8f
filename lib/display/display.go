// Package display provides output and logging functions for hashquarry.
package display

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"

	"github.com/openquarry/hashquarry/lib/config"
	"github.com/openquarry/hashquarry/lib/search"
	"github.com/openquarry/hashquarry/shared"
)

// Startup logs an informational message indicating the start of hashquarry.
func Startup() {
	shared.Logger.Info("Starting hashquarry", "version", shared.Version)
}

// JobLoaded logs the parameters of a loaded search job.
func JobLoaded(job *config.Job, total uint64) {
	shared.Logger.Info("Job loaded",
		"charset_id", job.CharsetID,
		"length", job.Length,
		"algorithm", job.Algorithm.String(),
		"targets", job.Targets.Size(),
		"total_candidates", humanize.Comma(clampInt64(total)),
	)
}

// SearchStarting logs the worker count and chunk assignment before launch.
func SearchStarting(workers int, chunks []search.Chunk) {
	shared.Logger.Info("Starting search", "workers", workers)

	for _, chunk := range chunks {
		shared.Logger.Debug("Chunk assigned",
			"worker_id", chunk.WorkerID, "start", chunk.Start, "end", chunk.End, "size", chunk.Size())
	}
}

// MatchFound logs a recovered pre-image.
func MatchFound(ev search.MatchEvent) {
	shared.Logger.Info("Pre-image found",
		"digest", ev.Digest, "pre_image", ev.Candidate, "elapsed", ev.Elapsed)
}

// SearchCancelled logs that the search was interrupted before completion.
func SearchCancelled() {
	shared.Logger.Warn("Search cancelled before completion")
}

// Summary logs the final search statistics: found count, coverage of the
// keyspace, hashing rate, and average time per recovered pre-image.
func Summary(result *search.Result) {
	rate := 0.0
	if result.Elapsed.Seconds() > 0 {
		rate = float64(result.Processed) / result.Elapsed.Seconds()
	}

	shared.Logger.Info("Search complete",
		"found", result.FoundCount(),
		"processed", humanize.Comma(clampInt64(result.Processed)),
		"coverage", coverage(result.Processed, result.Total),
		"elapsed", result.Elapsed,
		"speed", humanize.SI(rate, "H/s"),
	)

	if result.FoundCount() > 0 {
		shared.Logger.Info("Average time per pre-image", "average", result.AverageTimePerMatch())
	}
}

// ResultsWritten logs the path of the written CSV result file.
func ResultsWritten(path string) {
	shared.Logger.Info("Results written", "path", path)
}

// ShuttingDown logs an informational message indicating shutdown.
func ShuttingDown() {
	shared.Logger.Info("Shutting down hashquarry")
}

// clampInt64 converts a candidate count to int64 for display, saturating at
// MaxInt64. Keyspaces can legitimately exceed 2^63 candidates; the displayed
// figure caps rather than going negative.
func clampInt64(v uint64) int64 {
	if v > math.MaxInt64 {
		return math.MaxInt64
	}

	return int64(v)
}

// coverage formats the share of the keyspace that was processed, to two
// decimal places. Returns "0.00%" when the total is zero.
func coverage(processed, total uint64) string {
	if total == 0 {
		return "0.00%"
	}

	return fmt.Sprintf("%.2f%%", float64(processed)/float64(total)*100)
}

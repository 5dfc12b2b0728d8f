// Package shared provides common state and logging instances used across hashquarry.
package shared

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Version is the current version of the hashquarry tool.
const Version = "0.1.0"

// State represents the resolved runtime configuration of the current run.
var State = runState{}

// runState holds the settings resolved from flags and configuration before a search starts.
type runState struct {
	HashFile   string // HashFile is the path to the file containing the job headers and target digests.
	OutputFile string // OutputFile is the path the CSV results are written to. Empty means derive from the job.
	LogFile    string // LogFile is the path of the worker lifecycle log file.
	Debug      bool   // Debug specifies whether debug logging is enabled.
	Workers    int    // Workers is the number of concurrent search workers.
}

// Logger is a shared logging instance configured to output logs at InfoLevel with timestamps to os.Stdout.
var Logger = log.NewWithOptions(os.Stdout, log.Options{
	Level:           log.InfoLevel,
	ReportTimestamp: true,
})

// ErrorLogger is a logger instance for logging critical errors with detailed error information.
var ErrorLogger = Logger.With()

// WorkerLog receives worker lifecycle events (start, stop, cancellation).
// It discards output until OpenWorkerLog points it at a file.
var WorkerLog = log.NewWithOptions(io.Discard, log.Options{ReportTimestamp: true})

// OpenWorkerLog re-points WorkerLog at the given file, appending to any previous run's log.
// The returned file should be closed by the caller once the search completes.
func OpenWorkerLog(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}

	WorkerLog = log.NewWithOptions(f, log.Options{ReportTimestamp: true})

	return f, nil
}

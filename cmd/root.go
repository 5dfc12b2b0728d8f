// Package cmd implements the command-line interface for hashquarry.
package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/openquarry/hashquarry/lib/config"
	"github.com/openquarry/hashquarry/lib/display"
	"github.com/openquarry/hashquarry/lib/keyspace"
	"github.com/openquarry/hashquarry/lib/report"
	"github.com/openquarry/hashquarry/lib/search"
	"github.com/openquarry/hashquarry/shared"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:     "hashquarry",
	Version: shared.Version,
	Short:   "Parallel brute-force pre-image search",
	Long: "hashquarry exhaustively searches a fixed-length keyspace, hashing every candidate\n" +
		"and matching against a set of target digests loaded from a hash file.",
	Run: runSearch,
}

// Execute runs the root command for hashquarry.
func Execute() {
	err := rootCmd.Execute()
	cobra.CheckErr(err)
}

// init sets up the Cobra commands and Viper configuration: persistent flags
// for the config file and debug mode, run flags for the job parameters, and
// default configuration values.
func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/hashquarry.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug mode")
	rootCmd.Flags().String("hash-file", "", "Path to the file containing target digests and job headers")
	rootCmd.Flags().Int("workers", 0, "Number of concurrent workers (default is the logical CPU count)")
	rootCmd.Flags().String("output", "", "Path of the CSV result file (default is derived from the job)")
	rootCmd.Flags().String("log-file", "", "Path of the worker log file")

	cobra.CheckErr(viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug")))
	cobra.CheckErr(viper.BindPFlag("hash_file", rootCmd.Flags().Lookup("hash-file")))
	cobra.CheckErr(viper.BindPFlag("workers", rootCmd.Flags().Lookup("workers")))
	cobra.CheckErr(viper.BindPFlag("output_file", rootCmd.Flags().Lookup("output")))
	cobra.CheckErr(viper.BindPFlag("log_file", rootCmd.Flags().Lookup("log-file")))

	config.SetDefaultConfigValues()
}

// initConfig initializes configuration settings for the application.
func initConfig() {
	config.InitConfig(cfgFile)
}

// initLogger initializes the logging configuration based on the current debug state.
func initLogger() {
	if shared.State.Debug {
		shared.Logger.SetLevel(log.DebugLevel)
		shared.Logger.SetReportCaller(true)
	} else {
		shared.Logger.SetLevel(log.InfoLevel)
	}
}

// runSearch loads the job, builds the keyspace and coordinator, wires the
// progress bars, runs the search until completion or an interrupt, and writes
// the CSV results.
func runSearch(_ *cobra.Command, _ []string) {
	config.SetupSharedState()
	initLogger()

	if shared.State.HashFile == "" {
		shared.Logger.Fatal("No hash file set, pass --hash-file or run `hashquarry init`")
	}

	display.Startup()

	job, err := config.LoadJob(shared.State.HashFile)
	if err != nil {
		shared.Logger.Fatal("Failed to load hash file", "error", err)
	}

	space, err := keyspace.New(job.Charset, job.Length)
	if err != nil {
		shared.Logger.Fatal("Invalid keyspace configuration", "error", err)
	}

	display.JobLoaded(job, space.Total())

	logFile, err := shared.OpenWorkerLog(shared.State.LogFile)
	if err != nil {
		shared.Logger.Fatal("Failed to open worker log file", "error", err)
	}
	defer func() {
		if err := logFile.Close(); err != nil {
			shared.Logger.Error("Error closing worker log file", "error", err)
		}
	}()

	// Assigned before Run; the hooks below only fire once the search is running.
	var bars *display.Bars

	coordinator, err := search.NewCoordinator(search.Config{
		Space:     space,
		Targets:   job.Targets,
		Algorithm: job.Algorithm,
		Workers:   shared.State.Workers,
		OnProgress: func(ev search.ProgressEvent, _, _ uint64) {
			bars.AddProcessed(ev.Delta)
		},
		OnMatch: func(ev search.MatchEvent, _, _ int) {
			bars.FoundOne()
			display.MatchFound(ev)
		},
	})
	if err != nil {
		shared.Logger.Fatal("Invalid search configuration", "error", err)
	}

	display.SearchStarting(shared.State.Workers, coordinator.Chunks())

	bars = display.StartBars(space.Total(), job.Targets.Size())

	// Interrupts cancel the context; workers observe it cooperatively.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := coordinator.Run(ctx)

	bars.Stop()

	if err != nil {
		var workerErr *search.WorkerError
		if errors.As(err, &workerErr) {
			shared.Logger.Fatal("Search aborted: keyspace coverage incomplete",
				"worker_id", workerErr.WorkerID,
				"chunk_start", workerErr.Chunk.Start,
				"chunk_end", workerErr.Chunk.End,
				"error", workerErr.Err)
		}

		shared.Logger.Fatal("Search failed", "error", err)
	}

	if ctx.Err() != nil {
		display.SearchCancelled()
	}

	display.Summary(result)

	outputPath := shared.State.OutputFile
	if outputPath == "" {
		outputPath = config.OutputFileName(job, shared.State.Workers)
	}

	if err := report.WriteCSV(outputPath, result); err != nil {
		shared.Logger.Fatal("Failed to write result file", "error", err)
	}

	display.ResultsWritten(outputPath)
	display.ShuttingDown()
}

// Package config provides configuration management and hash-file loading for hashquarry.
package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/duke-git/lancet/v2/fileutil"
	"github.com/duke-git/lancet/v2/strutil"
	gap "github.com/muesli/go-app-paths"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/openquarry/hashquarry/lib/digest"
	"github.com/openquarry/hashquarry/shared"
)

// Job defaults applied when the hash file omits a header line.
const (
	defaultCharsetID = 1
	defaultAlgorithm = "MD5"
	defaultLength    = 4
	defaultLogFile   = "worker_log.txt"
)

var scope = gap.NewScope(gap.User, "hashquarry") //nolint:gochecknoglobals // Configuration scope

// charsets maps the hash file's charset identifiers to symbol tables.
var charsets = map[int]string{ //nolint:gochecknoglobals // Static lookup table
	1: "0123456789",
	2: "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ",
	3: "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ",
	4: "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ!@#$%^&*()-_=+[]{}|;:\",.<>?/~`",
}

// Job describes a fully validated search job loaded from a hash file.
type Job struct {
	CharsetID int              // CharsetID is the identifier of the charset table used.
	Charset   string           // Charset is the ordered symbol set candidates are drawn from.
	Length    int              // Length is the pre-image length in symbols.
	Algorithm digest.Algorithm // Algorithm is the digest algorithm, resolved at load time.
	Targets   digest.TargetSet // Targets is the normalized set of digests to recover.
}

// InitConfig initializes the configuration from various sources.
func InitConfig(cfgFile string) {
	shared.ErrorLogger.SetReportCaller(true)

	home, err := os.UserConfigDir()
	cobra.CheckErr(err)

	cwd, err := os.Getwd()
	cobra.CheckErr(err)
	viper.AddConfigPath(cwd)

	configDirs, err := scope.ConfigDirs()
	cobra.CheckErr(err)

	for _, dir := range configDirs {
		viper.AddConfigPath(dir)
	}

	viper.AddConfigPath(home)
	viper.SetConfigType("yaml")
	viper.SetConfigName("hashquarry")

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		shared.Logger.Info("Using config file", "config_file", viper.ConfigFileUsed())
	} else {
		shared.Logger.Debug("No config file found, using defaults")
	}
}

// SetDefaultConfigValues sets default configuration values.
// The default worker count is the machine's logical CPU count.
func SetDefaultConfigValues() {
	viper.SetDefault("workers", logicalCPUCount())
	viper.SetDefault("log_file", defaultLogFile)
	viper.SetDefault("output_file", "")
	viper.SetDefault("hash_file", "")
}

// SetupSharedState configures the shared state from configuration values.
func SetupSharedState() {
	shared.State.HashFile = viper.GetString("hash_file")
	shared.State.OutputFile = viper.GetString("output_file")
	shared.State.LogFile = viper.GetString("log_file")
	shared.State.Workers = viper.GetInt("workers")
	shared.State.Debug = viper.GetBool("debug")
}

// logicalCPUCount returns the number of logical CPUs, falling back to 1 when
// detection fails.
func logicalCPUCount() int {
	count, err := cpu.Counts(true)
	if err != nil || count < 1 {
		return 1
	}

	return count
}

// CharsetByID resolves one of the hash file's charset identifiers to its
// symbol table. Unknown identifiers are rejected rather than silently mapped
// to a default.
func CharsetByID(id int) (string, error) {
	charset, ok := charsets[id]
	if !ok {
		return "", fmt.Errorf("unknown charset id %d", id)
	}

	return charset, nil
}

// LoadJob reads and validates a hash file. The format carries job parameters
// as header lines followed by one hex digest per line:
//
//	#charset: 1
//	#algorithm: MD5
//	#length: 4
//	25f9e794323b453885f5181f1b624d0b
//
// Missing headers fall back to the documented defaults. Digests and the
// algorithm name are validated here so the search core never sees bad input.
func LoadJob(path string) (*Job, error) {
	if !fileutil.IsExist(path) {
		return nil, fmt.Errorf("hash file %q not found", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("couldn't open hash file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			shared.Logger.Error("Error closing hash file", "error", err)
		}
	}()

	charsetID := defaultCharsetID
	algorithmName := defaultAlgorithm
	length := defaultLength

	var rawTargets []string

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		switch {
		case strings.HasPrefix(line, "#charset:"):
			charsetID, err = parseIntHeader(line)
			if err != nil {
				return nil, err
			}
		case strings.HasPrefix(line, "#algorithm:"):
			algorithmName = headerValue(line)
		case strings.HasPrefix(line, "#length:"):
			length, err = parseIntHeader(line)
			if err != nil {
				return nil, err
			}
		case strings.HasPrefix(line, "#"):
			// Unrecognized comment line, ignore.
		case strutil.IsNotBlank(line):
			rawTargets = append(rawTargets, strings.ToLower(line))
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("couldn't read hash file: %w", err)
	}

	charset, err := CharsetByID(charsetID)
	if err != nil {
		return nil, err
	}

	algorithm, err := digest.ParseAlgorithm(algorithmName)
	if err != nil {
		return nil, err
	}

	if len(rawTargets) == 0 {
		return nil, fmt.Errorf("hash file %q contains no target digests", path)
	}

	for _, target := range rawTargets {
		if err := algorithm.ValidateDigest(target); err != nil {
			return nil, err
		}
	}

	return &Job{
		CharsetID: charsetID,
		Charset:   charset,
		Length:    length,
		Algorithm: algorithm,
		Targets:   digest.NewTargetSet(rawTargets),
	}, nil
}

// OutputFileName derives the default CSV result path from the job parameters
// and worker count.
func OutputFileName(job *Job, workers int) string {
	return fmt.Sprintf("results_workers_%d_charset_%d_algo_%s_length_%d.csv",
		workers, job.CharsetID, job.Algorithm, job.Length)
}

// headerValue returns the trimmed text after the first colon of a header line.
func headerValue(line string) string {
	_, value, _ := strings.Cut(line, ":")

	return strings.TrimSpace(value)
}

// parseIntHeader parses the integer value of a header line.
func parseIntHeader(line string) (int, error) {
	value, err := strconv.Atoi(headerValue(line))
	if err != nil {
		return 0, fmt.Errorf("invalid header %q: %w", line, err)
	}

	return value, nil
}

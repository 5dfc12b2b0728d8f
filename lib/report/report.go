// Package report writes search results to disk as a record-oriented CSV file.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/openquarry/hashquarry/lib/search"
)

// csvHeader is the header row of the result file.
var csvHeader = []string{"Target Hash", "Pre-image", "Elapsed Time (s)"} //nolint:gochecknoglobals // Static header

// WriteCSV writes the recovered pre-images to path, one row per match with a
// header row first. Elapsed times are reported in seconds with two decimals.
func WriteCSV(path string, result *search.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("couldn't create result file: %w", err)
	}

	w := csv.NewWriter(f)

	if err := w.Write(csvHeader); err != nil {
		_ = f.Close()

		return fmt.Errorf("couldn't write result header: %w", err)
	}

	for _, m := range result.Matches {
		row := []string{m.Digest, m.Candidate, strconv.FormatFloat(m.Elapsed.Seconds(), 'f', 2, 64)}
		if err := w.Write(row); err != nil {
			_ = f.Close()

			return fmt.Errorf("couldn't write result row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()

		return fmt.Errorf("couldn't flush result file: %w", err)
	}

	return f.Close()
}

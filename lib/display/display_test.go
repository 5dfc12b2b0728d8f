package display

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestStartBarsWithoutTerminal: bar rendering fails when stdout is not a
// terminal (redirected output, CI), as it is under go test. The bars must
// still come up usable so the search proceeds without them.
func TestStartBarsWithoutTerminal(t *testing.T) {
	bars := StartBars(100, 2)
	require.NotNil(t, bars)

	bars.AddProcessed(40)
	bars.FoundOne()
	bars.Stop()
}

func TestClampInt64(t *testing.T) {
	assert.Equal(t, int64(0), clampInt64(0))
	assert.Equal(t, int64(math.MaxInt64), clampInt64(math.MaxInt64))
	assert.Equal(t, int64(math.MaxInt64), clampInt64(math.MaxUint64))
}

func TestCoverage(t *testing.T) {
	tests := []struct {
		name      string
		processed uint64
		total     uint64
		expected  string
	}{
		{name: "half", processed: 50, total: 100, expected: "50.00%"},
		{name: "complete", processed: 100, total: 100, expected: "100.00%"},
		{name: "nothing", processed: 0, total: 100, expected: "0.00%"},
		{name: "fractional", processed: 1, total: 3, expected: "33.33%"},
		{name: "zero total", processed: 50, total: 0, expected: "0.00%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, coverage(tt.processed, tt.total))
		})
	}
}

package display

import (
	"sync"

	"github.com/cheggaaa/pb/v3"

	"github.com/openquarry/hashquarry/shared"
)

// barTemplate labels each bar and shows counters, the bar itself, and percent.
const barTemplate = `{{ string . "prefix" }} {{ counters . }} {{ bar . }} {{ percent . }}`

// Bars renders the two console progress bars of a search: overall candidates
// processed and pre-images found. All methods are safe for concurrent use,
// although in practice they are driven from the coordinator's aggregation loop.
type Bars struct {
	mu      sync.Mutex
	overall *pb.ProgressBar
	found   *pb.ProgressBar
	pool    *pb.Pool
}

// StartBars creates and starts the progress bar pair for a search over total
// candidates seeking targets pre-images. When the terminal can't render bars
// (stdout redirected to a file or pipe), the failure is logged and the search
// runs without them; a usable Bars is returned either way.
func StartBars(total uint64, targets int) *Bars {
	overall := pb.New64(clampInt64(total)).SetTemplateString(barTemplate).Set("prefix", "Overall Progress")
	found := pb.New64(int64(targets)).SetTemplateString(barTemplate).Set("prefix", "Pre-images Found")

	b := &Bars{overall: overall, found: found, pool: pb.NewPool(overall, found)}

	if err := b.pool.Start(); err != nil {
		shared.Logger.Debug("Progress bars unavailable, continuing without them", "error", err)
		b.pool = nil
	}

	return b
}

// AddProcessed advances the overall bar by delta candidates.
func (b *Bars) AddProcessed(delta uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.overall.Add64(clampInt64(delta))
}

// FoundOne advances the found bar by one pre-image.
func (b *Bars) FoundOne() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.found.Increment()
}

// Stop finishes both bars and releases the console. A no-op when the bars
// never started rendering.
func (b *Bars) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.pool == nil {
		return
	}

	b.overall.Finish()
	b.found.Finish()
	_ = b.pool.Stop()
}

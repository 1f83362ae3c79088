package viewer

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"sync"

	"github.com/JaimeStill/collate/pkg/storage"
)

// StrategyStats counts render outcomes for one strategy.
type StrategyStats struct {
	Name      string `json:"name"`
	Attempts  int    `json:"attempts"`
	Successes int    `json:"successes"`
}

// Driver tries each strategy in configured order and returns the first
// success, recording the winning strategy per render.
type Driver struct {
	strategies []Strategy
	logger     *slog.Logger

	mu    sync.Mutex
	stats []StrategyStats
}

// NewDriver creates a Driver over the given strategy chain.
func NewDriver(strategies []Strategy, logger *slog.Logger) *Driver {
	stats := make([]StrategyStats, len(strategies))
	for i, strat := range strategies {
		stats[i] = StrategyStats{Name: strat.Name()}
	}

	return &Driver{
		strategies: strategies,
		logger:     logger,
		stats:      stats,
	}
}

// Render walks the chain until a strategy succeeds. Access and key
// validation failures abort the chain immediately; any other failure
// falls through to the next strategy. When every strategy fails the
// placeholder view returns with a nil error, keeping the failure local
// to this document's pane.
func (d *Driver) Render(ctx context.Context, key string) (*View, error) {
	for i, strat := range d.strategies {
		d.recordAttempt(i)

		view, err := strat.Render(ctx, key)
		if err == nil {
			d.recordSuccess(i)
			d.logger.Debug("view rendered",
				"key", key,
				"strategy", strat.Name(),
			)
			return view, nil
		}

		if aborts(err) {
			d.logger.Warn("render aborted",
				"key", key,
				"strategy", strat.Name(),
				"error", err,
			)
			return nil, err
		}

		d.logger.Debug("strategy failed",
			"key", key,
			"strategy", strat.Name(),
			"error", err,
		)
	}

	d.logger.Warn("all strategies failed", "key", key)
	return placeholderView(key), nil
}

// Stats returns a copy of the per-strategy counters in chain order.
func (d *Driver) Stats() []StrategyStats {
	d.mu.Lock()
	defer d.mu.Unlock()

	stats := make([]StrategyStats, len(d.stats))
	copy(stats, d.stats)
	return stats
}

func (d *Driver) recordAttempt(i int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stats[i].Attempts++
}

func (d *Driver) recordSuccess(i int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stats[i].Successes++
}

func aborts(err error) bool {
	return errors.Is(err, storage.ErrAccessDenied) ||
		errors.Is(err, storage.ErrEmptyKey) ||
		errors.Is(err, storage.ErrInvalidKey)
}

func placeholderView(key string) *View {
	return &View{
		Key:      key,
		Strategy: "placeholder",
		Error:    "document unavailable",
		HTML: fmt.Sprintf(
			`<div class="viewer-error">Document unavailable: %s</div>`,
			html.EscapeString(key),
		),
	}
}

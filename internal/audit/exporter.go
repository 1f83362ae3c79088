package audit

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/JaimeStill/collate/pkg/formatting"
	"github.com/JaimeStill/collate/pkg/storage"
)

// ExportResult carries the serialized trail and its delivery outcome.
// CSV is populated whenever entries exist, including when persistence
// to the object store fails.
type ExportResult struct {
	CSV       string `json:"csv"`
	Key       string `json:"key,omitempty"`
	Persisted bool   `json:"persisted"`
	Warning   string `json:"warning,omitempty"`
}

// Exporter serializes audit trails and delivers them to object storage.
type Exporter struct {
	store  storage.System
	logger *slog.Logger
	cfg    Config
}

// NewExporter creates an Exporter delivering to the given store.
func NewExporter(store storage.System, logger *slog.Logger, cfg Config) *Exporter {
	return &Exporter{
		store:  store,
		logger: logger.With("system", "audit"),
		cfg:    cfg,
	}
}

// Key returns the destination key for an export on the given date.
// Day granularity: exports within one calendar day overwrite the same
// key.
func (x *Exporter) Key(date time.Time) string {
	return fmt.Sprintf("%s/%s/%s", x.cfg.KeyPrefix, formatting.FormatDayKey(date), x.cfg.Filename)
}

// Export serializes records and persists the result to the object
// store. The CSV text is always returned; persistence failure is
// reported through the result's Warning so the caller still obtains
// the export. Empty input skips persistence entirely.
func (x *Exporter) Export(ctx context.Context, records []Fields) (*ExportResult, error) {
	text, err := ExportCSV(records)
	if err != nil {
		return nil, err
	}

	if text == "" {
		return &ExportResult{}, nil
	}

	result := &ExportResult{
		CSV: text,
		Key: x.Key(time.Now()),
	}

	if err := x.store.Upload(ctx, result.Key, strings.NewReader(text), "text/csv"); err != nil {
		result.Warning = fmt.Sprintf("persist %s: %v", result.Key, err)
		x.logger.Warn("audit export persistence failed",
			"key", result.Key,
			"error", err,
		)
		return result, nil
	}

	result.Persisted = true
	x.logger.Info("audit trail exported",
		"key", result.Key,
		"entries", len(records),
		"size", formatting.FormatBytes(int64(len(text)), 1),
	)

	return result, nil
}

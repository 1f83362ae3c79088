package catalog

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/collate/pkg/storage"
)

const verifyConcurrency = 8

// Result reports the storage check outcome for one catalog key.
type Result struct {
	Key    string `json:"key"`
	Exists bool   `json:"exists"`
	Error  string `json:"error,omitempty"`
}

// Report summarizes a catalog-wide storage verification.
type Report struct {
	Total   int      `json:"total"`
	Present int      `json:"present"`
	Missing int      `json:"missing"`
	Failed  int      `json:"failed"`
	Results []Result `json:"results"`
}

// Verify loads the catalog and checks each storage key for existence with
// bounded concurrency. Access denial aborts the whole verification; other
// per-key failures are recorded in the report.
func (s *system) Verify(ctx context.Context) (*Report, error) {
	cat, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}

	keys := cat.Keys()
	results := make([]Result, len(keys))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(verifyConcurrency)

	for i, key := range keys {
		g.Go(func() error {
			exists, err := s.store.Exists(gctx, key)
			if err != nil {
				if errors.Is(err, storage.ErrAccessDenied) {
					return err
				}
				results[i] = Result{Key: key, Error: err.Error()}
				return nil
			}

			results[i] = Result{Key: key, Exists: exists}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{
		Total:   len(keys),
		Results: results,
	}
	for _, r := range results {
		switch {
		case r.Error != "":
			report.Failed++
		case r.Exists:
			report.Present++
		default:
			report.Missing++
		}
	}

	s.logger.Info(
		"catalog verified",
		"total", report.Total,
		"present", report.Present,
		"missing", report.Missing,
		"failed", report.Failed,
	)

	return report, nil
}

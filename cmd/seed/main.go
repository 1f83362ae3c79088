package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/JaimeStill/collate/internal/catalog"
	"github.com/JaimeStill/collate/internal/config"
	"github.com/JaimeStill/collate/pkg/lifecycle"
	"github.com/JaimeStill/collate/pkg/storage"
)

// placeholderPDF is a minimal one-page document so seeded keys resolve
// to content the viewer strategies can render.
const placeholderPDF = "%PDF-1.4\n" +
	"1 0 obj<</Type/Catalog/Pages 2 0 R>>endobj\n" +
	"2 0 obj<</Type/Pages/Kids[3 0 R]/Count 1>>endobj\n" +
	"3 0 obj<</Type/Page/Parent 2 0 R/MediaBox[0 0 612 792]>>endobj\n" +
	"xref\n0 4\n" +
	"0000000000 65535 f \n" +
	"0000000009 00000 n \n" +
	"0000000052 00000 n \n" +
	"0000000101 00000 n \n" +
	"trailer<</Size 4/Root 1 0 R>>\n" +
	"startxref\n164\n%%EOF\n"

func main() {
	var (
		table   = flag.String("table", "", "Review table CSV to upload (default: built-in sample)")
		docs    = flag.Bool("docs", false, "Upload a placeholder document for every catalog record")
		verify  = flag.Bool("verify", false, "Probe every catalog key after seeding")
		timeout = flag.Duration("timeout", 2*time.Minute, "Overall operation timeout")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		log.Fatalf("failed to create storage system: %v", err)
	}

	lc := lifecycle.New()
	if err := store.Start(lc); err != nil {
		log.Fatalf("failed to start storage system: %v", err)
	}
	if err := lc.WaitForStartup(); err != nil {
		log.Fatalf("storage startup failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	tableBytes, origin, err := resolveTable(ctx, *table)
	if err != nil {
		log.Fatalf("failed to read review table: %v", err)
	}

	key := cfg.Catalog.BlobKey
	if err := store.Upload(ctx, key, bytes.NewReader(tableBytes), "text/csv"); err != nil {
		log.Fatalf("failed to upload review table: %v", err)
	}
	fmt.Printf("uploaded %s table to %s (%d bytes)\n", origin, key, len(tableBytes))

	if !*docs && !*verify {
		return
	}

	sys := catalog.New(
		catalog.NewBlobSource(store, key),
		store, logger, cfg.API.Pagination,
	)

	if *docs {
		cat, err := sys.Load(ctx)
		if err != nil {
			log.Fatalf("failed to load catalog: %v", err)
		}

		for _, docKey := range cat.Keys() {
			err := store.Upload(
				ctx, docKey,
				bytes.NewReader([]byte(placeholderPDF)),
				"application/pdf",
			)
			if err != nil {
				log.Fatalf("failed to upload %s: %v", docKey, err)
			}
		}
		fmt.Printf("uploaded %d placeholder documents\n", cat.Len())
	}

	if *verify {
		report, err := sys.Verify(ctx)
		if err != nil {
			log.Fatalf("failed to verify catalog: %v", err)
		}
		fmt.Printf(
			"verified %d keys: %d present, %d missing, %d failed\n",
			report.Total, report.Present, report.Missing, report.Failed,
		)
	}
}

// resolveTable returns the CSV bytes to seed with and a short origin
// label for output.
func resolveTable(ctx context.Context, path string) ([]byte, string, error) {
	if path == "" {
		rc, err := catalog.NewSampleSource().Open(ctx)
		if err != nil {
			return nil, "", err
		}
		defer rc.Close()

		data, err := io.ReadAll(rc)
		return data, "sample", err
	}

	data, err := os.ReadFile(path)
	return data, path, err
}

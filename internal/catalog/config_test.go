package catalog_test

import (
	"errors"
	"testing"

	"github.com/JaimeStill/collate/internal/catalog"
)

func TestConfigFinalizeDefaults(t *testing.T) {
	cfg := catalog.Config{}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.Source != catalog.SourceFile {
		t.Errorf("source: got %s, want %s", cfg.Source, catalog.SourceFile)
	}
	if cfg.Path != "data/review.csv" {
		t.Errorf("path: got %s, want data/review.csv", cfg.Path)
	}
	if cfg.BlobKey != "tables/review.csv" {
		t.Errorf("blob_key: got %s, want tables/review.csv", cfg.BlobKey)
	}
}

func TestConfigFinalizeEnvOverrides(t *testing.T) {
	t.Setenv("TEST_CATALOG_SOURCE", "sample")
	t.Setenv("TEST_CATALOG_PATH", "fixtures/table.csv")

	env := &catalog.Env{
		Source: "TEST_CATALOG_SOURCE",
		Path:   "TEST_CATALOG_PATH",
	}

	cfg := catalog.Config{}
	if err := cfg.Finalize(env); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.Source != catalog.SourceSample {
		t.Errorf("source: got %s, want %s", cfg.Source, catalog.SourceSample)
	}
	if cfg.Path != "fixtures/table.csv" {
		t.Errorf("path: got %s, want fixtures/table.csv", cfg.Path)
	}
}

func TestConfigFinalizeUnknownSource(t *testing.T) {
	cfg := catalog.Config{Source: "ftp"}
	err := cfg.Finalize(nil)
	if !errors.Is(err, catalog.ErrUnknownSource) {
		t.Fatalf("got %v, want ErrUnknownSource", err)
	}
}

func TestConfigMerge(t *testing.T) {
	cfg := catalog.Config{Source: catalog.SourceFile, Path: "data/review.csv"}
	cfg.Merge(&catalog.Config{Source: catalog.SourceBlob, BlobKey: "tables/alt.csv"})

	if cfg.Source != catalog.SourceBlob {
		t.Errorf("source: got %s, want %s", cfg.Source, catalog.SourceBlob)
	}
	if cfg.Path != "data/review.csv" {
		t.Errorf("path: got %s, want data/review.csv", cfg.Path)
	}
	if cfg.BlobKey != "tables/alt.csv" {
		t.Errorf("blob_key: got %s, want tables/alt.csv", cfg.BlobKey)
	}
}

func TestNewSource(t *testing.T) {
	tests := []struct {
		name         string
		cfg          catalog.Config
		wantDescribe string
		wantErr      error
	}{
		{
			name:         "file",
			cfg:          catalog.Config{Source: catalog.SourceFile, Path: "data/review.csv"},
			wantDescribe: "file:data/review.csv",
		},
		{
			name:         "blob",
			cfg:          catalog.Config{Source: catalog.SourceBlob, BlobKey: "tables/review.csv"},
			wantDescribe: "blob:tables/review.csv",
		},
		{
			name:         "sample",
			cfg:          catalog.Config{Source: catalog.SourceSample},
			wantDescribe: "sample",
		},
		{
			name:    "unknown",
			cfg:     catalog.Config{Source: "ftp"},
			wantErr: catalog.ErrUnknownSource,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := catalog.NewSource(&tt.cfg, &mockStore{})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("got %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if src.Describe() != tt.wantDescribe {
				t.Errorf("describe: got %s, want %s", src.Describe(), tt.wantDescribe)
			}
		})
	}
}

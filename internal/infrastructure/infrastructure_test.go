package infrastructure_test

import (
	"testing"

	"github.com/JaimeStill/collate/internal/catalog"
	"github.com/JaimeStill/collate/internal/config"
	"github.com/JaimeStill/collate/internal/infrastructure"
	"github.com/JaimeStill/collate/pkg/storage"
)

const azuriteConnString = "DefaultEndpointsProtocol=http;AccountName=collatestore;AccountKey=Eby8vdM02xNOcqFlqUwJPLlmEtlCDXJ1OUzFT50uSRZ6IFsuFq2UVErCz4I6tq/K1SZFPTOtr/KBHBeksoGMGw==;BlobEndpoint=http://127.0.0.1:10000/collatestore;"

func validConfig() *config.Config {
	return &config.Config{
		Storage: storage.Config{
			Provider:         storage.ProviderAzure,
			ContainerName:    "documents",
			ConnectionString: azuriteConnString,
			MaxListSize:      50,
			SignedURLTTL:     "15m",
		},
		Catalog: catalog.Config{
			Source: catalog.SourceSample,
		},
		Version: "0.1.0",
	}
}

func TestNew(t *testing.T) {
	infra, err := infrastructure.New(validConfig())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if infra.Lifecycle == nil {
		t.Error("Lifecycle is nil")
	}
	if infra.Logger == nil {
		t.Error("Logger is nil")
	}
	if infra.Storage == nil {
		t.Error("Storage is nil")
	}
	if infra.Source == nil {
		t.Error("Source is nil")
	}
}

func TestNewSampleSource(t *testing.T) {
	infra, err := infrastructure.New(validConfig())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if desc := infra.Source.Describe(); desc != "sample" {
		t.Errorf("source: got %s, want sample", desc)
	}
}

func TestNewBlobSource(t *testing.T) {
	cfg := validConfig()
	cfg.Catalog = catalog.Config{
		Source:  catalog.SourceBlob,
		BlobKey: "tables/review.csv",
	}

	infra, err := infrastructure.New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if desc := infra.Source.Describe(); desc != "blob:tables/review.csv" {
		t.Errorf("source: got %s, want blob:tables/review.csv", desc)
	}
}

func TestNewInvalidStorageConfig(t *testing.T) {
	cfg := validConfig()
	cfg.Storage.Provider = "tape"

	if _, err := infrastructure.New(cfg); err == nil {
		t.Fatal("expected error for unknown storage provider")
	}
}

func TestNewInvalidCatalogConfig(t *testing.T) {
	cfg := validConfig()
	cfg.Catalog.Source = "ftp"

	if _, err := infrastructure.New(cfg); err == nil {
		t.Fatal("expected error for unknown catalog source")
	}
}

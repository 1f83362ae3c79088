package catalog

import (
	"fmt"
	"os"

	"github.com/JaimeStill/collate/pkg/storage"
)

// Catalog source kinds.
const (
	SourceFile   = "file"
	SourceBlob   = "blob"
	SourceSample = "sample"
)

// Config holds review table source parameters. Source selects the
// backing kind; path applies to file sources, blob_key to blob
// sources.
type Config struct {
	Source  string `toml:"source" json:"source"`
	Path    string `toml:"path" json:"path"`
	BlobKey string `toml:"blob_key" json:"blob_key"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Source  string
	Path    string
	BlobKey string
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Source != "" {
		c.Source = overlay.Source
	}
	if overlay.Path != "" {
		c.Path = overlay.Path
	}
	if overlay.BlobKey != "" {
		c.BlobKey = overlay.BlobKey
	}
}

func (c *Config) loadDefaults() {
	if c.Source == "" {
		c.Source = SourceFile
	}
	if c.Path == "" {
		c.Path = "data/review.csv"
	}
	if c.BlobKey == "" {
		c.BlobKey = "tables/review.csv"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Source != "" {
		if v := os.Getenv(env.Source); v != "" {
			c.Source = v
		}
	}
	if env.Path != "" {
		if v := os.Getenv(env.Path); v != "" {
			c.Path = v
		}
	}
	if env.BlobKey != "" {
		if v := os.Getenv(env.BlobKey); v != "" {
			c.BlobKey = v
		}
	}
}

func (c *Config) validate() error {
	switch c.Source {
	case SourceFile, SourceBlob, SourceSample:
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownSource, c.Source)
	}
}

// NewSource builds the table source described by cfg. Blob sources
// read through the given store.
func NewSource(cfg *Config, store storage.System) (Source, error) {
	switch cfg.Source {
	case SourceFile:
		return NewFileSource(cfg.Path), nil
	case SourceBlob:
		return NewBlobSource(store, cfg.BlobKey), nil
	case SourceSample:
		return NewSampleSource(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownSource, cfg.Source)
	}
}

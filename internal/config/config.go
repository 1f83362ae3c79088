package config

import (
	"fmt"
	"os"
	"time"

	"github.com/JaimeStill/collate/internal/audit"
	"github.com/JaimeStill/collate/internal/catalog"
	"github.com/JaimeStill/collate/internal/viewer"
	"github.com/JaimeStill/collate/pkg/storage"
	"github.com/pelletier/go-toml/v2"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvCollateEnv             = "COLLATE_ENV"
	EnvCollateShutdownTimeout = "COLLATE_SHUTDOWN_TIMEOUT"
	EnvCollateVersion         = "COLLATE_VERSION"
)

var storageEnv = &storage.Env{
	Provider:         "COLLATE_STORAGE_PROVIDER",
	ContainerName:    "COLLATE_STORAGE_CONTAINER_NAME",
	ConnectionString: "COLLATE_STORAGE_CONNECTION_STRING",
	Endpoint:         "COLLATE_STORAGE_ENDPOINT",
	AccessKey:        "COLLATE_STORAGE_ACCESS_KEY",
	SecretKey:        "COLLATE_STORAGE_SECRET_KEY",
	UseSSL:           "COLLATE_STORAGE_USE_SSL",
	MaxListSize:      "COLLATE_STORAGE_MAX_LIST_SIZE",
	SignedURLTTL:     "COLLATE_STORAGE_SIGNED_URL_TTL",
}

var catalogEnv = &catalog.Env{
	Source:  "COLLATE_CATALOG_SOURCE",
	Path:    "COLLATE_CATALOG_PATH",
	BlobKey: "COLLATE_CATALOG_BLOB_KEY",
}

var viewerEnv = &viewer.Env{
	Strategies:    "COLLATE_VIEWER_STRATEGIES",
	MaxInlineSize: "COLLATE_VIEWER_MAX_INLINE_SIZE",
	SignedURLTTL:  "COLLATE_VIEWER_SIGNED_URL_TTL",
	PDFJSViewer:   "COLLATE_VIEWER_PDFJS_VIEWER",
	ProxyPath:     "COLLATE_VIEWER_PROXY_PATH",
}

var auditEnv = &audit.Env{
	KeyPrefix: "COLLATE_AUDIT_KEY_PREFIX",
	Filename:  "COLLATE_AUDIT_FILENAME",
}

// Config is the root configuration for the Collate service.
type Config struct {
	Server          ServerConfig   `toml:"server"`
	Storage         storage.Config `toml:"storage"`
	Catalog         catalog.Config `toml:"catalog"`
	Viewer          viewer.Config  `toml:"viewer"`
	Audit           audit.Config   `toml:"audit"`
	API             APIConfig      `toml:"api"`
	ShutdownTimeout string         `toml:"shutdown_timeout"`
	Version         string         `toml:"version"`
}

// Env returns the COLLATE_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvCollateEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and environment
// variables provide all configuration.
func Load() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Storage.Merge(&overlay.Storage)
	c.Catalog.Merge(&overlay.Catalog)
	c.Viewer.Merge(&overlay.Viewer)
	c.Audit.Merge(&overlay.Audit)
	c.API.Merge(&overlay.API)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.Catalog.Finalize(catalogEnv); err != nil {
		return fmt.Errorf("catalog: %w", err)
	}
	if err := c.Viewer.Finalize(viewerEnv); err != nil {
		return fmt.Errorf("viewer: %w", err)
	}
	if err := c.Audit.Finalize(auditEnv); err != nil {
		return fmt.Errorf("audit: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvCollateShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvCollateVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvCollateEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

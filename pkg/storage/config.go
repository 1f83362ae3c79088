package storage

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Supported storage providers.
const (
	ProviderAzure = "azure"
	ProviderS3    = "s3"
)

// Config holds blob storage connection parameters. Provider selects the
// backing implementation; connection_string applies to azure, while
// endpoint and credentials apply to s3.
type Config struct {
	Provider         string `toml:"provider" json:"provider"`
	ContainerName    string `toml:"container_name" json:"container_name"`
	ConnectionString string `toml:"connection_string" json:"-"`
	Endpoint         string `toml:"endpoint" json:"endpoint,omitempty"`
	AccessKey        string `toml:"access_key" json:"-"`
	SecretKey        string `toml:"secret_key" json:"-"`
	UseSSL           bool   `toml:"use_ssl" json:"use_ssl"`
	MaxListSize      int32  `toml:"max_list_size" json:"max_list_size"`
	SignedURLTTL     string `toml:"signed_url_ttl" json:"signed_url_ttl"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Provider         string
	ContainerName    string
	ConnectionString string
	Endpoint         string
	AccessKey        string
	SecretKey        string
	UseSSL           string
	MaxListSize      string
	SignedURLTTL     string
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
	if overlay.Provider != "" {
		c.Provider = overlay.Provider
	}
	if overlay.ContainerName != "" {
		c.ContainerName = overlay.ContainerName
	}
	if overlay.ConnectionString != "" {
		c.ConnectionString = overlay.ConnectionString
	}
	if overlay.Endpoint != "" {
		c.Endpoint = overlay.Endpoint
	}
	if overlay.AccessKey != "" {
		c.AccessKey = overlay.AccessKey
	}
	if overlay.SecretKey != "" {
		c.SecretKey = overlay.SecretKey
	}
	c.UseSSL = overlay.UseSSL
	if overlay.MaxListSize != 0 {
		c.MaxListSize = overlay.MaxListSize
	}
	if overlay.SignedURLTTL != "" {
		c.SignedURLTTL = overlay.SignedURLTTL
	}
}

// SignedURLTTLDuration returns SignedURLTTL as a time.Duration.
func (c *Config) SignedURLTTLDuration() time.Duration {
	d, _ := time.ParseDuration(c.SignedURLTTL)
	return d
}

func (c *Config) loadDefaults() {
	if c.Provider == "" {
		c.Provider = ProviderAzure
	}
	if c.ContainerName == "" {
		c.ContainerName = "documents"
	}
	if c.MaxListSize == 0 {
		c.MaxListSize = 50
	}
	if c.MaxListSize > MaxListCap {
		c.MaxListSize = MaxListCap
	}
	if c.SignedURLTTL == "" {
		c.SignedURLTTL = "15m"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Provider != "" {
		if v := os.Getenv(env.Provider); v != "" {
			c.Provider = v
		}
	}
	if env.ContainerName != "" {
		if v := os.Getenv(env.ContainerName); v != "" {
			c.ContainerName = v
		}
	}
	if env.ConnectionString != "" {
		if v := os.Getenv(env.ConnectionString); v != "" {
			c.ConnectionString = v
		}
	}
	if env.Endpoint != "" {
		if v := os.Getenv(env.Endpoint); v != "" {
			c.Endpoint = v
		}
	}
	if env.AccessKey != "" {
		if v := os.Getenv(env.AccessKey); v != "" {
			c.AccessKey = v
		}
	}
	if env.SecretKey != "" {
		if v := os.Getenv(env.SecretKey); v != "" {
			c.SecretKey = v
		}
	}
	if env.UseSSL != "" {
		if v := os.Getenv(env.UseSSL); v != "" {
			if ssl, err := strconv.ParseBool(v); err == nil {
				c.UseSSL = ssl
			}
		}
	}
	if env.MaxListSize != "" {
		if v := os.Getenv(env.MaxListSize); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				c.MaxListSize = min(int32(n), MaxListCap)
			}
		}
	}
	if env.SignedURLTTL != "" {
		if v := os.Getenv(env.SignedURLTTL); v != "" {
			c.SignedURLTTL = v
		}
	}
}

func (c *Config) validate() error {
	if c.ContainerName == "" {
		return fmt.Errorf("container_name required")
	}
	if _, err := time.ParseDuration(c.SignedURLTTL); err != nil {
		return fmt.Errorf("invalid signed_url_ttl: %w", err)
	}

	switch c.Provider {
	case ProviderAzure:
		if c.ConnectionString == "" {
			return fmt.Errorf("connection_string required for azure provider")
		}
	case ProviderS3:
		if c.Endpoint == "" {
			return fmt.Errorf("endpoint required for s3 provider")
		}
		if c.AccessKey == "" || c.SecretKey == "" {
			return fmt.Errorf("access_key and secret_key required for s3 provider")
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnknownProvider, c.Provider)
	}

	return nil
}

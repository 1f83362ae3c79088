package audit

import (
	"fmt"
	"os"
	"strings"
)

// Config holds audit export destination parameters.
type Config struct {
	KeyPrefix string `toml:"key_prefix" json:"key_prefix"`
	Filename  string `toml:"filename" json:"filename"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	KeyPrefix string
	Filename  string
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
	if overlay.KeyPrefix != "" {
		c.KeyPrefix = overlay.KeyPrefix
	}
	if overlay.Filename != "" {
		c.Filename = overlay.Filename
	}
}

func (c *Config) loadDefaults() {
	if c.KeyPrefix == "" {
		c.KeyPrefix = "audit/audit_trails"
	}
	if c.Filename == "" {
		c.Filename = "audit_trail.csv"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.KeyPrefix != "" {
		if v := os.Getenv(env.KeyPrefix); v != "" {
			c.KeyPrefix = v
		}
	}
	if env.Filename != "" {
		if v := os.Getenv(env.Filename); v != "" {
			c.Filename = v
		}
	}
}

func (c *Config) validate() error {
	if strings.Contains(c.KeyPrefix, "..") {
		return fmt.Errorf("invalid key_prefix: %s", c.KeyPrefix)
	}
	if strings.Contains(c.Filename, "/") {
		return fmt.Errorf("invalid filename: %s", c.Filename)
	}
	return nil
}

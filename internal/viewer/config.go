package viewer

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/JaimeStill/collate/pkg/formatting"
)

// Strategy names accepted in configuration order.
const (
	StrategyInline = "inline"
	StrategyFrame  = "frame"
	StrategySigned = "signed"
	StrategyPDFJS  = "pdfjs"
	StrategyProxy  = "proxy"
)

var knownStrategies = []string{
	StrategyInline,
	StrategyFrame,
	StrategySigned,
	StrategyPDFJS,
	StrategyProxy,
}

// Config holds view rendering parameters. Strategies lists the chain
// in attempt order.
type Config struct {
	Strategies    []string `toml:"strategies" json:"strategies"`
	MaxInlineSize string   `toml:"max_inline_size" json:"max_inline_size"`
	SignedURLTTL  string   `toml:"signed_url_ttl" json:"signed_url_ttl"`
	PDFJSViewer   string   `toml:"pdfjs_viewer" json:"pdfjs_viewer"`
	ProxyPath     string   `toml:"proxy_path" json:"proxy_path"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Strategies    string
	MaxInlineSize string
	SignedURLTTL  string
	PDFJSViewer   string
	ProxyPath     string
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
	if len(overlay.Strategies) > 0 {
		c.Strategies = overlay.Strategies
	}
	if overlay.MaxInlineSize != "" {
		c.MaxInlineSize = overlay.MaxInlineSize
	}
	if overlay.SignedURLTTL != "" {
		c.SignedURLTTL = overlay.SignedURLTTL
	}
	if overlay.PDFJSViewer != "" {
		c.PDFJSViewer = overlay.PDFJSViewer
	}
	if overlay.ProxyPath != "" {
		c.ProxyPath = overlay.ProxyPath
	}
}

// MaxInlineBytes returns the inline embed size cap in bytes.
func (c *Config) MaxInlineBytes() int64 {
	n, _ := formatting.ParseBytes(c.MaxInlineSize)
	return n
}

// SignedURLTTLDuration returns SignedURLTTL as a time.Duration.
func (c *Config) SignedURLTTLDuration() time.Duration {
	d, _ := time.ParseDuration(c.SignedURLTTL)
	return d
}

func (c *Config) loadDefaults() {
	if len(c.Strategies) == 0 {
		c.Strategies = slices.Clone(knownStrategies)
	}
	if c.MaxInlineSize == "" {
		c.MaxInlineSize = "10MB"
	}
	if c.SignedURLTTL == "" {
		c.SignedURLTTL = "15m"
	}
	if c.PDFJSViewer == "" {
		c.PDFJSViewer = "https://mozilla.github.io/pdf.js/web/viewer.html"
	}
	if c.ProxyPath == "" {
		c.ProxyPath = "/api/storage/download"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Strategies != "" {
		if v := os.Getenv(env.Strategies); v != "" {
			c.Strategies = strings.Split(v, ",")
			for i := range c.Strategies {
				c.Strategies[i] = strings.TrimSpace(c.Strategies[i])
			}
		}
	}
	if env.MaxInlineSize != "" {
		if v := os.Getenv(env.MaxInlineSize); v != "" {
			c.MaxInlineSize = v
		}
	}
	if env.SignedURLTTL != "" {
		if v := os.Getenv(env.SignedURLTTL); v != "" {
			c.SignedURLTTL = v
		}
	}
	if env.PDFJSViewer != "" {
		if v := os.Getenv(env.PDFJSViewer); v != "" {
			c.PDFJSViewer = v
		}
	}
	if env.ProxyPath != "" {
		if v := os.Getenv(env.ProxyPath); v != "" {
			c.ProxyPath = v
		}
	}
}

func (c *Config) validate() error {
	if len(c.Strategies) == 0 {
		return fmt.Errorf("at least one strategy required")
	}
	for _, name := range c.Strategies {
		if !slices.Contains(knownStrategies, name) {
			return fmt.Errorf("%w: %s", ErrUnknownStrategy, name)
		}
	}
	if _, err := formatting.ParseBytes(c.MaxInlineSize); err != nil {
		return fmt.Errorf("invalid max_inline_size: %w", err)
	}
	if _, err := time.ParseDuration(c.SignedURLTTL); err != nil {
		return fmt.Errorf("invalid signed_url_ttl: %w", err)
	}
	return nil
}

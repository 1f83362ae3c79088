// Package viewer implements the document view domain: an ordered chain
// of rendering strategies that turn a storage key into embeddable view
// markup, falling through to the next strategy on failure.
package viewer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/collate/pkg/pagination"
	"github.com/JaimeStill/collate/pkg/storage"
)

// View is the rendered result for one document pane. HTML is always
// populated: either embeddable markup from the winning strategy or an
// inline error placeholder when every strategy failed.
type View struct {
	Key      string `json:"key"`
	Strategy string `json:"strategy"`
	HTML     string `json:"html"`
	URL      string `json:"url,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Strategy renders a view for a storage key.
type Strategy interface {
	// Name identifies the strategy in configuration, logs, and counters.
	Name() string

	// Render produces an embeddable view for the blob at key.
	Render(ctx context.Context, key string) (*View, error)
}

// System manages view rendering across the configured strategy chain.
type System interface {
	// Handler returns the HTTP handler for viewer endpoints.
	Handler() *Handler

	// Render returns the first successful strategy's view for key, or
	// the error placeholder view when every strategy fails.
	Render(ctx context.Context, key string) (*View, error)

	// Strategies reports the configured chain order with render
	// counters.
	Strategies() []StrategyStats
}

type system struct {
	driver     *Driver
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a viewer system with the strategy chain described by cfg.
func New(
	cfg *Config,
	store storage.System,
	logger *slog.Logger,
	pagination pagination.Config,
) (System, error) {
	strategies := make([]Strategy, 0, len(cfg.Strategies))
	for _, name := range cfg.Strategies {
		strat, err := buildStrategy(name, store, cfg)
		if err != nil {
			return nil, err
		}
		strategies = append(strategies, strat)
	}

	sysLogger := logger.With("system", "viewer")

	return &system{
		driver:     NewDriver(strategies, sysLogger),
		logger:     sysLogger,
		pagination: pagination,
	}, nil
}

func buildStrategy(name string, store storage.System, cfg *Config) (Strategy, error) {
	switch name {
	case StrategyInline:
		return &inlineStrategy{store: store, maxSize: cfg.MaxInlineBytes()}, nil
	case StrategyFrame:
		return &frameStrategy{store: store, maxSize: cfg.MaxInlineBytes()}, nil
	case StrategySigned:
		return &signedStrategy{store: store, ttl: cfg.SignedURLTTLDuration()}, nil
	case StrategyPDFJS:
		return &pdfjsStrategy{
			store:  store,
			ttl:    cfg.SignedURLTTLDuration(),
			viewer: cfg.PDFJSViewer,
		}, nil
	case StrategyProxy:
		return &proxyStrategy{store: store, basePath: cfg.ProxyPath}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownStrategy, name)
	}
}

func (s *system) Handler() *Handler {
	return NewHandler(s, s.logger, s.pagination)
}

func (s *system) Render(ctx context.Context, key string) (*View, error) {
	return s.driver.Render(ctx, key)
}

func (s *system) Strategies() []StrategyStats {
	return s.driver.Stats()
}

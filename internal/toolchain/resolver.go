// SPDX-License-Identifier: MPL-2.0

package toolchain

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
)

// ErrToolUnavailable indicates the tool could not be located or installed by
// any strategy. This is fatal for the bootstrap run.
var ErrToolUnavailable = errors.New("package-manager executable unavailable")

type (
	// Resolution is the outcome of a successful tool resolution.
	Resolution struct {
		// Path is the absolute executable path.
		Path string
		// Strategy is the name of the strategy that produced the path.
		Strategy string
	}

	// Resolver tries an ordered list of strategies, first success wins.
	Resolver struct {
		tool       string
		strategies []Strategy
		logger     *log.Logger
	}

	// ResolverOption configures a Resolver during construction.
	ResolverOption func(*Resolver)
)

// WithStrategies overrides the default strategy order.
func WithStrategies(strategies ...Strategy) ResolverOption {
	return func(r *Resolver) {
		r.strategies = strategies
	}
}

// WithLogger overrides the default logger.
func WithLogger(logger *log.Logger) ResolverOption {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// WithoutInstallFallback restricts resolution to the locate strategies.
func WithoutInstallFallback() ResolverOption {
	return func(r *Resolver) {
		r.strategies = []Strategy{
			&PathStrategy{Tool: r.tool},
			&KnownDirsStrategy{Tool: r.tool},
		}
	}
}

// NewResolver creates a resolver for tool with the default strategy order:
// locate-in-PATH, locate-in-known-dir, install-then-locate.
func NewResolver(tool string, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		tool:   tool,
		logger: log.Default(),
	}
	r.strategies = []Strategy{
		&PathStrategy{Tool: tool},
		&KnownDirsStrategy{Tool: tool},
		&InstallStrategy{Tool: tool, Logger: r.logger},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve runs the strategies in order and returns the first success. When
// every strategy fails the returned error wraps ErrToolUnavailable.
func (r *Resolver) Resolve(ctx context.Context) (*Resolution, error) {
	for _, strategy := range r.strategies {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("tool resolution canceled: %w", ctx.Err())
		default:
		}

		path, err := strategy.Resolve(ctx)
		if err == nil {
			r.logger.Debug("tool resolved", "tool", r.tool, "strategy", strategy.Name(), "path", path)
			return &Resolution{Path: path, Strategy: strategy.Name()}, nil
		}
		if !errors.Is(err, ErrNotLocated) {
			return nil, fmt.Errorf("strategy %s: %w", strategy.Name(), err)
		}
		r.logger.Debug("strategy missed", "tool", r.tool, "strategy", strategy.Name(), "reason", err)
	}

	return nil, fmt.Errorf("%w: %q (tried %d strategies)", ErrToolUnavailable, r.tool, len(r.strategies))
}

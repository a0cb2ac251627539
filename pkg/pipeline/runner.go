package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/thumbkit/pkg/cache"
	"github.com/matzehuels/thumbkit/pkg/compose"
	"github.com/matzehuels/thumbkit/pkg/observability"
	"github.com/matzehuels/thumbkit/pkg/scene"
)

const keyTypeArtifact = "artifact"

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete compose → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	hash, err := opts.RequestHash()
	if err != nil {
		return nil, err
	}
	result := &Result{RequestHash: hash}

	// Stage 1: Compose
	start := time.Now()
	root, err := r.Build(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("compose: %w", err)
	}
	result.Scene = root
	result.Stats.ComposeTime = time.Since(start)
	result.Stats.NodeCount = scene.Count(root)

	r.Logger.Info("composed scene",
		"nodes", result.Stats.NodeCount,
		"duration", result.Stats.ComposeTime)

	// Stage 2: Render
	start = time.Now()
	artifacts, hit, err := r.renderWithCacheInfo(ctx, root, hash, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(start)
	result.CacheInfo.RenderHit = hit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Build composes the scene tree for opts.Request.
func (r *Runner) Build(ctx context.Context, opts Options) (*scene.Node, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	revision := opts.Request.Revision
	observability.Pipeline().OnComposeStart(ctx, revision)
	start := time.Now()

	composeOpts := []compose.Option{compose.WithLogger(opts.Logger)}
	if opts.Measurer != nil {
		composeOpts = append(composeOpts, compose.WithMeasurer(opts.Measurer))
	}
	root, err := compose.Build(opts.Request, composeOpts...)

	nodes := 0
	if root != nil {
		nodes = scene.Count(root)
	}
	observability.Pipeline().OnComposeComplete(ctx, revision, nodes, time.Since(start), err)
	return root, err
}

// RenderWithCacheInfo renders artifacts for a composed scene, using the
// cache for every cacheable format, and reports whether all cacheable
// formats were cache hits.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, root *scene.Node, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)
	hash, err := opts.RequestHash()
	if err != nil {
		return nil, false, err
	}
	return r.renderWithCacheInfo(ctx, root, hash, opts)
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, root *scene.Node, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, root, opts)
	return artifacts, err
}

func (r *Runner) renderWithCacheInfo(ctx context.Context, root *scene.Node, hash string, opts Options) (map[string][]byte, bool, error) {
	hooks := observability.Cache()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts := make(map[string][]byte, len(opts.Formats))
	allHit, anyCacheable := true, false
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
		cacheable := Cacheable(format)
		anyCacheable = anyCacheable || cacheable

		if cacheable && !opts.Refresh {
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil {
				r.Logger.Warn("cache read failed", "format", format, "error", err)
			}
			if err == nil && hit {
				hooks.OnCacheHit(ctx, keyTypeArtifact)
				artifacts[format] = data
				continue
			}
			hooks.OnCacheMiss(ctx, keyTypeArtifact)
		}
		if cacheable {
			allHit = false
		}

		data, err := RenderFormat(ctx, root, format, opts.Scale)
		if err != nil {
			observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
			return nil, false, err
		}
		artifacts[format] = data

		if cacheable {
			if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
				r.Logger.Warn("cache write failed", "format", format, "error", err)
			} else {
				hooks.OnCacheSet(ctx, keyTypeArtifact, len(data))
			}
		}
	}

	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
	return artifacts, allHit && anyCacheable, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// Package cli implements the thumbkit command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/thumbkit/pkg/buildinfo"
	"github.com/matzehuels/thumbkit/pkg/cache"
	"github.com/matzehuels/thumbkit/pkg/fonts"
	"github.com/matzehuels/thumbkit/pkg/measure"
	"github.com/matzehuels/thumbkit/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "thumbkit"

	// Environment variables consulted when the matching flag is unset.
	envRedisURL = "THUMBKIT_REDIS_URL"
	envFontDir  = "THUMBKIT_FONT_DIR"
	envCacheNS  = "THUMBKIT_CACHE_NAMESPACE"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Thumbkit composes thumbnails from text, tags and contributors",
		Long: `Thumbkit is a procedural thumbnail composer. It lays out a heading,
description, tag pills and contributor chips on a fixed canvas and renders
the result to SVG, PNG, PDF or a JSON scene tree.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.initCommand())
	root.AddCommand(c.presetsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Shared Flags
// =============================================================================

// backendFlags select the cache and font backends. Shared by every command
// that runs the pipeline.
type backendFlags struct {
	noCache   bool
	redisURL  string
	fontDir   string
	namespace string
}

func (f *backendFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&f.redisURL, "redis-url", "", "cache artifacts in Redis instead of on disk (env "+envRedisURL+")")
	cmd.Flags().StringVar(&f.fontDir, "font-dir", "", "directory of Family-Weight.ttf files to measure with (env "+envFontDir+")")
	cmd.Flags().StringVar(&f.namespace, "cache-namespace", "", "prefix for cache keys, for backends shared between deployments (env "+envCacheNS+")")
}

// resolve fills unset flags from the environment.
func (f *backendFlags) resolve() {
	if f.redisURL == "" {
		f.redisURL = os.Getenv(envRedisURL)
	}
	if f.fontDir == "" {
		f.fontDir = os.Getenv(envFontDir)
	}
	if f.namespace == "" {
		f.namespace = os.Getenv(envCacheNS)
	}
}

func (f backendFlags) keyer() cache.Keyer {
	if f.namespace == "" {
		return cache.NewDefaultKeyer()
	}
	return cache.NewScopedKeyer(nil, f.namespace+":")
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, f backendFlags) (*pipeline.Runner, error) {
	store, err := c.newCache(ctx, f)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, f.keyer(), c.Logger), nil
}

func (c *CLI) newCache(ctx context.Context, f backendFlags) (cache.Cache, error) {
	if f.noCache {
		return cache.NewNullCache(), nil
	}
	if f.redisURL != "" {
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{URL: f.redisURL})
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		c.Logger.Debug("using redis cache")
		return rc, nil
	}
	dir, err := cacheDir()
	if err != nil {
		c.Logger.Warn("no cache directory, caching disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// newMeasurer returns a text measurer over the built-in fonts plus any
// fonts found in fontDir.
func (c *CLI) newMeasurer(fontDir string) (measure.Measurer, error) {
	reg, err := fonts.New()
	if err != nil {
		return nil, fmt.Errorf("load built-in fonts: %w", err)
	}
	if fontDir != "" {
		n, err := reg.LoadDir(fontDir)
		if err != nil {
			return nil, fmt.Errorf("load fonts from %s: %w", fontDir, err)
		}
		c.Logger.Debug("loaded fonts", "dir", fontDir, "count", n)
	}
	return measure.NewOpenType(reg, measure.WithLogger(c.Logger)), nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/thumbkit/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// Package pipeline provides the thumbnail pipeline shared by the CLI and
// the HTTP server.
//
// # Architecture
//
// The pipeline has two stages:
//
//  1. Compose: resolve styles, measure text, lay out and emit a scene tree
//     (see package compose)
//  2. Render: turn the scene into artifacts (SVG, JSON, PNG, PDF)
//
// Scenes are composed fresh for every run. Rendered artifacts are cached
// by a hash of the request and the render options, so repeated requests
// skip rsvg-convert entirely.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Request: req,
//	    Formats: []string{"svg", "png"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	png := result.Artifacts["png"]
package pipeline

import (
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/thumbkit/pkg/cache"
	"github.com/matzehuels/thumbkit/pkg/canvas"
	"github.com/matzehuels/thumbkit/pkg/compose"
	"github.com/matzehuels/thumbkit/pkg/errors"
	"github.com/matzehuels/thumbkit/pkg/measure"
	"github.com/matzehuels/thumbkit/pkg/scene"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultScale is the PNG scale factor.
	DefaultScale = 1.0

	// MaxScale bounds PNG output to 8x the canvas size.
	MaxScale = 8.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ContentTypes maps formats to MIME types.
var ContentTypes = map[string]string{
	FormatSVG:  "image/svg+xml",
	FormatPNG:  "image/png",
	FormatPDF:  "application/pdf",
	FormatJSON: "application/json",
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
type Options struct {
	Request *canvas.Request `json:"request"`
	Formats []string        `json:"formats,omitempty"`
	Scale   float64         `json:"scale,omitempty"` // PNG only
	Refresh bool            `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger   *log.Logger      `json:"-"`
	Measurer measure.Measurer `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Scene is the composed scene tree.
	Scene *scene.Node

	// RequestHash is the content hash of the request.
	RequestHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount   int
	ComposeTime time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	RenderHit bool // Whether all cacheable artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateScale checks a PNG scale factor.
func ValidateScale(scale float64) error {
	if scale <= 0 || scale > MaxScale {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be in (0, %g], got %g", MaxScale, scale)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Request == nil {
		return errors.New(errors.ErrCodeInvalidInput, "request is required")
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidateScale(o.Scale); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
}

// RequestHash returns a content hash of the request, stable across runs.
func (o *Options) RequestHash() (string, error) {
	data, err := json.Marshal(o.Request)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "hash request")
	}
	return cache.Hash(data), nil
}

// measurer returns the measurer composition will use.
func (o *Options) measurer() measure.Measurer {
	if o.Measurer != nil {
		return o.Measurer
	}
	return compose.DefaultMeasurer()
}

// ArtifactKeyOpts returns cache key options for one format. Layout depends
// on the measurer's fonts; scale only affects PNG output.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format, Measurer: measure.Fingerprint(o.measurer())}
	if format == FormatPNG {
		opts.Scale = o.Scale
	}
	return opts
}

// Cacheable reports whether a format's bytes are cached. JSON output
// carries the per-build canvas ID, so it is always regenerated.
func Cacheable(format string) bool {
	return format != FormatJSON
}

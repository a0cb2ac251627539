package pipeline

import (
	"bytes"
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/thumbkit/pkg/cache"
	"github.com/matzehuels/thumbkit/pkg/canvas"
	"github.com/matzehuels/thumbkit/pkg/color"
	"github.com/matzehuels/thumbkit/pkg/compose"
	"github.com/matzehuels/thumbkit/pkg/errors"
	"github.com/matzehuels/thumbkit/pkg/fonts"
	"github.com/matzehuels/thumbkit/pkg/measure"
	"github.com/matzehuels/thumbkit/pkg/observability"
	"github.com/matzehuels/thumbkit/pkg/scene"
)

func testRequest() *canvas.Request {
	return &canvas.Request{
		Heading:     "Procedural thumbnails",
		Description: "Tags and chips packed into rows",
		Styles: canvas.Styles{
			Heading:     canvas.TextStyle{Color: "#ffffff"},
			Description: &canvas.TextStyle{Color: "#e5e7eb"},
			Background:  canvas.Background{Color: "#0f172a", Gradient: true},
			Tags:        []canvas.Tag{{Text: "go"}, {Text: "layout"}},
		},
	}
}

func testOptions(formats ...string) Options {
	return Options{
		Request:  testRequest(),
		Formats:  formats,
		Measurer: measure.Approx{},
	}
}

func testLogger() *log.Logger { return log.New(io.Discard) }

// memCache is an in-memory cache.Cache that counts operations.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func newMemCache() *memCache { return &memCache{data: make(map[string][]byte)} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.data[key]
	return d, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
	c.sets++
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) Close() error { return nil }

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s, want %s", tt.format, errors.GetCode(err), errors.ErrCodeInvalidFormat)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateScale(t *testing.T) {
	tests := []struct {
		scale   float64
		wantErr bool
	}{
		{1, false},
		{0.5, false},
		{MaxScale, false},
		{0, true},
		{-1, true},
		{MaxScale + 0.1, true},
	}
	for _, tt := range tests {
		if err := ValidateScale(tt.scale); (err != nil) != tt.wantErr {
			t.Errorf("ValidateScale(%g) error = %v, wantErr %v", tt.scale, err, tt.wantErr)
		}
	}
}

func TestOptionsValidateAndSetDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("nil request: got %v, want INVALID_INPUT", err)
	}

	opts = Options{Request: testRequest()}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error: %v", err)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale = %g, want %g", opts.Scale, DefaultScale)
	}

	opts = Options{Request: testRequest(), Formats: []string{"gif"}}
	if err := opts.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("bad format: got %v, want INVALID_FORMAT", err)
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Request: testRequest()}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	first := opts.Formats
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if len(opts.Formats) != len(first) || opts.Formats[0] != first[0] {
		t.Errorf("second call changed formats: %v -> %v", first, opts.Formats)
	}
}

func TestRequestHash(t *testing.T) {
	a := Options{Request: testRequest()}
	b := Options{Request: testRequest()}
	ha, err := a.RequestHash()
	if err != nil {
		t.Fatal(err)
	}
	hb, _ := b.RequestHash()
	if ha != hb {
		t.Errorf("equal requests hash differently: %s vs %s", ha, hb)
	}

	b.Request.Heading = "Something else"
	hb, _ = b.RequestHash()
	if ha == hb {
		t.Error("different requests share a hash")
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{Request: testRequest(), Scale: 2}
	if got := opts.ArtifactKeyOpts(FormatPNG); got.Scale != 2 {
		t.Errorf("png scale = %g, want 2", got.Scale)
	}
	if got := opts.ArtifactKeyOpts(FormatSVG); got.Scale != 0 {
		t.Errorf("svg scale = %g, want 0", got.Scale)
	}
	if got, want := opts.ArtifactKeyOpts(FormatSVG).Measurer, measure.Fingerprint(compose.DefaultMeasurer()); got != want {
		t.Errorf("default measurer fingerprint = %q, want %q", got, want)
	}
	opts.Measurer = measure.Approx{}
	if got := opts.ArtifactKeyOpts(FormatSVG).Measurer; got != "approx" {
		t.Errorf("approx measurer fingerprint = %q", got)
	}
}

func TestCacheable(t *testing.T) {
	for _, f := range []string{FormatSVG, FormatPNG, FormatPDF} {
		if !Cacheable(f) {
			t.Errorf("Cacheable(%q) = false", f)
		}
	}
	if Cacheable(FormatJSON) {
		t.Error("Cacheable(json) = true")
	}
}

func TestRunnerExecute(t *testing.T) {
	r := NewRunner(nil, nil, testLogger())
	res, err := r.Execute(context.Background(), testOptions(FormatSVG, FormatJSON))
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if res.Scene == nil || res.Scene.Name != scene.NameCanvas {
		t.Fatalf("Scene root = %+v, want thumbnail frame", res.Scene)
	}
	if res.Stats.NodeCount != scene.Count(res.Scene) {
		t.Errorf("NodeCount = %d, want %d", res.Stats.NodeCount, scene.Count(res.Scene))
	}
	if res.RequestHash == "" {
		t.Error("RequestHash is empty")
	}

	svg := res.Artifacts[FormatSVG]
	if !bytes.HasPrefix(svg, []byte("<svg")) {
		t.Errorf("svg artifact does not start with <svg: %.40q", svg)
	}
	if !bytes.Contains(svg, []byte("Procedural thumbnails")) {
		t.Error("svg artifact is missing the heading")
	}

	root, err := scene.Unmarshal(res.Artifacts[FormatJSON])
	if err != nil {
		t.Fatalf("json artifact: %v", err)
	}
	if root.ID != res.Scene.ID {
		t.Errorf("json root ID = %q, want %q", root.ID, res.Scene.ID)
	}
}

func TestRunnerExecuteInvalidRequest(t *testing.T) {
	r := NewRunner(nil, nil, testLogger())
	opts := testOptions()
	opts.Request.Styles.Heading.Position = "sideways"
	if _, err := r.Execute(context.Background(), opts); !errors.Is(err, errors.ErrCodeInvalidPosition) {
		t.Errorf("Execute() error = %v, want INVALID_POSITION", err)
	}
}

func TestRunnerRenderCache(t *testing.T) {
	c := newMemCache()
	r := NewRunner(c, nil, testLogger())
	ctx := context.Background()

	first, err := r.Execute(ctx, testOptions(FormatSVG, FormatJSON))
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.RenderHit {
		t.Error("first run reported a cache hit")
	}
	if c.sets != 1 {
		t.Errorf("cache sets = %d, want 1 (json is never cached)", c.sets)
	}

	second, err := r.Execute(ctx, testOptions(FormatSVG, FormatJSON))
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.RenderHit {
		t.Error("second run missed the cache")
	}
	if !bytes.Equal(first.Artifacts[FormatSVG], second.Artifacts[FormatSVG]) {
		t.Error("cached svg differs from rendered svg")
	}
	if first.Scene.ID == second.Scene.ID {
		t.Error("scenes share an ID; each run must compose a fresh scene")
	}

	opts := testOptions(FormatSVG)
	opts.Refresh = true
	third, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.RenderHit {
		t.Error("refresh run reported a cache hit")
	}
	if c.sets != 2 {
		t.Errorf("cache sets = %d, want 2 after refresh", c.sets)
	}
}

func TestRunnerJSONOnlyNeverHits(t *testing.T) {
	r := NewRunner(newMemCache(), nil, testLogger())
	for i := 0; i < 2; i++ {
		res, err := r.Execute(context.Background(), testOptions(FormatJSON))
		if err != nil {
			t.Fatal(err)
		}
		if res.CacheInfo.RenderHit {
			t.Errorf("run %d: json-only output reported a cache hit", i)
		}
	}
}

func TestRunnerFileCache(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, nil, testLogger())
	defer r.Close()

	ctx := context.Background()
	if _, err := r.Execute(ctx, testOptions(FormatSVG)); err != nil {
		t.Fatal(err)
	}
	entries, _, err := fc.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if entries != 1 {
		t.Errorf("file cache entries = %d, want 1", entries)
	}
	res, err := r.Execute(ctx, testOptions(FormatSVG))
	if err != nil {
		t.Fatal(err)
	}
	if !res.CacheInfo.RenderHit {
		t.Error("file cache miss on second run")
	}
}

type countingHooks struct {
	observability.NoopCacheHooks
	hits, misses, sets int
}

func (h *countingHooks) OnCacheHit(context.Context, string)      { h.hits++ }
func (h *countingHooks) OnCacheMiss(context.Context, string)     { h.misses++ }
func (h *countingHooks) OnCacheSet(context.Context, string, int) { h.sets++ }

func TestRunnerCacheHooks(t *testing.T) {
	hooks := &countingHooks{}
	observability.SetCacheHooks(hooks)
	defer observability.Reset()

	r := NewRunner(newMemCache(), nil, testLogger())
	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if _, err := r.Execute(ctx, testOptions(FormatSVG)); err != nil {
			t.Fatal(err)
		}
	}
	if hooks.misses != 1 || hooks.hits != 1 || hooks.sets != 1 {
		t.Errorf("hooks = %d misses, %d hits, %d sets; want 1 each", hooks.misses, hooks.hits, hooks.sets)
	}
}

func TestRenderFormat(t *testing.T) {
	root := scene.NewCanvas(100, 50, color.White)
	data, err := RenderFormat(context.Background(), root, FormatSVG, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte(`width="100"`)) {
		t.Errorf("svg missing canvas width: %s", data)
	}
	if _, err := RenderFormat(context.Background(), root, "gif", 1); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("RenderFormat(gif) error = %v, want INVALID_FORMAT", err)
	}
}

func TestRunnerCacheKeyedByFonts(t *testing.T) {
	c := newMemCache()
	r := NewRunner(c, nil, testLogger())
	ctx := context.Background()

	approx, err := r.Execute(ctx, testOptions(FormatSVG))
	if err != nil {
		t.Fatal(err)
	}

	reg, err := fonts.New()
	if err != nil {
		t.Fatal(err)
	}
	opts := testOptions(FormatSVG)
	opts.Measurer = measure.NewOpenType(reg, measure.WithLogger(testLogger()))
	measured, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if measured.CacheInfo.RenderHit {
		t.Error("run with different fonts reused the cached render")
	}
	if bytes.Equal(approx.Artifacts[FormatSVG], measured.Artifacts[FormatSVG]) {
		t.Error("svg did not change with the measurer")
	}
	if c.sets != 2 {
		t.Errorf("cache sets = %d, want 2", c.sets)
	}

	opts = testOptions(FormatSVG)
	opts.Measurer = measure.NewOpenType(reg, measure.WithLogger(testLogger()))
	again, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !again.CacheInfo.RenderHit {
		t.Error("same fonts missed the cache")
	}
}

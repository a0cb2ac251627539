// Package fonts provides the font registry used to measure text.
//
// Fonts are only used for metrics: thumbkit never rasterises glyphs. The
// Go fonts embedded by golang.org/x/image are registered as the fallback
// family "Inter" and as "Roboto", so every request can be measured without
// any font files installed. Extra faces can be loaded from a directory.
package fonts

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FallbackFamily is the family every unresolvable face degrades to.
const FallbackFamily = "Inter"

// DefaultWeight is used when a style names no weight.
const DefaultWeight = "Regular"

// CSSFamily returns a CSS font-family list for family with generic fallbacks.
func CSSFamily(family string) string {
	if family == "" || strings.EqualFold(family, FallbackFamily) {
		return `'Inter', 'Helvetica Neue', Arial, sans-serif`
	}
	return fmt.Sprintf(`'%s', 'Inter', 'Helvetica Neue', Arial, sans-serif`, family)
}

// Resolution is the outcome of looking up a face.
type Resolution struct {
	Font     *opentype.Font
	Family   string
	Weight   string
	Fallback bool // the requested face was not registered
}

type key struct{ family, weight string }

func keyOf(family, weight string) key {
	if weight == "" {
		weight = DefaultWeight
	}
	w := strings.ToLower(strings.ReplaceAll(weight, " ", ""))
	if w == "normal" {
		w = "regular"
	}
	return key{strings.ToLower(family), w}
}

// Registry maps (family, weight) to parsed fonts. It is safe for
// concurrent use.
type Registry struct {
	mu          sync.RWMutex
	faces       map[key]*opentype.Font
	sums        map[key][sha256.Size]byte
	names       map[string]string // lower-case family -> display name
	fingerprint string            // reset by add
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		faces: map[key]*opentype.Font{},
		sums:  map[key][sha256.Size]byte{},
		names: map[string]string{},
	}
}

var (
	builtinOnce sync.Once
	builtin     map[string]*opentype.Font
	builtinErr  error
)

var builtinData = map[string][]byte{
	"Regular":     goregular.TTF,
	"Bold":        gobold.TTF,
	"Medium":      gomedium.TTF,
	"Italic":      goitalic.TTF,
	"Bold Italic": gobolditalic.TTF,
}

func parseBuiltin() (map[string]*opentype.Font, error) {
	builtinOnce.Do(func() {
		builtin = make(map[string]*opentype.Font, len(builtinData))
		for weight, data := range builtinData {
			f, err := opentype.Parse(data)
			if err != nil {
				builtinErr = fmt.Errorf("parse builtin %s: %w", weight, err)
				return
			}
			builtin[weight] = f
		}
	})
	return builtin, builtinErr
}

// New returns a registry holding the built-in faces under the fallback
// family and the Roboto alias.
func New() (*Registry, error) {
	faces, err := parseBuiltin()
	if err != nil {
		return nil, err
	}
	r := NewRegistry()
	for weight, f := range faces {
		sum := sha256.Sum256(builtinData[weight])
		r.add(FallbackFamily, weight, f, sum)
		r.add("Roboto", weight, f, sum)
	}
	return r, nil
}

func (r *Registry) add(family, weight string, f *opentype.Font, sum [sha256.Size]byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := keyOf(family, weight)
	r.faces[k] = f
	r.sums[k] = sum
	r.names[k.family] = family
	r.fingerprint = ""
}

// Register parses TrueType or OpenType data and registers it.
func (r *Registry) Register(family, weight string, data []byte) error {
	f, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("parse %s %s: %w", family, weight, err)
	}
	r.add(family, weight, f, sha256.Sum256(data))
	return nil
}

// LoadDir registers every "Family-Weight.ttf" or ".otf" file in dir and
// returns how many were loaded. A file without a weight suffix is
// registered as Regular.
func (r *Registry) LoadDir(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, e := range entries {
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if e.IsDir() || (ext != ".ttf" && ext != ".otf") {
			continue
		}
		family, weight := splitName(strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())))
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return n, err
		}
		if err := r.Register(family, weight, data); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

func splitName(base string) (family, weight string) {
	i := strings.LastIndexByte(base, '-')
	if i <= 0 || i == len(base)-1 {
		return base, DefaultWeight
	}
	return base[:i], base[i+1:]
}

// Resolve looks up a face. If it is missing, the fallback family at the
// same weight is tried, then the fallback family's Regular face; in both
// cases Fallback is set so the caller can warn. Font is nil only when the
// registry holds no fallback faces at all.
func (r *Registry) Resolve(family, weight string) Resolution {
	if weight == "" {
		weight = DefaultWeight
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	if f, ok := r.faces[keyOf(family, weight)]; ok {
		return Resolution{Font: f, Family: r.names[strings.ToLower(family)], Weight: weight}
	}
	if f, ok := r.faces[keyOf(FallbackFamily, weight)]; ok {
		return Resolution{Font: f, Family: FallbackFamily, Weight: weight, Fallback: true}
	}
	f := r.faces[keyOf(FallbackFamily, DefaultWeight)]
	return Resolution{Font: f, Family: FallbackFamily, Weight: DefaultWeight, Fallback: true}
}

// Families lists registered family names, sorted.
func (r *Registry) Families() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.names))
	for _, name := range r.names {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

// Fingerprint identifies the registered faces and their contents. Two
// registries with the same fingerprint measure text identically.
func (r *Registry) Fingerprint() string {
	r.mu.RLock()
	fp := r.fingerprint
	r.mu.RUnlock()
	if fp != "" {
		return fp
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	keys := make([]key, 0, len(r.sums))
	for k := range r.sums {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b key) int {
		return strings.Compare(a.family+"/"+a.weight, b.family+"/"+b.weight)
	})
	h := sha256.New()
	for _, k := range keys {
		sum := r.sums[k]
		fmt.Fprintf(h, "%s/%s/%x\n", k.family, k.weight, sum)
	}
	r.fingerprint = hex.EncodeToString(h.Sum(nil))
	return r.fingerprint
}

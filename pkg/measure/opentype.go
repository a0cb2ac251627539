package measure

import (
	"math"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/thumbkit/pkg/flow"
	"github.com/matzehuels/thumbkit/pkg/fonts"
)

// MaxFaces bounds the number of cached faces per measurer.
const MaxFaces = 256

// faceKey identifies a cached face by the resolved font and the size in
// 26.6 fixed point, the precision opentype scales glyphs with at 72 DPI.
type faceKey struct {
	family, weight string
	size           fixed.Int26_6
}

func sizeKey(size float64) fixed.Int26_6 { return fixed.Int26_6(math.Round(size * 64)) }

// OpenType measures text with font metrics from a registry. Faces are
// created lazily and cached per resolved face and size. Safe for
// concurrent use.
type OpenType struct {
	reg    *fonts.Registry
	logger *log.Logger

	mu     sync.Mutex
	faces  map[faceKey]font.Face
	warned map[faceKey]bool // keyed by the requested family and weight
}

// Option configures an [OpenType] measurer.
type Option func(*OpenType)

// WithLogger sets the logger used for font fallback warnings.
func WithLogger(l *log.Logger) Option {
	return func(o *OpenType) {
		if l != nil {
			o.logger = l
		}
	}
}

// NewOpenType returns a measurer backed by reg.
func NewOpenType(reg *fonts.Registry, opts ...Option) *OpenType {
	o := &OpenType{
		reg:    reg,
		logger: log.Default(),
		faces:  map[faceKey]font.Face{},
		warned: map[faceKey]bool{},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// LogTo returns a measurer that shares o's face cache but reports font
// fallbacks to l.
func (o *OpenType) LogTo(l *log.Logger) Measurer {
	if l == nil {
		return o
	}
	return logged{o: o, logger: l}
}

// Fingerprint identifies the font set text is measured with.
func (o *OpenType) Fingerprint() string { return "opentype:" + o.reg.Fingerprint() }

// face returns the cached face for f. Must be called with mu held.
// A nil face means no usable font exists and callers fall back to
// approximation.
func (o *OpenType) face(f Font, logger *log.Logger) font.Face {
	res := o.reg.Resolve(f.Family, f.Weight)
	if res.Fallback {
		asked := faceKey{family: f.Family, weight: f.Weight}
		if !o.warned[asked] {
			if len(o.warned) >= MaxFaces {
				clear(o.warned)
			}
			o.warned[asked] = true
			logger.Warn("font unavailable, using fallback", "family", f.Family, "weight", f.Weight, "fallback", res.Family+" "+res.Weight)
		}
	}

	k := faceKey{family: res.Family, weight: res.Weight, size: sizeKey(f.Size)}
	if face, ok := o.faces[k]; ok {
		return face
	}
	var face font.Face
	if res.Font != nil && k.size > 0 {
		var err error
		face, err = opentype.NewFace(res.Font, &opentype.FaceOptions{
			Size:    float64(k.size) / 64,
			DPI:     72,
			Hinting: font.HintingNone,
		})
		if err != nil {
			logger.Warn("create font face", "family", res.Family, "size", f.Size, "error", err)
			face = nil
		}
	}
	if len(o.faces) >= MaxFaces {
		clear(o.faces)
	}
	o.faces[k] = face
	return face
}

func toFloat(v fixed.Int26_6) float64 { return float64(v) / 64 }

func advanceOf(face font.Face) func(string) float64 {
	return func(s string) float64 { return toFloat(font.MeasureString(face, s)) }
}

func (o *OpenType) measureLine(f Font, text string, logger *log.Logger) flow.Size {
	o.mu.Lock()
	defer o.mu.Unlock()
	face := o.face(f, logger)
	if face == nil {
		return Approx{}.Line(f, text)
	}
	return flow.Size{W: advanceOf(face)(text), H: toFloat(face.Metrics().Height)}
}

func (o *OpenType) measureBlock(f Font, text string, width float64, logger *log.Logger) TextBlock {
	o.mu.Lock()
	defer o.mu.Unlock()
	face := o.face(f, logger)
	if face == nil {
		return Approx{}.Block(f, text, width)
	}
	m := face.Metrics()
	adv := advanceOf(face)
	return block(wrap(text, width, adv), toFloat(m.Height), toFloat(m.Ascent), adv)
}

// Line implements [Measurer].
func (o *OpenType) Line(f Font, text string) flow.Size { return o.measureLine(f, text, o.logger) }

// Block implements [Measurer].
func (o *OpenType) Block(f Font, text string, width float64) TextBlock {
	return o.measureBlock(f, text, width, o.logger)
}

type logged struct {
	o      *OpenType
	logger *log.Logger
}

func (l logged) Line(f Font, text string) flow.Size { return l.o.measureLine(f, text, l.logger) }

func (l logged) Block(f Font, text string, width float64) TextBlock {
	return l.o.measureBlock(f, text, width, l.logger)
}

func (l logged) Fingerprint() string { return l.o.Fingerprint() }

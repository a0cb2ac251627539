package compose

import (
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/thumbkit/pkg/canvas"
	"github.com/matzehuels/thumbkit/pkg/color"
	"github.com/matzehuels/thumbkit/pkg/errors"
	"github.com/matzehuels/thumbkit/pkg/flow"
	"github.com/matzehuels/thumbkit/pkg/fonts"
	"github.com/matzehuels/thumbkit/pkg/measure"
	"github.com/matzehuels/thumbkit/pkg/scene"
)

// Overlay gradient alphas.
const (
	GradientFromAlpha = 0.0
	GradientToAlpha   = 0.6
)

// Option configures [Build].
type Option func(*builder)

// WithMeasurer sets the text measurer. The default measures with the
// built-in fonts.
func WithMeasurer(m measure.Measurer) Option {
	return func(b *builder) { b.measurer = m }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(b *builder) {
		if l != nil {
			b.logger = l
		}
	}
}

var (
	defaultMeasurerOnce sync.Once
	defaultMeasurer     measure.Measurer
)

// DefaultMeasurer returns a shared measurer over the built-in fonts, or an
// approximating measurer if they cannot be parsed.
func DefaultMeasurer() measure.Measurer {
	defaultMeasurerOnce.Do(func() {
		reg, err := fonts.New()
		if err != nil {
			log.Warn("built-in fonts unavailable, approximating text metrics", "error", err)
			defaultMeasurer = measure.Approx{}
			return
		}
		defaultMeasurer = measure.NewOpenType(reg)
	})
	return defaultMeasurer
}

type builder struct {
	measurer measure.Measurer
	logger   *log.Logger

	res     *canvas.Resolved
	content canvas.Rect
}

// Build resolves req and returns its scene tree.
func Build(req *canvas.Request, opts ...Option) (*scene.Node, error) {
	b := &builder{logger: log.Default()}
	for _, opt := range opts {
		opt(b)
	}
	if b.measurer == nil {
		b.measurer = DefaultMeasurer()
		if ot, ok := b.measurer.(*measure.OpenType); ok {
			b.measurer = ot.LogTo(b.logger)
		}
	}
	if req == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "compose: nil request")
	}

	res, err := req.Resolve()
	if err != nil {
		return nil, err
	}
	b.res = res
	b.content = res.Preset.Region.Content()
	return b.build()
}

func (b *builder) build() (*scene.Node, error) {
	p := b.res.Preset
	bg := b.res.Background

	root := scene.NewCanvas(p.Region.Width, p.Region.Height, b.color("background", bg.Color))
	if len(bg.Image) > 0 {
		img, err := backgroundNode(bg.Image, p.Region.Width, p.Region.Height)
		if err != nil {
			return nil, err
		}
		root.Add(img)
	}
	if bg.Gradient {
		overlay := scene.Frame(scene.NameGradient, 0, 0, p.Region.Width, p.Region.Height)
		overlay.Gradient = &scene.Gradient{Color: color.Black, FromAlpha: GradientFromAlpha, ToAlpha: GradientToAlpha}
		root.Add(overlay)
	}

	stack, textNodes := b.text()
	root.Add(b.tags(stack)...)
	root.Add(textNodes...)
	if chips := b.contributors(stack); chips != nil {
		root.Add(chips)
	}

	b.logger.Debug("composed thumbnail", "revision", p.Name, "nodes", scene.Count(root))
	return root, nil
}

// text measures and anchors the heading and description.
func (b *builder) text() (flow.TextStack, []*scene.Node) {
	r := b.res
	heading := b.measurer.Block(fontOf(r.HeadingStyle), r.Heading, b.content.W)

	var desc measure.TextBlock
	if r.HasDescription() {
		desc = b.measurer.Block(fontOf(r.DescStyle), r.Description, b.content.W)
	}

	region := r.Preset.Region
	stack := flow.StackText(r.HeadingStyle.Position, r.DescStyle.Position,
		region.Height, region.MarginY, heading.Height, desc.Height, r.Preset.TextGap)

	var nodes []*scene.Node
	if r.HasDescription() && r.DescStyle.Position == flow.AboveHeading {
		nodes = append(nodes, b.textNode(scene.NameDescription, r.Description, r.DescStyle, desc, stack.DescriptionY))
		nodes = append(nodes, b.textNode(scene.NameHeading, r.Heading, r.HeadingStyle, heading, stack.HeadingY))
	} else {
		nodes = append(nodes, b.textNode(scene.NameHeading, r.Heading, r.HeadingStyle, heading, stack.HeadingY))
		if r.HasDescription() {
			nodes = append(nodes, b.textNode(scene.NameDescription, r.Description, r.DescStyle, desc, stack.DescriptionY))
		}
	}
	return stack, nodes
}

func (b *builder) textNode(name, content string, s canvas.TextStyle, block measure.TextBlock, y float64) *scene.Node {
	return &scene.Node{
		Kind:   scene.KindText,
		Name:   name,
		X:      b.content.X,
		Y:      y,
		Width:  b.content.W,
		Height: block.Height,
		Text:   textOf(content, s.Font, s.Weight, s.Size, b.color(name, s.Color), block),
	}
}

func fontOf(s canvas.TextStyle) measure.Font {
	return measure.Font{Family: s.Font, Weight: s.Weight, Size: s.Size}
}

// color parses hex, warning when it is malformed and renders black.
func (b *builder) color(field, hex string) color.RGB {
	if !color.Valid(hex) {
		b.logger.Warn("invalid colour, using black", "field", field, "value", hex)
	}
	return color.ParseHex(hex)
}

func textOf(content, family, weight string, size float64, c color.RGB, block measure.TextBlock) *scene.Text {
	return &scene.Text{
		Content:    content,
		Lines:      block.Lines,
		Family:     family,
		Weight:     weight,
		Size:       size,
		Color:      c,
		LineHeight: block.LineHeight,
		Ascent:     block.Ascent,
	}
}

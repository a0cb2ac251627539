package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/matzehuels/thumbkit/pkg/color"
	"github.com/matzehuels/thumbkit/pkg/fonts"
	"github.com/matzehuels/thumbkit/pkg/scene"
)

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	names   bool
	offline bool

	defs      bytes.Buffer
	gradients int
	clips     int
}

// WithNodeNames adds data-name attributes with each node's name.
func WithNodeNames() SVGOption { return func(r *svgRenderer) { r.names = true } }

// WithOfflineImages replaces images that are not data URIs with their
// placeholder colour.
func WithOfflineImages() SVGOption { return func(r *svgRenderer) { r.offline = true } }

// RenderSVG renders a scene tree as SVG.
func RenderSVG(root *scene.Node, opts ...SVGOption) []byte {
	r := &svgRenderer{}
	for _, opt := range opts {
		opt(r)
	}

	var body bytes.Buffer
	r.node(&body, root, 1)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		root.Width, root.Height, root.Width, root.Height)
	if r.defs.Len() > 0 {
		buf.WriteString("  <defs>\n")
		buf.Write(r.defs.Bytes())
		buf.WriteString("  </defs>\n")
	}
	buf.Write(body.Bytes())
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) node(buf *bytes.Buffer, n *scene.Node, depth int) {
	switch n.Kind {
	case scene.KindText:
		r.text(buf, n, depth)
	case scene.KindImage:
		r.image(buf, n, depth)
	default:
		r.frame(buf, n, depth)
	}
}

func (r *svgRenderer) attrs(n *scene.Node) string {
	if !r.names || n.Name == "" {
		return ""
	}
	return fmt.Sprintf(` data-name="%s"`, EscapeXML(n.Name))
}

func (r *svgRenderer) frame(buf *bytes.Buffer, n *scene.Node, depth int) {
	ind := strings.Repeat("  ", depth)
	fmt.Fprintf(buf, `%s<g transform="translate(%.1f, %.1f)"%s>`+"\n", ind, n.X, n.Y, r.attrs(n))
	if n.Fill != nil {
		fmt.Fprintf(buf, `%s  <rect width="%.1f" height="%.1f"%s fill="%s"/>`+"\n",
			ind, n.Width, n.Height, radius(n.CornerRadius), n.Fill.Hex())
	}
	if g := n.Gradient; g != nil {
		id := r.gradient(g)
		fmt.Fprintf(buf, `%s  <rect width="%.1f" height="%.1f"%s fill="url(#%s)"/>`+"\n",
			ind, n.Width, n.Height, radius(n.CornerRadius), id)
	}
	for _, c := range n.Children {
		r.node(buf, c, depth+1)
	}
	fmt.Fprintf(buf, "%s</g>\n", ind)
}

func radius(rx float64) string {
	if rx <= 0 {
		return ""
	}
	return fmt.Sprintf(` rx="%.1f"`, rx)
}

func (r *svgRenderer) gradient(g *scene.Gradient) string {
	id := fmt.Sprintf("gradient-%d", r.gradients)
	r.gradients++
	hex := g.Color.Hex()
	fmt.Fprintf(&r.defs, `    <linearGradient id="%s" x1="0" y1="0" x2="0" y2="1">`+"\n", id)
	fmt.Fprintf(&r.defs, `      <stop offset="0" stop-color="%s" stop-opacity="%.2f"/>`+"\n", hex, g.FromAlpha)
	fmt.Fprintf(&r.defs, `      <stop offset="1" stop-color="%s" stop-opacity="%.2f"/>`+"\n", hex, g.ToAlpha)
	r.defs.WriteString("    </linearGradient>\n")
	return id
}

func (r *svgRenderer) text(buf *bytes.Buffer, n *scene.Node, depth int) {
	t := n.Text
	if t == nil {
		return
	}
	ind := strings.Repeat("  ", depth)
	weight, style := fontWeight(t.Weight)
	fmt.Fprintf(buf, `%s<text font-family="%s" font-size="%.1f" font-weight="%d"%s fill="%s"%s>`,
		ind, EscapeXML(fonts.CSSFamily(t.Family)), t.Size, weight, style, t.Color.Hex(), r.attrs(n))
	lines := t.Lines
	if len(lines) == 0 {
		lines = []string{t.Content}
	}
	for i, line := range lines {
		y := n.Y + t.Ascent + float64(i)*t.LineHeight
		fmt.Fprintf(buf, `<tspan x="%.1f" y="%.1f">%s</tspan>`, n.X, y, EscapeXML(line))
	}
	buf.WriteString("</text>\n")
}

// fontWeight maps a weight name such as "Bold Italic" to a CSS weight and
// an optional font-style attribute.
func fontWeight(name string) (int, string) {
	n := strings.ToLower(strings.ReplaceAll(name, " ", ""))
	style := ""
	if strings.HasSuffix(n, "italic") {
		style = ` font-style="italic"`
		n = strings.TrimSuffix(n, "italic")
	}
	weights := map[string]int{
		"thin": 100, "extralight": 200, "light": 300, "medium": 500,
		"semibold": 600, "bold": 700, "extrabold": 800, "black": 900,
	}
	if w, ok := weights[n]; ok {
		return w, style
	}
	return 400, style
}

func (r *svgRenderer) image(buf *bytes.Buffer, n *scene.Node, depth int) {
	img := n.Image
	if img == nil {
		return
	}
	ind := strings.Repeat("  ", depth)
	url := img.URL
	if r.offline && !strings.HasPrefix(url, "data:") {
		url = ""
	}

	if url == "" {
		r.placeholder(buf, ind, n, img.Fallback)
		return
	}

	clip := ""
	if img.Circle {
		id := fmt.Sprintf("clip-%d", r.clips)
		r.clips++
		fmt.Fprintf(&r.defs, `    <clipPath id="%s"><circle cx="%.1f" cy="%.1f" r="%.1f"/></clipPath>`+"\n",
			id, n.X+n.Width/2, n.Y+n.Height/2, min(n.Width, n.Height)/2)
		clip = fmt.Sprintf(` clip-path="url(#%s)"`, id)
	}
	fmt.Fprintf(buf, `%s<image x="%.1f" y="%.1f" width="%.1f" height="%.1f" preserveAspectRatio="xMidYMid slice" href="%s" xlink:href="%s"%s%s/>`+"\n",
		ind, n.X, n.Y, n.Width, n.Height, EscapeXML(url), EscapeXML(url), clip, r.attrs(n))
}

func (r *svgRenderer) placeholder(buf *bytes.Buffer, ind string, n *scene.Node, fill color.RGB) {
	if n.Image.Circle {
		fmt.Fprintf(buf, `%s<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"%s/>`+"\n",
			ind, n.X+n.Width/2, n.Y+n.Height/2, min(n.Width, n.Height)/2, fill.Hex(), r.attrs(n))
		return
	}
	fmt.Fprintf(buf, `%s<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"%s/>`+"\n",
		ind, n.X, n.Y, n.Width, n.Height, fill.Hex(), r.attrs(n))
}

// EscapeXML escapes s for use in SVG text and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// Package canvas defines the thumbnail request model: the canvas region,
// text styles, tags, contributors and the versioned presets that supply
// their defaults.
//
// A [Request] is what a UI panel (or a request file, or the HTTP API)
// sends. [Request.Resolve] validates it and merges preset defaults so that
// later pipeline stages never see missing values.
package canvas

import (
	"strings"

	"github.com/matzehuels/thumbkit/pkg/flow"
)

// Region is the full canvas plus its safe margin.
type Region struct {
	Width   float64 `json:"width" toml:"width" yaml:"width"`
	Height  float64 `json:"height" toml:"height" yaml:"height"`
	MarginX float64 `json:"margin_x" toml:"margin_x" yaml:"margin_x"`
	MarginY float64 `json:"margin_y" toml:"margin_y" yaml:"margin_y"`
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y, W, H float64
}

// Content returns the content area: the canvas minus the safe margin on
// every side. Width and height are clamped at zero.
func (r Region) Content() Rect {
	return Rect{
		X: r.MarginX,
		Y: r.MarginY,
		W: max(0, r.Width-2*r.MarginX),
		H: max(0, r.Height-2*r.MarginY),
	}
}

// TextStyle styles the heading or the description.
type TextStyle struct {
	Font     string        `json:"font" toml:"font" yaml:"font"`
	Weight   string        `json:"weight" toml:"weight" yaml:"weight"`
	Size     float64       `json:"size" toml:"size" yaml:"size"`
	Color    string        `json:"color" toml:"color" yaml:"color"`
	Position flow.Position `json:"position" toml:"position" yaml:"position"`
}

// Tag is a small pill of text.
type Tag struct {
	Text       string        `json:"text" toml:"text" yaml:"text"`
	Position   flow.Position `json:"position" toml:"position" yaml:"position"`
	FillColor  string        `json:"fillColor" toml:"fill_color" yaml:"fill_color"`
	TextColor  string        `json:"textColor" toml:"text_color" yaml:"text_color"`
	Radius     *float64      `json:"radius,omitempty" toml:"radius" yaml:"radius"`
	FontSize   float64       `json:"fontSize" toml:"font_size" yaml:"font_size"`
	FontWeight string        `json:"fontWeight" toml:"font_weight" yaml:"font_weight"`
}

// Blank reports whether the tag has no visible text.
func (t Tag) Blank() bool { return strings.TrimSpace(t.Text) == "" }

// CornerRadius returns the tag's radius, or 0 when unset. A zero radius
// draws a square tag.
func (t Tag) CornerRadius() float64 {
	if t.Radius == nil {
		return 0
	}
	return *t.Radius
}

// Contributor is one person credited on the thumbnail.
type Contributor struct {
	Name      string `json:"name" toml:"name" yaml:"name"`
	AvatarURL string `json:"avatarUrl" toml:"avatar_url" yaml:"avatar_url"`
}

// DisplayMode selects what each contributor chip shows.
type DisplayMode string

const (
	AvatarsOnly DisplayMode = "avatars-only"
	NamesOnly   DisplayMode = "names-only"
	Both        DisplayMode = "both"
)

// ShowAvatar reports whether chips include the avatar.
func (m DisplayMode) ShowAvatar() bool { return m != NamesOnly }

// ShowName reports whether chips include the name.
func (m DisplayMode) ShowName() bool { return m != AvatarsOnly }

// Contributors is the contributor group.
type Contributors struct {
	Items       []Contributor `json:"items" toml:"items" yaml:"items"`
	DisplayMode DisplayMode   `json:"displayMode" toml:"display_mode" yaml:"display_mode"`
}

// Background is the canvas fill.
type Background struct {
	Color    string `json:"color" toml:"color" yaml:"color"`
	Gradient bool   `json:"gradient,omitempty" toml:"gradient" yaml:"gradient"`

	// Image is an optional raw image (PNG, JPEG, GIF, BMP, TIFF) drawn
	// behind all content. JSON carries it base64-encoded.
	Image []byte `json:"image,omitempty" toml:"-" yaml:"-"`

	// ImagePath is read into Image by request loaders; never sent over HTTP.
	ImagePath string `json:"-" toml:"image_path" yaml:"image_path"`
}

// Styles is the complete style configuration for one canvas.
type Styles struct {
	Heading      TextStyle     `json:"heading" toml:"heading" yaml:"heading"`
	Description  *TextStyle    `json:"description,omitempty" toml:"description" yaml:"description"`
	Background   Background    `json:"background" toml:"background" yaml:"background"`
	Tags         []Tag         `json:"tags,omitempty" toml:"tags" yaml:"tags"`
	Contributors *Contributors `json:"contributors,omitempty" toml:"contributors" yaml:"contributors"`
}

// Request asks for one thumbnail.
type Request struct {
	Heading     string `json:"heading" toml:"heading" yaml:"heading"`
	Description string `json:"description,omitempty" toml:"description" yaml:"description"`
	Revision    string `json:"revision,omitempty" toml:"revision" yaml:"revision"`
	Styles      Styles `json:"styles" toml:"styles" yaml:"styles"`
}

// HasDescription reports whether a description will be drawn: both the
// text and its style must be present.
func (r *Request) HasDescription() bool {
	return strings.TrimSpace(r.Description) != "" && r.Styles.Description != nil
}

// VisibleTags returns the tags that have text, in order.
func (r *Request) VisibleTags() []Tag {
	var out []Tag
	for _, t := range r.Styles.Tags {
		if !t.Blank() {
			out = append(out, t)
		}
	}
	return out
}

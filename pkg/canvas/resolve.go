package canvas

import (
	"github.com/matzehuels/thumbkit/pkg/flow"
)

// Resolved is a validated request with every default filled in from its
// preset. Only Resolved values reach layout.
type Resolved struct {
	Preset       Preset
	Heading      string
	Description  string // empty when no description is drawn
	HeadingStyle TextStyle
	DescStyle    TextStyle
	Background   Background
	Tags         []Tag        // visible tags only, defaults applied
	Contributors Contributors // empty Items when absent
}

// HasDescription reports whether a description is drawn.
func (r *Resolved) HasDescription() bool { return r.Description != "" }

// Resolve validates the request and merges preset defaults.
func (r *Request) Resolve() (*Resolved, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	p, _ := LookupPreset(r.Revision)

	out := &Resolved{
		Preset:       p,
		Heading:      r.Heading,
		HeadingStyle: mergeText(r.Styles.Heading, p.Heading),
		DescStyle:    p.Description,
		Background:   r.Styles.Background,
	}
	if out.Background.Color == "" {
		out.Background.Color = p.Background
	}

	if p.Fixed {
		return resolveFixed(r, p, out), nil
	}

	if r.HasDescription() {
		out.Description = r.Description
		out.DescStyle = mergeText(*r.Styles.Description, p.Description)
	}
	for _, t := range r.VisibleTags() {
		out.Tags = append(out.Tags, mergeTag(t, p))
	}
	if c := r.Styles.Contributors; c != nil {
		out.Contributors = *c
	}
	if out.Contributors.DisplayMode == "" {
		out.Contributors.DisplayMode = Both
	}
	return out, nil
}

// resolveFixed applies the legacy card rules: both texts always present,
// top-anchored, and nothing else drawn.
func resolveFixed(r *Request, p Preset, out *Resolved) *Resolved {
	if out.Heading == "" {
		out.Heading = p.DefaultHeading
	}
	out.Description = r.Description
	if out.Description == "" {
		out.Description = p.DefaultDesc
	}
	if r.Styles.Description != nil {
		out.DescStyle = mergeText(*r.Styles.Description, p.Description)
	}
	out.HeadingStyle.Position = flow.Top
	out.DescStyle.Position = flow.Top
	out.Background.Gradient = false
	out.Contributors.DisplayMode = Both
	return out
}

func mergeText(s, def TextStyle) TextStyle {
	if s.Font == "" {
		s.Font = def.Font
	}
	if s.Weight == "" {
		s.Weight = def.Weight
	}
	if s.Size <= 0 {
		s.Size = def.Size
	}
	if s.Color == "" {
		s.Color = def.Color
	}
	if s.Position == "" {
		s.Position = def.Position
	}
	return s
}

func mergeTag(t Tag, p Preset) Tag {
	if t.Position == "" {
		t.Position = flow.Bottom
	}
	if t.FillColor == "" {
		t.FillColor = p.TagFillColor
	}
	if t.TextColor == "" {
		t.TextColor = p.TagTextColor
	}
	if t.Radius == nil {
		r := p.TagRadius
		t.Radius = &r
	}
	if t.FontSize <= 0 {
		t.FontSize = p.TagFontSize
	}
	if t.FontWeight == "" {
		t.FontWeight = p.TagFontWeight
	}
	return t
}

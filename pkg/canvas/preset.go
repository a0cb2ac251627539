package canvas

import (
	"slices"

	"github.com/matzehuels/thumbkit/pkg/flow"
)

// Revision names.
const (
	RevisionLegacy   = "legacy"
	RevisionStandard = "standard"
)

// DefaultRevision is used when a request does not name one.
const DefaultRevision = RevisionStandard

// FallbackFont is the family every unresolvable font degrades to, and the
// family used for tags and contributor names.
const FallbackFont = "Inter"

// Preset carries the fixed geometry and defaults of one canvas revision.
type Preset struct {
	Name        string `json:"name"`
	Summary     string `json:"summary"`
	Region      Region `json:"region"`

	TextGap float64 `json:"text_gap"` // between heading and description

	TagSpacing    float64 `json:"tag_spacing"`
	TagPadding    float64 `json:"tag_padding"`
	TagHeadingGap float64 `json:"tag_heading_gap"` // above-heading tags sit this far above the text stack
	TagFontSize   float64 `json:"tag_font_size"`
	TagFontWeight string  `json:"tag_font_weight"`
	TagFillColor  string  `json:"tag_fill_color"`
	TagTextColor  string  `json:"tag_text_color"`
	TagRadius     float64 `json:"tag_radius"`

	AvatarSize         float64 `json:"avatar_size"`
	ChipInnerSpacing   float64 `json:"chip_inner_spacing"` // avatar to name
	ChipSpacing        float64 `json:"chip_spacing"`
	ContributorRowGap  float64 `json:"contributor_row_gap"`
	ContributorTextGap float64 `json:"contributor_text_gap"` // gap to the text stack
	NameFontSize       float64 `json:"name_font_size"`
	NameColor          string  `json:"name_color"`

	Heading        TextStyle `json:"heading"`
	Description    TextStyle `json:"description"`
	Background     string    `json:"background"`
	DefaultHeading string    `json:"default_heading,omitempty"`
	DefaultDesc    string    `json:"default_description,omitempty"`

	// Legacy canvases pin text to the top-left and ignore tags and
	// contributors.
	Fixed bool `json:"fixed,omitempty"`
}

var presets = map[string]Preset{
	RevisionLegacy: {
		Name:           RevisionLegacy,
		Summary:        "400x300 card with fixed Roboto heading and description",
		Region:         Region{Width: 400, Height: 300, MarginX: 20, MarginY: 20},
		TextGap:        10,
		Heading:        TextStyle{Font: "Roboto", Weight: "Bold", Size: 24, Color: "#000000", Position: flow.Top},
		Description:    TextStyle{Font: "Roboto", Weight: "Regular", Size: 16, Color: "#000000", Position: flow.Top},
		Background:     "#ffffff",
		DefaultHeading: "Default Heading",
		DefaultDesc:    "Default description...",
		Fixed:          true,
	},
	RevisionStandard: {
		Name:               RevisionStandard,
		Summary:            "1920x1080 thumbnail with tags and contributors",
		Region:             Region{Width: 1920, Height: 1080, MarginX: 160, MarginY: 120},
		TextGap:            flow.DefaultTextGap,
		TagSpacing:         12,
		TagPadding:         12,
		TagHeadingGap:      40,
		TagFontSize:        24,
		TagFontWeight:      "Regular",
		TagFillColor:       "#e5e7eb",
		TagTextColor:       "#111827",
		TagRadius:          8,
		AvatarSize:         40,
		ChipInnerSpacing:   8,
		ChipSpacing:        12,
		ContributorRowGap:  8,
		ContributorTextGap: 40,
		NameFontSize:       16,
		NameColor:          "#000000",
		Heading:            TextStyle{Font: FallbackFont, Weight: "Bold", Size: 96, Color: "#000000", Position: flow.Bottom},
		Description:        TextStyle{Font: FallbackFont, Weight: "Regular", Size: 40, Color: "#000000", Position: flow.Bottom},
		Background:         "#ffffff",
	},
}

// LookupPreset returns the preset for a revision name ("" selects the
// default).
func LookupPreset(name string) (Preset, bool) {
	if name == "" {
		name = DefaultRevision
	}
	p, ok := presets[name]
	return p, ok
}

// Presets returns all presets sorted by name.
func Presets() []Preset {
	out := make([]Preset, 0, len(presets))
	for _, p := range presets {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b Preset) int {
		if a.Name < b.Name {
			return -1
		}
		if a.Name > b.Name {
			return 1
		}
		return 0
	})
	return out
}

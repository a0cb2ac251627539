package canvas

import (
	"strings"

	"github.com/matzehuels/thumbkit/pkg/errors"
	"github.com/matzehuels/thumbkit/pkg/flow"
)

// Request limits.
const (
	MaxHeadingLength     = 200
	MaxDescriptionLength = 1000
	MaxTagLength         = 60
	MaxNameLength        = 80
	MaxTags              = 50
	MaxContributors      = 100
	MaxFontSize          = 1000
)

// Validate checks a request without applying defaults. Colours are not
// validated: malformed hex strings render as black.
func (r *Request) Validate() error {
	preset, ok := LookupPreset(r.Revision)
	if !ok {
		return errors.New(errors.ErrCodeInvalidRevision, "unknown revision %q", r.Revision)
	}
	if !preset.Fixed && strings.TrimSpace(r.Heading) == "" {
		return errors.New(errors.ErrCodeInvalidInput, "heading is required")
	}
	if err := errors.ValidateText("heading", r.Heading, MaxHeadingLength); err != nil {
		return err
	}
	if err := errors.ValidateText("description", r.Description, MaxDescriptionLength); err != nil {
		return err
	}

	s := &r.Styles
	if err := validateTextStyle("heading", s.Heading); err != nil {
		return err
	}
	if s.Description != nil {
		if err := validateTextStyle("description", *s.Description); err != nil {
			return err
		}
	}
	if s.Background.ImagePath != "" {
		if err := errors.ValidatePath(s.Background.ImagePath); err != nil {
			return err
		}
	}

	if len(s.Tags) > MaxTags {
		return errors.New(errors.ErrCodeInvalidInput, "too many tags (max %d)", MaxTags)
	}
	for i, t := range s.Tags {
		if err := validateTag(i, t); err != nil {
			return err
		}
	}

	if c := s.Contributors; c != nil {
		if len(c.Items) > MaxContributors {
			return errors.New(errors.ErrCodeInvalidInput, "too many contributors (max %d)", MaxContributors)
		}
		switch c.DisplayMode {
		case "", AvatarsOnly, NamesOnly, Both:
		default:
			return errors.New(errors.ErrCodeInvalidStyle, "unknown display mode %q", c.DisplayMode)
		}
		for i, p := range c.Items {
			if err := errors.ValidateText("contributor name", p.Name, MaxNameLength); err != nil {
				return errors.Wrap(errors.GetCode(err), err, "contributor %d", i)
			}
			if p.AvatarURL != "" {
				if err := errors.ValidateImageURL(p.AvatarURL); err != nil {
					return errors.Wrap(errors.GetCode(err), err, "contributor %d avatar", i)
				}
			}
		}
	}
	return nil
}

func validateTextStyle(field string, s TextStyle) error {
	if err := validPosition(field, s.Position); err != nil {
		return err
	}
	return validSize(field+" size", s.Size)
}

func validateTag(i int, t Tag) error {
	if err := errors.ValidateText("tag", t.Text, MaxTagLength); err != nil {
		return errors.Wrap(errors.GetCode(err), err, "tag %d", i)
	}
	switch t.Position {
	case "", flow.Top, flow.AboveHeading, flow.Bottom:
	default:
		return errors.New(errors.ErrCodeInvalidPosition, "tag %d: unknown position %q", i, t.Position)
	}
	if err := errors.ValidateNonNegative("tag radius", t.CornerRadius()); err != nil {
		return err
	}
	return validSize("tag font size", t.FontSize)
}

func validPosition(field string, p flow.Position) error {
	switch p {
	case "", flow.Top, flow.Middle, flow.Bottom, flow.AboveHeading:
		return nil
	}
	return errors.New(errors.ErrCodeInvalidPosition, "%s: unknown position %q", field, p)
}

func validSize(field string, v float64) error {
	if err := errors.ValidateNonNegative(field, v); err != nil {
		return err
	}
	if v > MaxFontSize {
		return errors.New(errors.ErrCodeInvalidStyle, "%s too large (max %d)", field, MaxFontSize)
	}
	return nil
}

package compose

import (
	"strings"

	"github.com/matzehuels/thumbkit/pkg/canvas"
	"github.com/matzehuels/thumbkit/pkg/color"
	"github.com/matzehuels/thumbkit/pkg/flow"
	"github.com/matzehuels/thumbkit/pkg/measure"
	"github.com/matzehuels/thumbkit/pkg/scene"
)

// chip builds one contributor chip, or nil if it would show nothing.
func (b *builder) chip(c canvas.Contributor, mode canvas.DisplayMode) *scene.Node {
	p := b.res.Preset
	name := strings.TrimSpace(c.Name)
	showAvatar := mode.ShowAvatar()
	showName := mode.ShowName() && name != ""
	if !showAvatar && !showName {
		return nil
	}

	var label measure.TextBlock
	if showName {
		label = b.measurer.Block(measure.Font{Family: canvas.FallbackFont, Weight: "Regular", Size: p.NameFontSize}, name, b.content.W)
	}

	var w, h float64
	if showAvatar {
		w, h = p.AvatarSize, p.AvatarSize
	}
	if showName {
		if showAvatar {
			w += p.ChipInnerSpacing
		}
		w += label.Width
		h = max(h, label.Height)
	}

	chip := scene.Frame(scene.NameChip, 0, 0, w, h)
	x := 0.0
	if showAvatar {
		chip.Add(&scene.Node{
			Kind:   scene.KindImage,
			Name:   scene.NameAvatar,
			Y:      (h - p.AvatarSize) / 2,
			Width:  p.AvatarSize,
			Height: p.AvatarSize,
			Image:  &scene.Image{URL: c.AvatarURL, Circle: true, Fallback: color.Placeholder},
		})
		x = p.AvatarSize + p.ChipInnerSpacing
	}
	if showName {
		chip.Add(&scene.Node{
			Kind:   scene.KindText,
			Name:   scene.NameName,
			X:      x,
			Y:      (h - label.Height) / 2,
			Width:  label.Width,
			Height: label.Height,
			Text:   textOf(name, canvas.FallbackFont, "Regular", p.NameFontSize, b.color("contributor name", p.NameColor), label),
		})
	}
	return chip
}

// contributors returns the contributor container, or nil if no chip has
// anything to show.
func (b *builder) contributors(stack flow.TextStack) *scene.Node {
	group := b.res.Contributors
	var chips []*scene.Node
	for _, c := range group.Items {
		if chip := b.chip(c, group.DisplayMode); chip != nil {
			chips = append(chips, chip)
		}
	}
	if len(chips) == 0 {
		return nil
	}

	p := b.res.Preset
	sizes := make([]flow.Size, len(chips))
	for i, c := range chips {
		sizes[i] = flow.Size{W: c.Width, H: c.Height}
	}
	packed := flow.Pack(flow.Point{}, b.content.W, p.ChipSpacing, sizes,
		flow.WithRowSpacing(p.ContributorRowGap), flow.WithAlign(flow.AlignCenter))
	for i, pl := range packed.Placements {
		chips[i].X, chips[i].Y = pl.X, pl.Y
	}

	var y float64
	if b.res.HeadingStyle.Position == flow.Bottom {
		y = max(p.Region.MarginY, stack.Top-p.ContributorTextGap-packed.Height)
	} else {
		y = p.Region.Height - p.Region.MarginY - packed.Height
	}
	return scene.Frame(scene.NameContributors, b.content.X, y, packed.Width, packed.Height).Add(chips...)
}

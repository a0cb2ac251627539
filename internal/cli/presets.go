package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/thumbkit/pkg/canvas"
)

// presetsCommand lists the canvas revisions.
func (c *CLI) presetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List canvas revisions and their defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for i, p := range canvas.Presets() {
				if i > 0 {
					printNewline()
				}
				printPreset(p)
			}
			return nil
		},
	}
}

func printPreset(p canvas.Preset) {
	title := p.Name
	if p.Name == canvas.DefaultRevision {
		title += StyleDim.Render(" (default)")
	}
	fmt.Println(StyleTitle.Render(title))
	if p.Summary != "" {
		printDetail("%s", p.Summary)
	}
	r := p.Region
	printKeyValue("canvas", fmt.Sprintf("%.0f×%.0f", r.Width, r.Height))
	printKeyValue("margin", fmt.Sprintf("%.0f, %.0f", r.MarginX, r.MarginY))
	printKeyValue("heading", textStyle(p.Heading))
	printKeyValue("description", textStyle(p.Description))
	printKeyValue("background", p.Background)
	if p.Fixed {
		printKeyValue("layout", "fixed (text pinned top-left, no tags or contributors)")
		return
	}
	printKeyValue("tags", fmt.Sprintf("%.0fpx %s, padding %.0f, spacing %.0f", p.TagFontSize, p.TagFontWeight, p.TagPadding, p.TagSpacing))
	printKeyValue("avatars", fmt.Sprintf("%.0fpx, chip spacing %.0f", p.AvatarSize, p.ChipSpacing))
}

func textStyle(s canvas.TextStyle) string {
	return fmt.Sprintf("%s %s %.0fpx %s, %s", s.Font, s.Weight, s.Size, s.Color, s.Position)
}

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/thumbkit/pkg/canvas"
	"github.com/matzehuels/thumbkit/pkg/flow"
	"github.com/matzehuels/thumbkit/pkg/io"
)

// initCommand creates the init command, which writes a starter request.
func (c *CLI) initCommand() *cobra.Command {
	var (
		revision string
		force    bool
	)

	cmd := &cobra.Command{
		Use:   "init [file]",
		Short: "Write a starter request file",
		Long: `Write a starter request file.

The format follows the file extension (.toml, .yaml, .yml or .json). The
default file is thumbnail.toml.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "thumbnail.toml"
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if _, ok := canvas.LookupPreset(revision); !ok {
				return fmt.Errorf("unknown revision %q", revision)
			}
			if err := io.ExportRequest(sampleRequest(revision), path); err != nil {
				return err
			}
			printSuccess("Request written")
			printFile(path)
			printNewline()
			printNextStep("Render", appName+" generate "+path+" -f svg,png")
			return nil
		},
	}

	cmd.Flags().StringVar(&revision, "revision", canvas.DefaultRevision, "canvas revision: standard, legacy")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	return cmd
}

// sampleRequest returns a request that exercises every element.
func sampleRequest(revision string) *canvas.Request {
	return &canvas.Request{
		Heading:     "Procedural thumbnails",
		Description: "Headings, tags and contributor chips laid out in rows",
		Revision:    revision,
		Styles: canvas.Styles{
			Heading: canvas.TextStyle{
				Color:    "#ffffff",
				Position: flow.Bottom,
			},
			Description: &canvas.TextStyle{
				Color: "#cbd5e1",
			},
			Background: canvas.Background{
				Color:    "#0f172a",
				Gradient: true,
			},
			Tags: []canvas.Tag{
				{Text: "go", Position: flow.AboveHeading},
				{Text: "layout", Position: flow.AboveHeading},
				{Text: "svg", Position: flow.AboveHeading},
			},
			Contributors: &canvas.Contributors{
				Items: []canvas.Contributor{
					{Name: "Ada Lovelace"},
					{Name: "Grace Hopper"},
				},
				DisplayMode: canvas.Both,
			},
		},
	}
}

package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/thumbkit/pkg/io"
	"github.com/matzehuels/thumbkit/pkg/pipeline"
	"github.com/matzehuels/thumbkit/pkg/render/sink"
	"github.com/matzehuels/thumbkit/pkg/scene"
)

// layoutCommand creates the layout command, which composes the scene tree
// without rendering it.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		tree    bool
		fontDir string
	)

	cmd := &cobra.Command{
		Use:   "layout [request file]",
		Short: "Compute the scene tree for a request",
		Long: `Compute the scene tree for a request.

The layout command runs composition only and writes the resulting scene
tree as JSON (the same document as 'generate -f json'). Use --tree to print
every node with its absolute bounds.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if fontDir == "" {
				fontDir = os.Getenv(envFontDir)
			}
			return c.runLayout(cmd.Context(), args[0], output, fontDir, tree)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.scene.json)")
	cmd.Flags().BoolVar(&tree, "tree", false, "print the node tree with absolute bounds")
	cmd.Flags().StringVar(&fontDir, "font-dir", "", "directory of Family-Weight.ttf files to measure with (env "+envFontDir+")")

	return cmd
}

func (c *CLI) runLayout(ctx context.Context, input, output, fontDir string, tree bool) error {
	req, err := loadRequest(input)
	if err != nil {
		return err
	}
	measurer, err := c.newMeasurer(fontDir)
	if err != nil {
		return err
	}

	progress := newProgress(c.Logger)
	runner := pipeline.NewRunner(nil, nil, c.Logger)
	root, err := runner.Build(ctx, pipeline.Options{Request: req, Measurer: measurer})
	if err != nil {
		return err
	}
	progress.done(fmt.Sprintf("Composed %d nodes", scene.Count(root)))

	data, err := sink.RenderJSON(root)
	if err != nil {
		return err
	}
	if output == "" {
		output = basePath("", input) + ".scene.json"
	}
	if err := io.WriteArtifact(output, data); err != nil {
		return err
	}

	printSuccess("Layout complete")
	printFile(output)
	if tree {
		printNewline()
		printTree(root)
	}
	printNewline()
	printNextStep("Render", appName+" generate "+input+" -f svg,png")
	return nil
}

// printTree prints every node indented by depth, with absolute bounds.
func printTree(root *scene.Node) {
	depth := map[*scene.Node]int{root: 0}
	scene.Walk(root, func(n *scene.Node, ox, oy float64) bool {
		d := depth[n]
		for _, ch := range n.Children {
			depth[ch] = d + 1
		}
		label := n.Name
		if n.Kind == scene.KindText && n.Text != nil {
			label += " " + StyleDim.Render(fmt.Sprintf("%q", truncate(n.Text.Content, 32)))
		}
		fmt.Printf("%s%s %s\n",
			strings.Repeat("  ", d),
			StyleHighlight.Render(label),
			StyleDim.Render(fmt.Sprintf("(%.1f, %.1f) %.1f×%.1f", ox+n.X, oy+n.Y, n.Width, n.Height)))
		return true
	})
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/thumbkit/pkg/canvas"
	"github.com/matzehuels/thumbkit/pkg/io"
	"github.com/matzehuels/thumbkit/pkg/pipeline"
)

// generateCommand creates the generate command, which runs the full pipeline.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		revision   string
		backend    backendFlags
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "generate [request.toml|request.yaml|request.json|-]",
		Short: "Render a thumbnail from a request file",
		Long: `Render a thumbnail from a request file.

The request file describes the heading, description, tags, contributors and
background. Use '-' to read a JSON request from stdin. Each requested format
is written next to the input (or to --output).

Rendered artifacts are cached locally; use --refresh to re-render.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			backend.resolve()
			return c.runGenerate(cmd.Context(), args[0], opts, output, revision, backend)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().Float64Var(&opts.Scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "ignore cached artifacts")
	cmd.Flags().StringVar(&revision, "revision", "", "override the request's canvas revision")
	backend.register(cmd)

	return cmd
}

func (c *CLI) runGenerate(ctx context.Context, input string, opts pipeline.Options, output, revision string, backend backendFlags) error {
	req, err := loadRequest(input)
	if err != nil {
		return err
	}
	if revision != "" {
		req.Revision = revision
	}
	loggerFromContext(ctx).Debug("loaded request",
		"input", input,
		"revision", req.Revision,
		"tags", len(req.Styles.Tags))

	runner, err := c.newRunner(ctx, backend)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	measurer, err := c.newMeasurer(backend.fontDir)
	if err != nil {
		return err
	}
	opts.Request = req
	opts.Measurer = measurer
	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, "Rendering thumbnail...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	return writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
		nodes:     result.Stats.NodeCount,
		cacheHit:  result.CacheInfo.RenderHit,
	})
}

// loadRequest reads a request file, or a JSON request from stdin for "-".
func loadRequest(input string) (*canvas.Request, error) {
	if input == "-" {
		req, err := io.ReadRequest(os.Stdin, io.FormatJSON)
		if err != nil {
			return nil, fmt.Errorf("stdin: %w", err)
		}
		return req, nil
	}
	return io.ImportRequest(input)
}

// =============================================================================
// Artifact Output
// =============================================================================

type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
	nodes     int
	cacheHit  bool
}

// writeArtifacts writes each rendered format and prints a summary.
func writeArtifacts(p artifactWriteParams) error {
	paths := outputPaths(p.formats, p.input, p.output)

	formats := make([]string, 0, len(paths))
	for f := range paths {
		formats = append(formats, f)
	}
	sort.Strings(formats)

	printSuccess("Thumbnail rendered")
	for _, f := range formats {
		if err := io.WriteArtifact(paths[f], p.artifacts[f]); err != nil {
			return err
		}
		printFile(paths[f])
	}
	printStats(p.nodes, len(formats), p.cacheHit)
	return nil
}

// outputPaths maps each format to its output file. A single format with an
// explicit output path writes exactly there; otherwise files are named
// <base>.<format>.
func outputPaths(formats []string, input, output string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input ("thumbnail" for
// stdin). If output has a format extension (.svg, .png, etc.), it strips that.
func basePath(output, input string) string {
	if output == "" {
		if input == "-" || input == "" {
			return "thumbnail"
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

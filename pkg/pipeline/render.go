package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/thumbkit/pkg/render/sink"
	"github.com/matzehuels/thumbkit/pkg/scene"
)

// RenderFormat renders one format.
func RenderFormat(ctx context.Context, root *scene.Node, format string, scale float64) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatSVG:
		data = sink.RenderSVG(root)
	case FormatJSON:
		data, err = sink.RenderJSON(root)
	case FormatPNG:
		data, err = sink.RenderPNG(ctx, root, sink.WithScale(scale))
	case FormatPDF:
		data, err = sink.RenderPDF(ctx, root)
	default:
		return nil, ValidateFormat(format)
	}
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return data, nil
}

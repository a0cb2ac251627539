// Package render converts SVG output into other formats.
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). The scene sinks in
// [sink] use them for PNG and PDF output:
//
//	svg := sink.RenderSVG(root)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// Conversion honours context cancellation; a cancelled context kills the
// child process.
package render

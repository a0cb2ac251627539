// Package sink turns a scene tree into output bytes.
//
// A "sink" is an adapter over [scene.Node]. This package provides:
//
//   - SVG: vector output with one tspan per wrapped line
//   - JSON: the scene tree itself, for hosts and caching
//   - PNG: raster output (requires rsvg-convert)
//   - PDF: print-ready output (requires rsvg-convert)
//
// # SVG Output
//
// Frames become groups, text nodes become text elements, avatars are
// clipped to circles and gradients become linearGradient definitions.
// Fonts are referenced by family name with generic fallbacks; no glyphs
// are embedded.
//
//	svg := sink.RenderSVG(root, sink.WithNodeNames())
//
// # Offline images
//
// rsvg-convert does not fetch remote images, so [RenderPNG] and
// [RenderPDF] draw placeholder swatches for any image that is not a data
// URI. [WithOfflineImages] does the same for SVG output.
package sink

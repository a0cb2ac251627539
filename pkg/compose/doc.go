// Package compose builds the scene tree for a thumbnail request.
//
// [Build] runs the whole pipeline in a fixed order:
//
//  1. Style resolution: validate the request and merge preset defaults.
//  2. Measurement: wrap heading and description to the content width,
//     size tag labels and contributor names.
//  3. Layout: anchor the text stack vertically, pack tags and contributor
//     chips into rows with [flow.Pack].
//  4. Emission: produce a [scene.Node] tree.
//
// Build never touches a host document. Sinks in pkg/render/sink turn the
// tree into SVG, JSON, PNG or PDF.
//
// # Tag placement
//
// Tags are grouped by position and each group is packed as one block.
// A top group starts at the top safe margin, a bottom group ends at the
// bottom safe margin (so extra rows grow upward), and an above-heading
// group ends a fixed gap above the text stack.
//
// # Contributors
//
// Contributor chips sit above the text stack when the heading is anchored
// to the bottom, and at the bottom of the canvas otherwise.
package compose

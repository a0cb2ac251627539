// Package pkg provides the core libraries for thumbkit, a procedural
// thumbnail composer.
//
// # Overview
//
// A thumbnail is a fixed-size canvas holding a heading, an optional
// description, tag pills and contributor chips. The pkg directory is
// organized into four areas:
//
//  1. Model - the request and its presets ([canvas]), colours ([color])
//  2. Layout - row packing and anchors ([flow]), text metrics ([measure],
//     [fonts]), scene construction ([compose], [scene])
//  3. Output - sinks for SVG, JSON, PNG and PDF ([render], [render/sink])
//  4. Infrastructure - orchestration ([pipeline]), caching ([cache]),
//     metrics hooks ([observability]), request files ([io]), errors
//     ([errors]) and build metadata ([buildinfo])
//
// # Architecture
//
// The data flow through thumbkit:
//
//	Request file / HTTP body
//	         ↓
//	    [canvas] (validate, merge preset defaults)
//	         ↓
//	    [measure] + [flow] (measure text, pack rows, pick anchors)
//	         ↓
//	    [compose] → [scene] tree
//	         ↓
//	    [render/sink] → SVG/PNG/PDF/JSON
//
// Every stage after request decoding is synchronous; only the sinks that
// shell out to rsvg-convert and the cache backends block.
//
// # Quick Start
//
//	req, err := io.ImportRequest("thumbnail.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Request: req,
//	    Formats: []string{"svg"},
//	})
//
// [canvas]: github.com/matzehuels/thumbkit/pkg/canvas
// [color]: github.com/matzehuels/thumbkit/pkg/color
// [flow]: github.com/matzehuels/thumbkit/pkg/flow
// [measure]: github.com/matzehuels/thumbkit/pkg/measure
// [fonts]: github.com/matzehuels/thumbkit/pkg/fonts
// [compose]: github.com/matzehuels/thumbkit/pkg/compose
// [scene]: github.com/matzehuels/thumbkit/pkg/scene
// [render]: github.com/matzehuels/thumbkit/pkg/render
// [render/sink]: github.com/matzehuels/thumbkit/pkg/render/sink
// [pipeline]: github.com/matzehuels/thumbkit/pkg/pipeline
// [cache]: github.com/matzehuels/thumbkit/pkg/cache
// [observability]: github.com/matzehuels/thumbkit/pkg/observability
// [io]: github.com/matzehuels/thumbkit/pkg/io
// [errors]: github.com/matzehuels/thumbkit/pkg/errors
// [buildinfo]: github.com/matzehuels/thumbkit/pkg/buildinfo
package pkg

// Package io reads thumbnail requests from JSON, TOML and YAML, and writes
// requests and rendered artifacts back to disk.
//
// # Request Files
//
// A request file describes one canvas:
//
//	heading = "Procedural thumbnails"
//	description = "Flow layout for tags and contributor chips"
//	revision = "standard"
//
//	[styles.heading]
//	color = "#ffffff"
//
//	[styles.background]
//	color = "#0f172a"
//	gradient = true
//	image_path = "cover.jpg"
//
//	[[styles.tags]]
//	text = "go"
//
// JSON uses camelCase keys and carries background images inline as base64
// ("image"). TOML and YAML use snake_case keys and reference images by path
// ("image_path"), resolved relative to the request file.
//
// # Import
//
// Use [ImportRequest] to read a file by path (the format is taken from the
// extension), or [ReadRequest] to decode from any io.Reader:
//
//	req, err := io.ImportRequest("thumbnail.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Decoding does not validate the request; validation happens when the
// request is composed.
//
// # Export
//
// [WriteRequest] and [ExportRequest] encode a request in any of the three
// formats, and [WriteArtifact] writes rendered bytes to a file, creating
// parent directories as needed.
package io

package io

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/thumbkit/pkg/canvas"
	"github.com/matzehuels/thumbkit/pkg/errors"
	"github.com/matzehuels/thumbkit/pkg/flow"
)

func sampleRequest() *canvas.Request {
	return &canvas.Request{
		Heading:     "Procedural thumbnails",
		Description: "Flow layout",
		Revision:    canvas.RevisionStandard,
		Styles: canvas.Styles{
			Heading:     canvas.TextStyle{Font: "Inter", Weight: "Bold", Size: 96, Color: "#ffffff", Position: flow.Bottom},
			Description: &canvas.TextStyle{Size: 40, Color: "#e5e7eb"},
			Background:  canvas.Background{Color: "#0f172a", Gradient: true},
			Tags: []canvas.Tag{
				{Text: "go", Position: flow.Top, FillColor: "#e5e7eb"},
				{Text: "layout"},
			},
			Contributors: &canvas.Contributors{
				Items:       []canvas.Contributor{{Name: "Ada", AvatarURL: "https://example.com/ada.png"}},
				DisplayMode: canvas.Both,
			},
		},
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{"a.json", FormatJSON, false},
		{"dir/a.TOML", FormatTOML, false},
		{"a.yaml", FormatYAML, false},
		{"a.yml", FormatYAML, false},
		{"a.txt", "", true},
		{"noext", "", true},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("FormatFromPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	for _, format := range []string{FormatJSON, FormatTOML, FormatYAML} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteRequest(sampleRequest(), &buf, format); err != nil {
				t.Fatalf("WriteRequest: %v", err)
			}
			got, err := ReadRequest(&buf, format)
			if err != nil {
				t.Fatalf("ReadRequest: %v", err)
			}
			want := sampleRequest()
			if got.Heading != want.Heading || got.Description != want.Description {
				t.Errorf("text = %q/%q, want %q/%q", got.Heading, got.Description, want.Heading, want.Description)
			}
			if got.Styles.Heading != want.Styles.Heading {
				t.Errorf("heading style = %+v, want %+v", got.Styles.Heading, want.Styles.Heading)
			}
			if got.Styles.Description == nil || *got.Styles.Description != *want.Styles.Description {
				t.Errorf("description style = %+v", got.Styles.Description)
			}
			if len(got.Styles.Tags) != 2 || got.Styles.Tags[0] != want.Styles.Tags[0] {
				t.Errorf("tags = %+v", got.Styles.Tags)
			}
			c := got.Styles.Contributors
			if c == nil || len(c.Items) != 1 || c.Items[0] != want.Styles.Contributors.Items[0] || c.DisplayMode != canvas.Both {
				t.Errorf("contributors = %+v", c)
			}
			if !got.Styles.Background.Gradient || got.Styles.Background.Color != "#0f172a" {
				t.Errorf("background = %+v", got.Styles.Background)
			}
		})
	}
}

func TestReadRequestKeys(t *testing.T) {
	tests := []struct {
		name, format, input string
		wantErr             bool
	}{
		{"json camelCase", FormatJSON, `{"heading":"h","styles":{"tags":[{"text":"a","fillColor":"#000000"}]}}`, false},
		{"json unknown", FormatJSON, `{"heading":"h","colour":"red"}`, true},
		{"json malformed", FormatJSON, `{"heading":`, true},
		{"toml snake_case", FormatTOML, "heading = \"h\"\n[[styles.tags]]\ntext = \"a\"\nfill_color = \"#000000\"\n", false},
		{"toml unknown", FormatTOML, "heading = \"h\"\ncolour = \"red\"\n", true},
		{"yaml snake_case", FormatYAML, "heading: h\nstyles:\n  tags:\n    - text: a\n      fill_color: '#000000'\n", false},
		{"yaml unknown", FormatYAML, "heading: h\ncolour: red\n", true},
		{"yaml empty", FormatYAML, "", false},
		{"bad format", "xml", "<a/>", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := ReadRequest(strings.NewReader(tt.input), tt.format)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReadRequest() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil || tt.input == "" {
				return
			}
			if len(req.Styles.Tags) == 1 && req.Styles.Tags[0].FillColor != "#000000" {
				t.Errorf("fill color = %q, want #000000", req.Styles.Tags[0].FillColor)
			}
		})
	}
}

func TestImportRequestImagePath(t *testing.T) {
	dir := t.TempDir()
	img := []byte("not really a png")
	if err := os.WriteFile(filepath.Join(dir, "cover.png"), img, 0o644); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "thumb.toml")
	src := "heading = \"h\"\n[styles.background]\ncolor = \"#ffffff\"\nimage_path = \"cover.png\"\n"
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	req, err := ImportRequest(path)
	if err != nil {
		t.Fatalf("ImportRequest: %v", err)
	}
	if !bytes.Equal(req.Styles.Background.Image, img) {
		t.Errorf("image = %q, want %q", req.Styles.Background.Image, img)
	}
}

func TestImportRequestErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := ImportRequest(filepath.Join(dir, "missing.json")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file: got %v, want FILE_NOT_FOUND", err)
	}
	if _, err := ImportRequest(filepath.Join(dir, "a.txt")); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("bad extension: got %v, want INVALID_FORMAT", err)
	}

	path := filepath.Join(dir, "thumb.yaml")
	src := "heading: h\nstyles:\n  background:\n    image_path: nope.png\n"
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ImportRequest(path); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing image: got %v, want FILE_NOT_FOUND", err)
	}
}

func TestExportImport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "req.yaml")
	if err := ExportRequest(sampleRequest(), path); err != nil {
		t.Fatal(err)
	}
	got, err := ImportRequest(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Heading != sampleRequest().Heading {
		t.Errorf("heading = %q", got.Heading)
	}
}

func TestWriteArtifact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "nested", "thumb.svg")
	if err := WriteArtifact(path, []byte("<svg/>")); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "<svg/>" {
		t.Errorf("content = %q", data)
	}
}

package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/thumbkit/pkg/cache"
	"github.com/matzehuels/thumbkit/pkg/io"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "svg", []string{"svg"}},
		{"multiple formats", "svg,pdf,png", []string{"svg", "pdf", "png"}},
		{"spaces and empties", " svg , ,png", []string{"svg", "png"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i, v := range got {
				if v != tt.want[i] {
					t.Errorf("parseFormats(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
				}
			}
		})
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "thumb.toml", "thumb"},
		{"", "dir/thumb.yaml", "dir/thumb"},
		{"", "-", "thumbnail"},
		{"out.svg", "thumb.toml", "out"},
		{"out.png", "thumb.toml", "out"},
		{"out", "thumb.toml", "out"},
		{"out.v2", "thumb.toml", "out.v2"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestOutputPaths(t *testing.T) {
	single := outputPaths([]string{"png"}, "thumb.toml", "cover.png")
	if single["png"] != "cover.png" {
		t.Errorf("single output = %v", single)
	}

	multi := outputPaths([]string{"svg", "png"}, "thumb.toml", "")
	if multi["svg"] != "thumb.svg" || multi["png"] != "thumb.png" {
		t.Errorf("multi output = %v", multi)
	}
}

func TestBackendFlagsResolve(t *testing.T) {
	t.Setenv(envRedisURL, "redis://localhost:6379/0")
	t.Setenv(envFontDir, "/fonts")

	f := backendFlags{}
	f.resolve()
	if f.redisURL != "redis://localhost:6379/0" || f.fontDir != "/fonts" {
		t.Errorf("resolve() = %+v", f)
	}

	f = backendFlags{redisURL: "redis://other:6379", fontDir: "/mine"}
	f.resolve()
	if f.redisURL != "redis://other:6379" || f.fontDir != "/mine" {
		t.Errorf("flags should win over env: %+v", f)
	}
}

func TestBackendFlagsKeyer(t *testing.T) {
	opts := cache.ArtifactKeyOpts{Format: "svg"}
	plain := backendFlags{}.keyer().ArtifactKey("h", opts)
	if !strings.HasPrefix(plain, "artifact:") {
		t.Errorf("default key = %q", plain)
	}

	t.Setenv(envCacheNS, "staging")
	f := backendFlags{}
	f.resolve()
	if got, want := f.keyer().ArtifactKey("h", opts), "staging:"+plain; got != want {
		t.Errorf("scoped key = %q, want %q", got, want)
	}
}

func TestSampleRequestComposes(t *testing.T) {
	for _, rev := range []string{"standard", "legacy"} {
		req := sampleRequest(rev)
		if _, err := req.Resolve(); err != nil {
			t.Errorf("sampleRequest(%q).Resolve() error: %v", rev, err)
		}
	}
}

func TestInitWritesRequest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "thumb.yaml")
	c := New(&bytes.Buffer{}, LogInfo)
	root := c.RootCommand()
	root.SetArgs([]string{"init", path})
	root.SetOut(&bytes.Buffer{})
	if err := root.Execute(); err != nil {
		t.Fatalf("init: %v", err)
	}

	req, err := io.ImportRequest(path)
	if err != nil {
		t.Fatalf("ImportRequest: %v", err)
	}
	if req.Heading != sampleRequest("standard").Heading {
		t.Errorf("heading = %q", req.Heading)
	}

	root = c.RootCommand()
	root.SetArgs([]string{"init", path})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	if err := root.Execute(); err == nil {
		t.Error("init over an existing file should fail without --force")
	}
}

func TestGenerateWritesArtifacts(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	dir := t.TempDir()
	input := filepath.Join(dir, "thumb.toml")
	if err := io.ExportRequest(sampleRequest("standard"), input); err != nil {
		t.Fatal(err)
	}

	c := New(&bytes.Buffer{}, LogInfo)
	root := c.RootCommand()
	root.SetArgs([]string{"generate", input, "-f", "svg,json"})
	if err := root.Execute(); err != nil {
		t.Fatalf("generate: %v", err)
	}

	for _, name := range []string{"thumb.svg", "thumb.json"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		if len(data) == 0 {
			t.Errorf("%s is empty", name)
		}
	}
}

func TestCacheDir(t *testing.T) {
	t.Run("xdg", func(t *testing.T) {
		xdg := t.TempDir()
		t.Setenv("XDG_CACHE_HOME", xdg)
		dir, err := cacheDir()
		if err != nil {
			t.Fatal(err)
		}
		if want := filepath.Join(xdg, appName); dir != want {
			t.Errorf("cacheDir() = %q, want %q", dir, want)
		}
	})

	t.Run("home", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("XDG_CACHE_HOME", "")
		t.Setenv("HOME", home)
		dir, err := cacheDir()
		if err != nil {
			t.Fatal(err)
		}
		if want := filepath.Join(home, ".cache", appName); dir != want {
			t.Errorf("cacheDir() = %q, want %q", dir, want)
		}
	})
}

func TestFormatBytes(t *testing.T) {
	tests := map[int64]string{
		0:       "0 B",
		512:     "512 B",
		1024:    "1.0 KiB",
		1536:    "1.5 KiB",
		5 << 20: "5.0 MiB",
		3 << 30: "3.0 GiB",
	}
	for n, want := range tests {
		if got := formatBytes(n); got != want {
			t.Errorf("formatBytes(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestCompletionCommand(t *testing.T) {
	for shell := range completionShells {
		t.Run(shell, func(t *testing.T) {
			root := New(&bytes.Buffer{}, LogInfo).RootCommand()
			var out bytes.Buffer
			root.SetOut(&out)
			root.SetArgs([]string{"completion", shell})
			if err := root.Execute(); err != nil {
				t.Fatalf("completion %s: %v", shell, err)
			}
			if out.Len() == 0 {
				t.Errorf("completion %s wrote nothing", shell)
			}
		})
	}
}

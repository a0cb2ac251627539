package buildinfo

import "testing"

func TestInfo(t *testing.T) {
	oldV, oldC, oldD := Version, Commit, Date
	t.Cleanup(func() { Version, Commit, Date = oldV, oldC, oldD })

	Version, Commit, Date = "v1.0.0", "abc123", "2026-01-02"
	info := Get()
	if info.Version != "v1.0.0" || info.Commit != "abc123" || info.Date != "2026-01-02" {
		t.Errorf("Get() = %+v", info)
	}
	if got, want := info.String(), "v1.0.0 (commit abc123, built 2026-01-02)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got, want := Template(), "{{.Name}} v1.0.0 (commit abc123, built 2026-01-02)\n"; got != want {
		t.Errorf("Template() = %q, want %q", got, want)
	}
}

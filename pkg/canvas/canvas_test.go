package canvas

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/matzehuels/thumbkit/pkg/errors"
	"github.com/matzehuels/thumbkit/pkg/flow"
)

func validRequest() *Request {
	return &Request{
		Heading: "Release notes",
		Styles: Styles{
			Heading: TextStyle{Size: 96, Color: "#000000", Position: flow.Bottom},
		},
	}
}

func TestRegionContent(t *testing.T) {
	tests := []struct {
		name   string
		region Region
		want   Rect
	}{
		{"standard", Region{1920, 1080, 160, 120}, Rect{160, 120, 1600, 840}},
		{"legacy", Region{400, 300, 20, 20}, Rect{20, 20, 360, 260}},
		{"margin exceeds canvas", Region{100, 50, 80, 40}, Rect{80, 40, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.region.Content(); got != tt.want {
				t.Errorf("Content() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDisplayMode(t *testing.T) {
	tests := []struct {
		mode         DisplayMode
		avatar, name bool
	}{
		{AvatarsOnly, true, false},
		{NamesOnly, false, true},
		{Both, true, true},
		{"", true, true},
	}
	for _, tt := range tests {
		if got := tt.mode.ShowAvatar(); got != tt.avatar {
			t.Errorf("%q.ShowAvatar() = %v, want %v", tt.mode, got, tt.avatar)
		}
		if got := tt.mode.ShowName(); got != tt.name {
			t.Errorf("%q.ShowName() = %v, want %v", tt.mode, got, tt.name)
		}
	}
}

func TestLookupPreset(t *testing.T) {
	p, ok := LookupPreset("")
	if !ok || p.Name != RevisionStandard {
		t.Fatalf("LookupPreset(\"\") = %q, %v; want standard", p.Name, ok)
	}
	if p.Region.Width != 1920 || p.Region.Height != 1080 {
		t.Errorf("standard region = %+v", p.Region)
	}

	p, ok = LookupPreset(RevisionLegacy)
	if !ok || !p.Fixed {
		t.Fatalf("legacy preset missing or not fixed")
	}
	if p.Region.Width != 400 || p.Region.Height != 300 {
		t.Errorf("legacy region = %+v", p.Region)
	}

	if _, ok := LookupPreset("v9"); ok {
		t.Error("LookupPreset(v9) should fail")
	}
}

func TestPresetsSorted(t *testing.T) {
	ps := Presets()
	if len(ps) != 2 {
		t.Fatalf("len(Presets()) = %d, want 2", len(ps))
	}
	if ps[0].Name != RevisionLegacy || ps[1].Name != RevisionStandard {
		t.Errorf("Presets() order = %s, %s", ps[0].Name, ps[1].Name)
	}
	for _, p := range ps {
		if p.Summary == "" || p.Description.Size <= 0 {
			t.Errorf("preset %s: summary=%q description style=%+v", p.Name, p.Summary, p.Description)
		}
		data, err := json.Marshal(p)
		if err != nil {
			t.Fatalf("marshal %s: %v", p.Name, err)
		}
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(data, &fields); err != nil {
			t.Fatal(err)
		}
		if !bytes.HasPrefix(fields["summary"], []byte(`"`)) || !bytes.HasPrefix(fields["description"], []byte("{")) {
			t.Errorf("preset %s json: summary=%s description=%s", p.Name, fields["summary"], fields["description"])
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Request)
		code   errors.Code
	}{
		{"valid", func(*Request) {}, ""},
		{"unknown revision", func(r *Request) { r.Revision = "v2" }, errors.ErrCodeInvalidRevision},
		{"blank heading", func(r *Request) { r.Heading = "  " }, errors.ErrCodeInvalidInput},
		{"legacy blank heading", func(r *Request) { r.Heading = ""; r.Revision = RevisionLegacy }, ""},
		{"control character", func(r *Request) { r.Heading = "a\x07b" }, errors.ErrCodeInvalidInput},
		{"negative size", func(r *Request) { r.Styles.Heading.Size = -1 }, errors.ErrCodeInvalidStyle},
		{"huge size", func(r *Request) { r.Styles.Heading.Size = 5000 }, errors.ErrCodeInvalidStyle},
		{"bad position", func(r *Request) { r.Styles.Heading.Position = "left" }, errors.ErrCodeInvalidPosition},
		{"bad description position", func(r *Request) {
			r.Styles.Description = &TextStyle{Position: "sideways"}
		}, errors.ErrCodeInvalidPosition},
		{"negative tag radius", func(r *Request) {
			radius := -4.0
			r.Styles.Tags = []Tag{{Text: "go", Radius: &radius}}
		}, errors.ErrCodeInvalidStyle},
		{"middle tag", func(r *Request) {
			r.Styles.Tags = []Tag{{Text: "go", Position: flow.Middle}}
		}, errors.ErrCodeInvalidPosition},
		{"bad tag position", func(r *Request) {
			r.Styles.Tags = []Tag{{Text: "go", Position: "nowhere"}}
		}, errors.ErrCodeInvalidPosition},
		{"too many tags", func(r *Request) {
			r.Styles.Tags = make([]Tag, MaxTags+1)
		}, errors.ErrCodeInvalidInput},
		{"bad display mode", func(r *Request) {
			r.Styles.Contributors = &Contributors{DisplayMode: "faces"}
		}, errors.ErrCodeInvalidStyle},
		{"bad avatar scheme", func(r *Request) {
			r.Styles.Contributors = &Contributors{Items: []Contributor{{Name: "a", AvatarURL: "ftp://x"}}}
		}, errors.ErrCodeInvalidInput},
		{"empty avatar allowed", func(r *Request) {
			r.Styles.Contributors = &Contributors{Items: []Contributor{{Name: "a"}}}
		}, ""},
		{"bad image path", func(r *Request) { r.Styles.Background.ImagePath = "a\x00b" }, errors.ErrCodeInvalidPath},
		{"malformed colour accepted", func(r *Request) { r.Styles.Heading.Color = "zzzzzz" }, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRequest()
			tt.mutate(r)
			err := r.Validate()
			if tt.code == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.code) {
				t.Fatalf("Validate() = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestHasDescription(t *testing.T) {
	r := validRequest()
	r.Description = "details"
	if r.HasDescription() {
		t.Error("description without style should not be drawn")
	}
	r.Styles.Description = &TextStyle{}
	if !r.HasDescription() {
		t.Error("description with style should be drawn")
	}
	r.Description = " "
	if r.HasDescription() {
		t.Error("blank description should not be drawn")
	}
}

func TestVisibleTags(t *testing.T) {
	r := validRequest()
	r.Styles.Tags = []Tag{{Text: "go"}, {Text: "  "}, {Text: ""}, {Text: "svg"}}
	got := r.VisibleTags()
	if len(got) != 2 || got[0].Text != "go" || got[1].Text != "svg" {
		t.Errorf("VisibleTags() = %+v", got)
	}
}

package flow

import "testing"

func TestAnchor(t *testing.T) {
	tests := []struct {
		name string
		pos  Position
		want float64
	}{
		{"top", Top, 120},
		{"bottom", Bottom, 910},
		{"middle", Middle, 515},
		{"unknown falls back to bottom", Position("sideways"), 910},
		{"empty falls back to bottom", "", 910},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Anchor(tt.pos, 1080, 120, 50); got != tt.want {
				t.Errorf("Anchor(%q) = %v, want %v", tt.pos, got, tt.want)
			}
		})
	}
}

func TestStackHeight(t *testing.T) {
	tests := []struct {
		name    string
		heights []float64
		want    float64
	}{
		{"single", []float64{50}, 50},
		{"two", []float64{50, 30}, 104},
		{"absent second", []float64{50, 0}, 50},
		{"three", []float64{10, 10, 10}, 78},
		{"none", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StackHeight(24, tt.heights...); got != tt.want {
				t.Errorf("StackHeight() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStackTextHeadingFirst(t *testing.T) {
	s := StackText(Top, Bottom, 1080, 120, 100, 40, DefaultTextGap)

	if s.HeadingY != 120 {
		t.Errorf("HeadingY = %v, want 120", s.HeadingY)
	}
	if s.DescriptionY != 244 {
		t.Errorf("DescriptionY = %v, want 244", s.DescriptionY)
	}
	if s.Top != 120 || s.Bottom != 284 {
		t.Errorf("stack = [%v, %v], want [120, 284]", s.Top, s.Bottom)
	}
}

func TestStackTextDescriptionAbove(t *testing.T) {
	s := StackText(Bottom, AboveHeading, 1080, 120, 100, 40, DefaultTextGap)

	// stack = 100 + 24 + 40 = 164; y = 1080 - 120 - 164 = 796
	if s.DescriptionY != 796 {
		t.Errorf("DescriptionY = %v, want 796", s.DescriptionY)
	}
	if s.HeadingY != 860 {
		t.Errorf("HeadingY = %v, want 860", s.HeadingY)
	}
	if s.Bottom != 960 {
		t.Errorf("Bottom = %v, want 960", s.Bottom)
	}
}

func TestStackTextNoDescription(t *testing.T) {
	s := StackText(Bottom, AboveHeading, 1080, 120, 50, 0, DefaultTextGap)
	if s.HeadingY != 910 {
		t.Errorf("HeadingY = %v, want 910", s.HeadingY)
	}
	if s.Top != 910 {
		t.Errorf("Top = %v, want 910", s.Top)
	}
}

func TestStackTextMiddle(t *testing.T) {
	s := StackText(Middle, "", 1080, 120, 80, 0, DefaultTextGap)
	if s.HeadingY != 500 {
		t.Errorf("HeadingY = %v, want 500", s.HeadingY)
	}
}

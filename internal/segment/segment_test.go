package segment

import (
	"testing"

	"github.com/san-kum/glucosim/internal/curve"
)

var glucose = Palette{
	Default: "#629C47",
	Rules: []Rule{
		{Value: 180, Color: "#FF7B7B", Label: "High"},
		{Value: 70, Color: "#FF7B7B", Below: true, Label: "Low"},
	},
}

func samples(values ...float64) []curve.Sample {
	out := make([]curve.Sample, len(values))
	for i, v := range values {
		out[i] = curve.Sample{Hour: float64(i), Value: v}
	}
	return out
}

func identity(i int) float64  { return float64(i) }
func value(v float64) float64 { return v }

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		expected string
	}{
		{"normal", 120, "#629C47"},
		{"high", 181, "#FF7B7B"},
		{"on the high line", 180, "#629C47"},
		{"low", 69, "#FF7B7B"},
		{"on the low line", 70, "#629C47"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := glucose.Classify(tt.value); got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestClassifyFirstMatchWins(t *testing.T) {
	zones := Palette{
		Default: "none",
		Rules: []Rule{
			{Value: 3.0, Color: "red"},
			{Value: 1.5, Color: "amber"},
			{Value: 0.5, Color: "green"},
		},
	}
	if got := zones.Classify(2.0); got != "amber" {
		t.Errorf("expected amber, got %s", got)
	}
	if got := zones.Classify(0.2); got != "none" {
		t.Errorf("expected default, got %s", got)
	}
}

func TestColorizeSingleColor(t *testing.T) {
	segs := Colorize(samples(100, 110, 120), identity, value, glucose)
	if len(segs) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segs))
	}
	if len(segs[0].Points) != 3 {
		t.Errorf("expected 3 points, got %d", len(segs[0].Points))
	}
}

func TestColorizeSharesBoundary(t *testing.T) {
	s := samples(120, 150, 190, 200, 150, 120)
	segs := Colorize(s, identity, value, glucose)
	if len(segs) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(segs))
	}
	for i := 1; i < len(segs); i++ {
		prev := segs[i-1].Points
		if prev[len(prev)-1] != segs[i].Points[0] {
			t.Errorf("segment %d does not start where %d ends", i, i-1)
		}
		if segs[i].Color == segs[i-1].Color {
			t.Errorf("adjacent segments %d and %d share color", i-1, i)
		}
	}
	if got := len(Flatten(segs)); got != len(s) {
		t.Errorf("expected %d flattened points, got %d", len(s), got)
	}
}

func TestColorizeChangeOnLastSample(t *testing.T) {
	s := samples(120, 150, 190)
	segs := Colorize(s, identity, value, glucose)
	if len(segs) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segs))
	}
	if segs[0].Color != "#629C47" || len(segs[0].Points) != 3 {
		t.Errorf("expected normal segment closed on the last point, got %s with %d points", segs[0].Color, len(segs[0].Points))
	}
	last := segs[1]
	if last.Color != "#FF7B7B" || len(last.Points) != 1 || last.Points[0] != (Point{X: 2, Y: 190}) {
		t.Errorf("expected one-point high segment at the end, got %+v", last)
	}
	if got := len(Flatten(segs)); got != len(s) {
		t.Errorf("expected %d flattened points, got %d", len(s), got)
	}
}

func TestColorizeTooShort(t *testing.T) {
	if segs := Colorize(samples(100), identity, value, glucose); len(segs) != 0 {
		t.Errorf("expected no segments, got %d", len(segs))
	}
	if segs := Colorize(nil, identity, value, glucose); len(segs) != 0 {
		t.Errorf("expected no segments, got %d", len(segs))
	}
}

func TestFlattenPreservesOrder(t *testing.T) {
	s := samples(60, 65, 100, 190, 100, 60, 50)
	flat := Flatten(Colorize(s, identity, value, glucose))
	if len(flat) != len(s) {
		t.Fatalf("expected %d points, got %d", len(s), len(flat))
	}
	for i, p := range flat {
		if p.X != float64(i) || p.Y != s[i].Value {
			t.Errorf("point %d: expected (%d, %f), got (%f, %f)", i, i, s[i].Value, p.X, p.Y)
		}
	}
}

func TestRuns(t *testing.T) {
	runs := Runs(samples(120, 190, 200, 120), glucose)
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(runs))
	}
	if runs[1].From != 1 || runs[1].To != 2 {
		t.Errorf("expected high run 1..2, got %d..%d", runs[1].From, runs[1].To)
	}
}

func TestClone(t *testing.T) {
	c := glucose.Clone()
	c.Rules[0].Color = "changed"
	if glucose.Rules[0].Color == "changed" {
		t.Error("clone shares rule storage")
	}
}

func TestZone(t *testing.T) {
	tests := []struct {
		value    float64
		expected string
	}{
		{200, "High"},
		{120, ""},
		{40, "Low"},
	}
	for _, tt := range tests {
		if got := glucose.Zone(tt.value); got != tt.expected {
			t.Errorf("Zone(%v): expected %q, got %q", tt.value, tt.expected, got)
		}
	}
}

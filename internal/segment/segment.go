package segment

import "github.com/san-kum/glucosim/internal/curve"

// Rule colors values above Value, or below it when Below is set.
type Rule struct {
	Value float64 `yaml:"value" json:"value"`
	Color string  `yaml:"color" json:"color"`
	Below bool    `yaml:"below,omitempty" json:"below,omitempty"`
	Label string  `yaml:"label,omitempty" json:"label,omitempty"`
}

func (r Rule) Matches(v float64) bool {
	if r.Below {
		return v < r.Value
	}
	return v > r.Value
}

// Palette is an ordered rule list. The first matching rule wins.
type Palette struct {
	Default string `yaml:"default" json:"default"`
	Rules   []Rule `yaml:"rules,omitempty" json:"rules,omitempty"`
}

func (p Palette) Classify(v float64) string {
	for _, r := range p.Rules {
		if r.Matches(v) {
			return r.Color
		}
	}
	return p.Default
}

// Zone returns the label of the first matching rule, or "" in the default zone.
func (p Palette) Zone(v float64) string {
	for _, r := range p.Rules {
		if r.Matches(v) {
			return r.Label
		}
	}
	return ""
}

// Clone returns a palette that shares no memory with p.
func (p Palette) Clone() Palette {
	out := Palette{Default: p.Default}
	if p.Rules != nil {
		out.Rules = append([]Rule(nil), p.Rules...)
	}
	return out
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Segment struct {
	Points []Point `json:"points"`
	Color  string  `json:"color"`
}

// Colorize splits a curve into single-colored polylines. Consecutive segments
// share their boundary point so the line stays continuous. A color change on
// the last sample leaves a one-point trailing segment in the new color.
func Colorize(samples []curve.Sample, xMap func(i int) float64, yMap func(v float64) float64, pal Palette) []Segment {
	if len(samples) < 2 {
		return nil
	}
	point := func(i int) Point {
		return Point{X: xMap(i), Y: yMap(samples[i].Value)}
	}

	segments := make([]Segment, 0, 4)
	cur := Segment{Color: pal.Classify(samples[0].Value), Points: []Point{point(0)}}
	for i := 1; i < len(samples); i++ {
		p := point(i)
		color := pal.Classify(samples[i].Value)
		cur.Points = append(cur.Points, p)
		if color != cur.Color {
			segments = append(segments, cur)
			cur = Segment{Color: color, Points: []Point{p}}
		}
	}
	return append(segments, cur)
}

// Flatten rebuilds the full polyline, dropping the shared boundary points.
func Flatten(segments []Segment) []Point {
	var out []Point
	for i, s := range segments {
		pts := s.Points
		if i > 0 && len(pts) > 0 {
			pts = pts[1:]
		}
		out = append(out, pts...)
	}
	return out
}

// Run is a stretch of consecutive samples sharing one color.
type Run struct {
	Color string `json:"color"`
	From  int    `json:"from"`
	To    int    `json:"to"`
}

// Runs classifies samples into color runs with inclusive index bounds.
func Runs(samples []curve.Sample, pal Palette) []Run {
	var runs []Run
	for i, s := range samples {
		c := pal.Classify(s.Value)
		if n := len(runs); n > 0 && runs[n-1].Color == c {
			runs[n-1].To = i
			continue
		}
		runs = append(runs, Run{Color: c, From: i, To: i})
	}
	return runs
}

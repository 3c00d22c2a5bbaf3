package curve

import (
	"math"

	"github.com/san-kum/glucosim/internal/catalog"
)

// Window is the charted time span in hours of the day. A window whose end is
// not after its start wraps past midnight.
type Window struct {
	StartHour float64 `yaml:"start_hour" json:"start_hour"`
	EndHour   float64 `yaml:"end_hour" json:"end_hour"`
}

type Params struct {
	Baseline   float64
	Window     Window
	SampleRate int
	Floor      float64
	Ceiling    *float64
}

type Sample struct {
	Label string  `json:"time"`
	Hour  float64 `json:"hour"`
	Value float64 `json:"value"`
}

// Span returns the window length in hours.
func Span(w Window) float64 {
	if w.EndHour > w.StartHour {
		return w.EndHour - w.StartHour
	}
	return 24 - w.StartHour + w.EndHour
}

func rate(p Params) int {
	if p.SampleRate < 1 {
		return 1
	}
	return p.SampleRate
}

// Len returns the number of samples in a curve.
func Len(p Params) int {
	return int(math.Round(Span(p.Window)*float64(rate(p)))) + 1
}

// OnsetHour maps a normalized position to hours since window start.
func OnsetHour(position float64, p Params) float64 {
	return clamp01(position) * float64(Len(p)-1) / float64(rate(p))
}

// Response is the shape multiplier of an item at the given hours since onset.
// It rises as a quarter sine to 1 at PeakTime and falls as a quarter cosine to
// 0 at Duration.
// Items that were never normalized (PeakTime <= 0 or Duration <= PeakTime)
// respond with 0.
func Response(it catalog.Item, since float64) float64 {
	if !(it.PeakTime > 0 && it.Duration > it.PeakTime) || math.IsInf(it.Duration, 0) {
		return 0
	}
	if since < 0 || since > it.Duration {
		return 0
	}
	if since <= it.PeakTime {
		return math.Sin(math.Pi / 2 * since / it.PeakTime)
	}
	decline := math.Min(1, (since-it.PeakTime)/(it.Duration-it.PeakTime))
	return math.Cos(math.Pi / 2 * decline)
}

// Synthesize superimposes the responses of normalized items onto the baseline.
// Items without a timing entry contribute nothing.
func Synthesize(items []catalog.Item, timings map[string]float64, p Params) []Sample {
	onsets := make([]float64, len(items))
	active := make([]bool, len(items))
	for i, it := range items {
		pos, ok := timings[it.ID]
		if !ok {
			continue
		}
		onsets[i] = OnsetHour(pos, p)
		active[i] = true
	}
	return synthesize(items, onsets, active, p)
}

// Single plots one normalized item whose onset is given in hours since window
// start.
func Single(it catalog.Item, onsetHour float64, p Params) []Sample {
	return synthesize([]catalog.Item{it}, []float64{onsetHour}, []bool{true}, p)
}

func synthesize(items []catalog.Item, onsets []float64, active []bool, p Params) []Sample {
	r := float64(rate(p))
	n := Len(p)
	samples := make([]Sample, n)
	for i := range samples {
		t := float64(i) / r
		v := p.Baseline
		for j, it := range items {
			if !active[j] {
				continue
			}
			c := it.Effect() * Response(it, t-onsets[j])
			if math.IsNaN(c) || math.IsInf(c, 0) {
				continue
			}
			v += c
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			v = p.Baseline
		}
		v = math.Max(p.Floor, v)
		if p.Ceiling != nil {
			v = math.Min(*p.Ceiling, v)
		}
		samples[i] = Sample{
			Label: Label(p.Window.StartHour, t),
			Hour:  t,
			Value: v,
		}
	}
	return samples
}

// ValueAt interpolates the curve at a normalized position.
func ValueAt(samples []Sample, position float64) float64 {
	switch len(samples) {
	case 0:
		return 0
	case 1:
		return samples[0].Value
	}
	x := clamp01(position) * float64(len(samples)-1)
	i := int(math.Floor(x))
	if i >= len(samples)-1 {
		return samples[len(samples)-1].Value
	}
	frac := x - float64(i)
	return samples[i].Value + (samples[i+1].Value-samples[i].Value)*frac
}

// Peak returns the index of the largest sample, or -1 for an empty curve.
func Peak(samples []Sample) int {
	best := -1
	for i, s := range samples {
		if best < 0 || s.Value > samples[best].Value {
			best = i
		}
	}
	return best
}

// Values extracts the sample values, for plotting.
func Values(samples []Sample) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = s.Value
	}
	return out
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}

package catalog

import "math"

const (
	DefaultPeakTime = 1.0
	DefaultDuration = 3.0
	MinPeakTime     = 1e-3
	MinDecline      = 1e-3

	// DefaultImpactStart is the onset, in hours from window start, of a
	// learning module item that does not name one.
	DefaultImpactStart = 0.5
)

// Item is one entry of a catalog: a food, an activity or a dose. Only the
// timing fields and the effect size reach the synthesizer; everything else is
// carried through for display.
type Item struct {
	ID          string   `yaml:"id" json:"id"`
	Name        string   `yaml:"name" json:"name"`
	Category    string   `yaml:"category,omitempty" json:"category,omitempty"`
	Serving     string   `yaml:"serving,omitempty" json:"serving,omitempty"`
	Magnitude   *float64 `yaml:"magnitude,omitempty" json:"magnitude,omitempty"`
	PeakValue   *float64 `yaml:"peak_value,omitempty" json:"peak_value,omitempty"`
	PeakTime    float64  `yaml:"peak_time,omitempty" json:"peak_time,omitempty"`
	Duration    float64  `yaml:"duration,omitempty" json:"duration,omitempty"`
	ImpactStart *float64 `yaml:"impact_start,omitempty" json:"impact_start,omitempty"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Image       string   `yaml:"image,omitempty" json:"image,omitempty"`
	Icon        string   `yaml:"icon,omitempty" json:"icon,omitempty"`

	// invalid names numeric fields dropped by UnmarshalYAML.
	invalid string
}

// Defaults are the timing values used when a catalog entry leaves them out.
type Defaults struct {
	PeakTime float64 `yaml:"peak_time"`
	Duration float64 `yaml:"duration"`
}

func DefaultDefaults() Defaults {
	return Defaults{PeakTime: DefaultPeakTime, Duration: DefaultDuration}
}

// Label returns the display name, falling back to the id.
func (it Item) Label() string {
	if it.Name != "" {
		return it.Name
	}
	return it.ID
}

// Effect returns the normalized magnitude. It is only meaningful after Normalize.
func (it Item) Effect() float64 {
	if it.Magnitude == nil {
		return 0
	}
	return *it.Magnitude
}

// Onset returns the impact start used when an item is plotted on its own.
func (it Item) Onset() float64 {
	if it.ImpactStart == nil {
		return DefaultImpactStart
	}
	return *it.ImpactStart
}

// Normalize resolves every optional field of an item against a baseline so the
// synthesizer can rely on a finite magnitude, PeakTime > 0 and
// Duration > PeakTime. Duration is measured from onset.
func Normalize(it Item, baseline float64, d Defaults) Item {
	if d.PeakTime <= 0 || !finite(d.PeakTime) {
		d.PeakTime = DefaultPeakTime
	}
	if d.Duration <= 0 || !finite(d.Duration) {
		d.Duration = DefaultDuration
	}

	out := it
	mag := 0.0
	switch {
	case it.Magnitude != nil && finite(*it.Magnitude):
		mag = *it.Magnitude
	case it.PeakValue != nil && finite(*it.PeakValue) && finite(baseline):
		mag = *it.PeakValue - baseline
	}
	out.Magnitude = &mag

	switch {
	case it.PeakTime == 0:
		out.PeakTime = d.PeakTime
	case it.PeakTime < 0 || !finite(it.PeakTime):
		out.PeakTime = MinPeakTime
	}

	switch {
	case it.Duration == 0:
		out.Duration = math.Max(d.Duration, out.PeakTime+MinDecline)
	case !finite(it.Duration) || it.Duration <= out.PeakTime:
		out.Duration = out.PeakTime + MinDecline
	}

	if it.ImpactStart != nil {
		start := *it.ImpactStart
		if !finite(start) || start < 0 {
			start = 0
		}
		out.ImpactStart = &start
	}
	return out
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Float is a convenience for building items in code.
func Float(v float64) *float64 { return &v }

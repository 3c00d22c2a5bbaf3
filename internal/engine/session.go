package engine

import (
	"io"
	"log/slog"
	"math"

	"github.com/san-kum/glucosim/internal/catalog"
	"github.com/san-kum/glucosim/internal/chart"
	"github.com/san-kum/glucosim/internal/config"
	"github.com/san-kum/glucosim/internal/curve"
	"github.com/san-kum/glucosim/internal/segment"
)

const (
	EmptyNarrative = "Add different items to the timeline to see how they affect your blood sugar..."
	DragNarrative  = "Drag the food icons below the chart to see how timing affects your glucose levels."
)

type Session struct {
	cfg config.Config
	log *slog.Logger

	raw     []catalog.Item
	items   []catalog.Item
	timings map[string]float64
	last    string
	inspect string
}

type Option func(*Session)

func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// Marker is a selected item placed on the timeline.
type Marker struct {
	Item     catalog.Item `json:"item"`
	Position float64      `json:"position"`
	Hour     float64      `json:"hour"`
	Value    float64      `json:"value"`
}

func New(cfg config.Config, opts ...Option) *Session {
	s := &Session{
		cfg:     cfg.Clone(),
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		timings: make(map[string]float64),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) Config() config.Config { return s.cfg.Clone() }

// Select adds an item to the selection, or removes it when already selected.
// Selecting into a full set does nothing.
func (s *Session) Select(it catalog.Item) {
	if s.IsSelected(it.ID) {
		s.Deselect(it.ID)
		return
	}
	if s.Full() {
		s.log.Debug("selection full", "item", it.ID, "max", s.cfg.MaxSelected)
		return
	}
	idx := len(s.items)
	s.raw = append(s.raw, it)
	s.items = append(s.items, catalog.Normalize(it, s.cfg.Baseline, s.cfg.Defaults))
	s.timings[it.ID] = s.placement(idx)
	s.last = it.ID
	s.log.Debug("item selected", "item", it.ID, "position", s.timings[it.ID])
}

func (s *Session) placement(idx int) float64 {
	p := s.cfg.Placement
	return clamp01(math.Min(p.Start+float64(idx)*p.Spacing, p.Max))
}

func (s *Session) Deselect(id string) {
	idx := s.index(id)
	if idx < 0 {
		return
	}
	s.raw = append(s.raw[:idx], s.raw[idx+1:]...)
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	delete(s.timings, id)
	if s.last == id {
		s.last = ""
		if n := len(s.items); n > 0 {
			s.last = s.items[n-1].ID
		}
	}
	if s.inspect == id {
		s.inspect = ""
	}
	s.log.Debug("item deselected", "item", id)
}

func (s *Session) Reset() {
	s.raw = nil
	s.items = nil
	s.timings = make(map[string]float64)
	s.last = ""
	s.inspect = ""
}

// Retime moves a selected item. Positions are clamped to [0,1]; unknown ids
// are ignored.
func (s *Session) Retime(id string, position float64) {
	if _, ok := s.timings[id]; !ok {
		s.log.Debug("retime of unselected item", "item", id)
		return
	}
	s.timings[id] = clamp01(position)
}

func (s *Session) Position(id string) (float64, bool) {
	p, ok := s.timings[id]
	return p, ok
}

// Selection returns the normalized selected items in selection order.
func (s *Session) Selection() []catalog.Item {
	out := make([]catalog.Item, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Session) Timings() map[string]float64 {
	out := make(map[string]float64, len(s.timings))
	for k, v := range s.timings {
		out[k] = v
	}
	return out
}

func (s *Session) IsSelected(id string) bool { return s.index(id) >= 0 }
func (s *Session) Full() bool                { return len(s.items) >= s.cfg.MaxSelected }
func (s *Session) Len() int                  { return len(s.items) }

func (s *Session) index(id string) int {
	for i, it := range s.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func (s *Session) item(id string) (catalog.Item, bool) {
	if i := s.index(id); i >= 0 {
		return s.items[i], true
	}
	return catalog.Item{}, false
}

// LastSelected is the most recently selected item still in the set.
func (s *Session) LastSelected() (catalog.Item, bool) { return s.item(s.last) }

func (s *Session) Inspected() (catalog.Item, bool) { return s.item(s.inspect) }

// ToggleInspect marks an item as inspected, or clears it if it already is.
func (s *Session) ToggleInspect(id string) {
	if s.inspect == id {
		s.inspect = ""
		return
	}
	if s.IsSelected(id) {
		s.inspect = id
	}
}

func (s *Session) ClearInspect() { s.inspect = "" }

// Narrative is the explanatory text shown under the chart.
func (s *Session) Narrative() string {
	if it, ok := s.Inspected(); ok && it.Description != "" {
		return it.Description
	}
	if len(s.items) == 0 {
		return EmptyNarrative
	}
	if it, ok := s.LastSelected(); ok && it.Description != "" {
		return it.Description
	}
	return DragNarrative
}

func (s *Session) Curve() []curve.Sample {
	return curve.Synthesize(s.items, s.timings, s.cfg.Params())
}

// Segments recomputes the curve and splits it into colored polylines inside
// the frame.
func (s *Session) Segments(f chart.Frame) []segment.Segment {
	samples := s.Curve()
	n := len(samples)
	return segment.Colorize(samples,
		func(i int) float64 { return f.IndexToPixel(i, n) },
		f.ValueToPixel,
		s.cfg.Palette)
}

// MarkerValue is the curve value under a selected item's marker.
func (s *Session) MarkerValue(id string) (float64, bool) {
	p, ok := s.timings[id]
	if !ok {
		return 0, false
	}
	return curve.ValueAt(s.Curve(), p), true
}

// Markers lists the selected items with their positions and curve values.
func (s *Session) Markers() []Marker {
	samples := s.Curve()
	params := s.cfg.Params()
	out := make([]Marker, 0, len(s.items))
	for _, it := range s.items {
		p := s.timings[it.ID]
		out = append(out, Marker{
			Item:     it,
			Position: p,
			Hour:     curve.OnsetHour(p, params),
			Value:    curve.ValueAt(samples, p),
		})
	}
	return out
}

// Rebase returns a session for a new config that keeps the selection and
// timings. Items are normalized again against the new baseline; items beyond
// the new capacity are dropped.
func (s *Session) Rebase(cfg config.Config) *Session {
	next := New(cfg, WithLogger(s.log))
	for _, it := range s.raw {
		if next.Full() {
			s.log.Debug("rebase dropped item", "item", it.ID)
			continue
		}
		next.raw = append(next.raw, it)
		next.items = append(next.items, catalog.Normalize(it, next.cfg.Baseline, next.cfg.Defaults))
		next.timings[it.ID] = s.timings[it.ID]
	}
	if next.IsSelected(s.last) {
		next.last = s.last
	} else if n := len(next.items); n > 0 {
		next.last = next.items[n-1].ID
	}
	if next.IsSelected(s.inspect) {
		next.inspect = s.inspect
	}
	return next
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}

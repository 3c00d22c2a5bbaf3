// Package export renders a computed session as SVG, CSV or JSON.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/glucosim/internal/curve"
	"github.com/san-kum/glucosim/internal/engine"
	"github.com/san-kum/glucosim/internal/segment"
)

// Report is a snapshot of everything derived from a session.
type Report struct {
	Page     string          `json:"page"`
	Unit     string          `json:"unit"`
	Baseline float64         `json:"baseline"`
	Window   curve.Window    `json:"window"`
	Samples  []curve.Sample  `json:"samples"`
	Markers  []MarkerRow     `json:"markers"`
	Runs     []segment.Run   `json:"runs"`
	Rules    []segment.Rule  `json:"references,omitempty"`
	Palette  segment.Palette `json:"palette"`
}

type MarkerRow struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Position float64 `json:"position"`
	Time     string  `json:"time"`
	Value    float64 `json:"value"`
	Zone     string  `json:"zone,omitempty"`
}

func NewReport(s *engine.Session) Report {
	cfg := s.Config()
	samples := s.Curve()
	r := Report{
		Page:     cfg.Name,
		Unit:     cfg.Unit,
		Baseline: cfg.Baseline,
		Window:   cfg.Window,
		Samples:  samples,
		Runs:     segment.Runs(samples, cfg.Palette),
		Rules:    cfg.References,
		Palette:  cfg.Palette,
	}
	for _, mk := range s.Markers() {
		r.Markers = append(r.Markers, MarkerRow{
			ID:       mk.Item.ID,
			Name:     mk.Item.Label(),
			Position: mk.Position,
			Time:     curve.Label(cfg.Window.StartHour, mk.Hour),
			Value:    mk.Value,
			Zone:     cfg.Palette.Zone(mk.Value),
		})
	}
	return r
}

func JSON(w io.Writer, s *engine.Session) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewReport(s)); err != nil {
		return fmt.Errorf("export: encode json: %w", err)
	}
	return nil
}

// CSV writes one row per sample: time label, hours since window start,
// value, zone color and zone label.
func CSV(w io.Writer, s *engine.Session) error {
	cfg := s.Config()
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"time", "hour", "value", "color", "zone"}); err != nil {
		return fmt.Errorf("export: write csv: %w", err)
	}
	for _, smp := range s.Curve() {
		row := []string{
			smp.Label,
			strconv.FormatFloat(smp.Hour, 'f', -1, 64),
			strconv.FormatFloat(smp.Value, 'f', 2, 64),
			cfg.Palette.Classify(smp.Value),
			cfg.Palette.Zone(smp.Value),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("export: write csv: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export: write csv: %w", err)
	}
	return nil
}

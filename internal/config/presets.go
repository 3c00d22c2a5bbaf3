package config

import (
	"sort"

	"github.com/san-kum/glucosim/internal/curve"
	"github.com/san-kum/glucosim/internal/segment"
)

// Presets are the page configurations shipped with the binary.
var Presets = map[string]func() *Config{
	"blood-sugar": DefaultConfig,
	"glycemic-index": func() *Config {
		cfg := DefaultConfig()
		cfg.Name = "glycemic-index"
		cfg.Title = "Glycemic Index"
		cfg.Floor = cfg.Chart.YMin
		cfg.Ceiling = ptr(cfg.Chart.YMax)
		cfg.Palette = segment.Palette{
			Default: NormalColor,
			Rules: []segment.Rule{
				{Value: 180, Color: HighColor, Label: "High"},
				{Value: 120, Color: NormalColor, Label: "Normal"},
				{Value: 70, Color: HighColor, Below: true, Label: "Low"},
			},
		}
		cfg.References = []segment.Rule{
			{Value: 70, Color: HighColor, Label: "Low"},
			{Value: 120, Color: NormalColor, Label: "Normal"},
			{Value: 180, Color: HighColor, Label: "High"},
		}
		return cfg
	},
	"ketones": func() *Config {
		cfg := DefaultConfig()
		cfg.Name = "ketones"
		cfg.Title = "Ketones"
		cfg.Unit = "mmol/L"
		cfg.Baseline = 0.1
		cfg.Floor = 0
		cfg.Ceiling = ptr(3.0)
		cfg.Chart.Height = 300
		cfg.Chart.YMin = 0
		cfg.Chart.YMax = 3.0
		cfg.Palette = segment.Palette{
			Default: "#cbd5e1",
			Rules: []segment.Rule{
				{Value: 3.0, Color: "#ef4444", Label: "DKA Risk"},
				{Value: 1.5, Color: "#f59e0b", Label: "Deep"},
				{Value: 0.5, Color: "#22c55e", Label: "Nutritional"},
				{Value: 0.3, Color: "#94a3b8", Label: "Light"},
			},
		}
		cfg.References = []segment.Rule{
			{Value: 0.3, Color: "#94a3b8", Label: "Light"},
			{Value: 0.5, Color: "#22c55e", Label: "Nutritional"},
			{Value: 1.5, Color: "#f59e0b", Label: "Deep"},
			{Value: 3.0, Color: "#ef4444", Label: "DKA Risk"},
		}
		return cfg
	},
	"insulin-dosing": func() *Config {
		cfg := DefaultConfig()
		cfg.Name = "insulin-dosing"
		cfg.Title = "Insulin Dosing"
		cfg.Window = curve.Window{StartHour: 9, EndHour: 18}
		cfg.Floor = 50
		cfg.Ceiling = ptr(200)
		cfg.Chart.Height = 300
		cfg.Chart.YMin = 50
		cfg.Chart.YMax = 200
		cfg.Palette = segment.Palette{
			Default: "#22c55e",
			Rules: []segment.Rule{
				{Value: 180, Color: "#f59e0b", Label: "High"},
				{Value: 70, Color: "#ef4444", Below: true, Label: "Hypo Risk"},
			},
		}
		cfg.References = []segment.Rule{
			{Value: 70, Color: "#ef4444", Label: "Hypo Risk"},
			{Value: 120, Color: "#22c55e", Label: "Target"},
			{Value: 180, Color: "#f59e0b", Label: "High"},
		}
		cfg.Disclaimer = "Educational content only. Never adjust insulin without healthcare provider guidance."
		return cfg
	},
}

// GetPreset returns a fresh copy of a page preset, or nil.
func GetPreset(name string) *Config {
	build, ok := Presets[name]
	if !ok {
		return nil
	}
	return build()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func ptr(v float64) *float64 { return &v }

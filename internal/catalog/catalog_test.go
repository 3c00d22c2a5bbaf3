package catalog

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	c := Default()
	if len(c.Items) == 0 {
		t.Fatal("expected built-in items")
	}
	soda, ok := c.Lookup("soda")
	if !ok {
		t.Fatal("expected soda in built-in catalog")
	}
	if soda.Effect() != 35 {
		t.Errorf("expected magnitude 35, got %f", soda.Effect())
	}
	if _, ok := c.Lookup("nonexistent"); ok {
		t.Error("expected lookup miss")
	}
}

func TestModules(t *testing.T) {
	for _, page := range ModulePages() {
		mods, err := Modules(page)
		if err != nil {
			t.Fatalf("%s: %v", page, err)
		}
		if len(mods) != 3 {
			t.Errorf("%s: expected 3 modules, got %d", page, len(mods))
		}
	}
	if _, err := Modules("blood-sugar"); !errors.Is(err, ErrUnknownModule) {
		t.Errorf("expected ErrUnknownModule, got %v", err)
	}
}

func TestParse(t *testing.T) {
	data := []byte(`
items:
  - {id: soda, name: Soda, category: drink, magnitude: 35, peak_time: 0.5, duration: 2}
  - {id: water, name: Water, category: drink}
modules:
  - id: fruits
    name: Fruits
    items:
      - {id: apple, name: Apple, peak_value: 145, peak_time: 1.5, duration: 3.0}
`)
	c, err := Parse(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(c.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(c.Items))
	}
	water, _ := c.Lookup("water")
	if water.Magnitude != nil {
		t.Error("expected missing magnitude to stay nil until normalized")
	}
	m, err := c.Module("fruits")
	if err != nil {
		t.Fatalf("module: %v", err)
	}
	if *m.Items[0].PeakValue != 145 {
		t.Errorf("expected peak value 145, got %f", *m.Items[0].PeakValue)
	}
	if _, err := c.Module("grains"); !errors.Is(err, ErrUnknownModule) {
		t.Errorf("expected ErrUnknownModule, got %v", err)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		err  error
	}{
		{"duplicate", "items:\n  - {id: a}\n  - {id: a}\n", ErrDuplicateID},
		{"missing id", "items:\n  - {name: Nameless}\n", ErrMissingID},
		{"duplicate in module", "modules:\n  - name: M\n    items:\n      - {id: a}\n      - {id: a}\n", ErrDuplicateID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.data)); !errors.Is(err, tt.err) {
				t.Errorf("expected %v, got %v", tt.err, err)
			}
		})
	}

	if _, err := Parse([]byte("items: [")); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

func TestParseNonNumericFields(t *testing.T) {
	data := []byte(`
items:
  - {id: soda, magnitude: lots, peak_time: soon, duration: 2}
  - {id: apple, magnitude: 20}
modules:
  - id: fruits
    name: Fruits
    items:
      - {id: grapes, peak_value: high, impact_start: 1}
`)
	c, err := Parse(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	soda, ok := c.Lookup("soda")
	if !ok {
		t.Fatal("expected soda to survive a bad magnitude")
	}
	if soda.Magnitude != nil || soda.PeakTime != 0 || soda.Duration != 2 {
		t.Errorf("expected bad fields dropped and good ones kept, got %+v", soda)
	}
	if got := Normalize(soda, 120, DefaultDefaults()).Effect(); got != 0 {
		t.Errorf("expected zero effect, got %f", got)
	}
	apple, _ := c.Lookup("apple")
	if apple.Effect() != 20 {
		t.Errorf("expected apple magnitude 20, got %f", apple.Effect())
	}
	grapes := c.Modules[0].Items[0]
	if grapes.PeakValue != nil || grapes.Onset() != 1 {
		t.Errorf("expected peak value dropped and impact start kept, got %+v", grapes)
	}

	warnings := c.Warnings()
	if len(warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %v", warnings)
	}
	if !strings.Contains(warnings[0], "soda") || !strings.Contains(warnings[0], "magnitude") || !strings.Contains(warnings[0], "peak_time") {
		t.Errorf("unexpected warning %q", warnings[0])
	}
	if !strings.Contains(warnings[1], "module fruits: grapes") {
		t.Errorf("unexpected warning %q", warnings[1])
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte("items:\n  - {id: tea, magnitude: 2}\n"), 0644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, ok := c.Lookup("tea"); !ok {
		t.Error("expected tea after load")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSearch(t *testing.T) {
	c := Default()
	tests := []struct {
		term     string
		contains string
	}{
		{"SODA", "soda"},
		{"rice", "white-rice"},
		{"exercise", "30-min-run"},
	}
	for _, tt := range tests {
		found := false
		for _, it := range c.Search(tt.term) {
			if it.ID == tt.contains {
				found = true
			}
		}
		if !found {
			t.Errorf("search %q: expected %s", tt.term, tt.contains)
		}
	}
	if got := len(c.Search("")); got != len(c.Items) {
		t.Errorf("expected all %d items for empty search, got %d", len(c.Items), got)
	}
	if got := len(c.Search("zzz")); got != 0 {
		t.Errorf("expected no matches, got %d", got)
	}
}

func TestCategories(t *testing.T) {
	cats := Default().Categories()
	for i := 1; i < len(cats); i++ {
		if cats[i-1] >= cats[i] {
			t.Fatalf("categories not sorted and unique: %v", cats)
		}
	}
}

func TestNormalize(t *testing.T) {
	d := DefaultDefaults()
	tests := []struct {
		name     string
		item     Item
		mag      float64
		peak     float64
		duration float64
	}{
		{"defaults", Item{ID: "a", Magnitude: Float(10)}, 10, 1.0, 3.0},
		{"missing magnitude", Item{ID: "a"}, 0, 1.0, 3.0},
		{"nan magnitude", Item{ID: "a", Magnitude: Float(math.NaN())}, 0, 1.0, 3.0},
		{"peak value", Item{ID: "a", PeakValue: Float(145)}, 25, 1.0, 3.0},
		{"negative peak", Item{ID: "a", PeakTime: -1}, 0, MinPeakTime, 3.0},
		{"duration before peak", Item{ID: "a", PeakTime: 2, Duration: 1}, 0, 2, 2 + MinDecline},
		{"long peak no duration", Item{ID: "a", PeakTime: 5}, 0, 5, 5 + MinDecline},
		{"infinite duration", Item{ID: "a", Duration: math.Inf(1)}, 0, 1.0, 1.0 + MinDecline},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.item, 120, d)
			if got.Effect() != tt.mag {
				t.Errorf("expected magnitude %f, got %f", tt.mag, got.Effect())
			}
			if got.PeakTime != tt.peak {
				t.Errorf("expected peak %f, got %f", tt.peak, got.PeakTime)
			}
			if got.Duration != tt.duration {
				t.Errorf("expected duration %f, got %f", tt.duration, got.Duration)
			}
		})
	}
}

func TestNormalizeDoesNotAlias(t *testing.T) {
	it := Item{ID: "a", Magnitude: Float(5), ImpactStart: Float(-2)}
	out := Normalize(it, 0, DefaultDefaults())
	*out.Magnitude = 99
	if *it.Magnitude != 5 {
		t.Error("normalized item aliases the source magnitude")
	}
	if *out.ImpactStart != 0 {
		t.Errorf("expected impact start clamped to 0, got %f", *out.ImpactStart)
	}
}

func TestOnset(t *testing.T) {
	if got := (Item{}).Onset(); got != DefaultImpactStart {
		t.Errorf("expected default onset, got %f", got)
	}
	if got := (Item{ImpactStart: Float(8)}).Onset(); got != 8 {
		t.Errorf("expected onset 8, got %f", got)
	}
}

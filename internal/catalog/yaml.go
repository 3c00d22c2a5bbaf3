package catalog

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// itemFields mirrors Item with the numeric fields left undecoded, so a bad
// value can be dropped without losing the rest of the entry.
type itemFields struct {
	ID          string    `yaml:"id"`
	Name        string    `yaml:"name"`
	Category    string    `yaml:"category"`
	Serving     string    `yaml:"serving"`
	Magnitude   yaml.Node `yaml:"magnitude"`
	PeakValue   yaml.Node `yaml:"peak_value"`
	PeakTime    yaml.Node `yaml:"peak_time"`
	Duration    yaml.Node `yaml:"duration"`
	ImpactStart yaml.Node `yaml:"impact_start"`
	Description string    `yaml:"description"`
	Image       string    `yaml:"image"`
	Icon        string    `yaml:"icon"`
}

// UnmarshalYAML decodes an item, discarding numeric fields that do not parse
// as numbers. A discarded magnitude leaves the item with zero effect and a
// discarded timing falls back to the defaults in Normalize.
func (it *Item) UnmarshalYAML(n *yaml.Node) error {
	var f itemFields
	if err := n.Decode(&f); err != nil {
		return err
	}
	*it = Item{
		ID:          f.ID,
		Name:        f.Name,
		Category:    f.Category,
		Serving:     f.Serving,
		Description: f.Description,
		Image:       f.Image,
		Icon:        f.Icon,
	}

	var bad []string
	number := func(field string, n yaml.Node) *float64 {
		if n.Kind == 0 || n.ShortTag() == "!!null" {
			return nil
		}
		var v float64
		if err := n.Decode(&v); err != nil {
			bad = append(bad, fmt.Sprintf("%s %q (line %d)", field, n.Value, n.Line))
			return nil
		}
		return &v
	}
	it.Magnitude = number("magnitude", f.Magnitude)
	it.PeakValue = number("peak_value", f.PeakValue)
	it.ImpactStart = number("impact_start", f.ImpactStart)
	if v := number("peak_time", f.PeakTime); v != nil {
		it.PeakTime = *v
	}
	if v := number("duration", f.Duration); v != nil {
		it.Duration = *v
	}
	it.invalid = strings.Join(bad, ", ")
	return nil
}

// Warnings lists the entries whose numeric fields were discarded while parsing.
func (c *Catalog) Warnings() []string {
	var out []string
	add := func(where string, it Item) {
		if it.invalid != "" {
			out = append(out, fmt.Sprintf("%s%s: ignored non-numeric %s", where, it.ID, it.invalid))
		}
	}
	for _, it := range c.Items {
		add("", it)
	}
	for _, m := range c.Modules {
		name := m.ID
		if name == "" {
			name = m.Name
		}
		for _, it := range m.Items {
			add("module "+name+": ", it)
		}
	}
	return out
}

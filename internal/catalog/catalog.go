package catalog

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Module is a learning category: a handful of items compared on one chart.
type Module struct {
	ID           string `yaml:"id,omitempty"`
	Name         string `yaml:"name"`
	Icon         string `yaml:"icon,omitempty"`
	Instructions string `yaml:"instructions,omitempty"`
	Items        []Item `yaml:"items"`
}

// Catalog is the immutable item library loaded once at startup.
type Catalog struct {
	Items   []Item   `yaml:"items"`
	Modules []Module `yaml:"modules,omitempty"`

	index map[string]int
}

func New(items []Item, modules []Module) (*Catalog, error) {
	c := &Catalog{Items: items, Modules: modules}
	if err := c.build(); err != nil {
		return nil, err
	}
	return c, nil
}

func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := c.build(); err != nil {
		return nil, err
	}
	return &c, nil
}

func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func (c *Catalog) build() error {
	c.index = make(map[string]int, len(c.Items))
	for i, it := range c.Items {
		if it.ID == "" {
			return fmt.Errorf("item %d (%q): %w", i, it.Name, ErrMissingID)
		}
		if _, dup := c.index[it.ID]; dup {
			return fmt.Errorf("%s: %w", it.ID, ErrDuplicateID)
		}
		c.index[it.ID] = i
	}
	for _, m := range c.Modules {
		seen := make(map[string]bool, len(m.Items))
		for i, it := range m.Items {
			if it.ID == "" {
				return fmt.Errorf("module %s item %d: %w", m.Name, i, ErrMissingID)
			}
			if seen[it.ID] {
				return fmt.Errorf("module %s: %s: %w", m.Name, it.ID, ErrDuplicateID)
			}
			seen[it.ID] = true
		}
	}
	return nil
}

func (c *Catalog) Lookup(id string) (Item, bool) {
	i, ok := c.index[id]
	if !ok {
		return Item{}, false
	}
	return c.Items[i], true
}

// Search matches the term against item names and categories, case-insensitive.
// An empty term returns every item.
func (c *Catalog) Search(term string) []Item {
	term = strings.ToLower(strings.TrimSpace(term))
	out := make([]Item, 0, len(c.Items))
	for _, it := range c.Items {
		if term == "" ||
			strings.Contains(strings.ToLower(it.Label()), term) ||
			strings.Contains(strings.ToLower(it.Category), term) {
			out = append(out, it)
		}
	}
	return out
}

func (c *Catalog) Categories() []string {
	seen := make(map[string]bool)
	names := make([]string, 0)
	for _, it := range c.Items {
		if it.Category == "" || seen[it.Category] {
			continue
		}
		seen[it.Category] = true
		names = append(names, it.Category)
	}
	sort.Strings(names)
	return names
}

// Module finds one of the catalog's own learning modules by id or name.
func (c *Catalog) Module(id string) (Module, error) {
	for _, m := range c.Modules {
		if m.ID == id || strings.EqualFold(m.Name, id) {
			return m, nil
		}
	}
	return Module{}, fmt.Errorf("%s: %w", id, ErrUnknownModule)
}

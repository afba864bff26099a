package vocab

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// packFile is the YAML shape of one content pack file.
type packFile struct {
	Pack  string    `yaml:"pack"`
	Items []itemDef `yaml:"items"`
}

type itemDef struct {
	ID        string  `yaml:"id"`
	Word      string  `yaml:"word"`
	Gloss     string  `yaml:"gloss"`
	Level     int     `yaml:"level"`
	Category  string  `yaml:"category"`
	BasePower float64 `yaml:"base_power"`
}

// Catalog holds all authored vocabulary items keyed by ID.
type Catalog struct {
	items map[string]Item
}

// NewCatalog creates an empty Catalog.
func NewCatalog() *Catalog {
	return &Catalog{items: make(map[string]Item)}
}

// Add validates item and registers it.
//
// Precondition: no item with the same ID may already be registered.
// Postcondition: Returns nil iff the item was added.
func (c *Catalog) Add(item Item) error {
	if err := item.Validate(); err != nil {
		return err
	}
	if _, dup := c.items[item.ID]; dup {
		return fmt.Errorf("duplicate item id %q", item.ID)
	}
	c.items[item.ID] = item
	return nil
}

// Get returns the item for id, or (zero, false) if not found.
func (c *Catalog) Get(id string) (Item, bool) {
	item, ok := c.items[id]
	return item, ok
}

// Len returns the number of registered items.
func (c *Catalog) Len() int { return len(c.items) }

// IDs returns all registered item IDs in sorted order.
func (c *Catalog) IDs() []string {
	out := make([]string, 0, len(c.items))
	for id := range c.items {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// LoadDirectory reads every *.yaml file in dir as a content pack and returns
// a populated Catalog. Unknown YAML fields are rejected so an authoring typo
// (e.g. "base_powr") fails the load instead of silently zeroing a stat.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns a non-nil Catalog, or an error naming the offending
// file and item.
func LoadDirectory(dir string) (*Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading vocabulary dir %q: %w", dir, err)
	}
	cat := NewCatalog()
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if err := cat.loadFile(path); err != nil {
			return nil, err
		}
	}
	return cat, nil
}

func (c *Catalog) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %q: %w", path, err)
	}
	var pf packFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&pf); err != nil {
		return fmt.Errorf("parsing %q: %w", path, err)
	}
	for _, def := range pf.Items {
		category, err := ParseCategory(def.Category)
		if err != nil {
			return fmt.Errorf("%s: item %q: %w", path, def.ID, err)
		}
		item := Item{
			ID:        def.ID,
			Word:      def.Word,
			Gloss:     def.Gloss,
			Level:     ComplexityLevel(def.Level),
			Category:  category,
			BasePower: def.BasePower,
		}
		if err := c.Add(item); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}

// Package catalog holds the read-only pool of categories a deck is built from.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"

	"go-sortgame/entities"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

var ErrInvalidCatalog = errors.New("invalid category catalog")

type Catalog struct {
	categories map[string]entities.Category
	ids        []string
}

type file struct {
	Categories []entities.Category `yaml:"categories"`
}

// New validates the entries and returns a catalog. Item counts are not checked
// here; the deck builder rejects categories too small to be dealt.
func New(categories []entities.Category) (*Catalog, error) {
	if len(categories) == 0 {
		return nil, fmt.Errorf("%w: no categories", ErrInvalidCatalog)
	}
	c := &Catalog{categories: make(map[string]entities.Category, len(categories))}
	for _, cat := range categories {
		if cat.ID == "" {
			return nil, fmt.Errorf("%w: category without id", ErrInvalidCatalog)
		}
		if _, dup := c.categories[cat.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate category %s", ErrInvalidCatalog, cat.ID)
		}
		if len(cat.Glyphs) > 0 && len(cat.Glyphs) != len(cat.Items) {
			return nil, fmt.Errorf("%w: category %s has %d glyphs for %d items",
				ErrInvalidCatalog, cat.ID, len(cat.Glyphs), len(cat.Items))
		}
		if cat.Label == "" {
			cat.Label = cat.ID
		}
		c.categories[cat.ID] = cat
		c.ids = append(c.ids, cat.ID)
	}
	sort.Strings(c.ids)
	return c, nil
}

// Parse decodes a YAML document of the form `categories: [...]`.
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	return New(f.Categories)
}

func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return Parse(data)
}

// Default returns the embedded catalog.
func Default() *Catalog {
	c, err := Parse(defaultYAML)
	if err != nil {
		panic(err)
	}
	return c
}

// IDs returns the category ids in sorted order.
func (c *Catalog) IDs() []string {
	out := make([]string, len(c.ids))
	copy(out, c.ids)
	return out
}

func (c *Catalog) Get(id string) (entities.Category, bool) {
	cat, ok := c.categories[id]
	return cat, ok
}

func (c *Catalog) Len() int {
	return len(c.ids)
}

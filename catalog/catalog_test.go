package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go-sortgame/entities"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	if c.Len() < 8 {
		t.Fatalf("expected at least 8 categories for EXTREME, got %d", c.Len())
	}
	for _, id := range c.IDs() {
		cat, ok := c.Get(id)
		if !ok {
			t.Fatalf("id %s listed but not found", id)
		}
		if len(cat.Items) < 8 {
			t.Errorf("category %s has %d items, want >= 8", id, len(cat.Items))
		}
		if len(cat.Glyphs) != len(cat.Items) {
			t.Errorf("category %s glyphs not aligned", id)
		}
	}
}

func TestIDsSorted(t *testing.T) {
	c, err := New([]entities.Category{
		{ID: "B", Items: []string{"x"}},
		{ID: "A", Items: []string{"y"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ids := c.IDs()
	if len(ids) != 2 || ids[0] != "A" || ids[1] != "B" {
		t.Fatalf("expected [A B], got %v", ids)
	}
	ids[0] = "Z"
	if c.IDs()[0] != "A" {
		t.Fatalf("IDs must return a copy")
	}
	cat, _ := c.Get("A")
	if cat.Label != "A" {
		t.Fatalf("expected label to default to id, got %q", cat.Label)
	}
}

func TestNewRejects(t *testing.T) {
	tests := []struct {
		name string
		cats []entities.Category
	}{
		{name: "empty", cats: nil},
		{name: "missing id", cats: []entities.Category{{Label: "x"}}},
		{name: "duplicate", cats: []entities.Category{{ID: "A"}, {ID: "A"}}},
		{name: "misaligned glyphs", cats: []entities.Category{{ID: "A", Items: []string{"a", "b"}, Glyphs: []string{"1"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.cats); !errors.Is(err, ErrInvalidCatalog) {
				t.Fatalf("expected ErrInvalidCatalog, got %v", err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	doc := []byte(`categories:
  - id: COLOR
    label: Colors
    color: "#000000"
    items: [Red, Green, Blue, Cyan]
`)
	if err := os.WriteFile(path, doc, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cat, ok := c.Get("COLOR")
	if !ok || cat.Label != "Colors" || len(cat.Items) != 4 {
		t.Fatalf("unexpected category: %+v", cat)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
	if _, err := Parse([]byte("categories: [")); !errors.Is(err, ErrInvalidCatalog) {
		t.Fatalf("expected ErrInvalidCatalog for bad yaml, got %v", err)
	}
}

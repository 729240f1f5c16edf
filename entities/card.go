package entities

type CardKind string

const (
	CardKindKey CardKind = "KEY" // category header, opens a collection slot
	CardKindSub CardKind = "SUB" // one collectible item of a category
)

type Card struct {
	ID         string   `json:"id"`
	Kind       CardKind `json:"kind"`
	CategoryID string   `json:"categoryId"`
	Label      string   `json:"label"`
	Glyph      string   `json:"glyph,omitempty"`
	FaceUp     bool     `json:"faceUp"`
}

func (c Card) IsKey() bool { return c.Kind == CardKindKey }

func (c Card) IsSub() bool { return c.Kind == CardKindSub }

// Category is one read-only catalog entry.
type Category struct {
	ID     string   `json:"id" yaml:"id"`
	Label  string   `json:"label" yaml:"label"`
	Color  string   `json:"color" yaml:"color"`
	Items  []string `json:"items" yaml:"items"`
	Glyphs []string `json:"glyphs,omitempty" yaml:"glyphs,omitempty"`
}

// CategoryConfig is the per-session resolution of a catalog category.
type CategoryConfig struct {
	ID           string   `json:"id"`
	Label        string   `json:"label"`
	Color        string   `json:"color"`
	ItemCount    int      `json:"itemCount"`
	ImageMode    bool     `json:"imageMode"`
	ActiveItems  []string `json:"activeItems"`
	ActiveGlyphs []string `json:"activeGlyphs"`
}

// Capacity is the slot length (KEY plus every item) that completes the category.
func (c CategoryConfig) Capacity() int {
	return c.ItemCount + 1
}

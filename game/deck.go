package game

import (
	"fmt"

	"go-sortgame/catalog"
	"go-sortgame/entities"
	"go-sortgame/utils"

	"golang.org/x/exp/rand"
)

const (
	MinItems = 3
	MaxItems = 8

	imageModeChance = 0.2
	keyGlyph        = "🔑"
)

// BuildDeck picks the active categories for d, resolves their item counts and
// returns the shuffled deck together with the per-category configs that size
// the collection slots for the rest of the session.
func BuildDeck(rng *rand.Rand, cat *catalog.Catalog, d Difficulty) ([]entities.Card, map[string]entities.CategoryConfig, error) {
	ids := cat.IDs()
	rng.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })

	n := d.CategoryCount()
	if n > len(ids) {
		n = len(ids)
	}

	configs := make(map[string]entities.CategoryConfig, n)
	var deck []entities.Card
	for _, id := range ids[:n] {
		tmpl, _ := cat.Get(id)
		if len(tmpl.Items) < MinItems {
			return nil, nil, fmt.Errorf("%w: category %s has %d items, need at least %d",
				ErrMalformedCatalog, id, len(tmpl.Items), MinItems)
		}

		itemCount := MinItems + rng.Intn(MaxItems-MinItems+1)
		if itemCount > len(tmpl.Items) {
			itemCount = len(tmpl.Items)
		}

		cfg := entities.CategoryConfig{
			ID:           tmpl.ID,
			Label:        tmpl.Label,
			Color:        tmpl.Color,
			ItemCount:    itemCount,
			ImageMode:    rng.Float64() < imageModeChance,
			ActiveItems:  utils.SafeSlice(tmpl.Items, itemCount),
			ActiveGlyphs: utils.SafeSlice(tmpl.Glyphs, itemCount),
		}
		configs[id] = cfg
		deck = append(deck, categoryCards(cfg)...)
	}

	shuffle(rng, deck)
	return deck, configs, nil
}

func categoryCards(cfg entities.CategoryConfig) []entities.Card {
	cards := make([]entities.Card, 0, cfg.Capacity())
	cards = append(cards, entities.Card{
		ID:         "KEY_" + cfg.ID,
		Kind:       entities.CardKindKey,
		CategoryID: cfg.ID,
		Label:      cfg.Label,
		Glyph:      keyGlyph,
	})
	for i, item := range cfg.ActiveItems {
		glyph := item
		if i < len(cfg.ActiveGlyphs) && cfg.ActiveGlyphs[i] != "" {
			glyph = cfg.ActiveGlyphs[i]
		}
		cards = append(cards, entities.Card{
			ID:         fmt.Sprintf("SUB_%s_%d", cfg.ID, i),
			Kind:       entities.CardKindSub,
			CategoryID: cfg.ID,
			Label:      item,
			Glyph:      glyph,
		})
	}
	return cards
}

// shuffle is a Fisher-Yates pass from the back of the slice.
func shuffle(rng *rand.Rand, cards []entities.Card) {
	for i := len(cards) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}

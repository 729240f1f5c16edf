package game

import (
	"fmt"
	"testing"

	"go-sortgame/catalog"
	"go-sortgame/entities"
)

func key(cat string) entities.Card {
	return entities.Card{ID: "KEY_" + cat, Kind: entities.CardKindKey, CategoryID: cat, Label: cat}
}

func sub(cat string, i int) entities.Card {
	return entities.Card{ID: fmt.Sprintf("SUB_%s_%d", cat, i), Kind: entities.CardKindSub, CategoryID: cat, Label: fmt.Sprintf("%s%d", cat, i)}
}

func up(c entities.Card) entities.Card {
	c.FaceUp = true
	return c
}

func configs(itemCounts map[string]int) map[string]entities.CategoryConfig {
	out := make(map[string]entities.CategoryConfig, len(itemCounts))
	for id, n := range itemCounts {
		out[id] = entities.CategoryConfig{ID: id, Label: id, ItemCount: n}
	}
	return out
}

// newTestSession wraps a hand-built state.
func newTestSession(st *entities.GameState, itemCounts map[string]int) *Session {
	total := st.CardCount()
	return &Session{
		Difficulty: DifficultyNormal,
		State:      st,
		Categories: configs(itemCounts),
		TotalCards: total,
		Status:     StatusPlaying,
	}
}

func mustCatalog(t *testing.T, cats ...entities.Category) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New(cats)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return c
}

func singleCategoryCatalog(t *testing.T) *catalog.Catalog {
	return mustCatalog(t, entities.Category{ID: "FRUIT", Label: "FRUIT", Items: []string{"Apple", "Banana", "Cherry"}})
}

// checkInvariants asserts conservation, slot integrity and the visible-run
// stacking rule.
func checkInvariants(t *testing.T, s *Session) {
	t.Helper()
	st := s.State
	if got := st.CardCount() + s.Retired; got != s.TotalCards {
		t.Fatalf("conservation broken: %d cards on board + %d retired != %d", st.CardCount(), s.Retired, s.TotalCards)
	}
	for i, slot := range st.Slots {
		if len(slot) == 0 {
			continue
		}
		if !slot[0].IsKey() {
			t.Fatalf("slot %d does not start with a KEY: %+v", i, slot[0])
		}
		for _, c := range slot[1:] {
			if !c.IsSub() || c.CategoryID != slot[0].CategoryID {
				t.Fatalf("slot %d holds foreign card %+v", i, c)
			}
		}
		if len(slot) >= s.Categories[slot[0].CategoryID].Capacity() {
			t.Fatalf("slot %d reached capacity without clearing", i)
		}
	}
	for i, col := range st.Columns {
		if len(col) == 0 {
			continue
		}
		if !col[len(col)-1].FaceUp {
			t.Fatalf("column %d top is face-down", i)
		}
		first := len(col) - 1
		for first > 0 && col[first-1].FaceUp {
			first--
		}
		for p := first; p < len(col); p++ {
			if col[p].CategoryID != col[first].CategoryID {
				t.Fatalf("column %d visible run mixes categories", i)
			}
			if col[p].IsKey() && p != len(col)-1 {
				t.Fatalf("column %d has a card above a KEY", i)
			}
		}
	}
}

// playToSlots drops any accessible card that fits a slot, else draws.
func playToSlots(t *testing.T, s *Session, maxSteps int) []Event {
	t.Helper()
	var all []Event
	for step := 0; step < maxSteps && s.Status != StatusCleared; step++ {
		if moved, events := dropAnyToSlot(s); moved {
			all = append(all, events...)
			checkInvariants(t, s)
			continue
		}
		outcome, events, err := s.Draw()
		if err != nil {
			t.Fatalf("draw: %v", err)
		}
		if outcome == DrawEmpty {
			break
		}
		all = append(all, events...)
		checkInvariants(t, s)
	}
	return all
}

func dropAnyToSlot(s *Session) (bool, []Event) {
	var candidates []entities.Card
	if n := len(s.State.OpenPile); n > 0 {
		candidates = append(candidates, s.State.OpenPile[n-1])
	}
	for _, col := range s.State.Columns {
		if n := len(col); n > 0 {
			candidates = append(candidates, col[n-1])
		}
	}
	for _, c := range candidates {
		for i := 0; i < SlotCount; i++ {
			if moved, events := s.HandleDrop(c.ID, entities.ZoneSlot, i); moved {
				return true, events
			}
		}
	}
	return false, nil
}

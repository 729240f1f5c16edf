package entities

const (
	ColumnCount = 4
	SlotCount   = 4
)

type ZoneKind string

const (
	ZoneDrawPile ZoneKind = "draw"
	ZoneOpenPile ZoneKind = "open"
	ZoneColumn   ZoneKind = "column"
	ZoneSlot     ZoneKind = "slot"
)

// GameState is the only mutable aggregate of a session. Every pile is ordered
// bottom to top, so the last element is the accessible card.
type GameState struct {
	DrawPile       []Card              `json:"drawPile"`
	OpenPile       []Card              `json:"openPile"`
	Columns        [ColumnCount][]Card `json:"columns"`
	Slots          [SlotCount][]Card   `json:"slots"`
	TurnsRemaining int                 `json:"turnsRemaining"`
}

// Clone returns a structural deep copy sharing no backing arrays with s.
func (s *GameState) Clone() *GameState {
	out := &GameState{
		DrawPile:       cloneCards(s.DrawPile),
		OpenPile:       cloneCards(s.OpenPile),
		TurnsRemaining: s.TurnsRemaining,
	}
	for i := range s.Columns {
		out.Columns[i] = cloneCards(s.Columns[i])
	}
	for i := range s.Slots {
		out.Slots[i] = cloneCards(s.Slots[i])
	}
	return out
}

// CardCount counts the cards in every zone.
func (s *GameState) CardCount() int {
	n := len(s.DrawPile) + len(s.OpenPile)
	for _, col := range s.Columns {
		n += len(col)
	}
	for _, slot := range s.Slots {
		n += len(slot)
	}
	return n
}

// UnsortedCount counts the cards outside the collection slots.
func (s *GameState) UnsortedCount() int {
	n := len(s.DrawPile) + len(s.OpenPile)
	for _, col := range s.Columns {
		n += len(col)
	}
	return n
}

func cloneCards(cards []Card) []Card {
	if cards == nil {
		return nil
	}
	out := make([]Card, len(cards))
	copy(out, cards)
	return out
}

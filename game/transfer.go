package game

import (
	"go-sortgame/entities"
)

// Location is where a player-addressable card currently sits.
type Location struct {
	Zone     entities.ZoneKind `json:"zone"`
	Index    int               `json:"index"`
	Position int               `json:"position"`
}

type DrawOutcome string

const (
	DrawDrawn    DrawOutcome = "drawn"
	DrawRecycled DrawOutcome = "recycled"
	DrawEmpty    DrawOutcome = "empty"
)

// Locate searches the open pile, then the columns, then the slots. Cards in
// the draw pile are never addressable.
func (s *Session) Locate(cardID string) (Location, bool) {
	st := s.State
	for pos, c := range st.OpenPile {
		if c.ID == cardID {
			return Location{Zone: entities.ZoneOpenPile, Position: pos}, true
		}
	}
	for i, col := range st.Columns {
		for pos, c := range col {
			if c.ID == cardID {
				return Location{Zone: entities.ZoneColumn, Index: i, Position: pos}, true
			}
		}
	}
	for i, slot := range st.Slots {
		for pos, c := range slot {
			if c.ID == cardID {
				return Location{Zone: entities.ZoneSlot, Index: i, Position: pos}, true
			}
		}
	}
	return Location{}, false
}

// ValidateDrop reports whether card may land on the target zone.
func (s *Session) ValidateDrop(card entities.Card, zone entities.ZoneKind, index int) bool {
	switch zone {
	case entities.ZoneSlot:
		if index < 0 || index >= SlotCount {
			return false
		}
		slot := s.State.Slots[index]
		if len(slot) == 0 {
			return card.IsKey()
		}
		return card.IsSub() && card.CategoryID == slot[0].CategoryID
	case entities.ZoneColumn:
		if index < 0 || index >= ColumnCount {
			return false
		}
		col := s.State.Columns[index]
		if len(col) == 0 {
			return true
		}
		top := col[len(col)-1]
		if top.IsKey() {
			return false
		}
		return card.CategoryID == top.CategoryID
	default:
		return false
	}
}

// HandleDrop moves cardID, and everything stacked above it in a column, onto
// the target. An illegal move returns false and leaves the state untouched.
func (s *Session) HandleDrop(cardID string, zone entities.ZoneKind, index int) (bool, []Event) {
	src, ok := s.Locate(cardID)
	if !ok {
		return false, nil
	}
	if src.Zone == zone && src.Index == index {
		return false, nil
	}

	var pile []entities.Card
	switch src.Zone {
	case entities.ZoneOpenPile:
		pile = s.State.OpenPile
		if src.Position != len(pile)-1 {
			return false, nil
		}
	case entities.ZoneColumn:
		pile = s.State.Columns[src.Index]
		if !pile[src.Position].FaceUp {
			return false, nil
		}
	default:
		// cards already collected stay in their slot
		return false, nil
	}

	group := make([]entities.Card, len(pile)-src.Position)
	copy(group, pile[src.Position:])
	if !s.ValidateDrop(group[0], zone, index) {
		return false, nil
	}
	if zone == entities.ZoneSlot && !s.slotAcceptsRun(index, group) {
		return false, nil
	}

	rest := pile[:src.Position]
	if src.Zone == entities.ZoneColumn {
		if len(rest) > 0 {
			rest[len(rest)-1].FaceUp = true
		}
		s.State.Columns[src.Index] = rest
	} else {
		s.State.OpenPile = rest
	}
	for i := range group {
		group[i].FaceUp = true
	}

	if zone == entities.ZoneColumn {
		s.State.Columns[index] = append(s.State.Columns[index], group...)
		return true, nil
	}

	var events []Event
	slot := append(s.State.Slots[index], group...)
	categoryID := slot[0].CategoryID
	if len(slot) == s.capacity(categoryID) {
		s.Retired += len(slot)
		slot = nil
		events = append(events, Event{
			Kind:    EventSlotCompleted,
			Payload: SlotCompletedPayload{SlotIndex: index, CategoryID: categoryID},
		})
	}
	s.State.Slots[index] = slot
	events = append(events, s.evaluateWin()...)
	return true, events
}

// slotAcceptsRun keeps a multi-card drop from breaking the slot's category
// lock or overflowing its capacity. The bottom card is checked by ValidateDrop.
func (s *Session) slotAcceptsRun(index int, group []entities.Card) bool {
	slot := s.State.Slots[index]
	categoryID := group[0].CategoryID
	if len(slot) > 0 {
		categoryID = slot[0].CategoryID
	}
	for _, c := range group[1:] {
		if !c.IsSub() || c.CategoryID != categoryID {
			return false
		}
	}
	return len(slot)+len(group) <= s.capacity(categoryID)
}

// Draw turns over the top of the draw pile. An empty draw pile is refilled
// from the open pile for free instead.
func (s *Session) Draw() (DrawOutcome, []Event, error) {
	st := s.State
	if st.TurnsRemaining <= 0 {
		return "", nil, ErrNoTurnsRemaining
	}

	if len(st.DrawPile) == 0 {
		if len(st.OpenPile) == 0 {
			return DrawEmpty, nil, nil
		}
		n := len(st.OpenPile)
		recycled := make([]entities.Card, n)
		for i, c := range st.OpenPile {
			c.FaceUp = false
			recycled[n-1-i] = c
		}
		st.DrawPile = recycled
		st.OpenPile = nil
		return DrawRecycled, []Event{{Kind: EventPileRecycled, Payload: PileRecycledPayload{Cards: n}}}, nil
	}

	card := st.DrawPile[len(st.DrawPile)-1]
	st.DrawPile = st.DrawPile[:len(st.DrawPile)-1]
	card.FaceUp = true
	st.OpenPile = append(st.OpenPile, card)
	st.TurnsRemaining--

	return DrawDrawn, s.evaluateTurns(), nil
}

package game

// EventKind identifies an outcome the presentation layer decides how to surface.
type EventKind string

const (
	EventBoardCleared   EventKind = "board_cleared"
	EventTurnsExhausted EventKind = "turns_exhausted"
	EventConfirmRestart EventKind = "confirm_restart"
	EventSlotCompleted  EventKind = "slot_completed"
	EventPileRecycled   EventKind = "pile_recycled"
)

type Event struct {
	Kind    EventKind `json:"kind"`
	Payload any       `json:"payload,omitempty"`
}

type SlotCompletedPayload struct {
	SlotIndex  int    `json:"slotIndex"`
	CategoryID string `json:"categoryId"`
}

type PileRecycledPayload struct {
	Cards int `json:"cards"`
}

// HasEvent reports whether kind occurs in events.
func HasEvent(events []Event, kind EventKind) bool {
	for _, e := range events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

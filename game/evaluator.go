package game

import "go-sortgame/entities"

// IsBoardCleared holds once every card outside the slots is gone. Slots clear
// themselves, so this means every card passed through a completed slot.
func IsBoardCleared(st *entities.GameState) bool {
	return st.UnsortedCount() == 0
}

func (s *Session) evaluateWin() []Event {
	if !IsBoardCleared(s.State) {
		return nil
	}
	s.Status = StatusCleared
	return []Event{{Kind: EventBoardCleared}}
}

func (s *Session) evaluateTurns() []Event {
	if s.State.TurnsRemaining != 0 {
		return nil
	}
	if s.Status == StatusPlaying {
		s.Status = StatusExhausted
	}
	return []Event{{Kind: EventTurnsExhausted}}
}

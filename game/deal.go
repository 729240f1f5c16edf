package game

import (
	"math"

	"go-sortgame/entities"
)

const dealRatio = 0.4

// Deal moves floor(40%) of the deck, taken from its top, round-robin into the
// holding columns. Only each column's last card is face-up; the rest of the
// deck becomes the face-down draw pile.
func Deal(deck []entities.Card) *entities.GameState {
	pile := make([]entities.Card, len(deck))
	copy(pile, deck)

	state := &entities.GameState{}
	dealCount := int(math.Floor(float64(len(pile)) * dealRatio))
	for k := 0; k < dealCount && len(pile) > 0; k++ {
		card := pile[len(pile)-1]
		pile = pile[:len(pile)-1]
		card.FaceUp = false
		state.Columns[k%ColumnCount] = append(state.Columns[k%ColumnCount], card)
	}
	for i := range state.Columns {
		if n := len(state.Columns[i]); n > 0 {
			state.Columns[i][n-1].FaceUp = true
		}
	}

	for i := range pile {
		pile[i].FaceUp = false
	}
	state.DrawPile = pile
	return state
}

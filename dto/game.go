package dto

import (
	"sort"

	"go-sortgame/entities"
	"go-sortgame/game"
)

type CreateGameRequest struct {
	Difficulty string  `json:"difficulty"`
	Seed       *uint64 `json:"seed"` // optional, for reproducible boards
}

type CreateGameResponse struct {
	SessionID string   `json:"sessionId"`
	Token     string   `json:"token"`
	State     GameView `json:"state"`
}

type DropRequest struct {
	CardID string `json:"cardId" mapstructure:"cardId" binding:"required"`
	Zone   string `json:"zone" mapstructure:"zone" binding:"required"`
	Index  int    `json:"index" mapstructure:"index"`
}

type DifficultyRequest struct {
	Difficulty string `json:"difficulty" mapstructure:"difficulty" binding:"required"`
}

type RestartRequest struct {
	Confirm bool `json:"confirm" mapstructure:"confirm"`
}

// CardView is a card as the player may see it. Face-down cards carry no
// identity.
type CardView struct {
	ID         string `json:"id,omitempty"`
	Kind       string `json:"kind,omitempty"`
	CategoryID string `json:"categoryId,omitempty"`
	Label      string `json:"label,omitempty"`
	Glyph      string `json:"glyph,omitempty"`
	FaceUp     bool   `json:"faceUp"`
}

type CategoryView struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Color     string `json:"color"`
	ItemCount int    `json:"itemCount"`
	Capacity  int    `json:"capacity"`
	Collected int    `json:"collected"`
	ImageMode bool   `json:"imageMode"`
}

type GameView struct {
	SessionID      string                          `json:"sessionId"`
	Difficulty     string                          `json:"difficulty"`
	Status         string                          `json:"status"`
	TurnBudget     int                             `json:"turnBudget"`
	TurnsRemaining int                             `json:"turnsRemaining"`
	Estimate       game.Estimate                   `json:"estimate"`
	DrawCount      int                             `json:"drawCount"`
	OpenPile       []CardView                      `json:"openPile"`
	Columns        [entities.ColumnCount][]CardView `json:"columns"`
	Slots          [entities.SlotCount][]CardView   `json:"slots"`
	Categories     []CategoryView                  `json:"categories"`
	TotalCards     int                             `json:"totalCards"`
	Retired        int                             `json:"retired"`
}

// ActionResult answers every mutating call.
type ActionResult struct {
	Moved   *bool            `json:"moved,omitempty"`
	Outcome game.DrawOutcome `json:"outcome,omitempty"`
	Events  []game.Event     `json:"events"`
	State   GameView         `json:"state"`
}

type DifficultyInfo struct {
	Name               string  `json:"name"`
	CategoryMultiplier float64 `json:"categoryMultiplier"`
	TurnMultiplier     float64 `json:"turnMultiplier"`
	Categories         int     `json:"categories"`
}

type CollectedResponse struct {
	CategoryID string `json:"categoryId"`
	Collected  int    `json:"collected"`
}

func NewCardView(c entities.Card) CardView {
	if !c.FaceUp {
		return CardView{}
	}
	return CardView{
		ID:         c.ID,
		Kind:       string(c.Kind),
		CategoryID: c.CategoryID,
		Label:      c.Label,
		Glyph:      c.Glyph,
		FaceUp:     true,
	}
}

func cardViews(cards []entities.Card) []CardView {
	out := make([]CardView, len(cards))
	for i, c := range cards {
		out[i] = NewCardView(c)
	}
	return out
}

// NewGameView builds the player-facing snapshot of s.
func NewGameView(sessionID string, s *game.Session) GameView {
	st := s.State
	v := GameView{
		SessionID:      sessionID,
		Difficulty:     string(s.Difficulty),
		Status:         string(s.Status),
		TurnBudget:     s.TurnBudget,
		TurnsRemaining: st.TurnsRemaining,
		Estimate:       s.Estimate,
		DrawCount:      len(st.DrawPile),
		OpenPile:       cardViews(st.OpenPile),
		TotalCards:     s.TotalCards,
		Retired:        s.Retired,
	}
	for i := range st.Columns {
		v.Columns[i] = cardViews(st.Columns[i])
	}
	for i := range st.Slots {
		v.Slots[i] = cardViews(st.Slots[i])
	}

	for id, cfg := range s.Categories {
		v.Categories = append(v.Categories, CategoryView{
			ID:        id,
			Label:     cfg.Label,
			Color:     cfg.Color,
			ItemCount: cfg.ItemCount,
			Capacity:  cfg.Capacity(),
			Collected: s.CollectedCount(id),
			ImageMode: cfg.ImageMode,
		})
	}
	sort.Slice(v.Categories, func(i, j int) bool { return v.Categories[i].ID < v.Categories[j].ID })
	return v
}

func NewDifficultyInfos() []DifficultyInfo {
	out := make([]DifficultyInfo, 0, len(game.Difficulties))
	for _, d := range game.Difficulties {
		m := d.Multipliers()
		out = append(out, DifficultyInfo{
			Name:               string(d),
			CategoryMultiplier: m.Category,
			TurnMultiplier:     m.Turn,
			Categories:         d.CategoryCount(),
		})
	}
	return out
}

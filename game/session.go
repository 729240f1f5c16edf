package game

import (
	"fmt"
	"slices"

	"go-sortgame/catalog"
	"go-sortgame/entities"

	"golang.org/x/exp/rand"
)

type Status string

const (
	StatusPlaying   Status = "playing"
	StatusCleared   Status = "cleared"
	StatusExhausted Status = "exhausted"
)

// Session is the explicit owner of one live GameState. It is not safe for
// concurrent use; callers serialize access.
type Session struct {
	Difficulty Difficulty                         `json:"difficulty"`
	Seed       uint64                             `json:"seed"`
	State      *entities.GameState                `json:"state"`
	Categories map[string]entities.CategoryConfig `json:"categories"`
	Estimate   Estimate                           `json:"estimate"`
	TurnBudget int                                `json:"turnBudget"`
	TotalCards int                                `json:"totalCards"`
	Retired    int                                `json:"retired"` // cards absorbed by completed slots
	Status     Status                             `json:"status"`
}

// NewSession builds, deals and calibrates a fresh board. The seed fully
// determines the result.
func NewSession(cat *catalog.Catalog, d Difficulty, seed uint64) (*Session, error) {
	rng := rand.New(rand.NewSource(seed))
	deck, configs, err := BuildDeck(rng, cat, d)
	if err != nil {
		return nil, fmt.Errorf("build deck: %w", err)
	}

	state := Deal(deck)
	est := EstimateMinTurns(state, configs)
	budget := TurnBudget(est.Turns, d)
	state.TurnsRemaining = budget

	return &Session{
		Difficulty: d,
		Seed:       seed,
		State:      state,
		Categories: configs,
		Estimate:   est,
		TurnBudget: budget,
		TotalCards: len(deck),
		Status:     StatusPlaying,
	}, nil
}

// SetDifficulty replaces the whole board with one built for d.
func (s *Session) SetDifficulty(cat *catalog.Catalog, d Difficulty, seed uint64) error {
	next, err := NewSession(cat, d, seed)
	if err != nil {
		return err
	}
	*s = *next
	return nil
}

// Clone deep-copies the session.
func (s *Session) Clone() *Session {
	out := *s
	out.State = s.State.Clone()
	out.Categories = make(map[string]entities.CategoryConfig, len(s.Categories))
	for id, cfg := range s.Categories {
		cfg.ActiveItems = slices.Clone(cfg.ActiveItems)
		cfg.ActiveGlyphs = slices.Clone(cfg.ActiveGlyphs)
		out.Categories[id] = cfg
	}
	return &out
}

// CollectedCount returns how many SUB cards sit in the slot of categoryID.
func (s *Session) CollectedCount(categoryID string) int {
	for _, slot := range s.State.Slots {
		if len(slot) > 0 && slot[0].CategoryID == categoryID {
			return len(slot) - 1
		}
	}
	return 0
}

func (s *Session) capacity(categoryID string) int {
	if cfg, ok := s.Categories[categoryID]; ok {
		return cfg.Capacity()
	}
	return 0
}

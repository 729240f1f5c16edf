package game

import "go-sortgame/entities"

const (
	maxCycles     = 5
	safetyLimit   = 50
	fallbackTurns = 50
)

// Estimate is the outcome of one perfect-play simulation.
type Estimate struct {
	Turns   int  `json:"turns"`
	Cycles  int  `json:"cycles"`
	Wasted  int  `json:"wasted"`
	Cleared bool `json:"cleared"`
}

// EstimateMinTurns plays a greedy simulation over a copy of state and returns
// the number of draws it needed. It always terminates: at most maxCycles
// recycles of the open pile, and at most safetyLimit passes per consolidation.
func EstimateMinTurns(state *entities.GameState, categories map[string]entities.CategoryConfig) Estimate {
	sim := newSimulation(state.Clone(), categories)
	est := sim.run()
	if est.Turns == 0 {
		est.Turns = fallbackTurns
	}
	return est
}

type simulation struct {
	draw       []entities.Card
	open       []entities.Card
	columns    [ColumnCount][]entities.Card
	slots      [SlotCount][]entities.Card
	categories map[string]entities.CategoryConfig

	turns  int
	cycles int
	wasted int
}

func newSimulation(st *entities.GameState, categories map[string]entities.CategoryConfig) *simulation {
	return &simulation{
		draw:       st.DrawPile,
		open:       st.OpenPile,
		columns:    st.Columns,
		slots:      st.Slots,
		categories: categories,
	}
}

func (m *simulation) run() Estimate {
	for m.cycles < maxCycles {
		m.consolidate()

		if m.cleared() {
			return m.result(true)
		}

		if len(m.draw) == 0 {
			if len(m.open) == 0 {
				// deadlock: nothing left to draw
				break
			}
			m.recycle()
			m.cycles++
			if m.cycles >= maxCycles {
				break
			}
		}

		card := m.draw[len(m.draw)-1]
		m.draw = m.draw[:len(m.draw)-1]
		m.turns++
		m.place(card)
	}
	return m.result(m.cleared())
}

func (m *simulation) result(cleared bool) Estimate {
	return Estimate{Turns: m.turns, Cycles: m.cycles, Wasted: m.wasted, Cleared: cleared}
}

func (m *simulation) cleared() bool {
	if len(m.draw) > 0 || len(m.open) > 0 {
		return false
	}
	for _, col := range m.columns {
		if len(col) > 0 {
			return false
		}
	}
	return true
}

func (m *simulation) recycle() {
	n := len(m.open)
	draw := make([]entities.Card, n)
	for i, c := range m.open {
		draw[n-1-i] = c
	}
	m.draw = draw
	m.open = nil
}

// consolidate repeats column->slot sorting, then column->column merging,
// until a pass changes nothing.
func (m *simulation) consolidate() {
	for pass := 0; pass < safetyLimit; pass++ {
		if m.sortColumns() {
			continue
		}
		if !m.mergeColumns() {
			return
		}
	}
}

func (m *simulation) sortColumns() bool {
	changed := false
	for i := range m.columns {
		col := m.columns[i]
		if len(col) == 0 {
			continue
		}
		top := col[len(col)-1]
		if m.canSort(top) {
			m.columns[i] = col[:len(col)-1]
			m.doSort(top)
			changed = true
		}
	}
	return changed
}

// mergeColumns moves one non-KEY top onto another column with a matching
// non-KEY top. A card already resting on a SUB of its own category stays put,
// otherwise two such columns would trade the card back and forth.
func (m *simulation) mergeColumns() bool {
	for i := range m.columns {
		src := m.columns[i]
		if len(src) == 0 {
			continue
		}
		card := src[len(src)-1]
		if card.IsKey() {
			continue
		}
		if len(src) > 1 {
			under := src[len(src)-2]
			if under.IsSub() && under.CategoryID == card.CategoryID {
				continue
			}
		}
		for j := range m.columns {
			if i == j || !m.stackable(j, card) {
				continue
			}
			m.columns[i] = src[:len(src)-1]
			m.columns[j] = append(m.columns[j], card)
			return true
		}
	}
	return false
}

// stackable: column j has a non-KEY top of the card's category.
func (m *simulation) stackable(j int, card entities.Card) bool {
	col := m.columns[j]
	if len(col) == 0 {
		return false
	}
	top := col[len(col)-1]
	return !top.IsKey() && top.CategoryID == card.CategoryID
}

// place applies the draw heuristic: sort, stack, empty column, else waste.
func (m *simulation) place(card entities.Card) {
	if m.canSort(card) {
		m.doSort(card)
		return
	}
	for j := range m.columns {
		if m.stackable(j, card) {
			m.columns[j] = append(m.columns[j], card)
			return
		}
	}
	for j := range m.columns {
		if len(m.columns[j]) == 0 {
			m.columns[j] = append(m.columns[j], card)
			return
		}
	}
	m.open = append(m.open, card)
	m.wasted++
}

func (m *simulation) canSort(card entities.Card) bool {
	return m.sortTarget(card) >= 0
}

func (m *simulation) sortTarget(card entities.Card) int {
	for i, slot := range m.slots {
		if card.IsKey() && len(slot) == 0 {
			return i
		}
		if card.IsSub() && len(slot) > 0 && slot[0].CategoryID == card.CategoryID {
			return i
		}
	}
	return -1
}

// doSort mirrors the live auto-clear so emptied slots can take new KEYs.
func (m *simulation) doSort(card entities.Card) {
	i := m.sortTarget(card)
	if i < 0 {
		return
	}
	m.slots[i] = append(m.slots[i], card)
	if cfg, ok := m.categories[card.CategoryID]; ok && len(m.slots[i]) == cfg.Capacity() {
		m.slots[i] = nil
	}
}

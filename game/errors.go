package game

import (
	"errors"

	"go-sortgame/entities"
)

const (
	ColumnCount = entities.ColumnCount
	SlotCount   = entities.SlotCount
)

var (
	ErrNoTurnsRemaining  = errors.New("no turns remaining")
	ErrMalformedCatalog  = errors.New("malformed category catalog")
	ErrUnknownDifficulty = errors.New("unknown difficulty")
)

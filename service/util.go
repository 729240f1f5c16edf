package service

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/rand"
)

// newSessionID returns a short id, eight hex chars of a uuid.
func newSessionID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
}

func newSeedSource(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewSource(seed))
}

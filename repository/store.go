package repository

import (
	"context"
	"errors"
	"time"

	"go-sortgame/game"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionLocked   = errors.New("session is locked")
)

// SessionStore persists sessions between requests. Load returns a copy the
// caller may mutate; changes are visible to others only after Save.
type SessionStore interface {
	Save(ctx context.Context, id string, s *game.Session) error
	Load(ctx context.Context, id string) (*game.Session, error)
	Delete(ctx context.Context, id string) error
	// Lock serializes operations on one session. The returned func releases it.
	Lock(ctx context.Context, id string) (func(), error)
}

const (
	lockAttempts = 10
	lockBackoff  = 20 * time.Millisecond
)

// acquire retries try a few times before giving up with ErrSessionLocked.
func acquire(ctx context.Context, try func() (bool, error)) error {
	for attempt := 0; attempt < lockAttempts; attempt++ {
		ok, err := try()
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(lockBackoff):
		}
	}
	return ErrSessionLocked
}

package repository

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Sweep drops every expired session and returns how many went.
func (m *MemoryStore) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	n := 0
	for id, entry := range m.sessions {
		if !entry.expiresAt.IsZero() && now.After(entry.expiresAt) {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}

// ScheduleSweep runs Sweep every interval until ctx is done. Redis expires
// its keys itself, so only the memory store needs this.
func ScheduleSweep(ctx context.Context, m *MemoryStore, interval time.Duration, log *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.Sweep(); n > 0 {
				log.Info("expired sessions swept", zap.Int("count", n))
			}
		}
	}
}

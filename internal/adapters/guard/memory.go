package guard

import (
	"context"
	"sync"

	"github.com/kaviyasaravananibm/vibe-narrative/internal/domain"
)

// MemoryGuard tracks in-flight sessions in process memory.
// It only protects a single relay instance.
type MemoryGuard struct {
	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewMemoryGuard() *MemoryGuard {
	return &MemoryGuard{inFlight: make(map[string]struct{})}
}

func (g *MemoryGuard) Acquire(_ context.Context, sessionID string) (func(), error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, busy := g.inFlight[sessionID]; busy {
		return nil, domain.ErrSessionBusy
	}
	g.inFlight[sessionID] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.inFlight, sessionID)
			g.mu.Unlock()
		})
	}, nil
}

package ports

import "context"

// SessionGuard allows at most one in-flight generation per client session.
// Acquire returns domain.ErrSessionBusy when the session already holds the guard.
type SessionGuard interface {
	Acquire(ctx context.Context, sessionID string) (release func(), err error)
}

package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SessionRepository defines the storage contract for wizard sessions.
type SessionRepository interface {
	// Save stores a new session.
	Save(ctx context.Context, session *Session) error

	// FindByID retrieves a session by its identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Session, error)

	// Delete removes a session and cancels its timers.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteIdle removes sessions inactive since before cutoff and returns how many were removed.
	DeleteIdle(ctx context.Context, cutoff time.Time) (int, error)

	// Count returns the number of stored sessions.
	Count(ctx context.Context) (int, error)
}

package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	bookingDomain "github.com/monastery360/service-travel/internal/domain/booking"
	"github.com/monastery360/service-travel/pkg/domain"
)

// MemorySessionRepository keeps wizard sessions in process memory.
// Sessions do not survive a restart.
type MemorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*bookingDomain.Session
}

// NewMemorySessionRepository creates an empty MemorySessionRepository.
func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{sessions: make(map[uuid.UUID]*bookingDomain.Session)}
}

// Save stores a new session.
func (r *MemorySessionRepository) Save(_ context.Context, session *bookingDomain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.sessions[session.ID()]; exists {
		return domain.NewConflictError("session " + session.ID().String() + " already exists")
	}
	r.sessions[session.ID()] = session
	return nil
}

// FindByID retrieves a session by its identifier.
func (r *MemorySessionRepository) FindByID(_ context.Context, id uuid.UUID) (*bookingDomain.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, domain.NewNotFoundError("Session", id.String())
	}
	return s, nil
}

// Delete removes a session and cancels its timers.
func (r *MemorySessionRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if !ok {
		return domain.NewNotFoundError("Session", id.String())
	}
	s.Close()
	return nil
}

// DeleteIdle removes sessions inactive since before cutoff.
func (r *MemorySessionRepository) DeleteIdle(_ context.Context, cutoff time.Time) (int, error) {
	r.mu.Lock()
	var idle []*bookingDomain.Session
	for id, s := range r.sessions {
		if s.IdleSince(cutoff) {
			idle = append(idle, s)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, s := range idle {
		s.Close()
	}
	return len(idle), nil
}

// Count returns the number of stored sessions.
func (r *MemorySessionRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions), nil
}

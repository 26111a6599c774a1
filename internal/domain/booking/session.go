package booking

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Timer is a pending delayed transition that can be cancelled.
type Timer interface {
	Stop() bool
}

// Session owns one wizard State plus the timers of its current map session.
// All access goes through its methods, which serialize on the session lock.
type Session struct {
	mu        sync.Mutex
	id        uuid.UUID
	state     State
	epoch     uint64
	timers    map[uint64]Timer
	timerSeq  uint64
	createdAt time.Time
	updatedAt time.Time
	lastSeen  time.Time
}

// NewSession creates an idle session.
func NewSession(now time.Time) *Session {
	return &Session{
		id:        uuid.New(),
		state:     NewState(),
		createdAt: now,
		updatedAt: now,
		lastSeen:  now,
	}
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID { return s.id }

// CreatedAt returns the creation timestamp.
func (s *Session) CreatedAt() time.Time { return s.createdAt }

// Snapshot returns the current state, epoch, and last-updated time together.
func (s *Session) Snapshot() (State, uint64, time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state, s.epoch, s.updatedAt
}

// State returns the current state.
func (s *Session) State() State {
	st, _, _ := s.Snapshot()
	return st
}

// Touch marks the session as active.
func (s *Session) Touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

// IdleSince reports whether the session has been inactive since before cutoff.
func (s *Session) IdleSince(cutoff time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen.Before(cutoff)
}

// Apply runs fn against the current state and stores the result.
// UpdatedAt only moves when the state actually changes.
func (s *Session) Apply(now time.Time, fn func(State) (State, error)) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applyLocked(now, fn)
}

// ApplyInEpoch is Apply guarded by the map session epoch. It reports false
// and leaves the state alone when the epoch has moved on.
func (s *Session) ApplyInEpoch(epoch uint64, now time.Time, fn func(State) (State, error)) (State, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch {
		return s.state, false, nil
	}
	st, err := s.applyLocked(now, fn)
	return st, err == nil, err
}

// StartMapEpoch applies fn and, on success, cancels pending timers and begins
// a new map session. The returned epoch identifies that map session.
func (s *Session) StartMapEpoch(now time.Time, fn func(State) (State, error)) (State, uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.applyLocked(now, fn)
	if err != nil {
		return st, s.epoch, err
	}
	s.stopTimersLocked()
	s.epoch++
	return st, s.epoch, nil
}

// ApplyLocationChange applies fn and, when the state changed while the map
// was open, cancels pending timers and begins a new map session. The returned
// bool reports whether a new map session began.
func (s *Session) ApplyLocationChange(now time.Time, fn func(State) (State, error)) (State, uint64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.state
	st, err := s.applyLocked(now, fn)
	if err != nil || !prev.IsMapOpen() || st.Equal(prev) {
		return st, s.epoch, false, err
	}
	s.stopTimersLocked()
	s.epoch++
	return st, s.epoch, true, nil
}

// Schedule arms a timer for epoch through start and tracks it until it fires
// or the map session ends. start must not run its callback synchronously.
// It reports false, arming nothing, when epoch is stale.
func (s *Session) Schedule(epoch uint64, start func(f func()) Timer, fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch {
		return false
	}
	if s.timers == nil {
		s.timers = make(map[uint64]Timer)
	}
	s.timerSeq++
	id := s.timerSeq
	s.timers[id] = start(func() {
		s.mu.Lock()
		delete(s.timers, id)
		s.mu.Unlock()
		fn()
	})
	return true
}

// PendingTimers returns the number of registered timers.
func (s *Session) PendingTimers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Close cancels all timers and invalidates the current epoch.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopTimersLocked()
	s.epoch++
}

func (s *Session) applyLocked(now time.Time, fn func(State) (State, error)) (State, error) {
	next, err := fn(s.state)
	if err != nil {
		return s.state, err
	}
	if !next.Equal(s.state) {
		s.updatedAt = now
	}
	s.state = next
	s.lastSeen = now
	return s.state, nil
}

func (s *Session) stopTimersLocked() {
	for _, t := range s.timers {
		t.Stop()
	}
	s.timers = nil
}

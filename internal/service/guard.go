package service

import "sync"

// Guard is the in-process single-flight registry for generation attempts:
// at most one in-flight attempt per user id. It is advisory protection
// against double-submission within one server instance and is lost on
// restart; the durable cross-restart guard is the processing status in the
// task ledger, which the eligibility policy consults.
type Guard struct {
	mu       sync.Mutex
	inflight map[uint]struct{}
}

// NewGuard creates an empty guard.
func NewGuard() *Guard {
	return &Guard{inflight: make(map[uint]struct{})}
}

// TryRegister claims the slot for a user. It returns false when an attempt
// is already registered, leaving the registry untouched.
func (g *Guard) TryRegister(userID uint) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, exists := g.inflight[userID]; exists {
		return false
	}
	g.inflight[userID] = struct{}{}
	return true
}

// Release frees the slot unconditionally.
func (g *Guard) Release(userID uint) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.inflight, userID)
}

// Active reports whether an attempt is currently registered for the user.
func (g *Guard) Active(userID uint) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, exists := g.inflight[userID]
	return exists
}

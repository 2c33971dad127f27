// services/locks.go - Per-user write serialization
package services

import "sync"

// UserLocks hands out one mutex per user ID so every mutating pass over a
// user's records runs single-writer. Entries are never reclaimed; the map
// grows with the active user population, which is small enough here.
type UserLocks struct {
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func NewUserLocks() *UserLocks {
	return &UserLocks{locks: make(map[uint]*sync.Mutex)}
}

// Lock acquires the user's mutex and returns the unlock func.
func (l *UserLocks) Lock(userID uint) func() {
	l.mu.Lock()
	m, ok := l.locks[userID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[userID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}

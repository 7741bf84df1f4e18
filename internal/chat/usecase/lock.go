package usecase

import "sync"

// userLocks serializes conversation rounds per user. A plain map of
// mutexes: entries are tiny and the user population of a personal bot
// is small, so nothing is ever evicted — evicting a held mutex would
// break mutual exclusion.
type userLocks struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func newUserLocks() *userLocks {
	return &userLocks{locks: make(map[int64]*sync.Mutex)}
}

// lock acquires the mutex for one user and returns its unlock func.
func (ul *userLocks) lock(userID int64) func() {
	ul.mu.Lock()
	m, ok := ul.locks[userID]
	if !ok {
		m = &sync.Mutex{}
		ul.locks[userID] = m
	}
	ul.mu.Unlock()

	m.Lock()
	return m.Unlock
}

package service

import "sync"

// gameLocks serializes operations on the same game id. Entries are dropped
// once nobody holds or waits for them.
type gameLocks struct {
	mu    sync.Mutex
	locks map[string]*gameLock
}

type gameLock struct {
	mu      sync.Mutex
	holders int
}

func newGameLocks() *gameLocks {
	return &gameLocks{locks: make(map[string]*gameLock)}
}

// lock blocks until id is free and returns the matching unlock.
func (that *gameLocks) lock(id string) func() {
	that.mu.Lock()
	l, ok := that.locks[id]
	if !ok {
		l = &gameLock{}
		that.locks[id] = l
	}
	l.holders++
	that.mu.Unlock()

	l.mu.Lock()

	return func() {
		l.mu.Unlock()

		that.mu.Lock()
		defer that.mu.Unlock()

		l.holders--
		if l.holders == 0 {
			delete(that.locks, id)
		}
	}
}

func (that *gameLocks) len() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.locks)
}

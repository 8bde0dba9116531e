package service

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameLocks(t *testing.T) {
	t.Run("Same id waits for the holder", func(t *testing.T) {
		locks := newGameLocks()
		unlock := locks.lock("1")

		acquired := make(chan struct{})
		go func() {
			defer close(acquired)
			locks.lock("1")()
		}()

		select {
		case <-acquired:
			t.Fatal("second lock acquired while the first is held")
		case <-time.After(20 * time.Millisecond):
		}

		unlock()
		<-acquired

		assert.Zero(t, locks.len())
	})

	t.Run("Different ids do not block each other", func(t *testing.T) {
		locks := newGameLocks()
		unlockFirst := locks.lock("1")
		unlockSecond := locks.lock("2")

		require.Equal(t, 2, locks.len())

		unlockFirst()
		unlockSecond()
		assert.Zero(t, locks.len())
	})

	t.Run("Counter under contention", func(t *testing.T) {
		locks := newGameLocks()
		counter := 0

		var wg sync.WaitGroup
		for range 50 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				unlock := locks.lock("1")
				defer unlock()
				counter++
			}()
		}
		wg.Wait()

		assert.Equal(t, 50, counter)
		assert.Zero(t, locks.len())
	})
}

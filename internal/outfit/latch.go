// internal/outfit/latch.go
package outfit

import (
	"sync"
	"time"
)

// LatchState tracks a single user's generation for one day.
type LatchState int

const (
	LatchIdle LatchState = iota
	LatchGenerating
	LatchDone
)

// GenerationLatch ensures at most one generation runs, and at most one
// completes, per user per day. Entries for past days are pruned lazily.
type GenerationLatch struct {
	mu     sync.Mutex
	states map[string]LatchState
}

func NewGenerationLatch() *GenerationLatch {
	return &GenerationLatch{states: make(map[string]LatchState)}
}

// TryAcquire attempts to move the owner's latch for day to Generating.
// It returns false when a generation is already running or already done.
func (l *GenerationLatch) TryAcquire(ownerID string, day time.Time) bool {
	key := Key(ownerID, day)

	l.mu.Lock()
	defer l.mu.Unlock()

	l.pruneLocked(day)

	switch l.states[key] {
	case LatchGenerating, LatchDone:
		return false
	}
	l.states[key] = LatchGenerating
	return true
}

// Release ends a generation. done marks the day complete; otherwise the
// latch returns to idle so a later attempt can retry.
func (l *GenerationLatch) Release(ownerID string, day time.Time, done bool) {
	key := Key(ownerID, day)

	l.mu.Lock()
	defer l.mu.Unlock()

	if done {
		l.states[key] = LatchDone
	} else {
		delete(l.states, key)
	}
}

// Reset clears the latch for one owner and day, typically after the cached
// entry was removed and a fresh generation should be allowed.
func (l *GenerationLatch) Reset(ownerID string, day time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.states, Key(ownerID, day))
}

// State returns the current latch state for one owner and day.
func (l *GenerationLatch) State(ownerID string, day time.Time) LatchState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.states[Key(ownerID, day)]
}

// pruneLocked drops entries that do not belong to day. Keys embed the day
// as a suffix, so a suffix check is enough.
func (l *GenerationLatch) pruneLocked(day time.Time) {
	suffix := ":" + day.UTC().Format("2006-01-02")
	for key := range l.states {
		if len(key) < len(suffix) || key[len(key)-len(suffix):] != suffix {
			delete(l.states, key)
		}
	}
}

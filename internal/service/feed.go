package service

import (
	"sync"

	"deskclock/internal/models"
)

// StateFeed hands the latest clock snapshot to any number of readers.
// Publish closes the current change channel and replaces it, so a reader
// that grabbed Changed before a publish is always woken, and a slow reader
// skips straight to the newest snapshot.
type StateFeed struct {
	mu      sync.RWMutex
	latest  models.ClockState
	version uint64
	changed chan struct{}
}

func NewStateFeed() *StateFeed {
	return &StateFeed{changed: make(chan struct{})}
}

// Publish stores st as the latest snapshot and wakes every waiting reader.
func (f *StateFeed) Publish(st models.ClockState) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.latest = st
	f.version++
	close(f.changed)
	f.changed = make(chan struct{})
}

// Changed is closed by the next Publish.
func (f *StateFeed) Changed() <-chan struct{} {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.changed
}

// Latest returns the newest snapshot and its version. Version 0 means
// nothing was published yet.
func (f *StateFeed) Latest() (models.ClockState, uint64) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.latest, f.version
}

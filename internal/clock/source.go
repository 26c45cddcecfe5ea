package clock

import (
	"sync"
	"time"
)

// Source produces the current instant on the UTC timeline.
// It must be synchronized (NTP or RTC) before first use.
type Source interface {
	Now() time.Time
}

// SystemSource reads the host clock.
type SystemSource struct{}

func (SystemSource) Now() time.Time {
	return time.Now().UTC()
}

// FixedSource always returns the same instant.
type FixedSource struct {
	At time.Time
}

func (f FixedSource) Now() time.Time {
	return f.At.UTC()
}

// StepSource returns Start and advances by Step on every read.
// It is used to replay a sequence of ticks.
type StepSource struct {
	mu   sync.Mutex
	next time.Time
	step time.Duration
}

// NewStepSource returns a source whose first reading is start.
func NewStepSource(start time.Time, step time.Duration) *StepSource {
	return &StepSource{next: start.UTC(), step: step}
}

func (s *StepSource) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.next
	s.next = s.next.Add(s.step)
	return now
}

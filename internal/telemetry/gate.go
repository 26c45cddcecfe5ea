// Package telemetry rate-limits sensor uploads to one per minute.
package telemetry

// Gate remembers the minute value of the last successful send.
// A failed send leaves it untouched so the next tick in the same minute retries.
type Gate struct {
	lastSent int
	sent     bool
}

// NewGate returns a gate that has never sent.
func NewGate() *Gate {
	return &Gate{}
}

// Due reports whether a send should be attempted for minute.
func (g *Gate) Due(minute int) bool {
	return !g.sent || g.lastSent != minute
}

// MarkSent records a successful send in minute.
func (g *Gate) MarkSent(minute int) {
	g.lastSent = minute
	g.sent = true
}

// LastSent returns the minute of the last successful send.
func (g *Gate) LastSent() (int, bool) {
	return g.lastSent, g.sent
}

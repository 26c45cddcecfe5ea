package clock

import "time"

// Offsets in hours east of UTC.
const (
	OffsetWinter = 1 // CET
	OffsetSummer = 2 // CEST
)

// DSTPolicy decides the local UTC offset for an instant.
type DSTPolicy interface {
	OffsetHours(instant time.Time) int
}

// SwedishDST applies the EU last-Sunday-of-March / last-Sunday-of-October
// rule at day granularity. The hour of the switch (01:00 UTC) is ignored, so
// on both transition days the whole UTC day uses the new offset.
type SwedishDST struct{}

// OffsetHours returns 2 during summer time and 1 otherwise, judged on the
// UTC calendar date of instant.
func (SwedishDST) OffsetHours(instant time.Time) int {
	y, m, d := instant.UTC().Date()
	switch {
	case m > time.March && m < time.October:
		return OffsetSummer
	case m == time.March && d >= MarchTransitionDay(y):
		return OffsetSummer
	case m == time.October && d < OctoberTransitionDay(y):
		return OffsetSummer
	default:
		return OffsetWinter
	}
}

// MarchTransitionDay is the day-of-month summer time starts in year.
// Valid for 1900..2099.
func MarchTransitionDay(year int) int {
	return 31 - (5*year/4+4)%7
}

// OctoberTransitionDay is the day-of-month summer time ends in year.
// Valid for 1900..2099.
func OctoberTransitionDay(year int) int {
	return 31 - (5*year/4+1)%7
}

package service

import "time"

// AlarmParams is the raw alarm input from the API.
type AlarmParams struct {
	Time       string // HH:MM; empty disarms
	Date       string // YYYY-MM-DD, ONE_SHOT only
	Recurrence string // "DAILY" | "ONE_SHOT"
}

// LogFilter is a log query as received from the API.
type LogFilter struct {
	From       time.Time // inclusive; zero means no lower bound
	To         time.Time // inclusive; zero means no upper bound
	Types      []string  // event types, any case
	Stage      string    // failed tick stage
	Recurrence string    // recurrence of alarm events
	Minute     *int      // minute value of telemetry events
	Limit      int       // 0 means repository.DefaultEventLimit
}

package models

import "fmt"

// Recurrence controls whether an alarm disarms after firing.
type Recurrence string

const (
	RecurrenceOneShot Recurrence = "ONE_SHOT"
	RecurrenceDaily   Recurrence = "DAILY"
)

// Valid reports whether r is a known recurrence mode.
func (r Recurrence) Valid() bool {
	return r == RecurrenceOneShot || r == RecurrenceDaily
}

// AlarmTarget is the local date and time an alarm is set for.
// Year, Month and Day are ignored by DAILY alarms.
type AlarmTarget struct {
	Year   int `json:"year,omitempty"`
	Month  int `json:"month,omitempty"`
	Day    int `json:"day,omitempty"`
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// AlarmConfig is the configured alarm. A nil Target means disarmed.
type AlarmConfig struct {
	Target     *AlarmTarget `json:"target,omitempty"`
	Recurrence Recurrence   `json:"recurrence"`
}

// Armed reports whether a target is set.
func (c AlarmConfig) Armed() bool {
	return c.Target != nil
}

// Clone returns a copy that does not share the target pointer.
func (c AlarmConfig) Clone() AlarmConfig {
	if c.Target == nil {
		return AlarmConfig{Recurrence: c.Recurrence}
	}
	t := *c.Target
	return AlarmConfig{Target: &t, Recurrence: c.Recurrence}
}

// Summary is the short text shown on the display.
func (c AlarmConfig) Summary() string {
	if c.Target == nil {
		return "Alarm: off"
	}
	t := c.Target
	if c.Recurrence == RecurrenceDaily {
		return fmt.Sprintf("Alarm: %02d:%02d daily", t.Hour, t.Minute)
	}
	return fmt.Sprintf("Alarm: %02d-%02d %02d:%02d", t.Month, t.Day, t.Hour, t.Minute)
}

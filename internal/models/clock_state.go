package models

import "time"

// ClockState is the snapshot persisted after every tick.
type ClockState struct {
	ID             int         `json:"id"`
	LocalTime      LocalTime   `json:"local_time"`
	OffsetHours    int         `json:"offset_hours"`            // 1 (CET) | 2 (CEST)
	TemperatureC   *float64    `json:"temperature_c,omitempty"` // nil when the sensor failed
	Alarm          AlarmConfig `json:"alarm"`
	AlarmSummary   string      `json:"alarm_summary"`
	LastSentMinute *int        `json:"last_sent_minute,omitempty"`
	ErrorCodes     []string    `json:"error_codes,omitempty"` // e.g. ["sensor", "network"]
	UpdatedAt      time.Time   `json:"updated_at"`
}

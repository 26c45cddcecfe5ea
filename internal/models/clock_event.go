package models

import "time"

// Event types written to the event log.
const (
	EventAlarmFired      = "ALARM_FIRED"
	EventAlarmDisarmed   = "ALARM_DISARMED"
	EventAlarmConfigured = "ALARM_CONFIGURED"
	EventTelemetrySent   = "TELEMETRY_SENT"
	EventTelemetryFailed = "TELEMETRY_FAILED"
	EventTickError       = "TICK_ERROR"
)

var eventTypes = []string{
	EventAlarmFired,
	EventAlarmDisarmed,
	EventAlarmConfigured,
	EventTelemetrySent,
	EventTelemetryFailed,
	EventTickError,
}

// EventTypes lists every type the clock writes, in a stable order.
func EventTypes() []string {
	return append([]string(nil), eventTypes...)
}

// KnownEventType reports whether typ is one of EventTypes.
func KnownEventType(typ string) bool {
	for _, t := range eventTypes {
		if t == typ {
			return true
		}
	}
	return false
}

// ClockEvent is a single log entry.
type ClockEvent struct {
	EventID     string     `json:"event_id"`
	OccurredAt  time.Time  `json:"occurred_at"`
	Type        string     `json:"type"`
	Description string     `json:"description"`
	Meta        *EventMeta `json:"meta,omitempty"`
}

// EventMeta carries the clock context of an event. Which fields are set
// depends on the type:
//
//	ALARM_FIRED, ALARM_DISARMED    LocalTime, Recurrence
//	ALARM_CONFIGURED               Recurrence, Armed
//	TELEMETRY_SENT                 LocalTime, Minute, TemperatureC
//	TELEMETRY_FAILED               LocalTime, Minute, Error
//	TICK_ERROR                     LocalTime, Stages
type EventMeta struct {
	LocalTime    string     `json:"local_time,omitempty"`
	Minute       *int       `json:"minute,omitempty"`
	Recurrence   Recurrence `json:"recurrence,omitempty"`
	Armed        *bool      `json:"armed,omitempty"`
	Stages       []string   `json:"stages,omitempty"`
	TemperatureC *float64   `json:"temperature_c,omitempty"`
	Error        string     `json:"error,omitempty"`
}

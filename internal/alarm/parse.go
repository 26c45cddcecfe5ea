package alarm

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"deskclock/internal/models"
)

// ErrInvalidAlarm marks alarm input that cannot be turned into a configuration.
var ErrInvalidAlarm = errors.New("invalid alarm")

const (
	layoutClock = "15:04"
	layoutDate  = "2006-01-02"
)

// ParseRecurrence accepts ONE_SHOT/ONCE and DAILY in any case.
// An empty string means DAILY.
func ParseRecurrence(s string) (models.Recurrence, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", string(models.RecurrenceDaily):
		return models.RecurrenceDaily, nil
	case string(models.RecurrenceOneShot), "ONCE", "ONESHOT", "ONE-SHOT":
		return models.RecurrenceOneShot, nil
	default:
		return "", fmt.Errorf("%w: unknown recurrence %q", ErrInvalidAlarm, s)
	}
}

// ParseConfig builds a configuration from "HH:MM", an optional "YYYY-MM-DD"
// and a recurrence. An empty clock string yields a disarmed configuration.
// ONE_SHOT alarms require a date; DAILY alarms ignore it.
func ParseConfig(clockStr, dateStr, recurrence string) (models.AlarmConfig, error) {
	rec, err := ParseRecurrence(recurrence)
	if err != nil {
		return models.AlarmConfig{}, err
	}
	clockStr = strings.TrimSpace(clockStr)
	if clockStr == "" {
		return models.AlarmConfig{Recurrence: rec}, nil
	}
	hm, err := time.Parse(layoutClock, clockStr)
	if err != nil {
		return models.AlarmConfig{}, fmt.Errorf("%w: time %q, want HH:MM", ErrInvalidAlarm, clockStr)
	}
	target := &models.AlarmTarget{Hour: hm.Hour(), Minute: hm.Minute()}

	if rec == models.RecurrenceOneShot {
		dateStr = strings.TrimSpace(dateStr)
		if dateStr == "" {
			return models.AlarmConfig{}, fmt.Errorf("%w: one-shot alarm needs a date", ErrInvalidAlarm)
		}
		d, err := time.Parse(layoutDate, dateStr)
		if err != nil {
			return models.AlarmConfig{}, fmt.Errorf("%w: date %q, want YYYY-MM-DD", ErrInvalidAlarm, dateStr)
		}
		target.Year, target.Month, target.Day = d.Year(), int(d.Month()), d.Day()
	}
	return models.AlarmConfig{Target: target, Recurrence: rec}, nil
}

// Validate checks a configuration that did not come through ParseConfig.
func Validate(cfg models.AlarmConfig) error {
	if !cfg.Recurrence.Valid() {
		return fmt.Errorf("%w: unknown recurrence %q", ErrInvalidAlarm, cfg.Recurrence)
	}
	t := cfg.Target
	if t == nil {
		return nil
	}
	if t.Hour < 0 || t.Hour > 23 || t.Minute < 0 || t.Minute > 59 {
		return fmt.Errorf("%w: time %02d:%02d out of range", ErrInvalidAlarm, t.Hour, t.Minute)
	}
	if cfg.Recurrence == models.RecurrenceDaily {
		return nil
	}
	if t.Month < 1 || t.Month > 12 || t.Day < 1 {
		return fmt.Errorf("%w: date %d-%02d-%02d out of range", ErrInvalidAlarm, t.Year, t.Month, t.Day)
	}
	d := time.Date(t.Year, time.Month(t.Month), t.Day, 0, 0, 0, 0, time.UTC)
	if d.Day() != t.Day {
		return fmt.Errorf("%w: date %d-%02d-%02d does not exist", ErrInvalidAlarm, t.Year, t.Month, t.Day)
	}
	return nil
}

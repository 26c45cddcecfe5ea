package clock

import (
	"time"

	"deskclock/internal/models"
)

const secondsPerHour = 3600

// LocalTimeProvider turns the source instant into wall-clock time.
type LocalTimeProvider struct {
	source Source
	policy DSTPolicy
}

// NewLocalTimeProvider composes a source and an offset policy.
func NewLocalTimeProvider(source Source, policy DSTPolicy) *LocalTimeProvider {
	return &LocalTimeProvider{source: source, policy: policy}
}

// Reading is one localized clock read.
type Reading struct {
	Instant time.Time
	Offset  int
	Local   models.LocalTime
}

// Read samples the source once and localizes it.
func (p *LocalTimeProvider) Read() Reading {
	instant := p.source.Now().UTC()
	offset := p.policy.OffsetHours(instant)
	return Reading{Instant: instant, Offset: offset, Local: Localize(instant, offset)}
}

// NowLocal returns the current wall-clock time.
func (p *LocalTimeProvider) NowLocal() models.LocalTime {
	return p.Read().Local
}

// Localize shifts instant by offset hours and breaks it into calendar fields.
func Localize(instant time.Time, offsetHours int) models.LocalTime {
	shifted := time.Unix(instant.Unix()+int64(offsetHours)*secondsPerHour, 0).UTC()
	y, m, d := shifted.Date()
	h, min, s := shifted.Clock()
	return models.LocalTime{
		Year:    y,
		Month:   m,
		Day:     d,
		Hour:    h,
		Minute:  min,
		Second:  s,
		Weekday: shifted.Weekday(),
	}
}

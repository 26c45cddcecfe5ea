package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"deskclock/internal/alarm"
	"deskclock/internal/models"
	"deskclock/internal/repository"
)

const maxEventLimit = 1000

// ErrInvalidFilter marks a log query that cannot be answered.
var ErrInvalidFilter = errors.New("invalid log filter")

var tickStages = []string{StageSensor, StageDisplay, StageNetwork, StageTone, StagePersist}

type EventLogService struct {
	eventRepo repository.EventRepo
}

func NewEventLogService(eventRepo repository.EventRepo) *EventLogService {
	return &EventLogService{eventRepo: eventRepo}
}

// List validates f and returns the newest matching events first.
func (s *EventLogService) List(ctx context.Context, f LogFilter) ([]models.ClockEvent, error) {
	q, err := f.query()
	if err != nil {
		return nil, err
	}
	return s.eventRepo.List(ctx, q)
}

// query checks the filter against the event types and metadata the clock
// writes. A stage without types narrows the query to TICK_ERROR entries and
// a minute without types to telemetry entries.
func (f LogFilter) query() (repository.EventQuery, error) {
	q := repository.EventQuery{From: f.From, To: f.To, Limit: f.Limit}
	if !q.From.IsZero() && !q.To.IsZero() && q.From.After(q.To) {
		return q, fmt.Errorf("%w: from %s is after to %s", ErrInvalidFilter, q.From, q.To)
	}

	for _, t := range f.Types {
		t = strings.ToUpper(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if !models.KnownEventType(t) {
			return q, fmt.Errorf("%w: unknown event type %q", ErrInvalidFilter, t)
		}
		q.Types = append(q.Types, t)
	}

	if stage := strings.ToLower(strings.TrimSpace(f.Stage)); stage != "" {
		if !hasString(tickStages, stage) {
			return q, fmt.Errorf("%w: unknown stage %q", ErrInvalidFilter, f.Stage)
		}
		q.Stage = stage
		if len(q.Types) == 0 {
			q.Types = []string{models.EventTickError}
		}
	}

	if strings.TrimSpace(f.Recurrence) != "" {
		rec, err := alarm.ParseRecurrence(f.Recurrence)
		if err != nil {
			return q, fmt.Errorf("%w: %v", ErrInvalidFilter, err)
		}
		q.Recurrence = rec
	}

	if f.Minute != nil {
		if *f.Minute < 0 || *f.Minute > 59 {
			return q, fmt.Errorf("%w: minute %d out of range", ErrInvalidFilter, *f.Minute)
		}
		m := *f.Minute
		q.Minute = &m
		if len(q.Types) == 0 {
			q.Types = []string{models.EventTelemetrySent, models.EventTelemetryFailed}
		}
	}

	switch {
	case f.Limit < 0:
		return q, fmt.Errorf("%w: negative limit", ErrInvalidFilter)
	case f.Limit > maxEventLimit:
		q.Limit = maxEventLimit
	}
	return q, nil
}

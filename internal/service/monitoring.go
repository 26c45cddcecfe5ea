package service

import (
	"context"
	"time"

	"deskclock/internal/models"
	"deskclock/internal/repository"
)

type MonitoringService struct {
	stateRepo repository.StateRepo
}

func NewMonitoringService(stateRepo repository.StateRepo) *MonitoringService {
	return &MonitoringService{stateRepo: stateRepo}
}

// GetState returns the latest persisted clock snapshot.
// Before the first tick was saved it returns a baseline with no reading.
func (s *MonitoringService) GetState(ctx context.Context) (models.ClockState, error) {
	state, err := s.stateRepo.Load(ctx)
	if err != nil {
		return models.ClockState{}, err
	}
	if state.ID == 0 {
		return s.baselineState(), nil
	}
	state.UpdatedAt = toUTC(state.UpdatedAt)
	return state, nil
}

// baselineState is reported while the clock loop has not ticked yet.
func (s *MonitoringService) baselineState() models.ClockState {
	alarmOff := models.AlarmConfig{Recurrence: models.RecurrenceDaily}
	return models.ClockState{
		ID:           1, // DB schema enforces single-row state with id=1
		Alarm:        alarmOff,
		AlarmSummary: alarmOff.Summary(),
		ErrorCodes:   nil,
		UpdatedAt:    time.Now().UTC(),
	}
}

// toUTC normalizes non-zero time to UTC, preserving zero values.
func toUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

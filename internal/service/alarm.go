package service

import (
	"context"
	"errors"
	"time"

	"deskclock/internal/alarm"
	"deskclock/internal/models"
	"deskclock/internal/repository"

	"github.com/google/uuid"
)

type AlarmService struct {
	alarmRepo repository.AlarmRepo
	eventRepo repository.EventRepo
	loop      Reconfigurer
	fallback  models.AlarmConfig
}

func NewAlarmService(alarmRepo repository.AlarmRepo, eventRepo repository.EventRepo, loop Reconfigurer, fallback models.AlarmConfig) *AlarmService {
	return &AlarmService{
		alarmRepo: alarmRepo,
		eventRepo: eventRepo,
		loop:      loop,
		fallback:  fallback.Clone(),
	}
}

// Get returns the saved alarm, or the configured one if nothing usable was
// saved. A saved row that fails validation is never handed out.
func (s *AlarmService) Get(ctx context.Context) (models.AlarmConfig, error) {
	cfg, found, err := s.alarmRepo.Load(ctx)
	if errors.Is(err, alarm.ErrInvalidAlarm) {
		return s.fallback.Clone(), nil
	}
	if err != nil {
		return models.AlarmConfig{}, err
	}
	if !found {
		return s.fallback.Clone(), nil
	}
	return cfg, nil
}

// Set validates p, persists the result and hands it to the loop.
// Invalid input returns an error wrapping alarm.ErrInvalidAlarm.
func (s *AlarmService) Set(ctx context.Context, p AlarmParams) (models.AlarmConfig, error) {
	cfg, err := alarm.ParseConfig(p.Time, p.Date, p.Recurrence)
	if err != nil {
		return models.AlarmConfig{}, err
	}
	if err := s.apply(ctx, cfg); err != nil {
		return models.AlarmConfig{}, err
	}
	return cfg, nil
}

// Clear disarms the alarm, keeping its recurrence.
func (s *AlarmService) Clear(ctx context.Context) error {
	cur, err := s.Get(ctx)
	if err != nil {
		return err
	}
	return s.apply(ctx, models.AlarmConfig{Recurrence: cur.Recurrence})
}

func (s *AlarmService) apply(ctx context.Context, cfg models.AlarmConfig) error {
	if err := s.alarmRepo.Save(ctx, cfg); err != nil {
		return err
	}
	if s.loop != nil {
		s.loop.Configure(cfg)
	}
	armed := cfg.Armed()
	return s.eventRepo.Append(ctx, models.ClockEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  time.Now().UTC(),
		Type:        models.EventAlarmConfigured,
		Description: cfg.Summary(),
		Meta:        &models.EventMeta{Recurrence: cfg.Recurrence, Armed: &armed},
	})
}

package service

import (
	"context"
	"time"

	"deskclock/internal/models"
	"deskclock/internal/repository"
)

// Operator issues and checks the tokens that guard alarm changes.
type Operator interface {
	Locked() bool
	IssueToken(password string) (token string, expires time.Time, err error)
	Authorize(token, scope string) error
}

// Alarm reads and replaces the alarm configuration.
type Alarm interface {
	Get(ctx context.Context) (models.AlarmConfig, error)
	Set(ctx context.Context, p AlarmParams) (models.AlarmConfig, error)
	Clear(ctx context.Context) error
}

// Monitoring exposes the last persisted clock snapshot.
type Monitoring interface {
	GetState(ctx context.Context) (models.ClockState, error)
}

// EventLog exposes append-only logs with filtering access.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.ClockEvent, error)
}

// Snapshots follows the snapshots published by the running loop.
type Snapshots interface {
	Changed() <-chan struct{}
	Latest() (models.ClockState, uint64)
}

// Loop runs the clock until ctx is canceled.
type Loop interface {
	Run(ctx context.Context, tick time.Duration)
}

// Reconfigurer accepts a new alarm configuration for the running loop.
type Reconfigurer interface {
	Configure(cfg models.AlarmConfig)
}

// Service aggregates all sub-services.
type Service struct {
	Alarm
	Monitoring
	EventLog
	Loop
	Operator
	Snapshots Snapshots
}

// NewService wires the repositories and the running loop into concrete
// services. fallback is the alarm from configuration, reported until an alarm
// is saved through the API. feed must be the publisher given to the loop.
func NewService(repos *repository.Repository, loop *ClockLoop, feed *StateFeed, fallback models.AlarmConfig, auth AuthSettings) *Service {
	return &Service{
		Alarm:      NewAlarmService(repos.AlarmRepo, repos.EventRepo, loop, fallback),
		Monitoring: NewMonitoringService(repos.StateRepo),
		EventLog:   NewEventLogService(repos.EventRepo),
		Loop:       loop,
		Operator:   NewOperatorAuth(auth),
		Snapshots:  feed,
	}
}

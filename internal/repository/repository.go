package repository

import (
	"context"
	"database/sql"

	"deskclock/internal/models"
)

// StateRepo stores the single clock snapshot row.
type StateRepo interface {
	Save(ctx context.Context, s models.ClockState) error
	Load(ctx context.Context) (models.ClockState, error)
}

// EventRepo is the append-only clock event log.
type EventRepo interface {
	Append(ctx context.Context, e models.ClockEvent) error
	List(ctx context.Context, q EventQuery) ([]models.ClockEvent, error)
}

// AlarmRepo persists the alarm configuration across restarts.
type AlarmRepo interface {
	Save(ctx context.Context, cfg models.AlarmConfig) error
	// Load returns found=false when nothing was saved yet.
	Load(ctx context.Context) (cfg models.AlarmConfig, found bool, err error)
}

type Repository struct {
	StateRepo StateRepo
	EventRepo EventRepo
	AlarmRepo AlarmRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		StateRepo: NewStateSQLite(db),
		EventRepo: NewEventSQLite(db),
		AlarmRepo: NewAlarmSQLite(db),
	}
}

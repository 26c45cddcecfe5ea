package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"deskclock/internal/alarm"
	"deskclock/internal/models"
)

type AlarmSQLite struct {
	db *sql.DB
}

func NewAlarmSQLite(db *sql.DB) *AlarmSQLite {
	return &AlarmSQLite{db: db}
}

var _ AlarmRepo = (*AlarmSQLite)(nil)

const (
	alarmConfigRowID = 1

	upsertAlarmSQL = `
		INSERT INTO alarm_config (id, recurrence, armed, year, month, day, hour, minute, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			recurrence=excluded.recurrence,
			armed=excluded.armed,
			year=excluded.year,
			month=excluded.month,
			day=excluded.day,
			hour=excluded.hour,
			minute=excluded.minute,
			updated_at=excluded.updated_at
	`

	selectAlarmSQL = `SELECT recurrence, armed, year, month, day, hour, minute FROM alarm_config WHERE id=?`
)

// Save upserts the alarm row. A disarmed config keeps its recurrence and zeroes the target.
func (r *AlarmSQLite) Save(ctx context.Context, cfg models.AlarmConfig) error {
	var t models.AlarmTarget
	if cfg.Target != nil {
		t = *cfg.Target
	}
	_, err := r.db.ExecContext(ctx, upsertAlarmSQL,
		alarmConfigRowID,
		string(cfg.Recurrence),
		cfg.Armed(),
		t.Year, t.Month, t.Day, t.Hour, t.Minute,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("save alarm config: %w", err)
	}
	return nil
}

// Load returns the saved alarm. found is false if the row does not exist.
// A row that fails alarm.Validate is reported as an error wrapping
// alarm.ErrInvalidAlarm.
func (r *AlarmSQLite) Load(ctx context.Context) (models.AlarmConfig, bool, error) {
	var (
		rec   string
		armed bool
		t     models.AlarmTarget
	)
	err := r.db.QueryRowContext(ctx, selectAlarmSQL, alarmConfigRowID).
		Scan(&rec, &armed, &t.Year, &t.Month, &t.Day, &t.Hour, &t.Minute)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.AlarmConfig{}, false, nil
		}
		return models.AlarmConfig{}, false, fmt.Errorf("load alarm config: %w", err)
	}

	cfg := models.AlarmConfig{Recurrence: models.Recurrence(rec)}
	if armed {
		cfg.Target = &t
	}
	if err := alarm.Validate(cfg); err != nil {
		return models.AlarmConfig{}, false, fmt.Errorf("load alarm config: %w", err)
	}
	return cfg, true, nil
}

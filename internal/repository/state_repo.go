package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"deskclock/internal/clock"
	"deskclock/internal/models"
)

type StateSQLite struct {
	db *sql.DB
}

func NewStateSQLite(db *sql.DB) *StateSQLite {
	return &StateSQLite{db: db}
}

const (
	clockStateRowID = 1

	// localTimeLayout stores the wall-clock reading without a zone.
	localTimeLayout = "2006-01-02 15:04:05"

	insertOrUpdateStateSQL = `
		INSERT INTO clock_state (id, local_time, offset_h, temp_c, alarm, alarm_summary, last_sent_minute, errors, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			local_time=excluded.local_time,
			offset_h=excluded.offset_h,
			temp_c=excluded.temp_c,
			alarm=excluded.alarm,
			alarm_summary=excluded.alarm_summary,
			last_sent_minute=excluded.last_sent_minute,
			errors=excluded.errors,
			updated_at=excluded.updated_at
	`

	selectStateSQL = `
		SELECT id, local_time, offset_h, temp_c, alarm, alarm_summary, last_sent_minute, errors, updated_at
		FROM clock_state WHERE id=?
	`
)

// marshalErrorCodes converts the slice to a JSON string.
func marshalErrorCodes(codes []string) (string, error) {
	b, err := json.Marshal(codes)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// unmarshalErrorCodes parses a JSON string into a slice.
func unmarshalErrorCodes(s string) ([]string, error) {
	if s == "" || s == "null" {
		return nil, nil
	}
	var codes []string
	if err := json.Unmarshal([]byte(s), &codes); err != nil {
		return nil, err
	}
	return codes, nil
}

func formatLocal(lt models.LocalTime) string {
	return time.Date(lt.Year, lt.Month, lt.Day, lt.Hour, lt.Minute, lt.Second, 0, time.UTC).Format(localTimeLayout)
}

func parseLocal(s string) (models.LocalTime, error) {
	t, err := time.Parse(localTimeLayout, s)
	if err != nil {
		return models.LocalTime{}, err
	}
	return clock.Localize(t, 0), nil
}

// Save upserts the clock_state row (id always 1).
func (r *StateSQLite) Save(ctx context.Context, state models.ClockState) error {
	errorsJSON, err := marshalErrorCodes(state.ErrorCodes)
	if err != nil {
		return err
	}
	alarmJSON, err := json.Marshal(state.Alarm)
	if err != nil {
		return fmt.Errorf("marshal alarm: %w", err)
	}

	tsUTC := state.UpdatedAt
	if tsUTC.IsZero() {
		tsUTC = time.Now().UTC()
	} else {
		tsUTC = tsUTC.UTC()
	}

	var temp sql.NullFloat64
	if state.TemperatureC != nil {
		temp = sql.NullFloat64{Float64: *state.TemperatureC, Valid: true}
	}
	var lastSent sql.NullInt64
	if state.LastSentMinute != nil {
		lastSent = sql.NullInt64{Int64: int64(*state.LastSentMinute), Valid: true}
	}

	_, err = r.db.ExecContext(ctx, insertOrUpdateStateSQL,
		clockStateRowID,
		formatLocal(state.LocalTime),
		state.OffsetHours,
		temp,
		string(alarmJSON),
		state.AlarmSummary,
		lastSent,
		errorsJSON,
		tsUTC,
	)
	return err
}

// Load fetches the single clock_state row. A zero state (ID 0) means none yet.
func (r *StateSQLite) Load(ctx context.Context) (models.ClockState, error) {
	row := r.db.QueryRowContext(ctx, selectStateSQL, clockStateRowID)

	var (
		s          models.ClockState
		localStr   string
		temp       sql.NullFloat64
		alarmJSON  string
		lastSent   sql.NullInt64
		errorsJSON sql.NullString
	)
	if err := row.Scan(
		&s.ID,
		&localStr,
		&s.OffsetHours,
		&temp,
		&alarmJSON,
		&s.AlarmSummary,
		&lastSent,
		&errorsJSON,
		&s.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ClockState{}, nil
		}
		return models.ClockState{}, err
	}

	lt, err := parseLocal(localStr)
	if err != nil {
		return models.ClockState{}, fmt.Errorf("parse local_time %q: %w", localStr, err)
	}
	s.LocalTime = lt
	if temp.Valid {
		v := temp.Float64
		s.TemperatureC = &v
	}
	if lastSent.Valid {
		m := int(lastSent.Int64)
		s.LastSentMinute = &m
	}
	if err := json.Unmarshal([]byte(alarmJSON), &s.Alarm); err != nil {
		return models.ClockState{}, fmt.Errorf("unmarshal alarm: %w", err)
	}
	codes, err := unmarshalErrorCodes(errorsJSON.String)
	if err != nil {
		return models.ClockState{}, err
	}
	s.ErrorCodes = codes
	s.UpdatedAt = s.UpdatedAt.UTC()

	return s, nil
}

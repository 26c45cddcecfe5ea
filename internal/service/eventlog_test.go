package service

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"deskclock/internal/models"
	"deskclock/internal/repository"
)

// fakeEventRepo records appended events and the last list query.
type fakeEventRepo struct {
	events    []models.ClockEvent
	err       error
	appendErr error

	appended []models.ClockEvent
	query    repository.EventQuery
	calls    int
}

func (f *fakeEventRepo) List(ctx context.Context, q repository.EventQuery) ([]models.ClockEvent, error) {
	f.calls++
	f.query = q
	return f.events, f.err
}

func (f *fakeEventRepo) Append(ctx context.Context, e models.ClockEvent) error {
	f.appended = append(f.appended, e)
	return f.appendErr
}

func intp(v int) *int { return &v }

func TestLogFilter_Query(t *testing.T) {
	t.Parallel()

	from := time.Date(2025, 10, 26, 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)

	tests := []struct {
		name string
		in   LogFilter
		want repository.EventQuery
	}{
		{
			name: "empty",
			in:   LogFilter{},
			want: repository.EventQuery{},
		},
		{
			name: "types are normalized",
			in:   LogFilter{From: from, To: to, Types: []string{" alarm_fired", "", "Alarm_Disarmed "}},
			want: repository.EventQuery{From: from, To: to, Types: []string{models.EventAlarmFired, models.EventAlarmDisarmed}},
		},
		{
			name: "stage implies tick errors",
			in:   LogFilter{Stage: " Network "},
			want: repository.EventQuery{Types: []string{models.EventTickError}, Stage: StageNetwork},
		},
		{
			name: "minute implies telemetry",
			in:   LogFilter{Minute: intp(0)},
			want: repository.EventQuery{
				Types:  []string{models.EventTelemetrySent, models.EventTelemetryFailed},
				Minute: intp(0),
			},
		},
		{
			name: "explicit types win over implied ones",
			in:   LogFilter{Types: []string{models.EventTelemetryFailed}, Minute: intp(59)},
			want: repository.EventQuery{Types: []string{models.EventTelemetryFailed}, Minute: intp(59)},
		},
		{
			name: "recurrence alias",
			in:   LogFilter{Recurrence: "once"},
			want: repository.EventQuery{Recurrence: models.RecurrenceOneShot},
		},
		{
			name: "limit is capped",
			in:   LogFilter{Limit: 5000},
			want: repository.EventQuery{Limit: maxEventLimit},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := tt.in.query()
			if err != nil {
				t.Fatalf("query: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("query = %+v\nwant    %+v", got, tt.want)
			}
		})
	}
}

func TestLogFilter_Query_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   LogFilter
	}{
		{"from after to", LogFilter{From: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), To: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}},
		{"unknown type", LogFilter{Types: []string{"LIGHTS_ON"}}},
		{"unknown stage", LogFilter{Stage: "heater"}},
		{"unknown recurrence", LogFilter{Recurrence: "weekly"}},
		{"minute too large", LogFilter{Minute: intp(60)}},
		{"negative minute", LogFilter{Minute: intp(-1)}},
		{"negative limit", LogFilter{Limit: -1}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := tt.in.query(); !errors.Is(err, ErrInvalidFilter) {
				t.Fatalf("err = %v, want ErrInvalidFilter", err)
			}
		})
	}
}

func TestEventLogService_List(t *testing.T) {
	t.Parallel()

	frepo := &fakeEventRepo{events: []models.ClockEvent{{EventID: "1", Type: models.EventTickError}}}
	svc := NewEventLogService(frepo)

	out, err := svc.List(context.Background(), LogFilter{Stage: "sensor", Limit: 10})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(out) != 1 || out[0].EventID != "1" {
		t.Fatalf("events = %+v", out)
	}
	if frepo.query.Stage != StageSensor || frepo.query.Limit != 10 {
		t.Fatalf("repo query = %+v", frepo.query)
	}
}

func TestEventLogService_List_InvalidFilterSkipsRepo(t *testing.T) {
	t.Parallel()

	frepo := &fakeEventRepo{}
	_, err := NewEventLogService(frepo).List(context.Background(), LogFilter{Types: []string{"nope"}})
	if !errors.Is(err, ErrInvalidFilter) {
		t.Fatalf("err = %v", err)
	}
	if frepo.calls != 0 {
		t.Fatalf("repo called %d times", frepo.calls)
	}
}

func TestEventLogService_List_RepoError(t *testing.T) {
	t.Parallel()

	frepo := &fakeEventRepo{err: errors.New("db down")}
	_, err := NewEventLogService(frepo).List(context.Background(), LogFilter{})
	if !errors.Is(err, frepo.err) {
		t.Fatalf("expected repo error to propagate; got %v", err)
	}
}

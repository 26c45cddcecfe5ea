package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"deskclock/internal/alarm"
	"deskclock/internal/models"
)

type reconfigStub struct {
	got []models.AlarmConfig
}

func (r *reconfigStub) Configure(cfg models.AlarmConfig) {
	r.got = append(r.got, cfg)
}

func TestAlarmService_Get(t *testing.T) {
	fallback := daily(7, 30)

	t.Run("fallback when nothing saved", func(t *testing.T) {
		svc := NewAlarmService(&alarmRepoStub{}, &fakeEventRepo{}, nil, fallback)
		got, err := svc.Get(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Summary() != "Alarm: 07:30 daily" {
			t.Fatalf("got %q", got.Summary())
		}
	})

	t.Run("saved overrides fallback", func(t *testing.T) {
		repo := &alarmRepoStub{cfg: models.AlarmConfig{Recurrence: models.RecurrenceOneShot}, found: true}
		svc := NewAlarmService(repo, &fakeEventRepo{}, nil, fallback)
		got, err := svc.Get(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Armed() || got.Recurrence != models.RecurrenceOneShot {
			t.Fatalf("got %+v", got)
		}
	})

	t.Run("invalid saved row falls back", func(t *testing.T) {
		repo := &alarmRepoStub{loadErr: fmt.Errorf("load alarm config: %w", alarm.ErrInvalidAlarm)}
		svc := NewAlarmService(repo, &fakeEventRepo{}, nil, fallback)
		got, err := svc.Get(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Summary() != "Alarm: 07:30 daily" {
			t.Fatalf("got %q", got.Summary())
		}
	})

	t.Run("repo error", func(t *testing.T) {
		repo := &alarmRepoStub{loadErr: errors.New("locked")}
		svc := NewAlarmService(repo, &fakeEventRepo{}, nil, fallback)
		if _, err := svc.Get(context.Background()); err == nil {
			t.Fatalf("expected error")
		}
	})
}

func TestAlarmService_Set(t *testing.T) {
	repo := &alarmRepoStub{}
	events := &fakeEventRepo{}
	loop := &reconfigStub{}
	svc := NewAlarmService(repo, events, loop, models.AlarmConfig{Recurrence: models.RecurrenceDaily})

	cfg, err := svc.Set(context.Background(), AlarmParams{Time: "12:12", Date: "2025-06-24", Recurrence: "one_shot"})
	if err != nil {
		t.Fatalf("Set: %v", err)
	}
	want := models.AlarmTarget{Year: 2025, Month: 6, Day: 24, Hour: 12, Minute: 12}
	if cfg.Target == nil || *cfg.Target != want || cfg.Recurrence != models.RecurrenceOneShot {
		t.Fatalf("cfg = %+v", cfg)
	}
	if len(repo.saved) != 1 || len(loop.got) != 1 {
		t.Fatalf("expected save and reconfigure, got %d/%d", len(repo.saved), len(loop.got))
	}
	if len(events.appended) != 1 || events.appended[0].Type != models.EventAlarmConfigured {
		t.Fatalf("events = %+v", events.appended)
	}
}

func TestAlarmService_Set_Invalid(t *testing.T) {
	repo := &alarmRepoStub{}
	loop := &reconfigStub{}
	svc := NewAlarmService(repo, &fakeEventRepo{}, loop, models.AlarmConfig{Recurrence: models.RecurrenceDaily})

	cases := []AlarmParams{
		{Time: "25:00"},
		{Time: "07:30", Recurrence: "weekly"},
		{Time: "07:30", Recurrence: "ONE_SHOT"},
		{Time: "07:30", Date: "2025-13-01", Recurrence: "ONE_SHOT"},
	}
	for _, p := range cases {
		if _, err := svc.Set(context.Background(), p); !errors.Is(err, alarm.ErrInvalidAlarm) {
			t.Fatalf("Set(%+v) err = %v, want ErrInvalidAlarm", p, err)
		}
	}
	if len(repo.saved) != 0 || len(loop.got) != 0 {
		t.Fatalf("invalid input must not reach repo or loop")
	}
}

func TestAlarmService_Set_SaveErrorSkipsLoop(t *testing.T) {
	repo := &alarmRepoStub{saveErr: errors.New("disk full")}
	loop := &reconfigStub{}
	svc := NewAlarmService(repo, &fakeEventRepo{}, loop, models.AlarmConfig{Recurrence: models.RecurrenceDaily})

	if _, err := svc.Set(context.Background(), AlarmParams{Time: "06:00"}); err == nil {
		t.Fatalf("expected save error")
	}
	if len(loop.got) != 0 {
		t.Fatalf("loop reconfigured despite save error")
	}
}

func TestAlarmService_Clear_KeepsRecurrence(t *testing.T) {
	repo := &alarmRepoStub{cfg: daily(6, 45), found: true}
	loop := &reconfigStub{}
	svc := NewAlarmService(repo, &fakeEventRepo{}, loop, models.AlarmConfig{})

	if err := svc.Clear(context.Background()); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if len(loop.got) != 1 || loop.got[0].Armed() || loop.got[0].Recurrence != models.RecurrenceDaily {
		t.Fatalf("loop got %+v", loop.got)
	}
}

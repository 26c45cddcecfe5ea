package alarm

import (
	"errors"
	"testing"

	"deskclock/internal/models"
)

func TestParseConfig(t *testing.T) {
	cases := []struct {
		name       string
		clock      string
		date       string
		recurrence string
		want       models.AlarmConfig
		wantErr    bool
	}{
		{
			name:       "daily ignores date",
			clock:      "07:30",
			date:       "2025-06-24",
			recurrence: "daily",
			want:       models.AlarmConfig{Target: &models.AlarmTarget{Hour: 7, Minute: 30}, Recurrence: models.RecurrenceDaily},
		},
		{
			name:       "one shot",
			clock:      "12:12",
			date:       "2025-06-24",
			recurrence: "once",
			want: models.AlarmConfig{
				Target:     &models.AlarmTarget{Year: 2025, Month: 6, Day: 24, Hour: 12, Minute: 12},
				Recurrence: models.RecurrenceOneShot,
			},
		},
		{
			name:       "empty time disarms",
			clock:      " ",
			recurrence: "ONE_SHOT",
			want:       models.AlarmConfig{Recurrence: models.RecurrenceOneShot},
		},
		{name: "default recurrence is daily", clock: "00:00", want: models.AlarmConfig{Target: &models.AlarmTarget{}, Recurrence: models.RecurrenceDaily}},
		{name: "bad time", clock: "25:00", wantErr: true},
		{name: "bad format", clock: "7h30", wantErr: true},
		{name: "one shot without date", clock: "07:30", recurrence: "once", wantErr: true},
		{name: "one shot bad date", clock: "07:30", date: "2025-02-30", recurrence: "once", wantErr: true},
		{name: "unknown recurrence", clock: "07:30", recurrence: "weekly", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseConfig(tc.clock, tc.date, tc.recurrence)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidAlarm) {
					t.Fatalf("expected ErrInvalidAlarm, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Recurrence != tc.want.Recurrence {
				t.Fatalf("recurrence: got %q, want %q", got.Recurrence, tc.want.Recurrence)
			}
			if (got.Target == nil) != (tc.want.Target == nil) {
				t.Fatalf("target: got %+v, want %+v", got.Target, tc.want.Target)
			}
			if got.Target != nil && *got.Target != *tc.want.Target {
				t.Fatalf("target: got %+v, want %+v", *got.Target, *tc.want.Target)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	ok := []models.AlarmConfig{
		{Recurrence: models.RecurrenceDaily},
		{Target: &models.AlarmTarget{Hour: 23, Minute: 59}, Recurrence: models.RecurrenceDaily},
		{Target: &models.AlarmTarget{Year: 2024, Month: 2, Day: 29, Hour: 6}, Recurrence: models.RecurrenceOneShot},
	}
	for i, cfg := range ok {
		if err := Validate(cfg); err != nil {
			t.Errorf("case %d: unexpected error %v", i, err)
		}
	}

	bad := []models.AlarmConfig{
		{Recurrence: "WEEKLY"},
		{Target: &models.AlarmTarget{Hour: 24}, Recurrence: models.RecurrenceDaily},
		{Target: &models.AlarmTarget{Minute: -1}, Recurrence: models.RecurrenceDaily},
		{Target: &models.AlarmTarget{Year: 2025, Month: 13, Day: 1}, Recurrence: models.RecurrenceOneShot},
		{Target: &models.AlarmTarget{Year: 2025, Month: 2, Day: 29}, Recurrence: models.RecurrenceOneShot},
	}
	for i, cfg := range bad {
		if err := Validate(cfg); !errors.Is(err, ErrInvalidAlarm) {
			t.Errorf("case %d: expected ErrInvalidAlarm, got %v", i, err)
		}
	}
}

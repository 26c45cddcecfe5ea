package clock

import (
	"testing"
	"time"

	"deskclock/internal/models"
)

func TestLocalize(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		instant time.Time
		offset  int
		want    models.LocalTime
	}{
		{
			name:    "winter offset",
			instant: time.Date(2025, 1, 15, 6, 30, 15, 0, time.UTC),
			offset:  1,
			want:    models.LocalTime{Year: 2025, Month: time.January, Day: 15, Hour: 7, Minute: 30, Second: 15, Weekday: time.Wednesday},
		},
		{
			name:    "summer offset crosses midnight",
			instant: time.Date(2025, 6, 23, 22, 59, 59, 0, time.UTC),
			offset:  2,
			want:    models.LocalTime{Year: 2025, Month: time.June, Day: 24, Hour: 0, Minute: 59, Second: 59, Weekday: time.Tuesday},
		},
		{
			name:    "new year rollover",
			instant: time.Date(2025, 12, 31, 23, 0, 0, 0, time.UTC),
			offset:  1,
			want:    models.LocalTime{Year: 2026, Month: time.January, Day: 1, Hour: 0, Minute: 0, Second: 0, Weekday: time.Thursday},
		},
		{
			name:    "leap day",
			instant: time.Date(2024, 2, 28, 23, 15, 0, 0, time.UTC),
			offset:  1,
			want:    models.LocalTime{Year: 2024, Month: time.February, Day: 29, Hour: 0, Minute: 15, Second: 0, Weekday: time.Thursday},
		},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Localize(tc.instant, tc.offset); got != tc.want {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestLocalTimeProvider_DSTTransitionWeek(t *testing.T) {
	t.Parallel()

	at := time.Date(2025, 10, 25, 23, 50, 0, 0, time.UTC)
	p := NewLocalTimeProvider(FixedSource{At: at}, SwedishDST{})

	r := p.Read()
	if r.Offset != OffsetSummer {
		t.Fatalf("offset: got %d, want %d", r.Offset, OffsetSummer)
	}
	if !r.Instant.Equal(at) {
		t.Fatalf("instant: got %v, want %v", r.Instant, at)
	}
	want := models.LocalTime{Year: 2025, Month: time.October, Day: 26, Hour: 1, Minute: 50, Second: 0, Weekday: time.Sunday}
	if r.Local != want {
		t.Fatalf("local: got %+v, want %+v", r.Local, want)
	}

	// Ten minutes later the UTC date is the transition day and the offset drops.
	p = NewLocalTimeProvider(FixedSource{At: at.Add(10 * time.Minute)}, SwedishDST{})
	got := p.NowLocal()
	if got.Hour != 1 || got.Minute != 0 || got.Day != 26 {
		t.Fatalf("after switch: got %s, want 2025-10-26 01:00:00", got)
	}
}

func TestStepSource_Advances(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 6, 24, 12, 11, 50, 0, time.UTC)
	s := NewStepSource(start, 10*time.Second)
	for i := 0; i < 3; i++ {
		want := start.Add(time.Duration(i) * 10 * time.Second)
		if got := s.Now(); !got.Equal(want) {
			t.Fatalf("read %d: got %v, want %v", i, got, want)
		}
	}
}

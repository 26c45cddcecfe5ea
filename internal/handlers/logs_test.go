package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"deskclock/internal/models"
	"deskclock/internal/service"
)

func intp(v int) *int { return &v }

func TestLogsHandler_List(t *testing.T) {
	now := time.Date(2025, 10, 26, 0, 30, 0, 0, time.UTC)
	events := []models.ClockEvent{
		{EventID: "e1", OccurredAt: now, Type: models.EventAlarmFired, Description: "Alarm fired at 01:30",
			Meta: &models.EventMeta{LocalTime: "2025-10-26 01:30:00", Recurrence: models.RecurrenceDaily}},
		{EventID: "e2", OccurredAt: now.Add(-time.Hour), Type: models.EventAlarmFired, Description: "Alarm fired at 01:30",
			Meta: &models.EventMeta{LocalTime: "2025-10-26 01:30:00", Recurrence: models.RecurrenceDaily}},
	}
	logs := &mockEventLog{resp: events}
	r := newTestRouter(&service.Service{EventLog: logs})

	// Reads are public.
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/logs?type=alarm_fired&recurrence=daily&to=2025-10-26", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("logs status=%d, body=%s", w.Code, w.Body.String())
	}
	var out struct {
		Count  int                 `json:"count"`
		Events []models.ClockEvent `json:"events"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Count != 2 || len(out.Events) != 2 {
		t.Fatalf("unexpected response: %+v", out)
	}
	if out.Events[0].Meta == nil || out.Events[0].Meta.Recurrence != models.RecurrenceDaily {
		t.Fatalf("meta not returned: %+v", out.Events[0])
	}
	if !reflect.DeepEqual(logs.filter.Types, []string{"alarm_fired"}) || logs.filter.Recurrence != "daily" {
		t.Fatalf("filter = %+v", logs.filter)
	}
	wantTo := time.Date(2025, 10, 26, 23, 59, 59, 0, time.UTC)
	if !logs.filter.To.Equal(wantTo) {
		t.Fatalf("to = %v, want %v", logs.filter.To, wantTo)
	}
}

func TestParseLogFilter(t *testing.T) {
	cases := []struct {
		name  string
		query string
		want  service.LogFilter
	}{
		{"empty", "", service.LogFilter{}},
		{
			"rfc3339 range",
			"from=2025-10-26T01:00:00%2B02:00&to=2025-10-26T01:59:59Z",
			service.LogFilter{
				From: time.Date(2025, 10, 25, 23, 0, 0, 0, time.UTC),
				To:   time.Date(2025, 10, 26, 1, 59, 59, 0, time.UTC),
			},
		},
		{
			"datetime to is exact",
			"to=2025-10-26%2000:30:00",
			service.LogFilter{To: time.Date(2025, 10, 26, 0, 30, 0, 0, time.UTC)},
		},
		{
			"types are split and trimmed",
			"type=ALARM_FIRED,%20alarm_disarmed,,",
			service.LogFilter{Types: []string{"ALARM_FIRED", "alarm_disarmed"}},
		},
		{
			"stage minute limit",
			"stage=%20network%20&minute=0&limit=5",
			service.LogFilter{Stage: "network", Minute: intp(0), Limit: 5},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			logs := &mockEventLog{}
			r := newTestRouter(&service.Service{EventLog: logs})

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/logs?"+tc.query, nil))
			if w.Code != http.StatusOK {
				t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
			}
			if !reflect.DeepEqual(logs.filter, tc.want) {
				t.Fatalf("filter = %+v, want %+v", logs.filter, tc.want)
			}
		})
	}
}

func TestLogsHandler_Errors(t *testing.T) {
	cases := []struct {
		name    string
		query   string
		listErr error
		want    int
		listed  bool
	}{
		{"bad from", "from=notatime", nil, http.StatusBadRequest, false},
		{"bad to", "to=26.10.2025", nil, http.StatusBadRequest, false},
		{"minute not a number", "minute=half", nil, http.StatusBadRequest, false},
		{"limit not a number", "limit=all", nil, http.StatusBadRequest, false},
		{"rejected by service", "type=BOGUS", fmt.Errorf("%w: unknown event type %q", service.ErrInvalidFilter, "BOGUS"), http.StatusBadRequest, true},
		{"storage failure", "", errors.New("database is locked"), http.StatusInternalServerError, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			logs := &mockEventLog{err: tc.listErr}
			r := newTestRouter(&service.Service{EventLog: logs})

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/logs?"+tc.query, nil))
			if w.Code != tc.want {
				t.Fatalf("status=%d, want %d (body=%s)", w.Code, tc.want, w.Body.String())
			}
			if got := logs.calls > 0; got != tc.listed {
				t.Fatalf("service called = %v, want %v", got, tc.listed)
			}
		})
	}
}

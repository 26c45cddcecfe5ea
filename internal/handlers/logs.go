package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"deskclock/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errFromInvalid   = "invalid 'from' time; use RFC3339, 'YYYY-MM-DD HH:MM:SS' or YYYY-MM-DD"
	errToInvalid     = "invalid 'to' time; use RFC3339, 'YYYY-MM-DD HH:MM:SS' or YYYY-MM-DD"
	errMinuteInvalid = "invalid 'minute'; use 0-59"
	errLimitInvalid  = "invalid 'limit'; use a non-negative integer"
	errGetLogs       = "failed to load logs"

	layoutDateTime = "2006-01-02 15:04:05"
	layoutDate     = "2006-01-02"
)

// @Summary      List clock events
// @Description  Newest first. Times are UTC. A date-only 'to' covers the whole day. 'stage' alone implies TICK_ERROR and 'minute' alone implies the telemetry events.
// @Tags         logs
// @Produce      json
// @Param        from        query  string  false  "Start of range (RFC3339, 'YYYY-MM-DD HH:MM:SS' or 'YYYY-MM-DD')"  example(2025-10-26)
// @Param        to          query  string  false  "End of range, inclusive"  example(2025-10-26)
// @Param        type        query  string  false  "Comma-separated event types"  example(ALARM_FIRED,ALARM_DISARMED)
// @Param        stage       query  string  false  "Failed tick stage"  Enums(sensor,display,network,tone,persist)
// @Param        recurrence  query  string  false  "Recurrence of alarm events"  Enums(DAILY,ONE_SHOT)
// @Param        minute      query  int     false  "Minute of a telemetry event"  minimum(0) maximum(59)
// @Param        limit       query  int     false  "Maximum number of events"  default(100) maximum(1000)
// @Success      200  {object}  map[string]interface{}  "count, events"
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/logs [get]
func (h *Handler) getLogs(c *gin.Context) {
	f, msg := parseLogFilter(c)
	if msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	events, err := h.services.EventLog.List(c.Request.Context(), f)
	if err != nil {
		if errors.Is(err, service.ErrInvalidFilter) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errGetLogs, "logs_list_failed", err,
			"from", f.From, "to", f.To, "types", f.Types, "stage", f.Stage)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":  len(events),
		"events": events,
	})
}

// parseLogFilter reads the query string. Domain checks on the values are left
// to the event log service; only syntax is checked here.
func parseLogFilter(c *gin.Context) (service.LogFilter, string) {
	var f service.LogFilter

	if qs := c.Query("from"); qs != "" {
		t, err := parseQueryTime(qs)
		if err != nil {
			return f, errFromInvalid
		}
		f.From = t
	}
	if qs := c.Query("to"); qs != "" {
		t, err := parseQueryTime(qs)
		if err != nil {
			return f, errToInvalid
		}
		// Stored times have second precision.
		if !strings.ContainsAny(qs, "T ") {
			t = t.Add(24*time.Hour - time.Second)
		}
		f.To = t
	}
	for _, typ := range strings.Split(c.Query("type"), ",") {
		if typ = strings.TrimSpace(typ); typ != "" {
			f.Types = append(f.Types, typ)
		}
	}
	f.Stage = strings.TrimSpace(c.Query("stage"))
	f.Recurrence = strings.TrimSpace(c.Query("recurrence"))
	if qs := c.Query("minute"); qs != "" {
		m, err := strconv.Atoi(qs)
		if err != nil {
			return f, errMinuteInvalid
		}
		f.Minute = &m
	}
	if qs := c.Query("limit"); qs != "" {
		n, err := strconv.Atoi(qs)
		if err != nil {
			return f, errLimitInvalid
		}
		f.Limit = n
	}
	return f, ""
}

func parseQueryTime(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, layoutDateTime, layoutDate} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time format %q", s)
}

package handlers

import (
	"context"
	"net/http"
	"slices"
	"time"

	"deskclock/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	wsWriteWait   = 10 * time.Second
	wsPongWait    = 60 * time.Second
	wsPingPeriod  = (wsPongWait * 9) / 10
	wsReadLimit   = 1 << 10
	everyTick     = "tick"
	everyMinute   = "minute"
	msgTypeState  = "state"
	msgTypeError  = "error"
	errBadEvery   = "invalid 'every'; use tick or minute"
	errNoSnapshot = "no clock snapshot available"
)

type wsMessage struct {
	Type  string             `json:"type"`
	State *models.ClockState `json:"state,omitempty"`
	Error string             `json:"error,omitempty"`
}

// newUpgrader accepts same-origin requests only unless origins are listed.
// Clients that send no Origin header (not browsers) are always accepted.
func newUpgrader(origins []string) websocket.Upgrader {
	u := websocket.Upgrader{ReadBufferSize: 1024, WriteBufferSize: 4096}
	if len(origins) == 0 {
		return u
	}
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[o] = struct{}{}
	}
	u.CheckOrigin = func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := allowed[origin]
		return ok
	}
	return u
}

// @Summary      Stream clock state
// @Description  WebSocket. Sends the current snapshot, then one message per snapshot the clock loop saves. With every=minute only snapshots whose displayed minute, alarm or failed stages differ from the last one sent are pushed.
// @Tags         clock
// @Param        every  query  string  false  "Push cadence"  Enums(tick,minute)  default(tick)
// @Success      101
// @Failure      400  {object}  map[string]string
// @Router       /ws [get]
func (h *Handler) streamState(c *gin.Context) {
	every := c.DefaultQuery("every", everyTick)
	if every != everyTick && every != everyMinute {
		c.JSON(http.StatusBadRequest, gin.H{"error": errBadEvery})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		h.log.Infow("ws_upgrade_failed", "origin", c.GetHeader("Origin"), "err", err)
		return
	}
	defer func() { _ = conn.Close() }()

	ctx := c.Request.Context()
	closed := make(chan struct{})
	go h.drainClient(conn, closed)

	// Take the change channel before reading the first snapshot so a publish
	// in between is not lost.
	var changed <-chan struct{}
	if h.services.Snapshots != nil {
		changed = h.services.Snapshots.Changed()
	}
	last, version, err := h.currentState(ctx)
	if err != nil {
		h.log.Errorw("ws_initial_state_failed", "err", err)
		_ = writeWS(conn, wsMessage{Type: msgTypeError, Error: errNoSnapshot})
		return
	}
	if err := writeWS(conn, wsMessage{Type: msgTypeState, State: &last}); err != nil {
		h.log.Infow("ws_write_failed", "err", err)
		return
	}

	ping := time.NewTicker(wsPingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-closed:
			return
		case <-ctx.Done():
			return
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait)); err != nil {
				h.log.Infow("ws_ping_failed", "err", err)
				return
			}
		case <-changed:
			changed = h.services.Snapshots.Changed()
			st, v := h.services.Snapshots.Latest()
			if v == version {
				continue
			}
			version = v
			if every == everyMinute && sameDisplay(last, st) {
				continue
			}
			last = st
			if err := writeWS(conn, wsMessage{Type: msgTypeState, State: &st}); err != nil {
				h.log.Infow("ws_write_failed", "err", err)
				return
			}
		}
	}
}

// currentState prefers the snapshot the running loop published last and
// falls back to the persisted one before the first tick.
func (h *Handler) currentState(ctx context.Context) (models.ClockState, uint64, error) {
	if h.services.Snapshots != nil {
		if st, v := h.services.Snapshots.Latest(); v > 0 {
			return st, v, nil
		}
	}
	st, err := h.services.Monitoring.GetState(ctx)
	return st, 0, err
}

// drainClient reads until the peer goes away. Control frames are handled
// inside NextReader; data frames are discarded.
func (h *Handler) drainClient(conn *websocket.Conn, closed chan<- struct{}) {
	defer close(closed)
	conn.SetReadLimit(wsReadLimit)
	_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})
	for {
		if _, _, err := conn.NextReader(); err != nil {
			h.log.Debugw("ws_client_gone", "err", err)
			return
		}
	}
}

func writeWS(conn *websocket.Conn, msg wsMessage) error {
	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	return conn.WriteJSON(msg)
}

func sameDisplay(a, b models.ClockState) bool {
	return a.LocalTime.Date() == b.LocalTime.Date() &&
		a.LocalTime.MinuteOfDay() == b.LocalTime.MinuteOfDay() &&
		a.AlarmSummary == b.AlarmSummary &&
		slices.Equal(a.ErrorCodes, b.ErrorCodes)
}

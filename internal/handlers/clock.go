package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK         = "ok"
	statusAlarmSet   = "alarm_set"
	statusAlarmClear = "alarm_cleared"

	errGetState        = "failed to load state"
	errGetAlarm        = "failed to load alarm"
	errSaveAlarm       = "failed to save alarm"
	errInvalidBodyPref = "invalid body: "
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Get clock state
// @Description  Last snapshot written by the clock loop: local time, UTC offset, temperature, alarm and failed stages.
// @Tags         clock
// @Produce      json
// @Success      200  {object}  models.ClockState
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/clock/state [get]
func (h *Handler) getState(c *gin.Context) {
	ctx := c.Request.Context()
	st, err := h.services.Monitoring.GetState(ctx)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetState, "clock_get_state_failed", err)
		return
	}
	c.JSON(http.StatusOK, st)
}

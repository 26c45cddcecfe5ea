package handlers

import (
	"errors"
	"net/http"

	"deskclock/internal/alarm"
	"deskclock/internal/models"
	"deskclock/internal/service"

	"github.com/gin-gonic/gin"
)

// SetAlarmRequest is the payload of PUT /api/v1/alarm.
type SetAlarmRequest struct {
	// Local time HH:MM; empty disarms the alarm
	Time string `json:"time" example:"07:30"`
	// Local date YYYY-MM-DD, required for ONE_SHOT
	Date string `json:"date,omitempty" example:"2025-06-24"`
	// DAILY or ONE_SHOT
	Recurrence string `json:"recurrence,omitempty" example:"DAILY"`
}

type alarmResponse struct {
	Status  string             `json:"status,omitempty"`
	Alarm   models.AlarmConfig `json:"alarm"`
	Summary string             `json:"summary"`
}

// @Summary      Get alarm
// @Tags         alarm
// @Produce      json
// @Success      200  {object}  alarmResponse
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/alarm [get]
func (h *Handler) getAlarm(c *gin.Context) {
	cfg, err := h.services.Alarm.Get(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetAlarm, "alarm_get_failed", err)
		return
	}
	c.JSON(http.StatusOK, alarmResponse{Alarm: cfg, Summary: cfg.Summary()})
}

// @Summary      Set alarm
// @Description  Replaces the alarm. The running clock picks it up on its next tick. Needs an operator token.
// @Tags         alarm
// @Accept       json
// @Produce      json
// @Param        body  body   SetAlarmRequest  true  "Alarm payload"
// @Success      200   {object}  alarmResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/alarm [put]
// @Security     BearerAuth
func (h *Handler) setAlarm(c *gin.Context) {
	var req SetAlarmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	cfg, err := h.services.Alarm.Set(c.Request.Context(), service.AlarmParams{
		Time:       req.Time,
		Date:       req.Date,
		Recurrence: req.Recurrence,
	})
	if err != nil {
		if errors.Is(err, alarm.ErrInvalidAlarm) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errSaveAlarm, "alarm_set_failed", err, "time", req.Time)
		return
	}
	c.JSON(http.StatusOK, alarmResponse{Status: statusAlarmSet, Alarm: cfg, Summary: cfg.Summary()})
}

// @Summary      Clear alarm
// @Tags         alarm
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/alarm [delete]
// @Security     BearerAuth
func (h *Handler) clearAlarm(c *gin.Context) {
	if err := h.services.Alarm.Clear(c.Request.Context()); err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errSaveAlarm, "alarm_clear_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusAlarmClear})
}

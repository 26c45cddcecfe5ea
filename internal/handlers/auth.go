package handlers

import (
	"errors"
	"net/http"
	"time"

	"deskclock/internal/service"

	"github.com/gin-gonic/gin"
)

// TokenRequest is the payload of POST /auth/token.
type TokenRequest struct {
	Password string `json:"password" binding:"required"`
}

type tokenResponse struct {
	Token     string    `json:"token"`
	Scope     string    `json:"scope"`
	ExpiresAt time.Time `json:"expires_at"`
}

// @Summary      Get an operator token
// @Description  Trades the operator password for a bearer token that may change the alarm.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      TokenRequest  true  "Operator password"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      503   {object}  map[string]string  "no operator password configured"
// @Router       /auth/token [post]
func (h *Handler) issueToken(c *gin.Context) {
	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}

	token, expires, err := h.services.Operator.IssueToken(req.Password)
	switch {
	case errors.Is(err, service.ErrWritesLocked):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidPassword):
		h.log.Infow("auth_bad_password", "remote", c.ClientIP())
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid password"})
	case err != nil:
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to issue token", "auth_issue_failed", err)
	default:
		c.JSON(http.StatusOK, tokenResponse{Token: token, Scope: service.ScopeAlarmWrite, ExpiresAt: expires.UTC()})
	}
}

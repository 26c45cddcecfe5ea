package handlers

import (
	"errors"
	"net/http"
	"strings"

	"deskclock/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	ctxScopeKey   = "scope"
	bearerRealm   = `Bearer realm="deskclock"`
	invalidBearer = `Bearer realm="deskclock", error="invalid_token"`
)

// requireScope lets the request through only with a bearer token granting scope.
// A missing or bad token is 401; a valid token without the scope, or a clock
// without an operator password, is 403.
func (h *Handler) requireScope(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.Header("WWW-Authenticate", bearerRealm)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "bearer token required"})
			return
		}

		err := h.services.Operator.Authorize(token, scope)
		switch {
		case err == nil:
			c.Set(ctxScopeKey, scope)
			c.Next()
		case errors.Is(err, service.ErrWritesLocked), errors.Is(err, service.ErrMissingScope):
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			h.log.Infow("auth_token_rejected", "scope", scope, "path", c.FullPath(), "err", err)
			c.Header("WWW-Authenticate", invalidBearer)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
		}
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

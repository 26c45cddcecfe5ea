package handlers

import (
	"deskclock/internal/logger"
	"deskclock/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Options tune the HTTP layer.
type Options struct {
	// AllowedOrigins are the Origin values accepted on /ws.
	// Empty means same-origin only.
	AllowedOrigins []string
}

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	upgrader websocket.Upgrader
}

// NewHandler constructs a new HTTP handler with dependencies. A nil log
// discards output.
func NewHandler(services *service.Service, log *logger.Logger, opts Options) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{
		services: services,
		log:      log,
		upgrader: newUpgrader(opts.AllowedOrigins),
	}
}

// InitRoutes builds and returns the Gin router with all routes registered.
// Reads are open; only alarm changes need an operator token.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", h.health)

	router.POST("/auth/token", h.issueToken)

	// Live clock snapshots on the same port
	router.GET("/ws", h.streamState)

	api := router.Group("/api/v1")
	{
		api.GET("/clock/state", h.getState)
		api.GET("/logs", h.getLogs)

		alarm := api.Group("/alarm")
		alarm.GET("", h.getAlarm)
		// Body example: {"time":"07:30","recurrence":"DAILY"}
		alarm.PUT("", h.requireScope(service.ScopeAlarmWrite), h.setAlarm)
		alarm.DELETE("", h.requireScope(service.ScopeAlarmWrite), h.clearAlarm)
	}

	return router
}

package notification

import (
	"github.com/Alexmarques11/Backstage/pkg/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// NewRouter creates and configures the Gin router.
func NewRouter(h *Handler) *gin.Engine {
	r := gin.Default()

	// Middleware
	r.Use(middleware.CorrelationID())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/stats", h.Stats)

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Notification routes
	r.GET("/users/:userId/notifications", h.ListNotifications)
	r.GET("/users/:userId/notifications/unread-count", h.UnreadCount)
	r.PATCH("/users/:userId/notifications/read-all", h.MarkAllRead)
	r.DELETE("/users/:userId/notifications/read", h.ClearRead)
	r.POST("/notifications", h.CreateNotification)
	r.PATCH("/notifications/:id/read", h.MarkRead)
	r.DELETE("/notifications/:id", h.DeleteNotification)

	return r
}

package notification

import (
	"log"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/Alexmarques11/Backstage/pkg/middleware"
	"github.com/Alexmarques11/Backstage/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler serves the notification HTTP API.
type Handler struct {
	Store *Store
}

// NewHandler creates a new notification HTTP handler.
func NewHandler(store *Store) *Handler {
	return &Handler{Store: store}
}

// CreateNotificationRequest is the request body for creating a notification.
type CreateNotificationRequest struct {
	UserID      int    `json:"user_id" binding:"required" example:"42"`
	Type        string `json:"type" binding:"required" example:"system"`
	Title       string `json:"title" binding:"required" example:"Welcome"`
	Message     string `json:"message" binding:"required" example:"Thanks for signing up"`
	RelatedID   *int   `json:"related_id,omitempty"`
	RelatedType string `json:"related_type,omitempty"`
}

// ListNotifications godoc
// @Summary      List a user's notifications
// @Description  Returns the user's notifications, newest first
// @Tags         notifications
// @Produce      json
// @Param        userId       path   int     true   "User ID"
// @Param        unread_only  query  string  false  "Return only unread notifications"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]string
// @Router       /users/{userId}/notifications [get]
func (h *Handler) ListNotifications(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	unreadOnly := c.Query("unread_only") == "true"
	notifications := h.Store.ListForUser(userID, unreadOnly)

	c.JSON(http.StatusOK, gin.H{
		"count":         len(notifications),
		"notifications": notifications,
	})
}

// UnreadCount godoc
// @Summary      Count a user's unread notifications
// @Tags         notifications
// @Produce      json
// @Param        userId  path  int  true  "User ID"
// @Success      200  {object}  map[string]int
// @Failure      400  {object}  map[string]string
// @Router       /users/{userId}/notifications/unread-count [get]
func (h *Handler) UnreadCount(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"unread_count": h.Store.UnreadCount(userID)})
}

// CreateNotification godoc
// @Summary      Create a notification
// @Description  Creates a notification directly, outside the broker pipeline
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Param        request  body  CreateNotificationRequest  true  "Create notification request"
// @Success      201  {object}  models.Notification
// @Failure      400  {object}  map[string]string
// @Router       /notifications [post]
func (h *Handler) CreateNotification(c *gin.Context) {
	correlationID := middleware.GetCorrelationID(c)

	var req CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !slices.Contains(models.ValidNotificationTypes, req.Type) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid type"})
		return
	}

	n := models.Notification{
		ID:          uuid.New().String(),
		UserID:      req.UserID,
		Type:        req.Type,
		Title:       req.Title,
		Message:     req.Message,
		RelatedID:   req.RelatedID,
		RelatedType: req.RelatedType,
		CreatedAt:   time.Now().UTC(),
	}
	h.Store.Append(n)

	log.Printf("[Notifications] Notification created via API: id=%s user_id=%d correlation_id=%s",
		n.ID, n.UserID, correlationID)
	c.JSON(http.StatusCreated, n)
}

// MarkRead godoc
// @Summary      Mark a notification as read
// @Tags         notifications
// @Produce      json
// @Param        id  path  string  true  "Notification ID"
// @Success      200  {object}  models.Notification
// @Failure      404  {object}  map[string]string
// @Router       /notifications/{id}/read [patch]
func (h *Handler) MarkRead(c *gin.Context) {
	n, ok := h.Store.MarkRead(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
		return
	}
	c.JSON(http.StatusOK, n)
}

// MarkAllRead godoc
// @Summary      Mark all of a user's notifications as read
// @Tags         notifications
// @Produce      json
// @Param        userId  path  int  true  "User ID"
// @Success      200  {object}  map[string]int
// @Failure      400  {object}  map[string]string
// @Router       /users/{userId}/notifications/read-all [patch]
func (h *Handler) MarkAllRead(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated_count": h.Store.MarkAllRead(userID)})
}

// DeleteNotification godoc
// @Summary      Delete a notification
// @Tags         notifications
// @Produce      json
// @Param        id  path  string  true  "Notification ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /notifications/{id} [delete]
func (h *Handler) DeleteNotification(c *gin.Context) {
	if !h.Store.Delete(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "notification deleted"})
}

// ClearRead godoc
// @Summary      Delete all of a user's read notifications
// @Tags         notifications
// @Produce      json
// @Param        userId  path  int  true  "User ID"
// @Success      200  {object}  map[string]int
// @Failure      400  {object}  map[string]string
// @Router       /users/{userId}/notifications/read [delete]
func (h *Handler) ClearRead(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted_count": h.Store.ClearRead(userID)})
}

// Stats godoc
// @Summary      Cache statistics
// @Tags         health
// @Produce      json
// @Success      200  {object}  cache.Stats
// @Router       /stats [get]
func (h *Handler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.Stats())
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"lapor/internal/service"
)

// NotificationHandler handles per-user notification endpoints.
type NotificationHandler struct {
	notificationService service.NotificationService
	actors              *ActorResolver
}

// NewNotificationHandler creates a new notification handler.
func NewNotificationHandler(notificationService service.NotificationService, actors *ActorResolver) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService, actors: actors}
}

// Unread godoc
// @Summary Unread notifications for the current user, newest first
// @Tags notifications
// @Produce json
// @Success 200 {array} model.Notification
// @Security BearerAuth
// @Router /notifications [get]
func (h *NotificationHandler) Unread(c echo.Context) error {
	actor, err := h.actors.FromContext(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.notificationService.Unread(c.Request().Context(), actor.ID))
}

// Deliver godoc
// @Summary Fetch not-yet-shown notifications, starting their auto-read window
// @Tags notifications
// @Produce json
// @Success 200 {array} model.Notification
// @Security BearerAuth
// @Router /notifications/deliver [post]
func (h *NotificationHandler) Deliver(c echo.Context) error {
	actor, err := h.actors.FromContext(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.notificationService.Deliver(c.Request().Context(), actor.ID))
}

// Dismiss godoc
// @Summary Mark a notification as read
// @Tags notifications
// @Produce json
// @Param id path string true "Notification ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /notifications/{id}/read [put]
func (h *NotificationHandler) Dismiss(c echo.Context) error {
	actor, err := h.actors.FromContext(c)
	if err != nil {
		return err
	}
	h.notificationService.Dismiss(c.Request().Context(), actor.ID, c.Param("id"))
	return c.JSON(http.StatusOK, map[string]string{"message": "notification read"})
}

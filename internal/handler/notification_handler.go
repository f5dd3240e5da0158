package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/nabnoey/TK-libralies-System/internal/auth"
	"github.com/nabnoey/TK-libralies-System/internal/errors"
	"github.com/nabnoey/TK-libralies-System/internal/model"
	"github.com/nabnoey/TK-libralies-System/internal/service"
)

// NotificationHandler handles notification inbox endpoints.
type NotificationHandler struct {
	notificationService service.NotificationService
}

// NewNotificationHandler creates a new notification handler.
func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// NotificationListResponse carries the inbox page plus the unread counter.
type NotificationListResponse struct {
	Notifications []model.Notification `json:"notifications"`
	UnreadCount   int64                `json:"unread_count"`
}

// List godoc
// @Summary List the caller's notifications
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param unread_only query bool false "Only unread notifications"
// @Success 200 {object} NotificationListResponse
// @Router /notifications [get]
func (h *NotificationHandler) List(c echo.Context) error {
	identity, ok := auth.CurrentIdentity(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{Error: "unauthorized", Code: "UNAUTHORIZED"})
	}

	unreadOnly := c.QueryParam("unread_only") == "true"
	notifications, unread, err := h.notificationService.ListForUser(c.Request().Context(), identity.UserID, unreadOnly)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, NotificationListResponse{
		Notifications: notifications,
		UnreadCount:   unread,
	})
}

// MarkRead godoc
// @Summary Mark a notification as read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 200 {object} model.Notification
// @Failure 404 {object} errors.ErrorResponse
// @Router /notifications/{id}/read [patch]
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	identity, ok := auth.CurrentIdentity(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{Error: "unauthorized", Code: "UNAUTHORIZED"})
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{Error: "invalid notification id", Code: "INVALID_UUID"})
	}

	notification, err := h.notificationService.MarkRead(c.Request().Context(), id, identity.UserID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, notification)
}

// MarkAllRead godoc
// @Summary Mark all of the caller's notifications as read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 204 "No Content"
// @Router /notifications/read-all [patch]
func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	identity, ok := auth.CurrentIdentity(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{Error: "unauthorized", Code: "UNAUTHORIZED"})
	}

	if err := h.notificationService.MarkAllRead(c.Request().Context(), identity.UserID); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete godoc
// @Summary Delete a notification
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 204 "No Content"
// @Failure 404 {object} errors.ErrorResponse
// @Router /notifications/{id} [delete]
func (h *NotificationHandler) Delete(c echo.Context) error {
	identity, ok := auth.CurrentIdentity(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{Error: "unauthorized", Code: "UNAUTHORIZED"})
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{Error: "invalid notification id", Code: "INVALID_UUID"})
	}

	if err := h.notificationService.Delete(c.Request().Context(), id, identity.UserID); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.NoContent(http.StatusNoContent)
}

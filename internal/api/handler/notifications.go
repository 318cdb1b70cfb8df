package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ecosense/ecosense/internal/api/models"
	"github.com/ecosense/ecosense/internal/api/response"
	"github.com/ecosense/ecosense/internal/notify"
)

// NotificationHandler serves the persistent notification store.
type NotificationHandler struct {
	notifier *notify.Center
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notifier *notify.Center) *NotificationHandler {
	return &NotificationHandler{notifier: notifier}
}

// ListNotifications handles GET /v1/notifications.
func (h *NotificationHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	notifications := h.notifier.List()

	list := models.NotificationList{
		Items: make([]models.Notification, 0, len(notifications)),
		Count: len(notifications),
	}
	for _, n := range notifications {
		list.Items = append(list.Items, toNotification(n))
	}
	response.JSON(w, r, http.StatusOK, list)
}

// DismissNotification handles DELETE /v1/notifications/{id}.
func (h *NotificationHandler) DismissNotification(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.notifier.Dismiss(id); err != nil {
		if errors.Is(err, notify.ErrNotFound) {
			response.NotFound(w, r, "no notification with id "+id)
			return
		}
		response.InternalError(w, r, "failed to dismiss notification")
		return
	}

	response.NoContent(w, r)
}

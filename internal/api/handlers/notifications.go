package handlers

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/dromero/financepro/internal/notify"
)

// NotificationsHandler serves the recent-events log.
type NotificationsHandler struct {
	center *notify.Center
	log    zerolog.Logger
}

// NewNotificationsHandler creates a notifications handler.
func NewNotificationsHandler(center *notify.Center, log zerolog.Logger) *NotificationsHandler {
	return &NotificationsHandler{center: center, log: log}
}

// List handles GET /api/notifications.
func (h *NotificationsHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"notifications": h.center.List(),
		"unread":        h.center.UnreadCount(),
	})
}

// MarkRead handles POST /api/notifications/{id}/read.
func (h *NotificationsHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeBadRequestMsg(w, "invalid notification id")
		return
	}
	h.center.MarkRead(id)
	w.WriteHeader(http.StatusNoContent)
}

// MarkAllRead handles POST /api/notifications/read-all.
func (h *NotificationsHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	h.center.MarkAllRead()
	w.WriteHeader(http.StatusNoContent)
}

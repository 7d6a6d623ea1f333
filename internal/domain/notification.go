package domain

import "time"

// NotificationType is the severity of a notification entry.
type NotificationType string

const (
	NotifyInfo    NotificationType = "info"
	NotifySuccess NotificationType = "success"
	NotifyWarning NotificationType = "warning"
	NotifyError   NotificationType = "error"
)

// Notification is one entry of the recent-events log.
type Notification struct {
	ID        uint64           `json:"id"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	Timestamp time.Time        `json:"timestamp"`
	Read      bool             `json:"read"`
}

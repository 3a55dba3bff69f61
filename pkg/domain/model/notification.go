package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/workyard-lab/workyard/pkg/domain/types"
)

// NotificationID is a UUID-based identifier for Notification
type NotificationID string

// NewNotificationID generates a new UUID v4 NotificationID
func NewNotificationID() NotificationID {
	return NotificationID(uuid.New().String())
}

// Notification is an addressed message produced by the notification
// dispatcher and consumed by the inbox collaborator.
type Notification struct {
	ID          NotificationID
	RecipientID types.UserID
	Subject     string
	Body        string
	Link        string // deep link to the work item, empty when not applicable
	Read        bool
	CreatedAt   time.Time
}

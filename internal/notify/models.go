// Package notify owns the notification-dispatch contract: deciding that and
// what to notify. Delivery belongs to an external system fed over Kafka;
// nothing here ever blocks or fails a matching or claim operation.
package notify

import (
	"time"

	id "reclaim/pkg/domain"
)

// Notification is one message addressed to one party. Recipient is the email
// the external delivery system should target; UserID, when set, additionally
// routes the message into that account's in-app inbox.
type Notification struct {
	ID        id.NotificationID `json:"id"`
	Recipient string            `json:"recipient"`
	UserID    *id.UserID        `json:"user_id,omitempty"`
	Subject   string            `json:"subject"`
	Body      string            `json:"body"`
	CreatedAt time.Time         `json:"created_at"`
	Read      bool              `json:"read"`
}

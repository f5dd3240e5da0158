// Package queue defines the message payloads exchanged with the external
// notification-delivery worker and the consumer that drains them.
package queue

// NotificationQueueName is the durable queue carrying notification records.
const NotificationQueueName = "notification.created"

// NotificationCreatedEvent is published whenever the engine or the sweeper
// records a user-facing notification. It carries enough information for a
// delivery worker to push or display the message without querying the
// primary database.
type NotificationCreatedEvent struct {
	NotificationID string                 `json:"notification_id"`
	UserID         uint                   `json:"user_id"`
	ReservationID  string                 `json:"reservation_id,omitempty"`
	Type           string                 `json:"type"`
	Title          string                 `json:"title"`
	Message        string                 `json:"message"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt      string                 `json:"created_at"`
}

package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// NotificationType tags the user-facing events emitted by the engine and the
// sweeper. Delivery is external; the core only records them.
type NotificationType string

const (
	NotificationApproved   NotificationType = "reservation_approved"
	NotificationCancelled  NotificationType = "reservation_cancelled"
	NotificationCompleted  NotificationType = "reservation_completed"
	NotificationQueueReady NotificationType = "queue_ready"
)

// Notification is an immutable user-facing event record. Only the recipient
// may mark it read or delete it.
type Notification struct {
	ID            uuid.UUID         `json:"notification_id" gorm:"type:char(36);primaryKey"`
	UserID        uint              `json:"user_id" gorm:"not null;index:idx_user_notifications"`
	ReservationID *uuid.UUID        `json:"reservation_id" gorm:"type:char(36);index"`
	Type          NotificationType  `json:"type" gorm:"type:varchar(40);not null"`
	Title         string            `json:"title" gorm:"size:255;not null"`
	Message       string            `json:"message" gorm:"type:text;not null"`
	IsRead        bool              `json:"is_read" gorm:"not null;default:false;index:idx_user_notifications"`
	ReadAt        *time.Time        `json:"read_at"`
	Metadata      datatypes.JSONMap `json:"metadata"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
	DeletedAt     gorm.DeletedAt    `json:"-" gorm:"index"`
}

// BeforeCreate sets UUID before creating the record.
func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}

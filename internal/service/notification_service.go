package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/nabnoey/TK-libralies-System/internal/clock"
	apperrors "github.com/nabnoey/TK-libralies-System/internal/errors"
	"github.com/nabnoey/TK-libralies-System/internal/model"
	"github.com/nabnoey/TK-libralies-System/internal/queue"
	"github.com/nabnoey/TK-libralies-System/internal/repository"
)

// EventPublisher pushes notification events to the external delivery worker.
type EventPublisher interface {
	PublishNotificationCreated(ctx context.Context, event queue.NotificationCreatedEvent) error
}

// EmitInput describes a user-facing event to record.
type EmitInput struct {
	UserID        uint
	ReservationID *uuid.UUID
	Type          model.NotificationType
	Title         string
	Message       string
	Metadata      map[string]interface{}
}

// NotificationService records user-facing events and manages the recipient's
// inbox. The record is the source of truth; delivery (push, display) happens
// outside the core, fed by the published events.
type NotificationService interface {
	Emit(ctx context.Context, input EmitInput) (*model.Notification, error)
	ListForUser(ctx context.Context, userID uint, unreadOnly bool) ([]model.Notification, int64, error)
	MarkRead(ctx context.Context, id uuid.UUID, userID uint) (*model.Notification, error)
	MarkAllRead(ctx context.Context, userID uint) error
	Delete(ctx context.Context, id uuid.UUID, userID uint) error
}

type notificationService struct {
	notificationRepo repository.NotificationRepository
	publisher        EventPublisher
	clk              clock.Clock
	// Channel for async event publishing
	eventChannel chan queue.NotificationCreatedEvent
}

// NewNotificationService creates a new notification service. publisher may
// be nil when no broker is configured; records are still written.
func NewNotificationService(
	notificationRepo repository.NotificationRepository,
	publisher EventPublisher,
	clk clock.Clock,
) NotificationService {
	s := &notificationService{
		notificationRepo: notificationRepo,
		publisher:        publisher,
		clk:              clk,
		eventChannel:     make(chan queue.NotificationCreatedEvent, 100),
	}

	// Start async publish worker
	go s.publishWorker()

	return s
}

// publishWorker drains queued events to the broker so a slow or dead broker
// never stalls a reservation transition.
func (s *notificationService) publishWorker() {
	for event := range s.eventChannel {
		if s.publisher == nil {
			continue
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := s.publisher.PublishNotificationCreated(ctx, event); err != nil {
			log.Printf("[notification] publish failed for %s: %v", event.NotificationID, err)
		}
		cancel()
	}
}

// Emit records a notification and queues its delivery event.
func (s *notificationService) Emit(ctx context.Context, input EmitInput) (*model.Notification, error) {
	notification := &model.Notification{
		UserID:        input.UserID,
		ReservationID: input.ReservationID,
		Type:          input.Type,
		Title:         input.Title,
		Message:       input.Message,
	}
	if input.Metadata != nil {
		notification.Metadata = datatypes.JSONMap(input.Metadata)
	}

	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		return nil, err
	}

	event := queue.NotificationCreatedEvent{
		NotificationID: notification.ID.String(),
		UserID:         notification.UserID,
		Type:           string(notification.Type),
		Title:          notification.Title,
		Message:        notification.Message,
		Metadata:       input.Metadata,
		CreatedAt:      s.clk.Now().Format(time.RFC3339),
	}
	if input.ReservationID != nil {
		event.ReservationID = input.ReservationID.String()
	}

	select {
	case s.eventChannel <- event:
	default:
		// Channel full; drop the event rather than block the transition.
		log.Printf("[notification] event channel full, dropping delivery event for %s", notification.ID)
	}

	return notification, nil
}

// ListForUser lists the user's notifications (latest 50) and the unread count.
func (s *notificationService) ListForUser(ctx context.Context, userID uint, unreadOnly bool) ([]model.Notification, int64, error) {
	notifications, err := s.notificationRepo.ListByUser(ctx, userID, unreadOnly, 50)
	if err != nil {
		return nil, 0, err
	}
	unread, err := s.notificationRepo.CountUnread(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return notifications, unread, nil
}

// MarkRead marks a notification as read, once.
func (s *notificationService) MarkRead(ctx context.Context, id uuid.UUID, userID uint) (*model.Notification, error) {
	notification, err := s.notificationRepo.FindOwnedByID(ctx, id, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NotFound("NOTIFICATION_NOT_FOUND", "notification not found")
		}
		return nil, err
	}
	if !notification.IsRead {
		if err := s.notificationRepo.MarkRead(ctx, notification, s.clk.Now()); err != nil {
			return nil, err
		}
	}
	return notification, nil
}

// MarkAllRead marks every unread notification of the user as read.
func (s *notificationService) MarkAllRead(ctx context.Context, userID uint) error {
	return s.notificationRepo.MarkAllRead(ctx, userID, s.clk.Now())
}

// Delete removes a notification from the recipient's inbox.
func (s *notificationService) Delete(ctx context.Context, id uuid.UUID, userID uint) error {
	notification, err := s.notificationRepo.FindOwnedByID(ctx, id, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.NotFound("NOTIFICATION_NOT_FOUND", "notification not found")
		}
		return err
	}
	return s.notificationRepo.Delete(ctx, notification)
}

package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nabnoey/TK-libralies-System/internal/model"
)

// NotificationRepository defines notification persistence operations.
// Records are created by the engine/sweeper and mutated only by the
// recipient marking them read or deleting them.
type NotificationRepository interface {
	Create(ctx context.Context, notification *model.Notification) error
	ListByUser(ctx context.Context, userID uint, unreadOnly bool, limit int) ([]model.Notification, error)
	CountUnread(ctx context.Context, userID uint) (int64, error)
	FindOwnedByID(ctx context.Context, id uuid.UUID, userID uint) (*model.Notification, error)
	MarkRead(ctx context.Context, notification *model.Notification, at time.Time) error
	MarkAllRead(ctx context.Context, userID uint, at time.Time) error
	Delete(ctx context.Context, notification *model.Notification) error
}

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new notification repository.
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

// Create creates a new notification record.
func (r *notificationRepository) Create(ctx context.Context, notification *model.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

// ListByUser lists a user's notifications, newest first.
func (r *notificationRepository) ListByUser(ctx context.Context, userID uint, unreadOnly bool, limit int) ([]model.Notification, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if unreadOnly {
		q = q.Where("is_read = ?", false)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	var notifications []model.Notification
	if err := q.Order("created_at DESC").Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

// CountUnread counts the user's unread notifications.
func (r *notificationRepository) CountUnread(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindOwnedByID finds a notification by ID scoped to its recipient.
func (r *notificationRepository) FindOwnedByID(ctx context.Context, id uuid.UUID, userID uint) (*model.Notification, error) {
	var notification model.Notification
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&notification).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}

// MarkRead marks a single notification as read.
func (r *notificationRepository) MarkRead(ctx context.Context, notification *model.Notification, at time.Time) error {
	notification.IsRead = true
	notification.ReadAt = &at
	return r.db.WithContext(ctx).Save(notification).Error
}

// MarkAllRead marks every unread notification of the user as read.
func (r *notificationRepository) MarkAllRead(ctx context.Context, userID uint, at time.Time) error {
	return r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": at}).Error
}

// Delete soft-deletes a notification.
func (r *notificationRepository) Delete(ctx context.Context, notification *model.Notification) error {
	return r.db.WithContext(ctx).Delete(notification).Error
}

package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/nabnoey/TK-libralies-System/internal/clock"
	apperrors "github.com/nabnoey/TK-libralies-System/internal/errors"
	"github.com/nabnoey/TK-libralies-System/internal/model"
	"github.com/nabnoey/TK-libralies-System/internal/queue"
)

// MockNotificationRepository is a mock implementation of NotificationRepository.
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, notification *model.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *MockNotificationRepository) ListByUser(ctx context.Context, userID uint, unreadOnly bool, limit int) ([]model.Notification, error) {
	args := m.Called(ctx, userID, unreadOnly, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Notification), args.Error(1)
}

func (m *MockNotificationRepository) CountUnread(ctx context.Context, userID uint) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) FindOwnedByID(ctx context.Context, id uuid.UUID, userID uint) (*model.Notification, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Notification), args.Error(1)
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, notification *model.Notification, at time.Time) error {
	args := m.Called(ctx, notification, at)
	return args.Error(0)
}

func (m *MockNotificationRepository) MarkAllRead(ctx context.Context, userID uint, at time.Time) error {
	args := m.Called(ctx, userID, at)
	return args.Error(0)
}

func (m *MockNotificationRepository) Delete(ctx context.Context, notification *model.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

// capturingPublisher records published events for assertions.
type capturingPublisher struct {
	mu     sync.Mutex
	events []queue.NotificationCreatedEvent
	done   chan struct{}
}

func newCapturingPublisher(expect int) *capturingPublisher {
	return &capturingPublisher{done: make(chan struct{}, expect)}
}

func (p *capturingPublisher) PublishNotificationCreated(ctx context.Context, event queue.NotificationCreatedEvent) error {
	p.mu.Lock()
	p.events = append(p.events, event)
	p.mu.Unlock()
	p.done <- struct{}{}
	return nil
}

func TestNotificationService_Emit(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, bangkok)

	t.Run("records the notification and publishes the event", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		publisher := newCapturingPublisher(1)
		svc := NewNotificationService(repo, publisher, &clock.Fixed{Time: now})

		reservationID := uuid.New()
		repo.On("Create", mock.Anything, mock.AnythingOfType("*model.Notification")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*model.Notification).ID = uuid.New()
			}).Return(nil)

		notification, err := svc.Emit(context.Background(), EmitInput{
			UserID:        7,
			ReservationID: &reservationID,
			Type:          model.NotificationApproved,
			Title:         "Reservation approved",
			Message:       "Check in before 10:05:00.",
			Metadata:      map[string]interface{}{"queue_number": 1},
		})

		assert.NoError(t, err)
		assert.Equal(t, uint(7), notification.UserID)
		assert.Equal(t, model.NotificationApproved, notification.Type)
		assert.False(t, notification.IsRead)

		select {
		case <-publisher.done:
		case <-time.After(2 * time.Second):
			t.Fatal("event was never published")
		}
		publisher.mu.Lock()
		defer publisher.mu.Unlock()
		if assert.Len(t, publisher.events, 1) {
			event := publisher.events[0]
			assert.Equal(t, uint(7), event.UserID)
			assert.Equal(t, string(model.NotificationApproved), event.Type)
			assert.Equal(t, reservationID.String(), event.ReservationID)
			assert.Equal(t, now.Format(time.RFC3339), event.CreatedAt)
		}
		repo.AssertExpectations(t)
	})

	t.Run("without a broker the record is still written", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		svc := NewNotificationService(repo, nil, &clock.Fixed{Time: now})

		repo.On("Create", mock.Anything, mock.AnythingOfType("*model.Notification")).Return(nil)

		notification, err := svc.Emit(context.Background(), EmitInput{
			UserID: 7, Type: model.NotificationCancelled, Title: "Reservation cancelled", Message: "m",
		})

		assert.NoError(t, err)
		assert.NotNil(t, notification)
		repo.AssertExpectations(t)
	})
}

func TestNotificationService_Inbox(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, bangkok)
	id := uuid.New()

	t.Run("list returns the page and the unread counter", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		svc := NewNotificationService(repo, nil, &clock.Fixed{Time: now})

		page := []model.Notification{{ID: uuid.New(), UserID: 7}, {ID: uuid.New(), UserID: 7}}
		repo.On("ListByUser", mock.Anything, uint(7), false, 50).Return(page, nil)
		repo.On("CountUnread", mock.Anything, uint(7)).Return(int64(2), nil)

		notifications, unread, err := svc.ListForUser(context.Background(), 7, false)

		assert.NoError(t, err)
		assert.Len(t, notifications, 2)
		assert.Equal(t, int64(2), unread)
	})

	t.Run("mark read is applied once", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		svc := NewNotificationService(repo, nil, &clock.Fixed{Time: now})

		unread := &model.Notification{ID: id, UserID: 7}
		repo.On("FindOwnedByID", mock.Anything, id, uint(7)).Return(unread, nil)
		repo.On("MarkRead", mock.Anything, unread, now).Return(nil)

		_, err := svc.MarkRead(context.Background(), id, 7)
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("marking an already-read notification is a no-op", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		svc := NewNotificationService(repo, nil, &clock.Fixed{Time: now})

		readAt := now.Add(-time.Hour)
		read := &model.Notification{ID: id, UserID: 7, IsRead: true, ReadAt: &readAt}
		repo.On("FindOwnedByID", mock.Anything, id, uint(7)).Return(read, nil)

		notification, err := svc.MarkRead(context.Background(), id, 7)

		assert.NoError(t, err)
		assert.Equal(t, readAt, *notification.ReadAt)
		repo.AssertNotCalled(t, "MarkRead", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("another user's notification is not found", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		svc := NewNotificationService(repo, nil, &clock.Fixed{Time: now})

		repo.On("FindOwnedByID", mock.Anything, id, uint(8)).Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.MarkRead(context.Background(), id, 8)
		assertAppError(t, err, apperrors.KindNotFound, "NOTIFICATION_NOT_FOUND")
	})

	t.Run("delete removes an owned notification", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		svc := NewNotificationService(repo, nil, &clock.Fixed{Time: now})

		owned := &model.Notification{ID: id, UserID: 7}
		repo.On("FindOwnedByID", mock.Anything, id, uint(7)).Return(owned, nil)
		repo.On("Delete", mock.Anything, owned).Return(nil)

		err := svc.Delete(context.Background(), id, 7)
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})
}

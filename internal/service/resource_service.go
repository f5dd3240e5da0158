package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/nabnoey/TK-libralies-System/internal/cache"
	"github.com/nabnoey/TK-libralies-System/internal/model"
	"github.com/nabnoey/TK-libralies-System/internal/repository"
)

// boardCacheTTL bounds how stale the public status board may be. Transitions
// invalidate eagerly; the TTL only covers missed invalidations.
const boardCacheTTL = 5 * time.Second

// QueueEntry is one reservation in a resource's public queue view.
type QueueEntry struct {
	ReservationID   uuid.UUID               `json:"reservation_id"`
	QueueNumber     int                     `json:"queue_number"`
	Status          model.ReservationStatus `json:"status"`
	GroupSize       int                     `json:"group_size"`
	UserName        string                  `json:"user_name"`
	UserEmail       string                  `json:"user_email"`
	CheckInDeadline *time.Time              `json:"check_in_deadline,omitempty"`
}

// ResourceBoard is the public queue/status view of one resource on a date.
type ResourceBoard struct {
	Resource      model.Resource `json:"resource"`
	CurrentHolder *QueueEntry    `json:"current_holder"`
	WaitingQueue  []QueueEntry   `json:"waiting_queue"`
	IsAvailable   bool           `json:"is_available"`
}

// ResourceService is the read side of the resource registry: the catalog of
// bookable rooms and seats plus the derived per-resource queue boards.
type ResourceService interface {
	ListEnabled(ctx context.Context, rtype model.ResourceType) ([]model.Resource, error)
	StatusBoard(ctx context.Context, rtype model.ResourceType, date string) ([]ResourceBoard, error)
}

type resourceService struct {
	resourceRepo    repository.ResourceRepository
	reservationRepo repository.ReservationRepository
	cache           *cache.Client
}

// NewResourceService creates a new resource registry service.
func NewResourceService(
	resourceRepo repository.ResourceRepository,
	reservationRepo repository.ReservationRepository,
	cacheClient *cache.Client,
) ResourceService {
	return &resourceService{
		resourceRepo:    resourceRepo,
		reservationRepo: reservationRepo,
		cache:           cacheClient,
	}
}

// ListEnabled lists the bookable resources of a type.
func (s *resourceService) ListEnabled(ctx context.Context, rtype model.ResourceType) ([]model.Resource, error) {
	return s.resourceRepo.ListEnabled(ctx, rtype)
}

// StatusBoard builds the queue board for every enabled resource of the type
// on the date. Results are cached briefly; every reservation transition
// invalidates the key.
func (s *resourceService) StatusBoard(ctx context.Context, rtype model.ResourceType, date string) ([]ResourceBoard, error) {
	key := cache.StatusBoardKey(rtype, date)
	if raw, _ := s.cache.Get(ctx, key); raw != nil {
		var boards []ResourceBoard
		if err := json.Unmarshal(raw, &boards); err == nil {
			return boards, nil
		}
	}

	resources, err := s.resourceRepo.ListEnabled(ctx, rtype)
	if err != nil {
		return nil, err
	}

	boards := make([]ResourceBoard, 0, len(resources))
	for _, resource := range resources {
		queue, err := s.reservationRepo.ListQueue(ctx, rtype, resource.ID, date)
		if err != nil {
			return nil, err
		}

		board := ResourceBoard{Resource: resource}
		for i := range queue {
			entry := toQueueEntry(&queue[i])
			if queue[i].HoldsResource() {
				holder := entry
				board.CurrentHolder = &holder
				continue
			}
			board.WaitingQueue = append(board.WaitingQueue, entry)
		}
		board.IsAvailable = resource.Enabled && board.CurrentHolder == nil
		boards = append(boards, board)
	}

	if raw, err := json.Marshal(boards); err == nil {
		_ = s.cache.Set(ctx, key, raw, boardCacheTTL)
	}
	return boards, nil
}

func toQueueEntry(r *model.Reservation) QueueEntry {
	return QueueEntry{
		ReservationID:   r.ID,
		QueueNumber:     r.QueueNumber,
		Status:          r.Status,
		GroupSize:       r.GroupSize(),
		UserName:        r.User.Name,
		UserEmail:       r.User.Email,
		CheckInDeadline: r.CheckInDeadline,
	}
}

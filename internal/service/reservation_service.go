package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nabnoey/TK-libralies-System/internal/cache"
	"github.com/nabnoey/TK-libralies-System/internal/clock"
	"github.com/nabnoey/TK-libralies-System/internal/config"
	apperrors "github.com/nabnoey/TK-libralies-System/internal/errors"
	"github.com/nabnoey/TK-libralies-System/internal/model"
	"github.com/nabnoey/TK-libralies-System/internal/repository"
)

// ReservationPolicy carries the externally-configured business rules the
// engine enforces: per-type same-day booking cutoffs, the check-in grace
// window and the per-type usage durations.
type ReservationPolicy struct {
	KaraokeCutoffHour int
	MovieCutoffHour   int
	CheckInGrace      time.Duration
	KaraokeUsage      time.Duration
	MovieUsage        time.Duration
}

// PolicyFromConfig builds the engine policy from application configuration.
func PolicyFromConfig(cfg *config.Config) ReservationPolicy {
	return ReservationPolicy{
		KaraokeCutoffHour: cfg.KaraokeCutoffHour,
		MovieCutoffHour:   cfg.MovieCutoffHour,
		CheckInGrace:      time.Duration(cfg.CheckInGraceMinutes) * time.Minute,
		KaraokeUsage:      time.Duration(cfg.KaraokeUsageMinutes) * time.Minute,
		MovieUsage:        time.Duration(cfg.MovieUsageMinutes) * time.Minute,
	}
}

// CutoffHour returns the same-day booking cutoff hour for the type.
func (p ReservationPolicy) CutoffHour(rtype model.ResourceType) int {
	if rtype == model.ResourceMovie {
		return p.MovieCutoffHour
	}
	return p.KaraokeCutoffHour
}

// Usage returns the allowed active-use duration for the type.
func (p ReservationPolicy) Usage(rtype model.ResourceType) time.Duration {
	if rtype == model.ResourceMovie {
		return p.MovieUsage
	}
	return p.KaraokeUsage
}

// CreateReservationInput is the request to book a resource for a group.
type CreateReservationInput struct {
	UserID          uint
	ReservationType model.ResourceType
	ItemID          uint
	FriendEmails    []string
	ReservationDate string // YYYY-MM-DD, empty = today
}

// CreateReservationResult is the created reservation plus its derived queue
// placement.
type CreateReservationResult struct {
	Reservation   *model.Reservation `json:"reservation"`
	QueuePosition int                `json:"queue_position"`
	PeopleAhead   int                `json:"people_ahead"`
}

// ReservationService is the reservation engine: it validates and creates
// reservations, derives per-resource queues and drives the
// approve → check-in → complete/cancel state machine. Every multi-step
// operation runs as one transaction with row locks on the target reservation
// and on the sibling rows consulted for the single-active-occupant check.
type ReservationService interface {
	Create(ctx context.Context, input CreateReservationInput) (*CreateReservationResult, error)
	ListMine(ctx context.Context, userID uint) ([]model.Reservation, error)
	ListAll(ctx context.Context) ([]model.Reservation, error)
	Get(ctx context.Context, id uuid.UUID, userID uint) (*model.Reservation, error)

	Approve(ctx context.Context, id uuid.UUID) (*model.Reservation, error)
	CheckIn(ctx context.Context, id uuid.UUID, userID uint) (*model.Reservation, error)
	Cancel(ctx context.Context, id uuid.UUID, userID uint) (*model.Reservation, error)
	Complete(ctx context.Context, id uuid.UUID) (*model.Reservation, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, target model.ReservationStatus) (*model.Reservation, error)

	// ExpireOverdueCheckIn performs the deadline cancellation for a single
	// reservation; the sweeper drives it, and a racing transition makes it a
	// clean StateError skip.
	ExpireOverdueCheckIn(ctx context.Context, id uuid.UUID) (*model.Reservation, error)
}

type reservationService struct {
	reservationRepo repository.ReservationRepository
	resourceRepo    repository.ResourceRepository
	userRepo        repository.UserRepository
	notifications   NotificationService
	cache           *cache.Client
	clk             clock.Clock
	policy          ReservationPolicy
}

// NewReservationService creates the reservation engine.
func NewReservationService(
	reservationRepo repository.ReservationRepository,
	resourceRepo repository.ResourceRepository,
	userRepo repository.UserRepository,
	notifications NotificationService,
	cacheClient *cache.Client,
	clk clock.Clock,
	policy ReservationPolicy,
) ReservationService {
	return &reservationService{
		reservationRepo: reservationRepo,
		resourceRepo:    resourceRepo,
		userRepo:        userRepo,
		notifications:   notifications,
		cache:           cacheClient,
		clk:             clk,
		policy:          policy,
	}
}

// Create validates and persists a new reservation at the back of the
// resource's queue for the date. A pending reservation does not claim the
// resource; only approval does.
func (s *reservationService) Create(ctx context.Context, input CreateReservationInput) (*CreateReservationResult, error) {
	if !input.ReservationType.Valid() {
		return nil, apperrors.Validation("INVALID_RESERVATION_TYPE", "reservation type must be karaoke or movie")
	}

	date := input.ReservationDate
	if date == "" {
		date = clock.Today(s.clk)
	} else if _, err := time.Parse(clock.DateLayout, date); err != nil {
		return nil, apperrors.Validation("INVALID_DATE", "reservation date must be YYYY-MM-DD")
	}

	owner, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NotFound("USER_NOT_FOUND", "user not found")
		}
		return nil, err
	}

	if err := s.validateFriends(ctx, owner, input.FriendEmails); err != nil {
		return nil, err
	}

	if date == clock.Today(s.clk) {
		cutoff := s.policy.CutoffHour(input.ReservationType)
		if clock.IsAfterHour(s.clk, cutoff) {
			return nil, apperrors.Validation("BOOKING_CLOSED",
				fmt.Sprintf("same-day %s booking closes at %02d:00", input.ReservationType, cutoff)).
				WithDetails(map[string]interface{}{"cutoff_hour": cutoff})
		}
	}

	resource, err := s.resourceRepo.Get(ctx, input.ReservationType, input.ItemID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NotFound("RESOURCE_NOT_FOUND",
				fmt.Sprintf("no %s resource with id %d", input.ReservationType, input.ItemID))
		}
		return nil, err
	}
	if !resource.Enabled {
		return nil, apperrors.Conflict("RESOURCE_DISABLED",
			fmt.Sprintf("%s is closed for booking", resource.Name))
	}

	reservation := &model.Reservation{
		UserID:          input.UserID,
		ReservationType: input.ReservationType,
		ItemID:          input.ItemID,
		ReservationDate: date,
		FriendEmails:    input.FriendEmails,
		Status:          model.StatusPending,
	}

	err = s.reservationRepo.WithTransaction(ctx, func(tx *gorm.DB) error {
		existing, err := s.reservationRepo.FindActiveByUserOnDateTx(tx, input.UserID, date)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperrors.Conflict("DATE_ALREADY_RESERVED",
				"you already hold a reservation on this date").
				WithDetails(s.conflictDetails(ctx, existing))
		}

		sameType, err := s.reservationRepo.FindByUserTypeDateTx(tx, input.UserID, input.ReservationType, date)
		if err != nil {
			return err
		}
		if sameType != nil {
			return apperrors.Conflict("DAILY_LIMIT_REACHED",
				fmt.Sprintf("only one %s reservation per day is allowed, even if it was cancelled", input.ReservationType)).
				WithDetails(s.conflictDetails(ctx, sameType))
		}

		maxQueue, err := s.reservationRepo.MaxQueueNumberTx(tx, input.ReservationType, input.ItemID, date)
		if err != nil {
			return err
		}
		reservation.QueueNumber = maxQueue + 1

		return s.reservationRepo.CreateTx(tx, reservation)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateBoard(ctx, reservation.ReservationType, reservation.ReservationDate)

	return &CreateReservationResult{
		Reservation:   reservation,
		QueuePosition: reservation.QueueNumber,
		PeopleAhead:   reservation.PeopleAhead(),
	}, nil
}

// validateFriends enforces the companion rules: every email resolves to a
// registered user, the owner is not among them, no duplicates, and the group
// (friends + owner) is 4-6 people.
func (s *reservationService) validateFriends(ctx context.Context, owner *model.User, friendEmails []string) error {
	seen := make(map[string]bool, len(friendEmails))
	var duplicates []string
	for _, email := range friendEmails {
		if seen[email] {
			duplicates = append(duplicates, email)
		}
		seen[email] = true
	}
	if len(duplicates) > 0 {
		return apperrors.Validation("DUPLICATE_FRIEND_EMAILS", "friend emails must be distinct").
			WithDetails(map[string]interface{}{"duplicates": duplicates})
	}

	users, err := s.userRepo.FindByEmails(ctx, friendEmails)
	if err != nil {
		return err
	}
	registered := make(map[string]bool, len(users))
	for _, u := range users {
		registered[u.Email] = true
	}
	var unresolved []string
	for _, email := range friendEmails {
		if !registered[email] {
			unresolved = append(unresolved, email)
		}
	}
	if len(unresolved) > 0 {
		return apperrors.Validation("FRIENDS_NOT_REGISTERED", "some friend emails are not registered users").
			WithDetails(map[string]interface{}{"unresolved": unresolved})
	}

	if seen[owner.Email] {
		return apperrors.Validation("OWNER_IN_FRIENDS", "your own email cannot be listed as a friend")
	}

	groupSize := len(friendEmails) + 1
	if groupSize < 4 || groupSize > 6 {
		return apperrors.Validation("INVALID_GROUP_SIZE",
			fmt.Sprintf("group size must be 4-6 people including you, got %d", groupSize)).
			WithDetails(map[string]interface{}{"group_size": groupSize})
	}
	return nil
}

// conflictDetails describes the reservation blocking a create so the client
// can explain the conflict.
func (s *reservationService) conflictDetails(ctx context.Context, r *model.Reservation) map[string]interface{} {
	return map[string]interface{}{
		"reservation_id":   r.ID.String(),
		"reservation_type": r.ReservationType,
		"item_id":          r.ItemID,
		"item_name":        s.resourceName(ctx, r.ReservationType, r.ItemID),
		"status":           r.Status,
		"queue_number":     r.QueueNumber,
	}
}

// resourceName resolves a resource's display name, best effort.
func (s *reservationService) resourceName(ctx context.Context, rtype model.ResourceType, itemID uint) string {
	resource, err := s.resourceRepo.Get(ctx, rtype, itemID)
	if err != nil {
		return fmt.Sprintf("%s #%d", rtype, itemID)
	}
	return resource.Name
}

// ListMine lists the caller's reservations, newest first.
func (s *reservationService) ListMine(ctx context.Context, userID uint) ([]model.Reservation, error) {
	return s.reservationRepo.ListByUser(ctx, userID)
}

// ListAll lists every reservation for operators.
func (s *reservationService) ListAll(ctx context.Context) ([]model.Reservation, error) {
	return s.reservationRepo.ListAll(ctx)
}

// Get returns a single reservation, owner-scoped.
func (s *reservationService) Get(ctx context.Context, id uuid.UUID, userID uint) (*model.Reservation, error) {
	reservation, err := s.reservationRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NotFound("RESERVATION_NOT_FOUND", "reservation not found")
		}
		return nil, err
	}
	if reservation.UserID != userID {
		return nil, apperrors.NotFound("RESERVATION_NOT_FOUND", "reservation not found")
	}
	return reservation, nil
}

// Approve moves a pending reservation to awaiting_checkin and claims the
// resource. Approval is strictly serialized per resource: while any
// reservation on the same resource/date is awaiting check-in or confirmed,
// approving another one fails.
func (s *reservationService) Approve(ctx context.Context, id uuid.UUID) (*model.Reservation, error) {
	var reservation *model.Reservation
	var deadline time.Time

	err := s.reservationRepo.WithTransaction(ctx, func(tx *gorm.DB) error {
		r, err := s.reservationRepo.FindByIDForUpdateTx(tx, id)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.NotFound("RESERVATION_NOT_FOUND", "reservation not found")
			}
			return err
		}
		if r.Status == model.StatusCancelled {
			return apperrors.State("RESERVATION_CANCELLED", "a cancelled reservation cannot be approved")
		}
		if r.Status != model.StatusPending {
			return apperrors.State("NOT_PENDING",
				fmt.Sprintf("only pending reservations can be approved, current status is %s", r.Status))
		}

		active, err := s.reservationRepo.FindActiveOnResourceTx(tx, r.ReservationType, r.ItemID, r.ReservationDate)
		if err != nil {
			return err
		}
		if active != nil {
			return apperrors.Conflict("RESOURCE_OCCUPIED",
				"another reservation is already active on this resource").
				WithDetails(s.conflictDetails(ctx, active))
		}

		now := s.clk.Now()
		deadline = now.Add(s.policy.CheckInGrace)
		r.Status = model.StatusAwaitingCheckIn
		r.ApprovedAt = &now
		r.CheckInDeadline = &deadline
		if err := s.reservationRepo.SaveTx(tx, r); err != nil {
			return err
		}
		if err := s.resourceRepo.SetCurrentStateTx(tx, r.ReservationType, r.ItemID, model.ResourceAwaitingCheckIn, &r.ID); err != nil {
			return err
		}
		reservation = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.emit(ctx, EmitInput{
		UserID:        reservation.UserID,
		ReservationID: &reservation.ID,
		Type:          model.NotificationApproved,
		Title:         "Reservation approved",
		Message: fmt.Sprintf("Your reservation for %s was approved. Check in before %s or it will be cancelled automatically.",
			s.resourceName(ctx, reservation.ReservationType, reservation.ItemID), deadline.Format("15:04:05")),
		Metadata: map[string]interface{}{
			"check_in_deadline": deadline.Format(time.RFC3339),
			"queue_number":      reservation.QueueNumber,
		},
	})
	s.invalidateBoard(ctx, reservation.ReservationType, reservation.ReservationDate)

	return reservation, nil
}

// CheckIn confirms an awaiting_checkin reservation within its grace window.
// Past the deadline it performs the cancellation the sweeper would otherwise
// do and reports the expiry, so the read path self-heals.
func (s *reservationService) CheckIn(ctx context.Context, id uuid.UUID, userID uint) (*model.Reservation, error) {
	var reservation *model.Reservation
	expired := false

	err := s.reservationRepo.WithTransaction(ctx, func(tx *gorm.DB) error {
		r, err := s.reservationRepo.FindByIDForUpdateTx(tx, id)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.NotFound("RESERVATION_NOT_FOUND", "reservation not found")
			}
			return err
		}
		if r.UserID != userID {
			return apperrors.NotFound("RESERVATION_NOT_FOUND", "reservation not found")
		}
		if r.Status != model.StatusAwaitingCheckIn {
			return apperrors.State("CHECKIN_NOT_ALLOWED",
				fmt.Sprintf("cannot check in while the reservation is %s", r.Status))
		}

		now := s.clk.Now()
		if r.CheckInDeadline != nil && now.After(*r.CheckInDeadline) {
			expired = true
			r.Status = model.StatusCancelled
			if err := s.reservationRepo.SaveTx(tx, r); err != nil {
				return err
			}
			if err := s.resourceRepo.SetCurrentStateTx(tx, r.ReservationType, r.ItemID, model.ResourceAvailable, nil); err != nil {
				return err
			}
			reservation = r
			return nil
		}

		r.Status = model.StatusConfirmed
		r.CheckedInAt = &now
		r.StartedAt = &now
		if err := s.reservationRepo.SaveTx(tx, r); err != nil {
			return err
		}
		if err := s.resourceRepo.SetCurrentStateTx(tx, r.ReservationType, r.ItemID, model.ResourceInUse, &r.ID); err != nil {
			return err
		}
		reservation = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateBoard(ctx, reservation.ReservationType, reservation.ReservationDate)

	if expired {
		s.emitTimeoutCancellation(ctx, reservation)
		return reservation, apperrors.Expired("CHECKIN_DEADLINE_PASSED",
			"the check-in window has passed; the reservation was cancelled automatically")
	}
	return reservation, nil
}

// Cancel cancels the caller's reservation from any non-terminal status,
// releasing the resource if the reservation was holding it. The next queued
// reservation is not auto-advanced; the resource simply becomes available
// for the operator's next approval.
func (s *reservationService) Cancel(ctx context.Context, id uuid.UUID, userID uint) (*model.Reservation, error) {
	return s.cancel(ctx, id, userID, false)
}

func (s *reservationService) cancel(ctx context.Context, id uuid.UUID, userID uint, byOperator bool) (*model.Reservation, error) {
	var reservation *model.Reservation

	err := s.reservationRepo.WithTransaction(ctx, func(tx *gorm.DB) error {
		r, err := s.reservationRepo.FindByIDForUpdateTx(tx, id)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.NotFound("RESERVATION_NOT_FOUND", "reservation not found")
			}
			return err
		}
		if !byOperator && r.UserID != userID {
			return apperrors.NotFound("RESERVATION_NOT_FOUND", "reservation not found")
		}
		if r.Status == model.StatusCancelled {
			return apperrors.State("ALREADY_CANCELLED", "the reservation is already cancelled")
		}
		if r.Status == model.StatusCompleted {
			return apperrors.State("ALREADY_COMPLETED", "a completed reservation cannot be cancelled")
		}

		wasHolding := r.HoldsResource()
		r.Status = model.StatusCancelled
		if err := s.reservationRepo.SaveTx(tx, r); err != nil {
			return err
		}
		if wasHolding {
			if err := s.resourceRepo.SetCurrentStateTx(tx, r.ReservationType, r.ItemID, model.ResourceAvailable, nil); err != nil {
				return err
			}
		}
		reservation = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	reason := "user_cancelled"
	if byOperator {
		reason = "operator_cancelled"
	}
	s.emit(ctx, EmitInput{
		UserID:        reservation.UserID,
		ReservationID: &reservation.ID,
		Type:          model.NotificationCancelled,
		Title:         "Reservation cancelled",
		Message: fmt.Sprintf("Your reservation for %s on %s was cancelled.",
			s.resourceName(ctx, reservation.ReservationType, reservation.ItemID), reservation.ReservationDate),
		Metadata: map[string]interface{}{"reason": reason},
	})
	s.invalidateBoard(ctx, reservation.ReservationType, reservation.ReservationDate)

	return reservation, nil
}

// Complete finishes a confirmed reservation, releases the resource and tells
// the next queued reservation its turn is coming. The notification is purely
// informational; approval remains an explicit operator action.
func (s *reservationService) Complete(ctx context.Context, id uuid.UUID) (*model.Reservation, error) {
	var reservation *model.Reservation
	var next *model.Reservation

	err := s.reservationRepo.WithTransaction(ctx, func(tx *gorm.DB) error {
		r, err := s.reservationRepo.FindByIDForUpdateTx(tx, id)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.NotFound("RESERVATION_NOT_FOUND", "reservation not found")
			}
			return err
		}
		if r.Status != model.StatusConfirmed {
			return apperrors.State("NOT_CONFIRMED",
				fmt.Sprintf("only confirmed reservations can be completed, current status is %s", r.Status))
		}

		now := s.clk.Now()
		r.Status = model.StatusCompleted
		r.EndedAt = &now
		if err := s.reservationRepo.SaveTx(tx, r); err != nil {
			return err
		}
		if err := s.resourceRepo.SetCurrentStateTx(tx, r.ReservationType, r.ItemID, model.ResourceAvailable, nil); err != nil {
			return err
		}

		next, err = s.reservationRepo.FindByQueueNumberTx(tx, r.ReservationType, r.ItemID, r.ReservationDate, r.QueueNumber+1)
		if err != nil {
			return err
		}
		reservation = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	if next != nil {
		s.emit(ctx, EmitInput{
			UserID:        next.UserID,
			ReservationID: &next.ID,
			Type:          model.NotificationQueueReady,
			Title:         "Your turn is next",
			Message: fmt.Sprintf("%s is now free. Your reservation is next in line, awaiting operator approval.",
				s.resourceName(ctx, next.ReservationType, next.ItemID)),
			Metadata: map[string]interface{}{"queue_number": next.QueueNumber},
		})
	}
	s.invalidateBoard(ctx, reservation.ReservationType, reservation.ReservationDate)

	return reservation, nil
}

// UpdateStatus is the operator escape hatch, re-expressed as the specific
// transitions. Jumps that skip required steps are rejected with the same
// checks as the dedicated operations.
func (s *reservationService) UpdateStatus(ctx context.Context, id uuid.UUID, target model.ReservationStatus) (*model.Reservation, error) {
	if !target.Valid() {
		return nil, apperrors.Validation("INVALID_STATUS", "unknown reservation status")
	}

	switch target {
	case model.StatusAwaitingCheckIn:
		return s.Approve(ctx, id)
	case model.StatusCompleted:
		return s.Complete(ctx, id)
	case model.StatusCancelled:
		return s.cancel(ctx, id, 0, true)
	case model.StatusConfirmed:
		return s.forceConfirm(ctx, id)
	default: // pending
		return nil, apperrors.State("INVALID_TRANSITION", "a reservation cannot be moved back to pending")
	}
}

// forceConfirm is the operator's manual check-in override. It still requires
// the reservation to have been approved first and re-runs the resource
// exclusivity check, so pending → confirmed jumps are rejected.
func (s *reservationService) forceConfirm(ctx context.Context, id uuid.UUID) (*model.Reservation, error) {
	var reservation *model.Reservation

	err := s.reservationRepo.WithTransaction(ctx, func(tx *gorm.DB) error {
		r, err := s.reservationRepo.FindByIDForUpdateTx(tx, id)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.NotFound("RESERVATION_NOT_FOUND", "reservation not found")
			}
			return err
		}
		if r.Status != model.StatusAwaitingCheckIn {
			return apperrors.State("INVALID_TRANSITION",
				fmt.Sprintf("cannot confirm a reservation that is %s; approve it first", r.Status))
		}

		active, err := s.reservationRepo.FindActiveOnResourceTx(tx, r.ReservationType, r.ItemID, r.ReservationDate)
		if err != nil {
			return err
		}
		if active != nil && active.ID != r.ID {
			return apperrors.Conflict("RESOURCE_OCCUPIED",
				"another reservation is already active on this resource").
				WithDetails(s.conflictDetails(ctx, active))
		}

		now := s.clk.Now()
		r.Status = model.StatusConfirmed
		r.CheckedInAt = &now
		r.StartedAt = &now
		if err := s.reservationRepo.SaveTx(tx, r); err != nil {
			return err
		}
		if err := s.resourceRepo.SetCurrentStateTx(tx, r.ReservationType, r.ItemID, model.ResourceInUse, &r.ID); err != nil {
			return err
		}
		reservation = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateBoard(ctx, reservation.ReservationType, reservation.ReservationDate)
	return reservation, nil
}

// ExpireOverdueCheckIn cancels a reservation whose check-in deadline has
// passed, exactly as a late check-in attempt would. A reservation already
// transitioned away returns a StateError so repeated sweeps skip it cleanly.
func (s *reservationService) ExpireOverdueCheckIn(ctx context.Context, id uuid.UUID) (*model.Reservation, error) {
	var reservation *model.Reservation

	err := s.reservationRepo.WithTransaction(ctx, func(tx *gorm.DB) error {
		r, err := s.reservationRepo.FindByIDForUpdateTx(tx, id)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.NotFound("RESERVATION_NOT_FOUND", "reservation not found")
			}
			return err
		}
		if r.Status != model.StatusAwaitingCheckIn {
			return apperrors.State("NOT_AWAITING_CHECKIN",
				fmt.Sprintf("reservation is %s, nothing to expire", r.Status))
		}
		if r.CheckInDeadline == nil || !s.clk.Now().After(*r.CheckInDeadline) {
			return apperrors.State("DEADLINE_NOT_REACHED", "the check-in window is still open")
		}

		r.Status = model.StatusCancelled
		if err := s.reservationRepo.SaveTx(tx, r); err != nil {
			return err
		}
		if err := s.resourceRepo.SetCurrentStateTx(tx, r.ReservationType, r.ItemID, model.ResourceAvailable, nil); err != nil {
			return err
		}
		reservation = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.emitTimeoutCancellation(ctx, reservation)
	s.invalidateBoard(ctx, reservation.ReservationType, reservation.ReservationDate)

	return reservation, nil
}

func (s *reservationService) emitTimeoutCancellation(ctx context.Context, r *model.Reservation) {
	s.emit(ctx, EmitInput{
		UserID:        r.UserID,
		ReservationID: &r.ID,
		Type:          model.NotificationCancelled,
		Title:         "Reservation cancelled",
		Message: fmt.Sprintf("Your reservation for %s was cancelled automatically: the check-in window expired.",
			s.resourceName(ctx, r.ReservationType, r.ItemID)),
		Metadata: map[string]interface{}{"reason": "checkin_timeout"},
	})
}

// emit records a notification, logging instead of failing the transition.
func (s *reservationService) emit(ctx context.Context, input EmitInput) {
	if s.notifications == nil {
		return
	}
	if _, err := s.notifications.Emit(ctx, input); err != nil {
		log.Printf("[reservation] emit notification failed for user %d: %v", input.UserID, err)
	}
}

// invalidateBoard drops the cached status board for the resource type/date.
func (s *reservationService) invalidateBoard(ctx context.Context, rtype model.ResourceType, date string) {
	_ = s.cache.Delete(ctx, cache.StatusBoardKey(rtype, date))
}

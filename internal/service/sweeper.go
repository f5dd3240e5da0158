package service

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/nabnoey/TK-libralies-System/internal/clock"
	apperrors "github.com/nabnoey/TK-libralies-System/internal/errors"
	"github.com/nabnoey/TK-libralies-System/internal/model"
	"github.com/nabnoey/TK-libralies-System/internal/repository"
)

// Sweeper is the recurring background process that expires stale
// reservations. It holds no in-memory timers: each tick re-derives what
// needs action from the persisted deadlines, so a process restart loses no
// pending expirations and multiple instances stay safe through the
// idempotent transitions.
type Sweeper struct {
	reservationRepo repository.ReservationRepository
	engine          ReservationService
	notifications   NotificationService
	clk             clock.Clock
	policy          ReservationPolicy
	interval        time.Duration

	running atomic.Bool
}

// NewSweeper creates a sweeper driving the given engine.
func NewSweeper(
	reservationRepo repository.ReservationRepository,
	engine ReservationService,
	notifications NotificationService,
	clk clock.Clock,
	policy ReservationPolicy,
	interval time.Duration,
) *Sweeper {
	return &Sweeper{
		reservationRepo: reservationRepo,
		engine:          engine,
		notifications:   notifications,
		clk:             clk,
		policy:          policy,
		interval:        interval,
	}
}

// Run ticks until the context is cancelled. It never returns an error to a
// caller; per-reservation failures are logged and the sweep moves on.
func (s *Sweeper) Run(ctx context.Context) {
	log.Printf("[sweeper] started, interval %s", s.interval)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Tick(ctx)
		case <-ctx.Done():
			log.Printf("[sweeper] stopped")
			return
		}
	}
}

// Tick runs both sweeps once. Overlapping ticks are prevented: if the
// previous tick is still running, this one is skipped.
func (s *Sweeper) Tick(ctx context.Context) {
	if !s.running.CompareAndSwap(false, true) {
		log.Printf("[sweeper] previous tick still running, skipping")
		return
	}
	defer s.running.Store(false)

	s.sweepCheckInTimeouts(ctx)
	s.sweepUsageDurations(ctx)
}

// sweepCheckInTimeouts cancels reservations that were approved but never
// checked in within the grace window.
func (s *Sweeper) sweepCheckInTimeouts(ctx context.Context) {
	expired, err := s.reservationRepo.ListExpiredAwaitingCheckIn(ctx, s.clk.Now())
	if err != nil {
		log.Printf("[sweeper] list expired check-ins failed: %v", err)
		return
	}

	for i := range expired {
		r := &expired[i]
		if _, err := s.engine.ExpireOverdueCheckIn(ctx, r.ID); err != nil {
			if app, ok := apperrors.AsAppError(err); ok && app.Kind == apperrors.KindState {
				continue // already transitioned by a racing check-in or cancel
			}
			log.Printf("[sweeper] expire check-in for %s failed: %v", r.ID, err)
			continue
		}
		log.Printf("[sweeper] cancelled %s: check-in deadline passed", r.ID)
	}
}

// sweepUsageDurations completes today's confirmed reservations whose allowed
// usage time has elapsed. It only marks the record and frees the resource
// for the next approval; physically vacating the room is the venue's job.
func (s *Sweeper) sweepUsageDurations(ctx context.Context) {
	today := clock.Today(s.clk)
	confirmed, err := s.reservationRepo.ListConfirmedOnDate(ctx, today)
	if err != nil {
		log.Printf("[sweeper] list confirmed reservations failed: %v", err)
		return
	}

	now := s.clk.Now()
	for i := range confirmed {
		r := &confirmed[i]
		if r.CheckedInAt == nil {
			continue
		}
		allowed := s.policy.Usage(r.ReservationType)
		used := now.Sub(*r.CheckedInAt)
		if used < allowed {
			continue
		}

		if _, err := s.engine.Complete(ctx, r.ID); err != nil {
			if app, ok := apperrors.AsAppError(err); ok && app.Kind == apperrors.KindState {
				continue // already completed or cancelled elsewhere
			}
			log.Printf("[sweeper] complete %s failed: %v", r.ID, err)
			continue
		}
		log.Printf("[sweeper] completed %s after %s of use", r.ID, used.Round(time.Minute))

		s.notifySessionEnded(ctx, r, allowed)
	}
}

func (s *Sweeper) notifySessionEnded(ctx context.Context, r *model.Reservation, allowed time.Duration) {
	if s.notifications == nil {
		return
	}
	minutes := int(allowed / time.Minute)
	_, err := s.notifications.Emit(ctx, EmitInput{
		UserID:        r.UserID,
		ReservationID: &r.ID,
		Type:          model.NotificationCompleted,
		Title:         "Session time ended",
		Message: fmt.Sprintf("Your %s session time (%d minutes) has ended. Please vacate for the next group.",
			r.ReservationType, minutes),
		Metadata: map[string]interface{}{
			"allowed_minutes": minutes,
			"auto_completed":  true,
		},
	})
	if err != nil {
		log.Printf("[sweeper] emit session-ended notification failed for user %d: %v", r.UserID, err)
	}
}

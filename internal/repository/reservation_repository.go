package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nabnoey/TK-libralies-System/internal/model"
)

// ReservationRepository is the durable record of every reservation; queues
// are derived from it, never stored separately.
//
// The Tx variants run against a transaction started by WithTransaction so
// that validate-then-write sequences (queue-number assignment, the
// single-active-occupant check) commit atomically. Lookups whose absence is
// the happy path return (nil, nil) instead of gorm.ErrRecordNotFound.
type ReservationRepository interface {
	WithTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error

	Create(ctx context.Context, reservation *model.Reservation) error
	CreateTx(tx *gorm.DB, reservation *model.Reservation) error
	Save(ctx context.Context, reservation *model.Reservation) error
	SaveTx(tx *gorm.DB, reservation *model.Reservation) error

	FindByID(ctx context.Context, id uuid.UUID) (*model.Reservation, error)
	FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Reservation, error)
	ListByUser(ctx context.Context, userID uint) ([]model.Reservation, error)
	ListAll(ctx context.Context) ([]model.Reservation, error)

	FindActiveByUserOnDateTx(tx *gorm.DB, userID uint, date string) (*model.Reservation, error)
	FindByUserTypeDateTx(tx *gorm.DB, userID uint, rtype model.ResourceType, date string) (*model.Reservation, error)
	MaxQueueNumberTx(tx *gorm.DB, rtype model.ResourceType, itemID uint, date string) (int, error)
	FindActiveOnResourceTx(tx *gorm.DB, rtype model.ResourceType, itemID uint, date string) (*model.Reservation, error)
	FindByQueueNumberTx(tx *gorm.DB, rtype model.ResourceType, itemID uint, date string, queueNumber int) (*model.Reservation, error)
	ListQueue(ctx context.Context, rtype model.ResourceType, itemID uint, date string) ([]model.Reservation, error)

	ListExpiredAwaitingCheckIn(ctx context.Context, now time.Time) ([]model.Reservation, error)
	ListConfirmedOnDate(ctx context.Context, date string) ([]model.Reservation, error)
}

type reservationRepository struct {
	db *gorm.DB
}

// NewReservationRepository creates a new reservation repository.
func NewReservationRepository(db *gorm.DB) ReservationRepository {
	return &reservationRepository{db: db}
}

// WithTransaction executes fn within a database transaction.
func (r *reservationRepository) WithTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(tx)
	})
}

// Create creates a new reservation record.
func (r *reservationRepository) Create(ctx context.Context, reservation *model.Reservation) error {
	return r.db.WithContext(ctx).Create(reservation).Error
}

// CreateTx creates a new reservation record within a transaction.
func (r *reservationRepository) CreateTx(tx *gorm.DB, reservation *model.Reservation) error {
	return tx.Create(reservation).Error
}

// Save updates an existing reservation record.
func (r *reservationRepository) Save(ctx context.Context, reservation *model.Reservation) error {
	return r.db.WithContext(ctx).Save(reservation).Error
}

// SaveTx updates an existing reservation record within a transaction.
func (r *reservationRepository) SaveTx(tx *gorm.DB, reservation *model.Reservation) error {
	return tx.Save(reservation).Error
}

// FindByID finds a reservation by ID.
func (r *reservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Reservation, error) {
	var reservation model.Reservation
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&reservation).Error; err != nil {
		return nil, err
	}
	return &reservation, nil
}

// FindByIDForUpdateTx finds a reservation by ID with a row-level lock. Every
// state transition re-reads through this inside its transaction so that a
// racing transition observes the committed status, not a stale one.
func (r *reservationRepository) FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Reservation, error) {
	var reservation model.Reservation
	if err := tx.Set("gorm:query_option", "FOR UPDATE").
		Where("id = ?", id).First(&reservation).Error; err != nil {
		return nil, err
	}
	return &reservation, nil
}

// ListByUser lists a user's reservations, newest date first.
func (r *reservationRepository) ListByUser(ctx context.Context, userID uint) ([]model.Reservation, error) {
	var reservations []model.Reservation
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("reservation_date DESC, created_at DESC").
		Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

// ListAll lists every reservation with its owner, newest date first.
func (r *reservationRepository) ListAll(ctx context.Context) ([]model.Reservation, error) {
	var reservations []model.Reservation
	if err := r.db.WithContext(ctx).
		Preload("User").
		Order("reservation_date DESC, created_at DESC").
		Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

// FindActiveByUserOnDateTx finds the user's non-terminal reservation on the
// date across both resource types, if any (global exclusivity check).
func (r *reservationRepository) FindActiveByUserOnDateTx(tx *gorm.DB, userID uint, date string) (*model.Reservation, error) {
	var reservation model.Reservation
	err := tx.Set("gorm:query_option", "FOR UPDATE").
		Where("user_id = ? AND reservation_date = ? AND status IN ?", userID, date, model.NonTerminalStatuses).
		First(&reservation).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

// FindByUserTypeDateTx finds the user's reservation of the given type on the
// date in any status including terminal ones (daily-use cap check).
func (r *reservationRepository) FindByUserTypeDateTx(tx *gorm.DB, userID uint, rtype model.ResourceType, date string) (*model.Reservation, error) {
	var reservation model.Reservation
	err := tx.
		Where("user_id = ? AND reservation_type = ? AND reservation_date = ?", userID, rtype, date).
		First(&reservation).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

// MaxQueueNumberTx returns the highest queue number among non-terminal
// reservations for the resource/date, or 0 if none. The rows are locked so
// concurrent creates for the same resource serialize on the assignment.
func (r *reservationRepository) MaxQueueNumberTx(tx *gorm.DB, rtype model.ResourceType, itemID uint, date string) (int, error) {
	var max *int
	err := tx.Set("gorm:query_option", "FOR UPDATE").
		Model(&model.Reservation{}).
		Where("reservation_type = ? AND item_id = ? AND reservation_date = ? AND status IN ?",
			rtype, itemID, date, model.NonTerminalStatuses).
		Select("MAX(queue_number)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max, nil
}

// FindActiveOnResourceTx finds the reservation currently holding the
// resource on the date (awaiting_checkin or confirmed), if any.
func (r *reservationRepository) FindActiveOnResourceTx(tx *gorm.DB, rtype model.ResourceType, itemID uint, date string) (*model.Reservation, error) {
	var reservation model.Reservation
	err := tx.Set("gorm:query_option", "FOR UPDATE").
		Where("reservation_type = ? AND item_id = ? AND reservation_date = ? AND status IN ?",
			rtype, itemID, date, model.ActiveStatuses).
		First(&reservation).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

// FindByQueueNumberTx finds the waiting reservation with the given queue
// number on the resource/date, considering pending and awaiting_checkin only.
func (r *reservationRepository) FindByQueueNumberTx(tx *gorm.DB, rtype model.ResourceType, itemID uint, date string, queueNumber int) (*model.Reservation, error) {
	var reservation model.Reservation
	err := tx.
		Where("reservation_type = ? AND item_id = ? AND reservation_date = ? AND queue_number = ? AND status IN ?",
			rtype, itemID, date, queueNumber,
			[]model.ReservationStatus{model.StatusPending, model.StatusAwaitingCheckIn}).
		First(&reservation).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

// ListQueue lists the non-terminal reservations for a resource/date in queue
// order, owners included.
func (r *reservationRepository) ListQueue(ctx context.Context, rtype model.ResourceType, itemID uint, date string) ([]model.Reservation, error) {
	var reservations []model.Reservation
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("reservation_type = ? AND item_id = ? AND reservation_date = ? AND status IN ?",
			rtype, itemID, date, model.NonTerminalStatuses).
		Order("queue_number ASC").
		Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

// ListExpiredAwaitingCheckIn lists reservations still awaiting check-in whose
// deadline has passed.
func (r *reservationRepository) ListExpiredAwaitingCheckIn(ctx context.Context, now time.Time) ([]model.Reservation, error) {
	var reservations []model.Reservation
	if err := r.db.WithContext(ctx).
		Where("status = ? AND check_in_deadline IS NOT NULL AND check_in_deadline < ?", model.StatusAwaitingCheckIn, now).
		Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

// ListConfirmedOnDate lists checked-in reservations for the date.
func (r *reservationRepository) ListConfirmedOnDate(ctx context.Context, date string) ([]model.Reservation, error) {
	var reservations []model.Reservation
	if err := r.db.WithContext(ctx).
		Where("status = ? AND reservation_date = ? AND checked_in_at IS NOT NULL", model.StatusConfirmed, date).
		Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ReservationStatus represents the lifecycle state of a reservation.
type ReservationStatus string

const (
	StatusPending         ReservationStatus = "pending"
	StatusAwaitingCheckIn ReservationStatus = "awaiting_checkin"
	StatusConfirmed       ReservationStatus = "confirmed"
	StatusCancelled       ReservationStatus = "cancelled"
	StatusCompleted       ReservationStatus = "completed"
)

// Valid reports whether s is one of the known statuses.
func (s ReservationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAwaitingCheckIn, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// Terminal reports whether s is an end state. Terminal reservations are kept
// forever, never deleted.
func (s ReservationStatus) Terminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// ActiveStatuses are the statuses in which a reservation holds its resource.
var ActiveStatuses = []ReservationStatus{StatusAwaitingCheckIn, StatusConfirmed}

// NonTerminalStatuses are the statuses that still occupy a queue position.
var NonTerminalStatuses = []ReservationStatus{StatusPending, StatusAwaitingCheckIn, StatusConfirmed}

// Reservation is a booking of one karaoke room or movie seat for a calendar
// date, on behalf of a group of 4-6 people (owner + 3-5 registered friends).
type Reservation struct {
	ID              uuid.UUID                   `json:"reservation_id" gorm:"type:char(36);primaryKey"`
	UserID          uint                        `json:"user_id" gorm:"not null;index:idx_user_date_status"`
	ReservationType ResourceType                `json:"reservation_type" gorm:"type:varchar(20);not null;index:idx_item_queue"`
	ItemID          uint                        `json:"item_id" gorm:"not null;index:idx_item_queue"` // karaokeId or movieId depending on type
	ReservationDate string                      `json:"reservation_date" gorm:"type:date;not null;index:idx_user_date_status;index:idx_item_queue"`
	FriendEmails    datatypes.JSONSlice[string] `json:"friend_emails" gorm:"not null"`
	QueueNumber     int                         `json:"queue_number" gorm:"not null"`
	Status          ReservationStatus           `json:"status" gorm:"type:varchar(20);not null;default:'pending';index:idx_user_date_status"`
	ApprovedAt      *time.Time                  `json:"approved_at"`
	CheckInDeadline *time.Time                  `json:"check_in_deadline"`
	CheckedInAt     *time.Time                  `json:"checked_in_at"`
	StartedAt       *time.Time                  `json:"started_at"`
	EndedAt         *time.Time                  `json:"ended_at"`
	CreatedAt       time.Time                   `json:"created_at"`
	UpdatedAt       time.Time                   `json:"updated_at"`

	// Relations
	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// BeforeCreate sets UUID before creating the record.
func (r *Reservation) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// GroupSize is the number of people covered by the reservation: the owner
// plus every named friend.
func (r *Reservation) GroupSize() int {
	return len(r.FriendEmails) + 1
}

// HoldsResource reports whether the reservation currently claims its room or
// seat (it is the in-flight occupant, regardless of check-in).
func (r *Reservation) HoldsResource() bool {
	return r.Status == StatusAwaitingCheckIn || r.Status == StatusConfirmed
}

// PeopleAhead is the number of reservations queued before this one.
func (r *Reservation) PeopleAhead() int {
	if r.QueueNumber <= 1 {
		return 0
	}
	return r.QueueNumber - 1
}

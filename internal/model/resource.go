package model

import (
	"time"

	"github.com/google/uuid"
)

// ResourceType tags the two bookable resource kinds. Reservations reference
// resources polymorphically (type + item id); the concrete table is resolved
// only inside the resource repository.
type ResourceType string

const (
	ResourceKaraoke ResourceType = "karaoke"
	ResourceMovie   ResourceType = "movie"
)

// Valid reports whether the tag is one of the supported kinds.
func (t ResourceType) Valid() bool {
	return t == ResourceKaraoke || t == ResourceMovie
}

// ResourceStatus is the live usage state of a room or seat. It is a
// materialized view of reservation transitions: only the reservation engine
// and the sweeper may write it.
type ResourceStatus string

const (
	ResourceAvailable       ResourceStatus = "available"
	ResourceAwaitingCheckIn ResourceStatus = "awaiting_checkin"
	ResourceInUse           ResourceStatus = "in_use"
)

// KaraokeRoom is a bookable karaoke room.
type KaraokeRoom struct {
	KaraokeID            uint           `json:"karaoke_id" gorm:"primaryKey"`
	Name                 string         `json:"name" gorm:"size:255;not null"`
	Image                string         `json:"image" gorm:"size:512"`
	Status               bool           `json:"status" gorm:"not null;default:true;index"` // enabled for booking
	CurrentStatus        ResourceStatus `json:"current_status" gorm:"type:varchar(20);not null;default:'available'"`
	CurrentReservationID *uuid.UUID     `json:"current_reservation_id" gorm:"type:char(36)"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
}

// MovieSeat is a bookable movie-viewing seat.
type MovieSeat struct {
	MovieID              uint           `json:"movie_id" gorm:"primaryKey"`
	Name                 string         `json:"name" gorm:"size:255;not null"`
	Image                string         `json:"image" gorm:"size:512"`
	Status               bool           `json:"status" gorm:"not null;default:true;index"`
	CurrentStatus        ResourceStatus `json:"current_status" gorm:"type:varchar(20);not null;default:'available'"`
	CurrentReservationID *uuid.UUID     `json:"current_reservation_id" gorm:"type:char(36)"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
}

// Resource is the registry view over both concrete tables, the shape the
// engine works with.
type Resource struct {
	Type                 ResourceType   `json:"type"`
	ID                   uint           `json:"id"`
	Name                 string         `json:"name"`
	Image                string         `json:"image,omitempty"`
	Enabled              bool           `json:"enabled"`
	CurrentStatus        ResourceStatus `json:"current_status"`
	CurrentReservationID *uuid.UUID     `json:"current_reservation_id"`
}

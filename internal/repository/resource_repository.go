package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nabnoey/TK-libralies-System/internal/model"
)

// ResourceRepository is the registry over the two concrete resource tables.
// The polymorphic (type, itemId) reference carried by reservations is
// resolved to KaraokeRoom or MovieSeat only here. CurrentStatus and
// CurrentReservationID form a materialized view of reservation transitions:
// SetCurrentState is called exclusively by the reservation engine and the
// sweeper, inside the same transaction as the reservation write.
type ResourceRepository interface {
	Get(ctx context.Context, rtype model.ResourceType, id uint) (*model.Resource, error)
	ListEnabled(ctx context.Context, rtype model.ResourceType) ([]model.Resource, error)
	SetCurrentState(ctx context.Context, rtype model.ResourceType, id uint, status model.ResourceStatus, reservationID *uuid.UUID) error
	SetCurrentStateTx(tx *gorm.DB, rtype model.ResourceType, id uint, status model.ResourceStatus, reservationID *uuid.UUID) error
}

type resourceRepository struct {
	db *gorm.DB
}

// NewResourceRepository creates a new resource repository.
func NewResourceRepository(db *gorm.DB) ResourceRepository {
	return &resourceRepository{db: db}
}

// Get resolves a polymorphic resource reference to the registry view.
func (r *resourceRepository) Get(ctx context.Context, rtype model.ResourceType, id uint) (*model.Resource, error) {
	switch rtype {
	case model.ResourceKaraoke:
		var room model.KaraokeRoom
		if err := r.db.WithContext(ctx).Where("karaoke_id = ?", id).First(&room).Error; err != nil {
			return nil, err
		}
		return karaokeView(&room), nil
	case model.ResourceMovie:
		var seat model.MovieSeat
		if err := r.db.WithContext(ctx).Where("movie_id = ?", id).First(&seat).Error; err != nil {
			return nil, err
		}
		return movieView(&seat), nil
	default:
		return nil, gorm.ErrRecordNotFound
	}
}

// ListEnabled returns every bookable resource of the given type, id ascending.
func (r *resourceRepository) ListEnabled(ctx context.Context, rtype model.ResourceType) ([]model.Resource, error) {
	var out []model.Resource
	switch rtype {
	case model.ResourceKaraoke:
		var rooms []model.KaraokeRoom
		if err := r.db.WithContext(ctx).Where("status = ?", true).Order("karaoke_id ASC").Find(&rooms).Error; err != nil {
			return nil, err
		}
		for i := range rooms {
			out = append(out, *karaokeView(&rooms[i]))
		}
	case model.ResourceMovie:
		var seats []model.MovieSeat
		if err := r.db.WithContext(ctx).Where("status = ?", true).Order("movie_id ASC").Find(&seats).Error; err != nil {
			return nil, err
		}
		for i := range seats {
			out = append(out, *movieView(&seats[i]))
		}
	default:
		return nil, gorm.ErrRecordNotFound
	}
	return out, nil
}

// SetCurrentState updates the materialized usage state of a resource.
func (r *resourceRepository) SetCurrentState(ctx context.Context, rtype model.ResourceType, id uint, status model.ResourceStatus, reservationID *uuid.UUID) error {
	return r.SetCurrentStateTx(r.db.WithContext(ctx), rtype, id, status, reservationID)
}

// SetCurrentStateTx updates the materialized usage state within a transaction.
func (r *resourceRepository) SetCurrentStateTx(tx *gorm.DB, rtype model.ResourceType, id uint, status model.ResourceStatus, reservationID *uuid.UUID) error {
	updates := map[string]interface{}{
		"current_status":         status,
		"current_reservation_id": reservationID,
	}
	switch rtype {
	case model.ResourceKaraoke:
		return tx.Model(&model.KaraokeRoom{}).Where("karaoke_id = ?", id).Updates(updates).Error
	case model.ResourceMovie:
		return tx.Model(&model.MovieSeat{}).Where("movie_id = ?", id).Updates(updates).Error
	default:
		return gorm.ErrRecordNotFound
	}
}

func karaokeView(room *model.KaraokeRoom) *model.Resource {
	return &model.Resource{
		Type:                 model.ResourceKaraoke,
		ID:                   room.KaraokeID,
		Name:                 room.Name,
		Image:                room.Image,
		Enabled:              room.Status,
		CurrentStatus:        room.CurrentStatus,
		CurrentReservationID: room.CurrentReservationID,
	}
}

func movieView(seat *model.MovieSeat) *model.Resource {
	return &model.Resource{
		Type:                 model.ResourceMovie,
		ID:                   seat.MovieID,
		Name:                 seat.Name,
		Image:                seat.Image,
		Enabled:              seat.Status,
		CurrentStatus:        seat.CurrentStatus,
		CurrentReservationID: seat.CurrentReservationID,
	}
}

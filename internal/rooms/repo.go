package rooms

import (
	"context"
	"time"

	"github.com/cjvillanueva/casamar-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository handles room catalog persistence.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindByID(ctx context.Context, id int) (*models.Room, error)
	ListActive(ctx context.Context, guests *int) ([]models.Room, error)
	ListBookingsOverlapping(ctx context.Context, roomID int, from, to time.Time) ([]models.Booking, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a room repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindByID(ctx context.Context, id int) (*models.Room, error) {
	var room models.Room
	if err := r.db.WithContext(ctx).
		Preload("Amenities").
		Preload("GalleryImages", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("id = ?", id).
		First(&room).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &room, nil
}

func (r *repository) ListActive(ctx context.Context, guests *int) ([]models.Room, error) {
	query := r.db.WithContext(ctx).Where("available = ?", true)
	if guests != nil {
		query = query.Where("min_guests <= ? AND max_guests >= ?", *guests, *guests)
	}

	var rooms []models.Room
	if err := query.Order("id ASC").Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

func (r *repository) ListBookingsOverlapping(ctx context.Context, roomID int, from, to time.Time) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Where("room_id = ? AND check_out > ? AND check_in < ?", roomID, from, to).
		Order("check_in ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

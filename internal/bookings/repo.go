package bookings

import (
	"context"
	"time"

	"github.com/cjvillanueva/casamar-backend/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository handles booking persistence.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindRoom(ctx context.Context, id int) (*models.Room, error)
	FindRoomForUpdate(ctx context.Context, id int) (*models.Room, error)
	ListOverlapping(ctx context.Context, roomID int, checkIn, checkOut time.Time) ([]models.Booking, error)
	Create(ctx context.Context, booking *models.Booking) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a booking repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindRoom(ctx context.Context, id int) (*models.Room, error) {
	var room models.Room
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&room).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &room, nil
}

// FindRoomForUpdate loads the room under a row lock so concurrent admissions
// for the same room serialize on the capacity recheck. SQLite has no FOR
// UPDATE; its single-writer model covers the test path.
func (r *repository) FindRoomForUpdate(ctx context.Context, id int) (*models.Room, error) {
	query := r.db.WithContext(ctx)
	if r.db.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var room models.Room
	if err := query.Where("id = ?", id).First(&room).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &room, nil
}

func (r *repository) ListOverlapping(ctx context.Context, roomID int, checkIn, checkOut time.Time) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Where("room_id = ? AND check_out > ? AND check_in < ?", roomID, checkIn, checkOut).
		Order("check_in ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *repository) Create(ctx context.Context, booking *models.Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

package models

import "time"

// Booking occupies one unit of a room over the half-open interval
// [CheckIn, CheckOut). Bookings are immutable once admitted.
type Booking struct {
	ID            int       `gorm:"column:id;primaryKey;autoIncrement"`
	RoomID        int       `gorm:"column:room_id;not null;index"`
	CheckIn       time.Time `gorm:"column:check_in;type:date;not null"`
	CheckOut      time.Time `gorm:"column:check_out;type:date;not null"`
	Guests        int       `gorm:"column:guests;not null"`
	GuestName     string    `gorm:"column:guest_name;size:100;not null"`
	GuestEmail    string    `gorm:"column:guest_email;size:200;not null"`
	ContactNumber string    `gorm:"column:contact_number;size:50;not null"`
	CreatedAt     time.Time `gorm:"column:created_at;not null"`
}

func (Booking) TableName() string { return "bookings" }

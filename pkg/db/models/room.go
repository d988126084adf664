package models

// Room is a bookable listing. TotalUnits counts the interchangeable physical
// units sold under the listing; a room with TotalUnits=2 can hold two
// overlapping bookings.
type Room struct {
	ID          int     `gorm:"column:id;primaryKey;autoIncrement"`
	Name        string  `gorm:"column:name;size:100;not null"`
	Image       *string `gorm:"column:image;size:500"`
	Beds        string  `gorm:"column:beds;size:50"`
	MinGuests   int     `gorm:"column:min_guests;not null;default:1"`
	MaxGuests   int     `gorm:"column:max_guests;not null"`
	Price       int     `gorm:"column:price;not null"`
	// No default tag: gorm would drop a false value on insert and take the
	// column default, making inactive rooms impossible to create.
	Available   bool    `gorm:"column:available;not null"`
	Description string  `gorm:"column:description;type:text"`
	TotalUnits  int     `gorm:"column:total_units;not null;default:1"`

	Amenities     []Amenity      `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE"`
	GalleryImages []GalleryImage `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE"`
	Bookings      []Booking      `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE"`
}

func (Room) TableName() string { return "rooms" }

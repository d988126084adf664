package models

// Amenity is display-only room metadata.
type Amenity struct {
	ID     int    `gorm:"column:id;primaryKey;autoIncrement"`
	RoomID int    `gorm:"column:room_id;not null;index"`
	Name   string `gorm:"column:name;size:100;not null"`
}

func (Amenity) TableName() string { return "amenities" }

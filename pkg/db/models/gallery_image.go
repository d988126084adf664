package models

// GalleryImage is one entry in a room's ordered image gallery.
type GalleryImage struct {
	ID       int    `gorm:"column:id;primaryKey;autoIncrement"`
	RoomID   int    `gorm:"column:room_id;not null;index"`
	ImageURL string `gorm:"column:image_url;size:500;not null"`
	Position int    `gorm:"column:position;not null;default:0"`
}

func (GalleryImage) TableName() string { return "gallery_images" }

package rooms

import (
	"time"

	"github.com/cjvillanueva/casamar-backend/internal/availability"
	"github.com/cjvillanueva/casamar-backend/pkg/db/models"
)

// RoomSummary is the catalog read model. AvailableUnits is a projection
// computed per search, never written back to the entity.
type RoomSummary struct {
	ID             int     `json:"id"`
	Name           string  `json:"name"`
	Image          *string `json:"image"`
	Beds           string  `json:"beds"`
	MinGuests      int     `json:"min_guests"`
	MaxGuests      int     `json:"max_guests"`
	Price          int     `json:"price"`
	Description    string  `json:"description"`
	TotalUnits     int     `json:"total_units"`
	AvailableUnits int     `json:"available_units"`
}

// RoomDetail extends RoomSummary with display-only children.
type RoomDetail struct {
	RoomSummary
	Amenities []string `json:"amenities"`
	Gallery   []string `json:"gallery"`
}

// CalendarPayload is the per-day availability response for a three-month
// window. End date is exclusive.
type CalendarPayload struct {
	RoomID       int                                  `json:"room_id"`
	TotalUnits   int                                  `json:"total_units"`
	Availability map[string]availability.DayOccupancy `json:"availability"`
	StartDate    string                               `json:"start_date"`
	EndDate      string                               `json:"end_date"`
}

// SearchInput narrows the catalog listing. Dates are optional but must be
// supplied together.
type SearchInput struct {
	Guests   *int
	CheckIn  *time.Time
	CheckOut *time.Time
}

func summarize(room models.Room, availableUnits int) RoomSummary {
	return RoomSummary{
		ID:             room.ID,
		Name:           room.Name,
		Image:          room.Image,
		Beds:           room.Beds,
		MinGuests:      room.MinGuests,
		MaxGuests:      room.MaxGuests,
		Price:          room.Price,
		Description:    room.Description,
		TotalUnits:     room.TotalUnits,
		AvailableUnits: availableUnits,
	}
}

func detail(room models.Room, availableUnits int) RoomDetail {
	amenities := make([]string, 0, len(room.Amenities))
	for _, a := range room.Amenities {
		amenities = append(amenities, a.Name)
	}
	gallery := make([]string, 0, len(room.GalleryImages))
	for _, img := range room.GalleryImages {
		gallery = append(gallery, img.ImageURL)
	}
	return RoomDetail{
		RoomSummary: summarize(room, availableUnits),
		Amenities:   amenities,
		Gallery:     gallery,
	}
}

func spansOf(bookings []models.Booking) []availability.Span {
	spans := make([]availability.Span, 0, len(bookings))
	for _, b := range bookings {
		spans = append(spans, availability.Span{CheckIn: b.CheckIn, CheckOut: b.CheckOut})
	}
	return spans
}

package bookings

import "time"

// AdmitInput is one booking admission attempt. Dates stay as raw strings so
// the service owns the parse step and its error shape.
type AdmitInput struct {
	RoomID        int
	CheckIn       string
	CheckOut      string
	Guests        int
	GuestName     string
	GuestEmail    string
	ContactNumber string
}

// AdmitResult is returned to the caller after a committed admission.
type AdmitResult struct {
	BookingID      int       `json:"booking_id"`
	RoomID         int       `json:"room_id"`
	RoomName       string    `json:"room_name"`
	CheckIn        string    `json:"check_in"`
	CheckOut       string    `json:"check_out"`
	Guests         int       `json:"guests"`
	Nights         int       `json:"nights"`
	PricePerNight  int       `json:"price_per_night"`
	TotalPrice     int       `json:"total_price"`
	RemainingUnits int       `json:"remaining_units"`
	TotalUnits     int       `json:"total_units"`
	CreatedAt      time.Time `json:"created_at"`
}

// Rejection reasons carried in error details and metrics labels.
const (
	ReasonMissingFields         = "missing_fields"
	ReasonInvalidEmail          = "invalid_email"
	ReasonInvalidDateFormat     = "invalid_date_format"
	ReasonCheckoutBeforeCheckin = "checkout_before_checkin"
	ReasonCheckinInPast         = "checkin_in_past"
	ReasonRoomNotFound          = "room_not_found"
	ReasonGuestCountOutOfRange  = "guest_count_out_of_range"
	ReasonNoUnitsAvailable      = "no_units_available"
	ReasonStorageFailure        = "storage_failure"
)

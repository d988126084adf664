package controllers

import (
	"net/http"

	"github.com/cjvillanueva/casamar-backend/api/responses"
	"github.com/cjvillanueva/casamar-backend/api/validators"
	"github.com/cjvillanueva/casamar-backend/internal/bookings"
	pkgerrors "github.com/cjvillanueva/casamar-backend/pkg/errors"
	"github.com/cjvillanueva/casamar-backend/pkg/logger"
)

// Presence and shape checks live in the admission service so every caller
// gets the same rejection messages; the payload carries raw values through.
type createBookingPayload struct {
	RoomID        int    `json:"room_id"`
	CheckIn       string `json:"check_in"`
	CheckOut      string `json:"check_out"`
	Guests        int    `json:"guests"`
	GuestName     string `json:"guest_name"`
	GuestEmail    string `json:"guest_email"`
	ContactNumber string `json:"contact_number"`
}

// BookingCreate admits a new booking.
func BookingCreate(svc *bookings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "bookings service unavailable"))
			return
		}

		var payload createBookingPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if logg != nil {
			ctx = logg.WithRoomID(ctx, payload.RoomID)
		}

		result, err := svc.Admit(ctx, bookings.AdmitInput{
			RoomID:        payload.RoomID,
			CheckIn:       payload.CheckIn,
			CheckOut:      payload.CheckOut,
			Guests:        payload.Guests,
			GuestName:     validators.SanitizeString(payload.GuestName, 100),
			GuestEmail:    validators.SanitizeString(payload.GuestEmail, 200),
			ContactNumber: validators.SanitizeString(payload.ContactNumber, 50),
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if logg != nil {
			ctx = logg.WithBookingID(ctx, result.BookingID)
			logg.Info(ctx, "booking admitted")
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cjvillanueva/casamar-backend/api/responses"
	"github.com/cjvillanueva/casamar-backend/api/validators"
	"github.com/cjvillanueva/casamar-backend/internal/rooms"
	pkgerrors "github.com/cjvillanueva/casamar-backend/pkg/errors"
	"github.com/cjvillanueva/casamar-backend/pkg/logger"
)

// RoomsSearch lists active rooms, optionally filtered by guest count and
// date-range availability.
func RoomsSearch(svc *rooms.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rooms service unavailable"))
			return
		}

		input := rooms.SearchInput{}
		if guests, err := validators.ParseQueryInt(r, "guests", 0, 1, 50); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		} else if guests > 0 {
			input.Guests = &guests
		}

		checkIn, err := validators.ParseQueryDate(r, "checkIn")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		checkOut, err := validators.ParseQueryDate(r, "checkOut")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		input.CheckIn, input.CheckOut = checkIn, checkOut

		summaries, err := svc.Search(ctx, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, summaries)
	}
}

// RoomDetail returns one room with amenities, gallery and remaining units for
// the requested range. Dates default to tonight's stay.
func RoomDetail(svc *rooms.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rooms service unavailable"))
			return
		}

		roomID, err := parseRoomID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		checkIn, err := validators.ParseQueryDate(r, "checkIn")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		checkOut, err := validators.ParseQueryDate(r, "checkOut")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		today := truncateToDay(time.Now().UTC())
		if checkIn == nil {
			checkIn = &today
		}
		if checkOut == nil {
			tomorrow := today.AddDate(0, 0, 1)
			checkOut = &tomorrow
		}

		out, err := svc.Detail(ctx, roomID, *checkIn, *checkOut)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, out)
	}
}

// RoomAvailability returns the three-month per-day occupancy payload used by
// the booking calendar.
func RoomAvailability(svc *rooms.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rooms service unavailable"))
			return
		}

		roomID, err := parseRoomID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		now := time.Now().UTC()
		month, err := validators.ParseQueryInt(r, "month", int(now.Month()), 1, 12)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		year, err := validators.ParseQueryInt(r, "year", now.Year(), 2000, 2200)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		payload, err := svc.Calendar(ctx, roomID, year, time.Month(month))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, payload)
	}
}

func parseRoomID(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "roomId")
	roomID, err := strconv.Atoi(raw)
	if err != nil || roomID <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "room id must be a positive integer")
	}
	return roomID, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

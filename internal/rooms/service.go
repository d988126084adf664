package rooms

import (
	"context"
	"errors"
	"time"

	"github.com/cjvillanueva/casamar-backend/internal/availability"
	pkgerrors "github.com/cjvillanueva/casamar-backend/pkg/errors"
)

// ServiceParams groups dependencies for the rooms service.
type ServiceParams struct {
	Repo Repository
}

// Service serves the room catalog and calendar projections.
type Service struct {
	repo Repository
}

// NewService builds a rooms service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, errors.New("repo is required")
	}
	return &Service{repo: params.Repo}, nil
}

// Search lists active rooms matching the guest filter. When a date range is
// supplied, each room carries its remaining units for that range and fully
// booked rooms are dropped; without dates every room reports full capacity.
func (s *Service) Search(ctx context.Context, input SearchInput) ([]RoomSummary, error) {
	if (input.CheckIn == nil) != (input.CheckOut == nil) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "check-in and check-out must be provided together")
	}
	if input.CheckIn != nil && !input.CheckIn.Before(*input.CheckOut) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "check-out date must be after check-in date")
	}

	records, err := s.repo.ListActive(ctx, input.Guests)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list rooms")
	}

	summaries := make([]RoomSummary, 0, len(records))
	for _, room := range records {
		if input.CheckIn == nil {
			summaries = append(summaries, summarize(room, room.TotalUnits))
			continue
		}
		units, err := s.availableUnits(ctx, room.ID, room.TotalUnits, *input.CheckIn, *input.CheckOut)
		if err != nil {
			return nil, err
		}
		if units <= 0 {
			continue
		}
		summaries = append(summaries, summarize(room, units))
	}
	return summaries, nil
}

// Detail loads one room with amenities and gallery, plus its remaining units
// over [checkIn, checkOut).
func (s *Service) Detail(ctx context.Context, roomID int, checkIn, checkOut time.Time) (*RoomDetail, error) {
	if !checkIn.Before(checkOut) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "check-out date must be after check-in date")
	}

	room, err := s.repo.FindByID(ctx, roomID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load room")
	}
	if room == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "room not found")
	}

	units, err := s.availableUnits(ctx, room.ID, room.TotalUnits, checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	out := detail(*room, units)
	return &out, nil
}

// Calendar builds the per-day occupancy payload for the three-month window
// anchored at the first of the given month.
func (s *Service) Calendar(ctx context.Context, roomID, year int, month time.Month) (*CalendarPayload, error) {
	if month < time.January || month > time.December {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "month must be between 1 and 12")
	}

	room, err := s.repo.FindByID(ctx, roomID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load room")
	}
	if room == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "room not found")
	}

	start, end := availability.CalendarWindow(year, month)
	bookings, err := s.repo.ListBookingsOverlapping(ctx, roomID, start, end)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list bookings")
	}

	return &CalendarPayload{
		RoomID:       room.ID,
		TotalUnits:   room.TotalUnits,
		Availability: availability.PerDayOccupancy(room.TotalUnits, spansOf(bookings), start, end),
		StartDate:    start.Format(availability.DateFormat),
		EndDate:      end.Format(availability.DateFormat),
	}, nil
}

func (s *Service) availableUnits(ctx context.Context, roomID, totalUnits int, checkIn, checkOut time.Time) (int, error) {
	bookings, err := s.repo.ListBookingsOverlapping(ctx, roomID, checkIn, checkOut)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list bookings")
	}
	return availability.AvailableUnits(totalUnits, spansOf(bookings), checkIn, checkOut), nil
}

package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cjvillanueva/casamar-backend/internal/availability"
	"github.com/cjvillanueva/casamar-backend/pkg/db/models"
	pkgerrors "github.com/cjvillanueva/casamar-backend/pkg/errors"
	"github.com/cjvillanueva/casamar-backend/pkg/metrics"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Exporter mirrors committed bookings to an external sink. Implementations
// must never block the caller or return admission-affecting errors.
type Exporter interface {
	ExportBooking(booking models.Booking)
}

// ServiceParams groups dependencies for the booking admission service.
type ServiceParams struct {
	Repo     Repository
	Tx       txRunner
	Exporter Exporter
	Metrics  *metrics.BookingMetrics
	Now      func() time.Time
}

// Service admits bookings: validate, recheck capacity under a row lock,
// commit, then hand the record to the export side channel.
type Service struct {
	repo     Repository
	tx       txRunner
	exporter Exporter
	metrics  *metrics.BookingMetrics
	now      func() time.Time
}

// NewService builds a booking admission service. Exporter and Metrics are
// optional.
func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, errors.New("repo is required")
	}
	if params.Tx == nil {
		return nil, errors.New("transaction runner is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		repo:     params.Repo,
		tx:       params.Tx,
		exporter: params.Exporter,
		metrics:  params.Metrics,
		now:      now,
	}, nil
}

// Admit validates the request, commits a booking if a unit is free, and
// returns the priced confirmation. All checks run before the single write;
// a rejection leaves no partial state.
func (s *Service) Admit(ctx context.Context, input AdmitInput) (*AdmitResult, error) {
	started := s.now()
	result, err := s.admit(ctx, input)
	if err != nil {
		s.metrics.ObserveAdmission("rejected", s.now().Sub(started))
		s.metrics.IncRejected(rejectionReason(err))
		return nil, err
	}
	s.metrics.ObserveAdmission("admitted", s.now().Sub(started))
	s.metrics.IncAdmitted()
	return result, nil
}

func (s *Service) admit(ctx context.Context, input AdmitInput) (*AdmitResult, error) {
	if err := checkPresence(input); err != nil {
		return nil, err
	}
	if err := checkEmailShape(input.GuestEmail); err != nil {
		return nil, err
	}

	checkIn, checkOut, err := parseDates(input.CheckIn, input.CheckOut)
	if err != nil {
		return nil, err
	}
	if !checkIn.Before(checkOut) {
		return nil, reject(pkgerrors.CodeValidation, "Check-out date must be after check-in date", ReasonCheckoutBeforeCheckin)
	}
	if checkIn.Before(s.today()) {
		return nil, reject(pkgerrors.CodeValidation, "Check-in date cannot be in the past", ReasonCheckinInPast)
	}

	room, err := s.repo.FindRoom(ctx, input.RoomID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load room")
	}
	if room == nil {
		return nil, reject(pkgerrors.CodeNotFound, "Room not found", ReasonRoomNotFound)
	}
	if input.Guests < room.MinGuests || input.Guests > room.MaxGuests {
		msg := fmt.Sprintf("Guest count must be between %d and %d", room.MinGuests, room.MaxGuests)
		return nil, reject(pkgerrors.CodeValidation, msg, ReasonGuestCountOutOfRange)
	}

	// Cheap precheck outside the transaction; the authoritative recount runs
	// again under the row lock.
	overlapping, err := s.repo.ListOverlapping(ctx, input.RoomID, checkIn, checkOut)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list overlapping bookings")
	}
	if !availability.IsAvailable(room.TotalUnits, spansOf(overlapping), checkIn, checkOut) {
		return nil, capacityError(room)
	}

	booking := models.Booking{
		RoomID:        input.RoomID,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		Guests:        input.Guests,
		GuestName:     strings.TrimSpace(input.GuestName),
		GuestEmail:    strings.TrimSpace(input.GuestEmail),
		ContactNumber: strings.TrimSpace(input.ContactNumber),
		CreatedAt:     s.now().UTC(),
	}

	var availableAtCommit int
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		locked, err := repo.FindRoomForUpdate(ctx, input.RoomID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lock room")
		}
		if locked == nil {
			return reject(pkgerrors.CodeNotFound, "Room not found", ReasonRoomNotFound)
		}
		committed, err := repo.ListOverlapping(ctx, input.RoomID, checkIn, checkOut)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "recount overlapping bookings")
		}
		availableAtCommit = availability.AvailableUnits(locked.TotalUnits, spansOf(committed), checkIn, checkOut)
		if availableAtCommit <= 0 {
			return capacityError(locked)
		}
		if err := repo.Create(ctx, &booking); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert booking")
		}
		return nil
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "commit booking")
	}

	if s.exporter != nil {
		s.exporter.ExportBooking(booking)
	}

	nights := int(checkOut.Sub(checkIn).Hours() / 24)
	return &AdmitResult{
		BookingID:      booking.ID,
		RoomID:         room.ID,
		RoomName:       room.Name,
		CheckIn:        checkIn.Format(availability.DateFormat),
		CheckOut:       checkOut.Format(availability.DateFormat),
		Guests:         input.Guests,
		Nights:         nights,
		PricePerNight:  room.Price,
		TotalPrice:     room.Price * nights,
		RemainingUnits: availableAtCommit - 1,
		TotalUnits:     room.TotalUnits,
		CreatedAt:      booking.CreatedAt,
	}, nil
}

func (s *Service) today() time.Time {
	now := s.now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func checkPresence(input AdmitInput) error {
	var missing []string
	if input.RoomID == 0 {
		missing = append(missing, "room_id")
	}
	if strings.TrimSpace(input.CheckIn) == "" {
		missing = append(missing, "check_in")
	}
	if strings.TrimSpace(input.CheckOut) == "" {
		missing = append(missing, "check_out")
	}
	if input.Guests == 0 {
		missing = append(missing, "guests")
	}
	if strings.TrimSpace(input.GuestName) == "" {
		missing = append(missing, "guest_name")
	}
	if strings.TrimSpace(input.GuestEmail) == "" {
		missing = append(missing, "guest_email")
	}
	if strings.TrimSpace(input.ContactNumber) == "" {
		missing = append(missing, "contact_number")
	}
	if len(missing) == 0 {
		return nil
	}
	msg := "Missing required fields: " + strings.Join(missing, ", ")
	return pkgerrors.New(pkgerrors.CodeValidation, msg).WithDetails(map[string]any{
		"reason": ReasonMissingFields,
		"fields": missing,
	})
}

// checkEmailShape is a deliberately weak syntactic check, not RFC validation.
func checkEmailShape(email string) error {
	if strings.Contains(email, "@") && strings.Contains(email, ".") {
		return nil
	}
	return reject(pkgerrors.CodeValidation, "Invalid email address", ReasonInvalidEmail)
}

func parseDates(checkInStr, checkOutStr string) (time.Time, time.Time, error) {
	checkIn, err := time.Parse(availability.DateFormat, checkInStr)
	if err != nil {
		return time.Time{}, time.Time{}, reject(pkgerrors.CodeValidation, "Invalid date format", ReasonInvalidDateFormat)
	}
	checkOut, err := time.Parse(availability.DateFormat, checkOutStr)
	if err != nil {
		return time.Time{}, time.Time{}, reject(pkgerrors.CodeValidation, "Invalid date format", ReasonInvalidDateFormat)
	}
	return checkIn, checkOut, nil
}

func spansOf(bookings []models.Booking) []availability.Span {
	spans := make([]availability.Span, 0, len(bookings))
	for _, b := range bookings {
		spans = append(spans, availability.Span{CheckIn: b.CheckIn, CheckOut: b.CheckOut})
	}
	return spans
}

func capacityError(room *models.Room) error {
	msg := fmt.Sprintf("No units available for %s on selected dates", room.Name)
	return pkgerrors.New(pkgerrors.CodeConflict, msg).WithDetails(map[string]any{
		"reason":      ReasonNoUnitsAvailable,
		"room_id":     room.ID,
		"total_units": room.TotalUnits,
	})
}

func reject(code pkgerrors.Code, message, reason string) error {
	return pkgerrors.New(code, message).WithDetails(map[string]any{"reason": reason})
}

func rejectionReason(err error) string {
	typed := pkgerrors.As(err)
	if typed == nil {
		return ReasonStorageFailure
	}
	if details, ok := typed.Details().(map[string]any); ok {
		if reason, ok := details["reason"].(string); ok {
			return reason
		}
	}
	switch typed.Code() {
	case pkgerrors.CodeNotFound:
		return ReasonRoomNotFound
	case pkgerrors.CodeConflict:
		return ReasonNoUnitsAvailable
	default:
		return ReasonStorageFailure
	}
}

// Package export mirrors committed bookings to an external spreadsheet.
// The export path is strictly best-effort: it runs after the booking commit,
// detached from the request, and its failures surface only in logs and
// metrics.
package export

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/cjvillanueva/casamar-backend/internal/availability"
	"github.com/cjvillanueva/casamar-backend/pkg/db/models"
	"github.com/cjvillanueva/casamar-backend/pkg/logger"
	"github.com/cjvillanueva/casamar-backend/pkg/metrics"
	"github.com/sethvargo/go-retry"
)

const defaultTimeout = 10 * time.Second

// RowAppender is the spreadsheet write contract.
type RowAppender interface {
	Append(ctx context.Context, row []any) error
}

// ServiceParams groups dependencies for the export service. Appender may be
// nil, which turns the service into a no-op.
type ServiceParams struct {
	Appender RowAppender
	Logger   *logger.Logger
	Metrics  *metrics.BookingMetrics
	Timeout  time.Duration
}

// Service ships booking rows to the configured appender.
type Service struct {
	appender RowAppender
	log      *logger.Logger
	metrics  *metrics.BookingMetrics
	timeout  time.Duration

	wg sync.WaitGroup
}

// NewService builds an export service. Logger and Metrics are optional.
func NewService(params ServiceParams) *Service {
	timeout := params.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	log := params.Logger
	if log == nil {
		log = logger.New(logger.Options{ServiceName: "export", Output: io.Discard})
	}
	return &Service{
		appender: params.Appender,
		log:      log,
		metrics:  params.Metrics,
		timeout:  timeout,
	}
}

// ExportBooking hands the booking off to a detached goroutine and returns
// immediately. The write gets a bounded timeout and one retry; a panic in the
// appender is contained here.
func (s *Service) ExportBooking(booking models.Booking) {
	if s == nil || s.appender == nil {
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		ctx = s.withBookingFields(ctx, booking)

		defer func() {
			if r := recover(); r != nil {
				s.metrics.IncExportFailure()
				s.logError(ctx, fmt.Errorf("panic: %v", r))
			}
		}()

		backoff := retry.WithMaxRetries(1, retry.NewConstant(500*time.Millisecond))
		err := retry.Do(ctx, backoff, func(ctx context.Context) error {
			if err := s.appender.Append(ctx, bookingRow(booking)); err != nil {
				return retry.RetryableError(err)
			}
			return nil
		})
		if err != nil {
			s.metrics.IncExportFailure()
			s.logError(ctx, err)
			return
		}
		s.metrics.IncExportSuccess()
		if s.log != nil {
			s.log.Info(ctx, "booking exported to spreadsheet")
		}
	}()
}

// Flush blocks until all in-flight exports finish. Used on shutdown.
func (s *Service) Flush() {
	if s == nil {
		return
	}
	s.wg.Wait()
}

func (s *Service) withBookingFields(ctx context.Context, booking models.Booking) context.Context {
	if s.log == nil {
		return ctx
	}
	ctx = s.log.WithBookingID(ctx, booking.ID)
	return s.log.WithRoomID(ctx, booking.RoomID)
}

func (s *Service) logError(ctx context.Context, err error) {
	if s.log == nil {
		return
	}
	s.log.Error(ctx, "booking export failed", err)
}

func bookingRow(booking models.Booking) []any {
	return []any{
		booking.RoomID,
		booking.CheckIn.Format(availability.DateFormat),
		booking.CheckOut.Format(availability.DateFormat),
		booking.Guests,
		booking.GuestName,
		booking.GuestEmail,
		booking.ContactNumber,
		booking.CreatedAt.UTC().Format(time.RFC3339),
	}
}

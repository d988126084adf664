// Package availability computes unit-based room capacity over date ranges.
// All functions are pure: they never touch storage and are safe to call
// concurrently.
package availability

import "time"

// DateFormat is the wire format for calendar dates throughout the API.
const DateFormat = "2006-01-02"

// Span is the half-open occupancy interval [CheckIn, CheckOut) of one booking.
// A booking ending on a given day frees its unit for that day.
type Span struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// DayOccupancy describes one calendar day's unit usage.
type DayOccupancy struct {
	BookedUnits    int  `json:"booked_units"`
	AvailableUnits int  `json:"available_units"`
	TotalUnits     int  `json:"total_units"`
	FullyBooked    bool `json:"fully_booked"`
}

// Overlaps reports whether two half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Touching endpoints do not overlap, which is what
// allows back-to-back checkout/checkin on the same day.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// AvailableUnits returns how many of totalUnits remain free over
// [checkIn, checkOut), never negative. The caller is responsible for ensuring
// checkIn < checkOut; the function just counts overlaps.
func AvailableUnits(totalUnits int, spans []Span, checkIn, checkOut time.Time) int {
	count := 0
	for _, s := range spans {
		if Overlaps(s.CheckIn, s.CheckOut, checkIn, checkOut) {
			count++
		}
	}
	if available := totalUnits - count; available > 0 {
		return available
	}
	return 0
}

// IsAvailable reports whether at least one unit is free over [checkIn, checkOut).
func IsAvailable(totalUnits int, spans []Span, checkIn, checkOut time.Time) bool {
	return AvailableUnits(totalUnits, spans, checkIn, checkOut) > 0
}

// PerDayOccupancy builds a sparse per-day occupancy map for the window
// [windowStart, windowEnd). Each overlapping span contributes one booked unit
// to every day it covers, clipped to the window; days with zero bookings are
// omitted. AvailableUnits is intentionally not clamped: a negative value means
// a unit-day was over-booked and should stay visible.
func PerDayOccupancy(totalUnits int, spans []Span, windowStart, windowEnd time.Time) map[string]DayOccupancy {
	counts := map[string]int{}
	for _, s := range spans {
		if !Overlaps(s.CheckIn, s.CheckOut, windowStart, windowEnd) {
			continue
		}
		day := maxTime(s.CheckIn, windowStart)
		end := minTime(s.CheckOut, windowEnd)
		for day.Before(end) {
			counts[day.Format(DateFormat)]++
			day = day.AddDate(0, 0, 1)
		}
	}

	occupancy := make(map[string]DayOccupancy, len(counts))
	for date, booked := range counts {
		available := totalUnits - booked
		occupancy[date] = DayOccupancy{
			BookedUnits:    booked,
			AvailableUnits: available,
			TotalUnits:     totalUnits,
			FullyBooked:    available == 0,
		}
	}
	return occupancy
}

// CalendarWindow returns the half-open three-month window starting at the
// first day of the anchor month. time.Date normalizes month overflow across
// year boundaries.
func CalendarWindow(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, month+3, 1, 0, 0, 0, 0, time.UTC)
	return start, end
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

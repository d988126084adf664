package availability

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestOverlapsHalfOpen(t *testing.T) {
	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd time.Time
		want                       bool
	}{
		{
			name:   "disjoint ranges",
			aStart: date(2024, 3, 1), aEnd: date(2024, 3, 5),
			bStart: date(2024, 3, 10), bEnd: date(2024, 3, 12),
			want: false,
		},
		{
			name:   "back to back checkout equals checkin",
			aStart: date(2024, 3, 1), aEnd: date(2024, 3, 5),
			bStart: date(2024, 3, 5), bEnd: date(2024, 3, 8),
			want: false,
		},
		{
			name:   "one day overlap",
			aStart: date(2024, 3, 1), aEnd: date(2024, 3, 6),
			bStart: date(2024, 3, 5), bEnd: date(2024, 3, 8),
			want: true,
		},
		{
			name:   "contained range",
			aStart: date(2024, 3, 1), aEnd: date(2024, 3, 31),
			bStart: date(2024, 3, 10), bEnd: date(2024, 3, 12),
			want: true,
		},
		{
			name:   "identical range",
			aStart: date(2024, 3, 1), aEnd: date(2024, 3, 5),
			bStart: date(2024, 3, 1), bEnd: date(2024, 3, 5),
			want: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd); got != tt.want {
				t.Fatalf("Overlaps() = %v, want %v", got, tt.want)
			}
			// Overlap is symmetric.
			if got := Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd); got != tt.want {
				t.Fatalf("Overlaps() reversed = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAvailableUnits(t *testing.T) {
	spans := []Span{
		{CheckIn: date(2024, 3, 1), CheckOut: date(2024, 3, 5)},
		{CheckIn: date(2024, 3, 3), CheckOut: date(2024, 3, 7)},
		{CheckIn: date(2024, 3, 10), CheckOut: date(2024, 3, 12)},
	}

	if got := AvailableUnits(3, spans, date(2024, 3, 4), date(2024, 3, 6)); got != 1 {
		t.Fatalf("AvailableUnits() = %d, want 1", got)
	}
	if got := AvailableUnits(3, spans, date(2024, 3, 20), date(2024, 3, 22)); got != 3 {
		t.Fatalf("AvailableUnits() free window = %d, want 3", got)
	}
	// Back-to-back: a stay starting on an existing checkout day does not collide.
	if got := AvailableUnits(1, spans[2:], date(2024, 3, 12), date(2024, 3, 14)); got != 1 {
		t.Fatalf("AvailableUnits() back-to-back = %d, want 1", got)
	}
}

func TestAvailableUnitsClampsAtZero(t *testing.T) {
	spans := []Span{
		{CheckIn: date(2024, 3, 1), CheckOut: date(2024, 3, 5)},
		{CheckIn: date(2024, 3, 2), CheckOut: date(2024, 3, 6)},
		{CheckIn: date(2024, 3, 3), CheckOut: date(2024, 3, 7)},
	}
	if got := AvailableUnits(2, spans, date(2024, 3, 3), date(2024, 3, 4)); got != 0 {
		t.Fatalf("AvailableUnits() over-booked = %d, want 0", got)
	}
	if IsAvailable(2, spans, date(2024, 3, 3), date(2024, 3, 4)) {
		t.Fatal("IsAvailable() = true for over-booked range")
	}
}

func TestAvailableUnitsNoBookings(t *testing.T) {
	if got := AvailableUnits(4, nil, date(2024, 3, 1), date(2024, 3, 2)); got != 4 {
		t.Fatalf("AvailableUnits() = %d, want 4", got)
	}
}

func TestPerDayOccupancyDayAttribution(t *testing.T) {
	spans := []Span{{CheckIn: date(2024, 3, 10), CheckOut: date(2024, 3, 13)}}
	start, end := date(2024, 3, 1), date(2024, 4, 1)

	occ := PerDayOccupancy(2, spans, start, end)
	if len(occ) != 3 {
		t.Fatalf("occupancy has %d days, want 3: %v", len(occ), occ)
	}
	for _, day := range []string{"2024-03-10", "2024-03-11", "2024-03-12"} {
		got, ok := occ[day]
		if !ok {
			t.Fatalf("missing day %s", day)
		}
		want := DayOccupancy{BookedUnits: 1, AvailableUnits: 1, TotalUnits: 2}
		if got != want {
			t.Fatalf("occ[%s] = %+v, want %+v", day, got, want)
		}
	}
	if _, ok := occ["2024-03-13"]; ok {
		t.Fatal("checkout day must not be occupied")
	}
}

func TestPerDayOccupancyFullyBookedAndUnclamped(t *testing.T) {
	spans := []Span{
		{CheckIn: date(2024, 3, 10), CheckOut: date(2024, 3, 12)},
		{CheckIn: date(2024, 3, 10), CheckOut: date(2024, 3, 11)},
		{CheckIn: date(2024, 3, 10), CheckOut: date(2024, 3, 11)},
	}
	occ := PerDayOccupancy(2, spans, date(2024, 3, 1), date(2024, 4, 1))

	over := occ["2024-03-10"]
	if over.AvailableUnits != -1 {
		t.Fatalf("over-booked day AvailableUnits = %d, want -1", over.AvailableUnits)
	}
	if over.FullyBooked {
		t.Fatal("FullyBooked should only be set at exactly zero available")
	}

	partial := occ["2024-03-11"]
	if partial.BookedUnits != 1 || partial.AvailableUnits != 1 {
		t.Fatalf("occ[2024-03-11] = %+v, want 1 booked / 1 available", partial)
	}

	exact := PerDayOccupancy(1, spans[:1], date(2024, 3, 1), date(2024, 4, 1))
	if day := exact["2024-03-10"]; !day.FullyBooked || day.AvailableUnits != 0 {
		t.Fatalf("exactly full day = %+v, want FullyBooked with 0 available", day)
	}
}

func TestPerDayOccupancyClipsToWindow(t *testing.T) {
	spans := []Span{{CheckIn: date(2024, 2, 27), CheckOut: date(2024, 3, 3)}}
	occ := PerDayOccupancy(1, spans, date(2024, 3, 1), date(2024, 4, 1))

	if len(occ) != 2 {
		t.Fatalf("occupancy has %d days, want 2: %v", len(occ), occ)
	}
	for _, day := range []string{"2024-03-01", "2024-03-02"} {
		if _, ok := occ[day]; !ok {
			t.Fatalf("missing clipped day %s", day)
		}
	}
}

func TestPerDayOccupancyEmptyWindow(t *testing.T) {
	occ := PerDayOccupancy(3, nil, date(2024, 3, 1), date(2024, 4, 1))
	if len(occ) != 0 {
		t.Fatalf("occupancy = %v, want empty map", occ)
	}
}

func TestCalendarWindow(t *testing.T) {
	start, end := CalendarWindow(2024, time.March)
	if !start.Equal(date(2024, 3, 1)) || !end.Equal(date(2024, 6, 1)) {
		t.Fatalf("CalendarWindow(2024, March) = %v, %v", start, end)
	}

	// Month arithmetic must roll over the year boundary.
	start, end = CalendarWindow(2024, time.November)
	if !start.Equal(date(2024, 11, 1)) || !end.Equal(date(2025, 2, 1)) {
		t.Fatalf("CalendarWindow(2024, November) = %v, %v", start, end)
	}
}

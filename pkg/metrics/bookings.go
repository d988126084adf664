package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// BookingMetrics records admission and export outcomes.
type BookingMetrics struct {
	admissionDuration *prometheus.HistogramVec
	admitted          prometheus.Counter
	rejected          *prometheus.CounterVec
	exportSuccess     prometheus.Counter
	exportFailure     prometheus.Counter
}

// NewBookingMetrics registers the booking metrics on the provided registerer.
func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	if reg == nil {
		return &BookingMetrics{}
	}
	admissionDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "booking_admission_duration_seconds",
		Help:    "Duration of booking admission attempts in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	admitted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bookings_admitted_total",
		Help: "Bookings successfully committed.",
	})
	rejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bookings_rejected_total",
		Help: "Booking admissions rejected, by reason.",
	}, []string{"reason"})
	exportSuccess := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "booking_export_success_total",
		Help: "Successful spreadsheet export attempts.",
	})
	exportFailure := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "booking_export_failure_total",
		Help: "Failed spreadsheet export attempts.",
	})
	reg.MustRegister(admissionDuration, admitted, rejected, exportSuccess, exportFailure)
	return &BookingMetrics{
		admissionDuration: admissionDuration,
		admitted:          admitted,
		rejected:          rejected,
		exportSuccess:     exportSuccess,
		exportFailure:     exportFailure,
	}
}

// ObserveAdmission records the duration of one admission attempt.
func (m *BookingMetrics) ObserveAdmission(outcome string, duration time.Duration) {
	if m == nil || m.admissionDuration == nil {
		return
	}
	m.admissionDuration.WithLabelValues(normalizeLabel(outcome)).Observe(duration.Seconds())
}

// IncAdmitted increments the committed bookings counter.
func (m *BookingMetrics) IncAdmitted() {
	if m == nil || m.admitted == nil {
		return
	}
	m.admitted.Inc()
}

// IncRejected increments the rejection counter for the given reason.
func (m *BookingMetrics) IncRejected(reason string) {
	if m == nil || m.rejected == nil {
		return
	}
	m.rejected.WithLabelValues(normalizeLabel(reason)).Inc()
}

// IncExportSuccess increments the export success counter.
func (m *BookingMetrics) IncExportSuccess() {
	if m == nil || m.exportSuccess == nil {
		return
	}
	m.exportSuccess.Inc()
}

// IncExportFailure increments the export failure counter.
func (m *BookingMetrics) IncExportFailure() {
	if m == nil || m.exportFailure == nil {
		return
	}
	m.exportFailure.Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}

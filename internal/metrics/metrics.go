// Package metrics holds the Prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	BookingsCreated  *prometheus.CounterVec
	BookingConflicts prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reservaon_http_requests_total",
				Help: "HTTP requests by method, route and status.",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "reservaon_http_request_duration_seconds",
				Help:    "HTTP request latency by route.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		BookingsCreated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reservaon_bookings_created_total",
				Help: "Appointments created, by channel (public or internal).",
			},
			[]string{"channel"},
		),
		BookingConflicts: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "reservaon_booking_conflicts_total",
				Help: "Booking attempts rejected because the slot was taken.",
			},
		),
	}

	prometheus.MustRegister(
		m.RequestsTotal,
		m.RequestDuration,
		m.BookingsCreated,
		m.BookingConflicts,
	)

	return m
}

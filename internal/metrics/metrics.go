package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"shareit/internal/events"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shareit",
			Name:      "http_requests_total",
			Help:      "HTTP requests by endpoint.",
		},
		[]string{"endpoint"},
	)

	grpcRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shareit",
			Name:      "grpc_requests_total",
			Help:      "gRPC requests by method and status code.",
		},
		[]string{"method", "code"},
	)

	bookingEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shareit",
			Name:      "booking_events_total",
			Help:      "Booking lifecycle events by resulting status.",
		},
		[]string{"status"},
	)

	commentsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "shareit",
			Name:      "comments_created_total",
			Help:      "Comments written on items.",
		},
	)

	requestsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "shareit",
			Name:      "item_requests_created_total",
			Help:      "Item requests created.",
		},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, grpcRequests, bookingEvents, commentsCreated, requestsCreated)
	})
}

// IncHTTP increments the counter for an endpoint label.
func IncHTTP(endpoint string) {
	httpRequests.WithLabelValues(endpoint).Inc()
}

// IncGRPC increments the counter for a method and its status code.
func IncGRPC(method, code string) {
	grpcRequests.WithLabelValues(method, code).Inc()
}

// Subscribe wires the counters to domain events on the bus.
func Subscribe(bus *events.EventBus) {
	for _, eventType := range []string{events.EventBookingCreated, events.EventBookingApproved, events.EventBookingRejected} {
		bus.Subscribe(eventType, func(event *events.Event) error {
			var payload events.BookingEventPayload
			if err := event.Decode(&payload); err != nil {
				return err
			}
			bookingEvents.WithLabelValues(payload.Status).Inc()
			return nil
		})
	}

	bus.Subscribe(events.EventCommentCreated, func(*events.Event) error {
		commentsCreated.Inc()
		return nil
	})

	bus.Subscribe(events.EventRequestCreated, func(*events.Event) error {
		requestsCreated.Inc()
		return nil
	})
}

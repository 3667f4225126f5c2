package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	usersRegistered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "users_registered_total",
			Help: "Accounts created since process start",
		},
	)

	ticketsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tickets_created_total",
			Help: "Listings submitted for verification",
		},
	)

	ticketDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticket_decisions_total",
			Help: "Verification decisions per outcome",
		},
		[]string{"outcome"},
	)

	ticketsPurchased = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tickets_purchased_total",
			Help: "Completed purchases",
		},
	)
)

// TrackRegistration counts a successful registration.
func TrackRegistration() {
	usersRegistered.Inc()
}

// TrackListing counts a listing entering the pending queue.
func TrackListing() {
	ticketsCreated.Inc()
}

// TrackDecision counts a verification decision; outcome is
// "verified" or "rejected".
func TrackDecision(outcome string) {
	ticketDecisions.WithLabelValues(outcome).Inc()
}

// TrackPurchase counts a completed purchase.
func TrackPurchase() {
	ticketsPurchased.Inc()
}

// Package metrics exposes the service's prometheus collectors. Counters are
// registered once through promauto and shared across services.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SignIns counts successful sign-ins.
	SignIns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "skyfare_signins_total",
		Help: "Successful sign-ins.",
	})

	// TicketPurchases counts tickets successfully issued.
	TicketPurchases = promauto.NewCounter(prometheus.CounterOpts{
		Name: "skyfare_ticket_purchases_total",
		Help: "Tickets successfully issued.",
	})

	// TicketCancellations counts tickets canceled by their holders or staff.
	TicketCancellations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "skyfare_ticket_cancellations_total",
		Help: "Tickets canceled.",
	})

	// PurchaseRejections counts rejected purchases by reason
	// (flight_full, denied, not_found).
	PurchaseRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skyfare_purchase_rejections_total",
		Help: "Rejected ticket purchases by reason.",
	}, []string{"reason"})

	// AuthzDenials counts authorization denials by rule.
	AuthzDenials = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skyfare_authz_denials_total",
		Help: "Authorization denials by rule.",
	}, []string{"rule"})

	// SeatOccupancy reports active tickets per upcoming flight, refreshed by
	// the janitor.
	SeatOccupancy = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "skyfare_seat_occupancy",
		Help: "Active tickets per upcoming flight.",
	}, []string{"flight_code"})
)

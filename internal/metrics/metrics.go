// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	StatusTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "restaurant_status_transitions_total",
		Help: "Committed status changes of requests, orders and order items.",
	},
		[]string{"subject", "from", "to"},
	)

	TransitionRejectionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "restaurant_transition_rejections_total",
		Help: "Status changes refused by the transition table.",
	},
		[]string{"subject"},
	)

	NotificationsDroppedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "restaurant_notifications_dropped_total",
		Help: "Notifications a sink failed to accept.",
	},
		[]string{"sink"},
	)

	OrderCacheItems = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "restaurant_order_cache_items",
		Help: "Current number of orders in the read cache.",
	})
)

package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Order pipeline metrics
var (
	OrdersSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_submitted_total",
		Help: "Orders accepted by the order service",
	})

	OrderSubmissionFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "order_submission_failures_total",
		Help: "Order submissions rejected or failed",
	})

	OrderTotalDollars = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "order_total_dollars",
		Help:    "Grand total of submitted orders",
		Buckets: prometheus.ExponentialBuckets(5, 2, 8),
	})

	// StaleVariantLines counts order lines priced at zero because the
	// referenced variation no longer exists on the menu item. Deliberate
	// fail-soft: the line goes through, but it must be visible here rather
	// than blend in with genuinely free lines.
	StaleVariantLines = promauto.NewCounter(prometheus.CounterOpts{
		Name: "order_stale_variant_lines_total",
		Help: "Order lines whose variation id no longer resolves",
	})
)

// Inventory metrics
var (
	IngredientSearchMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ingredient_search_misses_total",
		Help: "Ingredient name searches with no inventory match",
	})
)

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CartMetrics records pricing and checkout activity.
type CartMetrics struct {
	computeDuration  prometheus.Histogram
	discountsApplied *prometheus.CounterVec
	ordersPlaced     prometheus.Counter
}

// NewCartMetrics registers the cart metrics on the provided registerer.
func NewCartMetrics(reg prometheus.Registerer) *CartMetrics {
	if reg == nil {
		return &CartMetrics{}
	}
	computeDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cart_pricing_compute_seconds",
		Help:    "Duration of cart pricing computations in seconds.",
		Buckets: prometheus.DefBuckets,
	})
	discountsApplied := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_discounts_applied_total",
		Help: "Discount lines emitted by the pricing engine.",
	}, []string{"discount"})
	ordersPlaced := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_placed_total",
		Help: "Orders recorded at checkout.",
	})
	reg.MustRegister(computeDuration, discountsApplied, ordersPlaced)
	return &CartMetrics{
		computeDuration:  computeDuration,
		discountsApplied: discountsApplied,
		ordersPlaced:     ordersPlaced,
	}
}

// ObserveCompute records the duration of one pricing pass.
func (c *CartMetrics) ObserveCompute(duration time.Duration) {
	if c == nil || c.computeDuration == nil {
		return
	}
	c.computeDuration.Observe(duration.Seconds())
}

// IncDiscount increments the counter for the given discount id.
func (c *CartMetrics) IncDiscount(discount string) {
	if c == nil || c.discountsApplied == nil {
		return
	}
	if discount == "" {
		discount = "unknown"
	}
	c.discountsApplied.WithLabelValues(discount).Inc()
}

// IncOrderPlaced increments the checkout counter.
func (c *CartMetrics) IncOrderPlaced() {
	if c == nil || c.ordersPlaced == nil {
		return
	}
	c.ordersPlaced.Inc()
}

package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		paymentsTotal,
		paymentsRevenueTotal,
		checkoutTotal,
		discountsApplied,
		reconcileTotal,
		ReconcileDuration,
	)
}

var (
	paymentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payments_total",
			Help: "Payments by status (initiated/succeeded/failed).",
		},
		[]string{"status"},
	)

	paymentsRevenueTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payments_revenue_minor_units_total",
			Help: "Total value of reconciled payments in minor units, by currency.",
		},
		[]string{"currency"},
	)

	checkoutTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_intents_total",
			Help: "Payment-intent creation attempts by result and bounded reason.",
		},
		[]string{"result", "reason"},
	)

	discountsApplied = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_discounts_applied_total",
			Help: "Applied discounts by segment type.",
		},
		[]string{"type"},
	)

	// Count of confirmation calls grouped by result and bounded reason.
	// result: ok|fail|error
	// reason (fail only): not_completed|currency|activity_mismatch|amount|
	// activity_not_found|duplicate
	reconcileTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registration_reconcile_total",
			Help: "Payment confirmation reconciliations by result and reason.",
		},
		[]string{"result", "reason"},
	)

	ReconcileDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "registration_reconcile_duration_seconds",
			Help:    "Duration of the complete-payment-registration handler in seconds.",
			Buckets: []float64{0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{"result"},
	)
)

func IncPayment(status string) {
	paymentsTotal.WithLabelValues(norm(status)).Inc()
}

func AddPaymentRevenue(currency string, amountMinorUnits int64) {
	paymentsRevenueTotal.WithLabelValues(norm(currency)).Add(float64(amountMinorUnits))
}

func IncCheckout(result, reason string) {
	checkoutTotal.WithLabelValues(norm(result), norm(reason)).Inc()
}

func IncDiscountApplied(discountType string) {
	discountsApplied.WithLabelValues(norm(discountType)).Inc()
}

func IncReconcile(result, reason string) {
	reconcileTotal.WithLabelValues(norm(result), norm(reason)).Inc()
}

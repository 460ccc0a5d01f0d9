package metrics

import "github.com/prometheus/client_golang/prometheus"

// Reconcile outcomes recorded by BadgeMetrics.
const (
	BadgeOutcomeUpdated = "updated"
	BadgeOutcomeNoop    = "noop"
	BadgeOutcomeSkipped = "skipped"
	BadgeOutcomeError   = "error"
)

// BadgeMetrics counts reconcile cycles of the cart badge.
type BadgeMetrics struct {
	reconciles *prometheus.CounterVec
}

// NewBadgeMetrics registers the badge reconcile counters.
func NewBadgeMetrics(reg prometheus.Registerer) *BadgeMetrics {
	if reg == nil {
		return &BadgeMetrics{}
	}
	reconciles := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_badge_reconciles_total",
		Help: "Badge reconcile cycles by outcome.",
	}, []string{"outcome"})
	reg.MustRegister(reconciles)
	return &BadgeMetrics{reconciles: reconciles}
}

// IncReconcile counts one reconcile cycle under the given outcome.
func (b *BadgeMetrics) IncReconcile(outcome string) {
	if b == nil || b.reconciles == nil {
		return
	}
	b.reconciles.WithLabelValues(outcome).Inc()
}

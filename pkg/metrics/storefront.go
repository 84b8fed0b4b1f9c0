package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Storefront records cart and catalog activity.
type Storefront struct {
	cartMutations *prometheus.CounterVec
	catalogLoads  *prometheus.CounterVec
	catalogTime   prometheus.Histogram
}

// NewStorefront registers the storefront metrics on the provided registerer. A nil
// registerer yields a no-op recorder.
func NewStorefront(reg prometheus.Registerer) *Storefront {
	if reg == nil {
		return &Storefront{}
	}
	cartMutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_mutations_total",
		Help: "Cart mutations by operation.",
	}, []string{"op"})
	catalogLoads := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_loads_total",
		Help: "Catalog feed fetches by result.",
	}, []string{"result"})
	catalogTime := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "catalog_load_duration_seconds",
		Help:    "Duration of catalog feed fetches in seconds.",
		Buckets: prometheus.DefBuckets,
	})
	reg.MustRegister(cartMutations, catalogLoads, catalogTime)
	return &Storefront{
		cartMutations: cartMutations,
		catalogLoads:  catalogLoads,
		catalogTime:   catalogTime,
	}
}

// IncCartMutation counts one cart operation (add, increment, decrement, remove, empty).
func (s *Storefront) IncCartMutation(op string) {
	if s == nil || s.cartMutations == nil {
		return
	}
	s.cartMutations.WithLabelValues(normalizeLabel(op)).Inc()
}

// ObserveCatalogLoad records a feed fetch outcome and its duration.
func (s *Storefront) ObserveCatalogLoad(ok bool, duration time.Duration) {
	if s == nil || s.catalogLoads == nil {
		return
	}
	result := "success"
	if !ok {
		result = "failure"
	}
	s.catalogLoads.WithLabelValues(result).Inc()
	s.catalogTime.Observe(duration.Seconds())
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}

// Package metrics records store operation counts and latencies for
// Prometheus.
package metrics

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/gophcal/internal/common"
	"github.com/prometheus/client_golang/prometheus"
)

// Observer receives one call per finished store operation.
type Observer interface {
	Observe(entity, op string, started time.Time, err error)
}

// Nop drops observations.
type Nop struct{}

func (Nop) Observe(string, string, time.Time, error) {}

// Store counts operations by entity, operation and outcome and tracks their
// latency.
type Store struct {
	ops     *prometheus.CounterVec
	latency *prometheus.HistogramVec
}

// NewStore creates the collectors and registers them with reg.
func NewStore(reg prometheus.Registerer) (*Store, error) {
	s := &Store{
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gophcal",
			Name:      "store_operations_total",
			Help:      "Store operations by entity, operation and outcome.",
		}, []string{"entity", "op", "outcome"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "gophcal",
			Name:      "store_operation_duration_seconds",
			Help:      "Latency of store operations.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}, []string{"entity", "op"}),
	}

	ops, err := register(reg, s.ops)
	if err != nil {
		return nil, err
	}
	latency, err := register(reg, s.latency)
	if err != nil {
		return nil, err
	}
	s.ops, s.latency = ops, latency

	return s, nil
}

// register adds c to reg, reusing the collector already registered under the
// same descriptor.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

func (s *Store) Observe(entity, op string, started time.Time, err error) {
	s.ops.WithLabelValues(entity, op, Outcome(err)).Inc()
	s.latency.WithLabelValues(entity, op).Observe(time.Since(started).Seconds())
}

// Outcome buckets err into a low-cardinality label value.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, common.ErrorNotFound):
		return "not_found"
	case errors.Is(err, common.ErrorValidation):
		return "invalid"
	case errors.Is(err, common.ErrorConstraintViolation):
		return "constraint"
	case errors.Is(err, common.ErrorForbidden), errors.Is(err, common.ErrorUnauthorized):
		return "forbidden"
	}
	return "error"
}

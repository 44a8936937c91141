package checkout

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records gateway calls. A nil *Metrics records nothing.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tbc",
			Subsystem: "checkout",
			Name:      "requests_total",
			Help:      "Gateway calls by operation and outcome.",
		}, []string{"operation", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "tbc",
			Subsystem: "checkout",
			Name:      "request_duration_seconds",
			Help:      "Gateway call latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}
	if reg != nil {
		reg.MustRegister(m.requests, m.duration)
	}
	return m
}

func (m *Metrics) observe(op string, seconds float64, err error) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(op, outcome(err)).Inc()
	m.duration.WithLabelValues(op).Observe(seconds)
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	var e *Error
	if errors.As(err, &e) {
		switch e.Kind {
		case KindTransport:
			return "transport"
		case KindAuthentication:
			return "authentication"
		case KindAuthorization:
			return "authorization"
		case KindUnimplemented:
			return "unimplemented"
		case KindDecode:
			return "decode"
		}
	}
	return "request"
}

package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "ourquotes"

// Metrics holds the application counters. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	gatherer      prometheus.Gatherer
	registrations prometheus.Counter
	logins        *prometheus.CounterVec
	quotesCreated prometheus.Counter
	quotesDeleted prometheus.Counter
	likes         *prometheus.CounterVec
}

func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		gatherer: reg,
		registrations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registrations_total",
			Help:      "Number of successful registrations.",
		}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logins_total",
			Help:      "Number of login attempts by result.",
		}, []string{"result"}),
		quotesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quotes_created_total",
			Help:      "Number of quotes posted.",
		}),
		quotesDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quotes_deleted_total",
			Help:      "Number of quotes deleted by their owner.",
		}),
		likes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "likes_total",
			Help:      "Number of like requests by result.",
		}, []string{"result"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.registrations,
		m.logins,
		m.quotesCreated,
		m.quotesDeleted,
		m.likes,
	)
	return m
}

func (m *Metrics) Registration() {
	if m == nil {
		return
	}
	m.registrations.Inc()
}

func (m *Metrics) Login(success bool) {
	if m == nil {
		return
	}
	result := "failure"
	if success {
		result = "success"
	}
	m.logins.WithLabelValues(result).Inc()
}

func (m *Metrics) QuoteCreated() {
	if m == nil {
		return
	}
	m.quotesCreated.Inc()
}

func (m *Metrics) QuoteDeleted() {
	if m == nil {
		return
	}
	m.quotesDeleted.Inc()
}

// Like records a like request. result is "inserted" or "already_liked".
func (m *Metrics) Like(result string) {
	if m == nil {
		return
	}
	m.likes.WithLabelValues(result).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{}))
}

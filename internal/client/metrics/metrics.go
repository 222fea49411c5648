// Package metrics defines Prometheus metrics for the client session.
//
// Metric naming follows Prometheus conventions:
//   - gymbacteria_ prefix for all metrics
//   - _total suffix for counters
package metrics

import (
	"net/http"

	"github.com/dmitrijs2005/gymbacteria/internal/client/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Login results.
const (
	ResultSuccess    = "success"
	ResultFailure    = "failure"
	ResultSuperseded = "superseded"
)

// Collectors owns the client's metrics and the registry they live in.
type Collectors struct {
	Registry *prometheus.Registry

	// LoginsTotal counts login attempts by result.
	LoginsTotal *prometheus.CounterVec
	// TransitionsTotal counts session phase changes.
	TransitionsTotal *prometheus.CounterVec
	// APIUp is 1 while the last health probe succeeded.
	APIUp prometheus.Gauge
}

// New returns Collectors registered on a fresh registry.
func New() *Collectors {
	c := &Collectors{
		Registry: prometheus.NewRegistry(),
		LoginsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gymbacteria_session_logins_total",
				Help: "Total login attempts by result.",
			},
			[]string{"result"},
		),
		TransitionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gymbacteria_session_transitions_total",
				Help: "Total session phase transitions.",
			},
			[]string{"from", "to"},
		),
		APIUp: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "gymbacteria_api_up",
			Help: "Whether the training API answered the last health probe.",
		}),
	}
	c.Registry.MustRegister(c.LoginsTotal, c.TransitionsTotal, c.APIUp)
	return c
}

func (c *Collectors) Login(result string) {
	c.LoginsTotal.WithLabelValues(result).Inc()
}

func (c *Collectors) Transition(from, to models.Phase) {
	c.TransitionsTotal.WithLabelValues(string(from), string(to)).Inc()
}

func (c *Collectors) SetAPIUp(up bool) {
	if up {
		c.APIUp.Set(1)
		return
	}
	c.APIUp.Set(0)
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collectors) Handler() http.Handler {
	return promhttp.HandlerFor(c.Registry, promhttp.HandlerOpts{})
}

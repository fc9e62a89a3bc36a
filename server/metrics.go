package server

import (
	"errors"
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	promhttp "github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/eringen/siteconf"
)

// Load results recorded by Metrics.
const (
	ResultOK      = "ok"
	ResultInvalid = "invalid"
	ResultError   = "error"
)

// Metrics records configuration load outcomes. A nil *Metrics is a no-op.
type Metrics struct {
	reg        *prom.Registry
	loads      *prom.CounterVec
	lastLoad   prom.Gauge
	postCounts *prom.GaugeVec
}

// NewMetrics constructs and registers the siteconf metrics on reg.
func NewMetrics(reg *prom.Registry) *Metrics {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	m := &Metrics{
		reg: reg,
		loads: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "siteconf",
			Name:      "loads_total",
			Help:      "Configuration loads by result",
		}, []string{"result"}),
		lastLoad: prom.NewGauge(prom.GaugeOpts{
			Namespace: "siteconf",
			Name:      "last_successful_load_timestamp_seconds",
			Help:      "Unix time of the last configuration that passed validation",
		}),
		postCounts: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: "siteconf",
			Name:      "posts_per_listing",
			Help:      "Configured number of posts per listing",
		}, []string{"listing"}),
	}
	reg.MustRegister(m.loads, m.lastLoad, m.postCounts)
	return m
}

// ObserveLoad counts one load attempt. On success cfg is reflected in the
// gauges.
func (m *Metrics) ObserveLoad(cfg siteconf.SiteConfig, err error) {
	if m == nil {
		return
	}
	switch {
	case err == nil:
		m.loads.WithLabelValues(ResultOK).Inc()
		m.lastLoad.Set(float64(time.Now().Unix()))
		m.postCounts.WithLabelValues("index").Set(float64(cfg.PostPerIndex))
		m.postCounts.WithLabelValues("page").Set(float64(cfg.PostPerPage))
	case errors.Is(err, siteconf.ErrInvalidConfig):
		m.loads.WithLabelValues(ResultInvalid).Inc()
	default:
		m.loads.WithLabelValues(ResultError).Inc()
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

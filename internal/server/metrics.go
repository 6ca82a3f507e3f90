package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type metrics struct {
	reg *prometheus.Registry

	// requests counts API calls. Labels: route (gin template), code.
	requests *prometheus.CounterVec

	// statsSeconds measures one filter + stats computation.
	statsSeconds prometheus.Histogram

	// visibleEdges is the edge count of the last computed view.
	visibleEdges prometheus.Gauge
}

func newMetrics(reg *prometheus.Registry) *metrics {
	f := promauto.With(reg)
	return &metrics{
		reg: reg,
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "semnet",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "API requests by route and status code",
		}, []string{"route", "code"}),
		statsSeconds: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "semnet",
			Name:      "stats_compute_seconds",
			Help:      "Time to filter edges and compute graph statistics",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}),
		visibleEdges: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "semnet",
			Name:      "visible_edges",
			Help:      "Edges at or above the threshold of the last request",
		}),
	}
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bonarr",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests by method, path and status code.",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "bonarr",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request duration in seconds.",
		Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.3, 0.5, 1, 2, 5},
	}, []string{"method", "path"})

	TorrentsTracked = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "bonarr",
		Name:      "torrents_tracked",
		Help:      "Number of torrent records currently in the store.",
	})

	TorrentsAddedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "bonarr",
		Name:      "torrents_added_total",
		Help:      "Total torrents accepted via the add endpoint.",
	})

	TorrentsDeletedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "bonarr",
		Name:      "torrents_deleted_total",
		Help:      "Total torrent hashes submitted for deletion.",
	})

	LoginFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "bonarr",
		Name:      "login_failures_total",
		Help:      "Total rejected login attempts.",
	})

	WSClientsConnected = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "bonarr",
		Name:      "ws_clients_connected",
		Help:      "Number of connected WebSocket clients.",
	})
)

func Register(reg prometheus.Registerer) {
	reg.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		TorrentsTracked,
		TorrentsAddedTotal,
		TorrentsDeletedTotal,
		LoginFailuresTotal,
		WSClientsConnected,
	)
}

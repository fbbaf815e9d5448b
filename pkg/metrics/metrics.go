// Package metrics, Prometheus metriklerini tanımlar ve /metrics handler'ını sağlar.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics, uygulamanın tüm Prometheus metriklerini tutar.
type Metrics struct {
	HTTPRequests   *prometheus.CounterVec
	HTTPDuration   *prometheus.HistogramVec
	AuthRejections *prometheus.CounterVec
}

// NewMetrics, metrikleri verilen registry'ye kaydeder.
func NewMetrics(registry prometheus.Registerer) *Metrics {
	factory := promauto.With(registry)

	return &Metrics{
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sigma_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sigma_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		AuthRejections: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sigma_auth_rejections_total",
				Help: "Total number of rejected requests at the auth gate",
			},
			[]string{"reason"},
		),
	}
}

// OnlineSource, anlık WebSocket bağlantısı olan kullanıcıları bilen kaynak (ws.Hub).
type OnlineSource interface {
	OnlineUserIDs() []string
}

// RegisterOnlineUsers, sigma_ws_online_users gauge'unu kaydeder. Değer her
// scrape'te source'tan okunur; ayrıca güncellemek gerekmez.
func RegisterOnlineUsers(registry prometheus.Registerer, source OnlineSource) prometheus.GaugeFunc {
	return promauto.With(registry).NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "sigma_ws_online_users",
			Help: "Number of users with at least one open WebSocket connection",
		},
		func() float64 { return float64(len(source.OnlineUserIDs())) },
	)
}

// NewRegistry, metrikleri yeni bir registry üzerinde oluşturur.
// Go runtime ve process collector'ları da eklenir.
func NewRegistry() (*prometheus.Registry, *Metrics) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg, NewMetrics(reg)
}

// Handler, registry için /metrics endpoint handler'ı döner.
func Handler(reg prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

// ObserveRequest, tamamlanan bir HTTP isteğini kaydeder. Nil receiver no-op'tur.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// RecordRejection, auth gate'in veya rol kontrolünün reddettiği isteği sayar.
// reason: missing, expired, invalid, forbidden.
func (m *Metrics) RecordRejection(reason string) {
	if m == nil {
		return
	}
	m.AuthRejections.WithLabelValues(reason).Inc()
}

package metrics

import (
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the application collectors on a private registry.
type Metrics struct {
	Registry         *prometheus.Registry
	HTTPDuration     *prometheus.HistogramVec
	OTPVerifications *prometheus.CounterVec
	OTPIssued        prometheus.Counter
	SMSSent          *prometheus.CounterVec
	ImagesUploaded   prometheus.Counter
}

func New(appName string) *Metrics {
	namespace := strings.ReplaceAll(appName, "-", "_")
	registry := prometheus.NewRegistry()

	m := &Metrics{
		Registry: registry,
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Latency of HTTP requests by route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		OTPVerifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "otp_verifications_total",
			Help:      "OTP verification attempts by result.",
		}, []string{"result"}),
		OTPIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "otp_issued_total",
			Help:      "OTP codes stored for delivery.",
		}),
		SMSSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sms_sent_total",
			Help:      "SMS send attempts by outcome.",
		}, []string{"outcome"}),
		ImagesUploaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "images_uploaded_total",
			Help:      "Images stored on the media host.",
		}),
	}

	registry.MustRegister(
		m.HTTPDuration,
		m.OTPVerifications,
		m.OTPIssued,
		m.SMSSent,
		m.ImagesUploaded,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}

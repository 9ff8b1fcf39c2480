// Package metrics holds the Prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	fallbackActivations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cms_fallback_activations_total",
			Help: "Operations served by the local store because the durable backend failed.",
		},
		[]string{"kind", "op"},
	)

	imageUploads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cms_image_uploads_total",
			Help: "Image uploads by bucket and outcome.",
		},
		[]string{"bucket", "result"},
	)

	durableBackendUp = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "cms_durable_backend_up",
			Help: "1 when the last durable backend probe succeeded.",
		},
	)

	localRecords = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cms_local_records",
			Help: "Records held only in the process-local fallback store.",
		},
		[]string{"kind"},
	)
)

func init() {
	prometheus.MustRegister(fallbackActivations, imageUploads, durableBackendUp, localRecords)
}

func FallbackActivated(kind, op string) {
	fallbackActivations.WithLabelValues(kind, op).Inc()
}

func ImageUploaded(bucket string, ok bool) {
	result := "ok"
	if !ok {
		result = "error"
	}
	imageUploads.WithLabelValues(bucket, result).Inc()
}

func SetDurableBackendUp(up bool) {
	if up {
		durableBackendUp.Set(1)
		return
	}
	durableBackendUp.Set(0)
}

func SetLocalRecords(kind string, n int) {
	localRecords.WithLabelValues(kind).Set(float64(n))
}

// Handler serves the default registry.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

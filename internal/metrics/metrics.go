package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "collection_tracker",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "collection_tracker",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"method", "route"},
	)

	UploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "collection_tracker",
			Subsystem: "media",
			Name:      "uploads_total",
			Help:      "Total media uploads",
		},
		[]string{"content_type", "status"},
	)

	// raw is the uploaded size, stored is the size after compression
	UploadBytesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "collection_tracker",
			Subsystem: "media",
			Name:      "upload_bytes_total",
			Help:      "Total media bytes uploaded",
		},
		[]string{"kind"},
	)

	DownloadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "collection_tracker",
			Subsystem: "media",
			Name:      "downloads_total",
			Help:      "Total media downloads",
		},
		[]string{"lookup", "status"},
	)
)

// RecordRequest records an HTTP request
func RecordRequest(method, route, status string, durationSec float64) {
	RequestsTotal.WithLabelValues(method, route, status).Inc()
	RequestDuration.WithLabelValues(method, route).Observe(durationSec)
}

// RecordUpload records a media upload
func RecordUpload(contentType, status string, rawBytes, storedBytes int) {
	UploadsTotal.WithLabelValues(contentType, status).Inc()
	if status == "success" {
		UploadBytesTotal.WithLabelValues("raw").Add(float64(rawBytes))
		UploadBytesTotal.WithLabelValues("stored").Add(float64(storedBytes))
	}
}

// RecordDownload records a media download by lookup kind ("name" or "listing")
func RecordDownload(lookup, status string) {
	DownloadsTotal.WithLabelValues(lookup, status).Inc()
}

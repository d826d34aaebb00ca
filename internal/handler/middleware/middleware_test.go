package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bulatminnakhmetov/collection-tracker/internal/metrics"
)

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Get("/listings/{id}", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Listing not found.", http.StatusNotFound)
	})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/listings/7?x=1", nil))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "GET", entry["method"])
	assert.Equal(t, "/listings/7", entry["path"])
	assert.Equal(t, "x=1", entry["query"])
	assert.Equal(t, float64(http.StatusNotFound), entry["status"])
	assert.NotEmpty(t, entry["request_id"])
}

func TestRequestLoggerDefaultStatus(t *testing.T) {
	var buf bytes.Buffer

	handler := RequestLogger(zerolog.New(&buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, float64(http.StatusOK), entry["status"])
	assert.Equal(t, float64(2), entry["bytes"])
}

func TestMetricsUsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Metrics)
	r.Get("/media/listing/{listingId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	counter := metrics.RequestsTotal.WithLabelValues("GET", "/media/listing/{listingId}", "404")
	before := testutil.ToFloat64(counter)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/media/listing/12", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/media/listing/13", nil))

	assert.Equal(t, before+2, testutil.ToFloat64(counter))
}

package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/bulatminnakhmetov/collection-tracker/internal/metrics"
)

// RequestLogger logs every request once it has been served
func RequestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := statusOf(ww)
			logEvent := logger.Debug()
			if status >= 500 {
				logEvent = logger.Error()
			} else if status < 400 {
				logEvent = logger.Info()
			}

			if requestID := chimiddleware.GetReqID(r.Context()); requestID != "" {
				logEvent = logEvent.Str("request_id", requestID)
			}

			logEvent.
				Str("client_ip", r.RemoteAddr).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("query", r.URL.RawQuery).
				Int("status", status).
				Int("bytes", ww.BytesWritten()).
				Dur("latency", time.Since(start)).
				Msg("request served")
		})
	}
}

// Metrics records request count and duration by route pattern
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		metrics.RecordRequest(r.Method, routePattern(r), strconv.Itoa(statusOf(ww)), time.Since(start).Seconds())
	})
}

// routePattern is read after routing so path parameters do not become labels
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}

func statusOf(ww chimiddleware.WrapResponseWriter) int {
	if status := ww.Status(); status != 0 {
		return status
	}
	return http.StatusOK
}

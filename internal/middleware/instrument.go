package middleware

import (
	"net/http"
	"strconv"

	"agri-platform/pkg/logging"
	"agri-platform/pkg/metrics"
)

// EndpointFunc names the endpoint a request targets, used as a metrics label.
// It must return a bounded set of values (route templates, not raw paths).
type EndpointFunc func(r *http.Request) string

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (s *statusRecorder) WriteHeader(code int) {
	if s.status == 0 {
		s.status = code
	}
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	n, err := s.ResponseWriter.Write(b)
	s.bytes += n
	return n, err
}

// Instrument records request count, latency and in-flight gauge, then writes
// one access log line per request.
func Instrument(logger *logging.StructuredLogger, m *metrics.Collector, endpoint EndpointFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ep := endpoint(r)
			timer := m.NewTimer(m.APIRequestDuration.WithLabelValues(ep))
			m.InFlightRequests.Inc()
			defer m.InFlightRequests.Dec()

			rec := &statusRecorder{ResponseWriter: w}
			next.ServeHTTP(rec, r)

			if rec.status == 0 {
				rec.status = http.StatusOK
			}
			duration := timer.ObserveDuration()
			m.RecordAPIRequest(ep, r.Method, strconv.Itoa(rec.status))

			fields := logging.Fields{
				"method":      r.Method,
				"path":        r.URL.Path,
				"endpoint":    ep,
				"status":      rec.status,
				"bytes":       rec.bytes,
				"duration_ms": float64(duration.Microseconds()) / 1000,
				"remote_addr": r.RemoteAddr,
			}
			if rec.status >= http.StatusInternalServerError {
				logger.Warn(r.Context(), "[HTTP_REQUEST] Request failed", fields)
				return
			}
			logger.Info(r.Context(), "[HTTP_REQUEST] Request served", fields)
		})
	}
}

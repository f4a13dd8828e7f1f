package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agri-platform/pkg/logging"
	"agri-platform/pkg/metrics"
)

func newLogger(buf *bytes.Buffer) *logging.StructuredLogger {
	logger := logging.NewStructuredLogger("agri-api", "test", logging.DebugLevel)
	logger.SetOutput(buf)
	return logger
}

func TestRequestID_PropagatesToContext(t *testing.T) {
	var seen string
	h := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = logging.RequestIDFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/crops", nil))

	require.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))
}

func TestRequestID_KeepsClientValue(t *testing.T) {
	h := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/api/crops", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestInstrument_RecordsStatusAndLogs(t *testing.T) {
	tests := []struct {
		name      string
		handler   http.HandlerFunc
		status    string
		wantLevel string
	}{
		{
			name:      "implicit 200",
			handler:   func(w http.ResponseWriter, r *http.Request) { w.Write([]byte("{}")) },
			status:    "200",
			wantLevel: `"level":"INFO"`,
		},
		{
			name:      "explicit 405",
			handler:   func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusMethodNotAllowed) },
			status:    "405",
			wantLevel: `"level":"INFO"`,
		},
		{
			name:      "server error",
			handler:   func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusInternalServerError) },
			status:    "500",
			wantLevel: `"level":"WARN"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			m := metrics.NewCollector("agri_test", prometheus.NewRegistry())
			endpoint := func(*http.Request) string { return "/test" }

			h := Instrument(newLogger(&logs), m, endpoint)(tt.handler)
			h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/test", nil))

			assert.Equal(t, float64(1), testutil.ToFloat64(m.APIRequestsTotal.WithLabelValues("/test", "GET", tt.status)))
			assert.Equal(t, float64(0), testutil.ToFloat64(m.InFlightRequests))
			assert.Contains(t, logs.String(), "[HTTP_REQUEST]")
			assert.Contains(t, logs.String(), tt.wantLevel)
		})
	}
}

func TestRecover_ReturnsInternalServerError(t *testing.T) {
	var logs bytes.Buffer
	h := Recover(newLogger(&logs))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("catalog exploded")
	}))

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/crops", nil))
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, logs.String(), "catalog exploded")
}

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func knownRoute(known bool) RouteFunc {
	return func(*http.Request) bool { return known }
}

func TestCORS_RestrictedOrigins(t *testing.T) {
	h := CORS([]string{"https://farm.example"}, knownRoute(true))(http.HandlerFunc(okHandler))

	req := httptest.NewRequest(http.MethodGet, "/api/crops", nil)
	req.Header.Set("Origin", "https://farm.example")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "https://farm.example", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/crops", nil)
	req.Header.Set("Origin", "https://elsewhere.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_Wildcard(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		header     map[string]string
		known      bool
		wantStatus int
		wantNext   bool
	}{
		{
			name:       "get without origin",
			method:     http.MethodGet,
			known:      true,
			wantStatus: http.StatusOK,
			wantNext:   true,
		},
		{
			name:       "get with origin",
			method:     http.MethodGet,
			header:     map[string]string{"Origin": "https://farm.example"},
			known:      true,
			wantStatus: http.StatusOK,
			wantNext:   true,
		},
		{
			name:       "preflight on known route",
			method:     http.MethodOptions,
			header:     map[string]string{"Origin": "https://farm.example", "Access-Control-Request-Method": "GET"},
			known:      true,
			wantStatus: http.StatusNoContent,
			wantNext:   false,
		},
		{
			name:       "preflight on unknown route",
			method:     http.MethodOptions,
			header:     map[string]string{"Origin": "https://farm.example", "Access-Control-Request-Method": "GET"},
			known:      false,
			wantStatus: http.StatusOK,
			wantNext:   true,
		},
		{
			name:       "options without origin",
			method:     http.MethodOptions,
			known:      true,
			wantStatus: http.StatusOK,
			wantNext:   true,
		},
		{
			name:       "options without request method",
			method:     http.MethodOptions,
			header:     map[string]string{"Origin": "https://farm.example"},
			known:      true,
			wantStatus: http.StatusOK,
			wantNext:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reached := false
			h := CORS([]string{"*"}, knownRoute(tt.known))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				reached = true
				okHandler(w, r)
			}))

			req := httptest.NewRequest(tt.method, "/api/crops", nil)
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantNext, reached)
			assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

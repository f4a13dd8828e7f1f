package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"agri-platform/pkg/logging"
)

// RequestIDHeader carries the per-request correlation ID in both directions
const RequestIDHeader = "X-Request-Id"

// RequestID reuses the caller's X-Request-Id or mints a UUID, echoes it on the
// response and stores it in the request context for the logger.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, id)

			ctx := logging.WithRequestID(r.Context(), id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

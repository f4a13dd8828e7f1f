package middleware

import (
	"net/http"

	"github.com/gorilla/handlers"
)

const allowOriginHeader = "Access-Control-Allow-Origin"

// RouteFunc reports whether a request path is served by the router,
// regardless of method.
type RouteFunc func(r *http.Request) bool

// CORS allows browsers on the given origins ("*" for any) to call the
// read-only API. With "*" configured every response carries
// Access-Control-Allow-Origin: *, Origin header or not.
//
// Only real preflights (OPTIONS with Origin and Access-Control-Request-Method)
// on a known path are answered here, with 204. Any other OPTIONS request goes
// to the router so it gets the usual 404/405.
func CORS(allowedOrigins []string, knownRoute RouteFunc) func(http.Handler) http.Handler {
	wildcard := false
	for _, o := range allowedOrigins {
		if o == "*" {
			wildcard = true
			break
		}
	}

	cors := handlers.CORS(
		handlers.AllowedOrigins(allowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodHead, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", RequestIDHeader}),
		handlers.ExposedHeaders([]string{RequestIDHeader}),
		handlers.OptionStatusCode(http.StatusNoContent),
	)

	return func(next http.Handler) http.Handler {
		withCORS := cors(next)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if wildcard {
				w.Header().Set(allowOriginHeader, "*")
			}

			if r.Method == http.MethodOptions && !(isPreflight(r) && knownRoute(r)) {
				next.ServeHTTP(w, r)
				return
			}

			withCORS.ServeHTTP(w, r)
		})
	}
}

func isPreflight(r *http.Request) bool {
	return r.Header.Get("Origin") != "" && r.Header.Get("Access-Control-Request-Method") != ""
}

package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"agri-platform/internal/handlers"
	"agri-platform/internal/middleware"
	"agri-platform/pkg/logging"
	"agri-platform/pkg/metrics"
)

// Endpoint labels for requests that matched no route
const (
	endpointUnmatched        = "unmatched"
	endpointMethodNotAllowed = "method_not_allowed"
)

// Deps are the collaborators the HTTP surface is built from
type Deps struct {
	Handler        *handlers.AgriHandler
	Logger         *logging.StructuredLogger
	Metrics        *metrics.Collector
	Gatherer       prometheus.Gatherer
	AllowedOrigins []string
}

// NewRouter registers every route and wraps the router in the middleware chain.
// Order, outermost first: request ID, instrumentation, CORS, panic recovery.
func NewRouter(d Deps) http.Handler {
	router := mux.NewRouter()

	d.Handler.RegisterRoutes(router)

	router.HandleFunc(handlers.RouteDocs, handlers.SwaggerUI).Methods(http.MethodGet)
	router.HandleFunc(handlers.RouteOpenAPISpec, handlers.OpenAPISpec).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	var h http.Handler = router
	h = middleware.Recover(d.Logger)(h)
	h = middleware.CORS(d.AllowedOrigins, routeExists(router))(h)
	h = middleware.Instrument(d.Logger, d.Metrics, endpointOf(router))(h)
	h = middleware.RequestID()(h)

	return h
}

// endpointOf labels a request with the template of the route it will hit
func endpointOf(router *mux.Router) middleware.EndpointFunc {
	return func(r *http.Request) string {
		var match mux.RouteMatch
		if router.Match(r, &match) && match.Route != nil {
			if tpl, err := match.Route.GetPathTemplate(); err == nil {
				return tpl
			}
		}
		if match.MatchErr == mux.ErrMethodMismatch {
			return endpointMethodNotAllowed
		}
		return endpointUnmatched
	}
}

// routeExists reports whether any route serves the request path; a method
// mismatch still counts as an existing route.
func routeExists(router *mux.Router) middleware.RouteFunc {
	return func(r *http.Request) bool {
		var match mux.RouteMatch
		if router.Match(r, &match) && match.Route != nil {
			return true
		}
		return match.MatchErr == mux.ErrMethodMismatch
	}
}

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"agri-platform/internal/models"
	"agri-platform/internal/repository"
	"agri-platform/internal/services"
	"agri-platform/pkg/logging"
	"agri-platform/pkg/metrics"
)

// Route patterns. Coordinates are constrained by the router: anything that
// is not a signed decimal falls through to 404.
const (
	RouteCrops        = "/api/crops"
	RouteCrop         = "/api/crops/{name}"
	RouteWeather      = "/api/weather"
	RouteLocalWeather = "/api/weather/{latitude:-?[0-9]+(?:\\.[0-9]+)?}/{longitude:-?[0-9]+(?:\\.[0-9]+)?}"
	RouteCropAdvisory = "/api/crop-advisory"
	RouteMarketPrices = "/api/market-prices"
	RouteHealth       = "/health"
)

// AgriHandler handles the agricultural data API endpoints
type AgriHandler struct {
	cropService     *services.CropService
	weatherService  *services.WeatherService
	advisoryService *services.AdvisoryService
	logger          *logging.StructuredLogger
	metrics         *metrics.Collector
}

// NewAgriHandler creates a new agri handler
func NewAgriHandler(
	cropService *services.CropService,
	weatherService *services.WeatherService,
	advisoryService *services.AdvisoryService,
	logger *logging.StructuredLogger,
	metricsCollector *metrics.Collector,
) *AgriHandler {
	return &AgriHandler{
		cropService:     cropService,
		weatherService:  weatherService,
		advisoryService: advisoryService,
		logger:          logger,
		metrics:         metricsCollector,
	}
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// GetCrops handles GET /api/crops
func (h *AgriHandler) GetCrops(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	crops, err := h.cropService.ListCrops(ctx)
	if err != nil {
		h.logger.Error(ctx, "[API_GET_CROPS_ERROR] Failed to list crops", logging.Fields{}, err)
		h.sendError(w, r, "internal_error", "failed to retrieve crops", http.StatusInternalServerError)
		return
	}

	h.sendJSON(w, crops, http.StatusOK)
}

// GetCrop handles GET /api/crops/{name}
func (h *AgriHandler) GetCrop(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := mux.Vars(r)["name"]

	crop, err := h.cropService.GetCrop(ctx, name)
	if err != nil {
		var notFound *repository.NotFoundError
		if errors.As(err, &notFound) {
			h.sendError(w, r, "not_found", notFound.Error(), http.StatusNotFound)
			return
		}
		h.logger.Error(ctx, "[API_GET_CROP_ERROR] Failed to get crop", logging.Fields{
			"crop": name,
		}, err)
		h.sendError(w, r, "internal_error", "failed to retrieve crop", http.StatusInternalServerError)
		return
	}

	h.sendJSON(w, crop, http.StatusOK)
}

// GetWeather handles GET /api/weather
func (h *AgriHandler) GetWeather(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sample, err := h.weatherService.GetSample(ctx)
	if err != nil {
		h.logger.Error(ctx, "[API_GET_WEATHER_ERROR] Failed to get weather sample", logging.Fields{}, err)
		h.sendError(w, r, "internal_error", "failed to retrieve weather", http.StatusInternalServerError)
		return
	}

	h.sendJSON(w, sample, http.StatusOK)
}

// GetLocalWeather handles GET /api/weather/{latitude}/{longitude}
func (h *AgriHandler) GetLocalWeather(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	vars := mux.Vars(r)

	coords, err := models.ParseCoordinates(vars["latitude"], vars["longitude"])
	if err != nil {
		h.sendError(w, r, "validation_error", err.Error(), http.StatusBadRequest)
		return
	}

	weather, err := h.weatherService.GetLocalWeather(ctx, coords)
	if err != nil {
		h.logger.Error(ctx, "[API_GET_LOCAL_WEATHER_ERROR] Failed to get local weather", logging.Fields{
			"coordinates": coords.String(),
		}, err)
		h.sendError(w, r, "internal_error", "failed to fetch weather data", http.StatusInternalServerError)
		return
	}

	h.sendJSON(w, weather, http.StatusOK)
}

// GetCropAdvisory handles GET /api/crop-advisory
func (h *AgriHandler) GetCropAdvisory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	advisory, err := h.advisoryService.GetCropAdvisory(ctx)
	if err != nil {
		h.logger.Error(ctx, "[API_GET_ADVISORY_ERROR] Failed to get crop advisory", logging.Fields{}, err)
		h.sendError(w, r, "internal_error", "failed to fetch crop advisory", http.StatusInternalServerError)
		return
	}

	h.sendJSON(w, advisory, http.StatusOK)
}

// GetMarketPrices handles GET /api/market-prices
func (h *AgriHandler) GetMarketPrices(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	prices, err := h.advisoryService.GetMarketPrices(ctx)
	if err != nil {
		h.logger.Error(ctx, "[API_GET_MARKET_PRICES_ERROR] Failed to get market prices", logging.Fields{}, err)
		h.sendError(w, r, "internal_error", "failed to fetch market prices", http.StatusInternalServerError)
		return
	}

	h.sendJSON(w, prices, http.StatusOK)
}

// HealthCheck handles GET /health
func (h *AgriHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	h.logger.Debug(r.Context(), "[HEALTH_CHECK] Health check requested", logging.Fields{})
	h.sendJSON(w, status, http.StatusOK)
}

// NotFound is installed as the router's NotFoundHandler
func (h *AgriHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.sendError(w, r, "not_found", "no route for "+r.URL.Path, http.StatusNotFound)
}

// MethodNotAllowed is installed as the router's MethodNotAllowedHandler
func (h *AgriHandler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.sendError(w, r, "method_not_allowed", r.Method+" is not allowed on "+r.URL.Path, http.StatusMethodNotAllowed)
}

// sendJSON sends a JSON response
func (h *AgriHandler) sendJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// sendError sends an error response and counts it by type
func (h *AgriHandler) sendError(w http.ResponseWriter, r *http.Request, errorType, message string, statusCode int) {
	endpoint := r.URL.Path
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			endpoint = tpl
		}
	} else {
		// unmatched paths are unbounded; collapse them into one label
		endpoint = "unmatched"
	}
	h.metrics.RecordAPIError(errorType, endpoint)

	response := ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
		Code:    statusCode,
	}

	h.sendJSON(w, response, statusCode)
}

// RegisterRoutes registers all API routes and the router's fallback handlers
func (h *AgriHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc(RouteCrops, h.GetCrops).Methods(http.MethodGet, http.MethodHead)
	router.HandleFunc(RouteCrop, h.GetCrop).Methods(http.MethodGet, http.MethodHead)
	router.HandleFunc(RouteWeather, h.GetWeather).Methods(http.MethodGet, http.MethodHead)
	router.HandleFunc(RouteLocalWeather, h.GetLocalWeather).Methods(http.MethodGet, http.MethodHead)
	router.HandleFunc(RouteCropAdvisory, h.GetCropAdvisory).Methods(http.MethodGet, http.MethodHead)
	router.HandleFunc(RouteMarketPrices, h.GetMarketPrices).Methods(http.MethodGet, http.MethodHead)
	router.HandleFunc(RouteHealth, h.HealthCheck).Methods(http.MethodGet, http.MethodHead)

	router.NotFoundHandler = http.HandlerFunc(h.NotFound)
	router.MethodNotAllowedHandler = http.HandlerFunc(h.MethodNotAllowed)
}

package repository

import (
	"context"
	"fmt"

	"agri-platform/internal/models"
	"agri-platform/pkg/logging"
)

// CatalogRepository provides read access to the agricultural reference data
type CatalogRepository interface {
	// Crop operations
	ListCrops(ctx context.Context) (models.CropTable, error)
	GetCrop(ctx context.Context, name string) (*models.CropInfo, error)

	// Weather operations
	GetWeatherSample(ctx context.Context) (*models.WeatherSample, error)
	GetLocalWeather(ctx context.Context, coords models.Coordinates) (*models.LocalWeather, error)

	// Advisory and market operations
	GetCropAdvisory(ctx context.Context) (*models.CropAdvisory, error)
	ListCropPrices(ctx context.Context) ([]models.CropPrice, error)
}

// Reference data. Built once at package init and never written afterwards;
// the repository hands out copies only.
var (
	cropTable = models.CropTable{
		"wheat": {Cycle: 120, Temperature: "15-25°C", Water: "moderate"},
		"rice":  {Cycle: 150, Temperature: "25-35°C", Water: "high"},
		"corn":  {Cycle: 100, Temperature: "20-30°C", Water: "moderate"},
	}

	weatherSample = models.WeatherSample{
		Temperature:    "28°C",
		Humidity:       "65%",
		Recommendation: "Good for planting rice",
	}

	localWeather = models.LocalWeather{
		Temperature:   28,
		Humidity:      70,
		Precipitation: 0.1,
		WeatherType:   "sunny",
	}

	cropAdvisory = models.CropAdvisory{
		RecommendedCrops: []models.RecommendedCrop{
			{Name: "Rice", Season: "Kharif", WaterRequirement: "High"},
			{Name: "Wheat", Season: "Rabi", WaterRequirement: "Medium"},
		},
		SoilTypes: []string{"Alluvial", "Black", "Red"},
		WeatherAlerts: []models.WeatherAlert{
			{Type: "Heat Wave", Severity: "Low", StartDate: "2024-08-05"},
		},
	}

	cropPrices = []models.CropPrice{
		{Name: "Rice", CurrentPrice: 2500, Unit: "kg", Trend: "stable"},
		{Name: "Wheat", CurrentPrice: 2000, Unit: "kg", Trend: "up"},
		{Name: "Tomato", CurrentPrice: 30, Unit: "kg", Trend: "down"},
	}
)

// staticRepository implements CatalogRepository over in-memory constants
type staticRepository struct {
	logger *logging.StructuredLogger
}

// NewStaticRepository creates a repository serving the built-in reference data
func NewStaticRepository(logger *logging.StructuredLogger) CatalogRepository {
	return &staticRepository{logger: logger}
}

// ListCrops returns every crop keyed by name
func (r *staticRepository) ListCrops(ctx context.Context) (models.CropTable, error) {
	crops := cropTable.Clone()

	r.logger.Debug(ctx, "[REPO_LIST_CROPS] Crops listed", logging.Fields{
		"count": len(crops),
	})

	return crops, nil
}

// GetCrop retrieves a single crop by its exact name
func (r *staticRepository) GetCrop(ctx context.Context, name string) (*models.CropInfo, error) {
	info, ok := cropTable[name]
	if !ok {
		return nil, &NotFoundError{
			Resource: "crop",
			ID:       name,
		}
	}

	return &info, nil
}

func (r *staticRepository) GetWeatherSample(ctx context.Context) (*models.WeatherSample, error) {
	sample := weatherSample
	return &sample, nil
}

// GetLocalWeather returns the sample reading for any coordinate pair
func (r *staticRepository) GetLocalWeather(ctx context.Context, coords models.Coordinates) (*models.LocalWeather, error) {
	r.logger.Debug(ctx, "[REPO_LOCAL_WEATHER] Local weather requested", logging.Fields{
		"coordinates": coords.String(),
	})

	w := localWeather
	return &w, nil
}

func (r *staticRepository) GetCropAdvisory(ctx context.Context) (*models.CropAdvisory, error) {
	advisory := cropAdvisory.Clone()
	return &advisory, nil
}

func (r *staticRepository) ListCropPrices(ctx context.Context) ([]models.CropPrice, error) {
	return append([]models.CropPrice(nil), cropPrices...), nil
}

// NotFoundError represents a resource not found error
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

func (e *NotFoundError) IsTransient() bool {
	return false
}

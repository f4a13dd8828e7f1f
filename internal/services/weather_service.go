package services

import (
	"context"
	"fmt"

	"agri-platform/internal/models"
	"agri-platform/internal/repository"
	"agri-platform/pkg/logging"
)

// WeatherService handles weather data operations
type WeatherService struct {
	repo   repository.CatalogRepository
	logger *logging.ContextLogger
}

// NewWeatherService creates a new weather service
func NewWeatherService(repo repository.CatalogRepository, logger *logging.StructuredLogger) *WeatherService {
	return &WeatherService{
		repo:   repo,
		logger: logger.WithFields(logging.Fields{"component": "weather_service"}),
	}
}

// GetSample returns the illustrative weather reading and its recommendation
func (s *WeatherService) GetSample(ctx context.Context) (*models.WeatherSample, error) {
	sample, err := s.repo.GetWeatherSample(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get weather sample: %w", err)
	}
	return sample, nil
}

// GetLocalWeather returns the weather summary for a coordinate pair
func (s *WeatherService) GetLocalWeather(ctx context.Context, coords models.Coordinates) (*models.LocalWeather, error) {
	local, err := s.repo.GetLocalWeather(ctx, coords)
	if err != nil {
		return nil, fmt.Errorf("failed to get local weather: %w", err)
	}

	s.logger.Debug(ctx, "[LOCAL_WEATHER] Local weather served", logging.Fields{
		"coordinates":  coords.String(),
		"weather_type": local.WeatherType,
	})
	return local, nil
}

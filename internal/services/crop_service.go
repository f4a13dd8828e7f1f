package services

import (
	"context"
	"errors"
	"fmt"

	"agri-platform/internal/models"
	"agri-platform/internal/repository"
	"agri-platform/pkg/logging"
	"agri-platform/pkg/metrics"
)

// CropService handles crop catalog operations
type CropService struct {
	repo    repository.CatalogRepository
	logger  *logging.ContextLogger
	metrics *metrics.Collector
}

// NewCropService creates a new crop service
func NewCropService(repo repository.CatalogRepository, logger *logging.StructuredLogger, metricsCollector *metrics.Collector) *CropService {
	return &CropService{
		repo:    repo,
		logger:  logger.WithFields(logging.Fields{"component": "crop_service"}),
		metrics: metricsCollector,
	}
}

// ListCrops returns the full crop table and refreshes the catalog size gauge
func (s *CropService) ListCrops(ctx context.Context) (models.CropTable, error) {
	crops, err := s.repo.ListCrops(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list crops: %w", err)
	}

	s.metrics.SetCatalogSize(len(crops))
	s.logger.Debug(ctx, "[CATALOG_SIZE] Crop catalog gauge refreshed", logging.Fields{
		"count": len(crops),
	})
	return crops, nil
}

// GetCrop returns one crop by name; a miss is reported as *repository.NotFoundError
func (s *CropService) GetCrop(ctx context.Context, name string) (*models.CropInfo, error) {
	info, err := s.repo.GetCrop(ctx, name)
	if err != nil {
		var nf *repository.NotFoundError
		if errors.As(err, &nf) {
			s.logger.Debug(ctx, "[CROP_NOT_FOUND] Crop lookup missed", logging.Fields{
				"crop": name,
			})
			return nil, err
		}
		return nil, fmt.Errorf("failed to get crop %s: %w", name, err)
	}
	return info, nil
}

package services

import (
	"context"
	"fmt"
	"time"

	"agri-platform/internal/models"
	"agri-platform/internal/repository"
	"agri-platform/pkg/logging"
)

// AdvisoryService serves crop advisories and the market price board
type AdvisoryService struct {
	repo   repository.CatalogRepository
	logger *logging.ContextLogger
	now    func() time.Time
}

// NewAdvisoryService creates a new advisory service using the wall clock
func NewAdvisoryService(repo repository.CatalogRepository, logger *logging.StructuredLogger) *AdvisoryService {
	return &AdvisoryService{
		repo:   repo,
		logger: logger.WithFields(logging.Fields{"component": "advisory_service"}),
		now:    time.Now,
	}
}

// WithClock replaces the clock used to stamp market prices
func (s *AdvisoryService) WithClock(now func() time.Time) *AdvisoryService {
	s.now = now
	return s
}

func (s *AdvisoryService) GetCropAdvisory(ctx context.Context) (*models.CropAdvisory, error) {
	advisory, err := s.repo.GetCropAdvisory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get crop advisory: %w", err)
	}
	return advisory, nil
}

// GetMarketPrices returns current prices stamped with the time of the request
func (s *AdvisoryService) GetMarketPrices(ctx context.Context) (*models.MarketPrices, error) {
	prices, err := s.repo.ListCropPrices(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list crop prices: %w", err)
	}

	lastUpdated := models.FormatTimestamp(s.now())
	s.logger.Debug(ctx, "[MARKET_PRICES] Price board stamped", logging.Fields{
		"crops":        len(prices),
		"last_updated": lastUpdated,
	})

	return &models.MarketPrices{
		Crops:       prices,
		LastUpdated: lastUpdated,
	}, nil
}

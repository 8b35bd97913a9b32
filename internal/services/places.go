package services

import (
	"context"
	"strconv"

	"github.com/sbilibin2017/gw-house-predictor/internal/models"
)

// ListingSearcher scans the bundled reference dataset.
type ListingSearcher interface {
	Search(ctx context.Context, province string, targetPrice *float64) []models.HouseListing
}

// PlacesService answers province/price searches over the reference listings.
type PlacesService struct {
	listings ListingSearcher
}

// NewPlacesService creates a new PlacesService.
func NewPlacesService(listings ListingSearcher) *PlacesService {
	return &PlacesService{listings: listings}
}

// Search filters listings by province substring and target price. Both
// filters are optional; an empty price means no price filter.
func (s *PlacesService) Search(ctx context.Context, province, price string) ([]models.HouseListing, error) {
	var targetPrice *float64
	if price != "" {
		n, err := strconv.ParseFloat(price, 64)
		if err != nil {
			return nil, &ValidationError{Field: "price", Reason: "must be a number"}
		}
		targetPrice = &n
	}

	return s.listings.Search(ctx, province, targetPrice), nil
}

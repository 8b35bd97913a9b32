package repositories

import (
	"context"
	_ "embed"
	"encoding/json"
	"math"
	"strings"

	"github.com/sbilibin2017/gw-house-predictor/internal/logger"
	"github.com/sbilibin2017/gw-house-predictor/internal/models"
)

//go:embed data/house_listings.json
var houseListingsJSON []byte

// priceBand is the maximum distance from the target price a listing may have
// to still match.
const priceBand = 5_000_000

// HouseListingRepository serves the bundled reference dataset. The data is
// parsed once at construction and never mutated.
type HouseListingRepository struct {
	listings []models.HouseListing
}

func NewHouseListingRepository() (*HouseListingRepository, error) {
	var listings []models.HouseListing
	if err := json.Unmarshal(houseListingsJSON, &listings); err != nil {
		return nil, err
	}
	return &HouseListingRepository{listings: listings}, nil
}

// Search scans the dataset. A listing matches when its province contains the
// given substring case-insensitively (or the substring is empty) and its
// price lies within the band around targetPrice (or targetPrice is nil).
func (r *HouseListingRepository) Search(ctx context.Context, province string, targetPrice *float64) []models.HouseListing {
	needle := strings.ToLower(province)

	matched := make([]models.HouseListing, 0)
	for _, listing := range r.listings {
		if needle != "" && !strings.Contains(strings.ToLower(listing.Province), needle) {
			continue
		}
		if targetPrice != nil && math.Abs(listing.Price-*targetPrice) > priceBand {
			continue
		}
		matched = append(matched, listing)
	}

	logger.Log.Infow(
		"province", province,
		"target_price", targetPrice,
		"result", len(matched),
	)

	return matched
}

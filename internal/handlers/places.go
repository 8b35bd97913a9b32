package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sbilibin2017/gw-house-predictor/internal/logger"
	"github.com/sbilibin2017/gw-house-predictor/internal/models"
	"github.com/sbilibin2017/gw-house-predictor/internal/services"
)

// PlaceSearcher filters the reference listings.
type PlaceSearcher interface {
	Search(ctx context.Context, province, price string) ([]models.HouseListing, error)
}

// SearchPlacesResponse represents matched reference listings
// swagger:model SearchPlacesResponse
type SearchPlacesResponse struct {
	Listings []models.HouseListing `json:"listings"`
}

// SearchPlacesErrorResponse represents an error response for the search
// swagger:model SearchPlacesErrorResponse
type SearchPlacesErrorResponse struct {
	// Error message
	Error string `json:"error"`
}

// NewSearchPlacesHandler returns an HTTP handler for the listing search.
// @Summary Search reference listings
// @Description Filters the bundled dataset by province substring (case-insensitive) and proximity to a target price. Both query parameters are optional.
// @Tags places
// @Produce json
// @Security BearerAuth
// @Param province query string false "Province substring"
// @Param price query string false "Target price; listings within 5,000,000 match"
// @Success 200 {object} handlers.SearchPlacesResponse "Matched listings"
// @Failure 400 {object} handlers.SearchPlacesErrorResponse "Non-numeric price"
// @Router /places/search [get]
func NewSearchPlacesHandler(svc PlaceSearcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		province := r.URL.Query().Get("province")
		price := r.URL.Query().Get("price")

		listings, err := svc.Search(r.Context(), province, price)
		if err != nil {
			var vErr *services.ValidationError
			if errors.As(err, &vErr) {
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(SearchPlacesErrorResponse{Error: vErr.Error()})
				return
			}
			logger.Log.Errorw("internal server error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(SearchPlacesErrorResponse{Error: "Internal server error"})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(SearchPlacesResponse{
			Listings: listings,
		})
	}
}

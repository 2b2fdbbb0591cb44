package handler

import (
	"net/http"

	"github.com/akshita-as02/wanderwise/internal/api/models"
	"github.com/akshita-as02/wanderwise/internal/api/response"
	"github.com/akshita-as02/wanderwise/internal/destination"
	"github.com/akshita-as02/wanderwise/internal/itinerary"
)

// MetadataHandler handles metadata endpoints.
type MetadataHandler struct {
	enums models.Enums
}

// NewMetadataHandler creates a new MetadataHandler.
func NewMetadataHandler() *MetadataHandler {
	return &MetadataHandler{
		enums: models.Enums{
			TripStyles:  toStrings(itinerary.TripStyles),
			TravelModes: toStrings(itinerary.TravelModes),
			Categories:  toStrings(itinerary.Categories),
			HotelTiers:  toStrings(itinerary.HotelTiers),
			Continents:  destination.Continents,
		},
	}
}

// GetEnums handles GET /v1/metadata/enums - enum values used by the API.
func (h *MetadataHandler) GetEnums(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "public, max-age=3600")
	response.JSON(w, r, http.StatusOK, h.enums)
}

func toStrings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

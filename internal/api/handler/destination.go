package handler

import (
	"errors"
	"net/http"

	"github.com/akshita-as02/wanderwise/internal/api/models"
	"github.com/akshita-as02/wanderwise/internal/api/response"
	"github.com/akshita-as02/wanderwise/internal/destination"
)

// DestinationHandler serves the popular destination catalog.
type DestinationHandler struct {
	catalog *destination.Catalog
}

// NewDestinationHandler creates a new DestinationHandler.
func NewDestinationHandler(catalog *destination.Catalog) *DestinationHandler {
	return &DestinationHandler{catalog: catalog}
}

// ListPopular handles GET /v1/destinations/popular?continent=&limit=.
func (h *DestinationHandler) ListPopular(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", destination.DefaultLimit)
	if err != nil {
		response.BadRequest(w, r, err.Error(), []models.FieldError{{Field: "limit", Message: err.Error(), Code: "type"}})
		return
	}
	if limit < 1 {
		// Query treats zero as "use the default"; an explicit zero is invalid.
		err = destination.ErrInvalidLimit
		response.BadRequest(w, r, err.Error(), []models.FieldError{{Field: "limit", Message: err.Error(), Code: "range"}})
		return
	}

	result, err := h.catalog.List(destination.Query{
		Continent: r.URL.Query().Get("continent"),
		Limit:     limit,
	})
	if err != nil {
		if errors.Is(err, destination.ErrInvalidLimit) {
			response.BadRequest(w, r, err.Error(), []models.FieldError{{Field: "limit", Message: err.Error(), Code: "range"}})
			return
		}
		response.InternalError(w, r, "failed to fetch popular places")
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	response.JSON(w, r, http.StatusOK, result)
}

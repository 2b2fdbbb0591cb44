package handler

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/akshita-as02/wanderwise/internal/api/models"
	"github.com/akshita-as02/wanderwise/internal/api/response"
	"github.com/akshita-as02/wanderwise/internal/export"
	"github.com/akshita-as02/wanderwise/internal/itinerary"
)

// maxListLimit bounds the page size of ListItineraries.
const maxListLimit = 100

// ItineraryHandler handles itinerary generation and retrieval.
type ItineraryHandler struct {
	service       *itinerary.Service
	publicBaseURL string
	logger        zerolog.Logger
}

// NewItineraryHandler creates a new ItineraryHandler. publicBaseURL is the
// externally reachable API origin used in PDF share codes.
func NewItineraryHandler(service *itinerary.Service, publicBaseURL string, logger zerolog.Logger) *ItineraryHandler {
	return &ItineraryHandler{
		service:       service,
		publicBaseURL: publicBaseURL,
		logger:        logger,
	}
}

// GenerateItinerary handles POST /v1/itineraries.
func (h *ItineraryHandler) GenerateItinerary(w http.ResponseWriter, r *http.Request) {
	var prefs itinerary.TripPreferences
	if err := decodeJSON(w, r, &prefs); err != nil {
		response.BadRequest(w, r, err.Error(), nil)
		return
	}

	itin, err := h.service.Generate(r.Context(), prefs)
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	w.Header().Set("Content-Location", "/v1/itineraries/"+itin.ID)
	response.JSON(w, r, http.StatusOK, itin)
}

// ListItineraries handles GET /v1/itineraries - stored itineraries, newest first.
func (h *ItineraryHandler) ListItineraries(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", itinerary.DefaultListLimit)
	if err != nil {
		response.BadRequest(w, r, err.Error(), []models.FieldError{{Field: "limit", Message: err.Error(), Code: "type"}})
		return
	}
	if limit < 1 || limit > maxListLimit {
		msg := "limit must be between 1 and " + strconv.Itoa(maxListLimit)
		response.BadRequest(w, r, msg, []models.FieldError{{Field: "limit", Message: msg, Code: "range"}})
		return
	}

	result, err := h.service.List(r.Context(), itinerary.ListOptions{
		Limit:  limit,
		Cursor: r.URL.Query().Get("cursor"),
	})
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	page := models.PagedItineraries{
		Items: result.Items,
		Meta:  models.PagedResponseMeta{Limit: limit},
	}
	if page.Items == nil {
		page.Items = []itinerary.Summary{}
	}
	if result.NextCursor != "" {
		page.Meta.NextCursor = &result.NextCursor
	}
	response.JSON(w, r, http.StatusOK, page)
}

// GetItinerary handles GET /v1/itineraries/{id}.
func (h *ItineraryHandler) GetItinerary(w http.ResponseWriter, r *http.Request) {
	itin, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, itin)
}

// EnhanceItinerary handles POST /v1/itineraries/{id}/enhance. The reworked
// plan is stored under a new ID.
func (h *ItineraryHandler) EnhanceItinerary(w http.ResponseWriter, r *http.Request) {
	var req models.EnhanceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.BadRequest(w, r, err.Error(), nil)
		return
	}

	itin, err := h.service.Enhance(r.Context(), chi.URLParam(r, "id"), req.Feedback)
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	response.Created(w, r, "/v1/itineraries/"+itin.ID, itin)
}

// ExportPDF handles GET /v1/itineraries/{id}/pdf.
func (h *ItineraryHandler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	itin, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	// Render fully before writing so that failures still produce a JSON error.
	var buf bytes.Buffer
	if err := export.RenderPDF(&buf, itin, export.Options{
		ShareURL: export.ShareURL(h.publicBaseURL, itin.ID),
	}); err != nil {
		h.logger.Error().Err(err).Str("itinerary_id", itin.ID).Msg("failed to render itinerary PDF")
		response.InternalError(w, r, "failed to render itinerary PDF")
		return
	}

	w.Header().Set("Content-Type", export.ContentTypePDF)
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename(itin)+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/akshita-as02/wanderwise/internal/api/models"
	"github.com/akshita-as02/wanderwise/internal/api/response"
	"github.com/akshita-as02/wanderwise/internal/itinerary"
)

// JobHandler handles asynchronous itinerary generation jobs.
type JobHandler struct {
	service *itinerary.Service
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(service *itinerary.Service) *JobHandler {
	return &JobHandler{service: service}
}

// SubmitJob handles POST /v1/itinerary-jobs.
func (h *JobHandler) SubmitJob(w http.ResponseWriter, r *http.Request) {
	var prefs itinerary.TripPreferences
	if err := decodeJSON(w, r, &prefs); err != nil {
		response.BadRequest(w, r, err.Error(), nil)
		return
	}

	job, err := h.service.SubmitJob(r.Context(), prefs)
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	location := "/v1/itinerary-jobs/" + job.ID
	response.Accepted(w, r, location, models.JobAccepted{Job: job, Location: location})
}

// GetJob handles GET /v1/itinerary-jobs/{id}.
func (h *JobHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	job, err := h.service.GetJob(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	if !job.Status.Done() {
		w.Header().Set("Retry-After", "2")
	}
	response.JSON(w, r, http.StatusOK, job)
}

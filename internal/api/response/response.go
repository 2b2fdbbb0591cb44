// Package response writes JSON success and error bodies for the API handlers.
package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/akshita-as02/wanderwise/internal/api/middleware"
	"github.com/akshita-as02/wanderwise/internal/api/models"
	"github.com/akshita-as02/wanderwise/internal/itinerary"
)

// JSON writes a JSON response with the given status code.
// Includes X-Request-Id header for correlation.
func JSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	setRequestID(w, r)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// Error writes an error response body.
func Error(w http.ResponseWriter, r *http.Request, problem *models.Problem) {
	problem.Instance = r.URL.Path
	problem.Write(w)
}

// FromError maps a service error onto the error body and status code.
// Validation problems are 400, missing records 404, a missing job queue 503
// and every other failure 500 with its pipeline type.
func FromError(w http.ResponseWriter, r *http.Request, err error) {
	traceID := middleware.GetRequestID(r.Context())

	var (
		validationErr *itinerary.ValidationError
		parsingErr    *itinerary.ParsingError
	)
	switch {
	case errors.Is(err, itinerary.ErrItineraryNotFound), errors.Is(err, itinerary.ErrJobNotFound):
		Error(w, r, models.NewNotFound(traceID, err.Error()))
	case errors.Is(err, itinerary.ErrQueueUnavailable):
		Error(w, r, models.NewServiceUnavailable(traceID, err.Error()))
	case errors.As(err, &validationErr):
		Error(w, r, models.NewBadRequest(traceID, validationErr.Error(), fieldErrors(validationErr.Errors)))
	case errors.As(err, &parsingErr):
		Error(w, r, models.NewInternalError(models.ProblemTypeParsing, traceID, parsingErr.Error()).
			WithRawResponse(parsingErr.Raw))
	default:
		problemType := models.ProblemType(itinerary.TypeOf(err))
		Error(w, r, models.NewInternalError(problemType, traceID, err.Error()))
	}
}

func fieldErrors(in []itinerary.FieldError) []models.FieldError {
	if len(in) == 0 {
		return nil
	}
	out := make([]models.FieldError, len(in))
	for i, fe := range in {
		out[i] = models.FieldError{Field: fe.Field, Message: fe.Message, Code: fe.Code}
	}
	return out
}

// BadRequest writes a 400 validation_error response.
func BadRequest(w http.ResponseWriter, r *http.Request, details string, errors []models.FieldError) {
	traceID := middleware.GetRequestID(r.Context())
	Error(w, r, models.NewBadRequest(traceID, details, errors))
}

// NotFound writes a 404 Not Found error response.
func NotFound(w http.ResponseWriter, r *http.Request, details string) {
	traceID := middleware.GetRequestID(r.Context())
	Error(w, r, models.NewNotFound(traceID, details))
}

// InternalError writes a 500 unknown_error response.
func InternalError(w http.ResponseWriter, r *http.Request, details string) {
	traceID := middleware.GetRequestID(r.Context())
	Error(w, r, models.NewInternalError(models.ProblemTypeUnknown, traceID, details))
}

// Created writes a 201 Created response with Location header.
func Created(w http.ResponseWriter, r *http.Request, location string, data any) {
	withLocation(w, r, http.StatusCreated, location, data)
}

// Accepted writes a 202 Accepted response with Location header.
func Accepted(w http.ResponseWriter, r *http.Request, location string, data any) {
	withLocation(w, r, http.StatusAccepted, location, data)
}

func withLocation(w http.ResponseWriter, r *http.Request, status int, location string, data any) {
	if location != "" {
		w.Header().Set("Location", location)
	}
	JSON(w, r, status, data)
}

func setRequestID(w http.ResponseWriter, r *http.Request) {
	if requestID := middleware.GetRequestID(r.Context()); requestID != "" {
		w.Header().Set("X-Request-Id", requestID)
	}
}

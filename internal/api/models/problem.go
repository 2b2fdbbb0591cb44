package models

import (
	"encoding/json"
	"net/http"
)

// Problem is the body of every non-2xx JSON response.
type Problem struct {
	// Error is a short, human-readable summary of the failure kind.
	Error string `json:"error"`

	// Details explains this particular occurrence.
	Details string `json:"details,omitempty"`

	// Type is the stable discriminator clients switch on.
	Type ProblemType `json:"type"`

	// Status mirrors the HTTP status code.
	Status int `json:"status"`

	// Instance is the request path.
	Instance string `json:"instance,omitempty"`

	// TraceID is the request identifier for debugging.
	TraceID string `json:"traceId"`

	// Errors contains field-level validation errors.
	Errors []FieldError `json:"errors,omitempty"`

	// RawResponse carries the unparseable generation output for parsing_error.
	RawResponse *string `json:"rawResponse,omitempty"`
}

// FieldError represents a validation error on a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// ProblemType is the discriminator carried in Problem.Type.
type ProblemType string

const (
	ProblemTypeValidation      ProblemType = "validation_error"
	ProblemTypeConfiguration   ProblemType = "configuration_error"
	ProblemTypeGeneration      ProblemType = "generation_error"
	ProblemTypeParsing         ProblemType = "parsing_error"
	ProblemTypeUnknown         ProblemType = "unknown_error"
	ProblemTypeNotFound        ProblemType = "not_found"
	ProblemTypeTooManyRequests ProblemType = "too_many_requests"
	ProblemTypeUnavailable     ProblemType = "service_unavailable"
	ProblemTypeTLSRequired     ProblemType = "tls_required"
)

var problemTitles = map[ProblemType]string{
	ProblemTypeValidation:      "Invalid request",
	ProblemTypeConfiguration:   "Itinerary service is not configured",
	ProblemTypeGeneration:      "Failed to generate itinerary",
	ProblemTypeParsing:         "Failed to parse AI response",
	ProblemTypeUnknown:         "An unexpected error occurred",
	ProblemTypeNotFound:        "Not found",
	ProblemTypeTooManyRequests: "Too many requests",
	ProblemTypeUnavailable:     "Service unavailable",
	ProblemTypeTLSRequired:     "TLS required",
}

// Title returns the summary used in Problem.Error for the type.
func (t ProblemType) Title() string {
	if title, ok := problemTitles[t]; ok {
		return title
	}
	return problemTitles[ProblemTypeUnknown]
}

// NewProblem creates a new Problem with the given parameters.
func NewProblem(problemType ProblemType, status int, traceID string) *Problem {
	return &Problem{
		Error:   problemType.Title(),
		Type:    problemType,
		Status:  status,
		TraceID: traceID,
	}
}

// WithDetails adds a detail message to the Problem.
func (p *Problem) WithDetails(details string) *Problem {
	p.Details = details
	return p
}

// WithInstance adds the request path to the Problem.
func (p *Problem) WithInstance(instance string) *Problem {
	p.Instance = instance
	return p
}

// WithErrors adds field errors to the Problem.
func (p *Problem) WithErrors(errors []FieldError) *Problem {
	p.Errors = errors
	return p
}

// WithRawResponse attaches the raw generation output to the Problem.
func (p *Problem) WithRawResponse(raw string) *Problem {
	p.RawResponse = &raw
	return p
}

// Write writes the Problem as JSON to the ResponseWriter.
func (p *Problem) Write(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	if p.TraceID != "" {
		w.Header().Set("X-Request-Id", p.TraceID)
	}
	w.WriteHeader(p.Status)
	_ = json.NewEncoder(w).Encode(p)
}

// NewBadRequest creates a 400 validation_error problem.
func NewBadRequest(traceID, details string, errors []FieldError) *Problem {
	return NewProblem(ProblemTypeValidation, http.StatusBadRequest, traceID).
		WithDetails(details).
		WithErrors(errors)
}

// NewNotFound creates a 404 Not Found problem.
func NewNotFound(traceID, details string) *Problem {
	return NewProblem(ProblemTypeNotFound, http.StatusNotFound, traceID).WithDetails(details)
}

// NewTooManyRequests creates a 429 Too Many Requests problem.
func NewTooManyRequests(traceID, details string) *Problem {
	return NewProblem(ProblemTypeTooManyRequests, http.StatusTooManyRequests, traceID).WithDetails(details)
}

// NewInternalError creates a 500 problem of the given type.
func NewInternalError(problemType ProblemType, traceID, details string) *Problem {
	return NewProblem(problemType, http.StatusInternalServerError, traceID).WithDetails(details)
}

// NewServiceUnavailable creates a 503 Service Unavailable problem.
func NewServiceUnavailable(traceID, details string) *Problem {
	return NewProblem(ProblemTypeUnavailable, http.StatusServiceUnavailable, traceID).WithDetails(details)
}

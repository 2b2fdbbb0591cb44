package models

import "github.com/akshita-as02/wanderwise/internal/itinerary"

// EnhanceRequest is the body of POST /v1/itineraries/{id}/enhance.
type EnhanceRequest struct {
	Feedback string `json:"feedback"`
}

// PagedResponseMeta describes how to fetch the next page.
type PagedResponseMeta struct {
	Limit      int     `json:"limit"`
	NextCursor *string `json:"nextCursor,omitempty"`
}

// PagedItineraries is one page of stored itinerary summaries.
type PagedItineraries struct {
	Items []itinerary.Summary `json:"items"`
	Meta  PagedResponseMeta   `json:"meta"`
}

// JobAccepted is returned when an itinerary job is queued.
type JobAccepted struct {
	Job      *itinerary.Job `json:"job"`
	Location string         `json:"location"`
}

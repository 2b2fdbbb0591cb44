// Package worker runs itinerary generation jobs delivered over Pub/Sub.
package worker

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/akshita-as02/wanderwise/internal/itinerary"
)

// Job types carried in JobMessage.JobType.
const (
	JobTypeGenerateItinerary = "generate_itinerary"
	JobTypeHealthCheck       = "health_check"
)

// requestIDAttribute is the message attribute carrying the submitting
// request's ID.
const requestIDAttribute = "requestId"

// JobMessage is the Pub/Sub payload for a queued job.
type JobMessage struct {
	JobType     string                     `json:"jobType"`
	JobID       string                     `json:"jobId,omitempty"`
	Preferences *itinerary.TripPreferences `json:"preferences,omitempty"`
}

var errMissingJobID = errors.New("message has no jobId")

// EncodeJob builds the message published for job.
func EncodeJob(job *itinerary.Job) ([]byte, error) {
	prefs := job.Preferences
	return json.Marshal(JobMessage{
		JobType:     JobTypeGenerateItinerary,
		JobID:       job.ID,
		Preferences: &prefs,
	})
}

// DecodeJob parses a message payload.
func DecodeJob(data []byte) (JobMessage, error) {
	var msg JobMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return JobMessage{}, fmt.Errorf("parsing job message: %w", err)
	}
	if msg.JobType == JobTypeGenerateItinerary && msg.JobID == "" {
		return JobMessage{}, errMissingJobID
	}
	return msg, nil
}

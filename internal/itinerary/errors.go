package itinerary

import (
	"errors"
	"fmt"
	"strings"
)

// Storage errors.
var (
	ErrItineraryNotFound = errors.New("itinerary not found")
	ErrItineraryExists   = errors.New("itinerary already exists")
	ErrJobNotFound       = errors.New("itinerary job not found")
)

// ErrorType is the stable discriminator reported to callers for a failure.
type ErrorType string

const (
	ErrorTypeConfiguration ErrorType = "configuration_error"
	ErrorTypeValidation    ErrorType = "validation_error"
	ErrorTypeGeneration    ErrorType = "generation_error"
	ErrorTypeParsing       ErrorType = "parsing_error"
	ErrorTypeUnknown       ErrorType = "unknown_error"
)

// TypedError is implemented by every pipeline failure.
type TypedError interface {
	error
	Type() ErrorType
}

// FieldError describes a problem with a single TripPreferences field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// ConfigurationError reports a missing credential for the generative service.
type ConfigurationError struct {
	Setting string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("generation service is not configured: %s is missing", e.Setting)
}

// Type implements TypedError.
func (e *ConfigurationError) Type() ErrorType { return ErrorTypeConfiguration }

// ValidationError reports invalid trip preferences.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "validation failed"
	}
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		msgs = append(msgs, fe.Field+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Type implements TypedError.
func (e *ValidationError) Type() ErrorType { return ErrorTypeValidation }

// GenerationError wraps a failed call to the generative service.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return e.Err.Error()
}

func (e *GenerationError) Unwrap() error { return e.Err }

// Type implements TypedError.
func (e *GenerationError) Type() ErrorType { return ErrorTypeGeneration }

// ParsingError reports a response that is not a structured document. Raw holds
// the response text exactly as received.
type ParsingError struct {
	Raw string
	Err error
}

func (e *ParsingError) Error() string {
	return "failed to parse AI response as JSON: " + e.Err.Error()
}

func (e *ParsingError) Unwrap() error { return e.Err }

// Type implements TypedError.
func (e *ParsingError) Type() ErrorType { return ErrorTypeParsing }

// UnknownError is the catch-all for unexpected failures.
type UnknownError struct {
	Err error
}

func (e *UnknownError) Error() string {
	return "unknown error during itinerary generation: " + e.Err.Error()
}

func (e *UnknownError) Unwrap() error { return e.Err }

// Type implements TypedError.
func (e *UnknownError) Type() ErrorType { return ErrorTypeUnknown }

// TypeOf returns the discriminator for err. Errors outside the taxonomy are
// reported as unknown.
func TypeOf(err error) ErrorType {
	var typed TypedError
	if errors.As(err, &typed) {
		return typed.Type()
	}
	return ErrorTypeUnknown
}

// Package models holds the JSON bodies of the WanderWise HTTP API that are
// not itinerary domain types themselves.
package models

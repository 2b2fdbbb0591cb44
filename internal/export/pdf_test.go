package export_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akshita-as02/wanderwise/internal/export"
	"github.com/akshita-as02/wanderwise/internal/itinerary"
)

func sampleItinerary() *itinerary.Itinerary {
	return &itinerary.Itinerary{
		ID:          "wanderwise-1700000000000",
		Title:       "Café Hopping in Paris",
		Destination: "Paris",
		Duration:    2,
		TotalBudget: 1200,
		CreatedAt:   time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
		Preferences: itinerary.TripPreferences{Destination: "Paris", NumberOfDays: 2, Budget: 1200, Currency: "EUR", Travelers: 2},
		Days: []itinerary.DayPlan{
			{
				Day:   1,
				Date:  "Day 1",
				Theme: "Left Bank",
				Activities: []itinerary.Activity{{
					ID:            "day-1-activity-0",
					Name:          "Musée d'Orsay",
					Description:   "Impressionist masterpieces in a Beaux-Arts railway station",
					Location:      itinerary.Location{Address: "1 Rue de la Légion d'Honneur, 75007 Paris"},
					Duration:      150,
					TimeSlot:      itinerary.TimeSlot{Start: "09:30", End: "12:00"},
					Category:      itinerary.CategoryCulture,
					EstimatedCost: 16,
					Tips:          []string{"Book a timed ticket"},
				}},
				TotalDistance:   7.3,
				TotalTravelTime: 42.5,
				RecommendedHotels: []itinerary.Hotel{
					{ID: "hotel-0-0", Name: "Le Meurice", Price: 310, Rating: 4.6, Tier: itinerary.HotelTierLuxury, BookingURL: "https://booking.com/search?dest=Le%20Meurice"},
				},
				DailyBudget: 600,
				WeatherTip:  "Pack an umbrella",
			},
			{Day: 2, Date: "Day 2", Theme: "Montmartre"},
		},
		AIInsights:  []string{"Museums are free on the first Sunday"},
		PackingList: []string{"Comfortable shoes"},
	}
}

func TestRenderPDF(t *testing.T) {
	var buf bytes.Buffer
	err := export.RenderPDF(&buf, sampleItinerary(), export.Options{
		ShareURL: export.ShareURL("https://wanderwise.example", "wanderwise-1700000000000"),
	})
	require.NoError(t, err)

	out := buf.Bytes()
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.Contains(t, string(out), "%%EOF")
	assert.Contains(t, string(out), "/Subtype /Image", "share code is embedded")
}

func TestRenderPDF_WithoutShareCode(t *testing.T) {
	var withQR, withoutQR bytes.Buffer
	require.NoError(t, export.RenderPDF(&withQR, sampleItinerary(), export.Options{ShareURL: "https://wanderwise.example/v1/itineraries/x"}))
	require.NoError(t, export.RenderPDF(&withoutQR, sampleItinerary(), export.Options{}))

	assert.NotContains(t, withoutQR.String(), "/Subtype /Image")
	assert.Less(t, withoutQR.Len(), withQR.Len())
}

func TestRenderPDF_EmptyItinerary(t *testing.T) {
	var buf bytes.Buffer
	err := export.RenderPDF(&buf, &itinerary.Itinerary{ID: "wanderwise-1", Title: "Empty"}, export.Options{})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestShareURL(t *testing.T) {
	assert.Equal(t, "https://wanderwise.example/v1/itineraries/wanderwise-1", export.ShareURL("https://wanderwise.example/", "wanderwise-1"))
	assert.Equal(t, "http://localhost:8080/v1/itineraries/wanderwise-1", export.ShareURL("http://localhost:8080", "wanderwise-1"))
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "wanderwise-1.pdf", export.Filename(&itinerary.Itinerary{ID: "wanderwise-1"}))
}

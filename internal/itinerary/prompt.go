package itinerary

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Prompts is the pair of instruction blocks sent to the generative service.
type Prompts struct {
	System string
	User   string
}

// systemPrompt describes the document shape the assembler reads. Field names
// here must stay in sync with parseRawDocument.
const systemPrompt = `You are WanderWise, an expert AI travel planner that creates amazing, personalized travel experiences.
You understand local culture, hidden gems, optimal timing, and budget considerations.

Create a detailed JSON itinerary with this EXACT structure:
{
  "title": "Catchy trip title (e.g., 'Magical Tokyo Adventure')",
  "aiInsights": [
    "3-4 key insights about the destination",
    "Local tips and cultural insights",
    "Best timing and seasonal advice",
    "Money-saving tips specific to this destination"
  ],
  "packingList": [
    "Essential items based on activities and weather",
    "Destination-specific items",
    "Technology and practical items",
    "Clothing recommendations"
  ],
  "days": [
    {
      "day": 1,
      "theme": "Day theme (e.g., 'Cultural Immersion', 'Urban Exploration')",
      "activities": [
        {
          "name": "Specific place/activity name",
          "description": "Engaging 2-3 sentence description with local context and why it's special",
          "location": "Full address with district/area and city",
          "timeSlot": { "start": "09:00", "end": "11:30" },
          "category": "sightseeing|food|entertainment|culture|nature|shopping|adventure",
          "estimatedCost": 25,
          "tips": [
            "Local insider tip or hack",
            "Best photo spots or timing",
            "What to avoid or be careful about"
          ]
        }
      ],
      "dailyBudget": 120,
      "weatherTip": "Weather-appropriate advice and seasonal considerations"
    }
  ]
}

IMPORTANT GUIDELINES:
- Include 4-6 activities per day based on trip style
- Provide REAL, specific addresses and locations
- Consider realistic travel times between locations
- Include diverse activity types (sightseeing, food, culture, etc.)
- Add local insights and cultural context
- Balance indoor/outdoor activities
- Consider meal times and local dining customs
- Stay within budget while maximizing experience
- Include hidden gems alongside popular attractions
- Make descriptions engaging and informative
- Ensure activities match the traveler's interests
- Consider the trip style (relaxed, packed, adventure, cultural)`

// focusInterestCount caps how many interests the prompt singles out.
const focusInterestCount = 3

// BuildPrompts renders the instruction blocks for a generation request.
// prefs is expected to be validated already.
func BuildPrompts(prefs TripPreferences, days int) Prompts {
	var b strings.Builder

	fmt.Fprintf(&b, "Plan an incredible %d-day trip to %s for %s.\n\n",
		days, prefs.Destination, travelersPhrase(prefs.Travelers))

	b.WriteString("Trip Details:\n")
	fmt.Fprintf(&b, "- Budget: %s total\n", budgetPhrase(prefs.Budget, prefs.Currency))
	fmt.Fprintf(&b, "- Trip style: %s\n", orUnspecified(string(prefs.TripStyle)))
	fmt.Fprintf(&b, "- Interests: %s\n", orUnspecified(strings.Join(prefs.Interests, ", ")))
	fmt.Fprintf(&b, "- Travel mode: %s\n", orUnspecified(string(prefs.TravelMode)))
	if prefs.Timezone != "" {
		fmt.Fprintf(&b, "- Local timezone: %s (use it for all time slots)\n", prefs.Timezone)
	}
	if prefs.StartDate != "" {
		fmt.Fprintf(&b, "- Starting on: %s\n", prefs.StartDate)
	}

	b.WriteString("\n")
	style := string(prefs.TripStyle)
	if style == "" {
		style = "well-balanced"
	}
	fmt.Fprintf(&b, "Create a %s itinerary that maximizes their interests while staying within budget.\n", style)
	b.WriteString("Include local experiences, authentic dining, and optimal timing for each activity.\n")
	b.WriteString("Make it feel like a local expert planned their trip!\n")

	if len(prefs.Interests) > 0 {
		focus := prefs.Interests
		if len(focus) > focusInterestCount {
			focus = focus[:focusInterestCount]
		}
		fmt.Fprintf(&b, "\nFocus especially on: %s activities.\n", strings.Join(focus, ", "))
	}

	fmt.Fprintf(&b, "\nReturn exactly %d entries in \"days\".\n", days)
	b.WriteString("Return ONLY the JSON response with no additional text or formatting.")

	return Prompts{System: systemPrompt, User: b.String()}
}

// BuildEnhancementPrompts renders the instruction blocks for reworking an
// existing itinerary according to traveler feedback.
func BuildEnhancementPrompts(current *Itinerary, feedback string) (Prompts, error) {
	body, err := json.MarshalIndent(current, "", "  ")
	if err != nil {
		return Prompts{}, fmt.Errorf("encoding current itinerary: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Enhance this travel itinerary based on user feedback: %q\n\n", feedback)
	fmt.Fprintf(&b, "Current itinerary: %s\n\n", body)
	b.WriteString("Provide the enhanced itinerary in the same JSON format, incorporating the feedback ")
	b.WriteString("while maintaining budget and time constraints.\n")
	fmt.Fprintf(&b, "Keep exactly %d entries in \"days\".\n", current.Duration)
	b.WriteString("Return ONLY the JSON response with no additional text or formatting.")

	return Prompts{System: systemPrompt, User: b.String()}, nil
}

func travelersPhrase(n int) string {
	switch {
	case n <= 0:
		return "travelers"
	case n == 1:
		return "1 traveler"
	default:
		return strconv.Itoa(n) + " travelers"
	}
}

func budgetPhrase(amount float64, currency string) string {
	if amount <= 0 {
		return "flexible"
	}
	value := strconv.FormatFloat(amount, 'f', -1, 64)
	if currency == "" {
		return "$" + value
	}
	return value + " " + currency
}

func orUnspecified(s string) string {
	if s == "" {
		return "no preference"
	}
	return s
}

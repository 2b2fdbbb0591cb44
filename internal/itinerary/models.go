// Package itinerary turns trip preferences into a fully populated travel
// itinerary: it renders prompts for the generative text service, normalizes
// the untrusted response and assembles the final plan with documented defaults.
package itinerary

import "time"

// TripStyle is the pace and flavor of a trip.
type TripStyle string

const (
	TripStyleRelaxed   TripStyle = "relaxed"
	TripStylePacked    TripStyle = "packed"
	TripStyleAdventure TripStyle = "adventure"
	TripStyleCultural  TripStyle = "cultural"
)

// TripStyles lists every supported trip style.
var TripStyles = []TripStyle{TripStyleRelaxed, TripStylePacked, TripStyleAdventure, TripStyleCultural}

// TravelMode is how travelers move between activities.
type TravelMode string

const (
	TravelModeDriving   TravelMode = "driving"
	TravelModeWalking   TravelMode = "walking"
	TravelModeTransit   TravelMode = "transit"
	TravelModeBicycling TravelMode = "bicycling"
)

// TravelModes lists every supported travel mode.
var TravelModes = []TravelMode{TravelModeDriving, TravelModeWalking, TravelModeTransit, TravelModeBicycling}

// Category labels an activity. Values coming from the generative service are
// passed through as-is and are not checked against this list.
type Category string

const (
	CategorySightseeing   Category = "sightseeing"
	CategoryFood          Category = "food"
	CategoryEntertainment Category = "entertainment"
	CategoryCulture       Category = "culture"
	CategoryNature        Category = "nature"
	CategoryShopping      Category = "shopping"
	CategoryAdventure     Category = "adventure"
)

// Categories lists the activity categories the prompt asks for.
var Categories = []Category{
	CategorySightseeing,
	CategoryFood,
	CategoryEntertainment,
	CategoryCulture,
	CategoryNature,
	CategoryShopping,
	CategoryAdventure,
}

// HotelTier is a lodging price/quality class.
type HotelTier string

const (
	HotelTierLuxury HotelTier = "luxury"
	HotelTierMid    HotelTier = "mid"
	HotelTierBudget HotelTier = "budget"
)

// HotelTiers lists the tiers in the order hotels are emitted for each day.
var HotelTiers = []HotelTier{HotelTierLuxury, HotelTierMid, HotelTierBudget}

// StartDateLayout is the accepted format of TripPreferences.StartDate.
const StartDateLayout = "2006-01-02"

// TripPreferences is the caller's request for an itinerary.
type TripPreferences struct {
	Destination  string     `json:"destination" validate:"notblank"`
	NumberOfDays int        `json:"numberOfDays" validate:"required,gte=1"`
	Budget       float64    `json:"budget" validate:"omitempty,gt=0"`
	Currency     string     `json:"currency,omitempty" validate:"omitempty,max=8"`
	Travelers    int        `json:"travelers" validate:"omitempty,gt=0"`
	Interests    []string   `json:"interests" validate:"omitempty,dive,notblank"`
	TripStyle    TripStyle  `json:"tripStyle" validate:"omitempty,oneof=relaxed packed adventure cultural"`
	TravelMode   TravelMode `json:"travelMode" validate:"omitempty,oneof=driving walking transit bicycling"`
	Timezone     string     `json:"timezone,omitempty" validate:"omitempty,max=64"`
	StartDate    string     `json:"startDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// Coordinates is a geographic position. Generated itineraries always carry
// zero values since no geocoding is performed.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Location is an address with its coordinates.
type Location struct {
	Address     string      `json:"address"`
	Coordinates Coordinates `json:"coordinates"`
}

// TimeSlot is a local HH:MM start/end pair.
type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Activity is a single planned visit within a day.
type Activity struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Location      Location `json:"location"`
	Duration      int      `json:"duration"`
	TimeSlot      TimeSlot `json:"timeSlot"`
	Category      Category `json:"category"`
	EstimatedCost float64  `json:"estimatedCost"`
	Tips          []string `json:"tips"`
}

// Hotel is a synthetic lodging suggestion.
type Hotel struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Address     string      `json:"address"`
	Coordinates Coordinates `json:"coordinates"`
	Price       int         `json:"price"`
	Rating      float64     `json:"rating"`
	Amenities   []string    `json:"amenities"`
	BookingURL  string      `json:"bookingUrl"`
	Tier        HotelTier   `json:"tier"`
}

// DayPlan is one day of an itinerary.
type DayPlan struct {
	Day               int        `json:"day"`
	Date              string     `json:"date"`
	Theme             string     `json:"theme"`
	Activities        []Activity `json:"activities"`
	TotalDistance     float64    `json:"totalDistance"`
	TotalTravelTime   float64    `json:"totalTravelTime"`
	RecommendedHotels []Hotel    `json:"recommendedHotels"`
	DailyBudget       float64    `json:"dailyBudget"`
	WeatherTip        string     `json:"weatherTip"`
}

// Itinerary is the complete assembled trip plan.
type Itinerary struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Destination string          `json:"destination"`
	Duration    int             `json:"duration"`
	TotalBudget float64         `json:"totalBudget"`
	Days        []DayPlan       `json:"days"`
	CreatedAt   time.Time       `json:"createdAt"`
	Preferences TripPreferences `json:"preferences"`
	AIInsights  []string        `json:"aiInsights"`
	PackingList []string        `json:"packingList"`
}

// Summary is the list view of a stored itinerary.
type Summary struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Destination string    `json:"destination"`
	Duration    int       `json:"duration"`
	TotalBudget float64   `json:"totalBudget"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Summarize returns the list view of the itinerary.
func (i *Itinerary) Summarize() Summary {
	return Summary{
		ID:          i.ID,
		Title:       i.Title,
		Destination: i.Destination,
		Duration:    i.Duration,
		TotalBudget: i.TotalBudget,
		CreatedAt:   i.CreatedAt,
	}
}

package itinerary

import (
	"fmt"
	"math"
	"math/rand/v2"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
)

// Defaults applied when the generated document omits a field.
const (
	IDPrefix              = "wanderwise-"
	DefaultActivityMinute = 120
	DefaultWeatherTip     = "Check local weather before heading out!"
	bookingSearchURL      = "https://booking.com/search?dest="
	calendarDateLayout    = "Mon Jan 02 2006"
)

// DefaultAIInsights is used when the document has no aiInsights list.
var DefaultAIInsights = []string{
	"Your AI travel assistant has optimized this itinerary for your preferences",
	"Local recommendations included based on cultural insights",
	"Budget-friendly options prioritized throughout your journey",
	"Timing optimized to avoid crowds and maximize experiences",
}

// DefaultPackingList is used when the document has no packingList.
var DefaultPackingList = []string{
	"Comfortable walking shoes",
	"Weather-appropriate clothing",
	"Portable charger",
	"Camera or smartphone",
	"Travel documents and copies",
}

// Mock day statistic ranges, [min, max).
const (
	distanceMin    = 5.0
	distanceSpan   = 20.0
	travelTimeMin  = 30.0
	travelTimeSpan = 60.0
)

// Random is the source of pseudo-random values in [0, 1). *rand.Rand from
// math/rand/v2 satisfies it.
type Random interface {
	Float64() float64
}

type globalRandom struct{}

func (globalRandom) Float64() float64 { return rand.Float64() }

// DefaultRandom returns the process-wide generator, safe for concurrent use.
func DefaultRandom() Random {
	return globalRandom{}
}

// AssemblerConfig holds dependencies for the Assembler.
type AssemblerConfig struct {
	// Lodging resolves hotels for a destination. Defaults to StaticLodgingCatalog.
	Lodging LodgingCatalog

	// Random drives hotel prices, ratings and day statistics. Defaults to
	// DefaultRandom. A Random that is not safe for concurrent use must not be
	// shared between goroutines.
	Random Random

	// Clock returns the current time. Defaults to time.Now.
	Clock func() time.Time
}

// Assembler builds Itinerary values from parsed documents.
type Assembler struct {
	lodging LodgingCatalog
	random  Random
	clock   func() time.Time

	// lastIDMillis is the timestamp of the most recent itinerary id.
	lastIDMillis atomic.Int64
}

// NewAssembler creates a new Assembler.
func NewAssembler(cfg AssemblerConfig) *Assembler {
	if cfg.Lodging == nil {
		cfg.Lodging = NewStaticLodgingCatalog()
	}
	if cfg.Random == nil {
		cfg.Random = DefaultRandom()
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	return &Assembler{
		lodging: cfg.Lodging,
		random:  cfg.Random,
		clock:   cfg.Clock,
	}
}

// Assemble produces a complete Itinerary from prefs and doc. The output has
// one DayPlan per day record in doc, which may differ from days; Duration
// always reports days. Any panic while assembling is returned as *UnknownError.
func (a *Assembler) Assemble(prefs TripPreferences, days int, doc Document) (itin *Itinerary, err error) {
	defer func() {
		if r := recover(); r != nil {
			itin = nil
			err = &UnknownError{Err: fmt.Errorf("assembling itinerary: %v", r)}
		}
	}()

	if days < 1 {
		return nil, &ValidationError{Errors: []FieldError{{
			Field:   "numberOfDays",
			Message: "must be at least 1",
			Code:    "gte",
		}}}
	}

	raw := parseRawDocument(doc)
	now := a.clock()
	start, hasStart := parseStartDate(prefs.StartDate)
	templates := a.lodging.Lookup(prefs.Destination)
	fallbackBudget := math.Floor(prefs.Budget / float64(days))

	plans := make([]DayPlan, 0, len(raw.days))
	for i, day := range raw.days {
		plan := DayPlan{
			Day:               i + 1,
			Date:              dayLabel(i, start, hasStart),
			Theme:             fmt.Sprintf("Day %d Adventure", i+1),
			Activities:        a.activities(i, day.activities),
			TotalDistance:     roundTenth(a.random.Float64()*distanceSpan + distanceMin),
			TotalTravelTime:   roundTenth(a.random.Float64()*travelTimeSpan + travelTimeMin),
			RecommendedHotels: a.hotels(i, templates),
			DailyBudget:       fallbackBudget,
			WeatherTip:        DefaultWeatherTip,
		}
		if day.theme != "" {
			plan.Theme = day.theme
		}
		if day.dailyBudget != 0 {
			plan.DailyBudget = day.dailyBudget
		}
		if day.weatherTip != "" {
			plan.WeatherTip = day.weatherTip
		}
		plans = append(plans, plan)
	}

	itin = &Itinerary{
		ID:          IDPrefix + strconv.FormatInt(a.nextIDMillis(now), 10),
		Title:       "Amazing " + prefs.Destination + " Adventure",
		Destination: prefs.Destination,
		Duration:    days,
		TotalBudget: prefs.Budget,
		Days:        plans,
		CreatedAt:   now.UTC(),
		Preferences: prefs,
		AIInsights:  append([]string(nil), DefaultAIInsights...),
		PackingList: append([]string(nil), DefaultPackingList...),
	}
	if raw.title != "" {
		itin.Title = raw.title
	}
	if raw.aiInsights != nil {
		itin.AIInsights = raw.aiInsights
	}
	if raw.packingList != nil {
		itin.PackingList = raw.packingList
	}

	return itin, nil
}

// nextIDMillis returns now in Unix milliseconds, bumped past the previous id
// so ids from one Assembler strictly increase even when the clock stalls.
func (a *Assembler) nextIDMillis(now time.Time) int64 {
	for {
		last := a.lastIDMillis.Load()
		next := now.UnixMilli()
		if next <= last {
			next = last + 1
		}
		if a.lastIDMillis.CompareAndSwap(last, next) {
			return next
		}
	}
}

func (a *Assembler) activities(dayIndex int, raw []rawActivity) []Activity {
	activities := make([]Activity, 0, len(raw))
	for _, ra := range raw {
		tips := ra.tips
		if tips == nil {
			tips = []string{}
		}
		activities = append(activities, Activity{
			ID:          fmt.Sprintf("day-%d-activity-%d", dayIndex, ra.index),
			Name:        ra.name,
			Description: ra.description,
			Location: Location{
				Address:     ra.location,
				Coordinates: Coordinates{},
			},
			Duration:      DefaultActivityMinute,
			TimeSlot:      ra.timeSlot,
			Category:      Category(ra.category),
			EstimatedCost: ra.estimatedCost,
			Tips:          tips,
		})
	}
	return activities
}

func (a *Assembler) hotels(dayIndex int, templates map[HotelTier]HotelTemplate) []Hotel {
	hotels := make([]Hotel, 0, len(HotelTiers))
	for tierIndex, tier := range HotelTiers {
		tpl := templates[tier]
		span := tpl.PriceMax - tpl.PriceMin
		price := tpl.PriceMin
		if span > 0 {
			price += int(math.Floor(a.random.Float64() * float64(span)))
		}
		hotels = append(hotels, Hotel{
			ID:          fmt.Sprintf("hotel-%d-%d", dayIndex, tierIndex),
			Name:        tpl.Name,
			Address:     tpl.Address,
			Coordinates: Coordinates{},
			Price:       price,
			Rating:      roundTenth(a.random.Float64()*2 + 3),
			Amenities:   append([]string(nil), tpl.Amenities...),
			BookingURL:  bookingSearchURL + escapeComponent(tpl.Name),
			Tier:        tier,
		})
	}
	return hotels
}

// componentUnescaper undoes the escapes QueryEscape applies beyond the
// URI component rules, so "Bed & Breakfast" becomes "Bed%20%26%20Breakfast".
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

func escapeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}

func parseStartDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(StartDateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func dayLabel(index int, start time.Time, hasStart bool) string {
	if !hasStart {
		return fmt.Sprintf("Day %d", index+1)
	}
	return start.AddDate(0, 0, index).Format(calendarDateLayout)
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

// Package destination serves the curated list of popular destinations,
// enriched per request with mock weather and a trending score.
package destination

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
	"strings"
	"time"
	"unicode/utf16"
)

const (
	// DefaultLimit is the number of destinations returned when no limit is given.
	DefaultLimit = 8

	// MaxLimit is the largest accepted limit.
	MaxLimit = 50

	// ContinentAll disables the continent filter.
	ContinentAll = "all"

	trendingMin  = 50
	trendingSpan = 100
)

// ErrInvalidLimit is returned when a limit outside 1..MaxLimit is requested.
var ErrInvalidLimit = fmt.Errorf("limit must be between 1 and %d", MaxLimit)

// Continents lists the continent filter options in display order.
var Continents = []string{"All", "Asia", "Europe", "North America", "South America", "Africa", "Oceania"}

// Destination is one curated entry.
type Destination struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Country         string   `json:"country"`
	Description     string   `json:"description"`
	ImageURL        string   `json:"imageUrl"`
	AverageCost     float64  `json:"averageCost"`
	BestTimeToVisit string   `json:"bestTimeToVisit"`
	PopularFor      []string `json:"popularFor"`
	Rating          float64  `json:"rating"`
	Continent       string   `json:"continent"`
	Flag            string   `json:"flag"`
	Highlights      []string `json:"highlights"`
}

// Weather is the mock current weather attached to a listing.
type Weather struct {
	Condition string `json:"condition"`
	Temp      int    `json:"temp"`
	Icon      string `json:"icon"`
}

// Listing is a destination enriched for one response.
type Listing struct {
	Destination
	CurrentWeather Weather   `json:"currentWeather"`
	TrendingScore  int       `json:"trendingScore"`
	LastUpdated    time.Time `json:"lastUpdated"`
}

// Result is the catalog listing payload.
type Result struct {
	Destinations []Listing `json:"destinations"`
	Total        int       `json:"total"`
	Continents   []string  `json:"continents"`
}

// Query filters the catalog.
type Query struct {
	// Continent matches case-insensitively; empty or "all" returns every continent.
	Continent string

	// Limit caps the result; zero means DefaultLimit.
	Limit int
}

// Random supplies values in [0, 1).
type Random interface {
	Float64() float64
}

type globalRandom struct{}

func (globalRandom) Float64() float64 { return rand.Float64() }

// Config holds dependencies for the Catalog.
type Config struct {
	// Destinations defaults to the built-in curated list.
	Destinations []Destination

	Random Random
	Clock  func() time.Time
}

// Catalog lists curated destinations.
type Catalog struct {
	destinations []Destination
	random       Random
	now          func() time.Time
}

// NewCatalog creates a catalog.
func NewCatalog(cfg Config) *Catalog {
	if cfg.Destinations == nil {
		cfg.Destinations = curated
	}
	if cfg.Random == nil {
		cfg.Random = globalRandom{}
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	return &Catalog{
		destinations: cfg.Destinations,
		random:       cfg.Random,
		now:          cfg.Clock,
	}
}

// List filters by continent, orders by rating (highest first) and truncates
// to the limit. Each listing gets weather chosen from the destination name and
// a fresh trending score in [50, 149].
func (c *Catalog) List(q Query) (*Result, error) {
	limit := q.Limit
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit < 1 || limit > MaxLimit {
		return nil, ErrInvalidLimit
	}

	continent := strings.TrimSpace(q.Continent)
	matched := make([]Destination, 0, len(c.destinations))
	for _, d := range c.destinations {
		if continent == "" || strings.EqualFold(continent, ContinentAll) || strings.EqualFold(d.Continent, continent) {
			matched = append(matched, d)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool { return matched[i].Rating > matched[j].Rating })
	if len(matched) > limit {
		matched = matched[:limit]
	}

	now := c.now().UTC()
	listings := make([]Listing, 0, len(matched))
	for _, d := range matched {
		listings = append(listings, Listing{
			Destination:    d,
			CurrentWeather: WeatherFor(d.Name),
			TrendingScore:  trendingMin + int(math.Floor(c.random.Float64()*trendingSpan)),
			LastUpdated:    now,
		})
	}

	return &Result{
		Destinations: listings,
		Total:        len(listings),
		Continents:   Continents,
	}, nil
}

var weatherOptions = []Weather{
	{Condition: "Sunny", Temp: 25, Icon: "☀️"},
	{Condition: "Partly Cloudy", Temp: 22, Icon: "⛅"},
	{Condition: "Cloudy", Temp: 18, Icon: "☁️"},
	{Condition: "Rainy", Temp: 15, Icon: "🌧️"},
}

// WeatherFor returns the mock weather for a destination name. The choice
// depends only on the name's length in UTF-16 code units.
func WeatherFor(name string) Weather {
	return weatherOptions[len(utf16.Encode([]rune(name)))%len(weatherOptions)]
}

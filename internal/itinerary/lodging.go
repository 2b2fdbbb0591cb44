package itinerary

import "strings"

// HotelTemplate is the fixed part of a lodging suggestion. Price and rating
// are drawn per day by the Assembler.
type HotelTemplate struct {
	Name      string
	Address   string
	PriceMin  int
	PriceMax  int
	Amenities []string
}

// LodgingCatalog resolves a destination to one hotel template per tier.
type LodgingCatalog interface {
	Lookup(destination string) map[HotelTier]HotelTemplate
}

type tierProfile struct {
	priceMin  int
	priceMax  int
	amenities []string
}

var tierProfiles = map[HotelTier]tierProfile{
	HotelTierLuxury: {priceMin: 200, priceMax: 400, amenities: []string{"Spa", "Fine Dining", "City Views", "Concierge"}},
	HotelTierMid:    {priceMin: 80, priceMax: 150, amenities: []string{"WiFi", "Fitness Center", "Restaurant", "Room Service"}},
	HotelTierBudget: {priceMin: 30, priceMax: 70, amenities: []string{"WiFi", "Shared Bath", "Breakfast", "Clean Rooms"}},
}

type cityHotel struct {
	name    string
	address string
}

// DefaultLodgingCity is used when no catalog key matches a destination.
const DefaultLodgingCity = "tokyo"

// lodgingCities is checked in order; the first key contained in the
// destination wins.
var lodgingCities = []struct {
	key    string
	hotels map[HotelTier]cityHotel
}{
	{
		key: "tokyo",
		hotels: map[HotelTier]cityHotel{
			HotelTierLuxury: {"Park Hyatt Tokyo", "3-7-1-2 Nishi Shinjuku, Tokyo"},
			HotelTierMid:    {"Hotel Gracery Shinjuku", "1-19-1 Kabukicho, Shinjuku"},
			HotelTierBudget: {"Capsule Hotel Anshin Oyado", "2-1-1 Kabukicho, Shinjuku"},
		},
	},
	{
		key: "paris",
		hotels: map[HotelTier]cityHotel{
			HotelTierLuxury: {"The Ritz Paris", "15 Place Vendôme, 75001 Paris"},
			HotelTierMid:    {"Hotel Malte Opera", "63 Rue de Richelieu, 75002 Paris"},
			HotelTierBudget: {"Hotel Jeanne d'Arc", "3 Rue de Jarente, 75004 Paris"},
		},
	},
	{
		key: "bali",
		hotels: map[HotelTier]cityHotel{
			HotelTierLuxury: {"The Mulia Resort", "Jl. Raya Nusa Dua Selatan, Bali"},
			HotelTierMid:    {"Puri Saron Hotel", "Jl. Danau Tamblingan, Sanur"},
			HotelTierBudget: {"Puri Garden Hotel", "Jl. Raya Ubud, Ubud"},
		},
	},
}

// StaticLodgingCatalog serves the built-in demo hotels for Tokyo, Paris and
// Bali. Any other destination gets the Tokyo set.
type StaticLodgingCatalog struct{}

// NewStaticLodgingCatalog creates the built-in catalog.
func NewStaticLodgingCatalog() *StaticLodgingCatalog {
	return &StaticLodgingCatalog{}
}

// CityKey returns the catalog key used for destination.
func (c *StaticLodgingCatalog) CityKey(destination string) string {
	lower := strings.ToLower(destination)
	for _, city := range lodgingCities {
		if strings.Contains(lower, city.key) {
			return city.key
		}
	}
	return DefaultLodgingCity
}

// Lookup implements LodgingCatalog.
func (c *StaticLodgingCatalog) Lookup(destination string) map[HotelTier]HotelTemplate {
	key := c.CityKey(destination)

	var hotels map[HotelTier]cityHotel
	for _, city := range lodgingCities {
		if city.key == key {
			hotels = city.hotels
			break
		}
	}

	templates := make(map[HotelTier]HotelTemplate, len(HotelTiers))
	for _, tier := range HotelTiers {
		profile := tierProfiles[tier]
		hotel := hotels[tier]
		templates[tier] = HotelTemplate{
			Name:      hotel.name,
			Address:   hotel.address,
			PriceMin:  profile.priceMin,
			PriceMax:  profile.priceMax,
			Amenities: append([]string(nil), profile.amenities...),
		}
	}
	return templates
}

var _ LodgingCatalog = (*StaticLodgingCatalog)(nil)

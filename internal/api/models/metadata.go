package models

// Enums lists the values accepted or produced by the API.
type Enums struct {
	TripStyles  []string `json:"tripStyles"`
	TravelModes []string `json:"travelModes"`
	Categories  []string `json:"categories"`
	HotelTiers  []string `json:"hotelTiers"`
	Continents  []string `json:"continents"`
}

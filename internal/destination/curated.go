package destination

var curated = []Destination{
	{
		ID:              "tokyo-japan",
		Name:            "Tokyo",
		Country:         "Japan",
		Description:     "A vibrant metropolis blending ultra-modern technology with ancient traditions",
		ImageURL:        "https://images.unsplash.com/photo-1540959733332-eab4deabeeaf?w=800&q=80",
		AverageCost:     150,
		BestTimeToVisit: "March-May, September-November",
		PopularFor:      []string{"Culture", "Food", "Technology", "History"},
		Rating:          4.8,
		Continent:       "Asia",
		Flag:            "🇯🇵",
		Highlights: []string{
			"Cherry blossom season",
			"World-class cuisine",
			"Ancient temples and modern skyscrapers",
			"Unique cultural experiences",
		},
	},
	{
		ID:              "paris-france",
		Name:            "Paris",
		Country:         "France",
		Description:     "The City of Light, renowned for its art, fashion, gastronomy and culture",
		ImageURL:        "https://images.unsplash.com/photo-1502602898536-47ad22581b52?w=800&q=80",
		AverageCost:     120,
		BestTimeToVisit: "April-June, September-October",
		PopularFor:      []string{"Art", "Romance", "Fashion", "History"},
		Rating:          4.7,
		Continent:       "Europe",
		Flag:            "🇫🇷",
		Highlights: []string{
			"Eiffel Tower and iconic landmarks",
			"World-class museums like the Louvre",
			"Charming neighborhoods and cafés",
			"Fashion and shopping paradise",
		},
	},
	{
		ID:              "bali-indonesia",
		Name:            "Bali",
		Country:         "Indonesia",
		Description:     "Tropical paradise known for its beaches, temples, and spiritual retreats",
		ImageURL:        "https://images.unsplash.com/photo-1537953773345-d172ccf13cf1?w=800&q=80",
		AverageCost:     80,
		BestTimeToVisit: "April-October",
		PopularFor:      []string{"Beaches", "Spirituality", "Nature", "Adventure"},
		Rating:          4.6,
		Continent:       "Asia",
		Flag:            "🇮🇩",
		Highlights: []string{
			"Stunning beaches and surf spots",
			"Ancient Hindu temples",
			"Lush rice terraces and volcanoes",
			"Yoga and wellness retreats",
		},
	},
	{
		ID:              "new-york-usa",
		Name:            "New York City",
		Country:         "United States",
		Description:     "The city that never sleeps, a global hub of culture, finance, and entertainment",
		ImageURL:        "https://images.unsplash.com/photo-1496442226666-8d4d0e62e6e9?w=800&q=80",
		AverageCost:     180,
		BestTimeToVisit: "April-June, September-November",
		PopularFor:      []string{"Entertainment", "Shopping", "Art", "Food"},
		Rating:          4.5,
		Continent:       "North America",
		Flag:            "🇺🇸",
		Highlights: []string{
			"Iconic skyline and Central Park",
			"Broadway shows and world-class museums",
			"Diverse neighborhoods and cuisine",
			"Shopping and nightlife",
		},
	},
	{
		ID:              "london-uk",
		Name:            "London",
		Country:         "United Kingdom",
		Description:     "Historic capital city rich in royal heritage, museums, and cultural landmarks",
		ImageURL:        "https://images.unsplash.com/photo-1513635269975-59663e0ac1ad?w=800&q=80",
		AverageCost:     140,
		BestTimeToVisit: "May-September",
		PopularFor:      []string{"History", "Culture", "Royal Heritage", "Theatre"},
		Rating:          4.4,
		Continent:       "Europe",
		Flag:            "🇬🇧",
		Highlights: []string{
			"Buckingham Palace and royal attractions",
			"World-class museums and galleries",
			"Historic landmarks like Big Ben",
			"Vibrant theatre and pub culture",
		},
	},
	{
		ID:              "rome-italy",
		Name:            "Rome",
		Country:         "Italy",
		Description:     "The Eternal City, where ancient history meets Renaissance art and modern life",
		ImageURL:        "https://images.unsplash.com/photo-1552832230-c0197dd311b5?w=800&q=80",
		AverageCost:     110,
		BestTimeToVisit: "April-June, September-October",
		PopularFor:      []string{"History", "Art", "Food", "Architecture"},
		Rating:          4.6,
		Continent:       "Europe",
		Flag:            "🇮🇹",
		Highlights: []string{
			"Colosseum and ancient Roman ruins",
			"Vatican City and Sistine Chapel",
			"Incredible Italian cuisine",
			"Beautiful fountains and piazzas",
		},
	},
	{
		ID:              "barcelona-spain",
		Name:            "Barcelona",
		Country:         "Spain",
		Description:     "Vibrant coastal city famous for Gaudí architecture, beaches, and nightlife",
		ImageURL:        "https://images.unsplash.com/photo-1539037116277-4db20889f2d4?w=800&q=80",
		AverageCost:     100,
		BestTimeToVisit: "May-September",
		PopularFor:      []string{"Architecture", "Beaches", "Art", "Nightlife"},
		Rating:          4.5,
		Continent:       "Europe",
		Flag:            "🇪🇸",
		Highlights: []string{
			"Sagrada Familia and Gaudí masterpieces",
			"Beautiful Mediterranean beaches",
			"Vibrant food and nightlife scene",
			"Gothic Quarter and Park Güell",
		},
	},
	{
		ID:              "amsterdam-netherlands",
		Name:            "Amsterdam",
		Country:         "Netherlands",
		Description:     "Charming canal city known for its historic architecture, art museums, and bike culture",
		ImageURL:        "https://images.unsplash.com/photo-1534351590666-13e3e96b5017?w=800&q=80",
		AverageCost:     130,
		BestTimeToVisit: "April-September",
		PopularFor:      []string{"Canals", "Art", "History", "Cycling"},
		Rating:          4.4,
		Continent:       "Europe",
		Flag:            "🇳🇱",
		Highlights: []string{
			"Picturesque canals and houseboats",
			"Van Gogh Museum and Rijksmuseum",
			"Bike-friendly city culture",
			"Vibrant tulip season",
		},
	},
}

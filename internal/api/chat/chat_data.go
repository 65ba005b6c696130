package chat

// Intent labels recognised by the rule engine.
const (
	intentBestPlaces = "best_places"
	intentFood       = "food"
	intentItinerary  = "itinerary"
	intentBestTime   = "best_time"
)

// defaultCity keys the fallback reply set used when no known city matches.
const defaultCity = "default"

// cannedReplies is the immutable reply dataset, keyed by city then intent.
// Day-specific itineraries live under canonical "itinerary_<d>days" keys.
var cannedReplies = map[string]map[string]string{
	"jaipur": {
		intentBestPlaces:   "Top Jaipur: Amer Fort (sunset view), City Palace, Hawa Mahal, Jantar Mantar, Jal Mahal. Best time: Oct–Mar. Tip: Start early to beat heat and take a guided tour at Amer Fort.",
		intentFood:         "Jaipur food must-tries: Dal Baati Churma, Laal Maas, Ghevar (sweet), kachori. Try the old-city street stalls and traditional Rajasthani thalis.",
		"itinerary_2days":  "2-day Jaipur: Day 1 — City Palace, Jantar Mantar, Hawa Mahal, local markets. Day 2 — Amer Fort (morning), Jaigarh/Fort view, lunch, Jaipur bazaars.",
	},
	"goa": {
		intentBestPlaces:   "Top Goa: Baga & Calangute (lively beaches), Anjuna (market), Old Goa (churches), Palolem (quiet southern beach). Best time: Nov–Feb. Tip: Rent a scooter to explore hidden bays.",
		intentFood:         "Goa food: Goan fish curry, vindaloo, bebinca (dessert). Visit beach shacks for fresh seafood and local toddy shops for authenticity.",
		"itinerary_3days":  "3-day Goa: Day 1 — North beaches & nightlife. Day 2 — Old Goa + Panaji + Dona Paula. Day 3 — South Goa beaches and relaxation.",
	},
	defaultCity: {
		intentBestPlaces: "Tell me the city (e.g. Jaipur, Goa, Manali) and I’ll suggest top places. General tip: pick 2–3 highlights per day to avoid rushing.",
		intentFood:       "Tell me the city and I'll share local food recommendations. General tip: try regional specialties, visit local markets for authentic eats.",
		intentBestTime:   "Best time depends on the destination — coastal areas are great Nov–Feb, mountains Apr–Jun and Sep–Nov. Tell me the city for specifics.",
		intentItinerary:  "Mention how many days and the city (eg. '2 days in Jaipur') and I will suggest a short itinerary.",
	},
}

// intentKeywords maps each intent to the phrases that trigger it. Scan order
// is fixed so overlapping phrases resolve deterministically.
var intentOrder = []string{intentBestPlaces, intentFood, intentItinerary, intentBestTime}

var intentKeywords = map[string][]string{
	intentBestPlaces: {"best places", "top places", "what to see", "places to visit", "best of", "highlights"},
	intentFood:       {"food", "eat", "where to eat", "local cuisine", "restaurants"},
	intentItinerary:  {"itinerary", "plan", "days", "trip", "schedule"},
	intentBestTime:   {"best time", "when to visit", "when is best"},
}

// knownCities lists the city keys of the dataset, in stable order for the
// matchers.
var knownCities = []string{"jaipur", "goa"}

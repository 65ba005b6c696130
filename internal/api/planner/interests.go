package planner

// interestTagMap translates each supported interest label into the
// OpenStreetMap key=value pairs used to query Overpass. Unknown labels are
// silently skipped so that a stale front-end list never fails a request.
var interestTagMap = map[string][]string{
	"Nature & Peaceful":  {"tourism=nature_reserve", "leisure=park", "natural=peak", "natural=water"},
	"Adventure / Hiking": {"highway=path", "route=hiking", "sport=hiking"},
	"Famous Attractions": {"tourism=attraction", "historic=yes", "historic=monument"},
	"Culture & Heritage": {"tourism=museum", "amenity=theatre", "historic=castle"},
	"Beaches":            {"natural=beach", "leisure=beach_resort"},
	"Food & Markets":     {"amenity=restaurant", "amenity=cafe", "amenity=marketplace"},
	"Wildlife":           {"tourism=wildlife_hide", "natural=wood"},
	"Religious":          {"tourism=place_of_worship", "amenity=place_of_worship", "historic=church"},
	"Shopping":           {"shop=yes", "shop=clothes", "shop=marketplace"},
}

// defaultTags is the fallback query set used when the caller supplied no
// recognised interests at all.
var defaultTags = []string{"tourism=attraction", "amenity=restaurant", "leisure=park"}

// ResolveInterestTags maps the requested interest labels onto OSM tag
// filters, preserving request order. Returns defaultTags when nothing maps.
func ResolveInterestTags(interests []string) []string {
	var tags []string
	for _, interest := range interests {
		if mapped, ok := interestTagMap[interest]; ok {
			tags = append(tags, mapped...)
		}
	}
	if len(tags) == 0 {
		return defaultTags
	}
	return tags
}

package planner

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/travelwiz/travelwiz/internal/types"
)

// DefaultPickLimit bounds the candidate set when the caller passes no
// explicit limit.
const DefaultPickLimit = 12

// scorePlace assigns the completeness score. Named places gain 3, an address
// gains 1, and a tourism, amenity or shop tag gains 1, so scores range 0-5.
func scorePlace(p *types.Place) {
	s := 0
	if p.Name != "" && !strings.Contains(strings.ToLower(p.Name), "unnamed") {
		s += 3
	}
	if p.Address != "" {
		s += 1
	}
	if p.Tags["tourism"] != "" || p.Tags["amenity"] != "" || p.Tags["shop"] != "" {
		s += 1
	}
	p.Score = s
}

// dedupeKey identifies near-identical places: same lowercased name at the
// same coordinates rounded to four decimal places (roughly 11 metres).
func dedupeKey(p types.Place) string {
	var lat, lon float64
	if p.Lat != nil {
		lat = *p.Lat
	}
	if p.Lon != nil {
		lon = *p.Lon
	}
	return fmt.Sprintf("%s|%d|%d",
		strings.ToLower(p.Name),
		int64(math.Round(lat*10000)),
		int64(math.Round(lon*10000)))
}

// ScoreAndPick normalizes raw elements, ranks them by completeness and
// returns at most limit distinct places, best first. Ranking is stable, so
// among equally scored duplicates the earliest fetched element survives.
func ScoreAndPick(elements []OverpassElement, limit int) []types.Place {
	if len(elements) == 0 {
		return []types.Place{}
	}
	if limit <= 0 {
		limit = DefaultPickLimit
	}

	places := make([]types.Place, 0, len(elements))
	for _, el := range elements {
		p := NormalizeElement(el)
		scorePlace(&p)
		places = append(places, p)
	}

	sort.SliceStable(places, func(i, j int) bool {
		return places[i].Score > places[j].Score
	})

	seen := make(map[string]struct{}, len(places))
	out := make([]types.Place, 0, limit)
	for _, p := range places {
		key := dedupeKey(p)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, p)
		if len(out) >= limit {
			break
		}
	}
	return out
}

package planner

import (
	"fmt"
	"strings"

	"github.com/travelwiz/travelwiz/internal/types"
)

// unnamedPlace is the placeholder name for elements carrying neither a name
// nor a street tag. Such places score lower and lose dedupe ties.
const unnamedPlace = "Unnamed place"

// NormalizeElement converts a raw OSM element into a Place. Name falls back
// to the street tag, then to the placeholder. Category takes the first
// present tag among tourism, amenity, shop, natural and leisure.
func NormalizeElement(el OverpassElement) types.Place {
	tags := el.Tags
	if tags == nil {
		tags = map[string]string{}
	}

	name := tags["name"]
	if name == "" {
		name = tags["addr:street"]
	}
	if name == "" {
		name = unnamedPlace
	}

	lat, lon := el.Lat, el.Lon
	if lat == nil && el.Center != nil {
		lat = &el.Center.Lat
	}
	if lon == nil && el.Center != nil {
		lon = &el.Center.Lon
	}

	category := "place"
	for _, key := range []string{"tourism", "amenity", "shop", "natural", "leisure"} {
		if v := tags[key]; v != "" {
			category = v
			break
		}
	}

	var addressParts []string
	for _, key := range []string{"addr:housenumber", "addr:street", "addr:city", "addr:postcode", "addr:country"} {
		if v := tags[key]; v != "" {
			addressParts = append(addressParts, v)
		}
	}

	return types.Place{
		ID:       fmt.Sprintf("%s/%d", el.Type, el.ID),
		OSMType:  el.Type,
		OSMID:    el.ID,
		Name:     name,
		Lat:      lat,
		Lon:      lon,
		Address:  strings.Join(addressParts, ", "),
		Category: category,
		Tags:     tags,
	}
}

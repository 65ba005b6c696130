package types

// GeoPoint is a resolved latitude/longitude pair plus the canonical display
// name returned by the geocoder.
type GeoPoint struct {
	Latitude    float64 `json:"lat"`
	Longitude   float64 `json:"lon"`
	DisplayName string  `json:"display_name"`
}

// Place is a normalized POI candidate, produced and consumed within one
// generation request. Coordinates are pointers because some raw elements
// carry none; such places are still produced but excluded from map rendering
// downstream.
type Place struct {
	ID       string            `json:"id"` // "<osm type>/<osm id>"
	OSMType  string            `json:"osm_type"`
	OSMID    int64             `json:"osm_id"`
	Name     string            `json:"name"`
	Lat      *float64          `json:"lat,omitempty"`
	Lon      *float64          `json:"lon,omitempty"`
	Address  string            `json:"address"`
	Category string            `json:"type"`
	Tags     map[string]string `json:"tags,omitempty"` // full original tag set, kept for description lookup

	// Score ranks the place within one request; never persisted.
	Score int `json:"-"`
}

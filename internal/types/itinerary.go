package types

import (
	"time"

	"github.com/google/uuid"
)

// ScheduledVisit is one stop within a day bucket, carrying a synthetic
// start time and a fixed duration. A presentation heuristic, not a real
// scheduling optimization.
type ScheduledVisit struct {
	PlaceID       string   `json:"place_id"`
	Name          string   `json:"name"`
	Lat           *float64 `json:"lat,omitempty"`
	Lon           *float64 `json:"lon,omitempty"`
	Address       string   `json:"address"`
	EstimatedTime string   `json:"estimated_time"` // "HH:00"
	DurationMins  int      `json:"duration_mins"`
	Category      string   `json:"type"`
	Description   string   `json:"description"`
	OSMType       string   `json:"osm_type"`
	OSMID         int64    `json:"osm_id"`
}

// DayBucket holds the visits assigned to one calendar day of the trip.
type DayBucket struct {
	Day    int              `json:"day"` // 1-based
	Title  string           `json:"title"`
	Places []ScheduledVisit `json:"places"`
}

// DayPlan is the generated plan structure persisted as an opaque nested
// document on the itinerary.
type DayPlan struct {
	Days []DayBucket `json:"days"`
}

// Itinerary is the persistent document, owned by exactly one user. Never
// mutated after creation; deleted explicitly by its owner.
type Itinerary struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	Title         string    `json:"title"`
	Destination   string    `json:"destination"`
	Days          int       `json:"days"`
	Adults        int       `json:"adults"`
	Children      int       `json:"children"`
	Budget        *float64  `json:"budget,omitempty"`
	TravelType    string    `json:"travel_type,omitempty"`
	Accommodation string    `json:"accommodation,omitempty"`
	Interests     []string  `json:"interests"`
	Notes         string    `json:"notes,omitempty"`
	Plan          DayPlan   `json:"data"`
	Thumbnail     string    `json:"thumbnail,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// GenerateItineraryRequest is the payload of POST /generate.
type GenerateItineraryRequest struct {
	Destination string   `json:"destination" validate:"required"`
	Days        int      `json:"days" validate:"omitempty,max=30"`
	Interests   []string `json:"interests,omitempty"`
	Adults      int      `json:"adults,omitempty" validate:"omitempty,gte=0"`
	Children    int      `json:"children,omitempty" validate:"omitempty,gte=0"`
	Budget      *float64 `json:"budget,omitempty" validate:"omitempty,gte=0"`
	Notes       string   `json:"notes,omitempty" validate:"omitempty,max=2000"`
	Title       string   `json:"title,omitempty" validate:"omitempty,max=200"`
}

// CreateItineraryRequest is the payload for manually created itineraries.
type CreateItineraryRequest struct {
	Title         string   `json:"title,omitempty" validate:"omitempty,max=200"`
	Destination   string   `json:"destination" validate:"required"`
	Days          int      `json:"days" validate:"omitempty,gte=1,max=30"`
	Adults        int      `json:"adults,omitempty" validate:"omitempty,gte=0"`
	Children      int      `json:"children,omitempty" validate:"omitempty,gte=0"`
	Budget        *float64 `json:"budget,omitempty" validate:"omitempty,gte=0"`
	TravelType    string   `json:"travel_type,omitempty"`
	Accommodation string   `json:"accommodation,omitempty"`
	Interests     []string `json:"interests,omitempty"`
	Notes         string   `json:"notes,omitempty" validate:"omitempty,max=2000"`
	Plan          *DayPlan `json:"data,omitempty"`
	Thumbnail     string   `json:"thumbnail,omitempty" validate:"omitempty,url"`
}

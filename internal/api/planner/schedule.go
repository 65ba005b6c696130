package planner

import (
	"fmt"

	"github.com/travelwiz/travelwiz/internal/types"
)

const (
	firstVisitHour   = 9
	visitSpacingHrs  = 3
	visitDurationMin = 90
)

// SchedulePlaces distributes the ranked places over the requested number of
// days in contiguous slices. Every day bucket is emitted even when it ends
// up empty, so a plan always carries exactly days entries. Visits start at
// 09:00 and are spaced three hours apart within a day.
func SchedulePlaces(places []types.Place, days int) []types.DayBucket {
	if days <= 0 {
		days = 3
	}

	perDay := (len(places) + days - 1) / days
	if perDay < 1 {
		perDay = 1
	}

	buckets := make([]types.DayBucket, 0, days)
	for d := 0; d < days; d++ {
		start := d * perDay
		end := start + perDay
		if start > len(places) {
			start = len(places)
		}
		if end > len(places) {
			end = len(places)
		}

		slice := places[start:end]
		visits := make([]types.ScheduledVisit, 0, len(slice))
		for idx, p := range slice {
			visits = append(visits, types.ScheduledVisit{
				PlaceID:       p.ID,
				Name:          p.Name,
				Lat:           p.Lat,
				Lon:           p.Lon,
				Address:       p.Address,
				EstimatedTime: fmt.Sprintf("%02d:00", firstVisitHour+idx*visitSpacingHrs),
				DurationMins:  visitDurationMin,
				Category:      p.Category,
				Description:   visitDescription(p),
				OSMType:       p.OSMType,
				OSMID:         p.OSMID,
			})
		}

		buckets = append(buckets, types.DayBucket{
			Day:    d + 1,
			Title:  fmt.Sprintf("Day %d", d+1),
			Places: visits,
		})
	}
	return buckets
}

// visitDescription prefers the element's own description tags, falling back
// to a generic line built from the place name.
func visitDescription(p types.Place) string {
	if desc := p.Tags["description"]; desc != "" {
		return desc
	}
	if desc := p.Tags["description:en"]; desc != "" {
		return desc
	}
	return fmt.Sprintf("%s — a recommended stop.", p.Name)
}

package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/travelwiz/travelwiz/config"
	"github.com/travelwiz/travelwiz/internal/types"
)

// PoiFetcher retrieves raw OSM elements around a point for a tag set.
type PoiFetcher interface {
	FetchElements(ctx context.Context, tags []string, lat, lon float64) ([]OverpassElement, error)
}

// OverpassCenter holds the computed centre of a way or relation element.
type OverpassCenter struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// OverpassElement is a raw POI element as returned by the Overpass API.
// Nodes carry Lat/Lon directly; ways and relations carry a Center instead.
type OverpassElement struct {
	Type   string            `json:"type"`
	ID     int64             `json:"id"`
	Lat    *float64          `json:"lat,omitempty"`
	Lon    *float64          `json:"lon,omitempty"`
	Center *OverpassCenter   `json:"center,omitempty"`
	Tags   map[string]string `json:"tags,omitempty"`
}

type overpassResponse struct {
	Elements []OverpassElement `json:"elements"`
}

// OverpassClient queries an Overpass-compatible endpoint with generated
// OverpassQL.
type OverpassClient struct {
	logger    *slog.Logger
	client    *http.Client
	baseURL   string
	userAgent string
	radius    int
	limit     int
}

func NewOverpassClient(cfg config.OverpassConfig, logger *slog.Logger) *OverpassClient {
	return &OverpassClient{
		logger:    logger,
		client:    &http.Client{Timeout: cfg.Timeout},
		baseURL:   cfg.BaseURL,
		userAgent: cfg.UserAgent,
		radius:    cfg.RadiusMeters,
		limit:     cfg.ElementCap,
	}
}

// BuildOverpassQuery renders an OverpassQL union over node, way and relation
// for every key=value tag filter, bounded by radius around the point.
// Malformed tag filters without a "=" are skipped.
func BuildOverpassQuery(tags []string, lat, lon float64, radius, limit int) string {
	var blocks strings.Builder
	for _, tag := range tags {
		key, value, ok := strings.Cut(tag, "=")
		if !ok {
			continue
		}
		for _, element := range []string{"node", "way", "relation"} {
			fmt.Fprintf(&blocks, "%s(around:%d,%f,%f)[%s=%s];", element, radius, lat, lon, key, value)
		}
	}
	return fmt.Sprintf("[out:json][timeout:25];\n(\n  %s\n);\nout center %d;", blocks.String(), limit)
}

func (c *OverpassClient) FetchElements(ctx context.Context, tags []string, lat, lon float64) ([]OverpassElement, error) {
	query := BuildOverpassQuery(tags, lat, lon, c.radius, c.limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(query))
	if err != nil {
		return nil, fmt.Errorf("%w: building overpass request: %v", types.ErrPoiFetch, err)
	}
	req.Header.Set("Content-Type", "text/plain")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrPoiFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: overpass returned status %d", types.ErrPoiFetch, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: reading overpass response: %v", types.ErrPoiFetch, err)
	}

	var parsed overpassResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: decoding overpass response: %v", types.ErrPoiFetch, err)
	}

	c.logger.DebugContext(ctx, "Fetched POI elements",
		slog.Int("count", len(parsed.Elements)),
		slog.Int("tags", len(tags)))

	return parsed.Elements, nil
}

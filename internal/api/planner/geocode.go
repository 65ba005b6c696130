package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"github.com/travelwiz/travelwiz/config"
	"github.com/travelwiz/travelwiz/internal/types"
)

// Geocoder resolves a free-text destination into coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, destination string) (*types.GeoPoint, error)
}

// nominatimResult is the subset of the Nominatim search response we consume.
// Nominatim returns coordinates as strings.
type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// NominatimGeocoder resolves destinations against the Nominatim search API.
// Results are cached per normalized query and concurrent lookups for the
// same destination are collapsed into a single upstream call.
type NominatimGeocoder struct {
	logger    *slog.Logger
	client    *http.Client
	baseURL   string
	userAgent string
	cache     *gocache.Cache
	group     singleflight.Group
}

func NewNominatimGeocoder(cfg config.GeocoderConfig, logger *slog.Logger) *NominatimGeocoder {
	return &NominatimGeocoder{
		logger:    logger,
		client:    &http.Client{Timeout: 15 * time.Second},
		baseURL:   cfg.BaseURL,
		userAgent: cfg.UserAgent,
		cache:     gocache.New(cfg.CacheTTL, 2*cfg.CacheTTL),
	}
}

func (g *NominatimGeocoder) Geocode(ctx context.Context, destination string) (*types.GeoPoint, error) {
	key := strings.ToLower(strings.TrimSpace(destination))
	if key == "" {
		return nil, fmt.Errorf("%w: empty destination", types.ErrValidation)
	}

	if cached, found := g.cache.Get(key); found {
		point := cached.(types.GeoPoint)
		return &point, nil
	}

	result, err, _ := g.group.Do(key, func() (interface{}, error) {
		point, err := g.lookup(ctx, destination)
		if err != nil {
			return nil, err
		}
		g.cache.SetDefault(key, *point)
		return *point, nil
	})
	if err != nil {
		return nil, err
	}

	point := result.(types.GeoPoint)
	return &point, nil
}

func (g *NominatimGeocoder) lookup(ctx context.Context, destination string) (*types.GeoPoint, error) {
	params := url.Values{}
	params.Set("q", destination)
	params.Set("format", "json")
	params.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building geocode request: %v", types.ErrGeocode, err)
	}
	req.Header.Set("User-Agent", g.userAgent)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrGeocode, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: geocoder returned status %d", types.ErrGeocode, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: reading geocode response: %v", types.ErrGeocode, err)
	}

	var results []nominatimResult
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("%w: decoding geocode response: %v", types.ErrGeocode, err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("%w: cannot find destination %q", types.ErrGeocode, destination)
	}

	first := results[0]
	lat, err := strconv.ParseFloat(first.Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid latitude %q", types.ErrGeocode, first.Lat)
	}
	lon, err := strconv.ParseFloat(first.Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid longitude %q", types.ErrGeocode, first.Lon)
	}

	g.logger.DebugContext(ctx, "Resolved destination",
		slog.String("destination", destination),
		slog.Float64("lat", lat),
		slog.Float64("lon", lon))

	return &types.GeoPoint{Latitude: lat, Longitude: lon, DisplayName: first.DisplayName}, nil
}

package planner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/google/uuid"

	"github.com/travelwiz/travelwiz/app/observability/metrics"
	"github.com/travelwiz/travelwiz/internal/api/itinerary"
	"github.com/travelwiz/travelwiz/internal/types"
)

// Service runs the full generation pipeline and persists the result.
type Service interface {
	Generate(ctx context.Context, userID uuid.UUID, req types.GenerateItineraryRequest) (*types.Itinerary, error)
}

// ServiceImpl wires the geocoder, the POI fetcher and the itinerary store
// into one pipeline. All three collaborators are injected so tests can run
// the pipeline without network or database.
type ServiceImpl struct {
	logger   *slog.Logger
	geocoder Geocoder
	fetcher  PoiFetcher
	store    itinerary.Repository
}

func NewService(geocoder Geocoder, fetcher PoiFetcher, store itinerary.Repository, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:   logger,
		geocoder: geocoder,
		fetcher:  fetcher,
		store:    store,
	}
}

// Generate resolves the destination, gathers and ranks POI candidates,
// schedules them across the trip days and persists the resulting itinerary
// under the requesting user. Input validation happens before any external
// call so a bad request never consumes upstream quota.
func (s *ServiceImpl) Generate(ctx context.Context, userID uuid.UUID, req types.GenerateItineraryRequest) (*types.Itinerary, error) {
	tracer := otel.Tracer("PlannerService")
	ctx, span := tracer.Start(ctx, "Generate")
	defer span.End()

	start := time.Now()
	l := s.logger.With(slog.String("method", "Generate"), slog.String("userID", userID.String()))

	destination := strings.TrimSpace(req.Destination)
	if destination == "" {
		metrics.RecordGeneration(ctx, time.Since(start), "invalid")
		return nil, fmt.Errorf("%w: destination is required", types.ErrValidation)
	}

	days := req.Days
	if days <= 0 {
		days = 3
	}
	adults := req.Adults
	if adults <= 0 {
		adults = 1
	}
	children := req.Children
	if children < 0 {
		children = 0
	}

	span.SetAttributes(
		attribute.String("generate.destination", destination),
		attribute.Int("generate.days", days),
	)

	loc, err := s.geocoder.Geocode(ctx, destination)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "geocode failed")
		if errors.Is(err, types.ErrGeocode) {
			metrics.Get().GeocodeErrorsTotal.Add(ctx, 1)
		}
		metrics.RecordGeneration(ctx, time.Since(start), "geocode_error")
		l.WarnContext(ctx, "Geocode failed", slog.String("destination", destination), slog.Any("error", err))
		return nil, err
	}

	tags := ResolveInterestTags(req.Interests)

	elements, err := s.fetcher.FetchElements(ctx, tags, loc.Latitude, loc.Longitude)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "poi fetch failed")
		metrics.Get().PoiFetchErrorsTotal.Add(ctx, 1)
		metrics.RecordGeneration(ctx, time.Since(start), "poi_fetch_error")
		l.ErrorContext(ctx, "POI fetch failed", slog.String("destination", destination), slog.Any("error", err))
		return nil, err
	}

	pickLimit := days * 3
	if pickLimit < 8 {
		pickLimit = 8
	}
	top := ScoreAndPick(elements, pickLimit)
	schedule := SchedulePlaces(top, days)

	title := strings.TrimSpace(req.Title)
	if title == "" {
		suffix := "day"
		if days > 1 {
			suffix = "days"
		}
		title = fmt.Sprintf("%s — %d %s", destination, days, suffix)
	}

	it := &types.Itinerary{
		UserID:      userID,
		Title:       title,
		Destination: destination,
		Days:        days,
		Adults:      adults,
		Children:    children,
		Budget:      req.Budget,
		Interests:   req.Interests,
		Notes:       req.Notes,
		Plan:        types.DayPlan{Days: schedule},
	}

	saved, err := s.store.CreateItinerary(ctx, it)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "persist failed")
		metrics.Get().DbQueryErrorsTotal.Add(ctx, 1)
		metrics.RecordGeneration(ctx, time.Since(start), "persist_error")
		l.ErrorContext(ctx, "Failed to persist generated itinerary", slog.Any("error", err))
		return nil, fmt.Errorf("%w: saving itinerary: %v", types.ErrPersistence, err)
	}

	metrics.RecordGeneration(ctx, time.Since(start), "ok")
	l.InfoContext(ctx, "Generated itinerary",
		slog.String("itineraryID", saved.ID.String()),
		slog.String("destination", destination),
		slog.Int("days", days),
		slog.Int("places", len(top)),
		slog.Duration("elapsed", time.Since(start)))

	return saved, nil
}

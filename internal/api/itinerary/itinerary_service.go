package itinerary

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/travelwiz/travelwiz/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Service defines the business logic contract for itinerary operations.
type Service interface {
	CreateItinerary(ctx context.Context, userID uuid.UUID, req types.CreateItineraryRequest) (*types.Itinerary, error)
	GetItineraries(ctx context.Context, userID uuid.UUID) ([]types.Itinerary, error)
	GetItinerary(ctx context.Context, userID, itineraryID uuid.UUID) (*types.Itinerary, error)
	DeleteItinerary(ctx context.Context, userID, itineraryID uuid.UUID) error
}

type ServiceImpl struct {
	logger *slog.Logger
	repo   Repository
}

func NewService(repo Repository, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger: logger,
		repo:   repo,
	}
}

// CreateItinerary stores a manually created itinerary for the owner.
func (s *ServiceImpl) CreateItinerary(ctx context.Context, userID uuid.UUID, req types.CreateItineraryRequest) (*types.Itinerary, error) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "CreateItinerary", trace.WithAttributes(
		attribute.String("user.id", userID.String()),
	))
	defer span.End()

	days := req.Days
	if days <= 0 {
		days = 3
	}
	adults := req.Adults
	if adults <= 0 {
		adults = 1
	}
	title := req.Title
	if title == "" {
		suffix := "days"
		if days == 1 {
			suffix = "day"
		}
		title = fmt.Sprintf("%s — %d %s", req.Destination, days, suffix)
	}

	it := &types.Itinerary{
		UserID:        userID,
		Title:         title,
		Destination:   req.Destination,
		Days:          days,
		Adults:        adults,
		Children:      req.Children,
		Budget:        req.Budget,
		TravelType:    req.TravelType,
		Accommodation: req.Accommodation,
		Interests:     req.Interests,
		Notes:         req.Notes,
		Thumbnail:     req.Thumbnail,
	}
	if req.Plan != nil {
		it.Plan = *req.Plan
	}

	stored, err := s.repo.CreateItinerary(ctx, it)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository failed to create itinerary", slog.Any("error", err))
		span.RecordError(err)
		return nil, err
	}

	span.SetStatus(codes.Ok, "Itinerary created")
	return stored, nil
}

func (s *ServiceImpl) GetItineraries(ctx context.Context, userID uuid.UUID) ([]types.Itinerary, error) {
	itineraries, err := s.repo.GetItinerariesByUser(ctx, userID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository failed to list itineraries", slog.Any("error", err))
		return nil, err
	}
	return itineraries, nil
}

func (s *ServiceImpl) GetItinerary(ctx context.Context, userID, itineraryID uuid.UUID) (*types.Itinerary, error) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "GetItinerary")
	defer span.End()

	it, err := s.repo.GetItinerary(ctx, userID, itineraryID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetStatus(codes.Ok, "Itinerary retrieved")
	return it, nil
}

func (s *ServiceImpl) DeleteItinerary(ctx context.Context, userID, itineraryID uuid.UUID) error {
	if err := s.repo.DeleteItinerary(ctx, userID, itineraryID); err != nil {
		s.logger.ErrorContext(ctx, "Repository failed to delete itinerary",
			slog.String("itineraryID", itineraryID.String()), slog.Any("error", err))
		return err
	}
	return nil
}

package itinerary

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/travelwiz/travelwiz/internal/api"
	"github.com/travelwiz/travelwiz/internal/api/auth"
	"github.com/travelwiz/travelwiz/internal/types"
)

type Handler struct {
	service  Service
	validate *validator.Validate
	logger   *slog.Logger
}

func NewHandler(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
}

// CreateItinerary handles POST /itineraries (manual creation).
func (h *Handler) CreateItinerary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "CreateItinerary"))

	userID, ok := ownerID(ctx)
	if !ok {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req types.CreateItineraryRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	it, err := h.service.CreateItinerary(ctx, userID, req)
	if err != nil {
		l.ErrorContext(ctx, "Failed to create itinerary", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to create itinerary")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusCreated, it)
}

// GetItineraries handles GET /itineraries.
func (h *Handler) GetItineraries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := ownerID(ctx)
	if !ok {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	itineraries, err := h.service.GetItineraries(ctx, userID)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to list itineraries", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to list itineraries")
		return
	}
	if itineraries == nil {
		itineraries = []types.Itinerary{}
	}

	api.WriteJSONResponse(w, r, http.StatusOK, itineraries)
}

// GetItinerary handles GET /itineraries/{itineraryID}.
func (h *Handler) GetItinerary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := ownerID(ctx)
	if !ok {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	itineraryID, err := uuid.Parse(chi.URLParam(r, "itineraryID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid itinerary ID format")
		return
	}

	it, err := h.service.GetItinerary(ctx, userID, itineraryID)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "Itinerary not found")
			return
		}
		h.logger.ErrorContext(ctx, "Failed to get itinerary", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to get itinerary")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, it)
}

// DeleteItinerary handles DELETE /itineraries/{itineraryID}.
func (h *Handler) DeleteItinerary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := ownerID(ctx)
	if !ok {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	itineraryID, err := uuid.Parse(chi.URLParam(r, "itineraryID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid itinerary ID format")
		return
	}

	if err := h.service.DeleteItinerary(ctx, userID, itineraryID); err != nil {
		if errors.Is(err, types.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "Itinerary not found")
			return
		}
		h.logger.ErrorContext(ctx, "Failed to delete itinerary", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to delete itinerary")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusNoContent, nil)
}

// ownerID pulls the authenticated identity from the request context.
func ownerID(ctx context.Context) (uuid.UUID, bool) {
	userIDStr, ok := auth.GetUserIDFromContext(ctx)
	if !ok || userIDStr == "" {
		return uuid.Nil, false
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, false
	}
	return userID, true
}

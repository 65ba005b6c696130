package planner

import (
	"errors"
	"log/slog"
	"net/http"

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

// Generate handles POST /generate.
// @Summary Generate a day-by-day itinerary for a destination
// @Accept json
// @Produce json
// @Router /generate [post]
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "Generate"))

	userIDStr, ok := auth.GetUserIDFromContext(ctx)
	if !ok {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Invalid user identity")
		return
	}

	var req types.GenerateItineraryRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "destination required")
		return
	}

	it, err := h.service.Generate(ctx, userID, req)
	if err != nil {
		switch {
		case errors.Is(err, types.ErrValidation):
			api.ErrorResponse(w, r, http.StatusBadRequest, "destination required")
		case errors.Is(err, types.ErrGeocode):
			api.ErrorResponse(w, r, http.StatusUnprocessableEntity, "Could not resolve destination")
		case errors.Is(err, types.ErrPoiFetch):
			api.ErrorResponse(w, r, http.StatusBadGateway, "Point of interest lookup failed")
		default:
			l.ErrorContext(ctx, "Generation failed", slog.Any("error", err))
			api.ErrorResponse(w, r, http.StatusInternalServerError, "Generate failed")
		}
		return
	}

	api.WriteJSONResponse(w, r, http.StatusCreated, it)
}

package chat

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/travelwiz/travelwiz/internal/api"
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

// Chat handles POST /chat.
// @Summary Ask the rule-based travel assistant a question
// @Accept json
// @Produce json
// @Router /chat [post]
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ChatRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Missing message")
		return
	}

	reply, err := h.service.Reply(ctx, req.Message)
	if err != nil {
		if errors.Is(err, types.ErrValidation) {
			api.ErrorResponse(w, r, http.StatusBadRequest, "Missing message")
			return
		}
		h.logger.ErrorContext(ctx, "Chat reply failed", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Server error")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, ChatResponse{Reply: reply})
}

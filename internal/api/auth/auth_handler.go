package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"

	"github.com/travelwiz/travelwiz/internal/api"
	"github.com/travelwiz/travelwiz/internal/types"
)

type Handler struct {
	authService Service
	validate    *validator.Validate
	logger      *slog.Logger
}

func NewHandler(authService Service, logger *slog.Logger) *Handler {
	return &Handler{
		authService: authService,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
		logger:      logger,
	}
}

// Register godoc
// @Summary Register a new account
// @Accept json
// @Produce json
// @Router /auth/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("handler", "Register"))

	var req RegisterRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.authService.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, types.ErrConflict) {
			api.ErrorResponse(w, r, http.StatusConflict, "Email already registered")
			return
		}
		l.ErrorContext(r.Context(), "Failed to register user", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to register user")
		return
	}

	l.InfoContext(r.Context(), "User registered", slog.String("userID", user.ID))
	api.WriteJSONResponse(w, r, http.StatusCreated, user)
}

// Login godoc
// @Summary Log in with email and password
// @Accept json
// @Produce json
// @Router /auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("handler", "Login"))

	var req LoginRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	tokens, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, types.ErrUnauthenticated) {
			api.ErrorResponse(w, r, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		l.ErrorContext(r.Context(), "Login failed", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Login failed")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, tokens)
}

// RefreshSession exchanges a valid refresh token for a new token pair.
func (h *Handler) RefreshSession(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("handler", "RefreshSession"))

	var req RefreshTokenRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	tokens, err := h.authService.RefreshSession(r.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, types.ErrUnauthenticated) {
			api.ErrorResponse(w, r, http.StatusUnauthorized, "Invalid or expired refresh token")
			return
		}
		l.ErrorContext(r.Context(), "Refresh failed", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Refresh failed")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, tokens)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	var req LogoutRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.authService.Logout(r.Context(), req.RefreshToken); err != nil {
		h.logger.ErrorContext(r.Context(), "Logout failed", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Logout failed")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, Response{Success: true, Message: "Logged out"})
}

// BeginOAuth starts the provider redirect flow (goth/gothic).
func (h *Handler) BeginOAuth(w http.ResponseWriter, r *http.Request) {
	// gothic reads the provider name from the URL query or context
	if user, err := gothic.CompleteUserAuth(w, r); err == nil {
		h.issueProviderTokens(w, r, user.Provider, user)
		return
	}
	gothic.BeginAuthHandler(w, r)
}

// OAuthCallback completes the provider flow and issues local tokens.
func (h *Handler) OAuthCallback(w http.ResponseWriter, r *http.Request) {
	user, err := gothic.CompleteUserAuth(w, r)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "OAuth callback failed", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusUnauthorized, "OAuth sign-in failed")
		return
	}
	h.issueProviderTokens(w, r, user.Provider, user)
}

func (h *Handler) issueProviderTokens(w http.ResponseWriter, r *http.Request, provider string, providerUser goth.User) {
	localUser, err := h.authService.GetOrCreateUserFromProvider(r.Context(), provider, providerUser)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to map provider user", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "OAuth sign-in failed")
		return
	}

	tokens, err := h.authService.IssueTokens(r.Context(), localUser)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to issue tokens", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "OAuth sign-in failed")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, tokens)
}

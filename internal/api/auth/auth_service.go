package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/markbates/goth"
	"golang.org/x/crypto/bcrypt"

	"github.com/travelwiz/travelwiz/config"
	"github.com/travelwiz/travelwiz/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Service defines the business logic contract for authentication.
type Service interface {
	Register(ctx context.Context, username, email, password string) (*types.UserAuth, error)
	Login(ctx context.Context, email, password string) (TokenResponse, error)
	RefreshSession(ctx context.Context, refreshToken string) (TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	GetOrCreateUserFromProvider(ctx context.Context, provider string, providerUser goth.User) (*types.UserAuth, error)
	IssueTokens(ctx context.Context, user *types.UserAuth) (TokenResponse, error)
}

type ServiceImpl struct {
	logger *slog.Logger
	repo   Repository
	jwtCfg config.JWTConfig
}

func NewService(repo Repository, jwtCfg config.JWTConfig, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger: logger,
		repo:   repo,
		jwtCfg: jwtCfg,
	}
}

// Register creates a password account. The email is lowercased before lookup
// and insert so logins are case-insensitive.
func (s *ServiceImpl) Register(ctx context.Context, username, email, password string) (*types.UserAuth, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.repo.CreateUser(ctx, username, strings.ToLower(email), string(hashed), "")
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to register user", slog.Any("error", err))
		return nil, err
	}
	return user, nil
}

func (s *ServiceImpl) Login(ctx context.Context, email, password string) (TokenResponse, error) {
	user, err := s.repo.GetUserByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return TokenResponse{}, types.ErrUnauthenticated
		}
		return TokenResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return TokenResponse{}, types.ErrUnauthenticated
	}

	return s.IssueTokens(ctx, user)
}

// RefreshSession rotates a refresh token: the old token is revoked and a new
// access/refresh pair is issued.
func (s *ServiceImpl) RefreshSession(ctx context.Context, refreshToken string) (TokenResponse, error) {
	userID, expiresAt, revokedAt, err := s.repo.GetRefreshToken(ctx, refreshToken)
	if err != nil {
		return TokenResponse{}, err
	}
	if time.Now().After(expiresAt) || revokedAt != nil {
		return TokenResponse{}, fmt.Errorf("refresh token expired or revoked: %w", types.ErrUnauthenticated)
	}

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return TokenResponse{}, err
	}

	tokens, err := s.IssueTokens(ctx, user)
	if err != nil {
		return TokenResponse{}, err
	}

	if err := s.repo.RevokeRefreshToken(ctx, refreshToken); err != nil {
		s.logger.WarnContext(ctx, "Failed to revoke old refresh token", slog.Any("error", err))
	}
	return tokens, nil
}

func (s *ServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	return s.repo.RevokeRefreshToken(ctx, refreshToken)
}

// GetOrCreateUserFromProvider maps an OAuth identity onto a local account,
// creating one on first sign-in.
func (s *ServiceImpl) GetOrCreateUserFromProvider(ctx context.Context, provider string, providerUser goth.User) (*types.UserAuth, error) {
	if providerUser.Email == "" {
		return nil, fmt.Errorf("provider %s returned no email: %w", provider, types.ErrUnauthenticated)
	}

	email := strings.ToLower(providerUser.Email)
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, types.ErrNotFound) {
		return nil, err
	}

	username := providerUser.NickName
	if username == "" {
		username = providerUser.Name
	}
	if username == "" {
		username = strings.SplitN(email, "@", 2)[0]
	}

	user, err = s.repo.CreateUser(ctx, username, email, "", provider)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to create user from provider",
			slog.String("provider", provider), slog.Any("error", err))
		return nil, err
	}
	return user, nil
}

// IssueTokens generates a signed access token and stores a fresh refresh token.
func (s *ServiceImpl) IssueTokens(ctx context.Context, user *types.UserAuth) (TokenResponse, error) {
	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return TokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken := uuid.NewString()
	expiresAt := time.Now().Add(s.jwtCfg.RefreshTokenTTL)
	if err := s.repo.StoreRefreshToken(ctx, user.ID, refreshToken, expiresAt); err != nil {
		return TokenResponse{}, err
	}

	return TokenResponse{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *ServiceImpl) generateAccessToken(user *types.UserAuth) (string, error) {
	now := time.Now()
	claims := types.Claims{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Scope:    "user",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.jwtCfg.Issuer,
			Audience:  jwt.ClaimStrings{s.jwtCfg.Audience},
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtCfg.AccessTokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtCfg.SecretKey))
}

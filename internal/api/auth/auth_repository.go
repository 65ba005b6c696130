package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/travelwiz/travelwiz/internal/api"
	"github.com/travelwiz/travelwiz/internal/types"
)

var _ Repository = (*RepositoryImpl)(nil)

// Repository defines data access for users and refresh tokens.
type Repository interface {
	CreateUser(ctx context.Context, username, email, passwordHash, provider string) (*types.UserAuth, error)
	GetUserByEmail(ctx context.Context, email string) (*types.UserAuth, error)
	GetUserByID(ctx context.Context, userID string) (*types.UserAuth, error)
	StoreRefreshToken(ctx context.Context, userID, token string, expiresAt time.Time) error
	GetRefreshToken(ctx context.Context, token string) (string, time.Time, *time.Time, error)
	RevokeRefreshToken(ctx context.Context, token string) error
	RevokeAllUserRefreshTokens(ctx context.Context, userID string) error
}

type RepositoryImpl struct {
	logger *slog.Logger
	pgpool api.DBTX
}

func NewRepository(pgpool api.DBTX, logger *slog.Logger) *RepositoryImpl {
	return &RepositoryImpl{
		logger: logger,
		pgpool: pgpool,
	}
}

// CreateUser inserts a new user row. A unique-violation on email surfaces as
// types.ErrConflict.
func (r *RepositoryImpl) CreateUser(ctx context.Context, username, email, passwordHash, provider string) (*types.UserAuth, error) {
	var user types.UserAuth
	err := r.pgpool.QueryRow(ctx,
		`INSERT INTO users (username, email, password_hash, provider)
         VALUES ($1, $2, $3, $4)
         RETURNING id, username, email, provider, created_at, updated_at`,
		username, email, passwordHash, provider).
		Scan(&user.ID, &user.Username, &user.Email, &user.Provider, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("email already registered: %w", types.ErrConflict)
		}
		r.logger.ErrorContext(ctx, "Failed to insert user", slog.Any("error", err))
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}
	return &user, nil
}

func (r *RepositoryImpl) GetUserByEmail(ctx context.Context, email string) (*types.UserAuth, error) {
	var user types.UserAuth
	err := r.pgpool.QueryRow(ctx,
		`SELECT id, username, email, password_hash, provider, created_at, updated_at
         FROM users WHERE email = $1`, email).
		Scan(&user.ID, &user.Username, &user.Email, &user.Password, &user.Provider, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to get user by email", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

func (r *RepositoryImpl) GetUserByID(ctx context.Context, userID string) (*types.UserAuth, error) {
	var user types.UserAuth
	err := r.pgpool.QueryRow(ctx,
		`SELECT id, username, email, provider, created_at, updated_at
         FROM users WHERE id = $1`, userID).
		Scan(&user.ID, &user.Username, &user.Email, &user.Provider, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to get user by id", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return &user, nil
}

func (r *RepositoryImpl) StoreRefreshToken(ctx context.Context, userID, token string, expiresAt time.Time) error {
	_, err := r.pgpool.Exec(ctx,
		`INSERT INTO refresh_tokens (user_id, token, expires_at)
         VALUES ($1, $2, $3)`,
		userID, token, expiresAt)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to store refresh token", slog.Any("error", err))
		return fmt.Errorf("store refresh token: db insert failed: %w", err)
	}
	return nil
}

// GetRefreshToken returns the owning user, expiry and optional revocation
// timestamp for a refresh token.
func (r *RepositoryImpl) GetRefreshToken(ctx context.Context, token string) (string, time.Time, *time.Time, error) {
	var userID string
	var expiresAt time.Time
	var revokedAt *time.Time

	err := r.pgpool.QueryRow(ctx,
		`SELECT user_id, expires_at, revoked_at
         FROM refresh_tokens
         WHERE token = $1`, token).Scan(&userID, &expiresAt, &revokedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", time.Time{}, nil, types.ErrUnauthenticated
		}
		return "", time.Time{}, nil, fmt.Errorf("get refresh token: query failed: %w", err)
	}
	return userID, expiresAt, revokedAt, nil
}

func (r *RepositoryImpl) RevokeRefreshToken(ctx context.Context, token string) error {
	tag, err := r.pgpool.Exec(ctx,
		`UPDATE refresh_tokens SET revoked_at = $1
         WHERE token = $2 AND revoked_at IS NULL`,
		time.Now(), token)
	if err != nil {
		return fmt.Errorf("revoke refresh token: db update failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Token already revoked or unknown; not an error for logout.
		r.logger.WarnContext(ctx, "No refresh token found or already revoked")
	}
	return nil
}

func (r *RepositoryImpl) RevokeAllUserRefreshTokens(ctx context.Context, userID string) error {
	_, err := r.pgpool.Exec(ctx,
		`UPDATE refresh_tokens SET revoked_at = $1
         WHERE user_id = $2 AND revoked_at IS NULL`,
		time.Now(), userID)
	if err != nil {
		return fmt.Errorf("revoke all tokens: db update failed: %w", err)
	}
	return nil
}

// Postgres unique_violation
func isUniqueViolation(err error) bool {
	var pgErr interface{ SQLState() string }
	if errors.As(err, &pgErr) {
		return pgErr.SQLState() == "23505"
	}
	return false
}

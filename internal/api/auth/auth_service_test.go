package auth

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/markbates/goth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"github.com/travelwiz/travelwiz/config"
	"github.com/travelwiz/travelwiz/internal/types"
)

// MockAuthRepo is a mock implementation of the Repository interface.
type MockAuthRepo struct {
	mock.Mock
}

func (m *MockAuthRepo) CreateUser(ctx context.Context, username, email, passwordHash, provider string) (*types.UserAuth, error) {
	args := m.Called(ctx, username, email, passwordHash, provider)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.UserAuth), args.Error(1)
}

func (m *MockAuthRepo) GetUserByEmail(ctx context.Context, email string) (*types.UserAuth, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.UserAuth), args.Error(1)
}

func (m *MockAuthRepo) GetUserByID(ctx context.Context, userID string) (*types.UserAuth, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.UserAuth), args.Error(1)
}

func (m *MockAuthRepo) StoreRefreshToken(ctx context.Context, userID, token string, expiresAt time.Time) error {
	args := m.Called(ctx, userID, token, expiresAt)
	return args.Error(0)
}

func (m *MockAuthRepo) GetRefreshToken(ctx context.Context, token string) (string, time.Time, *time.Time, error) {
	args := m.Called(ctx, token)
	var revokedAt *time.Time
	if args.Get(2) != nil {
		revokedAt = args.Get(2).(*time.Time)
	}
	return args.String(0), args.Get(1).(time.Time), revokedAt, args.Error(3)
}

func (m *MockAuthRepo) RevokeRefreshToken(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockAuthRepo) RevokeAllUserRefreshTokens(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		SecretKey:       "test-access-secret",
		Issuer:          "test-issuer",
		Audience:        "test-audience",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	}
}

func TestLogin(t *testing.T) {
	mockRepo := new(MockAuthRepo)
	service := NewService(mockRepo, testJWTConfig(), slog.Default())

	t.Run("Success", func(t *testing.T) {
		ctx := context.Background()
		email := "test@example.com"
		password := "password123"
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

		user := &types.UserAuth{
			ID:       "user123",
			Username: "testuser",
			Email:    email,
			Password: string(hashedPassword),
		}

		mockRepo.On("GetUserByEmail", ctx, email).Return(user, nil).Once()
		mockRepo.On("StoreRefreshToken", ctx, user.ID, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(nil).Once()

		tokens, err := service.Login(ctx, email, password)

		assert.NoError(t, err)
		assert.NotEmpty(t, tokens.AccessToken)
		assert.NotEmpty(t, tokens.RefreshToken)
		mockRepo.AssertExpectations(t)
	})

	t.Run("UserNotFound", func(t *testing.T) {
		ctx := context.Background()
		email := "nonexistent@example.com"

		mockRepo.On("GetUserByEmail", ctx, email).Return(nil, types.ErrNotFound).Once()

		tokens, err := service.Login(ctx, email, "password123")

		assert.Error(t, err)
		assert.Empty(t, tokens.AccessToken)
		assert.ErrorIs(t, err, types.ErrUnauthenticated)
		mockRepo.AssertExpectations(t)
	})

	t.Run("InvalidPassword", func(t *testing.T) {
		ctx := context.Background()
		email := "test@example.com"
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("correctpassword"), bcrypt.DefaultCost)

		user := &types.UserAuth{
			ID:       "user123",
			Username: "testuser",
			Email:    email,
			Password: string(hashedPassword),
		}

		mockRepo.On("GetUserByEmail", ctx, email).Return(user, nil).Once()

		tokens, err := service.Login(ctx, email, "wrongpassword")

		assert.Error(t, err)
		assert.Empty(t, tokens.AccessToken)
		assert.ErrorIs(t, err, types.ErrUnauthenticated)
		mockRepo.AssertExpectations(t)
	})

	t.Run("EmailLowercased", func(t *testing.T) {
		ctx := context.Background()
		password := "password123"
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

		user := &types.UserAuth{
			ID:       "user123",
			Email:    "mixed@example.com",
			Password: string(hashedPassword),
		}

		mockRepo.On("GetUserByEmail", ctx, "mixed@example.com").Return(user, nil).Once()
		mockRepo.On("StoreRefreshToken", ctx, user.ID, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(nil).Once()

		_, err := service.Login(ctx, "Mixed@Example.COM", password)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})
}

func TestRegister(t *testing.T) {
	mockRepo := new(MockAuthRepo)
	service := NewService(mockRepo, testJWTConfig(), slog.Default())

	t.Run("Success", func(t *testing.T) {
		ctx := context.Background()

		created := &types.UserAuth{ID: "user123", Username: "newuser", Email: "new@example.com"}
		mockRepo.On("CreateUser", ctx, "newuser", "new@example.com", mock.AnythingOfType("string"), "").Return(created, nil).Once()

		user, err := service.Register(ctx, "newuser", "New@Example.com", "password123")

		assert.NoError(t, err)
		assert.Equal(t, "user123", user.ID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		ctx := context.Background()

		mockRepo.On("CreateUser", ctx, "newuser", "dupe@example.com", mock.AnythingOfType("string"), "").Return(nil, types.ErrConflict).Once()

		user, err := service.Register(ctx, "newuser", "dupe@example.com", "password123")

		assert.Nil(t, user)
		assert.ErrorIs(t, err, types.ErrConflict)
		mockRepo.AssertExpectations(t)
	})
}

func TestRefreshSession(t *testing.T) {
	mockRepo := new(MockAuthRepo)
	service := NewService(mockRepo, testJWTConfig(), slog.Default())

	t.Run("RotatesToken", func(t *testing.T) {
		ctx := context.Background()
		oldToken := "old-refresh-token"
		user := &types.UserAuth{ID: "user123", Username: "testuser", Email: "test@example.com"}

		mockRepo.On("GetRefreshToken", ctx, oldToken).Return(user.ID, time.Now().Add(time.Hour), nil, nil).Once()
		mockRepo.On("GetUserByID", ctx, user.ID).Return(user, nil).Once()
		mockRepo.On("StoreRefreshToken", ctx, user.ID, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(nil).Once()
		mockRepo.On("RevokeRefreshToken", ctx, oldToken).Return(nil).Once()

		tokens, err := service.RefreshSession(ctx, oldToken)

		assert.NoError(t, err)
		assert.NotEmpty(t, tokens.AccessToken)
		assert.NotEqual(t, oldToken, tokens.RefreshToken)
		mockRepo.AssertExpectations(t)
	})

	t.Run("ExpiredToken", func(t *testing.T) {
		ctx := context.Background()
		oldToken := "expired-token"

		mockRepo.On("GetRefreshToken", ctx, oldToken).Return("user123", time.Now().Add(-time.Hour), nil, nil).Once()

		_, err := service.RefreshSession(ctx, oldToken)

		assert.ErrorIs(t, err, types.ErrUnauthenticated)
		mockRepo.AssertExpectations(t)
	})

	t.Run("RevokedToken", func(t *testing.T) {
		ctx := context.Background()
		oldToken := "revoked-token"
		revokedAt := time.Now().Add(-time.Minute)

		mockRepo.On("GetRefreshToken", ctx, oldToken).Return("user123", time.Now().Add(time.Hour), &revokedAt, nil).Once()

		_, err := service.RefreshSession(ctx, oldToken)

		assert.ErrorIs(t, err, types.ErrUnauthenticated)
		mockRepo.AssertExpectations(t)
	})

	t.Run("UnknownToken", func(t *testing.T) {
		ctx := context.Background()

		mockRepo.On("GetRefreshToken", ctx, "missing").Return("", time.Time{}, nil, types.ErrUnauthenticated).Once()

		_, err := service.RefreshSession(ctx, "missing")

		assert.ErrorIs(t, err, types.ErrUnauthenticated)
		mockRepo.AssertExpectations(t)
	})
}

func TestGetOrCreateUserFromProvider(t *testing.T) {
	mockRepo := new(MockAuthRepo)
	service := NewService(mockRepo, testJWTConfig(), slog.Default())

	t.Run("ExistingUser", func(t *testing.T) {
		ctx := context.Background()
		existing := &types.UserAuth{ID: "user123", Email: "oauth@example.com"}

		mockRepo.On("GetUserByEmail", ctx, "oauth@example.com").Return(existing, nil).Once()

		user, err := service.GetOrCreateUserFromProvider(ctx, "google", goth.User{Email: "OAuth@Example.com"})

		assert.NoError(t, err)
		assert.Equal(t, existing.ID, user.ID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("FirstSignIn", func(t *testing.T) {
		ctx := context.Background()
		created := &types.UserAuth{ID: "user456", Username: "nick", Email: "fresh@example.com", Provider: "google"}

		mockRepo.On("GetUserByEmail", ctx, "fresh@example.com").Return(nil, types.ErrNotFound).Once()
		mockRepo.On("CreateUser", ctx, "nick", "fresh@example.com", "", "google").Return(created, nil).Once()

		user, err := service.GetOrCreateUserFromProvider(ctx, "google", goth.User{Email: "fresh@example.com", NickName: "nick"})

		assert.NoError(t, err)
		assert.Equal(t, "google", user.Provider)
		mockRepo.AssertExpectations(t)
	})

	t.Run("NoEmail", func(t *testing.T) {
		ctx := context.Background()

		user, err := service.GetOrCreateUserFromProvider(ctx, "google", goth.User{})

		assert.Nil(t, user)
		assert.ErrorIs(t, err, types.ErrUnauthenticated)
	})
}

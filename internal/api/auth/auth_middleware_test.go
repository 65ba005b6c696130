package auth

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelwiz/travelwiz/internal/types"
)

func signTestToken(t *testing.T, cfg jwtTestConfig) string {
	t.Helper()
	now := time.Now()
	claims := types.Claims{
		UserID: cfg.userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.issuer,
			Audience:  jwt.ClaimStrings{cfg.audience},
			Subject:   cfg.userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.secret))
	require.NoError(t, err)
	return signed
}

type jwtTestConfig struct {
	userID   string
	issuer   string
	audience string
	secret   string
	ttl      time.Duration
}

func TestAuthenticate(t *testing.T) {
	cfg := testJWTConfig()
	middleware := Authenticate(slog.Default(), cfg)

	var capturedUserID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedUserID, _ = GetUserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	serve := func(authHeader string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if authHeader != "" {
			req.Header.Set("Authorization", authHeader)
		}
		rr := httptest.NewRecorder()
		middleware(next).ServeHTTP(rr, req)
		return rr
	}

	t.Run("ValidToken", func(t *testing.T) {
		token := signTestToken(t, jwtTestConfig{
			userID:   "user123",
			issuer:   cfg.Issuer,
			audience: cfg.Audience,
			secret:   cfg.SecretKey,
			ttl:      time.Minute,
		})

		rr := serve("Bearer " + token)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "user123", capturedUserID)
	})

	t.Run("MissingHeader", func(t *testing.T) {
		rr := serve("")
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("NotBearer", func(t *testing.T) {
		rr := serve("Basic dXNlcjpwYXNz")
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("ExpiredToken", func(t *testing.T) {
		token := signTestToken(t, jwtTestConfig{
			userID:   "user123",
			issuer:   cfg.Issuer,
			audience: cfg.Audience,
			secret:   cfg.SecretKey,
			ttl:      -time.Minute,
		})

		rr := serve("Bearer " + token)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Body.String(), "expired")
	})

	t.Run("WrongSignature", func(t *testing.T) {
		token := signTestToken(t, jwtTestConfig{
			userID:   "user123",
			issuer:   cfg.Issuer,
			audience: cfg.Audience,
			secret:   "some-other-secret",
			ttl:      time.Minute,
		})

		rr := serve("Bearer " + token)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("WrongIssuer", func(t *testing.T) {
		token := signTestToken(t, jwtTestConfig{
			userID:   "user123",
			issuer:   "someone-else",
			audience: cfg.Audience,
			secret:   cfg.SecretKey,
			ttl:      time.Minute,
		})

		rr := serve("Bearer " + token)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("WrongAudience", func(t *testing.T) {
		token := signTestToken(t, jwtTestConfig{
			userID:   "user123",
			issuer:   cfg.Issuer,
			audience: "other-app",
			secret:   cfg.SecretKey,
			ttl:      time.Minute,
		})

		rr := serve("Bearer " + token)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

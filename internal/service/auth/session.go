package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/physref/internal/config"
	"github.com/phrazzld/physref/internal/domain"
	"github.com/phrazzld/physref/internal/platform/logger"
)

// Token types carried in the typ claim.
const (
	tokenTypeSession = "session"
	tokenTypeFlash   = "flash"
)

// flashLifetime bounds how long a notice survives between a redirect and the
// page that shows it.
const flashLifetime = 5 * time.Minute

// SessionManager issues and verifies the signed tokens kept in cookies.
type SessionManager interface {
	// Issue creates a session token bound to userID.
	Issue(ctx context.Context, userID int64) (string, error)

	// Parse verifies a session token and returns its claims.
	// Returns ErrExpiredToken, ErrWrongTokenType or ErrInvalidToken on failure.
	Parse(ctx context.Context, token string) (*SessionClaims, error)

	// SealFlash signs notices for display on the next page.
	SealFlash(ctx context.Context, notices []domain.Notice) (string, error)

	// OpenFlash verifies a flash token and returns its notices.
	OpenFlash(ctx context.Context, token string) ([]domain.Notice, error)
}

// SessionClaims is the verified content of a session token.
type SessionClaims struct {
	UserID    int64
	IssuedAt  time.Time
	ExpiresAt time.Time
	ID        string
}

type sessionClaims struct {
	UserID    int64  `json:"uid"`
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

type flashClaims struct {
	TokenType string          `json:"typ"`
	Notices   []domain.Notice `json:"n"`
	jwt.RegisteredClaims
}

// hmacSessionManager is an implementation of SessionManager using HMAC-SHA256 signing.
type hmacSessionManager struct {
	signingKey []byte
	lifetime   time.Duration
	timeFunc   func() time.Time // Injectable for testing
	clockSkew  time.Duration    // Allowed time difference for validation to handle clock drift
}

// Ensure hmacSessionManager implements SessionManager interface
var _ SessionManager = (*hmacSessionManager)(nil)

// NewSessionManager creates a SessionManager using HMAC-SHA256 signing.
func NewSessionManager(cfg config.AuthConfig) (SessionManager, error) {
	return newSessionManager(cfg.SessionSecret, cfg.SessionLifetime(), time.Now)
}

func newSessionManager(secret string, lifetime time.Duration, timeFunc func() time.Time) (*hmacSessionManager, error) {
	if len(secret) < 32 {
		return nil, fmt.Errorf("session secret must be at least 32 characters")
	}
	if lifetime <= 0 {
		return nil, fmt.Errorf("session lifetime must be positive")
	}

	return &hmacSessionManager{
		signingKey: []byte(secret),
		lifetime:   lifetime,
		timeFunc:   timeFunc,
		clockSkew:  2 * time.Minute,
	}, nil
}

// Issue implements SessionManager.Issue.
func (m *hmacSessionManager) Issue(ctx context.Context, userID int64) (string, error) {
	now := m.timeFunc()

	claims := sessionClaims{
		UserID:    userID,
		TokenType: tokenTypeSession,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.lifetime)),
			ID:        uuid.NewString(),
		},
	}

	signed, err := m.sign(claims)
	if err != nil {
		logger.FromContext(ctx).Error("failed to sign session token",
			"error", err,
			"user_id", userID)
		return "", err
	}
	return signed, nil
}

// Parse implements SessionManager.Parse.
func (m *hmacSessionManager) Parse(ctx context.Context, token string) (*SessionClaims, error) {
	var claims sessionClaims
	if err := m.parse(ctx, token, &claims); err != nil {
		return nil, err
	}
	if claims.TokenType != tokenTypeSession {
		logger.FromContext(ctx).Debug("session validation failed: wrong token type",
			"expected", tokenTypeSession,
			"actual", claims.TokenType)
		return nil, ErrWrongTokenType
	}
	if claims.IssuedAt == nil || claims.ExpiresAt == nil {
		return nil, ErrInvalidToken
	}

	return &SessionClaims{
		UserID:    claims.UserID,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
		ID:        claims.ID,
	}, nil
}

// SealFlash implements SessionManager.SealFlash.
func (m *hmacSessionManager) SealFlash(ctx context.Context, notices []domain.Notice) (string, error) {
	now := m.timeFunc()

	claims := flashClaims{
		TokenType: tokenTypeFlash,
		Notices:   notices,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(flashLifetime)),
		},
	}

	signed, err := m.sign(claims)
	if err != nil {
		logger.FromContext(ctx).Error("failed to sign flash token", "error", err)
		return "", err
	}
	return signed, nil
}

// OpenFlash implements SessionManager.OpenFlash.
func (m *hmacSessionManager) OpenFlash(ctx context.Context, token string) ([]domain.Notice, error) {
	var claims flashClaims
	if err := m.parse(ctx, token, &claims); err != nil {
		return nil, err
	}
	if claims.TokenType != tokenTypeFlash {
		return nil, ErrWrongTokenType
	}
	return claims.Notices, nil
}

func (m *hmacSessionManager) sign(claims jwt.Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.signingKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token with HMAC-SHA256: %w", err)
	}
	return signed, nil
}

func (m *hmacSessionManager) parse(ctx context.Context, tokenString string, claims jwt.Claims) error {
	log := logger.FromContext(ctx)
	now := m.timeFunc()

	_, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return m.signingKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithLeeway(m.clockSkew),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
	)
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		log.Debug("token validation failed: token expired", "error", err)
		return ErrExpiredToken
	case errors.Is(err, jwt.ErrTokenMalformed):
		log.Debug("token validation failed: malformed token", "error", err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		log.Debug("token validation failed: invalid signature", "error", err)
	default:
		log.Debug("token validation failed: other validation error",
			"error", err,
			"error_type", fmt.Sprintf("%T", err))
	}
	return ErrInvalidToken
}

package mocks

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/phrazzld/physref/internal/domain"
	"github.com/phrazzld/physref/internal/service/auth"
)

// MockSessionManager implements auth.SessionManager for testing with
// readable, unsigned tokens: "session:<id>" and "flash:<base64 json>".
type MockSessionManager struct {
	IssueFn     func(ctx context.Context, userID int64) (string, error)
	ParseFn     func(ctx context.Context, token string) (*auth.SessionClaims, error)
	SealFlashFn func(ctx context.Context, notices []domain.Notice) (string, error)
	OpenFlashFn func(ctx context.Context, token string) ([]domain.Notice, error)
}

// Ensure MockSessionManager implements auth.SessionManager interface
var _ auth.SessionManager = (*MockSessionManager)(nil)

// Issue implements the auth.SessionManager interface
func (m *MockSessionManager) Issue(ctx context.Context, userID int64) (string, error) {
	if m.IssueFn != nil {
		return m.IssueFn(ctx, userID)
	}
	return "session:" + strconv.FormatInt(userID, 10), nil
}

// Parse implements the auth.SessionManager interface
func (m *MockSessionManager) Parse(ctx context.Context, token string) (*auth.SessionClaims, error) {
	if m.ParseFn != nil {
		return m.ParseFn(ctx, token)
	}
	raw, ok := strings.CutPrefix(token, "session:")
	if !ok {
		return nil, auth.ErrInvalidToken
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, auth.ErrInvalidToken
	}
	now := time.Now()
	return &auth.SessionClaims{UserID: id, IssuedAt: now, ExpiresAt: now.Add(time.Hour)}, nil
}

// SealFlash implements the auth.SessionManager interface
func (m *MockSessionManager) SealFlash(ctx context.Context, notices []domain.Notice) (string, error) {
	if m.SealFlashFn != nil {
		return m.SealFlashFn(ctx, notices)
	}
	data, err := json.Marshal(notices)
	if err != nil {
		return "", err
	}
	return "flash:" + base64.RawURLEncoding.EncodeToString(data), nil
}

// OpenFlash implements the auth.SessionManager interface
func (m *MockSessionManager) OpenFlash(ctx context.Context, token string) ([]domain.Notice, error) {
	if m.OpenFlashFn != nil {
		return m.OpenFlashFn(ctx, token)
	}
	raw, ok := strings.CutPrefix(token, "flash:")
	if !ok {
		return nil, errors.New("not a flash token")
	}
	data, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return nil, auth.ErrInvalidToken
	}
	var notices []domain.Notice
	if err := json.Unmarshal(data, &notices); err != nil {
		return nil, auth.ErrInvalidToken
	}
	return notices, nil
}

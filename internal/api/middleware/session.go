package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/phrazzld/physref/internal/api/shared"
	"github.com/phrazzld/physref/internal/domain"
	"github.com/phrazzld/physref/internal/platform/logger"
	"github.com/phrazzld/physref/internal/redact"
	"github.com/phrazzld/physref/internal/service/auth"
)

// SessionMiddleware reads and writes the session and flash cookies.
type SessionMiddleware struct {
	sessions auth.SessionManager
	lifetime time.Duration
	secure   bool
}

// NewSessionMiddleware creates a SessionMiddleware. lifetime sets the session
// cookie Max-Age and should match the token lifetime; secure marks cookies
// Secure for deployments behind TLS.
func NewSessionMiddleware(sessions auth.SessionManager, lifetime time.Duration, secure bool) *SessionMiddleware {
	return &SessionMiddleware{
		sessions: sessions,
		lifetime: lifetime,
		secure:   secure,
	}
}

// Load decodes the session cookie once per request and puts the user id into
// the context. Invalid or expired sessions are treated as anonymous and the
// cookie is cleared. Flash notices are moved from their cookie into the
// context and the cookie is cleared, so each notice is shown once.
func (m *SessionMiddleware) Load(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log := logger.FromContext(ctx)

		if c, err := r.Cookie(shared.SessionCookieName); err == nil {
			claims, err := m.sessions.Parse(ctx, c.Value)
			switch {
			case err == nil:
				ctx = shared.WithUserID(ctx, claims.UserID)
			case errors.Is(err, auth.ErrExpiredToken):
				log.Debug("session expired")
				m.clear(w, shared.SessionCookieName)
			default:
				log.Debug("discarding invalid session cookie", "error", redact.Error(err))
				m.clear(w, shared.SessionCookieName)
			}
		}

		if c, err := r.Cookie(shared.FlashCookieName); err == nil {
			notices, err := m.sessions.OpenFlash(ctx, c.Value)
			if err != nil {
				log.Debug("discarding invalid flash cookie", "error", redact.Error(err))
			} else {
				ctx = shared.WithNotices(ctx, notices)
			}
			m.clear(w, shared.FlashCookieName)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAuth redirects anonymous visitors to the login page.
func (m *SessionMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := shared.GetUserID(r.Context()); !ok {
			m.Redirect(w, r, "/login", domain.Notice{
				Category: domain.NoticeInfo,
				Message:  "Please log in to view this page.",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Start issues a session for userID and sets the session cookie.
func (m *SessionMiddleware) Start(w http.ResponseWriter, r *http.Request, userID int64) error {
	token, err := m.sessions.Issue(r.Context(), userID)
	if err != nil {
		return err
	}
	http.SetCookie(w, m.cookie(shared.SessionCookieName, token, int(m.lifetime.Seconds())))
	return nil
}

// End clears the session cookie. It is safe to call without a session.
func (m *SessionMiddleware) End(w http.ResponseWriter) {
	m.clear(w, shared.SessionCookieName)
}

// Redirect answers with 303 See Other to location, carrying notices to the
// next page. Notices delivered with this request that were not rendered are
// carried along too.
func (m *SessionMiddleware) Redirect(w http.ResponseWriter, r *http.Request, location string, notices ...domain.Notice) {
	pending := append([]domain.Notice(nil), shared.GetNotices(r.Context())...)
	pending = append(pending, notices...)
	if len(pending) > 0 {
		token, err := m.sessions.SealFlash(r.Context(), pending)
		if err != nil {
			logger.FromContext(r.Context()).Error("failed to seal flash notices", "error", redact.Error(err))
		} else {
			http.SetCookie(w, m.cookie(shared.FlashCookieName, token, 0))
		}
	}
	http.Redirect(w, r, location, http.StatusSeeOther)
}

func (m *SessionMiddleware) clear(w http.ResponseWriter, name string) {
	http.SetCookie(w, m.cookie(name, "", -1))
}

func (m *SessionMiddleware) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/physref/internal/api"
	"github.com/phrazzld/physref/internal/api/middleware"
	"github.com/phrazzld/physref/internal/api/shared"
	"github.com/phrazzld/physref/internal/catalog"
	"github.com/phrazzld/physref/internal/domain"
	"github.com/phrazzld/physref/internal/mocks"
	"github.com/phrazzld/physref/internal/service/auth"
	"github.com/stretchr/testify/require"
)

// testSite wires the real handlers and renderer to in-memory collaborators.
type testSite struct {
	handler  http.Handler
	users    *mocks.MockUserStore
	sessions *mocks.MockSessionManager
}

func newTestSite(t *testing.T) *testSite {
	t.Helper()

	users := mocks.NewMockUserStore()
	svc, err := auth.NewService(users, &mocks.MockPasswordHasher{}, nil)
	require.NoError(t, err)

	sm := &mocks.MockSessionManager{}
	sessions := middleware.NewSessionMiddleware(sm, time.Hour, false)

	cat := catalog.Default()
	views, err := api.NewRenderer(cat)
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Use(sessions.Load)
	api.RegisterRoutes(r, api.Handlers{
		Pages:       api.NewPageHandler(cat, svc, sessions, views),
		Calculators: api.NewCalculatorHandler(views),
		Auth:        api.NewAuthHandler(svc, sessions, views),
	}, sessions)

	return &testSite{handler: r, users: users, sessions: sm}
}

func (s *testSite) get(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *testSite) post(path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

// flash decodes the notices set for the next page.
func (s *testSite) flash(t *testing.T, rec *httptest.ResponseRecorder) []domain.Notice {
	t.Helper()
	c := lastCookie(rec, shared.FlashCookieName)
	require.NotNil(t, c, "expected a flash cookie")
	notices, err := s.sessions.OpenFlash(context.Background(), c.Value)
	require.NoError(t, err)
	return notices
}

// register creates an account directly through the handlers.
func (s *testSite) register(t *testing.T, username, password string) {
	t.Helper()
	rec := s.post("/register", url.Values{
		"username":         {username},
		"password":         {password},
		"confirm_password": {password},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())
}

func sessionCookie(userID string) *http.Cookie {
	return &http.Cookie{Name: shared.SessionCookieName, Value: "session:" + userID}
}

// lastCookie returns the final Set-Cookie for name, which is the one a browser keeps.
func lastCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	var found *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			found = c
		}
	}
	return found
}

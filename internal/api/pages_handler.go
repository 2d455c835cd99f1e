package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/physref/internal/api/middleware"
	"github.com/phrazzld/physref/internal/api/shared"
	"github.com/phrazzld/physref/internal/catalog"
	"github.com/phrazzld/physref/internal/domain"
)

// PageHandler serves the read-only pages.
type PageHandler struct {
	catalog  *catalog.Catalog
	auth     Authenticator
	sessions *middleware.SessionMiddleware
	views    *Renderer
}

// NewPageHandler creates a new PageHandler with the given dependencies.
func NewPageHandler(
	cat *catalog.Catalog,
	a Authenticator,
	sessions *middleware.SessionMiddleware,
	views *Renderer,
) *PageHandler {
	return &PageHandler{catalog: cat, auth: a, sessions: sessions, views: views}
}

// Home handles GET /.
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.views.Render(w, r, http.StatusOK, PageIndex, h.views.Page(r, ""))
}

// Formulas handles GET /formulas/{topic}. Unknown topics redirect home with a notice.
func (h *PageHandler) Formulas(w http.ResponseWriter, r *http.Request) {
	topic, err := h.catalog.Topic(chi.URLParam(r, "topic"))
	if err != nil {
		if errors.Is(err, domain.ErrTopicNotFound) {
			h.sessions.Redirect(w, r, "/", domain.Notice{
				Category: domain.NoticeDanger,
				Message:  SafeMessage(err),
			})
			return
		}
		h.views.RenderError(w, r, err)
		return
	}

	data := h.views.Page(r, topic.Title)
	data.Topic = topic
	h.views.Render(w, r, http.StatusOK, PageFormulas, data)
}

// Account handles GET /account. It sits behind RequireAuth.
func (h *PageHandler) Account(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.GetUserID(r.Context())
	if !ok {
		h.views.RenderError(w, r, domain.ErrUnauthorized)
		return
	}

	user, err := h.auth.User(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// The account behind a still-valid session no longer exists.
			h.sessions.End(w)
			h.sessions.Redirect(w, r, "/login", domain.Notice{
				Category: domain.NoticeInfo,
				Message:  "Please log in to view this page.",
			})
			return
		}
		h.views.RenderError(w, r, err)
		return
	}

	data := h.views.Page(r, "Account")
	data.User = user
	h.views.Render(w, r, http.StatusOK, PageAccount, data)
}

// NotFound renders the 404 page.
func (h *PageHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.views.RenderError(w, r, domain.ErrNotFound)
}

// Health handles GET /health.
func (h *PageHandler) Health(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithText(w, http.StatusOK, "OK")
}

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/phrazzld/physref/internal/api/middleware"
	"github.com/phrazzld/physref/internal/api/shared"
	"github.com/phrazzld/physref/internal/domain"
	"github.com/phrazzld/physref/internal/platform/logger"
	"github.com/phrazzld/physref/internal/service/auth"
)

// Authenticator is the part of the auth service the handlers use.
type Authenticator interface {
	Register(ctx context.Context, in auth.RegisterInput) (*domain.User, error)
	Login(ctx context.Context, in auth.LoginInput) (*domain.User, error)
	User(ctx context.Context, id int64) (*domain.User, error)
}

// AuthHandler handles registration, login and logout.
type AuthHandler struct {
	auth     Authenticator
	sessions *middleware.SessionMiddleware
	views    *Renderer
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(a Authenticator, sessions *middleware.SessionMiddleware, views *Renderer) *AuthHandler {
	return &AuthHandler{auth: a, sessions: sessions, views: views}
}

// RegisterForm handles GET /register.
func (h *AuthHandler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	h.views.Render(w, r, http.StatusOK, PageRegister, h.views.Page(r, "Register"))
}

// Register handles POST /register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := shared.ParseForm(w, r); err != nil {
		h.views.RenderError(w, r, domain.ErrValidation)
		return
	}

	in := auth.RegisterInput{
		Username:        shared.FormString(r, "username"),
		Password:        r.PostForm.Get("password"),
		ConfirmPassword: r.PostForm.Get("confirm_password"),
	}

	_, err := h.auth.Register(r.Context(), in)
	if err == nil {
		h.sessions.Redirect(w, r, "/login", domain.Notice{
			Category: domain.NoticeSuccess,
			Message:  "Registration successful. You can now log in.",
		})
		return
	}

	data := h.views.Page(r, "Register")
	data.Form["username"] = in.Username
	if !h.formFailure(w, r, data, err) {
		return
	}
	h.views.Render(w, r, MapErrorToStatusCode(err), PageRegister, data)
}

// LoginForm handles GET /login.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.views.Render(w, r, http.StatusOK, PageLogin, h.views.Page(r, "Log in"))
}

// Login handles POST /login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := shared.ParseForm(w, r); err != nil {
		h.views.RenderError(w, r, domain.ErrValidation)
		return
	}

	in := auth.LoginInput{
		Username: shared.FormString(r, "username"),
		Password: r.PostForm.Get("password"),
	}

	user, err := h.auth.Login(r.Context(), in)
	if err == nil {
		if err := h.sessions.Start(w, r, user.ID); err != nil {
			h.views.RenderError(w, r, err)
			return
		}
		h.sessions.Redirect(w, r, "/", domain.Notice{
			Category: domain.NoticeSuccess,
			Message:  "Logged in successfully",
		})
		return
	}

	data := h.views.Page(r, "Log in")
	data.Form["username"] = in.Username
	if !h.formFailure(w, r, data, err) {
		return
	}
	if errors.Is(err, domain.ErrInvalidCredentials) {
		shared.LogErrorResponse(r, http.StatusUnauthorized, SafeMessage(err), err, shared.WithElevatedLogLevel())
	}
	h.views.Render(w, r, MapErrorToStatusCode(err), PageLogin, data)
}

// Logout handles GET /logout. The session cookie is cleared whether or not
// one was present.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if id, ok := shared.GetUserID(r.Context()); ok {
		logger.FromContext(r.Context()).Info("user logged out", "user_id", id)
	}
	h.sessions.End(w)
	h.sessions.Redirect(w, r, "/", domain.Notice{
		Category: domain.NoticeInfo,
		Message:  "You have been logged out",
	})
}

// formFailure fills data for a recoverable form error and reports whether the
// form should be redisplayed. Unexpected errors render the error page.
func (h *AuthHandler) formFailure(w http.ResponseWriter, r *http.Request, data *PageData, err error) bool {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		data.Errors = verr.Fields
	case errors.Is(err, domain.ErrUsernameTaken),
		errors.Is(err, domain.ErrInvalidCredentials):
		data.Notices = append(data.Notices, domain.Notice{
			Category: domain.NoticeDanger,
			Message:  SafeMessage(err),
		})
	default:
		h.views.RenderError(w, r, err)
		return false
	}
	return true
}

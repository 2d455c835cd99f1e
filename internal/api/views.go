package api

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strconv"

	"github.com/phrazzld/physref/internal/api/shared"
	"github.com/phrazzld/physref/internal/catalog"
	"github.com/phrazzld/physref/internal/domain/calc"
	"github.com/phrazzld/physref/internal/web"
)

// Page template names
const (
	PageIndex            = "index.html"
	PageFormulas         = "formulas.html"
	PageMechanics        = "mechanics.html"
	PageElectromagnetism = "electromagnetism.html"
	PageRegister         = "register.html"
	PageLogin            = "login.html"
	PageAccount          = "account.html"
	PageError            = "error.html"
)

var pages = []string{
	PageIndex, PageFormulas, PageMechanics, PageElectromagnetism,
	PageRegister, PageLogin, PageAccount, PageError,
}

const partials = "partials.html"

// Renderer renders pages inside the shared layout.
type Renderer struct {
	templates map[string]*template.Template
	catalog   *catalog.Catalog
}

// NewRenderer parses the embedded templates. The catalog feeds the topic navigation.
func NewRenderer(cat *catalog.Catalog) (*Renderer, error) {
	return newRenderer(web.Templates(), cat)
}

func newRenderer(files fs.FS, cat *catalog.Catalog) (*Renderer, error) {
	funcs := template.FuncMap{
		"field":       formField,
		"input":       formInput,
		"formatFloat": formatFloat,
		"unit":        unit,
		"resultLabel": resultLabel,
	}

	r := &Renderer{templates: make(map[string]*template.Template, len(pages)), catalog: cat}
	for _, page := range pages {
		t, err := template.New(page).Funcs(funcs).ParseFS(files, web.Layout, partials, page)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", page, err)
		}
		r.templates[page] = t
	}
	return r, nil
}

// Page builds the view model for r with the session and notice state filled in.
func (v *Renderer) Page(r *http.Request, title string) *PageData {
	data := &PageData{
		Title:   title,
		Notices: shared.GetNotices(r.Context()),
		Topics:  v.catalog.Topics(),
		Form:    map[string]string{},
		Errors:  map[string]string{},
	}
	if id, ok := shared.GetUserID(r.Context()); ok {
		data.LoggedIn = true
		data.UserID = id
	}
	return data
}

// Render writes page with status. The page is rendered into a buffer first so
// a template failure still produces a clean 500.
func (v *Renderer) Render(w http.ResponseWriter, r *http.Request, status int, page string, data *PageData) {
	t, ok := v.templates[page]
	if !ok {
		v.renderFailure(w, r, fmt.Errorf("unknown page %q", page))
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		v.renderFailure(w, r, fmt.Errorf("failed to render %s: %w", page, err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// RenderError renders the error page for err and logs it.
func (v *Renderer) RenderError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	message := SafeMessage(err)
	shared.LogErrorResponse(r, status, message, err)

	data := v.Page(r, http.StatusText(status))
	data.Status = status
	data.Message = message
	data.TraceID = shared.GetTraceID(r.Context())
	v.Render(w, r, status, PageError, data)
}

// renderFailure answers with plain text when the error page itself cannot render.
func (v *Renderer) renderFailure(w http.ResponseWriter, r *http.Request, err error) {
	shared.LogErrorResponse(r, http.StatusInternalServerError, "template error", err)
	shared.RespondWithText(w, http.StatusInternalServerError, "An unexpected error occurred")
}

func formField(data *PageData, name, label string) fieldView {
	return fieldView{Name: name, Label: label, Value: data.Form[name], Error: data.Errors[name]}
}

func formInput(data *PageData, name, label, kind string) fieldView {
	f := formField(data, name, label)
	f.Type = kind
	if kind == "password" {
		f.Value = ""
	}
	return f
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

func unit(k calc.Kind) string {
	switch k {
	case calc.KindForce:
		return "N"
	case calc.KindEnergy:
		return "J"
	case calc.KindCurrent:
		return "A"
	default:
		return ""
	}
}

func resultLabel(k calc.Kind) string {
	switch k {
	case calc.KindForce:
		return "Force"
	case calc.KindEnergy:
		return "Kinetic energy"
	case calc.KindCurrent:
		return "Current"
	default:
		return "Result"
	}
}

package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/physref/internal/api/shared"
	"github.com/phrazzld/physref/internal/domain"
	"github.com/phrazzld/physref/internal/domain/calc"
)

// Submit button names and the calculation each selects.
var (
	mechanicsModes = []modeButton{
		{"calculate_force", calc.ModeForce},
		{"calculate_energy", calc.ModeEnergy},
	}
	electromagnetismModes = []modeButton{
		{"calculate_current", calc.ModeCurrent},
		{"calculate_coulomb", calc.ModeCoulomb},
	}
)

type modeButton struct {
	name string
	mode calc.Mode
}

// numericForm collects parsed numeric fields, their raw text for
// redisplay, and coercion failures.
type numericForm struct {
	r      *http.Request
	raw    map[string]string
	errors *domain.ValidationError
}

func newNumericForm(r *http.Request) *numericForm {
	return &numericForm{r: r, raw: map[string]string{}, errors: domain.NewValidationError()}
}

func (f *numericForm) float(name string) *float64 {
	f.raw[name] = shared.FormString(f.r, name)
	v, err := shared.FormFloat(f.r, name)
	if err != nil {
		f.errors.Add(name, "Must be a number.")
		return nil
	}
	return v
}

func (f *numericForm) mode(buttons []modeButton) calc.Mode {
	for _, b := range buttons {
		if shared.Submitted(f.r, b.name) {
			return b.mode
		}
	}
	f.errors.Add("mode", "Choose a calculation.")
	return ""
}

// CalculatorHandler serves the mechanics and electromagnetism calculators.
type CalculatorHandler struct {
	views *Renderer
}

// NewCalculatorHandler creates a new CalculatorHandler.
func NewCalculatorHandler(views *Renderer) *CalculatorHandler {
	return &CalculatorHandler{views: views}
}

// MechanicsForm handles GET /calculator/mechanics.
func (h *CalculatorHandler) MechanicsForm(w http.ResponseWriter, r *http.Request) {
	h.views.Render(w, r, http.StatusOK, PageMechanics, h.views.Page(r, "Mechanics calculator"))
}

// Mechanics handles POST /calculator/mechanics.
func (h *CalculatorHandler) Mechanics(w http.ResponseWriter, r *http.Request) {
	if err := shared.ParseForm(w, r); err != nil {
		h.views.RenderError(w, r, domain.ErrValidation)
		return
	}

	f := newNumericForm(r)
	in := calc.MechanicsInput{
		Mass:         f.float("mass"),
		Acceleration: f.float("acceleration"),
		Velocity:     f.float("velocity"),
	}
	mode := f.mode(mechanicsModes)

	h.respond(w, r, PageMechanics, "Mechanics calculator", f, func() (calc.Result, error) {
		return calc.Mechanics(mode, in)
	})
}

// ElectromagnetismForm handles GET /calculator/electromagnetism.
func (h *CalculatorHandler) ElectromagnetismForm(w http.ResponseWriter, r *http.Request) {
	h.views.Render(w, r, http.StatusOK, PageElectromagnetism, h.views.Page(r, "Electromagnetism calculator"))
}

// Electromagnetism handles POST /calculator/electromagnetism.
func (h *CalculatorHandler) Electromagnetism(w http.ResponseWriter, r *http.Request) {
	if err := shared.ParseForm(w, r); err != nil {
		h.views.RenderError(w, r, domain.ErrValidation)
		return
	}

	f := newNumericForm(r)
	in := calc.ElectromagnetismInput{
		Voltage:    f.float("voltage"),
		Resistance: f.float("resistance"),
		Charge1:    f.float("charge1"),
		Charge2:    f.float("charge2"),
		Distance:   f.float("distance"),
	}
	mode := f.mode(electromagnetismModes)

	h.respond(w, r, PageElectromagnetism, "Electromagnetism calculator", f, func() (calc.Result, error) {
		return calc.Electromagnetism(mode, in)
	})
}

// respond runs compute unless the form already failed coercion, and renders
// the page with the result or the errors. Input is always redisplayed.
func (h *CalculatorHandler) respond(
	w http.ResponseWriter,
	r *http.Request,
	page, title string,
	f *numericForm,
	compute func() (calc.Result, error),
) {
	data := h.views.Page(r, title)
	data.Form = f.raw

	if !f.errors.Empty() {
		data.Errors = f.errors.Fields
		h.views.Render(w, r, http.StatusUnprocessableEntity, page, data)
		return
	}

	result, err := compute()
	if err == nil {
		data.Result = &result
		h.views.Render(w, r, http.StatusOK, page, data)
		return
	}

	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		data.Errors = verr.Fields
	case errors.Is(err, calc.ErrNonFiniteResult):
		data.Notices = append(data.Notices, domain.Notice{
			Category: domain.NoticeDanger,
			Message:  "Input error",
		})
	default:
		h.views.RenderError(w, r, err)
		return
	}
	shared.LogErrorResponse(r, http.StatusUnprocessableEntity, "Input error", err)
	h.views.Render(w, r, http.StatusUnprocessableEntity, page, data)
}

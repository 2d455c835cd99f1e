package api_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculatorForms(t *testing.T) {
	t.Parallel()

	site := newTestSite(t)
	for _, path := range []string{"/calculator/mechanics", "/calculator/electromagnetism"} {
		rec := site.get(path)
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.NotContains(t, rec.Body.String(), `class="result"`, path)
	}
}

func TestMechanicsCalculator(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		form       url.Values
		wantStatus int
		wantBody   []string
	}{
		{
			name:       "force",
			form:       url.Values{"mass": {"2"}, "acceleration": {"3"}, "calculate_force": {""}},
			wantStatus: http.StatusOK,
			wantBody:   []string{"Force: <strong>6 N</strong>"},
		},
		{
			name:       "energy",
			form:       url.Values{"mass": {"2"}, "velocity": {"4"}, "calculate_energy": {""}},
			wantStatus: http.StatusOK,
			wantBody:   []string{"Kinetic energy: <strong>16 J</strong>"},
		},
		{
			name:       "missing mass keeps other input",
			form:       url.Values{"acceleration": {"3.5"}, "calculate_force": {""}},
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   []string{"This field is required.", `name="acceleration" value="3.5"`},
		},
		{
			name:       "mass at lower bound",
			form:       url.Values{"mass": {"0.01"}, "acceleration": {"1"}, "calculate_force": {""}},
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   []string{"Mass must be positive."},
		},
		{
			name:       "not a number",
			form:       url.Values{"mass": {"heavy"}, "acceleration": {"1"}, "calculate_force": {""}},
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   []string{"Must be a number.", `name="mass" value="heavy"`},
		},
		{
			name:       "no button",
			form:       url.Values{"mass": {"2"}, "acceleration": {"3"}},
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   []string{"Choose a calculation."},
		},
		{
			name:       "overflow",
			form:       url.Values{"mass": {"1e300"}, "acceleration": {"1e300"}, "calculate_force": {""}},
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   []string{"Input error"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			site := newTestSite(t)
			rec := site.post("/calculator/mechanics", tt.form)
			assert.Equal(t, tt.wantStatus, rec.Code)
			for _, want := range tt.wantBody {
				assert.Contains(t, rec.Body.String(), want)
			}
		})
	}
}

func TestElectromagnetismCalculator(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		form       url.Values
		wantStatus int
		wantBody   string
	}{
		{
			name:       "current",
			form:       url.Values{"voltage": {"10"}, "resistance": {"2"}, "calculate_current": {""}},
			wantStatus: http.StatusOK,
			wantBody:   "Current: <strong>5 A</strong>",
		},
		{
			name: "coulomb",
			form: url.Values{
				"charge1": {"1e-6"}, "charge2": {"2e-6"}, "distance": {"1"}, "calculate_coulomb": {""},
			},
			wantStatus: http.StatusOK,
			wantBody:   "Force: <strong>0.018 N</strong>",
		},
		{
			name:       "resistance below minimum",
			form:       url.Values{"voltage": {"10"}, "resistance": {"0.05"}, "calculate_current": {""}},
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   "Resistance must be at least 0.1 Ω.",
		},
		{
			name:       "missing charge",
			form:       url.Values{"charge1": {"1"}, "distance": {"1"}, "calculate_coulomb": {""}},
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   "This field is required.",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			site := newTestSite(t)
			rec := site.post("/calculator/electromagnetism", tt.form)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

package calc

import (
	"errors"
	"fmt"

	"github.com/phrazzld/physref/internal/domain"
)

// Kind identifies which quantity a result represents.
type Kind string

// Result kinds
const (
	KindForce   Kind = "force"
	KindEnergy  Kind = "energy"
	KindCurrent Kind = "current"
)

// Mode selects one of the mutually exclusive computations of a calculator.
type Mode string

// Mechanics modes
const (
	ModeForce  Mode = "force"
	ModeEnergy Mode = "energy"
)

// Electromagnetism modes
const (
	ModeCurrent Mode = "current"
	ModeCoulomb Mode = "coulomb"
)

// ErrNonFiniteResult is returned when a formula overflows to ±Inf or yields NaN.
var ErrNonFiniteResult = errors.New("result is not a finite number")

// Result is the outcome of a calculation.
type Result struct {
	Value float64
	Kind  Kind
}

// MechanicsInput holds the mechanics form fields. A nil field was not supplied.
type MechanicsInput struct {
	Mass         *float64
	Acceleration *float64
	Velocity     *float64
}

// ElectromagnetismInput holds the electromagnetism form fields. A nil field was not supplied.
type ElectromagnetismInput struct {
	Voltage    *float64
	Resistance *float64
	Charge1    *float64
	Charge2    *float64
	Distance   *float64
}

type forceParams struct {
	Mass         *float64 `form:"mass" validate:"required,finite,gt=0.01"`
	Acceleration *float64 `form:"acceleration" validate:"required,finite,gte=0"`
}

type energyParams struct {
	Mass     *float64 `form:"mass" validate:"required,finite,gt=0.01"`
	Velocity *float64 `form:"velocity" validate:"required,finite,gte=0"`
}

type currentParams struct {
	Voltage    *float64 `form:"voltage" validate:"required,finite,gte=0"`
	Resistance *float64 `form:"resistance" validate:"required,finite,gte=0.1"`
}

type coulombParams struct {
	Charge1  *float64 `form:"charge1" validate:"required,finite"`
	Charge2  *float64 `form:"charge2" validate:"required,finite"`
	Distance *float64 `form:"distance" validate:"required,finite,gte=0.01"`
}

// messages shown when a supplied value is out of range
var messages = map[string]string{
	"mass":         "Mass must be positive.",
	"acceleration": "Acceleration cannot be negative.",
	"velocity":     "Velocity cannot be negative.",
	"voltage":      "Voltage cannot be negative.",
	"resistance":   "Resistance must be at least 0.1 Ω.",
	"distance":     "Distance must be at least 0.01 m.",
	"charge1":      "Charge must be a finite number.",
	"charge2":      "Charge must be a finite number.",
}

var validate = domain.NewValidator()

// Mechanics computes a force (F = m·a) or a kinetic energy (Eₖ = m·v²/2).
// Returns a *domain.ValidationError when inputs are missing or out of range.
func Mechanics(mode Mode, in MechanicsInput) (Result, error) {
	switch mode {
	case ModeForce:
		p := forceParams{Mass: in.Mass, Acceleration: in.Acceleration}
		if err := check(p); err != nil {
			return Result{}, err
		}
		return forceFormula.evaluate(map[string]interface{}{
			"mass":         *p.Mass,
			"acceleration": *p.Acceleration,
		})
	case ModeEnergy:
		p := energyParams{Mass: in.Mass, Velocity: in.Velocity}
		if err := check(p); err != nil {
			return Result{}, err
		}
		return energyFormula.evaluate(map[string]interface{}{
			"mass":     *p.Mass,
			"velocity": *p.Velocity,
		})
	default:
		return Result{}, unknownMode(mode)
	}
}

// Electromagnetism computes a current (I = U/R) or a Coulomb force
// (F = k·|q₁·q₂|/r²). Returns a *domain.ValidationError when inputs are
// missing or out of range.
func Electromagnetism(mode Mode, in ElectromagnetismInput) (Result, error) {
	switch mode {
	case ModeCurrent:
		p := currentParams{Voltage: in.Voltage, Resistance: in.Resistance}
		if err := check(p); err != nil {
			return Result{}, err
		}
		return currentFormula.evaluate(map[string]interface{}{
			"voltage":    *p.Voltage,
			"resistance": *p.Resistance,
		})
	case ModeCoulomb:
		p := coulombParams{Charge1: in.Charge1, Charge2: in.Charge2, Distance: in.Distance}
		if err := check(p); err != nil {
			return Result{}, err
		}
		return coulombFormula.evaluate(map[string]interface{}{
			"k":        CoulombConstant,
			"q1":       *p.Charge1,
			"q2":       *p.Charge2,
			"distance": *p.Distance,
		})
	default:
		return Result{}, unknownMode(mode)
	}
}

func check(params interface{}) error {
	return domain.FromValidator(validate.Struct(params), messages)
}

func unknownMode(mode Mode) error {
	verr := domain.NewValidationError()
	verr.Add("mode", fmt.Sprintf("Unknown calculation %q.", mode))
	return verr
}

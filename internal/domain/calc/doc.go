// Package calc implements the mechanics and electromagnetism calculators.
//
// Each calculator mode is a closed-form formula compiled once at package
// initialization and evaluated against validated inputs. Inputs are checked
// against their range constraints before any evaluation happens, so a formula
// never sees a value that would make it ill-defined (for example a resistance
// below the minimum threshold).
//
// All functions are pure: identical inputs give identical results.
package calc

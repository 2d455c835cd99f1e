package shared

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
)

// MaxFormBytes bounds the size of a submitted form body.
const MaxFormBytes = 64 << 10

// ParseForm parses the request body as a URL-encoded form, rejecting bodies
// larger than MaxFormBytes.
func ParseForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxFormBytes)
	if err := r.ParseForm(); err != nil {
		return fmt.Errorf("failed to parse form: %w", err)
	}
	return nil
}

// FormString returns the trimmed value of a posted form field.
func FormString(r *http.Request, name string) string {
	return strings.TrimSpace(r.PostForm.Get(name))
}

// FormFloat parses a posted numeric field. A blank field yields nil.
// Values that do not parse or are not finite return an error.
func FormFloat(r *http.Request, name string) (*float64, error) {
	raw := FormString(r, name)
	if raw == "" {
		return nil, nil
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("field %s: %q is not a number", name, raw)
	}
	return &v, nil
}

// Submitted reports whether a submit button with the given name was pressed.
func Submitted(r *http.Request, name string) bool {
	_, ok := r.PostForm[name]
	return ok
}

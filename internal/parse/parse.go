// internal/parse/parse.go
package parse

import (
	"regexp"
	"strconv"
	"strings"
)

// numberPattern matches a signed integer or decimal token.
var numberPattern = regexp.MustCompile(`-?\d+(\.\d+)?`)

// Error is returned when a payload holds no usable number.
type Error struct {
	Reason string
}

func (e *Error) Error() string {
	return "parse: " + e.Reason
}

// ErrNoNumber is the reason used when nothing numeric was found.
const ErrNoNumber = "no number found"

// Parse extracts one reading from a sensor payload.
//
// Order, first match wins:
//  1. JSON: depth-first search of the decoded tree. A decoded tree
//     without a number fails; the raw text is not scanned again.
//  2. First numeric token in the raw text.
//  3. Bare "0" or "1" after trimming.
func Parse(raw string) (float64, error) {
	if v, err := Decode(raw); err == nil {
		if n, ok := FirstNumber(v); ok {
			return n, nil
		}
		return 0, &Error{Reason: ErrNoNumber}
	}

	if n, ok := scanNumber(raw); ok {
		return n, nil
	}

	switch strings.TrimSpace(raw) {
	case "0":
		return 0, nil
	case "1":
		return 1, nil
	}

	return 0, &Error{Reason: ErrNoNumber}
}

func scanNumber(s string) (float64, bool) {
	m := numberPattern.FindString(s)
	if m == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

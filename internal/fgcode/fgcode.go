// Package fgcode parses finished-good profile codes and classifies their
// profile symbol into one of the eight closed families.
package fgcode

import (
	"fmt"
	"strconv"
	"strings"
)

// Code is one parsed FG code. OuterA and OuterB are the outer dimensions in
// millimetres, Length1/Length2 the cut lengths. Length2 is nil when the fifth
// field is empty (straight items).
type Code struct {
	OuterA  int
	OuterB  int
	Profile string
	Length1 int
	Length2 *int
}

type MalformedCodeError struct {
	Raw    string
	Fields int
}

func (e *MalformedCodeError) Error() string {
	return fmt.Sprintf("malformed fg code %q: expected 5 fields, got %d", e.Raw, e.Fields)
}

// Parse splits an FG code of the form A|B|PROFILE|L1|L2. Numeric fields
// parse-or-zero: a garbled number becomes 0 and the rest of the pipeline
// works with that, it is not an error. Only a wrong field count is.
func Parse(s string) (Code, error) {
	parts := strings.Split(s, "|")
	if len(parts) != 5 {
		return Code{}, &MalformedCodeError{Raw: s, Fields: len(parts)}
	}

	code := Code{
		OuterA:  parseOrZero(parts[0]),
		OuterB:  parseOrZero(parts[1]),
		Profile: strings.TrimSpace(parts[2]),
		Length1: parseOrZero(parts[3]),
	}

	if strings.TrimSpace(parts[4]) != "" {
		l2 := parseOrZero(parts[4])
		code.Length2 = &l2
	}

	return code, nil
}

func parseOrZero(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return v
}

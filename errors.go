package xsdfacet

import (
	"errors"
	"fmt"
	"strings"
)

// Diagnostic codes. Each one has a message template in package i18n.
const (
	CodeTooSmall        = "too_small"
	CodeTooBig          = "too_big"
	CodeNotComparable   = "not_comparable"
	CodeLength          = "length"
	CodeTooShort        = "too_short"
	CodeTooLong         = "too_long"
	CodePattern         = "pattern"
	CodeInvalidEnum     = "invalid_enum"
	CodeInvalidItemType = "invalid_item_type"
	CodeUnionNoMatch    = "union_no_match"
	CodeUnknownType     = "unknown_type"
	CodeStructural      = "structural"
)

// Diagnostic records one violated constraint.
type Diagnostic struct {
	Severity Severity `json:"severity"`
	// Type is the tag whose constraint was violated.
	Type TypeTag `json:"type"`
	Code string  `json:"code"`
	// Facet names the XML Schema facet, e.g. "maxInclusive".
	Facet string `json:"facet,omitempty"`
	Value Value  `json:"value"`
	// Path is a JSON Pointer into list values ("/2"), "/" for the value itself.
	Path    string `json:"path"`
	Message string `json:"message"`
	// Params carries structured parameters (e.g. {"bound":"59","inclusive":true})
	// for message rendering and observability.
	Params   map[string]any `json:"params,omitempty"`
	Children []Diagnostic   `json:"children,omitempty"`
}

// Diagnostics is the caller-owned, append-only diagnostic sink. It also
// implements error so a failed validation can travel as one.
type Diagnostics []Diagnostic

// Add appends d to the sink.
func (ds *Diagnostics) Add(d Diagnostic) { *ds = append(*ds, d) }

// Len reports the number of collected diagnostics; a nil sink has none.
func (ds *Diagnostics) Len() int {
	if ds == nil {
		return 0
	}
	return len(*ds)
}

// Error lists the type, code and path of the first diagnostics and the
// total when more were collected.
func (ds Diagnostics) Error() string {
	const shown = 3
	parts := make([]string, 0, shown)
	for i, d := range ds {
		if i == shown {
			break
		}
		parts = append(parts, fmt.Sprintf("%s: %s at %s", d.Type, d.Code, d.Path))
	}
	msg := strings.Join(parts, ", ")
	if len(ds) > shown {
		msg = fmt.Sprintf("%s (and %d more)", msg, len(ds)-shown)
	}
	return msg
}

// Err returns ds as an error, or nil when empty.
func (ds Diagnostics) Err() error {
	if len(ds) == 0 {
		return nil
	}
	return ds
}

// AsDiagnostics returns the Diagnostics wrapped in err, if any.
func AsDiagnostics(err error) (Diagnostics, bool) {
	var ds Diagnostics
	ok := errors.As(err, &ds)
	return ds, ok
}

// RepresentationError reports a value whose runtime representation does not
// fit the requested type. It signals a caller bug and is raised by panic,
// never reported as a diagnostic.
type RepresentationError struct {
	Type TypeTag
	Want Kind
	Got  Kind
}

func (e *RepresentationError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("xsdfacet: %s expects a %s value, got %s", e.Type, e.Want, e.Got)
	}
	return fmt.Sprintf("xsdfacet: expected a %s value, got %s", e.Want, e.Got)
}

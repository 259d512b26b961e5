package facet

import (
	"context"
	"math"

	xsdfacet "github.com/reoring/xsdfacet"
)

// Literals is a compiled enumeration: the declared lexical forms and the
// values they parse to, index for index.
type Literals struct {
	Lexical []string
	Values  []xsdfacet.Value
}

// Index returns the position of the literal equal to v in the value
// space, or -1. Numbers compare by value ("01" matches 1, "1.0" matches
// 1.00), strings and enum literals by their text.
func (l Literals) Index(v xsdfacet.Value) int {
	for i, w := range l.Values {
		if sameValue(v, w) {
			return i
		}
	}
	return -1
}

func sameValue(a, b xsdfacet.Value) bool {
	ak, bk := a.Kind(), b.Kind()
	switch {
	case ak == xsdfacet.KindList && bk == xsdfacet.KindList:
		x, y := a.Items(), b.Items()
		if len(x) != len(y) {
			return false
		}
		for i := range x {
			if !sameValue(x[i], y[i]) {
				return false
			}
		}
		return true
	case textual(ak) && textual(bk):
		return a.Str() == b.Str()
	case ak == xsdfacet.KindDouble && bk == xsdfacet.KindDouble:
		x, y := a.Float(), b.Float()
		// NaN is a literal like any other
		return x == y || (math.IsNaN(x) && math.IsNaN(y))
	case ak.IsNumeric() && bk.IsNumeric():
		x, okx := a.Numeric()
		y, oky := b.Numeric()
		return okx && oky && x.Cmp(y) == 0
	default:
		return xsdfacet.Equal(a, b)
	}
}

func textual(k xsdfacet.Kind) bool { return k == xsdfacet.KindString || k == xsdfacet.KindEnum }

// Enumeration checks that v equals one of the literals in the value space.
func Enumeration(ctx context.Context, tag xsdfacet.TypeTag, v xsdfacet.Value, lits Literals, sink *xsdfacet.Diagnostics) bool {
	if lits.Index(v) >= 0 {
		return true
	}
	Report(ctx, sink, xsdfacet.Diagnostic{
		Type:   tag,
		Code:   xsdfacet.CodeInvalidEnum,
		Facet:  "enumeration",
		Value:  v,
		Params: map[string]any{"literals": lits.Lexical},
	})
	return false
}

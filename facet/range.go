package facet

import (
	"context"

	"gopkg.in/inf.v0"

	xsdfacet "github.com/reoring/xsdfacet"
)

// Bound is a compile-time numeric limit.
type Bound struct {
	Value     *inf.Dec
	Inclusive bool
}

// ParseBound parses a facet literal such as "60.00".
func ParseBound(lexical string, inclusive bool) (Bound, error) {
	v, err := xsdfacet.ParseDecimal(lexical)
	if err != nil {
		return Bound{}, err
	}
	return Bound{Value: v.Dec(), Inclusive: inclusive}, nil
}

// MustBound is ParseBound for literals known to be valid.
func MustBound(lexical string, inclusive bool) Bound {
	b, err := ParseBound(lexical, inclusive)
	if err != nil {
		panic(err)
	}
	return b
}

func (b Bound) String() string { return b.Value.String() }

// Min checks v >= b (inclusive) or v > b (exclusive) using exact
// comparison. v must be an integer, decimal or double.
func Min(ctx context.Context, tag xsdfacet.TypeTag, v xsdfacet.Value, b Bound, sink *xsdfacet.Diagnostics) bool {
	facetName := "minExclusive"
	if b.Inclusive {
		facetName = "minInclusive"
	}
	cmp, ok := compare(tag, v, b)
	if !ok {
		reportIncomparable(ctx, tag, v, b, facetName, sink)
		return false
	}
	valid := cmp > 0 || (b.Inclusive && cmp == 0)
	if !valid {
		Report(ctx, sink, xsdfacet.Diagnostic{
			Type:   tag,
			Code:   xsdfacet.CodeTooSmall,
			Facet:  facetName,
			Value:  v,
			Params: map[string]any{"bound": b.String(), "inclusive": b.Inclusive},
		})
	}
	return valid
}

// Max checks v <= b (inclusive) or v < b (exclusive) using exact
// comparison. v must be an integer, decimal or double.
func Max(ctx context.Context, tag xsdfacet.TypeTag, v xsdfacet.Value, b Bound, sink *xsdfacet.Diagnostics) bool {
	facetName := "maxExclusive"
	if b.Inclusive {
		facetName = "maxInclusive"
	}
	cmp, ok := compare(tag, v, b)
	if !ok {
		reportIncomparable(ctx, tag, v, b, facetName, sink)
		return false
	}
	valid := cmp < 0 || (b.Inclusive && cmp == 0)
	if !valid {
		Report(ctx, sink, xsdfacet.Diagnostic{
			Type:   tag,
			Code:   xsdfacet.CodeTooBig,
			Facet:  facetName,
			Value:  v,
			Params: map[string]any{"bound": b.String(), "inclusive": b.Inclusive},
		})
	}
	return valid
}

func compare(tag xsdfacet.TypeTag, v xsdfacet.Value, b Bound) (int, bool) {
	if !v.Kind().IsNumeric() {
		panic(&xsdfacet.RepresentationError{Type: tag, Want: xsdfacet.KindDecimal, Got: v.Kind()})
	}
	d, ok := v.Numeric()
	if !ok {
		return 0, false
	}
	return d.Cmp(b.Value), true
}

func reportIncomparable(ctx context.Context, tag xsdfacet.TypeTag, v xsdfacet.Value, b Bound, facetName string, sink *xsdfacet.Diagnostics) {
	Report(ctx, sink, xsdfacet.Diagnostic{
		Type:   tag,
		Code:   xsdfacet.CodeNotComparable,
		Facet:  facetName,
		Value:  v,
		Params: map[string]any{"bound": b.String(), "inclusive": b.Inclusive},
	})
}

package facet

import (
	"context"

	xsdfacet "github.com/reoring/xsdfacet"
)

// Length checks that a list has exactly n items (or a string n characters).
func Length(ctx context.Context, tag xsdfacet.TypeTag, v xsdfacet.Value, n int, sink *xsdfacet.Diagnostics) bool {
	l := v.Len()
	if l == n {
		return true
	}
	reportLength(ctx, tag, v, xsdfacet.CodeLength, "length", l, n, sink)
	return false
}

// MinLength checks len(v) >= n. Length bounds are always inclusive.
func MinLength(ctx context.Context, tag xsdfacet.TypeTag, v xsdfacet.Value, n int, sink *xsdfacet.Diagnostics) bool {
	l := v.Len()
	if l >= n {
		return true
	}
	reportLength(ctx, tag, v, xsdfacet.CodeTooShort, "minLength", l, n, sink)
	return false
}

// MaxLength checks len(v) <= n.
func MaxLength(ctx context.Context, tag xsdfacet.TypeTag, v xsdfacet.Value, n int, sink *xsdfacet.Diagnostics) bool {
	l := v.Len()
	if l <= n {
		return true
	}
	reportLength(ctx, tag, v, xsdfacet.CodeTooLong, "maxLength", l, n, sink)
	return false
}

func reportLength(ctx context.Context, tag xsdfacet.TypeTag, v xsdfacet.Value, code, facetName string, l, n int, sink *xsdfacet.Diagnostics) {
	Report(ctx, sink, xsdfacet.Diagnostic{
		Type:   tag,
		Code:   code,
		Facet:  facetName,
		Value:  v,
		Params: map[string]any{"length": l, "bound": n},
	})
}

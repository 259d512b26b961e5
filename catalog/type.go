package catalog

import (
	"context"

	xsdfacet "github.com/reoring/xsdfacet"
	"github.com/reoring/xsdfacet/facet"
	"github.com/reoring/xsdfacet/rules"
)

// Variety is the XML Schema variety of a compiled type.
type Variety uint8

const (
	Atomic Variety = iota
	ListOf
	UnionOf
	Composite
)

func (v Variety) String() string {
	switch v {
	case Atomic:
		return "atomic"
	case ListOf:
		return "list"
	case UnionOf:
		return "union"
	default:
		return "object"
	}
}

// Type is a compiled type definition. It is immutable.
type Type struct {
	Tag     xsdfacet.TypeTag
	Doc     string
	Variety Variety
	// Kind is the primitive representation of atomic types.
	Kind    xsdfacet.Kind
	Base    *Type
	Item    *Type
	Members []*Type

	// enumOwner is the nearest type in the base chain declaring an
	// enumeration; its literals are the only values accepted.
	enumOwner xsdfacet.TypeTag
	enum      facet.Literals
	own       facets
	check     xsdfacet.Func
}

type facets struct {
	min, max                     *facet.Bound
	length, minLength, maxLength *int
	patterns                     facet.Groups
	enumeration                  facet.Literals
}

// DerivesFrom reports whether t is tag or restricts it, directly or not.
func (t *Type) DerivesFrom(tag xsdfacet.TypeTag) bool {
	for cur := t; cur != nil; cur = cur.Base {
		if cur.Tag == tag {
			return true
		}
	}
	return false
}

// Enumeration returns the literals allowed by the nearest enumeration in
// the base chain, or nil.
func (t *Type) Enumeration() []string { return append([]string(nil), t.enum.Lexical...) }

// Accepts reports whether v has a representation t can validate.
func (t *Type) Accepts(v xsdfacet.Value) bool {
	switch t.Variety {
	case ListOf:
		return v.Kind() == xsdfacet.KindList
	case UnionOf:
		for _, m := range t.Members {
			if m.Accepts(v) {
				return true
			}
		}
		return false
	case Composite:
		return v.Kind() == xsdfacet.KindObject
	}
	switch k := v.Kind(); {
	case k == t.Kind:
		return true
	case t.Kind == xsdfacet.KindDecimal && k == xsdfacet.KindInteger:
		return true
	case t.Kind == xsdfacet.KindString && k == xsdfacet.KindEnum:
		// an enum literal is a string; the enumeration facets decide
		// whether it belongs, whichever type in the chain owns it
		return true
	default:
		return false
	}
}

// Check validates v against t and its whole base chain without the
// representation gate of Catalog.Validate.
func (t *Type) Check(ctx context.Context, v xsdfacet.Value, sink *xsdfacet.Diagnostics) bool {
	return t.check(ctx, v, sink)
}

func (t *Type) want() xsdfacet.Kind {
	switch t.Variety {
	case ListOf:
		return xsdfacet.KindList
	case Composite:
		return xsdfacet.KindObject
	default:
		return t.Kind
	}
}

// gated panics on values t cannot represent. Unions report instead, as
// picking a member by representation is part of their semantics.
func (t *Type) gated() xsdfacet.Func {
	if t.Variety == UnionOf {
		return t.check
	}
	return func(ctx context.Context, v xsdfacet.Value, sink *xsdfacet.Diagnostics) bool {
		if !t.Accepts(v) {
			panic(&xsdfacet.RepresentationError{Type: t.Tag, Want: t.want(), Got: v.Kind()})
		}
		return t.check(ctx, v, sink)
	}
}

// build composes the checks of t: the base type (or the variety's own
// structure) first, then the facets declared at this step.
func (t *Type) build(structural xsdfacet.StructuralValidator) {
	var checks []xsdfacet.Func
	switch {
	case t.Variety == Composite:
		// the structural validator sees the most derived tag
		checks = append(checks, structuralCheck(t.Tag, structural))
	case t.Base != nil:
		checks = append(checks, t.Base.check)
	case t.Variety == ListOf:
		checks = append(checks, rules.Items(t.Tag, t.Item.Tag, t.Item.Accepts, t.Item.check))
	case t.Variety == UnionOf:
		members := make([]rules.Member, len(t.Members))
		for i, m := range t.Members {
			members[i] = rules.Member{Tag: m.Tag, Accepts: m.Accepts, Validate: m.check}
		}
		checks = append(checks, rules.Union(t.Tag, members...))
	}
	checks = append(checks, t.own.funcs(t.Tag)...)
	t.check = rules.All(checks...)
}

func (f facets) funcs(tag xsdfacet.TypeTag) []xsdfacet.Func {
	var out []xsdfacet.Func
	if lits := f.enumeration; len(lits.Values) > 0 {
		out = append(out, func(ctx context.Context, v xsdfacet.Value, sink *xsdfacet.Diagnostics) bool {
			return facet.Enumeration(ctx, tag, v, lits, sink)
		})
	}
	if g := f.patterns; len(g) > 0 {
		out = append(out, func(ctx context.Context, v xsdfacet.Value, sink *xsdfacet.Diagnostics) bool {
			return facet.Pattern(ctx, tag, v, g, sink)
		})
	}
	if n := f.length; n != nil {
		out = append(out, func(ctx context.Context, v xsdfacet.Value, sink *xsdfacet.Diagnostics) bool {
			return facet.Length(ctx, tag, v, *n, sink)
		})
	}
	if n := f.minLength; n != nil {
		out = append(out, func(ctx context.Context, v xsdfacet.Value, sink *xsdfacet.Diagnostics) bool {
			return facet.MinLength(ctx, tag, v, *n, sink)
		})
	}
	if n := f.maxLength; n != nil {
		out = append(out, func(ctx context.Context, v xsdfacet.Value, sink *xsdfacet.Diagnostics) bool {
			return facet.MaxLength(ctx, tag, v, *n, sink)
		})
	}
	if b := f.min; b != nil {
		out = append(out, func(ctx context.Context, v xsdfacet.Value, sink *xsdfacet.Diagnostics) bool {
			return facet.Min(ctx, tag, v, *b, sink)
		})
	}
	if b := f.max; b != nil {
		out = append(out, func(ctx context.Context, v xsdfacet.Value, sink *xsdfacet.Diagnostics) bool {
			return facet.Max(ctx, tag, v, *b, sink)
		})
	}
	return out
}

func structuralCheck(tag xsdfacet.TypeTag, sv xsdfacet.StructuralValidator) xsdfacet.Func {
	if sv == nil {
		sv = xsdfacet.Permissive
	}
	return func(ctx context.Context, v xsdfacet.Value, sink *xsdfacet.Diagnostics) bool {
		before := sink.Len()
		if sv.ValidateStructure(ctx, tag, v.Object(), sink) {
			return true
		}
		if sink.Len() == before {
			facet.Report(ctx, sink, xsdfacet.Diagnostic{
				Type:   tag,
				Code:   xsdfacet.CodeStructural,
				Value:  v,
				Params: map[string]any{"type": string(tag)},
			})
		}
		return false
	}
}

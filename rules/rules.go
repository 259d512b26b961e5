package rules

import (
	"context"
	"strconv"

	xsdfacet "github.com/reoring/xsdfacet"
	"github.com/reoring/xsdfacet/facet"
)

// ---------- Combinators ----------

// All runs checks in order and is valid only when every check is. Without a
// sink it stops at the first failure; with one it keeps going so that every
// violation is reported.
func All(checks ...xsdfacet.Func) xsdfacet.Func {
	return func(ctx context.Context, v xsdfacet.Value, sink *xsdfacet.Diagnostics) bool {
		ok := true
		for _, c := range checks {
			if c == nil {
				continue
			}
			if !c(ctx, v, sink) {
				ok = false
				if sink == nil {
					return false
				}
			}
		}
		return ok
	}
}

// Member is one alternative of a union type.
type Member struct {
	Tag xsdfacet.TypeTag
	// Accepts reports whether a value has a representation this member can
	// validate. Nil accepts everything.
	Accepts  func(xsdfacet.Value) bool
	Validate xsdfacet.Func
}

// Union is valid when any member validates v; members are tried in
// declaration order and the first match wins. Diagnostics of failed members
// stay private. When no member matches a single union_no_match diagnostic
// is reported, carrying the closest attempt (fewest diagnostics, earlier
// member on ties) as its children.
func Union(tag xsdfacet.TypeTag, members ...Member) xsdfacet.Func {
	names := make([]string, len(members))
	for i, m := range members {
		names[i] = string(m.Tag)
	}
	return func(ctx context.Context, v xsdfacet.Value, sink *xsdfacet.Diagnostics) bool {
		var best xsdfacet.Diagnostics
		bestSet := false
		for _, m := range members {
			if m.Accepts != nil && !m.Accepts(v) {
				continue
			}
			if m.Validate == nil {
				return true
			}
			if sink == nil {
				if m.Validate(ctx, v, nil) {
					return true
				}
				continue
			}
			attempt := xsdfacet.Diagnostics{}
			if m.Validate(ctx, v, &attempt) {
				return true
			}
			if !bestSet || len(attempt) < len(best) {
				best = attempt
				bestSet = true
			}
		}
		facet.Report(ctx, sink, xsdfacet.Diagnostic{
			Type:     tag,
			Code:     xsdfacet.CodeUnionNoMatch,
			Value:    v,
			Params:   map[string]any{"members": names},
			Children: best,
		})
		return false
	}
}

// Items validates a list value item by item. Each item must first have a
// representation accepted by accepts (nil accepts everything); a mismatch is
// reported as invalid_item_type. Accepted items go through item, and their
// diagnostics are re-rooted under the item index ("/2").
func Items(tag, itemTag xsdfacet.TypeTag, accepts func(xsdfacet.Value) bool, item xsdfacet.Func) xsdfacet.Func {
	return func(ctx context.Context, v xsdfacet.Value, sink *xsdfacet.Diagnostics) bool {
		if v.Kind() != xsdfacet.KindList {
			panic(&xsdfacet.RepresentationError{Type: tag, Want: xsdfacet.KindList, Got: v.Kind()})
		}
		ok := true
		for i, it := range v.Items() {
			if accepts != nil && !accepts(it) {
				ok = false
				facet.Report(ctx, sink, xsdfacet.Diagnostic{
					Type:   tag,
					Code:   xsdfacet.CodeInvalidItemType,
					Value:  it,
					Path:   indexPath(i, "/"),
					Params: map[string]any{"expected": string(itemTag)},
				})
				if sink == nil {
					return false
				}
				continue
			}
			if item == nil {
				continue
			}
			if sink == nil {
				if !item(ctx, it, nil) {
					return false
				}
				continue
			}
			var local xsdfacet.Diagnostics
			if !item(ctx, it, &local) {
				ok = false
			}
			for _, d := range local {
				sink.Add(rebase(i, d))
			}
		}
		return ok
	}
}

// ------- helpers -------

func rebase(i int, d xsdfacet.Diagnostic) xsdfacet.Diagnostic {
	d.Path = indexPath(i, d.Path)
	if len(d.Children) > 0 {
		children := make([]xsdfacet.Diagnostic, len(d.Children))
		for j, c := range d.Children {
			children[j] = rebase(i, c)
		}
		d.Children = children
	}
	return d
}

func indexPath(i int, rest string) string {
	p := "/" + strconv.Itoa(i)
	if rest == "" || rest == "/" {
		return p
	}
	return p + rest
}

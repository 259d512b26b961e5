// Package facet implements the XML Schema constraining facets as
// independent checks: numeric bounds, length bounds, patterns and
// enumerations.
//
// Every check shares one calling convention:
//
//	ok := facet.Max(ctx, tag, v, bound, true, sink)
//
// It returns whether v satisfies the facet and, when sink is non-nil,
// appends exactly one Diagnostic on failure. Checks never panic on invalid
// data; they panic only when v has a representation the facet cannot apply
// to, which is a caller bug.
package facet

// Package xsdfacet validates values against the simple type restrictions of
// XML Schema:
//
// - Range facets (minInclusive, minExclusive, maxInclusive, maxExclusive) on exact numbers
// - Length facets on strings and lists, counting characters and items
// - Pattern facets in XML Schema regular expression syntax
// - Enumerations, item-wise list checks and first-match unions
//
// The root package holds the value model, the diagnostic model and the
// Dispatcher that maps a TypeTag to its validation Func. Facet checks live
// under facet/, their composition under rules/, and compiled type catalogs
// under catalog/ with the built-ins in xmltype/ and GML 3.1.1 in gml311/.
// The CLI is under cmd/xsdfacet.
//
// Design policy:
// - Validation never mutates its input and keeps no state between calls.
// - A nil sink stops at the first violation; a non-nil sink collects every violation in order.
// - A value whose representation does not fit its type is a caller bug and panics with *RepresentationError.
//
// Typical usage:
//
//	c := gml311.Catalog()
//	v, err := c.Parse(ctx, gml311.ArcMinutesType, "61")
//	var sink xsdfacet.Diagnostics
//	if !c.Validate(ctx, gml311.ArcMinutesType, v, &sink) {
//		return sink.Err()
//	}
package xsdfacet

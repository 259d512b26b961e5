// Package gml311 carries the simple type constraints of GML 3.1.1 as a
// compiled catalog, plus typed helpers for the most used measures.
package gml311

import (
	"context"
	_ "embed"
	"fmt"
	"math/big"
	"sync"

	"gopkg.in/inf.v0"

	xsdfacet "github.com/reoring/xsdfacet"
	"github.com/reoring/xsdfacet/catalog"
	"github.com/reoring/xsdfacet/xmltype"
)

//go:embed gml311.yaml
var source []byte

const (
	ArcMinutesType             xsdfacet.TypeTag = "gml:ArcMinutesType"
	ArcSecondsType             xsdfacet.TypeTag = "gml:ArcSecondsType"
	DecimalMinutesType         xsdfacet.TypeTag = "gml:DecimalMinutesType"
	DegreeValueType            xsdfacet.TypeTag = "gml:DegreeValueType"
	CountExtentType            xsdfacet.TypeTag = "gml:CountExtentType"
	NullEnumeration            xsdfacet.TypeTag = "gml:NullEnumeration"
	NullEnumerationMember0     xsdfacet.TypeTag = "gml:NullEnumerationMember0"
	NullEnumerationMember1     xsdfacet.TypeTag = "gml:NullEnumerationMember1"
	NullType                   xsdfacet.TypeTag = "gml:NullType"
	BooleanOrNull              xsdfacet.TypeTag = "gml:BooleanOrNull"
	DoubleOrNull               xsdfacet.TypeTag = "gml:DoubleOrNull"
	IntegerOrNull              xsdfacet.TypeTag = "gml:IntegerOrNull"
	NameOrNull                 xsdfacet.TypeTag = "gml:NameOrNull"
	StringOrNull               xsdfacet.TypeTag = "gml:StringOrNull"
	IntegerList                xsdfacet.TypeTag = "gml:IntegerList"
	IntegerOrNullList          xsdfacet.TypeTag = "gml:IntegerOrNullList"
	DoubleList                 xsdfacet.TypeTag = "gml:DoubleList"
	CalDate                    xsdfacet.TypeTag = "gml:CalDate"
	TimePositionUnion          xsdfacet.TypeTag = "gml:TimePositionUnion"
	TimeUnitType               xsdfacet.TypeTag = "gml:TimeUnitType"
	TimeIndeterminateValueType xsdfacet.TypeTag = "gml:TimeIndeterminateValueType"
	SignType                   xsdfacet.TypeTag = "gml:SignType"
	DirectionType              xsdfacet.TypeTag = "gml:DirectionType"
	CompassPointEnumeration    xsdfacet.TypeTag = "gml:CompassPointEnumeration"
	CurveInterpolationType     xsdfacet.TypeTag = "gml:CurveInterpolationType"
	SurfaceInterpolationType   xsdfacet.TypeTag = "gml:SurfaceInterpolationType"
	AbstractGeometryType       xsdfacet.TypeTag = "gml:AbstractGeometryType"
	PointType                  xsdfacet.TypeTag = "gml:PointType"
	FeatureCollectionType      xsdfacet.TypeTag = "gml:FeatureCollectionType"
)

// Document returns the embedded catalog document.
func Document() (catalog.Document, error) {
	docs, err := catalog.LoadYAML(source)
	if err != nil {
		return catalog.Document{}, fmt.Errorf("gml311: %w", err)
	}
	return docs[0], nil
}

// Compile builds the GML catalog and the built-ins it imports with opts.
func Compile(opts catalog.Options) (*catalog.Catalog, error) {
	xs, err := xmltype.Compile(opts)
	if err != nil {
		return nil, err
	}
	return compile(opts, xs)
}

func compile(opts catalog.Options, xs *catalog.Catalog) (*catalog.Catalog, error) {
	doc, err := Document()
	if err != nil {
		return nil, err
	}
	return catalog.Compile(doc, opts, xs)
}

// Catalog returns the shared GML catalog compiled with default options:
// unknown tags are accepted and composite types are not inspected.
var Catalog = sync.OnceValue(func() *catalog.Catalog {
	c, err := compile(catalog.Options{}, xmltype.Catalog())
	if err != nil {
		panic(err)
	}
	return c
})

// ValidateArcMinutes checks 0 <= v <= 59.
func ValidateArcMinutes(ctx context.Context, v *big.Int, sink *xsdfacet.Diagnostics) bool {
	return Catalog().Validate(ctx, ArcMinutesType, xsdfacet.Integer(v), sink)
}

// ValidateArcSeconds checks 0.00 <= v < 60.00.
func ValidateArcSeconds(ctx context.Context, v *inf.Dec, sink *xsdfacet.Diagnostics) bool {
	return Catalog().Validate(ctx, ArcSecondsType, xsdfacet.Decimal(v), sink)
}

// ValidateDecimalMinutes checks 0.00 <= v < 60.00.
func ValidateDecimalMinutes(ctx context.Context, v *inf.Dec, sink *xsdfacet.Diagnostics) bool {
	return Catalog().Validate(ctx, DecimalMinutesType, xsdfacet.Decimal(v), sink)
}

// ValidateDegreeValue checks 0 <= v <= 359.
func ValidateDegreeValue(ctx context.Context, v *big.Int, sink *xsdfacet.Diagnostics) bool {
	return Catalog().Validate(ctx, DegreeValueType, xsdfacet.Integer(v), sink)
}

// ValidateCountExtent checks a pair of integers or nil reasons.
func ValidateCountExtent(ctx context.Context, items []xsdfacet.Value, sink *xsdfacet.Diagnostics) bool {
	return Catalog().Validate(ctx, CountExtentType, xsdfacet.List(items...), sink)
}

// ValidateNullEnumeration checks a nil reason: one of the fixed reasons or
// "other:" followed by at least two word characters.
func ValidateNullEnumeration(ctx context.Context, s string, sink *xsdfacet.Diagnostics) bool {
	return Catalog().Validate(ctx, NullEnumeration, xsdfacet.String(s), sink)
}

// ValidateTimeUnit checks a time unit name or an "other:" extension.
func ValidateTimeUnit(ctx context.Context, s string, sink *xsdfacet.Diagnostics) bool {
	return Catalog().Validate(ctx, TimeUnitType, xsdfacet.String(s), sink)
}

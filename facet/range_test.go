package facet_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	xsdfacet "github.com/reoring/xsdfacet"
	"github.com/reoring/xsdfacet/facet"
)

func TestMax_InclusiveIntegerBound(t *testing.T) {
	ctx := context.Background()
	b := facet.MustBound("59", true)

	require.True(t, facet.Max(ctx, "gml:ArcMinutesType", xsdfacet.Int64(59), b, nil))

	var ds xsdfacet.Diagnostics
	require.False(t, facet.Max(ctx, "gml:ArcMinutesType", xsdfacet.Int64(60), b, &ds))
	require.Len(t, ds, 1)
	d := ds[0]
	require.Equal(t, xsdfacet.CodeTooBig, d.Code)
	require.Equal(t, "maxInclusive", d.Facet)
	require.Equal(t, xsdfacet.TypeTag("gml:ArcMinutesType"), d.Type)
	require.Equal(t, "/", d.Path)
	require.Equal(t, "59", d.Params["bound"])
	require.Equal(t, xsdfacet.Error, d.Severity)
	require.Equal(t, "value 60 is greater than the maximum 59", d.Message)
}

func TestMinMax_DecimalBoundsAreExact(t *testing.T) {
	ctx := context.Background()
	lo := facet.MustBound("0.00", true)
	hi := facet.MustBound("60.00", false)
	check := func(s string) bool {
		v := xsdfacet.MustDecimal(s)
		return facet.Min(ctx, "gml:ArcSecondsType", v, lo, nil) && facet.Max(ctx, "gml:ArcSecondsType", v, hi, nil)
	}

	require.True(t, check("0.00"))
	require.True(t, check("59.99"))
	require.True(t, check("59.999999999999999999999"))
	require.False(t, check("60.00"))
	require.False(t, check("60"))
	require.False(t, check("-0.01"))
}

func TestMax_ExclusiveMessage(t *testing.T) {
	var ds xsdfacet.Diagnostics
	ok := facet.Max(context.Background(), "gml:ArcSecondsType", xsdfacet.MustDecimal("60.00"), facet.MustBound("60.00", false), &ds)
	require.False(t, ok)
	require.Equal(t, "maxExclusive", ds[0].Facet)
	require.Equal(t, false, ds[0].Params["inclusive"])
	require.Equal(t, "value 60.00 must be less than 60.00", ds[0].Message)
}

func TestMin_ExclusiveRejectsEqual(t *testing.T) {
	b := facet.MustBound("0", false)
	require.False(t, facet.Min(context.Background(), "xs:positiveInteger", xsdfacet.Int64(0), b, nil))
	require.True(t, facet.Min(context.Background(), "xs:positiveInteger", xsdfacet.Int64(1), b, nil))
}

func TestRange_DoublesAndSpecialValues(t *testing.T) {
	ctx := context.Background()
	b := facet.MustBound("1.5", true)
	require.True(t, facet.Max(ctx, "t", xsdfacet.Double(1.5), b, nil))
	require.False(t, facet.Max(ctx, "t", xsdfacet.Double(1.5000001), b, nil))

	var ds xsdfacet.Diagnostics
	require.False(t, facet.Max(ctx, "t", xsdfacet.Double(math.NaN()), b, &ds))
	require.False(t, facet.Min(ctx, "t", xsdfacet.Double(math.Inf(1)), b, &ds))
	require.Len(t, ds, 2)
	require.Equal(t, xsdfacet.CodeNotComparable, ds[0].Code)
	require.Equal(t, xsdfacet.CodeNotComparable, ds[1].Code)
}

func TestRange_NonNumericPanics(t *testing.T) {
	defer func() {
		r := recover()
		re, ok := r.(*xsdfacet.RepresentationError)
		require.True(t, ok, "expected *RepresentationError, got %T", r)
		require.Equal(t, xsdfacet.TypeTag("gml:ArcMinutesType"), re.Type)
		require.Equal(t, xsdfacet.KindString, re.Got)
	}()
	facet.Max(context.Background(), "gml:ArcMinutesType", xsdfacet.String("59"), facet.MustBound("59", true), nil)
}

func TestParseBound_Invalid(t *testing.T) {
	_, err := facet.ParseBound("5x", true)
	require.Error(t, err)
}

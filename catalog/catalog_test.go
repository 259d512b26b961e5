package catalog_test

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	xsdfacet "github.com/reoring/xsdfacet"
	"github.com/reoring/xsdfacet/catalog"
)

const baseYAML = `
name: xs
types:
  - name: xs:integer
    kind: integer
  - name: xs:nonNegativeInteger
    base: xs:integer
    minInclusive: "0"
  - name: xs:decimal
    kind: decimal
  - name: xs:string
    kind: string
  - name: xs:boolean
    kind: boolean
`

const demoYAML = `
name: demo
imports: [xs]
types:
  - name: demo:Minutes
    doc: minutes of arc
    base: xs:nonNegativeInteger
    maxInclusive: "59"
  - name: demo:Seconds
    base: xs:decimal
    minInclusive: "0.00"
    maxExclusive: "60.00"
  - name: demo:Null
    base: xs:string
    enumeration: [missing, unknown]
  - name: demo:Other
    base: xs:string
    patterns: ['other:\w{2,}']
  - name: demo:NullReason
    union: [demo:Null, demo:Other]
  - name: demo:IntegerOrNull
    union: [demo:NullReason, xs:integer]
  - name: demo:IntegerOrNullList
    list: demo:IntegerOrNull
  - name: demo:Pair
    base: demo:IntegerOrNullList
    minLength: 2
    maxLength: 2
  - name: demo:Feature
    object: true
`

func compileDemo(t *testing.T, opts catalog.Options) *catalog.Catalog {
	t.Helper()
	docs, err := catalog.LoadYAML([]byte(baseYAML + "---" + demoYAML))
	require.NoError(t, err)
	require.Len(t, docs, 2)
	c, err := catalog.CompileAll(docs, opts)
	require.NoError(t, err)
	return c
}

func TestCompile_BaseChainRunsFirst(t *testing.T) {
	c := compileDemo(t, catalog.Options{})
	ctx := context.Background()

	require.True(t, c.Validate(ctx, "demo:Minutes", xsdfacet.Int64(59), nil))
	require.True(t, c.Validate(ctx, "demo:Minutes", xsdfacet.Int64(0), nil))

	var ds xsdfacet.Diagnostics
	require.False(t, c.Validate(ctx, "demo:Minutes", xsdfacet.Int64(60), &ds))
	require.Len(t, ds, 1)
	require.Equal(t, xsdfacet.TypeTag("demo:Minutes"), ds[0].Type)
	require.Equal(t, "59", ds[0].Params["bound"])

	ds = nil
	require.False(t, c.Validate(ctx, "demo:Minutes", xsdfacet.Int64(-1), &ds))
	require.Len(t, ds, 1)
	require.Equal(t, xsdfacet.TypeTag("xs:nonNegativeInteger"), ds[0].Type)
	require.Equal(t, xsdfacet.CodeTooSmall, ds[0].Code)
}

func TestCompile_DecimalRange(t *testing.T) {
	c := compileDemo(t, catalog.Options{})
	ctx := context.Background()
	require.True(t, c.Validate(ctx, "demo:Seconds", xsdfacet.MustDecimal("0.00"), nil))
	require.True(t, c.Validate(ctx, "demo:Seconds", xsdfacet.MustDecimal("59.99"), nil))
	require.True(t, c.Validate(ctx, "demo:Seconds", xsdfacet.Integer(big.NewInt(30)), nil))
	require.False(t, c.Validate(ctx, "demo:Seconds", xsdfacet.MustDecimal("60.00"), nil))
}

func TestCompile_ListRestriction(t *testing.T) {
	c := compileDemo(t, catalog.Options{})
	ctx := context.Background()
	list := func(items ...xsdfacet.Value) xsdfacet.Value { return xsdfacet.List(items...) }

	require.False(t, c.Validate(ctx, "demo:Pair", list(xsdfacet.Int64(3)), nil))
	require.True(t, c.Validate(ctx, "demo:Pair", list(xsdfacet.Int64(3), xsdfacet.Int64(7)), nil))
	require.True(t, c.Validate(ctx, "demo:Pair", list(xsdfacet.Int64(3), xsdfacet.String("missing")), nil))
	require.False(t, c.Validate(ctx, "demo:Pair", list(xsdfacet.Int64(3), xsdfacet.Int64(7), xsdfacet.Int64(9)), nil))

	var ds xsdfacet.Diagnostics
	require.False(t, c.Validate(ctx, "demo:Pair", list(xsdfacet.Int64(3), xsdfacet.Bool(true)), &ds))
	require.Len(t, ds, 1)
	require.Equal(t, xsdfacet.CodeInvalidItemType, ds[0].Code)
	require.Equal(t, "/1", ds[0].Path)
}

func TestCompile_UnionFirstMatch(t *testing.T) {
	c := compileDemo(t, catalog.Options{})
	ctx := context.Background()
	for _, v := range []xsdfacet.Value{
		xsdfacet.String("missing"),
		xsdfacet.String("other:ab"),
		xsdfacet.Enum("demo:Null", "unknown"),
		xsdfacet.Int64(-4),
	} {
		var ds xsdfacet.Diagnostics
		require.True(t, c.Validate(ctx, "demo:IntegerOrNull", v, &ds), v.String())
		require.Empty(t, ds)
	}

	var ds xsdfacet.Diagnostics
	require.False(t, c.Validate(ctx, "demo:IntegerOrNull", xsdfacet.String("other:a"), &ds))
	require.Len(t, ds, 1)
	require.Equal(t, xsdfacet.CodeUnionNoMatch, ds[0].Code)
	require.NotEmpty(t, ds[0].Children)

	// unions report instead of panicking on foreign representations
	ds = nil
	require.False(t, c.Validate(ctx, "demo:IntegerOrNull", xsdfacet.Bool(true), &ds))
	require.Equal(t, xsdfacet.CodeUnionNoMatch, ds[0].Code)
}

func TestCompile_RepresentationMismatchPanics(t *testing.T) {
	c := compileDemo(t, catalog.Options{})
	require.Panics(t, func() {
		c.Validate(context.Background(), "demo:Minutes", xsdfacet.String("59"), nil)
	})
	require.Panics(t, func() {
		c.Validate(context.Background(), "demo:Pair", xsdfacet.Int64(1), nil)
	})
}

func TestCompile_UnknownTags(t *testing.T) {
	ctx := context.Background()
	c := compileDemo(t, catalog.Options{})
	require.True(t, c.Validate(ctx, "demo:Missing", xsdfacet.Int64(1), nil))

	strict := compileDemo(t, catalog.Options{Options: xsdfacet.Options{UnknownTypes: xsdfacet.UnknownReject}})
	var ds xsdfacet.Diagnostics
	require.False(t, strict.Validate(ctx, "demo:Missing", xsdfacet.Int64(1), &ds))
	require.Equal(t, xsdfacet.CodeUnknownType, ds[0].Code)
	// dependency types stay dispatchable
	require.True(t, strict.Validate(ctx, "xs:integer", xsdfacet.Int64(1), nil))
}

type denyAll struct{ calls int }

func (d *denyAll) ValidateStructure(_ context.Context, tag xsdfacet.TypeTag, _ any, _ *xsdfacet.Diagnostics) bool {
	d.calls++
	return tag != "demo:Feature"
}

func TestCompile_ObjectsDelegateToStructuralValidator(t *testing.T) {
	ctx := context.Background()
	c := compileDemo(t, catalog.Options{})
	require.True(t, c.Validate(ctx, "demo:Feature", xsdfacet.Object(map[string]any{}), nil))

	sv := &denyAll{}
	c = compileDemo(t, catalog.Options{Structural: sv})
	var ds xsdfacet.Diagnostics
	require.False(t, c.Validate(ctx, "demo:Feature", xsdfacet.Object(struct{}{}), &ds))
	require.Equal(t, 1, sv.calls)
	require.Len(t, ds, 1)
	require.Equal(t, xsdfacet.CodeStructural, ds[0].Code)
}

func TestCompile_Errors(t *testing.T) {
	base, err := catalog.LoadYAML([]byte(baseYAML))
	require.NoError(t, err)
	xs := catalog.MustCompile(base[0], catalog.Options{})

	cases := map[string]catalog.Def{
		"unknown base":     {Name: "a", Base: "b"},
		"no variety":       {Name: "a"},
		"two varieties":    {Name: "a", Kind: "string", Base: "xs:string"},
		"bad kind":         {Name: "a", Kind: "list"},
		"range on string":  {Name: "a", Base: "xs:string", MaxInclusive: "1"},
		"length on number": {Name: "a", Base: "xs:integer", MinLength: ptr(1)},
		"bad bound":        {Name: "a", Base: "xs:integer", MaxInclusive: "x"},
		"min over max":     {Name: "a", Base: "xs:integer", MinInclusive: "5", MaxInclusive: "4"},
		"both mins":        {Name: "a", Base: "xs:integer", MinInclusive: "5", MinExclusive: "4"},
		"bad pattern":      {Name: "a", Base: "xs:string", Patterns: []string{`[a-[b]]`}},
		"bad enum literal": {Name: "a", Base: "xs:integer", Enumeration: []string{"one"}},
		"object facets":    {Name: "a", Object: true, Patterns: []string{"x"}},
		"self reference":   {Name: "a", Base: "a"},
		"list of objects":  {Name: "a", List: "o"},
	}
	for name, def := range cases {
		t.Run(name, func(t *testing.T) {
			doc := catalog.Document{Name: "bad", Types: []catalog.Def{def, {Name: "o", Object: true}}}
			_, err := catalog.Compile(doc, catalog.Options{}, xs)
			require.Error(t, err)
			require.True(t, errors.Is(err, catalog.ErrInvalidDef), err.Error())
		})
	}
}

func TestCompile_DuplicateAndMissingImport(t *testing.T) {
	_, err := catalog.Compile(catalog.Document{Name: "d", Types: []catalog.Def{
		{Name: "a", Kind: "string"}, {Name: "a", Kind: "string"},
	}}, catalog.Options{})
	require.ErrorIs(t, err, catalog.ErrInvalidDef)

	_, err = catalog.Compile(catalog.Document{Name: "d", Imports: []string{"xs"}}, catalog.Options{})
	require.ErrorIs(t, err, catalog.ErrInvalidDef)
}

func TestLoadJSON(t *testing.T) {
	doc, err := catalog.LoadJSON([]byte(`{"name":"j","types":[{"name":"j:Small","kind":"integer","maxExclusive":"10"}]}`))
	require.NoError(t, err)
	c, err := catalog.Compile(doc, catalog.Options{})
	require.NoError(t, err)
	require.True(t, c.Validate(context.Background(), "j:Small", xsdfacet.Int64(9), nil))
	require.False(t, c.Validate(context.Background(), "j:Small", xsdfacet.Int64(10), nil))

	_, err = catalog.LoadJSON([]byte(`{"name":"j","typos":[]}`))
	require.Error(t, err)

	_, err = catalog.LoadJSON([]byte(`{"name":"j","types":[{"name":"j:Small","kind":"integer","maxExclusive":"10","maxExclusive":"20"}]}`))
	require.ErrorContains(t, err, "/types/0/maxExclusive")
}

func TestLoadYAML_RejectsUnknownKeys(t *testing.T) {
	_, err := catalog.LoadYAML([]byte("name: x\ntypes:\n  - name: a\n    kind: string\n    maxLen: 3\n"))
	require.Error(t, err)
	_, err = catalog.LoadYAML([]byte(""))
	require.Error(t, err)
}

func TestCatalog_TagsAndLookup(t *testing.T) {
	c := compileDemo(t, catalog.Options{})
	require.Equal(t, "demo", c.Name())
	require.Equal(t, xsdfacet.TypeTag("demo:Minutes"), c.Tags()[0])
	tt, ok := c.Type("xs:integer")
	require.True(t, ok)
	require.Equal(t, catalog.Atomic, tt.Variety)
	pair, _ := c.Type("demo:Pair")
	require.Equal(t, catalog.ListOf, pair.Variety)
	require.True(t, pair.DerivesFrom("demo:IntegerOrNullList"))
	require.True(t, c.Accepts("demo:Pair", xsdfacet.List()))
	require.False(t, c.Accepts("demo:Nope", xsdfacet.List()))
	require.Contains(t, c.Dispatcher().Tags(), xsdfacet.TypeTag("xs:boolean"))
}

func ptr(n int) *int { return &n }

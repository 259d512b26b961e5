package catalog_test

import (
	"bytes"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/stretchr/testify/require"

	xsdfacet "github.com/reoring/xsdfacet"
	"github.com/reoring/xsdfacet/catalog"
)

func TestJSONSchema_MergesBaseChain(t *testing.T) {
	c := compileDemo(t, catalog.Options{})
	s, err := c.JSONSchema("demo:Minutes")
	require.NoError(t, err)
	require.Equal(t, "integer", s.Type)
	require.Equal(t, json.Number("0"), s.Minimum)
	require.Equal(t, json.Number("59"), s.Maximum)
	require.Equal(t, "demo:Minutes", s.ID)
	require.Equal(t, "minutes of arc", s.Description)

	s, err = c.JSONSchema("demo:Seconds")
	require.NoError(t, err)
	require.Equal(t, json.Number("60.00"), s.ExclusiveMaximum)
}

func TestJSONSchema_ListAndUnion(t *testing.T) {
	c := compileDemo(t, catalog.Options{})
	s, err := c.JSONSchema("demo:Pair")
	require.NoError(t, err)
	require.Equal(t, "array", s.Type)
	require.Equal(t, 2, *s.MinItems)
	require.Equal(t, 2, *s.MaxItems)
	require.NotNil(t, s.Items)
	require.Len(t, s.Items.AnyOf, 2)

	s, err = c.JSONSchema("demo:Other")
	require.NoError(t, err)
	require.Contains(t, s.Pattern, "other:")

	s, err = c.JSONSchema("demo:Null")
	require.NoError(t, err)
	require.Equal(t, []any{"missing", "unknown"}, s.Enum)

	raw, err := s.MarshalIndent()
	require.NoError(t, err)
	require.Contains(t, string(raw), `"enum"`)

	_, err = c.JSONSchema("demo:Nope")
	require.Error(t, err)
}

func compileProjection(t *testing.T, c *catalog.Catalog, tag xsdfacet.TypeTag) *jsonschema.Schema {
	t.Helper()
	s, err := c.JSONSchema(tag)
	require.NoError(t, err)
	s.ID = ""
	raw, err := s.MarshalIndent()
	require.NoError(t, err)

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	require.NoError(t, err)
	comp := jsonschema.NewCompiler()
	require.NoError(t, comp.AddResource("schema.json", doc))
	sch, err := comp.Compile("schema.json")
	require.NoError(t, err)
	return sch
}

func TestJSONSchema_ProjectionAgreesWithValidate(t *testing.T) {
	c := compileDemo(t, catalog.Options{})
	cases := []struct {
		tag   xsdfacet.TypeTag
		input string
		valid bool
	}{
		{"demo:Minutes", `59`, true},
		{"demo:Minutes", `60`, false},
		{"demo:Minutes", `-1`, false},
		{"demo:Seconds", `59.99`, true},
		{"demo:Seconds", `60.00`, false},
		{"demo:Pair", `[3, "missing"]`, true},
		{"demo:Pair", `[3, "other:reason"]`, true},
		{"demo:Pair", `[3]`, false},
		{"demo:Pair", `[3, "other:x"]`, false},
		{"demo:Null", `"unknown"`, true},
		{"demo:Null", `"absent"`, false},
	}
	for _, tc := range cases {
		sch := compileProjection(t, c, tc.tag)
		inst, err := jsonschema.UnmarshalJSON(strings.NewReader(tc.input))
		require.NoError(t, err)
		err = sch.Validate(inst)
		if tc.valid {
			require.NoError(t, err, "%s %s", tc.tag, tc.input)
		} else {
			require.Error(t, err, "%s %s", tc.tag, tc.input)
		}
	}
}

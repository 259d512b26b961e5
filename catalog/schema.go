package catalog

import (
	"fmt"
	"math/big"

	json "github.com/goccy/go-json"

	xsdfacet "github.com/reoring/xsdfacet"
	js "github.com/reoring/xsdfacet/jsonschema"
)

// JSONSchema projects the type named by tag onto JSON Schema. Values are
// assumed to travel in their JSON form as produced by Value.MarshalJSON.
// Patterns are exported in their translated RE2 form.
func (c *Catalog) JSONSchema(tag xsdfacet.TypeTag) (*js.Schema, error) {
	t, ok := c.Type(tag)
	if !ok {
		return nil, fmt.Errorf("catalog: unknown type %s", tag)
	}
	s := t.JSONSchema()
	s.SchemaURI = js.Draft
	s.ID = string(tag)
	return s, nil
}

// JSONSchema projects t onto JSON Schema.
func (t *Type) JSONSchema() *js.Schema {
	var s *js.Schema
	switch {
	case t.Base != nil:
		s = t.Base.JSONSchema().Clone()
		s.ID, s.SchemaURI = "", ""
	case t.Variety == ListOf:
		s = &js.Schema{Type: "array", Items: t.Item.JSONSchema()}
	case t.Variety == UnionOf:
		s = &js.Schema{}
		for _, m := range t.Members {
			s.AnyOf = append(s.AnyOf, m.JSONSchema())
		}
	case t.Variety == Composite:
		s = &js.Schema{Type: "object"}
	default:
		s = primitiveSchema(t.Kind)
	}
	s.Title = string(t.Tag)
	s.Description = t.Doc

	own := t.own
	if own.min != nil {
		n := json.Number(own.min.String())
		if own.min.Inclusive {
			s = constrain(s, func(x *js.Schema) *json.Number { return &x.Minimum }, n, tighterMin)
		} else {
			s = constrain(s, func(x *js.Schema) *json.Number { return &x.ExclusiveMinimum }, n, tighterMin)
		}
	}
	if own.max != nil {
		n := json.Number(own.max.String())
		if own.max.Inclusive {
			s = constrain(s, func(x *js.Schema) *json.Number { return &x.Maximum }, n, tighterMax)
		} else {
			s = constrain(s, func(x *js.Schema) *json.Number { return &x.ExclusiveMaximum }, n, tighterMax)
		}
	}
	if t.Variety == ListOf {
		if own.length != nil {
			s.MinItems, s.MaxItems = js.Int(*own.length), js.Int(*own.length)
		}
		if own.minLength != nil {
			s.MinItems = js.Int(*own.minLength)
		}
		if own.maxLength != nil {
			s.MaxItems = js.Int(*own.maxLength)
		}
	} else {
		if own.length != nil {
			s.MinLength, s.MaxLength = js.Int(*own.length), js.Int(*own.length)
		}
		if own.minLength != nil {
			s.MinLength = js.Int(*own.minLength)
		}
		if own.maxLength != nil {
			s.MaxLength = js.Int(*own.maxLength)
		}
	}
	if lits := own.enumeration; len(lits.Values) > 0 {
		s.Enum = s.Enum[:0]
		for i, v := range lits.Values {
			s.Enum = append(s.Enum, enumLiteral(v, lits.Lexical[i]))
		}
	}
	if g := own.patterns; len(g) > 0 {
		var alts []*js.Schema
		for _, group := range g {
			alt := &js.Schema{}
			for _, re := range group {
				if alt.Pattern == "" {
					alt.Pattern = re.GoPattern()
				} else {
					alt.AllOf = append(alt.AllOf, &js.Schema{Pattern: re.GoPattern()})
				}
			}
			alts = append(alts, alt)
		}
		switch {
		case len(alts) == 1 && s.Pattern == "" && len(alts[0].AllOf) == 0:
			s.Pattern = alts[0].Pattern
		case len(alts) == 1:
			s.AllOf = append(s.AllOf, alts[0])
		default:
			s.AllOf = append(s.AllOf, &js.Schema{AnyOf: alts})
		}
	}
	return s
}

func primitiveSchema(k xsdfacet.Kind) *js.Schema {
	switch k {
	case xsdfacet.KindBoolean:
		return &js.Schema{Type: "boolean"}
	case xsdfacet.KindInteger:
		return &js.Schema{Type: "integer"}
	case xsdfacet.KindDecimal:
		return &js.Schema{Type: "number"}
	case xsdfacet.KindDouble:
		// INF and NaN travel as strings
		return &js.Schema{AnyOf: []*js.Schema{{Type: "number"}, {Type: "string", Enum: []any{"INF", "-INF", "NaN"}}}}
	case xsdfacet.KindDate:
		return &js.Schema{Type: "string", Format: "date"}
	case xsdfacet.KindDateTime:
		return &js.Schema{Type: "string", Format: "date-time"}
	case xsdfacet.KindTime:
		return &js.Schema{Type: "string", Format: "time"}
	default:
		return &js.Schema{Type: "string"}
	}
}

func enumLiteral(v xsdfacet.Value, lit string) any {
	if k := v.Kind(); k == xsdfacet.KindInteger || k == xsdfacet.KindDecimal {
		return json.Number(v.String())
	}
	return lit
}

// constrain sets the keyword selected by field to n, or keeps the existing
// bound when it is already at least as tight.
func constrain(s *js.Schema, field func(*js.Schema) *json.Number, n json.Number, tighter func(a, b json.Number) bool) *js.Schema {
	p := field(s)
	if *p == "" || tighter(n, *p) {
		*p = n
	}
	return s
}

func tighterMin(a, b json.Number) bool { return cmpNumber(a, b) > 0 }

func tighterMax(a, b json.Number) bool { return cmpNumber(a, b) < 0 }

func cmpNumber(a, b json.Number) int {
	x, ok1 := new(big.Rat).SetString(string(a))
	y, ok2 := new(big.Rat).SetString(string(b))
	if !ok1 || !ok2 {
		return 0
	}
	return x.Cmp(y)
}

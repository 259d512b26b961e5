package catalog

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	xsdfacet "github.com/reoring/xsdfacet"
)

// ErrNotSimple is returned when a lexical form is requested for a composite
// type.
var ErrNotSimple = errors.New("catalog: type has no lexical space")

// Parse converts a lexical form into a value of the type named by tag.
// Lists split on whitespace; unions keep the first member that both parses
// and validates; enumerations accept only their declared literals.
// Other facets are left to Validate.
func (c *Catalog) Parse(ctx context.Context, tag xsdfacet.TypeTag, lexical string) (xsdfacet.Value, error) {
	t, ok := c.Type(tag)
	if !ok {
		return xsdfacet.Value{}, fmt.Errorf("catalog: unknown type %s", tag)
	}
	return t.Parse(ctx, lexical)
}

// Format renders v in the lexical space of the type named by tag.
func (c *Catalog) Format(tag xsdfacet.TypeTag, v xsdfacet.Value) (string, error) {
	t, ok := c.Type(tag)
	if !ok {
		return "", fmt.Errorf("catalog: unknown type %s", tag)
	}
	if t.Variety == Composite {
		return "", fmt.Errorf("%w: %s", ErrNotSimple, tag)
	}
	if !t.Accepts(v) {
		return "", fmt.Errorf("catalog: %s cannot represent a %s value", tag, v.Kind())
	}
	return v.String(), nil
}

// Parse converts a lexical form into a value of t.
func (t *Type) Parse(ctx context.Context, lexical string) (xsdfacet.Value, error) {
	return t.parse(ctx, lexical, true)
}

func (t *Type) parse(ctx context.Context, lexical string, enforceEnum bool) (xsdfacet.Value, error) {
	switch t.Variety {
	case Composite:
		return xsdfacet.Value{}, fmt.Errorf("%w: %s", ErrNotSimple, t.Tag)
	case ListOf:
		fields := strings.Fields(lexical)
		items := make([]xsdfacet.Value, len(fields))
		for i, f := range fields {
			v, err := t.Item.parse(ctx, f, true)
			if err != nil {
				return xsdfacet.Value{}, fmt.Errorf("%s item %d: %w", t.Tag, i, err)
			}
			items[i] = v
		}
		return t.checkEnum(xsdfacet.List(items...), enforceEnum)
	case UnionOf:
		for _, m := range t.Members {
			v, err := m.parse(ctx, lexical, true)
			if err != nil {
				continue
			}
			if m.check(ctx, v, nil) {
				return t.checkEnum(v, enforceEnum)
			}
		}
		return xsdfacet.Value{}, fmt.Errorf("catalog: no member of %s accepts %q", t.Tag, lexical)
	}
	v, err := parsePrimitive(t.Kind, lexical)
	if err != nil {
		return xsdfacet.Value{}, err
	}
	return t.checkEnum(v, enforceEnum)
}

func (t *Type) parseRepresentation(lexical string) (xsdfacet.Value, error) {
	return t.parse(context.Background(), lexical, false)
}

func (t *Type) checkEnum(v xsdfacet.Value, enforce bool) (xsdfacet.Value, error) {
	if !enforce || t.enumOwner == "" {
		return v, nil
	}
	if t.enum.Index(v) < 0 {
		return xsdfacet.Value{}, fmt.Errorf("catalog: %q is not a literal of %s", v.String(), t.enumOwner)
	}
	if v.Kind() == xsdfacet.KindString {
		return xsdfacet.Enum(t.enumOwner, v.Str()), nil
	}
	return v, nil
}

var doubleLexical = regexp.MustCompile(`^[+-]?([0-9]+(\.[0-9]*)?|\.[0-9]+)([eE][+-]?[0-9]+)?$`)

func parsePrimitive(k xsdfacet.Kind, lexical string) (xsdfacet.Value, error) {
	if k == xsdfacet.KindString {
		return xsdfacet.String(lexical), nil
	}
	s := strings.TrimSpace(lexical)
	switch k {
	case xsdfacet.KindBoolean:
		switch s {
		case "true", "1":
			return xsdfacet.Bool(true), nil
		case "false", "0":
			return xsdfacet.Bool(false), nil
		}
		return xsdfacet.Value{}, fmt.Errorf("catalog: invalid boolean %q", lexical)
	case xsdfacet.KindInteger:
		return xsdfacet.ParseInteger(s)
	case xsdfacet.KindDecimal:
		return xsdfacet.ParseDecimal(s)
	case xsdfacet.KindDouble:
		switch s {
		case "INF", "+INF":
			return xsdfacet.Double(math.Inf(1)), nil
		case "-INF":
			return xsdfacet.Double(math.Inf(-1)), nil
		case "NaN":
			return xsdfacet.Double(math.NaN()), nil
		}
		if !doubleLexical.MatchString(s) {
			return xsdfacet.Value{}, fmt.Errorf("catalog: invalid double %q", lexical)
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return xsdfacet.Value{}, fmt.Errorf("catalog: invalid double %q: %w", lexical, err)
		}
		return xsdfacet.Double(f), nil
	}
	if k.IsTemporal() {
		return xsdfacet.Temporal(k, s)
	}
	return xsdfacet.Value{}, fmt.Errorf("catalog: no lexical space for %s", k)
}

// Package catalog compiles declarative type definitions into validation
// functions and the dispatcher serving them.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/untillpro/goutils/logger"

	xsdfacet "github.com/reoring/xsdfacet"
	"github.com/reoring/xsdfacet/facet"
)

// ErrInvalidDef reports a definition that cannot be compiled.
var ErrInvalidDef = errors.New("catalog: invalid type definition")

// Options configures compilation.
type Options struct {
	xsdfacet.Options
	// Structural validates composite types. Nil accepts every object.
	Structural xsdfacet.StructuralValidator
}

// Catalog is a compiled set of types. It is immutable and safe for
// concurrent use.
type Catalog struct {
	name       string
	types      map[xsdfacet.TypeTag]*Type
	order      []xsdfacet.TypeTag
	deps       []*Catalog
	dispatcher *xsdfacet.Dispatcher
}

// Name returns the document name the catalog was compiled from.
func (c *Catalog) Name() string { return c.name }

// Tags lists the types declared by the catalog itself, in declaration order.
func (c *Catalog) Tags() []xsdfacet.TypeTag { return append([]xsdfacet.TypeTag(nil), c.order...) }

// Dispatcher returns the dispatcher over the catalog's types and those of
// its dependencies.
func (c *Catalog) Dispatcher() *xsdfacet.Dispatcher { return c.dispatcher }

// Type looks tag up in the catalog, then in its dependencies.
func (c *Catalog) Type(tag xsdfacet.TypeTag) (*Type, bool) {
	if t, ok := c.types[tag]; ok {
		return t, true
	}
	for _, d := range c.deps {
		if t, ok := d.Type(tag); ok {
			return t, true
		}
	}
	return nil, false
}

// Validate checks v against the type named by tag.
func (c *Catalog) Validate(ctx context.Context, tag xsdfacet.TypeTag, v xsdfacet.Value, sink *xsdfacet.Diagnostics) bool {
	return c.dispatcher.Validate(ctx, tag, v, sink)
}

// Accepts reports whether tag is known and v has a representation it can
// validate.
func (c *Catalog) Accepts(tag xsdfacet.TypeTag, v xsdfacet.Value) bool {
	t, ok := c.Type(tag)
	return ok && t.Accepts(v)
}

func (c *Catalog) provides(name string) bool {
	if c.name == name {
		return true
	}
	for _, d := range c.deps {
		if d.provides(name) {
			return true
		}
	}
	return false
}

// MustCompile is Compile for documents known to be valid.
func MustCompile(doc Document, opts Options, deps ...*Catalog) *Catalog {
	c, err := Compile(doc, opts, deps...)
	if err != nil {
		panic(err)
	}
	return c
}

// CompileAll compiles docs in order, each one seeing the catalogs compiled
// before it, and returns the last.
func CompileAll(docs []Document, opts Options, deps ...*Catalog) (*Catalog, error) {
	if len(docs) == 0 {
		return nil, fmt.Errorf("%w: no documents", ErrInvalidDef)
	}
	var last *Catalog
	for _, doc := range docs {
		c, err := Compile(doc, opts, deps...)
		if err != nil {
			return nil, err
		}
		deps = append(deps, c)
		last = c
	}
	return last, nil
}

// Compile resolves every definition of doc against doc itself and deps,
// then builds the validation function of each type. Base types are checked
// before the facets a restriction adds.
func Compile(doc Document, opts Options, deps ...*Catalog) (*Catalog, error) {
	c := &Catalog{
		name:  doc.Name,
		types: make(map[xsdfacet.TypeTag]*Type, len(doc.Types)),
		deps:  deps,
	}
	for _, imp := range doc.Imports {
		found := false
		for _, d := range deps {
			if d.provides(imp) {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: %s imports %q which was not supplied", ErrInvalidDef, doc.Name, imp)
		}
	}

	defs := make(map[xsdfacet.TypeTag]*Def, len(doc.Types))
	for i := range doc.Types {
		d := &doc.Types[i]
		if d.Name == "" {
			return nil, fmt.Errorf("%w: type #%d has no name", ErrInvalidDef, i)
		}
		if _, dup := defs[d.Name]; dup {
			return nil, fmt.Errorf("%w: %s declared twice", ErrInvalidDef, d.Name)
		}
		defs[d.Name] = d
		c.order = append(c.order, d.Name)
	}

	r := &resolver{c: c, defs: defs, visiting: map[xsdfacet.TypeTag]bool{}, structural: opts.Structural}
	for _, tag := range c.order {
		if _, err := r.resolve(tag); err != nil {
			return nil, err
		}
	}

	table := map[xsdfacet.TypeTag]xsdfacet.Func{}
	for _, d := range deps {
		for _, tag := range d.dispatcher.Tags() {
			fn, _ := d.dispatcher.Lookup(tag)
			table[tag] = fn
		}
	}
	for tag, t := range c.types {
		table[tag] = t.gated()
	}
	c.dispatcher = xsdfacet.NewDispatcher(table, opts.Options)
	if logger.IsVerbose() {
		logger.Verbose("catalog:", doc.Name, "compiled", len(c.order), "types,", len(table), "dispatchable")
	}
	return c, nil
}

type resolver struct {
	c          *Catalog
	defs       map[xsdfacet.TypeTag]*Def
	visiting   map[xsdfacet.TypeTag]bool
	structural xsdfacet.StructuralValidator
}

func (r *resolver) resolve(tag xsdfacet.TypeTag) (*Type, error) {
	if t, ok := r.c.types[tag]; ok {
		return t, nil
	}
	d, ok := r.defs[tag]
	if !ok {
		for _, dep := range r.c.deps {
			if t, ok := dep.Type(tag); ok {
				return t, nil
			}
		}
		return nil, fmt.Errorf("%w: unknown type %s", ErrInvalidDef, tag)
	}
	if r.visiting[tag] {
		return nil, fmt.Errorf("%w: %s refers to itself", ErrInvalidDef, tag)
	}
	r.visiting[tag] = true
	defer delete(r.visiting, tag)

	t, err := r.define(d)
	if err != nil {
		return nil, err
	}
	t.build(r.structural)
	r.c.types[tag] = t
	return t, nil
}

func (r *resolver) define(d *Def) (*Type, error) {
	how, err := d.variety()
	if err != nil {
		return nil, err
	}
	t := &Type{Tag: d.Name, Doc: d.Doc}
	switch how {
	case "kind":
		k, ok := xsdfacet.ParseKind(d.Kind)
		if !ok || k == xsdfacet.KindList || k == xsdfacet.KindObject || k == xsdfacet.KindEnum {
			return nil, fmt.Errorf("%w: %s: %q is not a primitive kind", ErrInvalidDef, d.Name, d.Kind)
		}
		t.Variety, t.Kind = Atomic, k
	case "base":
		base, err := r.resolve(d.Base)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", d.Name, err)
		}
		t.Base = base
		t.Variety, t.Kind, t.Item, t.Members = base.Variety, base.Kind, base.Item, base.Members
		t.enumOwner, t.enum = base.enumOwner, base.enum
	case "list":
		item, err := r.resolve(d.List)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", d.Name, err)
		}
		if item.Variety == ListOf || item.Variety == Composite {
			return nil, fmt.Errorf("%w: %s: list items must be atomic or union, %s is %s", ErrInvalidDef, d.Name, item.Tag, item.Variety)
		}
		t.Variety, t.Item = ListOf, item
	case "union":
		t.Variety = UnionOf
		for _, mt := range d.Union {
			m, err := r.resolve(mt)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", d.Name, err)
			}
			if m.Variety == Composite {
				return nil, fmt.Errorf("%w: %s: union member %s is not a simple type", ErrInvalidDef, d.Name, mt)
			}
			t.Members = append(t.Members, m)
		}
	case "object":
		t.Variety = Composite
	}
	if err := t.restrict(d); err != nil {
		return nil, err
	}
	return t, nil
}

// restrict parses the facets of d and checks they apply to t.
func (t *Type) restrict(d *Def) error {
	fail := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s: %s", ErrInvalidDef, d.Name, fmt.Sprintf(format, args...))
	}
	if t.Variety == Composite && d.hasFacets() {
		return fail("object types take no facets")
	}
	if d.hasRange() && (t.Variety != Atomic || !t.Kind.IsNumeric()) {
		return fail("range facets need a numeric type")
	}
	if d.hasLength() && !(t.Variety == ListOf || (t.Variety == Atomic && t.Kind == xsdfacet.KindString)) {
		return fail("length facets need a string or list type")
	}
	if d.MinInclusive != "" && d.MinExclusive != "" {
		return fail("minInclusive and minExclusive are mutually exclusive")
	}
	if d.MaxInclusive != "" && d.MaxExclusive != "" {
		return fail("maxInclusive and maxExclusive are mutually exclusive")
	}
	bound := func(lexical string, inclusive bool) (*facet.Bound, error) {
		if lexical == "" {
			return nil, nil
		}
		b, err := facet.ParseBound(lexical, inclusive)
		if err != nil {
			return nil, fail("bound %q: %v", lexical, err)
		}
		return &b, nil
	}
	var err error
	if d.MinInclusive != "" {
		t.own.min, err = bound(d.MinInclusive, true)
	} else {
		t.own.min, err = bound(d.MinExclusive, false)
	}
	if err != nil {
		return err
	}
	if d.MaxInclusive != "" {
		t.own.max, err = bound(d.MaxInclusive, true)
	} else {
		t.own.max, err = bound(d.MaxExclusive, false)
	}
	if err != nil {
		return err
	}
	if t.own.min != nil && t.own.max != nil && t.own.min.Value.Cmp(t.own.max.Value) > 0 {
		return fail("minimum %s is greater than maximum %s", t.own.min, t.own.max)
	}

	for _, n := range []*int{d.Length, d.MinLength, d.MaxLength} {
		if n != nil && *n < 0 {
			return fail("negative length %d", *n)
		}
	}
	t.own.length, t.own.minLength, t.own.maxLength = d.Length, d.MinLength, d.MaxLength
	if d.MinLength != nil && d.MaxLength != nil && *d.MinLength > *d.MaxLength {
		return fail("minLength %d is greater than maxLength %d", *d.MinLength, *d.MaxLength)
	}

	src := make([][]string, 0, len(d.Patterns)+len(d.PatternGroups))
	for _, p := range d.Patterns {
		src = append(src, []string{p})
	}
	src = append(src, d.PatternGroups...)
	if len(src) > 0 {
		g, err := facet.CompileGroups(src)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidDef, d.Name, err)
		}
		t.own.patterns = g
	}

	if len(d.Enumeration) > 0 {
		lits := facet.Literals{Lexical: append([]string(nil), d.Enumeration...)}
		for _, lit := range d.Enumeration {
			v, err := t.parseRepresentation(lit)
			if err != nil {
				return fail("enumeration literal %q: %v", lit, err)
			}
			lits.Values = append(lits.Values, v)
		}
		t.own.enumeration = lits
		t.enum = lits
		t.enumOwner = t.Tag
	}
	return nil
}

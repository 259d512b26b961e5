package xsdfacet

import (
	"context"
	"sort"

	"github.com/untillpro/goutils/logger"

	"github.com/reoring/xsdfacet/i18n"
)

// Func validates one value of a specific type. A nil sink asks the function
// to stop at the first failure; a non-nil sink asks it to report every
// violation in evaluation order.
type Func func(ctx context.Context, v Value, sink *Diagnostics) bool

// StructuralValidator checks composite values (multiplicity, containment)
// that simple facets cannot express. It is supplied by the host model.
type StructuralValidator interface {
	ValidateStructure(ctx context.Context, tag TypeTag, obj any, sink *Diagnostics) bool
}

// StructuralFunc adapts a function to StructuralValidator.
type StructuralFunc func(ctx context.Context, tag TypeTag, obj any, sink *Diagnostics) bool

func (f StructuralFunc) ValidateStructure(ctx context.Context, tag TypeTag, obj any, sink *Diagnostics) bool {
	return f(ctx, tag, obj, sink)
}

// Permissive accepts every composite value.
var Permissive StructuralValidator = StructuralFunc(func(context.Context, TypeTag, any, *Diagnostics) bool { return true })

// Dispatcher maps type tags to their validation functions. It is immutable
// once built and safe for concurrent use.
type Dispatcher struct {
	funcs   map[TypeTag]Func
	unknown UnknownPolicy
}

// NewDispatcher copies table into a new Dispatcher.
func NewDispatcher(table map[TypeTag]Func, opt Options) *Dispatcher {
	funcs := make(map[TypeTag]Func, len(table))
	for tag, fn := range table {
		if fn != nil {
			funcs[tag] = fn
		}
	}
	return &Dispatcher{funcs: funcs, unknown: opt.UnknownTypes}
}

// Lookup returns the function registered for tag.
func (d *Dispatcher) Lookup(tag TypeTag) (Func, bool) {
	fn, ok := d.funcs[tag]
	return fn, ok
}

// Tags lists the registered tags in sorted order.
func (d *Dispatcher) Tags() []TypeTag {
	out := make([]TypeTag, 0, len(d.funcs))
	for tag := range d.funcs {
		out = append(out, tag)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Validate runs the function registered for tag against v. Unknown tags
// follow the dispatcher's UnknownPolicy.
func (d *Dispatcher) Validate(ctx context.Context, tag TypeTag, v Value, sink *Diagnostics) bool {
	if ctx == nil {
		ctx = context.Background()
	}
	fn, ok := d.funcs[tag]
	if ok {
		return fn(ctx, v, sink)
	}
	if d.unknown == UnknownReject {
		if sink != nil {
			sink.Add(Diagnostic{
				Severity: Error,
				Type:     tag,
				Code:     CodeUnknownType,
				Value:    v,
				Path:     "/",
				Message:  i18n.Message(ctx, CodeUnknownType, map[string]any{"type": string(tag)}),
			})
		}
		return false
	}
	if logger.IsVerbose() {
		logger.Verbose("xsdfacet: no validator for", tag, "- value accepted")
	}
	return true
}

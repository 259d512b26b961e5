package facet

import (
	"context"

	xsdfacet "github.com/reoring/xsdfacet"
	"github.com/reoring/xsdfacet/i18n"
)

// Report appends a diagnostic to sink, rendering its message in the
// language carried by ctx. A nil sink is a no-op.
func Report(ctx context.Context, sink *xsdfacet.Diagnostics, d xsdfacet.Diagnostic) {
	if sink == nil {
		return
	}
	if d.Severity == xsdfacet.Ignore {
		d.Severity = xsdfacet.Error
	}
	if d.Path == "" {
		d.Path = "/"
	}
	if d.Message == "" {
		params := make(map[string]any, len(d.Params)+1)
		for k, v := range d.Params {
			params[k] = v
		}
		if _, ok := params["value"]; !ok {
			params["value"] = d.Value.String()
		}
		d.Message = i18n.Message(ctx, d.Code, params)
	}
	sink.Add(d)
}

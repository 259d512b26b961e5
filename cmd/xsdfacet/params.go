package main

import (
	"github.com/untillpro/goutils/logger"

	xsdfacet "github.com/reoring/xsdfacet"
	"github.com/reoring/xsdfacet/catalog"
	"github.com/reoring/xsdfacet/gml311"
	"github.com/reoring/xsdfacet/xmltype"
)

type params struct {
	catalogs []string
	noGML    bool
	strict   bool
}

// load compiles the built-in catalogs, then every --catalog document on top
// of them, and returns the last compiled catalog.
func (p *params) load() (*catalog.Catalog, error) {
	opts := catalog.Options{}
	if p.strict {
		opts.UnknownTypes = xsdfacet.UnknownReject
	}

	var base *catalog.Catalog
	var err error
	if p.noGML {
		base, err = xmltype.Compile(opts)
	} else {
		base, err = gml311.Compile(opts)
	}
	if err != nil {
		return nil, err
	}
	if len(p.catalogs) == 0 {
		return base, nil
	}

	var docs []catalog.Document
	for _, path := range p.catalogs {
		d, err := catalog.ReadFile(path)
		if err != nil {
			return nil, err
		}
		logger.Verbose("loaded", len(d), "document(s) from", path)
		docs = append(docs, d...)
	}
	return catalog.CompileAll(docs, opts, base)
}

package main

import (
	_ "embed"
	"errors"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/untillpro/goutils/cobrau"
	"github.com/untillpro/goutils/logger"
)

//go:embed version
var embeddedVersion string

// version is the release string printed by "xsdfacet version".
var version = strings.TrimSpace(embeddedVersion)

// errInvalid is returned when at least one value failed validation. The
// diagnostics have already been printed.
var errInvalid = errors.New("validation failed")

func main() {
	if err := execRootCmd(os.Args, version); err != nil {
		if !errors.Is(err, errInvalid) {
			logger.Error(err)
		}
		os.Exit(1)
	}
}

func execRootCmd(args []string, ver string) error {
	return cobrau.ExecCommandAndCatchInterrupt(prepareRootCmd(args, ver))
}

func prepareRootCmd(args []string, ver string) *cobra.Command {
	p := &params{}
	rootCmd := cobrau.PrepareRootCmd(
		"xsdfacet",
		"XML Schema facet validation utility",
		args,
		ver,
		newValidateCmd(p),
		newTypesCmd(p),
		newSchemaCmd(p),
		newGenCmd(p),
	)
	rootCmd.PersistentFlags().StringSliceVarP(&p.catalogs, "catalog", "c", nil, "catalog documents (YAML or JSON) compiled on top of the built-in types")
	rootCmd.PersistentFlags().BoolVar(&p.noGML, "no-gml", false, "do not load the GML 3.1.1 catalog")
	rootCmd.PersistentFlags().BoolVar(&p.strict, "strict", false, "report unknown type tags as invalid")
	return rootCmd
}

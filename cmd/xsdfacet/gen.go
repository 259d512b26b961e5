package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/untillpro/goutils/logger"

	"github.com/reoring/xsdfacet/internal/gen"
)

type genParams struct {
	pkg        string
	prefix     string
	output     string
	headerFile string
}

func newGenCmd(p *params) *cobra.Command {
	gp := genParams{}
	cmd := &cobra.Command{
		Use:   "gen --package NAME [--prefix P] [-o FILE]",
		Short: "Generate Go constants for the type tags of the loaded catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := p.load()
			if err != nil {
				return err
			}
			f := gen.File{Package: gp.pkg, Catalog: c.Name(), Tags: gen.TagsOf(c, gp.prefix)}
			if gp.headerFile != "" {
				header, err := os.ReadFile(gp.headerFile)
				if err != nil {
					return fmt.Errorf("failed to read header file: %w", err)
				}
				f.Header = string(header)
			}
			code, err := gen.RenderFile(f)
			if err != nil {
				return err
			}
			if gp.output == "" {
				_, err = cmd.OutOrStdout().Write(code)
				return err
			}
			if err := os.MkdirAll(filepath.Dir(gp.output), 0o755); err != nil {
				return err
			}
			if err := os.WriteFile(gp.output, code, 0o644); err != nil {
				return err
			}
			logger.Verbose("wrote", len(f.Tags), "tags to", gp.output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&gp.pkg, "package", "p", "", "package name of the generated file")
	cmd.Flags().StringVar(&gp.prefix, "prefix", "", "only generate tags with this namespace prefix")
	cmd.Flags().StringVarP(&gp.output, "output", "o", "", "output file; stdout when empty")
	cmd.Flags().StringVar(&gp.headerFile, "header-file", "", "file inserted above the generated code, e.g. a license")
	_ = cmd.MarkFlagRequired("package")
	return cmd
}

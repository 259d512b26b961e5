package main

import (
	"fmt"

	"github.com/spf13/cobra"

	xsdfacet "github.com/reoring/xsdfacet"
)

func newSchemaCmd(p *params) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema TAG",
		Short: "Print the JSON Schema projection of a type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := p.load()
			if err != nil {
				return err
			}
			s, err := c.JSONSchema(xsdfacet.TypeTag(args[0]))
			if err != nil {
				return err
			}
			b, err := s.MarshalIndent()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return err
		},
	}
	return cmd
}

package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/reoring/xsdfacet/catalog"
)

func newTypesCmd(p *params) *cobra.Command {
	var all bool
	var prefix string
	cmd := &cobra.Command{
		Use:   "types",
		Short: "List the types of the loaded catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := p.load()
			if err != nil {
				return err
			}
			tags := c.Tags()
			if all {
				tags = c.Dispatcher().Tags()
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, tag := range tags {
				if prefix != "" && tag.Prefix() != prefix {
					continue
				}
				t, ok := c.Type(tag)
				if !ok {
					continue
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", tag, t.Variety, describe(t))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false, "include the types of imported catalogs")
	cmd.Flags().StringVar(&prefix, "prefix", "", "only list tags with this namespace prefix")
	return cmd
}

func describe(t *catalog.Type) string {
	switch {
	case t.Base != nil:
		return "restricts " + string(t.Base.Tag)
	case t.Variety == catalog.ListOf:
		return "list of " + string(t.Item.Tag)
	case t.Variety == catalog.UnionOf:
		members := make([]string, len(t.Members))
		for i, m := range t.Members {
			members[i] = string(m.Tag)
		}
		return "union of " + strings.Join(members, " | ")
	case t.Variety == catalog.Composite:
		return ""
	default:
		return "primitive " + t.Kind.String()
	}
}

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	xsdfacet "github.com/reoring/xsdfacet"
	"github.com/reoring/xsdfacet/catalog"
	"github.com/reoring/xsdfacet/i18n"
)

var (
	green = color.New(color.FgGreen).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
)

type validateParams struct {
	tag      string
	lang     string
	format   string
	failFast bool
}

type result struct {
	Input       string               `json:"input"`
	Valid       bool                 `json:"valid"`
	Value       *xsdfacet.Value      `json:"value,omitempty"`
	Error       string               `json:"error,omitempty"`
	Diagnostics xsdfacet.Diagnostics `json:"diagnostics,omitempty"`
}

func newValidateCmd(p *params) *cobra.Command {
	vp := validateParams{}
	cmd := &cobra.Command{
		Use:   "validate --type TAG [VALUE...]",
		Short: "Validate lexical values against a type; values are read from stdin when none are given",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := p.load()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if vp.lang != "" {
				tag, err := language.Parse(vp.lang)
				if err != nil {
					return fmt.Errorf("--lang: %w", err)
				}
				ctx = i18n.WithLanguage(ctx, tag)
			}
			if len(args) == 0 {
				if args, err = readLines(cmd.InOrStdin()); err != nil {
					return err
				}
			}
			results := validateAll(ctx, c, xsdfacet.TypeTag(vp.tag), args, vp.failFast)
			if err := printResults(cmd.OutOrStdout(), results, vp.format); err != nil {
				return err
			}
			for _, r := range results {
				if !r.Valid {
					return errInvalid
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&vp.tag, "type", "t", "", "type tag, e.g. gml:ArcMinutesType")
	cmd.Flags().StringVar(&vp.lang, "lang", "", "language of diagnostic messages (BCP 47)")
	cmd.Flags().StringVarP(&vp.format, "format", "f", "text", "output format: text or json")
	cmd.Flags().BoolVar(&vp.failFast, "fail-fast", false, "stop at the first violation of each value")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

func validateAll(ctx context.Context, c *catalog.Catalog, tag xsdfacet.TypeTag, inputs []string, failFast bool) []result {
	_, known := c.Type(tag)
	out := make([]result, 0, len(inputs))
	for _, in := range inputs {
		r := result{Input: in}
		// unknown tags go to the dispatcher as strings so its policy applies
		v := xsdfacet.String(in)
		if known {
			var err error
			if v, err = c.Parse(ctx, tag, in); err != nil {
				r.Error = err.Error()
				out = append(out, r)
				continue
			}
		}
		r.Value = &v
		if failFast {
			r.Valid = c.Validate(ctx, tag, v, nil)
		} else {
			var sink xsdfacet.Diagnostics
			r.Valid = c.Validate(ctx, tag, v, &sink)
			r.Diagnostics = sink
		}
		out = append(out, r)
	}
	return out
}

func printResults(w io.Writer, results []result, format string) error {
	switch format {
	case "json":
		b, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case "text", "":
		for _, r := range results {
			if r.Valid {
				fmt.Fprintf(w, "%q: %s\n", r.Input, green("valid"))
				continue
			}
			fmt.Fprintf(w, "%q: %s\n", r.Input, red("invalid"))
			if r.Error != "" {
				fmt.Fprintf(w, "  %s\n", r.Error)
			}
			printDiagnostics(w, r.Diagnostics, "  ")
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func printDiagnostics(w io.Writer, ds []xsdfacet.Diagnostic, indent string) {
	for _, d := range ds {
		code := d.Code
		if d.Facet != "" {
			code += " (" + d.Facet + ")"
		}
		fmt.Fprintf(w, "%s%s %s %s: %s\n", indent, d.Path, code, d.Type, d.Message)
		printDiagnostics(w, d.Children, indent+"  ")
	}
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := strings.TrimRight(sc.Text(), "\r"); strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines, sc.Err()
}

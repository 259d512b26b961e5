// Package gen renders Go source declaring the type tags of a catalog.
package gen

import (
	"bytes"
	"embed"
	"fmt"
	"go/format"
	"strings"
	"text/template"
	"unicode"

	xsdfacet "github.com/reoring/xsdfacet"
	"github.com/reoring/xsdfacet/catalog"
)

// ModulePath is imported by generated files for the TypeTag type.
const ModulePath = "github.com/reoring/xsdfacet"

//go:embed templates/*
var fsTemplates embed.FS

// File describes one generated file.
type File struct {
	Package string
	// Header is copied verbatim above the generated comment (license text).
	Header  string
	Import  string
	Catalog string
	Tags    []Tag
}

// Tag is one generated constant.
type Tag struct {
	Ident string
	Value xsdfacet.TypeTag
	Doc   string
}

// TagsOf lists the types declared by c, restricted to tags carrying prefix
// when it is not empty. Identifiers are derived from the local names and
// qualified by the prefix when two local names collide.
func TagsOf(c *catalog.Catalog, prefix string) []Tag {
	var tags []xsdfacet.TypeTag
	for _, tag := range c.Tags() {
		if prefix == "" || tag.Prefix() == prefix {
			tags = append(tags, tag)
		}
	}
	locals := map[string]int{}
	for _, tag := range tags {
		locals[Ident(tag.Local())]++
	}
	out := make([]Tag, 0, len(tags))
	for _, tag := range tags {
		ident := Ident(tag.Local())
		if locals[ident] > 1 {
			ident = Ident(tag.Prefix()) + ident
		}
		doc := ""
		if t, ok := c.Type(tag); ok {
			doc = strings.Join(strings.Fields(t.Doc), " ")
		}
		out = append(out, Tag{Ident: ident, Value: tag, Doc: doc})
	}
	return out
}

// Ident turns name into an exported Go identifier.
func Ident(name string) string {
	var b strings.Builder
	upper := true
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	s := b.String()
	if s == "" || !unicode.IsLetter([]rune(s)[0]) {
		s = "T" + s
	}
	return s
}

// RenderFile fills the tags template with f and formats the result.
func RenderFile(f File) ([]byte, error) {
	if f.Package == "" {
		return nil, fmt.Errorf("gen: package name is required")
	}
	if f.Import == "" {
		f.Import = ModulePath
	}
	seen := map[string]bool{}
	for _, t := range f.Tags {
		if seen[t.Ident] {
			return nil, fmt.Errorf("gen: identifier %s generated twice", t.Ident)
		}
		seen[t.Ident] = true
	}
	return fillTemplate("tags", f)
}

// RenderCatalog renders the tags of c declared under prefix.
func RenderCatalog(pkg string, c *catalog.Catalog, prefix string) ([]byte, error) {
	return RenderFile(File{Package: pkg, Catalog: c.Name(), Tags: TagsOf(c, prefix)})
}

func fillTemplate(name string, payload any) ([]byte, error) {
	content, err := fsTemplates.ReadFile(fmt.Sprintf("templates/%s.txt", name))
	if err != nil {
		return nil, fmt.Errorf("gen: failed to read template: %w", err)
	}
	tmpl, err := template.New(name).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("gen: failed to parse template: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, payload); err != nil {
		return nil, fmt.Errorf("gen: failed to fill template: %w", err)
	}
	return format.Source(buf.Bytes())
}

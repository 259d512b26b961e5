package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	xsdfacet "github.com/reoring/xsdfacet"
	"github.com/reoring/xsdfacet/internal/dupkey"
)

// Document is one catalog source: a named set of simple and composite type
// definitions, typically the restrictions of one XML Schema namespace.
type Document struct {
	Name string `yaml:"name" json:"name"`
	// Imports names the catalogs whose types this document refers to.
	Imports []string `yaml:"imports,omitempty" json:"imports,omitempty"`
	Types   []Def    `yaml:"types" json:"types"`
}

// Def declares one type. Exactly one of Kind, Base, List, Union and Object
// selects how the type is derived; the facet fields restrict it further.
type Def struct {
	Name xsdfacet.TypeTag `yaml:"name" json:"name"`
	Doc  string           `yaml:"doc,omitempty" json:"doc,omitempty"`

	// Kind makes the type a primitive with the named representation
	// ("integer", "decimal", "string", "date", ...).
	Kind   string             `yaml:"kind,omitempty" json:"kind,omitempty"`
	Base   xsdfacet.TypeTag   `yaml:"base,omitempty" json:"base,omitempty"`
	List   xsdfacet.TypeTag   `yaml:"list,omitempty" json:"list,omitempty"`
	Union  []xsdfacet.TypeTag `yaml:"union,omitempty" json:"union,omitempty"`
	Object bool               `yaml:"object,omitempty" json:"object,omitempty"`

	MinInclusive string `yaml:"minInclusive,omitempty" json:"minInclusive,omitempty"`
	MinExclusive string `yaml:"minExclusive,omitempty" json:"minExclusive,omitempty"`
	MaxInclusive string `yaml:"maxInclusive,omitempty" json:"maxInclusive,omitempty"`
	MaxExclusive string `yaml:"maxExclusive,omitempty" json:"maxExclusive,omitempty"`

	Length    *int `yaml:"length,omitempty" json:"length,omitempty"`
	MinLength *int `yaml:"minLength,omitempty" json:"minLength,omitempty"`
	MaxLength *int `yaml:"maxLength,omitempty" json:"maxLength,omitempty"`

	// Patterns declared at this step are alternatives: each one forms its
	// own group. PatternGroups lists conjunctive groups explicitly.
	Patterns      []string   `yaml:"patterns,omitempty" json:"patterns,omitempty"`
	PatternGroups [][]string `yaml:"patternGroups,omitempty" json:"patternGroups,omitempty"`

	Enumeration []string `yaml:"enumeration,omitempty" json:"enumeration,omitempty"`
}

// LoadYAML decodes every YAML document in data. Unknown keys are rejected.
func LoadYAML(data []byte) ([]Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var out []Document
	for {
		var doc Document
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("catalog: yaml: %w", err)
		}
		if doc.Name == "" && len(doc.Types) == 0 {
			continue
		}
		out = append(out, doc)
	}
	if len(out) == 0 {
		return nil, errors.New("catalog: no documents in YAML input")
	}
	return out, nil
}

// LoadJSON decodes a single JSON document. Unknown and repeated keys are
// rejected.
func LoadJSON(data []byte) (Document, error) {
	dups, err := dupkey.Find(data, 1)
	if err != nil {
		return Document{}, fmt.Errorf("catalog: json: %w", err)
	}
	if len(dups) > 0 {
		return Document{}, fmt.Errorf("catalog: json: key %q repeated at %s", dups[0].Key, dups[0].Path)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("catalog: json: %w", err)
	}
	return doc, nil
}

// ReadFile loads the documents in path, choosing the decoder by extension
// (.json, otherwise YAML).
func ReadFile(path string) ([]Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		doc, err := LoadJSON(data)
		if err != nil {
			return nil, err
		}
		return []Document{doc}, nil
	}
	return LoadYAML(data)
}

func (d *Def) variety() (string, error) {
	var set []string
	if d.Kind != "" {
		set = append(set, "kind")
	}
	if d.Base != "" {
		set = append(set, "base")
	}
	if d.List != "" {
		set = append(set, "list")
	}
	if len(d.Union) > 0 {
		set = append(set, "union")
	}
	if d.Object {
		set = append(set, "object")
	}
	switch len(set) {
	case 1:
		return set[0], nil
	case 0:
		return "", fmt.Errorf("%w: %s: one of kind, base, list, union or object is required", ErrInvalidDef, d.Name)
	default:
		return "", fmt.Errorf("%w: %s: %s are mutually exclusive", ErrInvalidDef, d.Name, strings.Join(set, ", "))
	}
}

func (d *Def) hasRange() bool {
	return d.MinInclusive != "" || d.MinExclusive != "" || d.MaxInclusive != "" || d.MaxExclusive != ""
}

func (d *Def) hasLength() bool {
	return d.Length != nil || d.MinLength != nil || d.MaxLength != nil
}

func (d *Def) hasFacets() bool {
	return d.hasRange() || d.hasLength() || len(d.Patterns) > 0 || len(d.PatternGroups) > 0 || len(d.Enumeration) > 0
}

package jsonschema

import (
	json "github.com/goccy/go-json"
)

// Draft is the dialect written into exported root schemas.
const Draft = "https://json-schema.org/draft/2020-12/schema"

// Schema is a minimal JSON Schema representation used for export.
// It covers the keywords simple-type facets project onto.
type Schema struct {
	// Core
	SchemaURI   string `json:"$schema,omitempty"`
	ID          string `json:"$id,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type,omitempty"`
	Format      string `json:"format,omitempty"`
	Enum        []any  `json:"enum,omitempty"`

	// Numeric; bounds keep the exact decimal text.
	Minimum          json.Number `json:"minimum,omitempty"`
	ExclusiveMinimum json.Number `json:"exclusiveMinimum,omitempty"`
	Maximum          json.Number `json:"maximum,omitempty"`
	ExclusiveMaximum json.Number `json:"exclusiveMaximum,omitempty"`

	// String
	MinLength *int   `json:"minLength,omitempty"`
	MaxLength *int   `json:"maxLength,omitempty"`
	Pattern   string `json:"pattern,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	AdditionalProperties any                `json:"additionalProperties,omitempty"`

	// Array
	Items    *Schema `json:"items,omitempty"`
	MinItems *int    `json:"minItems,omitempty"`
	MaxItems *int    `json:"maxItems,omitempty"`

	// Composition
	AllOf []*Schema `json:"allOf,omitempty"`
	AnyOf []*Schema `json:"anyOf,omitempty"`
	OneOf []*Schema `json:"oneOf,omitempty"`
}

// Int returns a pointer to n for the optional integer keywords.
func Int(n int) *int { return &n }

// Clone returns a shallow copy of s whose slices and maps may be modified
// independently.
func (s *Schema) Clone() *Schema {
	if s == nil {
		return nil
	}
	cp := *s
	cp.Enum = append([]any(nil), s.Enum...)
	cp.AllOf = append([]*Schema(nil), s.AllOf...)
	cp.AnyOf = append([]*Schema(nil), s.AnyOf...)
	cp.OneOf = append([]*Schema(nil), s.OneOf...)
	if s.Properties != nil {
		cp.Properties = make(map[string]*Schema, len(s.Properties))
		for k, v := range s.Properties {
			cp.Properties[k] = v
		}
	}
	return &cp
}

// MarshalIndent renders s as indented JSON.
func (s *Schema) MarshalIndent() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

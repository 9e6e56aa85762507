package jsonschema

// Draft is the dialect URI written into exported root schemas.
const Draft = "https://json-schema.org/draft/2020-12/schema"

// Schema is a minimal JSON Schema representation used for export.
type Schema struct {
	// Root only
	SchemaURI string             `json:"$schema,omitempty" yaml:"$schema,omitempty"`
	Defs      map[string]*Schema `json:"$defs,omitempty" yaml:"$defs,omitempty"`

	// Core
	Ref         string `json:"$ref,omitempty" yaml:"$ref,omitempty"`
	Title       string `json:"title,omitempty" yaml:"title,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Type        string `json:"type,omitempty" yaml:"type,omitempty"`
	Format      string `json:"format,omitempty" yaml:"format,omitempty"`
	Const       any    `json:"const,omitempty" yaml:"const,omitempty"`
	Enum        []any  `json:"enum,omitempty" yaml:"enum,omitempty"`
	Default     any    `json:"default,omitempty" yaml:"default,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty" yaml:"properties,omitempty"`
	Required             []string           `json:"required,omitempty" yaml:"required,omitempty"`
	AdditionalProperties any                `json:"additionalProperties,omitempty" yaml:"additionalProperties,omitempty"`
	PropertyNames        *Schema            `json:"propertyNames,omitempty" yaml:"propertyNames,omitempty"`

	// Array
	Items    *Schema `json:"items,omitempty" yaml:"items,omitempty"`
	MinItems *int    `json:"minItems,omitempty" yaml:"minItems,omitempty"`
	MaxItems *int    `json:"maxItems,omitempty" yaml:"maxItems,omitempty"`

	// Union
	OneOf []*Schema `json:"oneOf,omitempty" yaml:"oneOf,omitempty"`
	AnyOf []*Schema `json:"anyOf,omitempty" yaml:"anyOf,omitempty"`
}

// DefRef returns a schema that references a definition under $defs.
func DefRef(name string) *Schema { return &Schema{Ref: "#/$defs/" + name} }

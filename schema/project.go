package schema

import (
	"sort"
	"strings"

	js "github.com/reoring/sketchkit/jsonschema"
)

// JSONSchema projects the registry into a single JSON Schema document. Every
// concrete entity and every variant becomes a definition under $defs, and the
// file roots are listed as properties keyed by entry pattern.
//
// Objects are closed (additionalProperties false), which matches the strict
// unknown-key policy of the decoder.
func (r *Registry) JSONSchema() *js.Schema {
	root := &js.Schema{
		SchemaURI:  js.Draft,
		Title:      "Sketch document",
		Type:       "object",
		Defs:       map[string]*js.Schema{},
		Properties: map[string]*js.Schema{},
	}
	for _, e := range r.Entities() {
		if e.Abstract {
			continue
		}
		root.Defs[e.Name] = r.entitySchema(e)
	}
	for _, v := range r.Variants() {
		s := &js.Schema{Title: v.Name}
		for _, c := range v.Candidates {
			s.OneOf = append(s.OneOf, r.typeSchema(c.Type))
		}
		root.Defs[v.Name] = s
	}
	for _, rt := range r.roots {
		root.Properties[rt.Pattern] = r.typeSchema(rt.Type)
	}
	return root
}

// JSONSchemaFor returns a standalone schema for the content of one entry.
func (r *Registry) JSONSchemaFor(entry string) (*js.Schema, bool) {
	t, ok := r.RootFor(entry)
	if !ok {
		return nil, false
	}
	full := r.JSONSchema()
	s := r.typeSchema(t)
	s.SchemaURI = js.Draft
	s.Defs = full.Defs
	return s, true
}

func (r *Registry) entitySchema(e *Entity) *js.Schema {
	s := &js.Schema{
		Title:                e.Name,
		Type:                 "object",
		Properties:           map[string]*js.Schema{},
		AdditionalProperties: false,
	}
	req := e.Required()
	if e.Tag != "" {
		s.Properties[ClassKey] = &js.Schema{Type: "string", Const: e.Tag}
		req = append(req, ClassKey)
	}
	for _, f := range e.fields {
		s.Properties[f.Name] = r.typeSchema(f.Type)
	}
	sort.Strings(req)
	s.Required = req
	return s
}

func (r *Registry) typeSchema(t *Type) *js.Schema {
	switch t.Kind {
	case KindString:
		return &js.Schema{Type: "string"}
	case KindBool:
		return &js.Schema{Type: "boolean"}
	case KindInt:
		return &js.Schema{Type: "integer"}
	case KindFloat:
		return &js.Schema{Type: "number"}
	case KindTagged:
		return &js.Schema{Type: "string", Format: taggedFormat(t.Name)}
	case KindList:
		return &js.Schema{Type: "array", Items: r.typeSchema(t.Elem)}
	case KindMap:
		s := &js.Schema{Type: "object", AdditionalProperties: r.typeSchema(t.Elem)}
		if t.Key.Kind == KindTagged {
			s.PropertyNames = r.typeSchema(t.Key)
		}
		return s
	case KindEntity, KindVariant:
		return js.DefRef(t.Name)
	default:
		return &js.Schema{}
	}
}

func taggedFormat(label string) string {
	switch label {
	case LabelObjectID:
		return "object-id"
	case LabelPointString:
		return "point"
	case LabelRectString:
		return "rect"
	case LabelArchive:
		return "base64"
	}
	return strings.ToLower(label)
}

// FieldSummary is the printable form of a field.
type FieldSummary struct {
	Name     string `yaml:"name" json:"name"`
	Type     string `yaml:"type" json:"type"`
	Required bool   `yaml:"required" json:"required"`
	From     string `yaml:"from,omitempty" json:"from,omitempty"`
}

// EntitySummary is the printable form of an entity.
type EntitySummary struct {
	Name     string         `yaml:"name" json:"name"`
	Tag      string         `yaml:"tag,omitempty" json:"tag,omitempty"`
	Extends  string         `yaml:"extends,omitempty" json:"extends,omitempty"`
	Abstract bool           `yaml:"abstract,omitempty" json:"abstract,omitempty"`
	Fields   []FieldSummary `yaml:"fields" json:"fields"`
}

// VariantSummary is the printable form of a variant.
type VariantSummary struct {
	Name       string   `yaml:"name" json:"name"`
	Candidates []string `yaml:"candidates" json:"candidates"`
}

// Summary is the printable form of a whole registry.
type Summary struct {
	Roots    map[string]string `yaml:"roots" json:"roots"`
	Entities []EntitySummary   `yaml:"entities" json:"entities"`
	Variants []VariantSummary  `yaml:"variants" json:"variants"`
}

// Describe summarizes the registry in declaration-independent order.
func (r *Registry) Describe() Summary {
	out := Summary{Roots: map[string]string{}}
	for _, rt := range r.roots {
		out.Roots[rt.Pattern] = rt.Type.String()
	}
	for _, e := range r.Entities() {
		es := EntitySummary{Name: e.Name, Tag: e.Tag, Extends: e.Base, Abstract: e.Abstract}
		for _, f := range e.fields {
			fs := FieldSummary{Name: f.Name, Type: f.Type.String(), Required: f.Required}
			if f.Owner != e.Name {
				fs.From = f.Owner
			}
			es.Fields = append(es.Fields, fs)
		}
		out.Entities = append(out.Entities, es)
	}
	for _, v := range r.Variants() {
		vs := VariantSummary{Name: v.Name}
		for _, c := range v.Candidates {
			name := c.Type.String()
			if c.Key != "" {
				name += " (by " + c.Key + ")"
			}
			vs.Candidates = append(vs.Candidates, name)
		}
		out.Variants = append(out.Variants, vs)
	}
	return out
}

// MarshalYAML implements yaml.Marshaler.
func (r *Registry) MarshalYAML() (any, error) { return r.Describe(), nil }

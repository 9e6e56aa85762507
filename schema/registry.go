package schema

import (
	"sort"
	"strings"
)

// ClassKey is the discriminator key of tagged entities.
const ClassKey = "_class"

// Field is one declared field of an entity.
type Field struct {
	Name     string
	Type     *Type
	Required bool
	// Owner is the entity that declared the field (the entity itself or one
	// of its bases).
	Owner string
}

// Entity is a resolved entity declaration.
type Entity struct {
	Name     string
	Tag      string // _class value; empty for untagged entities
	Base     string
	Abstract bool

	own    []Field
	fields []Field
	index  map[string]int
}

// Fields returns the resolved field list: base fields first, in declaration
// order, with overridden fields kept at the base position.
func (e *Entity) Fields() []Field { return e.fields }

// Own returns only the fields the entity declares itself.
func (e *Entity) Own() []Field { return e.own }

// Field looks up a resolved field by key.
func (e *Entity) Field(name string) (Field, bool) {
	i, ok := e.index[name]
	if !ok {
		return Field{}, false
	}
	return e.fields[i], true
}

// Known reports whether key is a declared field or the discriminator of a
// tagged entity.
func (e *Entity) Known(key string) bool {
	if key == ClassKey && e.Tag != "" {
		return true
	}
	_, ok := e.index[key]
	return ok
}

// Required returns the names of required fields in declaration order.
func (e *Entity) Required() []string {
	var out []string
	for _, f := range e.fields {
		if f.Required {
			out = append(out, f.Name)
		}
	}
	return out
}

// Candidate is one alternative of a variant.
type Candidate struct {
	Type *Type
	// Key is the distinguishing key used to select an untagged entity
	// candidate when the input carries no _class.
	Key string
}

// Variant is a closed polymorphic type.
type Variant struct {
	Name       string
	Candidates []Candidate
}

// Registry is the immutable result of Builder.Build.
type Registry struct {
	entities map[string]*Entity
	byTag    map[string]*Entity
	variants map[string]*Variant
	roots    []Root
}

// Root binds a container entry pattern to the type of its content.
type Root struct {
	// Pattern is an exact entry name or a prefix ending in "/".
	Pattern string
	Type    *Type
}

// Entity looks up an entity by registry name.
func (r *Registry) Entity(name string) (*Entity, bool) {
	e, ok := r.entities[name]
	return e, ok
}

// ByTag looks up the concrete entity carrying a _class tag.
func (r *Registry) ByTag(tag string) (*Entity, bool) {
	e, ok := r.byTag[tag]
	return e, ok
}

// Variant looks up a variant by name.
func (r *Registry) Variant(name string) (*Variant, bool) {
	v, ok := r.variants[name]
	return v, ok
}

// Entities returns every entity sorted by name.
func (r *Registry) Entities() []*Entity {
	out := make([]*Entity, 0, len(r.entities))
	for _, e := range r.entities {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Variants returns every variant sorted by name.
func (r *Registry) Variants() []*Variant {
	out := make([]*Variant, 0, len(r.variants))
	for _, v := range r.variants {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Roots returns the declared file roots in declaration order.
func (r *Registry) Roots() []Root { return r.roots }

// RootFor returns the content type of a container entry.
func (r *Registry) RootFor(entry string) (*Type, bool) {
	for _, rt := range r.roots {
		if rt.Pattern == entry {
			return rt.Type, true
		}
		if strings.HasSuffix(rt.Pattern, "/") && strings.HasPrefix(entry, rt.Pattern) && strings.HasSuffix(entry, ".json") {
			return rt.Type, true
		}
	}
	return nil, false
}

// IsA reports whether entity name is base or derives from it.
func (r *Registry) IsA(name, base string) bool {
	for name != "" {
		if name == base {
			return true
		}
		e, ok := r.entities[name]
		if !ok {
			return false
		}
		name = e.Base
	}
	return false
}

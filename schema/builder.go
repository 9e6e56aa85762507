package schema

import (
	"sort"

	"gitlab.com/tozd/go/errors"
)

// Builder collects entity and variant declarations.
type Builder struct {
	entities []*entityBuilder
	variants []*Variant
	roots    []Root
}

type entityBuilder struct {
	b        *Builder
	name     string
	tag      string
	base     string
	abstract bool
	fields   []Field
	required map[string]bool
}

type fieldStep struct {
	e    *entityBuilder
	name string
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder { return &Builder{} }

// Entity starts a new entity declaration.
func (b *Builder) Entity(name string) *entityBuilder {
	e := &entityBuilder{b: b, name: name, required: map[string]bool{}}
	b.entities = append(b.entities, e)
	return e
}

// Variant declares a polymorphic type. Candidate order is resolution order.
func (b *Builder) Variant(name string, candidates ...Candidate) *Builder {
	b.variants = append(b.variants, &Variant{Name: name, Candidates: candidates})
	return b
}

// Root binds a container entry (or a "dir/" prefix) to a content type.
func (b *Builder) Root(pattern string, t *Type) *Builder {
	b.roots = append(b.roots, Root{Pattern: pattern, Type: t})
	return b
}

// Tag sets the _class discriminator value.
func (e *entityBuilder) Tag(tag string) *entityBuilder { e.tag = tag; return e }

// Extends sets the base entity whose fields are inherited.
func (e *entityBuilder) Extends(base string) *entityBuilder { e.base = base; return e }

// Abstract marks an entity that only serves as a base.
func (e *entityBuilder) Abstract() *entityBuilder { e.abstract = true; return e }

// Entity ends this declaration and starts the next one.
func (e *entityBuilder) Entity(name string) *entityBuilder { return e.b.Entity(name) }

// Field registers a field with its type.
func (e *entityBuilder) Field(name string, t *Type) *fieldStep {
	e.fields = append(e.fields, Field{Name: name, Type: t, Owner: e.name})
	return &fieldStep{e: e, name: name}
}

// Required marks the field as required and returns the entity builder.
func (f *fieldStep) Required() *entityBuilder {
	f.e.required[f.name] = true
	return f.e
}

// Optional marks the field as optional and returns the entity builder.
func (f *fieldStep) Optional() *entityBuilder {
	delete(f.e.required, f.name)
	return f.e
}

// Candidate helpers.

// StringCandidate matches JSON strings.
func StringCandidate() Candidate { return Candidate{Type: String()} }

// EntityCandidate matches by the entity's tag.
func EntityCandidate(entity string) Candidate { return Candidate{Type: Ref(entity)} }

// KeyedCandidate matches an untagged entity by the presence of key.
func KeyedCandidate(entity, key string) Candidate { return Candidate{Type: Ref(entity), Key: key} }

// MapCandidate matches any JSON object not claimed by an earlier candidate.
func MapCandidate(t *Type) Candidate { return Candidate{Type: t} }

// Build resolves inheritance and validates references.
func (b *Builder) Build() (*Registry, error) {
	r := &Registry{
		entities: map[string]*Entity{},
		byTag:    map[string]*Entity{},
		variants: map[string]*Variant{},
		roots:    append([]Root(nil), b.roots...),
	}
	decl := map[string]*entityBuilder{}
	for _, e := range b.entities {
		if _, dup := decl[e.name]; dup {
			return nil, errors.Errorf("entity %q declared twice", e.name)
		}
		decl[e.name] = e
	}
	for _, v := range b.variants {
		if _, dup := r.variants[v.Name]; dup {
			return nil, errors.Errorf("variant %q declared twice", v.Name)
		}
		r.variants[v.Name] = v
	}

	var resolve func(name string, seen map[string]bool) (*Entity, error)
	resolve = func(name string, seen map[string]bool) (*Entity, error) {
		if ent, ok := r.entities[name]; ok {
			return ent, nil
		}
		eb, ok := decl[name]
		if !ok {
			return nil, errors.Errorf("unknown entity %q", name)
		}
		if seen[name] {
			return nil, errors.Errorf("inheritance cycle at %q", name)
		}
		seen[name] = true
		ent := &Entity{Name: eb.name, Tag: eb.tag, Base: eb.base, Abstract: eb.abstract, index: map[string]int{}}
		for _, f := range eb.fields {
			f.Required = eb.required[f.Name]
			ent.own = append(ent.own, f)
		}
		if eb.base != "" {
			base, err := resolve(eb.base, seen)
			if err != nil {
				return nil, errors.Errorf("entity %q: %w", name, err)
			}
			for _, f := range base.fields {
				ent.index[f.Name] = len(ent.fields)
				ent.fields = append(ent.fields, f)
			}
		}
		for _, f := range ent.own {
			if i, ok := ent.index[f.Name]; ok {
				ent.fields[i] = f
				continue
			}
			ent.index[f.Name] = len(ent.fields)
			ent.fields = append(ent.fields, f)
		}
		r.entities[name] = ent
		return ent, nil
	}

	names := make([]string, 0, len(decl))
	for n := range decl {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		if _, err := resolve(n, map[string]bool{}); err != nil {
			return nil, err
		}
	}

	for _, n := range names {
		ent := r.entities[n]
		if ent.Tag != "" && !ent.Abstract {
			if prev, dup := r.byTag[ent.Tag]; dup {
				return nil, errors.Errorf("tag %q used by %q and %q", ent.Tag, prev.Name, ent.Name)
			}
			r.byTag[ent.Tag] = ent
		}
		for _, f := range ent.fields {
			if err := r.checkType(f.Type); err != nil {
				return nil, errors.Errorf("%s.%s: %w", ent.Name, f.Name, err)
			}
		}
	}
	for _, v := range b.variants {
		if len(v.Candidates) == 0 {
			return nil, errors.Errorf("variant %q has no candidates", v.Name)
		}
		for i, c := range v.Candidates {
			if err := r.checkType(c.Type); err != nil {
				return nil, errors.Errorf("variant %q candidate %d: %w", v.Name, i, err)
			}
			if c.Type.Kind == KindEntity {
				ent := r.entities[c.Type.Name]
				if ent.Tag == "" && c.Key == "" {
					return nil, errors.Errorf("variant %q candidate %q is untagged and has no distinguishing key", v.Name, ent.Name)
				}
				if c.Key != "" && !ent.Known(c.Key) {
					return nil, errors.Errorf("variant %q candidate %q: distinguishing key %q is not a field", v.Name, ent.Name, c.Key)
				}
			}
		}
	}
	for _, rt := range r.roots {
		if err := r.checkType(rt.Type); err != nil {
			return nil, errors.Errorf("root %q: %w", rt.Pattern, err)
		}
	}
	return r, nil
}

// MustBuild is like Build but panics on error.
func (b *Builder) MustBuild() *Registry {
	r, err := b.Build()
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Registry) checkType(t *Type) error {
	if t == nil {
		return errors.New("nil type")
	}
	switch t.Kind {
	case KindEntity:
		if _, ok := r.entities[t.Name]; !ok {
			return errors.Errorf("unknown entity %q", t.Name)
		}
	case KindVariant:
		if _, ok := r.variants[t.Name]; !ok {
			return errors.Errorf("unknown variant %q", t.Name)
		}
	case KindList:
		return r.checkType(t.Elem)
	case KindMap:
		if t.Key == nil || (t.Key.Kind != KindString && t.Key.Kind != KindTagged) {
			return errors.New("map key must be string or tagged")
		}
		return r.checkType(t.Elem)
	}
	return nil
}

package codec

import (
	"reflect"
	"sort"

	"gitlab.com/tozd/go/errors"

	sketchkit "github.com/reoring/sketchkit"
	"github.com/reoring/sketchkit/model"
	"github.com/reoring/sketchkit/schema"
)

// ErrUnbound is returned when encoding a value whose Go type has no binding.
var ErrUnbound = errors.New("no binding for Go type")

type encoder struct {
	bs     *Bindings
	extras Extras
	// presence enables preserving output: required fields that were absent
	// on decode and still hold their default are omitted again.
	presence sketchkit.PresenceMap
}

func (e *encoder) value(t *schema.Type, v reflect.Value, out sketchkit.PathRef) (any, error) {
	if ov, ok := optional(v); ok {
		if !ov.IsSet() {
			return nil, nil
		}
		v = reflect.ValueOf(ov.Interface())
	}
	switch t.Kind {
	case schema.KindAny:
		if !v.IsValid() || isNil(v) {
			return nil, nil
		}
		return v.Interface(), nil
	case schema.KindString, schema.KindTagged:
		return v.String(), nil
	case schema.KindBool:
		return v.Bool(), nil
	case schema.KindInt:
		return v.Int(), nil
	case schema.KindFloat:
		return v.Float(), nil
	case schema.KindList:
		items := make([]any, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			el, err := e.value(t.Elem, v.Index(i), out.Index(i))
			if err != nil {
				return nil, err
			}
			items = append(items, el)
		}
		return items, nil
	case schema.KindMap:
		return e.mapping(t, v, out)
	case schema.KindEntity:
		if v.IsNil() {
			b, ok := e.bs.Entity(t.Name)
			if !ok {
				return nil, errors.Errorf("%w: %s", ErrUnbound, t.Name)
			}
			v = reflect.ValueOf(b.New())
		}
		return e.entity(v, out)
	case schema.KindVariant:
		return e.variant(t.Name, v, out)
	}
	return nil, errors.Errorf("cannot encode %s at %s", t, out.Pointer())
}

func (e *encoder) mapping(t *schema.Type, v reflect.Value, out sketchkit.PathRef) (map[string]any, error) {
	m := make(map[string]any, v.Len())
	keys := v.MapKeys()
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	for _, k := range keys {
		el, err := e.value(t.Elem, v.MapIndex(k), out.Field(k.String()))
		if err != nil {
			return nil, err
		}
		m[k.String()] = el
	}
	return m, nil
}

// entity encodes a *T. Unset optional fields are omitted. Retained
// passthrough keys are added back unless a declared field took the key.
func (e *encoder) entity(ptr reflect.Value, out sketchkit.PathRef) (map[string]any, error) {
	b, ok := e.bs.ForType(ptr.Type())
	if !ok {
		return nil, errors.Errorf("%w: %s", ErrUnbound, ptr.Type())
	}
	ent := b.Entity
	m := map[string]any{}
	if ent.Tag != "" {
		m[schema.ClassKey] = ent.Tag
	}
	var def reflect.Value
	for _, f := range ent.Fields() {
		fv := b.field(ptr, f.Name)
		fout := out.Field(f.Name)
		if !f.Required && unset(fv) {
			continue
		}
		if f.Required && e.defaultOnly(fout.Pointer()) {
			if !def.IsValid() {
				def = reflect.ValueOf(b.New())
			}
			if reflect.DeepEqual(fv.Interface(), b.field(def, f.Name).Interface()) {
				continue
			}
		}
		val, err := e.value(f.Type, fv, fout)
		if err != nil {
			return nil, err
		}
		m[f.Name] = val
	}
	for k, x := range e.extras.Get(ptr.Interface()) {
		if _, taken := m[k]; !taken {
			m[k] = x
		}
	}
	return m, nil
}

func (e *encoder) defaultOnly(path string) bool {
	if e.presence == nil {
		return false
	}
	p := e.presence[path]
	return p.Has(sketchkit.PresenceDefaultApplied) && p&(sketchkit.PresenceSeen|sketchkit.PresenceWasNull) == 0
}

func (e *encoder) variant(name string, v reflect.Value, out sketchkit.PathRef) (any, error) {
	if !v.IsValid() || isNil(v) {
		return nil, nil
	}
	if v.Kind() == reflect.Interface {
		v = v.Elem()
	}
	if r, ok := v.Interface().(*model.Raw); ok {
		return r.Value, nil
	}
	vb, ok := e.bs.Variant(name)
	if !ok {
		return nil, errors.Errorf("%w: variant %s", ErrUnbound, name)
	}
	switch {
	case vb.String != nil && v.Type() == vb.String:
		return v.String(), nil
	case vb.Map != nil && v.Type() == vb.Map:
		for _, c := range vb.Variant.Candidates {
			if c.Type.Kind == schema.KindMap {
				return e.mapping(c.Type, v, out)
			}
		}
	case v.Kind() == reflect.Pointer:
		if v.IsNil() {
			return nil, nil
		}
		return e.entity(v, out)
	}
	return nil, errors.Errorf("%w: %s in variant %s", ErrUnbound, v.Type(), name)
}

func optional(v reflect.Value) (model.OptionalValue, bool) {
	if !v.IsValid() || !v.CanAddr() {
		return nil, false
	}
	ov, ok := v.Addr().Interface().(model.OptionalValue)
	return ov, ok
}

// unset reports whether an optional field holds its "absent" value.
func unset(v reflect.Value) bool {
	if ov, ok := optional(v); ok {
		return !ov.IsSet()
	}
	switch v.Kind() {
	case reflect.String:
		return v.Len() == 0
	case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map:
		return v.IsNil()
	}
	return false
}

func isNil(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map:
		return v.IsNil()
	}
	return false
}

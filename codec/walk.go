package codec

import (
	"reflect"
	"sort"

	"gitlab.com/tozd/go/errors"

	"github.com/reoring/sketchkit/schema"
)

// SkipChildren may be returned by a WalkFunc to skip the entity's subtree.
var SkipChildren = errors.Base("skip children")

// WalkFunc is called for every bound entity with its _class tag ("" for
// untagged entities).
type WalkFunc func(v any, tag string) error

// Walk visits root and every entity reachable from it, parents before
// children, in field declaration order. Map values are visited in key
// order. Raw variant values are not visited.
func Walk(root any, fn WalkFunc) error { return Sketch().Walk(root, fn) }

// Walk is the package-level Walk over bs.
func (bs *Bindings) Walk(root any, fn WalkFunc) error {
	err := bs.walk(reflect.ValueOf(root), fn)
	if errors.Is(err, SkipChildren) {
		return nil
	}
	return err
}

func (bs *Bindings) walk(v reflect.Value, fn WalkFunc) error {
	if !v.IsValid() {
		return nil
	}
	switch v.Kind() {
	case reflect.Interface:
		if v.IsNil() {
			return nil
		}
		return bs.walk(v.Elem(), fn)
	case reflect.Slice:
		for i := 0; i < v.Len(); i++ {
			if err := bs.walk(v.Index(i), fn); err != nil {
				return err
			}
		}
	case reflect.Map:
		keys := v.MapKeys()
		sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
		for _, k := range keys {
			if err := bs.walk(v.MapIndex(k), fn); err != nil {
				return err
			}
		}
	case reflect.Pointer:
		if v.IsNil() {
			return nil
		}
		b, ok := bs.ForType(v.Type())
		if !ok {
			return nil
		}
		err := fn(v.Interface(), b.Entity.Tag)
		if errors.Is(err, SkipChildren) {
			return nil
		}
		if err != nil {
			return err
		}
		for _, f := range b.Entity.Fields() {
			if !nested(f.Type) {
				continue
			}
			if err := bs.walk(b.field(v, f.Name), fn); err != nil {
				return err
			}
		}
	}
	return nil
}

// nested reports whether values of t can contain entities.
func nested(t *schema.Type) bool {
	switch t.Kind {
	case schema.KindEntity, schema.KindVariant:
		return true
	case schema.KindList, schema.KindMap:
		return nested(t.Elem)
	}
	return false
}

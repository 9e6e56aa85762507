package sketchkit

import (
	"reflect"
	"strings"
)

// ResolveStructKey applies the repository-wide rule to resolve a struct field's
// external key used by the codec bindings.
// Priority: sketch:"name=..." > json tag name > field name; "-" disables the field.
func ResolveStructKey(sf reflect.StructField) string {
	if gt := sf.Tag.Get("sketch"); gt != "" {
		parts := strings.Split(gt, ",")
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if strings.HasPrefix(p, "name=") {
				return strings.TrimPrefix(p, "name=")
			}
		}
	}
	if jt := sf.Tag.Get("json"); jt != "" {
		if jt == "-" {
			return "-"
		}
		if i := strings.IndexByte(jt, ','); i >= 0 {
			return jt[:i]
		}
		return jt
	}
	return sf.Name
}

// StructKeys returns external key -> field index path for every exported
// field of struct type t, including fields promoted from embedded structs.
// Embedded structs themselves are not keys.
func StructKeys(t reflect.Type) map[string][]int {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	out := map[string][]int{}
	if t.Kind() != reflect.Struct {
		return out
	}
	for _, sf := range reflect.VisibleFields(t) {
		if sf.Anonymous || !sf.IsExported() {
			continue
		}
		key := ResolveStructKey(sf)
		if key == "-" || key == "" {
			continue
		}
		// The shallower field wins when two Go names map to one key.
		if prev, ok := out[key]; ok && len(prev) <= len(sf.Index) {
			continue
		}
		out[key] = sf.Index
	}
	return out
}

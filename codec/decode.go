package codec

import (
	"context"
	"log/slog"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	slogctx "github.com/veqryn/slog-context"

	sketchkit "github.com/reoring/sketchkit"
	"github.com/reoring/sketchkit/model"
	"github.com/reoring/sketchkit/schema"
)

type decoder struct {
	ctx      context.Context
	bs       *Bindings
	unknown  sketchkit.UnknownPolicy
	extras   Extras
	presence sketchkit.PresenceMap
	iss      sketchkit.Issues
}

func (d *decoder) issue(it sketchkit.Issue) { d.iss = append(d.iss, it) }

// value decodes raw against t into a new value of Go type gt. in is the
// location in the input, used for issues; out is the location in the decoded
// graph, used for presence marks. ok is false when the subtree was rejected.
func (d *decoder) value(t *schema.Type, raw any, gt reflect.Type, in, out sketchkit.PathRef) (reflect.Value, bool) {
	if raw == nil {
		return reflect.Zero(gt), true
	}
	switch t.Kind {
	case schema.KindAny:
		v := reflect.ValueOf(raw)
		if !v.Type().AssignableTo(gt) {
			return d.mismatch(t, raw, in)
		}
		rv := reflect.New(gt).Elem()
		rv.Set(v)
		return rv, true
	case schema.KindString, schema.KindTagged:
		s, ok := raw.(string)
		if !ok || gt.Kind() != reflect.String {
			return d.mismatch(t, raw, in)
		}
		return reflect.ValueOf(s).Convert(gt), true
	case schema.KindBool:
		b, ok := raw.(bool)
		if !ok || gt.Kind() != reflect.Bool {
			return d.mismatch(t, raw, in)
		}
		return reflect.ValueOf(b).Convert(gt), true
	case schema.KindInt:
		if !isIntKind(gt.Kind()) {
			return d.mismatch(t, raw, in)
		}
		n, ok := d.integer(t, raw, in)
		if !ok {
			return reflect.Value{}, false
		}
		return reflect.ValueOf(n).Convert(gt), true
	case schema.KindFloat:
		f, ok := number(raw)
		if !ok || !isFloatKind(gt.Kind()) {
			return d.mismatch(t, raw, in)
		}
		return reflect.ValueOf(f).Convert(gt), true
	case schema.KindList:
		return d.list(t, raw, gt, in, out)
	case schema.KindMap:
		return d.mapping(t, raw, gt, in, out)
	case schema.KindEntity:
		m, ok := raw.(map[string]any)
		if !ok {
			return d.mismatch(t, raw, in)
		}
		b, ok := d.bs.Entity(t.Name)
		if !ok {
			return d.mismatch(t, raw, in)
		}
		v, ok := d.entity(b, m, in, out)
		if !ok {
			return reflect.Value{}, false
		}
		if !v.Type().AssignableTo(gt) {
			return d.mismatch(t, raw, in)
		}
		return v, true
	case schema.KindVariant:
		return d.variant(t.Name, raw, gt, in, out)
	}
	return d.mismatch(t, raw, in)
}

func (d *decoder) mismatch(t *schema.Type, raw any, in sketchkit.PathRef) (reflect.Value, bool) {
	d.issue(sketchkit.IssueAt(in, sketchkit.CodeInvalidType, "want "+t.String(),
		map[string]any{"expected": t.String(), "got": jsonKind(raw)}))
	return reflect.Value{}, false
}

func (d *decoder) list(t *schema.Type, raw any, gt reflect.Type, in, out sketchkit.PathRef) (reflect.Value, bool) {
	arr, ok := raw.([]any)
	if !ok || gt.Kind() != reflect.Slice {
		return d.mismatch(t, raw, in)
	}
	s := reflect.MakeSlice(gt, 0, len(arr))
	for i, el := range arr {
		v, ok := d.value(t.Elem, el, gt.Elem(), in.Index(i), out.Index(s.Len()))
		if !ok {
			continue
		}
		s = reflect.Append(s, v)
	}
	return s, true
}

func (d *decoder) mapping(t *schema.Type, raw any, gt reflect.Type, in, out sketchkit.PathRef) (reflect.Value, bool) {
	obj, ok := raw.(map[string]any)
	if !ok || gt.Kind() != reflect.Map || gt.Key().Kind() != reflect.String {
		return d.mismatch(t, raw, in)
	}
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	m := reflect.MakeMapWithSize(gt, len(obj))
	for _, k := range keys {
		v, ok := d.value(t.Elem, obj[k], gt.Elem(), in.Field(k), out.Field(k))
		if !ok {
			continue
		}
		m.SetMapIndex(reflect.ValueOf(k).Convert(gt.Key()), v)
	}
	return m, true
}

// entity decodes one object into a fresh default instance of b. Presence
// marks of the entity only reach the caller when it is accepted.
func (d *decoder) entity(b *Binding, m map[string]any, in, out sketchkit.PathRef) (reflect.Value, bool) {
	ent := b.Entity
	ptr := reflect.ValueOf(b.New())

	if cls, ok := m[schema.ClassKey]; ok && ent.Tag != "" && cls != ent.Tag {
		d.issue(sketchkit.WarnAt(in.Field(schema.ClassKey), sketchkit.CodeDiscriminatorMismatch, ent.Tag,
			map[string]any{"expected": ent.Tag, "got": cls}))
	}

	var unknown []string
	for k := range m {
		if !ent.Known(k) {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		params := map[string]any{"entity": ent.Name, "keys": unknown}
		hint := strings.Join(unknown, ", ")
		switch d.unknown {
		case sketchkit.UnknownStrip:
			d.issue(sketchkit.WarnAt(in, sketchkit.CodeUnknownKey, hint, params))
		case sketchkit.UnknownPassthrough:
			kept := make(map[string]any, len(unknown))
			for _, k := range unknown {
				kept[k] = m[k]
			}
			d.extras.put(ptr.Interface(), kept)
		default:
			d.issue(sketchkit.IssueAt(in, sketchkit.CodeUnknownKey, hint, params))
			slogctx.FromCtx(d.ctx).Warn("entity rejected",
				slog.String("entity", ent.Name), slog.String("path", in.Pointer()), slog.Any("keys", unknown))
			return reflect.Value{}, false
		}
	}

	parent := d.presence
	if parent != nil {
		d.presence = sketchkit.PresenceMap{}
		defer func() { d.presence = parent }()
	}
	for _, f := range ent.Fields() {
		fin, fout := in.Field(f.Name), out.Field(f.Name)
		raw, present := m[f.Name]
		if !present {
			if f.Required {
				d.issue(sketchkit.WarnAt(fin, sketchkit.CodeRequired, f.Name,
					map[string]any{"entity": ent.Name, "field": f.Name}))
				slogctx.FromCtx(d.ctx).Debug("required field missing",
					slog.String("entity", ent.Name), slog.String("path", fin.Pointer()))
				d.presence.Mark(fout.Pointer(), sketchkit.PresenceDefaultApplied)
			}
			continue
		}
		d.presence.Mark(fout.Pointer(), sketchkit.PresenceSeen)
		fv := b.field(ptr, f.Name)
		if raw == nil {
			// Null leaves the default in place.
			d.presence.Mark(fout.Pointer(), sketchkit.PresenceWasNull)
			continue
		}
		if ov, ok := fv.Addr().Interface().(model.OptionalValue); ok {
			if v, ok := d.value(f.Type, raw, ov.ElemType(), fin, fout); ok {
				ov.SetInterface(v.Interface())
			}
			continue
		}
		if v, ok := d.value(f.Type, raw, fv.Type(), fin, fout); ok {
			fv.Set(v)
		}
	}
	if parent != nil {
		for k, p := range d.presence {
			parent[k] |= p
		}
	}
	return ptr, true
}

// variant resolves a polymorphic value. Candidates are tried in this order:
// a JSON string selects the string candidate; an object with _class selects
// the candidate carrying that tag; an object without _class selects the
// first untagged entity candidate whose distinguishing key is present, then
// the map candidate. Anything else is kept raw with a warning.
func (d *decoder) variant(name string, raw any, gt reflect.Type, in, out sketchkit.PathRef) (reflect.Value, bool) {
	vb, ok := d.bs.Variant(name)
	if !ok {
		return d.unresolved(name, raw, gt, in)
	}
	switch x := raw.(type) {
	case string:
		if vb.String != nil && hasCandidate(vb.Variant, schema.KindString) {
			return reflect.ValueOf(x).Convert(vb.String), true
		}
	case map[string]any:
		if cls, ok := x[schema.ClassKey].(string); ok {
			for _, c := range vb.Variant.Candidates {
				if c.Type.Kind != schema.KindEntity {
					continue
				}
				if b, ok := d.bs.Entity(c.Type.Name); ok && b.Entity.Tag == cls {
					return d.entity(b, x, in, out)
				}
			}
			return d.unresolved(name, raw, gt, in)
		}
		for _, c := range vb.Variant.Candidates {
			if c.Type.Kind != schema.KindEntity || c.Key == "" {
				continue
			}
			if _, ok := x[c.Key]; !ok {
				continue
			}
			if b, ok := d.bs.Entity(c.Type.Name); ok && b.Entity.Tag == "" {
				return d.entity(b, x, in, out)
			}
		}
		for _, c := range vb.Variant.Candidates {
			if c.Type.Kind == schema.KindMap && vb.Map != nil {
				return d.mapping(c.Type, x, vb.Map, in, out)
			}
		}
	}
	return d.unresolved(name, raw, gt, in)
}

func (d *decoder) unresolved(name string, raw any, gt reflect.Type, in sketchkit.PathRef) (reflect.Value, bool) {
	d.issue(sketchkit.WarnAt(in, sketchkit.CodeVariantUnresolved, name,
		map[string]any{"variant": name, "got": jsonKind(raw)}))
	slogctx.FromCtx(d.ctx).Warn("variant unresolved, keeping raw value",
		slog.String("variant", name), slog.String("path", in.Pointer()))
	r := reflect.ValueOf(&model.Raw{Value: raw})
	if !r.Type().AssignableTo(gt) {
		return reflect.Value{}, false
	}
	return r, true
}

func hasCandidate(v *schema.Variant, k schema.Kind) bool {
	for _, c := range v.Candidates {
		if c.Type.Kind == k {
			return true
		}
	}
	return false
}

// integer accepts integral and floating input; fractions are truncated with
// a warning. Values outside the int64 range are rejected.
func (d *decoder) integer(t *schema.Type, raw any, in sketchkit.PathRef) (int64, bool) {
	if n, ok := raw.(json.Number); ok {
		if i, err := strconv.ParseInt(string(n), 10, 64); err == nil {
			return i, true
		}
	}
	f, ok := number(raw)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		_, ok = d.mismatch(t, raw, in)
		return 0, ok
	}
	if f < minInt64 || f >= maxInt64 {
		d.issue(sketchkit.IssueAt(in, sketchkit.CodeOutOfRange, strconv.FormatFloat(f, 'g', -1, 64),
			map[string]any{"value": f}))
		return 0, false
	}
	if whole := math.Trunc(f); whole != f {
		d.issue(sketchkit.WarnAt(in, sketchkit.CodeTruncated, strconv.FormatFloat(f, 'g', -1, 64),
			map[string]any{"value": f}))
		f = whole
	}
	return int64(f), true
}

// Bounds of int64 as floats. maxInt64 is 2^63 and itself out of range.
const (
	minInt64 = -(1 << 63)
	maxInt64 = 1 << 63
)

func number(raw any) (float64, bool) {
	switch n := raw.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func isIntKind(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Int64
}

func isFloatKind(k reflect.Kind) bool { return k == reflect.Float32 || k == reflect.Float64 }

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number, float64, float32, int, int64:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	}
	return reflect.TypeOf(v).String()
}

package codec

import (
	"reflect"
	"sort"
	"sync"

	"gitlab.com/tozd/go/errors"

	sketchkit "github.com/reoring/sketchkit"
	"github.com/reoring/sketchkit/model"
	"github.com/reoring/sketchkit/schema"
)

// ErrBinding is returned when a Go binding disagrees with its registry entity.
var ErrBinding = errors.New("binding does not match registry")

// Binding ties a registry entity to the Go struct that holds it.
type Binding struct {
	Entity *schema.Entity
	// Type is the struct type; values are always handled as *Type.
	Type reflect.Type
	// New returns a *Type holding the canonical default instance.
	New func() any

	keys map[string][]int
}

// Field returns the settable Go field for key inside the struct pointed to
// by ptr.
func (b *Binding) field(ptr reflect.Value, key string) reflect.Value {
	return ptr.Elem().FieldByIndex(b.keys[key])
}

// VariantBinding names the Go types of a variant.
type VariantBinding struct {
	Variant *schema.Variant
	// Iface is the sealed interface every candidate implements.
	Iface reflect.Type
	// String and Map are the Go types of the string and map candidates, if
	// the variant has them.
	String reflect.Type
	Map    reflect.Type
}

// Bindings is the immutable Go side of a registry.
type Bindings struct {
	reg      *schema.Registry
	byName   map[string]*Binding
	byType   map[reflect.Type]*Binding
	variants map[string]*VariantBinding
}

// Registry returns the registry the bindings were checked against.
func (bs *Bindings) Registry() *schema.Registry { return bs.reg }

// Entity looks up the binding of a registry entity.
func (bs *Bindings) Entity(name string) (*Binding, bool) {
	b, ok := bs.byName[name]
	return b, ok
}

// ForType looks up the binding of a Go struct type (or pointer to it).
func (bs *Bindings) ForType(t reflect.Type) (*Binding, bool) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	b, ok := bs.byType[t]
	return b, ok
}

// Variant looks up the binding of a variant.
func (bs *Bindings) Variant(name string) (*VariantBinding, bool) {
	v, ok := bs.variants[name]
	return v, ok
}

// TagOf returns the _class of a bound entity value, or "" when v is not a
// bound tagged entity.
func (bs *Bindings) TagOf(v any) string {
	if v == nil {
		return ""
	}
	if b, ok := bs.ForType(reflect.TypeOf(v)); ok {
		return b.Entity.Tag
	}
	return ""
}

// NewBindings checks every constructor against reg and returns the bindings.
// Each concrete entity needs a constructor; abstract ones must not have one.
// The external keys of the Go struct (json tags) must equal the entity's
// resolved field set, optional primitives must be model.Optional and
// required fields must not be.
func NewBindings(reg *schema.Registry, ctors map[string]func() any, variants map[string]VariantBinding) (*Bindings, error) {
	bs := &Bindings{
		reg:      reg,
		byName:   map[string]*Binding{},
		byType:   map[reflect.Type]*Binding{},
		variants: map[string]*VariantBinding{},
	}
	var errs []error
	for _, e := range reg.Entities() {
		ctor, ok := ctors[e.Name]
		if e.Abstract {
			if ok {
				errs = append(errs, errors.Errorf("%w: abstract entity %s has a constructor", ErrBinding, e.Name))
			}
			continue
		}
		if !ok {
			errs = append(errs, errors.Errorf("%w: entity %s has no constructor", ErrBinding, e.Name))
			continue
		}
		b, err := bind(e, ctor)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if prev, dup := bs.byType[b.Type]; dup {
			errs = append(errs, errors.Errorf("%w: %s and %s share Go type %s", ErrBinding, prev.Entity.Name, e.Name, b.Type))
			continue
		}
		bs.byName[e.Name] = b
		bs.byType[b.Type] = b
	}
	for name := range ctors {
		if _, ok := reg.Entity(name); !ok {
			errs = append(errs, errors.Errorf("%w: constructor for unknown entity %s", ErrBinding, name))
		}
	}
	for _, v := range reg.Variants() {
		vb, ok := variants[v.Name]
		if !ok {
			errs = append(errs, errors.Errorf("%w: variant %s has no binding", ErrBinding, v.Name))
			continue
		}
		vb.Variant = v
		if err := bs.checkVariant(&vb); err != nil {
			errs = append(errs, err)
			continue
		}
		bs.variants[v.Name] = &vb
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return bs, nil
}

func bind(e *schema.Entity, ctor func() any) (*Binding, error) {
	v := ctor()
	pt := reflect.TypeOf(v)
	if pt == nil || pt.Kind() != reflect.Pointer || pt.Elem().Kind() != reflect.Struct {
		return nil, errors.Errorf("%w: constructor of %s must return a struct pointer, got %v", ErrBinding, e.Name, pt)
	}
	b := &Binding{Entity: e, Type: pt.Elem(), New: ctor, keys: sketchkit.StructKeys(pt.Elem())}

	var missing, extra []string
	for _, f := range e.Fields() {
		idx, ok := b.keys[f.Name]
		if !ok {
			missing = append(missing, f.Name)
			continue
		}
		ft := b.Type.FieldByIndex(idx).Type
		_, isOpt := reflect.New(ft).Interface().(model.OptionalValue)
		switch {
		case f.Required && isOpt:
			return nil, errors.Errorf("%w: %s.%s is required but bound to %s", ErrBinding, e.Name, f.Name, ft)
		case !f.Required && !isOpt && isPrimitive(f.Type.Kind):
			return nil, errors.Errorf("%w: %s.%s is optional but bound to %s", ErrBinding, e.Name, f.Name, ft)
		}
	}
	for k := range b.keys {
		if _, ok := e.Field(k); !ok {
			extra = append(extra, k)
		}
	}
	if len(missing) > 0 || len(extra) > 0 {
		sort.Strings(extra)
		return nil, errors.Errorf("%w: %s missing Go fields %v, undeclared Go fields %v", ErrBinding, e.Name, missing, extra)
	}
	return b, nil
}

func isPrimitive(k schema.Kind) bool {
	return k == schema.KindBool || k == schema.KindInt || k == schema.KindFloat || k == schema.KindString
}

func (bs *Bindings) checkVariant(vb *VariantBinding) error {
	if vb.Iface == nil || vb.Iface.Kind() != reflect.Interface {
		return errors.Errorf("%w: variant %s needs an interface type", ErrBinding, vb.Variant.Name)
	}
	raw := reflect.TypeFor[*model.Raw]()
	if !raw.Implements(vb.Iface) {
		return errors.Errorf("%w: variant %s has no raw fallback", ErrBinding, vb.Variant.Name)
	}
	for _, c := range vb.Variant.Candidates {
		var gt reflect.Type
		switch c.Type.Kind {
		case schema.KindString:
			gt = vb.String
		case schema.KindMap:
			gt = vb.Map
		case schema.KindEntity:
			if b, ok := bs.byName[c.Type.Name]; ok {
				gt = reflect.PointerTo(b.Type)
			}
		}
		if gt == nil || !gt.Implements(vb.Iface) {
			return errors.Errorf("%w: candidate %s of %s does not implement %s", ErrBinding, c.Type, vb.Variant.Name, vb.Iface)
		}
	}
	return nil
}

func ctor[T any](f func() *T) func() any { return func() any { return f() } }

// Sketch returns the bindings of the Sketch registry to package model.
func Sketch() *Bindings { return sketchBindings() }

var sketchBindings = sync.OnceValue(func() *Bindings {
	bs, err := NewBindings(schema.Sketch(), sketchConstructors(), sketchVariants())
	if err != nil {
		panic(err)
	}
	return bs
})

func sketchConstructors() map[string]func() any {
	return map[string]func() any{
		"Rect":                     ctor(model.NewRect),
		"ColorComponents":          ctor(model.NewColorComponents),
		"Color":                    ctor(model.NewColor),
		"GraphicsContextSettings":  ctor(model.NewGraphicsContextSettings),
		"CurvePoint":               ctor(model.NewCurvePoint),
		"Path":                     ctor(model.NewPath),
		"RulerData":                ctor(model.NewRulerData),
		"SimpleGrid":               ctor(model.NewSimpleGrid),
		"LayoutGrid":               ctor(model.NewLayoutGrid),
		"ExportFormat":             ctor(model.NewExportFormat),
		"ExportOptions":            ctor(model.NewExportOptions),
		"PresetDictionary":         ctor(model.NewPresetDictionary),
		"Border":                   ctor(model.NewBorder),
		"BorderOptions":            ctor(model.NewBorderOptions),
		"GradientStop":             ctor(model.NewGradientStop),
		"Gradient":                 ctor(model.NewGradient),
		"Fill":                     ctor(model.NewFill),
		"Shadow":                   ctor(model.NewShadow),
		"InnerShadow":              ctor(model.NewInnerShadow),
		"Blur":                     ctor(model.NewBlur),
		"ColorControls":            ctor(model.NewColorControls),
		"Style":                    ctor(model.NewStyle),
		"SharedStyle":              ctor(model.NewSharedStyle),
		"SharedStyleContainer":     ctor(model.NewSharedStyleContainer),
		"SharedTextStyleContainer": ctor(model.NewSharedTextStyleContainer),
		"KeyValueArchive":          ctor(model.NewKeyValueArchive),
		"FontDescriptorAttributes": ctor(model.NewFontDescriptorAttributes),
		"FontDescriptor":           ctor(model.NewFontDescriptor),
		"ParagraphStyle":           ctor(model.NewParagraphStyle),
		"TextStyleAttributes":      ctor(model.NewTextStyleAttributes),
		"TextStyle":                ctor(model.NewTextStyle),
		"StringAttribute":          ctor(model.NewStringAttribute),
		"AttributedString":         ctor(model.NewAttributedString),
		"LegacyAttributedString":   ctor(model.NewLegacyAttributedString),
		"DataBlob":                 ctor(model.NewDataBlob),
		"ImageDataReference":       ctor(model.NewImageDataReference),
		"FileReference":            ctor(model.NewFileReference),
		"OverrideEntry":            ctor(model.NewOverrideEntry),
		"SymbolIDOverride":         ctor(model.NewSymbolIDOverride),
		"Page":                     ctor(model.NewPageDefault),
		"Artboard":                 ctor(model.NewArtboardDefault),
		"SymbolMaster":             ctor(model.NewSymbolMasterDefault),
		"SymbolInstance":           ctor(model.NewSymbolInstanceDefault),
		"Group":                    ctor(model.NewGroupDefault),
		"ShapeGroup":               ctor(model.NewShapeGroupDefault),
		"Rectangle":                ctor(model.NewRectangleDefault),
		"Oval":                     ctor(model.NewOvalDefault),
		"ShapePath":                ctor(model.NewShapePathDefault),
		"Text":                     ctor(model.NewTextDefault),
		"Bitmap":                   ctor(model.NewBitmapDefault),
		"ImageCollection":          ctor(model.NewImageCollection),
		"AssetCollection":          ctor(model.NewAssetCollection),
		"SymbolContainer":          ctor(model.NewSymbolContainer),
		"Document":                 ctor(model.NewDocument),
		"CreateMeta":               ctor(model.NewCreateMeta),
		"Metadata":                 ctor(model.NewMetadata),
		"ArtboardDescription":      ctor(model.NewArtboardDescription),
		"PageArtboards":            ctor(model.NewPageArtboards),
		"UserEntry":                ctor(model.NewUserEntry),
	}
}

func sketchVariants() map[string]VariantBinding {
	return map[string]VariantBinding{
		schema.VariantLayer: {Iface: reflect.TypeFor[model.Layer]()},
		schema.VariantOverrideValue: {
			Iface:  reflect.TypeFor[model.OverrideValue](),
			String: reflect.TypeFor[model.OverrideText](),
			Map:    reflect.TypeFor[model.OverrideMap](),
		},
		schema.VariantAttributedText:     {Iface: reflect.TypeFor[model.AttributedText]()},
		schema.VariantFontAttribute:      {Iface: reflect.TypeFor[model.FontAttribute]()},
		schema.VariantParagraphAttribute: {Iface: reflect.TypeFor[model.ParagraphAttribute]()},
		schema.VariantImageReference:     {Iface: reflect.TypeFor[model.ImageReference]()},
	}
}

// Package schema is the declarative registry of Sketch document entities.
//
// Every entity lists its fields with a type classification and a
// required/optional flag. Inheritance is a union of the base entity's fields
// with the entity's own fields, where an own field overrides a base field of
// the same name. Polymorphic fields refer to named variants whose candidate
// order is the resolution order used by the codec.
package schema

import "fmt"

// Kind classifies a field type.
type Kind int

const (
	KindString Kind = iota
	KindBool
	KindInt
	KindFloat
	// KindAny is opaque JSON kept verbatim.
	KindAny
	// KindTagged is a labeled string wrapper (identifiers, geometry strings).
	KindTagged
	KindList
	KindMap
	KindEntity
	KindVariant
)

var kindNames = [...]string{
	KindString:  "string",
	KindBool:    "bool",
	KindInt:     "int",
	KindFloat:   "float",
	KindAny:     "any",
	KindTagged:  "tagged",
	KindList:    "list",
	KindMap:     "map",
	KindEntity:  "entity",
	KindVariant: "variant",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Tagged value labels.
const (
	LabelObjectID    = "ObjectID"
	LabelPointString = "PointString"
	LabelRectString  = "RectString"
	LabelArchive     = "Base64Plist"
)

// Type is a field type. Name carries the tagged-value label, the entity name
// or the variant name depending on Kind.
type Type struct {
	Kind Kind
	Name string
	Key  *Type // map key (KindString or KindTagged)
	Elem *Type // list element / map value
}

func (t *Type) String() string {
	switch t.Kind {
	case KindTagged, KindEntity, KindVariant:
		return t.Name
	case KindList:
		return "[]" + t.Elem.String()
	case KindMap:
		return "map[" + t.Key.String() + "]" + t.Elem.String()
	default:
		return t.Kind.String()
	}
}

var (
	stringType = &Type{Kind: KindString}
	boolType   = &Type{Kind: KindBool}
	intType    = &Type{Kind: KindInt}
	floatType  = &Type{Kind: KindFloat}
	anyType    = &Type{Kind: KindAny}
)

func String() *Type { return stringType }
func Bool() *Type   { return boolType }
func Int() *Type    { return intType }
func Float() *Type  { return floatType }
func Any() *Type    { return anyType }

// Tagged declares a labeled string wrapper.
func Tagged(label string) *Type { return &Type{Kind: KindTagged, Name: label} }

// ObjectID is Tagged(LabelObjectID).
func ObjectID() *Type { return Tagged(LabelObjectID) }

// Point is Tagged(LabelPointString), a "{x, y}" string.
func Point() *Type { return Tagged(LabelPointString) }

// RectString is Tagged(LabelRectString), a "{{x, y}, {w, h}}" string.
func RectString() *Type { return Tagged(LabelRectString) }

// ListOf declares an ordered sequence.
func ListOf(elem *Type) *Type { return &Type{Kind: KindList, Elem: elem} }

// MapOf declares a key -> value mapping. key must be String() or a Tagged type.
func MapOf(key, elem *Type) *Type { return &Type{Kind: KindMap, Key: key, Elem: elem} }

// Ref declares a nested entity by registry name.
func Ref(entity string) *Type { return &Type{Kind: KindEntity, Name: entity} }

// OneOf declares a polymorphic field by variant name.
func OneOf(variant string) *Type { return &Type{Kind: KindVariant, Name: variant} }

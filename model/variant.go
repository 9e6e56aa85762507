package model

// Sealed variant interfaces. Each polymorphic field holds one of the listed
// implementations, or *Raw when the input could not be resolved. A nil
// interface means the field is unset.

// ImageReference is an ImageDataReference or a FileReference.
type ImageReference interface{ isImageReference() }

// AttributedText is an AttributedString or a LegacyAttributedString.
type AttributedText interface{ isAttributedText() }

// FontAttribute is a FontDescriptor or a legacy KeyValueArchive.
type FontAttribute interface{ isFontAttribute() }

// ParagraphAttribute is a ParagraphStyle or a legacy KeyValueArchive.
type ParagraphAttribute interface{ isParagraphAttribute() }

// OverrideValue is an OverrideText, an ImageDataReference, a
// SymbolIDOverride or a nested OverrideMap.
type OverrideValue interface{ isOverrideValue() }

func (*ImageDataReference) isImageReference() {}
func (*FileReference) isImageReference()      {}

func (*AttributedString) isAttributedText()       {}
func (*LegacyAttributedString) isAttributedText() {}

func (*FontDescriptor) isFontAttribute()  {}
func (*KeyValueArchive) isFontAttribute() {}

func (*ParagraphStyle) isParagraphAttribute()  {}
func (*KeyValueArchive) isParagraphAttribute() {}

func (OverrideText) isOverrideValue()        {}
func (OverrideMap) isOverrideValue()         {}
func (*SymbolIDOverride) isOverrideValue()   {}
func (*ImageDataReference) isOverrideValue() {}

// Raw is the fallback of every variant: the undecoded JSON value, kept so
// that it is written back unchanged.
type Raw struct {
	Value any
}

func (*Raw) isImageReference()     {}
func (*Raw) isAttributedText()     {}
func (*Raw) isFontAttribute()      {}
func (*Raw) isParagraphAttribute() {}
func (*Raw) isOverrideValue()      {}
func (*Raw) isLayer()              {}

// Class returns the _class of a raw object, if any.
func (r *Raw) Class() string {
	if m, ok := r.Value.(map[string]any); ok {
		if s, ok := m["_class"].(string); ok {
			return s
		}
	}
	return ""
}

// Base returns nil: a raw layer has no typed common fields.
func (r *Raw) Base() *LayerBase { return nil }

// DataBlob wraps inline base64 data.
type DataBlob struct {
	Data Optional[string] `json:"_data"`
}

// ImageDataReference points at an image entry inside the container.
type ImageDataReference struct {
	Ref      string    `json:"_ref"`
	RefClass string    `json:"_ref_class"`
	Data     *DataBlob `json:"data"`
	SHA1     *DataBlob `json:"sha1"`
}

// ImageRef returns a reference to the image entry at path.
func ImageRef(path string) *ImageDataReference {
	r := NewImageDataReference()
	r.Ref = path
	return r
}

// FileReference points at another JSON entry of the container.
type FileReference struct {
	RefClass string `json:"_ref_class"`
	Ref      string `json:"_ref"`
}

// Reference classes.
const (
	RefClassPage  = "MSImmutablePage"
	RefClassImage = "MSImageData"
)

// PagePath returns the reference path of a page, without extension.
func PagePath(id ObjectID) string { return "pages/" + string(id) }

// PageEntry returns the container entry name of a page.
func PageEntry(id ObjectID) string { return PagePath(id) + ".json" }

// PageReference returns the document.json reference to page id.
func PageReference(id ObjectID) *FileReference {
	return &FileReference{RefClass: RefClassPage, Ref: PagePath(id)}
}

// PageID extracts the page identifier from a page reference.
func (r *FileReference) PageID() (ObjectID, bool) {
	const prefix = "pages/"
	if len(r.Ref) <= len(prefix) || r.Ref[:len(prefix)] != prefix {
		return "", false
	}
	id := r.Ref[len(prefix):]
	if n := len(id); n > 5 && id[n-5:] == ".json" {
		id = id[:n-5]
	}
	return ObjectID(id), true
}

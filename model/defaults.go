package model

// Default constructors. Each returns the canonical default instance of an
// entity: required fields hold their default value, optional fields are
// unset. The decoder starts from these before applying input fields, and no
// constructor here generates identifiers.

func NewRect() *Rect { return &Rect{Width: 300, Height: 300} }

func NewColorComponents() *ColorComponents { return &ColorComponents{Alpha: 1} }
func NewColor() *Color                     { return RGBA(0, 0, 0, 1) }

func NewGraphicsContextSettings() *GraphicsContextSettings {
	return &GraphicsContextSettings{BlendMode: 0, Opacity: 1}
}

func NewCurvePoint() *CurvePoint {
	return &CurvePoint{
		CornerRadius: 1,
		CurveFrom:    Point(0, 0),
		CurveMode:    CurveStraight,
		CurveTo:      Point(0, 0),
		HasCurveFrom: true,
		HasCurveTo:   true,
		Point:        Point(0, 0),
	}
}

func NewPath() *Path                 { return &Path{IsClosed: true, Points: []*CurvePoint{}} }
func NewRulerData() *RulerData       { return &RulerData{Guides: []float64{}} }
func NewSimpleGrid() *SimpleGrid     { return &SimpleGrid{IsEnabled: true} }
func NewLayoutGrid() *LayoutGrid     { return &LayoutGrid{IsEnabled: true} }
func NewExportFormat() *ExportFormat { return &ExportFormat{AbsoluteSize: 1, FileFormat: "png", Scale: 1} }

func NewExportOptions() *ExportOptions {
	return &ExportOptions{ExportFormats: []*ExportFormat{}, IncludedLayerIds: []ObjectID{}}
}

func NewPresetDictionary() *PresetDictionary { return &PresetDictionary{} }

func NewBorder() *Border { return &Border{IsEnabled: true, Color: Black()} }

func NewBorderOptions() *BorderOptions {
	return &BorderOptions{IsEnabled: true, DashPattern: []float64{}, LineCapStyle: 1, LineJoinStyle: 1}
}

func NewGradientStop() *GradientStop { return &GradientStop{Color: White()} }

func NewGradient() *Gradient {
	return &Gradient{From: Point(0.5, 0), To: Point(0.5, 1), Stops: []*GradientStop{}}
}

func NewFill() *Fill {
	return &Fill{IsEnabled: true, Color: White(), FillType: FillSolid, PatternFillType: 1}
}

func NewShadow() *Shadow           { return &Shadow{ContextSettings: NewGraphicsContextSettings()} }
func NewInnerShadow() *InnerShadow { return &InnerShadow{Shadow: *NewShadow()} }

func NewBlur() *Blur                   { return &Blur{IsEnabled: true, Center: Point(0, 0)} }
func NewColorControls() *ColorControls { return &ColorControls{IsEnabled: true} }

func NewStyle() *Style { return &Style{MiterLimit: 10} }

func NewSharedStyle() *SharedStyle { return &SharedStyle{} }

func NewSharedStyleContainer() *SharedStyleContainer {
	return &SharedStyleContainer{Objects: []*SharedStyle{}}
}

func NewSharedTextStyleContainer() *SharedTextStyleContainer {
	return &SharedTextStyleContainer{Objects: []*SharedStyle{}}
}

func NewKeyValueArchive() *KeyValueArchive { return &KeyValueArchive{} }

func NewFontDescriptorAttributes() *FontDescriptorAttributes {
	return &FontDescriptorAttributes{Name: "Helvetica", Size: 12}
}

func NewFontDescriptor() *FontDescriptor {
	return &FontDescriptor{Attributes: NewFontDescriptorAttributes()}
}

func NewParagraphStyle() *ParagraphStyle { return &ParagraphStyle{} }

func NewTextStyleAttributes() *TextStyleAttributes {
	return &TextStyleAttributes{Font: NewFontDescriptor(), ParagraphStyle: NewParagraphStyle()}
}

func NewTextStyle() *TextStyle { return &TextStyle{EncodedAttributes: NewTextStyleAttributes()} }

func NewStringAttribute() *StringAttribute {
	return &StringAttribute{Attributes: NewTextStyleAttributes()}
}

func NewAttributedString() *AttributedString {
	return &AttributedString{Attributes: []*StringAttribute{}}
}

func NewLegacyAttributedString() *LegacyAttributedString {
	return &LegacyAttributedString{ArchivedAttributedString: NewKeyValueArchive()}
}

func NewDataBlob() *DataBlob { return &DataBlob{} }

func NewImageDataReference() *ImageDataReference {
	return &ImageDataReference{RefClass: RefClassImage}
}

func NewFileReference() *FileReference { return &FileReference{RefClass: RefClassPage} }

func NewOverrideEntry() *OverrideEntry       { return &OverrideEntry{Value: ""} }
func NewSymbolIDOverride() *SymbolIDOverride { return &SymbolIDOverride{} }

func newLayerBase() LayerBase {
	return LayerBase{
		ExportOptions:      NewExportOptions(),
		Frame:              NewRect(),
		IsVisible:          true,
		ResizingConstraint: 63,
	}
}

func newContainerBase() ContainerBase {
	return ContainerBase{LayerBase: newLayerBase(), HasClickThrough: true, Layers: []Layer{}}
}

func newArtboardBase() ArtboardBase {
	return ArtboardBase{
		ContainerBase:        newContainerBase(),
		HorizontalRulerData:  NewRulerData(),
		VerticalRulerData:    NewRulerData(),
		IncludeInCloudUpload: true,
	}
}

func newShapeBase() ShapeBase {
	return ShapeBase{
		LayerBase:        newLayerBase(),
		Points:           []*CurvePoint{},
		Edited:           true,
		IsClosed:         true,
		BooleanOperation: BooleanUnion,
	}
}

func NewPageDefault() *Page                 { return &Page{ArtboardBase: newArtboardBase()} }
func NewArtboardDefault() *Artboard         { return &Artboard{ArtboardBase: newArtboardBase()} }
func NewSymbolMasterDefault() *SymbolMaster { return &SymbolMaster{ArtboardBase: newArtboardBase()} }

func NewSymbolInstanceDefault() *SymbolInstance {
	return &SymbolInstance{
		LayerBase:      newLayerBase(),
		Overrides:      OverrideMap{},
		OverrideValues: []*OverrideEntry{},
		Scale:          1,
	}
}

func NewGroupDefault() *Group { return &Group{ContainerBase: newContainerBase()} }

func NewShapeGroupDefault() *ShapeGroup {
	return &ShapeGroup{ContainerBase: newContainerBase(), ClippingMaskMode: 1}
}

func NewRectangleDefault() *Rectangle { return &Rectangle{ShapeBase: newShapeBase()} }
func NewOvalDefault() *Oval           { return &Oval{ShapeBase: newShapeBase()} }
func NewShapePathDefault() *ShapePath { return &ShapePath{ShapeBase: newShapeBase()} }

func NewTextDefault() *Text {
	return &Text{
		LayerBase:        newLayerBase(),
		AttributedString: NewAttributedString(),
		GlyphBounds:      RectOf(0, 0, 0, 0),
	}
}

func NewBitmapDefault() *Bitmap {
	return &Bitmap{LayerBase: newLayerBase(), ClippingMask: RectOf(0, 0, 1, 1)}
}

func NewImageCollection() *ImageCollection { return &ImageCollection{Images: map[string]any{}} }

func NewAssetCollection() *AssetCollection {
	return &AssetCollection{
		Colors:          []*Color{},
		Gradients:       []*Gradient{},
		Images:          []any{},
		ImageCollection: NewImageCollection(),
	}
}

func NewSymbolContainer() *SymbolContainer { return &SymbolContainer{Objects: []any{}} }

func NewDocument() *Document {
	return &Document{
		ForeignSymbols:  []any{},
		Assets:          NewAssetCollection(),
		LayerTextStyles: NewSharedTextStyleContainer(),
		LayerStyles:     NewSharedStyleContainer(),
		LayerSymbols:    NewSymbolContainer(),
		Pages:           []*FileReference{},
	}
}

// Application stamps written by default.
const (
	DefaultCompatibilityVersion = 93
	DefaultBuild                = 51160
	DefaultApp                  = "com.bohemiancoding.sketch3"
	DefaultVariant              = "NONAPPSTORE"
	DefaultCommit               = "3ddf4a853aaf3543a90063fa41305860bd6d6e7a"
	DefaultVersion              = 101
	DefaultAppVersion           = "49.2"
)

func NewCreateMeta() *CreateMeta {
	return &CreateMeta{
		CompatibilityVersion: DefaultCompatibilityVersion,
		Build:                DefaultBuild,
		App:                  DefaultApp,
		Variant:              DefaultVariant,
		Commit:               DefaultCommit,
		Version:              DefaultVersion,
		AppVersion:           DefaultAppVersion,
	}
}

func NewMetadata() *Metadata {
	return &Metadata{
		CreateMeta:        *NewCreateMeta(),
		PagesAndArtboards: map[ObjectID]*PageArtboards{},
		Fonts:             []string{},
		Created:           NewCreateMeta(),
		SaveHistory:       []string{DefaultVariant + ".51160"},
	}
}

func NewArtboardDescription() *ArtboardDescription { return &ArtboardDescription{} }

func NewPageArtboards() *PageArtboards {
	return &PageArtboards{Artboards: map[ObjectID]*ArtboardDescription{}}
}

func NewUserEntry() *UserEntry { return &UserEntry{ScrollOrigin: Point(0, 0), ZoomValue: 1} }

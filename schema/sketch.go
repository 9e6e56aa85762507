package schema

import "sync"

// Variant names.
const (
	VariantLayer              = "Layer"
	VariantOverrideValue      = "OverrideValue"
	VariantAttributedText     = "AttributedText"
	VariantFontAttribute      = "FontAttribute"
	VariantParagraphAttribute = "ParagraphAttribute"
	VariantImageReference     = "ImageReference"
)

// Container entry roots.
const (
	EntryDocument = "document.json"
	EntryMeta     = "meta.json"
	EntryUser     = "user.json"
	EntryPages    = "pages/"
)

var sketchRegistry = sync.OnceValue(func() *Registry { return declareSketch(NewBuilder()).MustBuild() })

// Sketch returns the registry of the Sketch document format. It is built on
// first use and shared afterwards.
func Sketch() *Registry { return sketchRegistry() }

func declareSketch(b *Builder) *Builder {
	declareGeometry(b)
	declareStyle(b)
	declareText(b)
	declareReferences(b)
	declareLayers(b)
	declareDocument(b)
	declareMeta(b)

	b.Variant(VariantLayer,
		EntityCandidate("SymbolMaster"),
		EntityCandidate("Artboard"),
		EntityCandidate("Text"),
		EntityCandidate("Group"),
		EntityCandidate("ShapeGroup"),
		EntityCandidate("Oval"),
		EntityCandidate("Rectangle"),
		EntityCandidate("ShapePath"),
		EntityCandidate("SymbolInstance"),
		EntityCandidate("Bitmap"),
	)
	b.Variant(VariantOverrideValue,
		StringCandidate(),
		EntityCandidate("ImageDataReference"),
		KeyedCandidate("SymbolIDOverride", "symbolID"),
		MapCandidate(MapOf(ObjectID(), OneOf(VariantOverrideValue))),
	)
	b.Variant(VariantAttributedText,
		EntityCandidate("AttributedString"),
		EntityCandidate("LegacyAttributedString"),
	)
	b.Variant(VariantFontAttribute,
		EntityCandidate("FontDescriptor"),
		KeyedCandidate("KeyValueArchive", "_archive"),
	)
	b.Variant(VariantParagraphAttribute,
		EntityCandidate("ParagraphStyle"),
		KeyedCandidate("KeyValueArchive", "_archive"),
	)
	b.Variant(VariantImageReference,
		EntityCandidate("ImageDataReference"),
		EntityCandidate("FileReference"),
	)

	b.Root(EntryMeta, Ref("Metadata"))
	b.Root(EntryDocument, Ref("Document"))
	b.Root(EntryUser, MapOf(ObjectID(), Ref("UserEntry")))
	b.Root(EntryPages, Ref("Page"))
	return b
}

func declareGeometry(b *Builder) {
	b.Entity("Rect").Tag("rect").
		Field("constrainProportions", Bool()).Required().
		Field("x", Float()).Required().
		Field("y", Float()).Required().
		Field("width", Float()).Required().
		Field("height", Float()).Required()

	b.Entity("ColorComponents").
		Field("red", Float()).Required().
		Field("green", Float()).Required().
		Field("blue", Float()).Required().
		Field("alpha", Float()).Required()

	b.Entity("Color").Tag("color").Extends("ColorComponents")

	b.Entity("GraphicsContextSettings").Tag("graphicsContextSettings").
		Field("blendMode", Int()).Required().
		Field("opacity", Float()).Required()

	b.Entity("CurvePoint").Tag("curvePoint").
		Field("do_objectID", ObjectID()).Optional().
		Field("cornerRadius", Float()).Required().
		Field("curveFrom", Point()).Required().
		Field("curveMode", Int()).Required().
		Field("curveTo", Point()).Required().
		Field("hasCurveFrom", Bool()).Required().
		Field("hasCurveTo", Bool()).Required().
		Field("point", Point()).Required()

	b.Entity("Path").Tag("path").
		Field("isClosed", Bool()).Required().
		Field("points", ListOf(Ref("CurvePoint"))).Required().
		Field("pointRadiusBehaviour", Int()).Required()

	b.Entity("RulerData").Tag("rulerData").
		Field("base", Float()).Required().
		Field("guides", ListOf(Float())).Required()

	b.Entity("SimpleGrid").Tag("simpleGrid").
		Field("isEnabled", Bool()).Required().
		Field("gridSize", Float()).Required().
		Field("thickGridTimes", Float()).Required()

	b.Entity("LayoutGrid").Tag("layoutGrid").
		Field("isEnabled", Bool()).Required().
		Field("columnWidth", Float()).Required().
		Field("drawHorizontal", Bool()).Required().
		Field("drawHorizontalLines", Bool()).Required().
		Field("drawVertical", Bool()).Required().
		Field("gutterHeight", Float()).Required().
		Field("gutterWidth", Float()).Required().
		Field("guttersOutside", Bool()).Required().
		Field("horizontalOffset", Float()).Required().
		Field("numberOfColumns", Int()).Required().
		Field("rowHeightMultiplication", Float()).Required().
		Field("totalWidth", Float()).Required()

	b.Entity("ExportFormat").Tag("exportFormat").
		Field("absoluteSize", Float()).Required().
		Field("fileFormat", String()).Required().
		Field("name", String()).Required().
		Field("namingScheme", Int()).Required().
		Field("scale", Float()).Required().
		Field("visibleScaleType", Int()).Required()

	b.Entity("ExportOptions").Tag("exportOptions").
		Field("exportFormats", ListOf(Ref("ExportFormat"))).Required().
		Field("includedLayerIds", ListOf(ObjectID())).Required().
		Field("layerOptions", Int()).Required().
		Field("shouldTrim", Bool()).Required()

	b.Entity("PresetDictionary").
		Field("height", Float()).Optional().
		Field("width", Float()).Optional().
		Field("offersLandscapeVariant", Int()).Optional().
		Field("name", String()).Optional().
		Field("allowResizedMatching", Int()).Optional()
}

func declareStyle(b *Builder) {
	b.Entity("Border").Tag("border").
		Field("isEnabled", Bool()).Required().
		Field("color", Ref("Color")).Required().
		Field("fillType", Int()).Optional().
		Field("position", Int()).Optional().
		Field("thickness", Float()).Optional().
		Field("contextSettings", Ref("GraphicsContextSettings")).Optional().
		Field("gradient", Ref("Gradient")).Optional()

	b.Entity("BorderOptions").Tag("borderOptions").
		Field("isEnabled", Bool()).Required().
		Field("dashPattern", ListOf(Float())).Required().
		Field("lineCapStyle", Int()).Required().
		Field("lineJoinStyle", Int()).Required()

	b.Entity("GradientStop").Tag("gradientStop").
		Field("position", Float()).Required().
		Field("color", Ref("Color")).Required()

	b.Entity("Gradient").Tag("gradient").
		Field("elipseLength", Float()).Required().
		Field("from", Point()).Required().
		Field("to", Point()).Required().
		Field("gradientType", Int()).Required().
		Field("stops", ListOf(Ref("GradientStop"))).Required()

	b.Entity("Fill").Tag("fill").
		Field("do_objectID", ObjectID()).Optional().
		Field("isEnabled", Bool()).Required().
		Field("color", Ref("Color")).Required().
		Field("fillType", Int()).Required().
		Field("image", OneOf(VariantImageReference)).Optional().
		Field("noiseIndex", Float()).Required().
		Field("noiseIntensity", Float()).Required().
		Field("patternFillType", Int()).Required().
		Field("patternTileScale", Float()).Required().
		Field("gradient", Ref("Gradient")).Optional().
		Field("contextSettings", Ref("GraphicsContextSettings")).Optional()

	b.Entity("Shadow").Tag("shadow").
		Field("isEnabled", Bool()).Optional().
		Field("blurRadius", Float()).Optional().
		Field("color", Ref("Color")).Optional().
		Field("contextSettings", Ref("GraphicsContextSettings")).Required().
		Field("offsetX", Float()).Optional().
		Field("offsetY", Float()).Optional().
		Field("spread", Float()).Optional()

	b.Entity("InnerShadow").Tag("innerShadow").Extends("Shadow")

	b.Entity("Blur").Tag("blur").
		Field("isEnabled", Bool()).Required().
		Field("center", Point()).Required().
		Field("motionAngle", Float()).Required().
		Field("radius", Float()).Required().
		Field("type", Int()).Required()

	b.Entity("ColorControls").Tag("colorControls").
		Field("isEnabled", Bool()).Required().
		Field("brightness", Float()).Required().
		Field("contrast", Float()).Required().
		Field("hue", Float()).Required().
		Field("saturation", Float()).Required()

	b.Entity("Style").Tag("style").
		Field("do_objectID", ObjectID()).Optional().
		Field("sharedObjectID", ObjectID()).Optional().
		Field("borderOptions", Ref("BorderOptions")).Optional().
		Field("borders", ListOf(Ref("Border"))).Optional().
		Field("shadows", ListOf(Ref("Shadow"))).Optional().
		Field("innerShadows", ListOf(Ref("InnerShadow"))).Optional().
		Field("fills", ListOf(Ref("Fill"))).Optional().
		Field("textStyle", Ref("TextStyle")).Optional().
		Field("miterLimit", Float()).Required().
		Field("startDecorationType", Int()).Required().
		Field("endDecorationType", Int()).Required().
		Field("blur", Ref("Blur")).Optional().
		Field("contextSettings", Ref("GraphicsContextSettings")).Optional().
		Field("colorControls", Ref("ColorControls")).Optional()

	b.Entity("SharedStyle").Tag("sharedStyle").
		Field("do_objectID", ObjectID()).Optional().
		Field("name", String()).Optional().
		Field("value", Ref("Style")).Optional()

	b.Entity("SharedStyleContainer").Tag("sharedStyleContainer").
		Field("objects", ListOf(Ref("SharedStyle"))).Required()

	b.Entity("SharedTextStyleContainer").Tag("sharedTextStyleContainer").
		Field("objects", ListOf(Ref("SharedStyle"))).Required()
}

func declareText(b *Builder) {
	b.Entity("KeyValueArchive").
		Field("_archive", Tagged(LabelArchive)).Required()

	b.Entity("FontDescriptorAttributes").
		Field("name", String()).Required().
		Field("size", Float()).Required()

	b.Entity("FontDescriptor").Tag("fontDescriptor").
		Field("attributes", Ref("FontDescriptorAttributes")).Required()

	b.Entity("ParagraphStyle").Tag("paragraphStyle").
		Field("alignment", Int()).Optional().
		Field("maximumLineHeight", Float()).Optional().
		Field("minimumLineHeight", Float()).Optional().
		Field("lineHeightMultiple", Float()).Optional().
		Field("paragraphSpacing", Float()).Optional().
		Field("allowsDefaultTighteningForTruncation", Int()).Optional()

	b.Entity("TextStyleAttributes").
		Field("MSAttributedStringFontAttribute", OneOf(VariantFontAttribute)).Required().
		Field("kerning", Float()).Optional().
		Field("MSAttributedStringColorAttribute", Ref("Color")).Optional().
		Field("paragraphStyle", OneOf(VariantParagraphAttribute)).Required().
		Field("MSAttributedStringColorDictionaryAttribute", Ref("ColorComponents")).Optional().
		Field("MSAttributedStringTextTransformAttribute", Int()).Optional().
		Field("strikethroughStyle", Int()).Optional().
		Field("underlineStyle", Int()).Optional()

	b.Entity("TextStyle").Tag("textStyle").
		Field("verticalAlignment", Int()).Required().
		Field("encodedAttributes", Ref("TextStyleAttributes")).Required()

	b.Entity("StringAttribute").Tag("stringAttribute").
		Field("location", Int()).Required().
		Field("length", Int()).Required().
		Field("attributes", Ref("TextStyleAttributes")).Required()

	b.Entity("AttributedString").Tag("attributedString").
		Field("string", String()).Required().
		Field("attributes", ListOf(Ref("StringAttribute"))).Required()

	b.Entity("LegacyAttributedString").Tag("MSAttributedString").
		Field("archivedAttributedString", Ref("KeyValueArchive")).Required()
}

func declareReferences(b *Builder) {
	b.Entity("DataBlob").
		Field("_data", String()).Optional()

	b.Entity("ImageDataReference").Tag("MSJSONOriginalDataReference").
		Field("_ref", String()).Required().
		Field("_ref_class", String()).Required().
		Field("data", Ref("DataBlob")).Optional().
		Field("sha1", Ref("DataBlob")).Optional()

	b.Entity("FileReference").Tag("MSJSONFileReference").
		Field("_ref_class", String()).Required().
		Field("_ref", String()).Required()

	b.Entity("OverrideEntry").Tag("overrideValue").
		Field("do_objectID", ObjectID()).Optional().
		Field("overrideName", String()).Required().
		Field("value", Any()).Required()

	b.Entity("SymbolIDOverride").
		Field("symbolID", ObjectID()).Required()
}

func declareLayers(b *Builder) {
	b.Entity("LayerBase").Abstract().
		Field("do_objectID", ObjectID()).Optional().
		Field("booleanOperation", Int()).Optional().
		Field("exportOptions", Ref("ExportOptions")).Required().
		Field("frame", Ref("Rect")).Required().
		Field("hasClickThrough", Bool()).Optional().
		Field("isFixedToViewport", Bool()).Optional().
		Field("isFlippedHorizontal", Bool()).Required().
		Field("isFlippedVertical", Bool()).Required().
		Field("isLocked", Bool()).Required().
		Field("isVisible", Bool()).Required().
		Field("layerListExpandedType", Int()).Required().
		Field("name", String()).Required().
		Field("nameIsFixed", Bool()).Required().
		Field("originalObjectID", ObjectID()).Optional().
		Field("resizingConstraint", Int()).Required().
		Field("resizingType", Int()).Required().
		Field("rotation", Float()).Required().
		Field("shouldBreakMaskChain", Bool()).Required().
		Field("style", Ref("Style")).Optional().
		Field("userInfo", Any()).Optional().
		Field("clippingMaskMode", Int()).Optional().
		Field("hasClippingMask", Bool()).Optional()

	b.Entity("ContainerBase").Abstract().Extends("LayerBase").
		Field("hasClickThrough", Bool()).Required().
		Field("layers", ListOf(OneOf(VariantLayer))).Required()

	b.Entity("ArtboardBase").Abstract().Extends("ContainerBase").
		Field("backgroundColor", Ref("Color")).Optional().
		Field("hasBackgroundColor", Bool()).Optional().
		Field("horizontalRulerData", Ref("RulerData")).Required().
		Field("verticalRulerData", Ref("RulerData")).Required().
		Field("includeBackgroundColorInExport", Bool()).Optional().
		Field("includeInCloudUpload", Bool()).Required().
		Field("resizesContent", Bool()).Optional().
		Field("isFlowHome", Bool()).Optional().
		Field("layout", Ref("LayoutGrid")).Optional().
		Field("grid", Ref("SimpleGrid")).Optional()

	b.Entity("Page").Tag("page").Extends("ArtboardBase")

	b.Entity("Artboard").Tag("artboard").Extends("ArtboardBase").
		Field("presetDictionary", Ref("PresetDictionary")).Optional()

	b.Entity("SymbolMaster").Tag("symbolMaster").Extends("ArtboardBase").
		Field("includeBackgroundColorInInstance", Bool()).Required().
		Field("symbolID", ObjectID()).Required().
		Field("changeIdentifier", Int()).Required().
		Field("allowsOverrides", Bool()).Optional().
		Field("overrideProperties", Any()).Optional().
		Field("presetDictionary", Ref("PresetDictionary")).Optional()

	b.Entity("SymbolInstance").Tag("symbolInstance").Extends("LayerBase").
		Field("horizontalSpacing", Float()).Required().
		Field("verticalSpacing", Float()).Required().
		Field("masterInfluenceEdgeMinXPadding", Float()).Optional().
		Field("masterInfluenceEdgeMaxXPadding", Float()).Optional().
		Field("masterInfluenceEdgeMinYPadding", Float()).Optional().
		Field("masterInfluenceEdgeMaxYPadding", Float()).Optional().
		Field("symbolID", ObjectID()).Required().
		Field("overrides", MapOf(ObjectID(), OneOf(VariantOverrideValue))).Required().
		Field("overrideValues", ListOf(Ref("OverrideEntry"))).Required().
		Field("scale", Float()).Required().
		Field("changeIdentifier", Int()).Optional().
		Field("includeBackgroundColorInInstance", Bool()).Optional().
		Field("path", Ref("Path")).Optional()

	b.Entity("Group").Tag("group").Extends("ContainerBase")

	b.Entity("ShapeGroup").Tag("shapeGroup").Extends("ContainerBase").
		Field("hasClippingMask", Bool()).Required().
		Field("windingRule", Int()).Required().
		Field("clippingMaskMode", Int()).Required()

	b.Entity("ShapeBase").Abstract().Extends("LayerBase").
		Field("points", ListOf(Ref("CurvePoint"))).Required().
		Field("edited", Bool()).Required().
		Field("isClosed", Bool()).Required().
		Field("pointRadiusBehaviour", Int()).Required().
		Field("booleanOperation", Int()).Required().
		Field("fixedRadius", Float()).Optional().
		Field("hasConvertedToNewRoundCorners", Bool()).Optional().
		Field("path", Ref("Path")).Optional()

	b.Entity("Rectangle").Tag("rectangle").Extends("ShapeBase")
	b.Entity("Oval").Tag("oval").Extends("ShapeBase")
	b.Entity("ShapePath").Tag("shapePath").Extends("ShapeBase")

	b.Entity("Text").Tag("text").Extends("LayerBase").
		Field("attributedString", OneOf(VariantAttributedText)).Required().
		Field("glyphBounds", RectString()).Required().
		Field("lineSpacingBehaviour", Int()).Required().
		Field("dontSynchroniseWithSymbol", Bool()).Required().
		Field("automaticallyDrawOnUnderlyingPath", Bool()).Required().
		Field("textBehaviour", Int()).Required()

	b.Entity("Bitmap").Tag("bitmap").Extends("LayerBase").
		Field("clippingMask", RectString()).Required().
		Field("fillReplacesImage", Bool()).Optional().
		Field("image", OneOf(VariantImageReference)).Optional().
		Field("intendedDPI", Float()).Optional()
}

func declareDocument(b *Builder) {
	b.Entity("ImageCollection").Tag("imageCollection").
		Field("images", MapOf(String(), Any())).Required()

	b.Entity("AssetCollection").Tag("assetCollection").
		Field("do_objectID", ObjectID()).Optional().
		Field("colors", ListOf(Ref("Color"))).Required().
		Field("gradients", ListOf(Ref("Gradient"))).Required().
		Field("images", ListOf(Any())).Required().
		Field("imageCollection", Ref("ImageCollection")).Required()

	b.Entity("SymbolContainer").Tag("symbolContainer").
		Field("objects", ListOf(Any())).Required()

	b.Entity("Document").Tag("document").
		Field("do_objectID", ObjectID()).Optional().
		Field("colorSpace", Int()).Required().
		Field("currentPageIndex", Int()).Required().
		Field("foreignSymbols", ListOf(Any())).Required().
		Field("assets", Ref("AssetCollection")).Required().
		Field("layerTextStyles", Ref("SharedTextStyleContainer")).Required().
		Field("layerStyles", Ref("SharedStyleContainer")).Required().
		Field("layerSymbols", Ref("SymbolContainer")).Required().
		Field("pages", ListOf(Ref("FileReference"))).Required().
		Field("userInfo", Any()).Optional()
}

func declareMeta(b *Builder) {
	b.Entity("CreateMeta").
		Field("compatibilityVersion", Int()).Required().
		Field("build", Int()).Required().
		Field("app", String()).Required().
		Field("autosaved", Int()).Optional().
		Field("variant", String()).Required().
		Field("commit", String()).Required().
		Field("version", Int()).Required().
		Field("appVersion", String()).Required()

	b.Entity("Metadata").Extends("CreateMeta").
		Field("pagesAndArtboards", MapOf(ObjectID(), Ref("PageArtboards"))).Required().
		Field("fonts", ListOf(String())).Required().
		Field("autosaved", Int()).Required().
		Field("created", Ref("CreateMeta")).Required().
		Field("saveHistory", ListOf(String())).Required()

	b.Entity("ArtboardDescription").
		Field("name", String()).Required()

	b.Entity("PageArtboards").
		Field("name", String()).Required().
		Field("artboards", MapOf(ObjectID(), Ref("ArtboardDescription"))).Required()

	b.Entity("UserEntry").
		Field("scrollOrigin", Point()).Required().
		Field("zoomValue", Float()).Required().
		Field("pageListHeight", Float()).Optional().
		Field("exportableLayerSelection", ListOf(ObjectID())).Optional().
		Field("cloudShare", Any()).Optional().
		Field("expandedSymbolPathsInSidebar", ListOf(Any())).Optional().
		Field("expandedTextStylePathsInPopover", ListOf(Any())).Optional()
}

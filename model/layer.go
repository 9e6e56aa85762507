package model

// Layer classes (the _class discriminator of each concrete layer).
const (
	ClassPage           = "page"
	ClassArtboard       = "artboard"
	ClassSymbolMaster   = "symbolMaster"
	ClassSymbolInstance = "symbolInstance"
	ClassGroup          = "group"
	ClassShapeGroup     = "shapeGroup"
	ClassRectangle      = "rectangle"
	ClassOval           = "oval"
	ClassShapePath      = "shapePath"
	ClassText           = "text"
	ClassBitmap         = "bitmap"
)

// Boolean path operations of shapes.
const (
	BooleanNone       = -1
	BooleanUnion      = 0
	BooleanSubtract   = 1
	BooleanIntersect  = 2
	BooleanDifference = 3
)

// Layer is any node of the layer tree.
type Layer interface {
	// Class returns the _class discriminator.
	Class() string
	// Base returns the common fields, or nil for a *Raw layer.
	Base() *LayerBase
	isLayer()
}

// Container is a layer with children.
type Container interface {
	Layer
	Children() []Layer
	SetChildren([]Layer)
}

// Board is a layer with artboard semantics: a page, an artboard or a
// symbol master.
type Board interface {
	Container
	Board() *ArtboardBase
}

// LayerBase holds the fields shared by all layers.
type LayerBase struct {
	IDBase
	BooleanOperation      Optional[int]  `json:"booleanOperation"`
	ExportOptions         *ExportOptions `json:"exportOptions"`
	Frame                 *Rect          `json:"frame"`
	HasClickThrough       Optional[bool] `json:"hasClickThrough"`
	IsFixedToViewport     Optional[bool] `json:"isFixedToViewport"`
	IsFlippedHorizontal   bool           `json:"isFlippedHorizontal"`
	IsFlippedVertical     bool           `json:"isFlippedVertical"`
	IsLocked              bool           `json:"isLocked"`
	IsVisible             bool           `json:"isVisible"`
	LayerListExpandedType int            `json:"layerListExpandedType"`
	Name                  string         `json:"name"`
	NameIsFixed           bool           `json:"nameIsFixed"`
	OriginalObjectID      ObjectID       `json:"originalObjectID"`
	ResizingConstraint    int            `json:"resizingConstraint"`
	ResizingType          int            `json:"resizingType"`
	Rotation              float64        `json:"rotation"`
	ShouldBreakMaskChain  bool           `json:"shouldBreakMaskChain"`
	Style                 *Style         `json:"style"`
	UserInfo              any            `json:"userInfo"`
	ClippingMaskMode      Optional[int]  `json:"clippingMaskMode"`
	HasClippingMask       Optional[bool] `json:"hasClippingMask"`
}

func (l *LayerBase) Base() *LayerBase { return l }
func (*LayerBase) isLayer()           {}

// SetFrame moves and resizes the layer.
func (l *LayerBase) SetFrame(x, y, w, h float64) {
	if l.Frame == nil {
		l.Frame = NewRect()
	}
	l.Frame.X, l.Frame.Y, l.Frame.Width, l.Frame.Height = x, y, w, h
}

// ContainerBase adds children.
type ContainerBase struct {
	LayerBase
	HasClickThrough bool    `json:"hasClickThrough"`
	Layers          []Layer `json:"layers"`
}

func (c *ContainerBase) Children() []Layer      { return c.Layers }
func (c *ContainerBase) SetChildren(ls []Layer) { c.Layers = ls }

// ArtboardBase adds background and ruler settings.
type ArtboardBase struct {
	ContainerBase
	BackgroundColor                *Color         `json:"backgroundColor"`
	HasBackgroundColor             Optional[bool] `json:"hasBackgroundColor"`
	HorizontalRulerData            *RulerData     `json:"horizontalRulerData"`
	VerticalRulerData              *RulerData     `json:"verticalRulerData"`
	IncludeBackgroundColorInExport Optional[bool] `json:"includeBackgroundColorInExport"`
	IncludeInCloudUpload           bool           `json:"includeInCloudUpload"`
	ResizesContent                 Optional[bool] `json:"resizesContent"`
	IsFlowHome                     Optional[bool] `json:"isFlowHome"`
	Layout                         *LayoutGrid    `json:"layout"`
	Grid                           *SimpleGrid    `json:"grid"`
}

func (a *ArtboardBase) Board() *ArtboardBase { return a }

// SetBackground sets and enables the background color.
func (a *ArtboardBase) SetBackground(c *Color) {
	a.BackgroundColor = c
	a.HasBackgroundColor = Some(c != nil)
}

// Page is the root layer of one pages/<id>.json entry.
type Page struct {
	ArtboardBase
}

func (*Page) Class() string { return ClassPage }

// Artboard is a frame-bounded canvas on a page.
type Artboard struct {
	ArtboardBase
	PresetDictionary *PresetDictionary `json:"presetDictionary"`
}

func (*Artboard) Class() string { return ClassArtboard }

// SymbolMaster is a reusable artboard referenced by SymbolID.
type SymbolMaster struct {
	ArtboardBase
	IncludeBackgroundColorInInstance bool              `json:"includeBackgroundColorInInstance"`
	SymbolID                         ObjectID          `json:"symbolID"`
	ChangeIdentifier                 int               `json:"changeIdentifier"`
	AllowsOverrides                  Optional[bool]    `json:"allowsOverrides"`
	OverrideProperties               any               `json:"overrideProperties"`
	PresetDictionary                 *PresetDictionary `json:"presetDictionary"`
}

func (*SymbolMaster) Class() string { return ClassSymbolMaster }

// SymbolInstance places a SymbolMaster. Overrides are kept twice: as the
// OverrideValues audit list and as the nested Overrides map.
type SymbolInstance struct {
	LayerBase
	HorizontalSpacing                float64           `json:"horizontalSpacing"`
	VerticalSpacing                  float64           `json:"verticalSpacing"`
	MasterInfluenceEdgeMinXPadding   Optional[float64] `json:"masterInfluenceEdgeMinXPadding"`
	MasterInfluenceEdgeMaxXPadding   Optional[float64] `json:"masterInfluenceEdgeMaxXPadding"`
	MasterInfluenceEdgeMinYPadding   Optional[float64] `json:"masterInfluenceEdgeMinYPadding"`
	MasterInfluenceEdgeMaxYPadding   Optional[float64] `json:"masterInfluenceEdgeMaxYPadding"`
	SymbolID                         ObjectID          `json:"symbolID"`
	Overrides                        OverrideMap       `json:"overrides"`
	OverrideValues                   []*OverrideEntry  `json:"overrideValues"`
	Scale                            float64           `json:"scale"`
	ChangeIdentifier                 Optional[int]     `json:"changeIdentifier"`
	IncludeBackgroundColorInInstance Optional[bool]    `json:"includeBackgroundColorInInstance"`
	Path                             *Path             `json:"path"`
}

func (*SymbolInstance) Class() string { return ClassSymbolInstance }

// Group is a plain container.
type Group struct {
	ContainerBase
}

func (*Group) Class() string { return ClassGroup }

// ShapeGroup combines shape children with boolean operations.
type ShapeGroup struct {
	ContainerBase
	HasClippingMask  bool `json:"hasClippingMask"`
	WindingRule      int  `json:"windingRule"`
	ClippingMaskMode int  `json:"clippingMaskMode"`
}

func (*ShapeGroup) Class() string { return ClassShapeGroup }

// ShapeBase holds the curve points of a shape primitive.
type ShapeBase struct {
	LayerBase
	Points                        []*CurvePoint     `json:"points"`
	Edited                        bool              `json:"edited"`
	IsClosed                      bool              `json:"isClosed"`
	PointRadiusBehaviour          int               `json:"pointRadiusBehaviour"`
	BooleanOperation              int               `json:"booleanOperation"`
	FixedRadius                   Optional[float64] `json:"fixedRadius"`
	HasConvertedToNewRoundCorners Optional[bool]    `json:"hasConvertedToNewRoundCorners"`
	Path                          *Path             `json:"path"`
}

func (s *ShapeBase) Shape() *ShapeBase { return s }

// Shape is implemented by the shape primitives.
type Shape interface {
	Layer
	Shape() *ShapeBase
}

type Rectangle struct{ ShapeBase }
type Oval struct{ ShapeBase }
type ShapePath struct{ ShapeBase }

func (*Rectangle) Class() string { return ClassRectangle }
func (*Oval) Class() string      { return ClassOval }
func (*ShapePath) Class() string { return ClassShapePath }

// Text is a text layer.
type Text struct {
	LayerBase
	AttributedString                  AttributedText `json:"attributedString"`
	GlyphBounds                       RectString     `json:"glyphBounds"`
	LineSpacingBehaviour              int            `json:"lineSpacingBehaviour"`
	DontSynchroniseWithSymbol         bool           `json:"dontSynchroniseWithSymbol"`
	AutomaticallyDrawOnUnderlyingPath bool           `json:"automaticallyDrawOnUnderlyingPath"`
	TextBehaviour                     int            `json:"textBehaviour"`
}

func (*Text) Class() string { return ClassText }

// Bitmap is an image layer.
type Bitmap struct {
	LayerBase
	ClippingMask      RectString        `json:"clippingMask"`
	FillReplacesImage Optional[bool]    `json:"fillReplacesImage"`
	Image             ImageReference    `json:"image"`
	IntendedDPI       Optional[float64] `json:"intendedDPI"`
}

func (*Bitmap) Class() string { return ClassBitmap }

var (
	_ Board     = (*Page)(nil)
	_ Board     = (*Artboard)(nil)
	_ Board     = (*SymbolMaster)(nil)
	_ Container = (*Group)(nil)
	_ Container = (*ShapeGroup)(nil)
	_ Shape     = (*Rectangle)(nil)
	_ Shape     = (*Oval)(nil)
	_ Shape     = (*ShapePath)(nil)
	_ Layer     = (*SymbolInstance)(nil)
	_ Layer     = (*Text)(nil)
	_ Layer     = (*Bitmap)(nil)
	_ Layer     = (*Raw)(nil)
)

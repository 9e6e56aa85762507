package model

// IDBase carries the optional do_objectID of identified entities.
type IDBase struct {
	DoObjectID ObjectID `json:"do_objectID"`
}

// ID returns the object identifier, empty when unset.
func (b *IDBase) ID() ObjectID { return b.DoObjectID }

// SetID replaces the object identifier.
func (b *IDBase) SetID(id ObjectID) { b.DoObjectID = id }

// Identified is implemented by every entity that carries do_objectID.
type Identified interface {
	ID() ObjectID
	SetID(ObjectID)
}

// Rect is a layer frame.
type Rect struct {
	ConstrainProportions bool    `json:"constrainProportions"`
	X                    float64 `json:"x"`
	Y                    float64 `json:"y"`
	Width                float64 `json:"width"`
	Height               float64 `json:"height"`
}

// ColorComponents is an untagged RGBA color.
type ColorComponents struct {
	Red   float64 `json:"red"`
	Green float64 `json:"green"`
	Blue  float64 `json:"blue"`
	Alpha float64 `json:"alpha"`
}

// Color is a tagged RGBA color.
type Color struct {
	ColorComponents
}

// RGBA builds a Color.
func RGBA(r, g, b, a float64) *Color {
	return &Color{ColorComponents{Red: r, Green: g, Blue: b, Alpha: a}}
}

// White and Black return fresh opaque colors.
func White() *Color { return RGBA(1, 1, 1, 1) }
func Black() *Color { return RGBA(0, 0, 0, 1) }

// GraphicsContextSettings holds blend mode and opacity.
type GraphicsContextSettings struct {
	BlendMode int     `json:"blendMode"`
	Opacity   float64 `json:"opacity"`
}

// Curve modes of a CurvePoint.
const (
	CurveStraight     = 1
	CurveMirrored     = 2
	CurveAsymmetric   = 3
	CurveDisconnected = 4
)

// CurvePoint is one vertex of a shape path, in the unit square of the shape.
type CurvePoint struct {
	IDBase
	CornerRadius float64     `json:"cornerRadius"`
	CurveFrom    PointString `json:"curveFrom"`
	CurveMode    int         `json:"curveMode"`
	CurveTo      PointString `json:"curveTo"`
	HasCurveFrom bool        `json:"hasCurveFrom"`
	HasCurveTo   bool        `json:"hasCurveTo"`
	Point        PointString `json:"point"`
}

// Path is a closed or open sequence of curve points.
type Path struct {
	IsClosed             bool          `json:"isClosed"`
	Points               []*CurvePoint `json:"points"`
	PointRadiusBehaviour int           `json:"pointRadiusBehaviour"`
}

type RulerData struct {
	Base   float64   `json:"base"`
	Guides []float64 `json:"guides"`
}

type SimpleGrid struct {
	IsEnabled      bool    `json:"isEnabled"`
	GridSize       float64 `json:"gridSize"`
	ThickGridTimes float64 `json:"thickGridTimes"`
}

type LayoutGrid struct {
	IsEnabled               bool    `json:"isEnabled"`
	ColumnWidth             float64 `json:"columnWidth"`
	DrawHorizontal          bool    `json:"drawHorizontal"`
	DrawHorizontalLines     bool    `json:"drawHorizontalLines"`
	DrawVertical            bool    `json:"drawVertical"`
	GutterHeight            float64 `json:"gutterHeight"`
	GutterWidth             float64 `json:"gutterWidth"`
	GuttersOutside          bool    `json:"guttersOutside"`
	HorizontalOffset        float64 `json:"horizontalOffset"`
	NumberOfColumns         int     `json:"numberOfColumns"`
	RowHeightMultiplication float64 `json:"rowHeightMultiplication"`
	TotalWidth              float64 `json:"totalWidth"`
}

type ExportFormat struct {
	AbsoluteSize     float64 `json:"absoluteSize"`
	FileFormat       string  `json:"fileFormat"`
	Name             string  `json:"name"`
	NamingScheme     int     `json:"namingScheme"`
	Scale            float64 `json:"scale"`
	VisibleScaleType int     `json:"visibleScaleType"`
}

type ExportOptions struct {
	ExportFormats    []*ExportFormat `json:"exportFormats"`
	IncludedLayerIds []ObjectID      `json:"includedLayerIds"`
	LayerOptions     int             `json:"layerOptions"`
	ShouldTrim       bool            `json:"shouldTrim"`
}

// PresetDictionary describes the device preset of an artboard.
type PresetDictionary struct {
	Height                 Optional[float64] `json:"height"`
	Width                  Optional[float64] `json:"width"`
	OffersLandscapeVariant Optional[int]     `json:"offersLandscapeVariant"`
	Name                   Optional[string]  `json:"name"`
	AllowResizedMatching   Optional[int]     `json:"allowResizedMatching"`
}

package model

// Fill types.
const (
	FillSolid    = 0
	FillGradient = 1
	FillPattern  = 4
	FillNoise    = 5
)

type Border struct {
	IsEnabled       bool                     `json:"isEnabled"`
	Color           *Color                   `json:"color"`
	FillType        Optional[int]            `json:"fillType"`
	Position        Optional[int]            `json:"position"`
	Thickness       Optional[float64]        `json:"thickness"`
	ContextSettings *GraphicsContextSettings `json:"contextSettings"`
	Gradient        *Gradient                `json:"gradient"`
}

type BorderOptions struct {
	IsEnabled     bool      `json:"isEnabled"`
	DashPattern   []float64 `json:"dashPattern"`
	LineCapStyle  int       `json:"lineCapStyle"`
	LineJoinStyle int       `json:"lineJoinStyle"`
}

type GradientStop struct {
	Position float64 `json:"position"`
	Color    *Color  `json:"color"`
}

type Gradient struct {
	ElipseLength float64         `json:"elipseLength"`
	From         PointString     `json:"from"`
	To           PointString     `json:"to"`
	GradientType int             `json:"gradientType"`
	Stops        []*GradientStop `json:"stops"`
}

type Fill struct {
	IDBase
	IsEnabled        bool                     `json:"isEnabled"`
	Color            *Color                   `json:"color"`
	FillType         int                      `json:"fillType"`
	Image            ImageReference           `json:"image"`
	NoiseIndex       float64                  `json:"noiseIndex"`
	NoiseIntensity   float64                  `json:"noiseIntensity"`
	PatternFillType  int                      `json:"patternFillType"`
	PatternTileScale float64                  `json:"patternTileScale"`
	Gradient         *Gradient                `json:"gradient"`
	ContextSettings  *GraphicsContextSettings `json:"contextSettings"`
}

type Shadow struct {
	IsEnabled       Optional[bool]           `json:"isEnabled"`
	BlurRadius      Optional[float64]        `json:"blurRadius"`
	Color           *Color                   `json:"color"`
	ContextSettings *GraphicsContextSettings `json:"contextSettings"`
	OffsetX         Optional[float64]        `json:"offsetX"`
	OffsetY         Optional[float64]        `json:"offsetY"`
	Spread          Optional[float64]        `json:"spread"`
}

type InnerShadow struct {
	Shadow
}

type Blur struct {
	IsEnabled   bool        `json:"isEnabled"`
	Center      PointString `json:"center"`
	MotionAngle float64     `json:"motionAngle"`
	Radius      float64     `json:"radius"`
	Type        int         `json:"type"`
}

type ColorControls struct {
	IsEnabled  bool    `json:"isEnabled"`
	Brightness float64 `json:"brightness"`
	Contrast   float64 `json:"contrast"`
	Hue        float64 `json:"hue"`
	Saturation float64 `json:"saturation"`
}

// Style is the visual style of a layer. Every component is optional.
type Style struct {
	IDBase
	SharedObjectID      ObjectID                 `json:"sharedObjectID"`
	BorderOptions       *BorderOptions           `json:"borderOptions"`
	Borders             []*Border                `json:"borders"`
	Shadows             []*Shadow                `json:"shadows"`
	InnerShadows        []*InnerShadow           `json:"innerShadows"`
	Fills               []*Fill                  `json:"fills"`
	TextStyle           *TextStyle               `json:"textStyle"`
	MiterLimit          float64                  `json:"miterLimit"`
	StartDecorationType int                      `json:"startDecorationType"`
	EndDecorationType   int                      `json:"endDecorationType"`
	Blur                *Blur                    `json:"blur"`
	ContextSettings     *GraphicsContextSettings `json:"contextSettings"`
	ColorControls       *ColorControls           `json:"colorControls"`
}

// AddFill appends a solid fill of color c.
func (s *Style) AddFill(c *Color) *Fill {
	f := NewFill()
	f.Color = c
	s.Fills = append(s.Fills, f)
	return f
}

// AddBorder appends an enabled border of color c and the given thickness.
func (s *Style) AddBorder(c *Color, thickness float64) *Border {
	b := NewBorder()
	b.Color = c
	b.Thickness = Some(thickness)
	s.Borders = append(s.Borders, b)
	return b
}

type SharedStyle struct {
	IDBase
	Name  Optional[string] `json:"name"`
	Value *Style           `json:"value"`
}

type SharedStyleContainer struct {
	Objects []*SharedStyle `json:"objects"`
}

type SharedTextStyleContainer struct {
	Objects []*SharedStyle `json:"objects"`
}

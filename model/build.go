package model

import (
	"math"

	"gitlab.com/tozd/go/errors"
)

var (
	// ErrEmptyGroup is returned when grouping no layers.
	ErrEmptyGroup = errors.New("group needs at least one layer")
	// ErrRawLayer is returned when an operation needs the typed fields of a
	// layer that could not be decoded.
	ErrRawLayer = errors.New("layer has no typed fields")
)

// Vec is a point in page coordinates.
type Vec struct{ X, Y float64 }

// Control point distance of a cubic Bezier approximating a quarter circle of
// radius 1.
const kappa = 0.5522847498

// Default shape fill, a light gray.
func defaultShapeFill() *Color { return RGBA(0.847, 0.847, 0.847, 1) }

func newLayer(name string, x, y, w, h float64) LayerBase {
	l := newLayerBase()
	l.DoObjectID = NewObjectID()
	l.Name = name
	l.SetFrame(x, y, w, h)
	l.Style = NewStyle()
	return l
}

// NewPage returns an empty page with a fresh identifier.
func NewPage(name string) *Page {
	p := NewPageDefault()
	p.LayerBase = newLayer(name, 0, 0, 0, 0)
	return p
}

// NewArtboard returns an empty artboard with a fresh identifier.
func NewArtboard(name string, x, y, w, h float64) *Artboard {
	a := NewArtboardDefault()
	a.LayerBase = newLayer(name, x, y, w, h)
	a.BackgroundColor = White()
	a.HasBackgroundColor = Some(false)
	return a
}

// NewSymbolMaster returns an empty symbol master with fresh object and
// symbol identifiers.
func NewSymbolMaster(name string, x, y, w, h float64) *SymbolMaster {
	m := NewSymbolMasterDefault()
	m.LayerBase = newLayer(name, x, y, w, h)
	m.SymbolID = NewObjectID()
	m.BackgroundColor = White()
	m.HasBackgroundColor = Some(false)
	m.AllowsOverrides = Some(true)
	return m
}

// NewSymbolInstance places master at (x, y) with the master's size.
func NewSymbolInstance(master *SymbolMaster, x, y float64) *SymbolInstance {
	s := NewSymbolInstanceDefault()
	w, h := 100.0, 100.0
	if master.Frame != nil {
		w, h = master.Frame.Width, master.Frame.Height
	}
	s.LayerBase = newLayer(master.Name, x, y, w, h)
	s.SymbolID = master.SymbolID
	return s
}

func curvePoint(p Vec) *CurvePoint {
	c := NewCurvePoint()
	c.Point = Point(p.X, p.Y)
	c.CurveFrom = c.Point
	c.CurveTo = c.Point
	c.CornerRadius = 0
	c.HasCurveFrom, c.HasCurveTo = false, false
	return c
}

func wrapShape(name string, x, y, w, h float64, shape Shape) *ShapeGroup {
	g := NewShapeGroupDefault()
	g.LayerBase = newLayer(name, x, y, w, h)
	g.Style.AddFill(defaultShapeFill())
	g.Layers = []Layer{shape}
	return g
}

// NewRectangle returns a shape group holding a rectangle of the given frame.
func NewRectangle(name string, x, y, w, h float64) *ShapeGroup {
	r := NewRectangleDefault()
	r.LayerBase = newLayer("Path", 0, 0, w, h)
	r.FixedRadius = Some(0.0)
	r.HasConvertedToNewRoundCorners = Some(true)
	for _, p := range []Vec{{0, 0}, {1, 0}, {1, 1}, {0, 1}} {
		r.Points = append(r.Points, curvePoint(p))
	}
	return wrapShape(name, x, y, w, h, r)
}

// NewOval returns a shape group holding an ellipse inscribed in the frame.
func NewOval(name string, x, y, w, h float64) *ShapeGroup {
	o := NewOvalDefault()
	o.LayerBase = newLayer("Oval", 0, 0, w, h)
	k := 0.5 * kappa
	// Clockwise from the top; From leaves the point, To arrives at it.
	quads := []struct{ p, from, to Vec }{
		{Vec{0.5, 0}, Vec{0.5 + k, 0}, Vec{0.5 - k, 0}},
		{Vec{1, 0.5}, Vec{1, 0.5 + k}, Vec{1, 0.5 - k}},
		{Vec{0.5, 1}, Vec{0.5 - k, 1}, Vec{0.5 + k, 1}},
		{Vec{0, 0.5}, Vec{0, 0.5 - k}, Vec{0, 0.5 + k}},
	}
	for _, q := range quads {
		c := curvePoint(q.p)
		c.CurveFrom = Point(q.from.X, q.from.Y)
		c.CurveTo = Point(q.to.X, q.to.Y)
		c.CurveMode = CurveMirrored
		c.HasCurveFrom, c.HasCurveTo = true, true
		o.Points = append(o.Points, c)
	}
	return wrapShape(name, x, y, w, h, o)
}

// NewShapePath returns a shape group holding a polyline through pts, given
// in page coordinates. The frame is the bounding box of pts and the points
// are stored relative to it.
func NewShapePath(name string, closed bool, pts ...Vec) *ShapeGroup {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	if len(pts) == 0 {
		minX, minY, maxX, maxY = 0, 0, 0, 0
	}
	w, h := maxX-minX, maxY-minY
	norm := func(v, lo, size float64) float64 {
		if size == 0 {
			return 0
		}
		return (v - lo) / size
	}

	s := NewShapePathDefault()
	s.LayerBase = newLayer("Path", 0, 0, w, h)
	s.IsClosed = closed
	for _, p := range pts {
		c := curvePoint(Vec{norm(p.X, minX, w), norm(p.Y, minY, h)})
		s.Points = append(s.Points, c)
	}
	return wrapShape(name, minX, minY, w, h, s)
}

// NewText returns a text layer at (x, y) with a single attribute run.
func NewText(name string, x, y float64, text, font string, size float64) *Text {
	attrs := func() *TextStyleAttributes {
		a := NewTextStyleAttributes()
		a.Font = &FontDescriptor{Attributes: &FontDescriptorAttributes{Name: font, Size: size}}
		a.Color = Black()
		a.ParagraphStyle = &ParagraphStyle{Alignment: Some(0)}
		return a
	}

	as := NewAttributedString()
	as.Attributes = []*StringAttribute{{Attributes: attrs()}}
	as.SetText(text)

	// Rough metrics: the layer is resized by the application on open.
	w := math.Ceil(float64(TextLength(text)) * size * 0.6)
	h := math.Ceil(size * 1.2)

	t := NewTextDefault()
	t.LayerBase = newLayer(name, x, y, w, h)
	t.Style.TextStyle = &TextStyle{EncodedAttributes: attrs()}
	t.AttributedString = as
	t.GlyphBounds = RectOf(0, 0, w, h)
	return t
}

// NewGroup wraps layers in a group placed at their bounding box and rebases
// every child into the group's frame.
func NewGroup(name string, layers ...Layer) (*Group, error) {
	if len(layers) == 0 {
		return nil, errors.WithStack(ErrEmptyGroup)
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, l := range layers {
		b := l.Base()
		if b == nil || b.Frame == nil {
			return nil, errors.Errorf("%w: %s", ErrRawLayer, l.Class())
		}
		f := b.Frame
		minX, maxX = math.Min(minX, f.X), math.Max(maxX, f.X+f.Width)
		minY, maxY = math.Min(minY, f.Y), math.Max(maxY, f.Y+f.Height)
	}
	g := NewGroupDefault()
	g.LayerBase = newLayer(name, minX, minY, maxX-minX, maxY-minY)
	for _, l := range layers {
		f := l.Base().Frame
		f.X -= minX
		f.Y -= minY
	}
	g.Layers = append([]Layer(nil), layers...)
	return g, nil
}

package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
	"howett.net/plist"

	"github.com/reoring/sketchkit/model"
)

func TestObjectID(t *testing.T) {
	id := model.NewObjectID()
	assert.True(t, id.Valid(), string(id))
	assert.NotEqual(t, id, model.NewObjectID())
	assert.True(t, model.DocumentID.Valid())
	assert.False(t, model.ObjectID("2ba3b680-72dd-403d-8caa-be5e324d648b").Valid(), "lower case is not canonical")
	assert.False(t, model.ObjectID("abc").Valid())
}

func TestGeometryStrings(t *testing.T) {
	p := model.Point(0.5, -2)
	assert.Equal(t, model.PointString("{0.5, -2}"), p)
	x, y, err := p.XY()
	require.NoError(t, err)
	assert.Equal(t, 0.5, x)
	assert.Equal(t, -2.0, y)

	r := model.RectOf(1, 2, 30, 40)
	assert.Equal(t, model.RectString("{{1, 2}, {30, 40}}"), r)
	rx, ry, rw, rh, err := r.Bounds()
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 30, 40}, []float64{rx, ry, rw, rh})

	_, _, err = model.PointString("{1}").XY()
	assert.Error(t, err)
}

func TestOptional(t *testing.T) {
	var o model.Optional[int]
	assert.False(t, o.IsSet())
	assert.Nil(t, o.Interface())
	assert.Equal(t, 7, o.Or(7))

	o.Set(0)
	assert.True(t, o.IsSet(), "zero is a present value")
	v, ok := o.Get()
	assert.True(t, ok)
	assert.Equal(t, 0, v)

	var ov model.OptionalValue = &o
	ov.SetInterface(3)
	assert.Equal(t, 3, o.Value())
	assert.Equal(t, "int", ov.ElemType().String())
	ov.Clear()
	assert.False(t, o.IsSet())
}

func TestAttributedString_SetText(t *testing.T) {
	cases := []struct {
		name    string
		runs    []int
		text    string
		wantLen []int
	}{
		{"no runs", nil, "hello", []int{5}},
		{"grow single", []int{3}, "hello", []int{5}},
		{"shrink drops tail runs", []int{2, 2, 2}, "abc", []int{2, 1}},
		{"grow last absorbs", []int{2, 2}, "abcdefg", []int{2, 5}},
		{"empty", []int{2, 2}, "", []int{0}},
		{"utf16 units", nil, "a😀", []int{3}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			as := model.NewAttributedString()
			loc := 0
			for _, n := range tc.runs {
				as.Attributes = append(as.Attributes, &model.StringAttribute{Location: loc, Length: n, Attributes: model.NewTextStyleAttributes()})
				loc += n
			}
			as.SetText(tc.text)
			require.NoError(t, as.CheckRuns())
			var got []int
			for _, r := range as.Attributes {
				got = append(got, r.Length)
			}
			assert.Equal(t, tc.wantLen, got)
		})
	}
}

func TestCheckRuns_Gap(t *testing.T) {
	as := &model.AttributedString{String: "abcd", Attributes: []*model.StringAttribute{
		{Location: 0, Length: 2}, {Location: 3, Length: 1},
	}}
	err := as.CheckRuns()
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrRuns))
}

func TestSymbolInstance_TextOverrideChain(t *testing.T) {
	master := model.NewSymbolMaster("Button", 0, 0, 120, 40)
	inst := model.NewSymbolInstance(master, 50, 50)
	assert.Equal(t, master.SymbolID, inst.SymbolID)
	assert.Equal(t, 120.0, inst.Frame.Width)
	assert.Equal(t, 40.0, inst.Frame.Height)

	a, b := model.NewObjectID(), model.NewObjectID()
	inst.SetTextOverride([]model.ObjectID{a, b}, "X")

	require.Len(t, inst.Overrides, 1)
	nested, ok := inst.Overrides[a].(model.OverrideMap)
	require.True(t, ok)
	require.Len(t, nested, 1)
	assert.Equal(t, model.OverrideText("X"), nested[b])

	require.Len(t, inst.OverrideValues, 1)
	assert.Equal(t, string(a)+"/"+string(b)+"_stringValue", inst.OverrideValues[0].OverrideName)
	assert.Equal(t, "X", inst.OverrideValues[0].Value)
	assert.True(t, inst.OverrideValues[0].DoObjectID.Valid())

	// Same target again replaces in both representations.
	inst.SetTextOverride([]model.ObjectID{a, b}, "Y")
	require.Len(t, inst.OverrideValues, 1)
	v, ok := inst.NestedOverride([]model.ObjectID{a, b})
	require.True(t, ok)
	assert.Equal(t, model.OverrideText("Y"), v)

	// A flat path writes a direct value.
	c := model.NewObjectID()
	inst.SetTextOverride([]model.ObjectID{c}, "Z")
	assert.Equal(t, model.OverrideText("Z"), inst.Overrides[c])
	assert.Len(t, inst.OverrideValues, 2)
}

func TestSymbolInstance_SymbolOverride(t *testing.T) {
	inst := model.NewSymbolInstance(model.NewSymbolMaster("M", 0, 0, 10, 10), 0, 0)
	nestedID := model.NewObjectID()
	swap := model.NewObjectID()
	inst.SetSymbolOverride([]model.ObjectID{nestedID}, swap)

	got, ok := inst.Overrides[nestedID].(*model.SymbolIDOverride)
	require.True(t, ok)
	assert.Equal(t, swap, got.SymbolID)
	o, ok := inst.Override(string(nestedID) + "_symbolID")
	require.True(t, ok)
	assert.Equal(t, string(swap), o.Value)
}

func TestNewRectangle_UnitSquare(t *testing.T) {
	g := model.NewRectangle("R", 10, 20, 100, 50)
	assert.Equal(t, model.ClassShapeGroup, g.Class())
	assert.Equal(t, &model.Rect{X: 10, Y: 20, Width: 100, Height: 50}, g.Frame)
	require.Len(t, g.Layers, 1)
	r, ok := g.Layers[0].(*model.Rectangle)
	require.True(t, ok)
	assert.Equal(t, 0.0, r.Frame.X)
	assert.Equal(t, 100.0, r.Frame.Width)
	var pts []model.PointString
	for _, p := range r.Points {
		pts = append(pts, p.Point)
	}
	assert.Equal(t, []model.PointString{"{0, 0}", "{1, 0}", "{1, 1}", "{0, 1}"}, pts)
	assert.NotEqual(t, g.DoObjectID, r.DoObjectID)
}

func TestNewOval_Handles(t *testing.T) {
	g := model.NewOval("O", 0, 0, 10, 10)
	o := g.Layers[0].(*model.Oval)
	require.Len(t, o.Points, 4)
	for _, p := range o.Points {
		assert.Equal(t, model.CurveMirrored, p.CurveMode)
		x, y, err := p.CurveFrom.XY()
		require.NoError(t, err)
		assert.True(t, x >= 0 && x <= 1 && y >= 0 && y <= 1)
	}
}

func TestDecodeDefaults(t *testing.T) {
	c := model.NewCurvePoint()
	assert.Equal(t, 1.0, c.CornerRadius)
	assert.True(t, c.HasCurveFrom)
	assert.True(t, c.HasCurveTo)

	s := model.NewSymbolInstanceDefault()
	require.NotNil(t, s.Overrides)
	assert.Empty(t, s.Overrides)

	// Built shapes start without rounding or handles.
	r := model.NewRectangle("R", 0, 0, 10, 10).Layers[0].(*model.Rectangle)
	for _, p := range r.Points {
		assert.Zero(t, p.CornerRadius)
		assert.False(t, p.HasCurveFrom)
		assert.False(t, p.HasCurveTo)
	}
}

func TestNewShapePath_Normalizes(t *testing.T) {
	g := model.NewShapePath("P", false, model.Vec{X: 300, Y: 200}, model.Vec{X: 500, Y: 200}, model.Vec{X: 50, Y: 23})
	assert.Equal(t, 50.0, g.Frame.X)
	assert.Equal(t, 23.0, g.Frame.Y)
	assert.Equal(t, 450.0, g.Frame.Width)
	assert.Equal(t, 177.0, g.Frame.Height)
	s := g.Layers[0].(*model.ShapePath)
	assert.False(t, s.IsClosed)
	assert.Equal(t, model.PointString("{1, 1}"), s.Points[1].Point)
	assert.Equal(t, model.PointString("{0, 0}"), s.Points[2].Point)
}

func TestNewGroup(t *testing.T) {
	a := model.NewRectangle("A", 10, 10, 100, 100)
	b := model.NewRectangle("B", 200, 10, 50, 50)
	g, err := model.NewGroup("G", a, b)
	require.NoError(t, err)
	assert.Equal(t, &model.Rect{X: 10, Y: 10, Width: 240, Height: 100}, g.Frame)
	assert.Equal(t, 0.0, a.Frame.X)
	assert.Equal(t, 0.0, a.Frame.Y)
	assert.Equal(t, 190.0, b.Frame.X)
	assert.Equal(t, 0.0, b.Frame.Y)
	assert.Len(t, g.Layers, 2)

	_, err = model.NewGroup("empty")
	assert.True(t, errors.Is(err, model.ErrEmptyGroup))

	_, err = model.NewGroup("raw", &model.Raw{Value: map[string]any{"_class": "slice"}})
	assert.True(t, errors.Is(err, model.ErrRawLayer))
}

func TestNewText(t *testing.T) {
	txt := model.NewText("Title", 20, 350, "Hello World", "Helvetica", 52)
	s, err := txt.Content()
	require.NoError(t, err)
	assert.Equal(t, "Hello World", s)
	as := txt.AttributedString.(*model.AttributedString)
	require.Len(t, as.Attributes, 1)
	assert.Equal(t, 11, as.Attributes[0].Length)

	require.NoError(t, txt.SetContent("Hi"))
	require.NoError(t, as.CheckRuns())
	assert.Equal(t, 2, as.Attributes[0].Length)
}

func legacyArchive(t *testing.T) *model.KeyValueArchive {
	t.Helper()
	objects := make([]any, 29)
	for i := range objects {
		objects[i] = "$null"
	}
	objects[2] = "Hello"
	objects[16] = 14.0
	objects[17] = "Helvetica"
	objects[25], objects[26], objects[27], objects[28] = 1.0, 1.0, 0.0, 0.5
	a, err := model.NewArchive(map[string]any{
		"$archiver": "NSKeyedArchiver",
		"$version":  100000,
		"$top":      map[string]any{"root": plist.UID(1)},
		"$objects":  objects,
	})
	require.NoError(t, err)
	return a
}

func TestLegacyAttributedString(t *testing.T) {
	ls := &model.LegacyAttributedString{ArchivedAttributedString: legacyArchive(t)}

	s, err := ls.Text()
	require.NoError(t, err)
	assert.Equal(t, "Hello", s)

	size, err := ls.FontSize()
	require.NoError(t, err)
	assert.Equal(t, 14.0, size)

	fam, err := ls.FontFamily()
	require.NoError(t, err)
	assert.Equal(t, "Helvetica", fam)

	c, err := ls.Color()
	require.NoError(t, err)
	assert.Equal(t, model.RGBA(1, 0.5, 0, 1), c)

	before := ls.ArchivedAttributedString.Archive
	require.NoError(t, ls.SetText("Bye"))
	assert.NotEqual(t, before, ls.ArchivedAttributedString.Archive)

	// A fresh archive value decodes the re-encoded data.
	fresh := &model.LegacyAttributedString{ArchivedAttributedString: &model.KeyValueArchive{Archive: ls.ArchivedAttributedString.Archive}}
	s, err = fresh.Text()
	require.NoError(t, err)
	assert.Equal(t, "Bye", s)

	require.NoError(t, fresh.SetColor(model.RGBA(0.1, 0.2, 0.3, 0.4)))
	c, err = fresh.Color()
	require.NoError(t, err)
	assert.Equal(t, model.RGBA(0.1, 0.2, 0.3, 0.4), c)

	_, err = ls.ArchivedAttributedString.Get(100)
	assert.True(t, errors.Is(err, model.ErrArchive))

	bad := &model.KeyValueArchive{Archive: "not base64!"}
	_, err = bad.Get(0)
	assert.True(t, errors.Is(err, model.ErrArchive))
}

func TestPageReference(t *testing.T) {
	id := model.NewObjectID()
	ref := model.PageReference(id)
	assert.Equal(t, "pages/"+string(id), ref.Ref)
	assert.Equal(t, model.RefClassPage, ref.RefClass)
	got, ok := ref.PageID()
	require.True(t, ok)
	assert.Equal(t, id, got)
	assert.Equal(t, "pages/"+string(id)+".json", model.PageEntry(id))

	_, ok = (&model.FileReference{Ref: "images/x.png"}).PageID()
	assert.False(t, ok)
}

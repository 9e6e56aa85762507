package codec_test

import (
	"context"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sketchkit "github.com/reoring/sketchkit"
	"github.com/reoring/sketchkit/codec"
	"github.com/reoring/sketchkit/internal/engine"
	"github.com/reoring/sketchkit/internal/refindex"
	"github.com/reoring/sketchkit/model"
	"github.com/reoring/sketchkit/schema"
)

// roundJSON pushes v through the JSON encoder and decoder so numbers come
// back as json.Number, the way files are read.
func roundJSON(t *testing.T, v any) map[string]any {
	t.Helper()
	data, err := engine.EncodeJSON(v)
	require.NoError(t, err)
	out, err := engine.DecodeJSON(data)
	require.NoError(t, err)
	return out.(map[string]any)
}

func encodePage(t *testing.T, p *model.Page) map[string]any {
	t.Helper()
	raw, err := codec.NewPageCodec(codec.Options{}).Encode(context.Background(), p)
	require.NoError(t, err)
	return roundJSON(t, raw)
}

func samplePage(t *testing.T) *model.Page {
	t.Helper()
	p := model.NewPage("Page 1")
	ab := model.NewArtboard("Home", 0, 0, 375, 812)
	ab.Layers = append(ab.Layers,
		model.NewRectangle("Box", 10, 10, 100, 100),
		model.NewText("Title", 20, 20, "Hello", "Helvetica", 14))
	p.Layers = append(p.Layers, ab, model.NewOval("Dot", 500, 500, 20, 20))
	return p
}

func collect(iss *sketchkit.Issues) func(sketchkit.Issues) {
	return func(more sketchkit.Issues) { *iss = append(*iss, more...) }
}

func TestBindings_MatchRegistry(t *testing.T) {
	bs := codec.Sketch()
	for _, e := range schema.Sketch().Entities() {
		b, ok := bs.Entity(e.Name)
		if e.Abstract {
			assert.False(t, ok, e.Name)
			continue
		}
		require.True(t, ok, e.Name)
		assert.Equal(t, e, b.Entity)
	}
	for _, v := range schema.Sketch().Variants() {
		_, ok := bs.Variant(v.Name)
		assert.True(t, ok, v.Name)
	}
	assert.Equal(t, model.ClassRectangle, bs.TagOf(model.NewRectangleDefault()))
	assert.Empty(t, bs.TagOf(model.NewColorComponents()))
}

func TestBindings_Mismatch(t *testing.T) {
	rect := func() any { return model.NewRect() }

	b := schema.NewBuilder()
	b.Entity("Rect").Tag("rect").
		Field("x", schema.Float()).Required().
		Field("y", schema.Float()).Required().
		Entity("Orphan").Field("name", schema.String()).Required()
	_, err := codec.NewBindings(b.MustBuild(), map[string]func() any{"Rect": rect}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, codec.ErrBinding)
	assert.Contains(t, err.Error(), "Orphan has no constructor")
	assert.Contains(t, err.Error(), "undeclared Go fields [constrainProportions height width]")

	b = schema.NewBuilder()
	b.Entity("Rect").Tag("rect").
		Field("constrainProportions", schema.Bool()).Required().
		Field("x", schema.Float()).Optional().
		Field("y", schema.Float()).Required().
		Field("width", schema.Float()).Required().
		Field("height", schema.Float()).Required()
	_, err = codec.NewBindings(b.MustBuild(), map[string]func() any{"Rect": rect}, nil)
	require.ErrorIs(t, err, codec.ErrBinding)
	assert.Contains(t, err.Error(), "Rect.x is optional but bound to float64")
}

func TestPage_RoundTrip(t *testing.T) {
	ctx := context.Background()
	raw := encodePage(t, samplePage(t))

	var iss sketchkit.Issues
	c := codec.NewPageCodec(codec.Options{IssueSink: collect(&iss)})
	page, err := c.Decode(ctx, raw)
	require.NoError(t, err)
	assert.Empty(t, iss)
	require.Len(t, page.Layers, 2)
	ab, ok := page.Layers[0].(*model.Artboard)
	require.True(t, ok)
	assert.Equal(t, "Home", ab.Name)
	txt, ok := ab.Layers[1].(*model.Text)
	require.True(t, ok)
	s, err := txt.Content()
	require.NoError(t, err)
	assert.Equal(t, "Hello", s)

	out, err := c.Encode(ctx, page)
	require.NoError(t, err)
	want, _ := json.Marshal(raw)
	got, _ := json.Marshal(roundJSON(t, out))
	assert.JSONEq(t, string(want), string(got))
}

func TestEncode_OmitsUnsetOptionals(t *testing.T) {
	p := model.NewPage("Page 1")
	p.Style = nil
	raw := encodePage(t, p)

	for _, k := range []string{"style", "booleanOperation", "isFixedToViewport", "userInfo", "backgroundColor", "layout", "grid", "originalObjectID"} {
		assert.NotContains(t, raw, k)
	}
	assert.Equal(t, "page", raw["_class"])
	assert.Equal(t, []any{}, raw["layers"], "required lists are emitted even when empty")
	assert.Contains(t, raw, "hasClickThrough")

	p.IsFixedToViewport = model.Some(false)
	raw = encodePage(t, p)
	assert.Equal(t, false, raw["isFixedToViewport"], "a set optional is emitted even when it equals the zero value")
}

func TestDecode_UnknownKeyStrict(t *testing.T) {
	ctx := context.Background()
	raw := encodePage(t, samplePage(t))
	raw["bogus"] = true

	page, err := codec.NewPageCodec(codec.Options{}).ForEntry("pages/X.json").Decode(ctx, raw)
	require.Error(t, err)
	assert.Nil(t, page)
	iss, ok := sketchkit.AsIssues(err)
	require.True(t, ok)
	require.Len(t, iss.Errors(), 1)
	assert.Equal(t, sketchkit.CodeUnknownKey, iss[0].Code)
	assert.Equal(t, "/", iss[0].Path)
	assert.Equal(t, "bogus", iss[0].Hint)
	assert.Equal(t, "pages/X.json", iss[0].Entry)
	assert.Equal(t, []string{"bogus"}, iss[0].Params["keys"])
}

func TestDecode_UnknownKeyDropsOnlyTheSubtree(t *testing.T) {
	ctx := context.Background()
	raw := encodePage(t, samplePage(t))
	layers := raw["layers"].([]any)
	layers[0].(map[string]any)["futureFlag"] = 1

	page, err := codec.NewPageCodec(codec.Options{}).Decode(ctx, raw)
	require.Error(t, err)
	iss, _ := sketchkit.AsIssues(err)
	require.Len(t, iss, 1)
	assert.Equal(t, "/layers/0", iss[0].Path)

	require.NotNil(t, page, "the page itself survives")
	require.Len(t, page.Layers, 1)
	assert.Equal(t, model.ClassOval, page.Layers[0].(*model.ShapeGroup).Layers[0].Class())
}

func TestDecode_UnknownKeyPolicies(t *testing.T) {
	ctx := context.Background()
	raw := encodePage(t, model.NewPage("P"))
	raw["futureField"] = "x"

	t.Run("strip", func(t *testing.T) {
		var iss sketchkit.Issues
		c := codec.NewPageCodec(codec.Options{Unknown: sketchkit.UnknownStrip, IssueSink: collect(&iss)})
		page, err := c.Decode(ctx, raw)
		require.NoError(t, err)
		require.Len(t, iss, 1)
		assert.Equal(t, sketchkit.Warn, iss[0].Severity)
		out, err := c.Encode(ctx, page)
		require.NoError(t, err)
		assert.NotContains(t, out, "futureField")
	})

	t.Run("passthrough", func(t *testing.T) {
		c := codec.NewPageCodec(codec.Options{Unknown: sketchkit.UnknownPassthrough})
		page, err := c.Decode(ctx, raw)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"futureField": "x"}, c.Extras().Get(page))
		out, err := c.Encode(ctx, page)
		require.NoError(t, err)
		assert.Equal(t, "x", out.(map[string]any)["futureField"])
	})
}

func TestVariant_TieBreakOrder(t *testing.T) {
	ctx := context.Background()
	master := model.NewSymbolMaster("Button", 0, 0, 10, 10)
	p := model.NewPage("P")
	p.Layers = []model.Layer{model.NewSymbolInstance(master, 0, 0)}
	raw := encodePage(t, p)
	inst := raw["layers"].([]any)[0].(map[string]any)
	inst["overrides"] = map[string]any{
		"S": "text",
		"I": map[string]any{"_class": "MSJSONOriginalDataReference", "_ref": "images/a.png", "_ref_class": "MSImageData"},
		"Y": map[string]any{"symbolID": "ABC"},
		"M": map[string]any{"B": "nested"},
		"C": map[string]any{"_class": "MSJSONOriginalDataReference", "_ref": "images/b.png", "_ref_class": "MSImageData", "symbolID": "Z"},
		"U": map[string]any{"_class": "mystery"},
		"N": json.Number("42"),
	}

	var iss sketchkit.Issues
	c := codec.NewPageCodec(codec.Options{Unknown: sketchkit.UnknownPassthrough, IssueSink: collect(&iss)})
	page, err := c.Decode(ctx, raw)
	require.NoError(t, err)
	ov := page.Layers[0].(*model.SymbolInstance).Overrides

	assert.Equal(t, model.OverrideText("text"), ov["S"], "a JSON string selects the string candidate")
	assert.IsType(t, &model.ImageDataReference{}, ov["I"], "_class selects the tagged candidate")
	assert.Equal(t, &model.SymbolIDOverride{SymbolID: "ABC"}, ov["Y"], "a distinguishing key selects the untagged candidate")
	assert.Equal(t, model.OverrideMap{"B": model.OverrideText("nested")}, ov["M"], "other objects become nested maps")
	assert.IsType(t, &model.ImageDataReference{}, ov["C"], "_class wins over a distinguishing key")
	assert.Equal(t, &model.Raw{Value: map[string]any{"_class": "mystery"}}, ov["U"])
	assert.Equal(t, &model.Raw{Value: json.Number("42")}, ov["N"])

	unresolved := iss.WithCode(sketchkit.CodeVariantUnresolved)
	require.Len(t, unresolved, 2)
	assert.Equal(t, "/layers/0/overrides/N", unresolved[0].Path)
	assert.Equal(t, "/layers/0/overrides/U", unresolved[1].Path)

	out, err := c.Encode(ctx, page)
	require.NoError(t, err)
	got := roundJSON(t, out)["layers"].([]any)[0].(map[string]any)["overrides"]
	want, _ := json.Marshal(inst["overrides"])
	have, _ := json.Marshal(got)
	assert.JSONEq(t, string(want), string(have))
}

func TestDecode_Numbers(t *testing.T) {
	ctx := context.Background()
	raw := encodePage(t, model.NewPage("P"))
	raw["resizingConstraint"] = json.Number("63.7")
	raw["rotation"] = json.Number("90")

	var iss sketchkit.Issues
	page, err := codec.NewPageCodec(codec.Options{IssueSink: collect(&iss)}).Decode(ctx, raw)
	require.NoError(t, err)
	assert.Equal(t, 63, page.ResizingConstraint)
	assert.Equal(t, 90.0, page.Rotation)
	require.Len(t, iss, 1)
	assert.Equal(t, sketchkit.CodeTruncated, iss[0].Code)
	assert.Equal(t, "/resizingConstraint", iss[0].Path)
}

func TestDecode_IntegerOutOfRange(t *testing.T) {
	for _, n := range []string{"1e19", "-1e19", "99999999999999999999"} {
		t.Run(n, func(t *testing.T) {
			raw := encodePage(t, model.NewPage("P"))
			raw["resizingConstraint"] = json.Number(n)

			page, err := codec.NewPageCodec(codec.Options{}).Decode(context.Background(), raw)
			require.Error(t, err)
			iss, ok := sketchkit.AsIssues(err)
			require.True(t, ok)
			require.Len(t, iss, 1)
			assert.Equal(t, sketchkit.CodeOutOfRange, iss[0].Code)
			assert.Equal(t, "/resizingConstraint", iss[0].Path)
			require.NotNil(t, page)
			assert.Equal(t, model.NewPage("P").ResizingConstraint, page.ResizingConstraint)
		})
	}
}

func TestDecode_TypeMismatchKeepsDefault(t *testing.T) {
	raw := encodePage(t, model.NewPage("P"))
	raw["isVisible"] = "yes"

	page, err := codec.NewPageCodec(codec.Options{}).Decode(context.Background(), raw)
	require.Error(t, err)
	iss, _ := sketchkit.AsIssues(err)
	assert.Equal(t, sketchkit.CodeInvalidType, iss[0].Code)
	require.NotNil(t, page)
	assert.True(t, page.IsVisible)
}

func TestDecode_NullKeepsDefault(t *testing.T) {
	raw := encodePage(t, model.NewPage("P"))
	raw["style"] = nil
	raw["name"] = nil

	db, err := codec.NewPageCodec(codec.Options{}).DecodeWithMeta(context.Background(), raw)
	require.NoError(t, err)
	assert.Nil(t, db.Value.Style)
	assert.Empty(t, db.Value.Name)
	assert.True(t, db.Presence["/style"].Has(sketchkit.PresenceWasNull))
}

func TestEncodePreserving_KeepsAbsentRequiredAbsent(t *testing.T) {
	ctx := context.Background()
	raw := encodePage(t, model.NewPage("P"))
	delete(raw["frame"].(map[string]any), "constrainProportions")
	delete(raw, "isLocked")

	var iss sketchkit.Issues
	c := codec.NewPageCodec(codec.Options{IssueSink: collect(&iss)})
	db, err := c.DecodeWithMeta(ctx, raw)
	require.NoError(t, err)
	assert.Len(t, iss.WithCode(sketchkit.CodeRequired), 2)
	assert.True(t, db.Presence["/frame/constrainProportions"].Has(sketchkit.PresenceDefaultApplied))

	canon, err := c.Encode(ctx, db.Value)
	require.NoError(t, err)
	assert.Contains(t, canon, "isLocked")

	kept, err := c.EncodePreserving(ctx, db)
	require.NoError(t, err)
	m := kept.(map[string]any)
	assert.NotContains(t, m, "isLocked")
	assert.NotContains(t, m["frame"], "constrainProportions")

	db.Value.IsLocked = true
	kept, err = c.EncodePreserving(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, true, kept.(map[string]any)["isLocked"], "a changed value is written again")

	_, err = c.EncodePreserving(ctx, sketchkit.Decoded[*model.Page]{Value: db.Value})
	assert.ErrorIs(t, err, sketchkit.ErrEncodePreserveRequiresPresence)
}

func TestDecode_PopulatesIndex(t *testing.T) {
	ctx := context.Background()
	p := samplePage(t)
	ix := refindex.New()
	page, err := codec.NewPageCodec(codec.Options{Index: ix}).Decode(ctx, encodePage(t, p))
	require.NoError(t, err)

	got, ok := ix.ByID(p.DoObjectID)
	require.True(t, ok)
	assert.Same(t, page, got)
	assert.Len(t, ix.ByTag(model.ClassShapeGroup), 2)
	assert.Len(t, ix.ByTag(model.ClassText), 1)
}

func TestWalk(t *testing.T) {
	p := samplePage(t)
	var tags []string
	err := codec.Walk(p, func(v any, tag string) error {
		if _, ok := v.(model.Layer); ok {
			tags = append(tags, tag)
		}
		if _, ok := v.(*model.Artboard); ok {
			return codec.SkipChildren
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"page", "artboard", "shapeGroup", "oval"}, tags)
}

func TestUserAndMetaCodecs(t *testing.T) {
	ctx := context.Background()
	id := model.NewObjectID()

	ue := model.NewUserEntry()
	ue.PageListHeight = model.Some(110.0)
	us := model.UserState{id: ue}
	uc := codec.NewUserCodec(codec.Options{})
	raw, err := uc.Encode(ctx, us)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{string(id): map[string]any{
		"scrollOrigin":   "{0, 0}",
		"zoomValue":      1.0,
		"pageListHeight": 110.0,
	}}, raw)
	back, err := uc.Decode(ctx, roundJSON(t, raw))
	require.NoError(t, err)
	assert.Equal(t, 110.0, back[id].PageListHeight.Value())

	meta := model.NewMetadata()
	meta.PagesAndArtboards[id] = &model.PageArtboards{Name: "Page 1", Artboards: map[model.ObjectID]*model.ArtboardDescription{}}
	mc := codec.NewMetaCodec(codec.Options{})
	mraw, err := mc.Encode(ctx, meta)
	require.NoError(t, err)
	m := mraw.(map[string]any)
	assert.NotContains(t, m, "_class")
	assert.Equal(t, int64(model.DefaultBuild), m["build"])
	assert.Contains(t, m["created"], "app")
	assert.NotContains(t, m["created"], "autosaved")
	mback, err := mc.Decode(ctx, roundJSON(t, mraw))
	require.NoError(t, err)
	assert.Equal(t, meta, mback)
}

func TestDecode_UserEntryDefaults(t *testing.T) {
	ctx := context.Background()
	id := model.NewObjectID()
	raw := map[string]any{string(id): map[string]any{"pageListHeight": json.Number("110")}}

	var iss sketchkit.Issues
	uc := codec.NewUserCodec(codec.Options{IssueSink: collect(&iss)})
	db, err := uc.DecodeWithMeta(ctx, raw)
	require.NoError(t, err)

	ue := db.Value[id]
	require.NotNil(t, ue)
	assert.Equal(t, model.Point(0, 0), ue.ScrollOrigin)
	assert.Equal(t, 1.0, ue.ZoomValue)

	missing := iss.WithCode(sketchkit.CodeRequired)
	require.Len(t, missing, 2)
	for _, it := range missing {
		assert.Equal(t, sketchkit.Warn, it.Severity)
	}
	assert.True(t, db.Presence["/"+string(id)+"/scrollOrigin"].Has(sketchkit.PresenceDefaultApplied))
	assert.True(t, db.Presence["/"+string(id)+"/zoomValue"].Has(sketchkit.PresenceDefaultApplied))

	kept, err := uc.EncodePreserving(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"pageListHeight": 110.0}, kept.(map[string]any)[string(id)])
}

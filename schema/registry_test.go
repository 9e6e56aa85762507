package schema_test

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/reoring/sketchkit/internal/engine"
	js "github.com/reoring/sketchkit/jsonschema"
	"github.com/reoring/sketchkit/schema"
)

func TestSketchRegistry_Builds(t *testing.T) {
	r := schema.Sketch()
	require.NotNil(t, r)
	assert.Same(t, r, schema.Sketch(), "registry is built once")

	for _, tag := range []string{"page", "artboard", "symbolMaster", "symbolInstance", "group", "shapeGroup", "rectangle", "oval", "shapePath", "text", "bitmap", "document"} {
		_, ok := r.ByTag(tag)
		assert.True(t, ok, tag)
	}
	_, ok := r.ByTag("")
	assert.False(t, ok)
}

func TestSketchRegistry_Inheritance(t *testing.T) {
	r := schema.Sketch()

	page, ok := r.Entity("Page")
	require.True(t, ok)
	for _, k := range []string{"do_objectID", "name", "frame", "layers", "hasClickThrough", "horizontalRulerData"} {
		assert.True(t, page.Known(k), k)
	}
	assert.True(t, page.Known("_class"))
	assert.False(t, page.Known("symbolID"))

	f, ok := page.Field("hasClickThrough")
	require.True(t, ok)
	assert.True(t, f.Required, "ContainerBase overrides the optional base field")
	assert.Equal(t, "ContainerBase", f.Owner)

	inst, _ := r.Entity("SymbolInstance")
	f, ok = inst.Field("hasClickThrough")
	require.True(t, ok)
	assert.False(t, f.Required)
	assert.False(t, inst.Known("layers"))

	rect, _ := r.Entity("Rectangle")
	f, _ = rect.Field("booleanOperation")
	assert.True(t, f.Required)

	assert.True(t, r.IsA("SymbolMaster", "ArtboardBase"))
	assert.True(t, r.IsA("SymbolMaster", "LayerBase"))
	assert.False(t, r.IsA("Text", "ContainerBase"))
}

func TestSketchRegistry_RequiredClassification(t *testing.T) {
	r := schema.Sketch()
	cases := []struct {
		entity, field string
		required      bool
	}{
		{"Rect", "width", true},
		{"Style", "fills", false},
		{"Style", "miterLimit", true},
		{"Fill", "image", false},
		{"Document", "pages", true},
		{"UserEntry", "scrollOrigin", true},
		{"UserEntry", "zoomValue", true},
		{"UserEntry", "pageListHeight", false},
		{"CurvePoint", "cornerRadius", true},
		{"Metadata", "autosaved", true},
		{"CreateMeta", "autosaved", false},
		{"SymbolInstance", "overrides", true},
		{"SymbolInstance", "overrideValues", true},
	}
	for _, tc := range cases {
		t.Run(tc.entity+"."+tc.field, func(t *testing.T) {
			e, ok := r.Entity(tc.entity)
			require.True(t, ok)
			f, ok := e.Field(tc.field)
			require.True(t, ok)
			assert.Equal(t, tc.required, f.Required)
		})
	}
}

func TestSketchRegistry_Roots(t *testing.T) {
	r := schema.Sketch()
	typ, ok := r.RootFor("pages/ABC.json")
	require.True(t, ok)
	assert.Equal(t, "Page", typ.Name)

	typ, ok = r.RootFor("user.json")
	require.True(t, ok)
	assert.Equal(t, schema.KindMap, typ.Kind)

	_, ok = r.RootFor("pages/readme.txt")
	assert.False(t, ok)
	_, ok = r.RootFor("previews/preview.png")
	assert.False(t, ok)
}

func TestSketchRegistry_VariantOrder(t *testing.T) {
	v, ok := schema.Sketch().Variant(schema.VariantOverrideValue)
	require.True(t, ok)
	require.Len(t, v.Candidates, 4)
	assert.Equal(t, schema.KindString, v.Candidates[0].Type.Kind)
	assert.Equal(t, "ImageDataReference", v.Candidates[1].Type.Name)
	assert.Equal(t, "symbolID", v.Candidates[2].Key)
	assert.Equal(t, schema.KindMap, v.Candidates[3].Type.Kind)
}

func TestBuilder_Errors(t *testing.T) {
	t.Run("cycle", func(t *testing.T) {
		b := schema.NewBuilder()
		b.Entity("A").Extends("B").Field("x", schema.Int()).Required()
		b.Entity("B").Extends("A")
		_, err := b.Build()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cycle")
	})
	t.Run("unknown base", func(t *testing.T) {
		b := schema.NewBuilder()
		b.Entity("A").Extends("Missing")
		_, err := b.Build()
		require.Error(t, err)
	})
	t.Run("duplicate tag", func(t *testing.T) {
		b := schema.NewBuilder()
		b.Entity("A").Tag("x")
		b.Entity("B").Tag("x")
		_, err := b.Build()
		require.Error(t, err)
		assert.Contains(t, err.Error(), `tag "x"`)
	})
	t.Run("unknown reference", func(t *testing.T) {
		b := schema.NewBuilder()
		b.Entity("A").Field("b", schema.Ref("B")).Optional()
		_, err := b.Build()
		require.Error(t, err)
	})
	t.Run("untagged candidate without key", func(t *testing.T) {
		b := schema.NewBuilder()
		b.Entity("A").Field("k", schema.String()).Required()
		b.Variant("V", schema.EntityCandidate("A"))
		_, err := b.Build()
		require.Error(t, err)
	})
	t.Run("distinguishing key must be a field", func(t *testing.T) {
		b := schema.NewBuilder()
		b.Entity("A").Field("k", schema.String()).Required()
		b.Variant("V", schema.KeyedCandidate("A", "other"))
		_, err := b.Build()
		require.Error(t, err)
	})
	t.Run("abstract tags may repeat", func(t *testing.T) {
		b := schema.NewBuilder()
		b.Entity("Base").Abstract().Tag("x")
		b.Entity("A").Extends("Base").Tag("x")
		_, err := b.Build()
		require.NoError(t, err)
	})
}

func TestJSONSchemaProjection(t *testing.T) {
	r := schema.Sketch()
	s := r.JSONSchema()
	require.NotNil(t, s)

	rect := s.Defs["Rect"]
	require.NotNil(t, rect)
	assert.Equal(t, false, rect.AdditionalProperties)
	assert.Equal(t, "rect", rect.Properties["_class"].Const)
	assert.Contains(t, rect.Required, "width")
	assert.Contains(t, rect.Required, "_class")

	_, abstract := s.Defs["LayerBase"]
	assert.False(t, abstract)

	layer := s.Defs[schema.VariantLayer]
	require.NotNil(t, layer)
	assert.Len(t, layer.OneOf, 10)
	assert.Equal(t, "#/$defs/Page", s.Properties["pages/"].Ref)

	page, ok := r.JSONSchemaFor("pages/X.json")
	require.True(t, ok)
	assert.Equal(t, "#/$defs/Page", page.Ref)
	assert.NotEmpty(t, page.Defs)
}

func TestJSONSchema_EncodesIndented(t *testing.T) {
	data, err := engine.EncodeJSONIndent(schema.Sketch().JSONSchema())
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  \"$defs\": {")

	var back js.Schema
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, js.Draft, back.SchemaURI)
	require.Contains(t, back.Defs, "UserEntry")
	assert.ElementsMatch(t, []string{"scrollOrigin", "zoomValue"}, back.Defs["UserEntry"].Required)
	assert.Equal(t, "#/$defs/Page", back.Properties["pages/"].Ref)
}

func TestDescribeYAML(t *testing.T) {
	out, err := yaml.Marshal(schema.Sketch())
	require.NoError(t, err)

	var back schema.Summary
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Equal(t, "Page", back.Roots["pages/"])

	var found bool
	for _, e := range back.Entities {
		if e.Name == "Page" {
			found = true
			assert.Equal(t, "page", e.Tag)
			assert.Equal(t, "ArtboardBase", e.Extends)
		}
	}
	assert.True(t, found)
}

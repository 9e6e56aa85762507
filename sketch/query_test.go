package sketch_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/sketchkit/model"
	"github.com/reoring/sketchkit/sketch"
)

func contents(matches []sketch.TextMatch) []string {
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Content
	}
	return out
}

func TestFindText_ThroughInstances(t *testing.T) {
	f, page := newPage(t)
	btn := addButton(t, f, page)
	inst, err := f.NewSymbolInstance(btn.master, 0, 200)
	require.NoError(t, err)
	require.NoError(t, f.AddLayer(page, nil, inst))
	require.NoError(t, f.AddTextOverride(inst, []model.ObjectID{btn.group.ID(), btn.label.ID()}, "Send"))

	got, err := f.FindText(nil, "Send")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Same(t, btn.label, got[0].Text)
	assert.Equal(t, []*model.SymbolInstance{inst}, got[0].Chain)

	got, err = f.FindText(nil, "Submit")
	require.NoError(t, err)
	require.Len(t, got, 1, "only the master shows the original text")
	assert.Empty(t, got[0].Chain)

	got, err = f.FindText(nil, "Press")
	require.NoError(t, err)
	assert.Equal(t, []string{"Press", "Press"}, contents(got))

	got, err = f.FindText(inst, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Send", "Press"}, contents(got))
}

func TestFindText_FollowsSymbolSwap(t *testing.T) {
	f, page := newPage(t)
	btn := addButton(t, f, page)
	icon := model.NewSymbolMaster("Icon", 300, 0, 24, 24)
	icon.Layers = append(icon.Layers, model.NewText("Glyph", 0, 0, "Star", "Helvetica", 12))
	require.NoError(t, f.AddSymbolMaster(page, icon))

	nested, err := f.NewSymbolInstance(btn.master, 0, 0)
	require.NoError(t, err)
	card := model.NewSymbolMaster("Card", 0, 100, 200, 200)
	card.Layers = append(card.Layers, nested)
	require.NoError(t, f.AddSymbolMaster(page, card))
	inst, err := f.NewSymbolInstance(card, 0, 400)
	require.NoError(t, err)
	require.NoError(t, f.AddLayer(page, nil, inst))

	got, err := f.FindText(inst, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Submit", "Press"}, contents(got))

	require.NoError(t, f.AddSymbolOverride(inst, []model.ObjectID{nested.ID()}, icon))
	got, err = f.FindText(inst, "")
	require.NoError(t, err)
	require.Equal(t, []string{"Star"}, contents(got))
	assert.Equal(t, []*model.SymbolInstance{inst, nested}, got[0].Chain)
}

func TestSymbols(t *testing.T) {
	f, page := newPage(t)
	btn := addButton(t, f, page)
	icon := model.NewSymbolMaster("Icon/Star", 300, 0, 24, 24)
	require.NoError(t, f.AddSymbolMaster(page, icon))
	require.NoError(t, f.AddArtboard(page, model.NewArtboard("Home", 0, 0, 10, 10)))

	assert.Equal(t, []*model.SymbolMaster{btn.master, icon}, f.AvailableSymbols())
	assert.Equal(t, []*model.SymbolMaster{icon}, f.SearchSymbols("Icon"))
	assert.Empty(t, f.SearchSymbols("Missing"))

	m, ok := f.SymbolMaster(icon.SymbolID)
	require.True(t, ok)
	assert.Same(t, icon, m)

	texts := f.ObjectsByClass(model.ClassText)
	assert.ElementsMatch(t, []any{btn.label, btn.hint}, texts)
}

func TestQuery(t *testing.T) {
	ctx := context.Background()
	f, page := newPage(t)
	require.NoError(t, f.AddArtboard(page, model.NewArtboard("Home", 0, 0, 375, 812)))
	_, err := f.AddPageWithID(pageB, "Page 2")
	require.NoError(t, err)

	got, err := f.Query(ctx, "$.pages[*].name")
	require.NoError(t, err)
	assert.Equal(t, []any{"Page 1", "Page 2"}, got)

	got, err = f.Query(ctx, "$.pages[0].layers[*].name")
	require.NoError(t, err)
	assert.Equal(t, []any{"Home"}, got)

	got, err = f.Query(ctx, "$.document.do_objectID")
	require.NoError(t, err)
	assert.Equal(t, []any{string(model.DocumentID)}, got)

	_, err = f.Query(ctx, "$.pages[")
	assert.Error(t, err)
}

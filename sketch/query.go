package sketch

import (
	"context"
	"slices"
	"strings"

	"github.com/ohler55/ojg/jp"
	"gitlab.com/tozd/go/errors"

	sketchkit "github.com/reoring/sketchkit"
	"github.com/reoring/sketchkit/codec"
	"github.com/reoring/sketchkit/model"
)

// VisitFunc is called by Walk for every layer. chain lists the symbol
// instances whose masters were entered to reach l, outermost first. It may
// return codec.SkipChildren.
type VisitFunc func(l model.Layer, chain []*model.SymbolInstance) error

// Walk visits root and its descendants, parents first, entering the master
// of every symbol instance. Symbol swaps recorded on an enclosing instance
// are followed. A nil root walks every page.
//
// A master that cannot be resolved, or that would be entered again inside
// itself, is treated as empty and reported once as a dangling reference.
func (f *File) Walk(root model.Layer, fn VisitFunc) error {
	visit := func(l model.Layer, _ []model.Layer, chain []*model.SymbolInstance) error { return fn(l, chain) }
	return f.walkRoots(root, visit)
}

type visitor func(l model.Layer, trail []model.Layer, chain []*model.SymbolInstance) error

func (f *File) walkRoots(root model.Layer, fn visitor) error {
	if root != nil {
		return f.walk(root, nil, nil, nil, fn)
	}
	for _, p := range f.pages {
		if err := f.walk(p, nil, nil, nil, fn); err != nil {
			return err
		}
	}
	return nil
}

// walk keeps trail as the layers from the walk root down to l, inclusive,
// and entered as the masters of chain.
func (f *File) walk(l model.Layer, trail []model.Layer, chain []*model.SymbolInstance, entered []*model.SymbolMaster, fn visitor) error {
	trail = append(trail, l)
	err := fn(l, trail, chain)
	if errors.Is(err, codec.SkipChildren) {
		return nil
	}
	if err != nil {
		return err
	}

	var children []model.Layer
	switch v := l.(type) {
	case *model.SymbolInstance:
		m := f.master(v, trail, chain, entered)
		if m == nil {
			return nil
		}
		children = m.Layers
		chain = append(slices.Clip(chain), v)
		entered = append(slices.Clip(entered), m)
	case model.Container:
		children = v.Children()
	}
	for _, ch := range children {
		if err := f.walk(ch, slices.Clip(trail), chain, entered, fn); err != nil {
			return err
		}
	}
	return nil
}

// master resolves the master entered below inst, or nil for an empty branch.
func (f *File) master(inst *model.SymbolInstance, trail []model.Layer, chain []*model.SymbolInstance, entered []*model.SymbolMaster) *model.SymbolMaster {
	symbolID := inst.SymbolID
	if ov, ok := override(trail, chain).(*model.SymbolIDOverride); ok && ov.SymbolID != "" {
		symbolID = ov.SymbolID
	}
	m, ok := f.index.Master(symbolID)
	if !ok {
		f.warnOnce("missing:"+string(symbolID), inst, "symbol master "+string(symbolID)+" is not loaded")
		return nil
	}
	if slices.Contains(entered, m) {
		f.warnOnce("cycle:"+string(symbolID), inst, "symbol master "+string(symbolID)+" contains itself")
		return nil
	}
	return m
}

// override returns the value recorded for the last layer of trail by the
// outermost instance of chain whose override path reaches it.
func override(trail []model.Layer, chain []*model.SymbolInstance) model.OverrideValue {
	for _, inst := range chain {
		at := slices.Index(trail, model.Layer(inst))
		if at < 0 {
			continue
		}
		var path []model.ObjectID
		for _, step := range trail[at+1:] {
			if b := step.Base(); b != nil {
				path = append(path, b.ID())
			}
		}
		if len(path) == 0 {
			continue
		}
		if v, ok := inst.NestedOverride(path); ok {
			return v
		}
	}
	return nil
}

func (f *File) warnOnce(key string, inst *model.SymbolInstance, hint string) {
	if f.reported[key] {
		return
	}
	f.reported[key] = true
	f.issues = append(f.issues, sketchkit.WarnAt(sketchkit.Root(), sketchkit.CodeDanglingReference, hint,
		map[string]any{"instance": string(inst.ID()), "symbolID": string(inst.SymbolID)}))
	f.log.Warn(hint, "code", sketchkit.CodeDanglingReference, "instance", string(inst.ID()))
}

// TextMatch is a text layer found by FindText.
type TextMatch struct {
	Text *model.Text
	// Content is the displayed string, after overrides.
	Content string
	// Chain lists the instances the text was reached through.
	Chain []*model.SymbolInstance
}

// FindText returns the text layers below root whose displayed content
// contains substr. Text inside symbol masters is matched once per instance,
// with the override of the outermost instance taking effect. A nil root
// searches every page.
func (f *File) FindText(root model.Layer, substr string) ([]TextMatch, error) {
	var out []TextMatch
	err := f.walkRoots(root, func(l model.Layer, trail []model.Layer, chain []*model.SymbolInstance) error {
		t, ok := l.(*model.Text)
		if !ok {
			return nil
		}
		content, err := t.Content()
		if err != nil {
			return err
		}
		if ov, ok := override(trail, chain).(model.OverrideText); ok {
			content = string(ov)
		}
		if strings.Contains(content, substr) {
			out = append(out, TextMatch{Text: t, Content: content, Chain: slices.Clone(chain)})
		}
		return nil
	})
	return out, err
}

// AvailableSymbols returns the symbol masters placed directly on pages, in
// page order.
func (f *File) AvailableSymbols() []*model.SymbolMaster {
	var out []*model.SymbolMaster
	for _, p := range f.pages {
		for _, l := range p.Layers {
			if m, ok := l.(*model.SymbolMaster); ok {
				out = append(out, m)
			}
		}
	}
	return out
}

// SearchSymbols returns the available symbols whose name contains name.
func (f *File) SearchSymbols(name string) []*model.SymbolMaster {
	return slices.DeleteFunc(f.AvailableSymbols(), func(m *model.SymbolMaster) bool {
		return !strings.Contains(m.Name, name)
	})
}

// SymbolMaster resolves a symbol identifier.
func (f *File) SymbolMaster(symbolID model.ObjectID) (*model.SymbolMaster, bool) {
	return f.index.Master(symbolID)
}

// ObjectByID returns the entity with object identifier id.
func (f *File) ObjectByID(id model.ObjectID) (any, bool) { return f.index.ByID(id) }

// ObjectsByClass returns the entities tagged class, such as
// model.ClassText, in document order.
func (f *File) ObjectsByClass(class string) []any { return slices.Clone(f.index.ByTag(class)) }

// Tree returns the canonical JSON tree of the document: the keys "meta",
// "document" and "user" hold the root entries and "pages" holds the pages in
// document order. Pages that failed to decode appear as loaded.
func (f *File) Tree(ctx context.Context) (map[string]any, error) {
	opts := f.codecOptions()
	meta, err := codec.NewMetaCodec(opts).Encode(ctx, f.Meta)
	if err != nil {
		return nil, err
	}
	doc, err := codec.NewDocumentCodec(opts).Encode(ctx, f.Document)
	if err != nil {
		return nil, err
	}
	user, err := codec.NewUserCodec(opts).Encode(ctx, f.User)
	if err != nil {
		return nil, err
	}
	pc := codec.NewPageCodec(opts)
	pages := make([]any, 0, len(f.pages)+len(f.rejected))
	for _, p := range f.pages {
		v, err := pc.ForEntry(model.PageEntry(p.ID())).Encode(ctx, p)
		if err != nil {
			return nil, err
		}
		pages = append(pages, v)
	}
	for _, name := range sortedKeys(f.rejected) {
		pages = append(pages, f.rejected[name])
	}
	return map[string]any{
		"meta":     meta,
		"document": doc,
		"user":     user,
		"pages":    pages,
	}, nil
}

// Query evaluates a JSONPath expression against Tree, e.g.
// "$.pages[*].layers[?(@._class == 'artboard')].name".
func (f *File) Query(ctx context.Context, expr string) ([]any, error) {
	x, err := jp.ParseString(expr)
	if err != nil {
		return nil, errors.Wrapf(err, "jsonpath %q", expr)
	}
	tree, err := f.Tree(ctx)
	if err != nil {
		return nil, err
	}
	return x.Get(tree), nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

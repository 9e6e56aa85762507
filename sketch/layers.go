package sketch

import (
	"slices"

	"gitlab.com/tozd/go/errors"

	"github.com/reoring/sketchkit/codec"
	"github.com/reoring/sketchkit/model"
)

// AddArtboard appends ab to page and lists it in the page's metadata index.
func (f *File) AddArtboard(page *model.Page, ab *model.Artboard) error {
	return f.addBoard(page, ab)
}

// AddSymbolMaster appends m to page like an artboard. Its symbol identifier
// must not be used by another master.
func (f *File) AddSymbolMaster(page *model.Page, m *model.SymbolMaster) error {
	if _, taken := f.index.Master(m.SymbolID); taken {
		return errors.Errorf("%w: symbol %s", ErrDuplicateID, m.SymbolID)
	}
	return f.addBoard(page, m)
}

func (f *File) addBoard(page *model.Page, b model.Board) error {
	if err := f.owns(page); err != nil {
		return err
	}
	if err := f.checkNew(b); err != nil {
		return err
	}
	page.Layers = append(page.Layers, b)
	f.artboards(page)[b.Base().ID()] = &model.ArtboardDescription{Name: b.Base().Name}
	f.addIndex(b)
	return nil
}

// RemoveArtboard removes the artboard or symbol master id from page and
// from the page's metadata index.
func (f *File) RemoveArtboard(page *model.Page, id model.ObjectID) error {
	if err := f.owns(page); err != nil {
		return err
	}
	i := slices.IndexFunc(page.Layers, func(l model.Layer) bool {
		_, board := l.(model.Board)
		return board && l.Base().ID() == id
	})
	if i < 0 {
		return errors.Errorf("%w: artboard %s", ErrLayerNotFound, id)
	}
	if err := f.inUse(page.Layers[i]); err != nil {
		return err
	}
	f.removeAt(page, page, i)
	return nil
}

// AddLayer appends l to parent, which must be page or a container inside
// it. A nil parent means page. Artboards and symbol masters added to the
// page itself are also listed in the metadata index.
func (f *File) AddLayer(page *model.Page, parent model.Container, l model.Layer) error {
	if err := f.owns(page); err != nil {
		return err
	}
	if parent == nil || parent == model.Container(page) {
		if b, ok := l.(model.Board); ok {
			if m, ok := b.(*model.SymbolMaster); ok {
				return f.AddSymbolMaster(page, m)
			}
			return f.addBoard(page, b)
		}
		parent = page
	} else if err := f.contains(page, parent); err != nil {
		return err
	}
	if err := f.checkNew(l); err != nil {
		return err
	}
	parent.SetChildren(append(parent.Children(), l))
	f.addIndex(l)
	return nil
}

// RemoveLayer removes the layer id from anywhere below page. The reference
// index is rebuilt afterwards. A symbol master still used elsewhere cannot be
// removed.
func (f *File) RemoveLayer(page *model.Page, id model.ObjectID) error {
	if err := f.owns(page); err != nil {
		return err
	}
	parent, i, ok := locate(page, id)
	if !ok {
		return errors.Errorf("%w: %s", ErrLayerNotFound, id)
	}
	if err := f.inUse(parent.Children()[i]); err != nil {
		return err
	}
	f.removeAt(page, parent, i)
	return nil
}

func (f *File) removeAt(page *model.Page, parent model.Container, i int) {
	l := parent.Children()[i]
	parent.SetChildren(slices.Delete(parent.Children(), i, i+1))
	if parent == model.Container(page) {
		if b := l.Base(); b != nil {
			delete(f.artboards(page), b.ID())
		}
	}
	f.touch(model.PageEntry(page.ID()))
	f.retire([]model.Layer{l})
	f.note(f.reindex())
}

// GroupLayers moves the direct children ids of parent into a new group
// placed where the first of them was. The group takes the bounding box of
// the layers and the layers are rebased into it. A nil parent means page.
func (f *File) GroupLayers(page *model.Page, parent model.Container, name string, ids ...model.ObjectID) (*model.Group, error) {
	if len(ids) == 0 {
		return nil, errors.WithStack(ErrEmptyGroup)
	}
	if err := f.owns(page); err != nil {
		return nil, err
	}
	if parent == nil {
		parent = page
	} else if err := f.contains(page, parent); err != nil {
		return nil, err
	}

	children := parent.Children()
	picked := map[int]bool{}
	first := len(children)
	for _, id := range ids {
		i := slices.IndexFunc(children, func(l model.Layer) bool { return l.Base() != nil && l.Base().ID() == id })
		if i < 0 {
			return nil, errors.Errorf("%w: %s is not a child of %s", ErrLayerNotFound, id, parent.Base().Name)
		}
		picked[i] = true
		first = min(first, i)
	}
	var layers []model.Layer
	for i, l := range children {
		if picked[i] {
			layers = append(layers, l)
		}
	}
	g, err := model.NewGroup(name, layers...)
	if err != nil {
		return nil, err
	}
	g.DoObjectID = f.freshID()

	out := make([]model.Layer, 0, len(children)-len(layers)+1)
	for i, l := range children {
		switch {
		case i == first:
			out = append(out, g)
		case picked[i]:
			if parent == model.Container(page) {
				delete(f.artboards(page), l.Base().ID())
			}
		default:
			out = append(out, l)
		}
	}
	parent.SetChildren(out)
	f.note(f.index.Add(g, g.Class()))
	f.touch(model.PageEntry(page.ID()))
	return g, nil
}

// NewSymbolInstance places an instance of master at (x, y). master must be
// part of the document.
func (f *File) NewSymbolInstance(master *model.SymbolMaster, x, y float64) (*model.SymbolInstance, error) {
	m, ok := f.index.Master(master.SymbolID)
	if !ok || m != master {
		return nil, errors.Errorf("%w: symbol master %q is not in the document", ErrDanglingReference, master.Name)
	}
	s := model.NewSymbolInstance(master, x, y)
	s.DoObjectID = f.freshID()
	return s, nil
}

// AddTextOverride replaces the text of the layer reached through path.
// path[0] is a direct child of inst's master and every further element is a
// direct child of the previous one, or of its master when the previous one is
// a symbol instance. The last element must be a text layer.
func (f *File) AddTextOverride(inst *model.SymbolInstance, path []model.ObjectID, text string) error {
	target, err := f.resolvePath(inst, path)
	if err != nil {
		return err
	}
	if _, ok := target.(*model.Text); !ok {
		return errors.Errorf("%w: %s is a %s, not a text layer", ErrInvalidPath, path[len(path)-1], target.Class())
	}
	inst.SetTextOverride(path, text)
	return nil
}

// AddSymbolOverride swaps the nested instance reached through path for
// master.
func (f *File) AddSymbolOverride(inst *model.SymbolInstance, path []model.ObjectID, master *model.SymbolMaster) error {
	target, err := f.resolvePath(inst, path)
	if err != nil {
		return err
	}
	if _, ok := target.(*model.SymbolInstance); !ok {
		return errors.Errorf("%w: %s is a %s, not a symbol instance", ErrInvalidPath, path[len(path)-1], target.Class())
	}
	if _, ok := f.index.Master(master.SymbolID); !ok {
		return errors.Errorf("%w: symbol %s", ErrDanglingReference, master.SymbolID)
	}
	inst.SetSymbolOverride(path, master.SymbolID)
	return nil
}

func (f *File) resolvePath(inst *model.SymbolInstance, path []model.ObjectID) (model.Layer, error) {
	if len(path) == 0 {
		return nil, errors.Errorf("%w: empty", ErrInvalidPath)
	}
	m, ok := f.index.Master(inst.SymbolID)
	if !ok {
		return nil, errors.Errorf("%w: symbol %s", ErrDanglingReference, inst.SymbolID)
	}
	scope := m.Layers
	var cur model.Layer
	for i, id := range path {
		j := slices.IndexFunc(scope, func(l model.Layer) bool { return l.Base() != nil && l.Base().ID() == id })
		if j < 0 {
			return nil, errors.Errorf("%w: %s not found at position %d", ErrInvalidPath, id, i)
		}
		cur = scope[j]
		switch c := cur.(type) {
		case *model.SymbolInstance:
			nested, ok := f.index.Master(c.SymbolID)
			if !ok {
				if i < len(path)-1 {
					return nil, errors.Errorf("%w: symbol %s", ErrDanglingReference, c.SymbolID)
				}
				scope = nil
				continue
			}
			scope = nested.Layers
		case model.Container:
			scope = c.Children()
		default:
			scope = nil
		}
	}
	return cur, nil
}

// owns fails unless page is one of the document's pages.
func (f *File) owns(page *model.Page) error {
	if page == nil || !slices.Contains(f.pages, page) {
		return errors.WithStack(ErrPageNotFound)
	}
	return nil
}

// contains fails unless c is a container below page.
func (f *File) contains(page *model.Page, c model.Container) error {
	b := c.Base()
	if b == nil {
		return errors.Errorf("%w: untyped container", ErrLayerNotFound)
	}
	parent, i, ok := locate(page, b.ID())
	if !ok || parent.Children()[i] != model.Layer(c) {
		return errors.Errorf("%w: %s is not on page %s", ErrLayerNotFound, b.ID(), page.Name)
	}
	return nil
}

// checkNew validates a subtree about to be inserted: identifiers must be
// unused and every symbol instance must resolve. Missing identifiers are
// filled in once the subtree is accepted.
func (f *File) checkNew(root model.Layer) error {
	seen := map[model.ObjectID]bool{}
	masters := map[model.ObjectID]bool{}
	var instances []*model.SymbolInstance
	var unnamed []*model.LayerBase
	err := walkLayers(root, func(l model.Layer) error {
		b := l.Base()
		if b == nil {
			return nil
		}
		if b.ID() == "" {
			unnamed = append(unnamed, b)
		} else if seen[b.ID()] || f.idTaken(b.ID()) {
			return errors.Errorf("%w: %s", ErrDuplicateID, b.ID())
		} else {
			seen[b.ID()] = true
		}
		switch v := l.(type) {
		case *model.SymbolMaster:
			masters[v.SymbolID] = true
		case *model.SymbolInstance:
			instances = append(instances, v)
		}
		return nil
	})
	if err != nil {
		return err
	}
	for _, s := range instances {
		if _, ok := f.index.Master(s.SymbolID); !ok && !masters[s.SymbolID] {
			return errors.Errorf("%w: instance %q uses symbol %s", ErrDanglingReference, s.Name, s.SymbolID)
		}
	}
	for _, b := range unnamed {
		b.SetID(f.freshID())
	}
	return nil
}

// inUse fails when removing the given layers would take away a symbol
// master that an instance or a symbol override elsewhere still points at.
func (f *File) inUse(removed ...model.Layer) error {
	drop := map[model.Layer]bool{}
	gone := map[model.ObjectID]bool{}
	for _, r := range removed {
		drop[r] = true
		_ = walkLayers(r, func(l model.Layer) error {
			if m, ok := l.(*model.SymbolMaster); ok {
				drop[l] = true
				gone[m.SymbolID] = true
			}
			return nil
		})
	}
	// Another master with the same symbol identifier takes over.
	for _, v := range f.index.ByTag(model.ClassSymbolMaster) {
		if m, ok := v.(*model.SymbolMaster); ok && !drop[m] {
			delete(gone, m.SymbolID)
		}
	}
	if len(gone) == 0 {
		return nil
	}

	var found error
	for _, p := range f.pages {
		if drop[p] {
			continue
		}
		_ = walkLayers(p, func(l model.Layer) error {
			if drop[l] {
				return codec.SkipChildren
			}
			s, ok := l.(*model.SymbolInstance)
			if !ok {
				return nil
			}
			for _, id := range append([]model.ObjectID{s.SymbolID}, swapped(s.Overrides)...) {
				if gone[id] {
					found = errors.Errorf("%w: symbol %s is still used by instance %s", ErrDanglingReference, id, s.ID())
					return found
				}
			}
			return nil
		})
		if found != nil {
			return found
		}
	}
	return nil
}

// swapped lists the symbol identifiers that m swaps in, at any depth.
func swapped(m model.OverrideMap) []model.ObjectID {
	var out []model.ObjectID
	for _, v := range m {
		switch o := v.(type) {
		case *model.SymbolIDOverride:
			out = append(out, o.SymbolID)
		case model.OverrideMap:
			out = append(out, swapped(o)...)
		}
	}
	return out
}

func (f *File) addIndex(l model.Layer) {
	_ = codec.Walk(l, func(v any, tag string) error {
		f.note(f.index.Add(v, tag))
		return nil
	})
}

// artboards returns the metadata artboard index of page, creating it when
// missing.
func (f *File) artboards(page *model.Page) map[model.ObjectID]*model.ArtboardDescription {
	if f.Meta.PagesAndArtboards == nil {
		f.Meta.PagesAndArtboards = map[model.ObjectID]*model.PageArtboards{}
	}
	pa, ok := f.Meta.PagesAndArtboards[page.ID()]
	if !ok {
		pa = model.NewPageArtboards()
		pa.Name = page.Name
		f.Meta.PagesAndArtboards[page.ID()] = pa
	}
	if pa.Artboards == nil {
		pa.Artboards = map[model.ObjectID]*model.ArtboardDescription{}
	}
	return pa.Artboards
}

// walkLayers visits root and its descendants, parents first. It does not
// enter symbol masters; see File.Walk for that.
func walkLayers(root model.Layer, fn func(model.Layer) error) error {
	err := fn(root)
	if errors.Is(err, codec.SkipChildren) {
		return nil
	}
	if err != nil {
		return err
	}
	if c, ok := root.(model.Container); ok {
		for _, ch := range c.Children() {
			if err := walkLayers(ch, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

// locate finds the layer id below root and returns its parent and index.
func locate(root model.Container, id model.ObjectID) (model.Container, int, bool) {
	for i, l := range root.Children() {
		if b := l.Base(); b != nil && b.ID() == id {
			return root, i, true
		}
		if c, ok := l.(model.Container); ok {
			if p, j, ok := locate(c, id); ok {
				return p, j, true
			}
		}
	}
	return nil, 0, false
}

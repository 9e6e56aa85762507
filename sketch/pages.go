package sketch

import (
	"slices"
	"strings"

	"gitlab.com/tozd/go/errors"

	"github.com/reoring/sketchkit/model"
	"github.com/reoring/sketchkit/schema"
)

// Pages returns the pages in document order.
func (f *File) Pages() []*model.Page { return slices.Clone(f.pages) }

// Page returns the page with identifier id.
func (f *File) Page(id model.ObjectID) (*model.Page, bool) {
	for _, p := range f.pages {
		if p.ID() == id {
			return p, true
		}
	}
	return nil, false
}

// PageByName returns the first page called name.
func (f *File) PageByName(name string) (*model.Page, bool) {
	for _, p := range f.pages {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// HasPage reports whether a page called name exists.
func (f *File) HasPage(name string) bool {
	_, ok := f.PageByName(name)
	return ok
}

// AddPage appends an empty page with a fresh identifier.
func (f *File) AddPage(name string) (*model.Page, error) {
	return f.AddPageWithID(f.freshID(), name)
}

// AddPageWithID appends an empty page with the given identifier. The
// document page list, the metadata page index and the user state all get an
// entry for it.
func (f *File) AddPageWithID(id model.ObjectID, name string) (*model.Page, error) {
	if id == "" {
		return nil, errors.Errorf("%w: empty page identifier", ErrInvalidPath)
	}
	if f.idTaken(id) {
		return nil, errors.Errorf("%w: %s", ErrDuplicateID, id)
	}
	p := model.NewPage(name)
	p.DoObjectID = id

	pa := model.NewPageArtboards()
	pa.Name = name
	ue := model.NewUserEntry()

	f.pages = append(f.pages, p)
	f.Document.Pages = append(f.Document.Pages, model.PageReference(id))
	if f.Meta.PagesAndArtboards == nil {
		f.Meta.PagesAndArtboards = map[model.ObjectID]*model.PageArtboards{}
	}
	f.Meta.PagesAndArtboards[id] = pa
	f.User[id] = ue
	f.note(f.index.Add(p, p.Class()))
	return p, nil
}

// RemovePage removes the first page called name together with its document
// reference, metadata index entry and user state entry. It fails when the
// page holds a symbol master used on another page.
func (f *File) RemovePage(name string) error {
	i := slices.IndexFunc(f.pages, func(p *model.Page) bool { return p.Name == name })
	if i < 0 {
		return errors.Errorf("%w: %q", ErrPageNotFound, name)
	}
	p := f.pages[i]
	if err := f.inUse(p); err != nil {
		return err
	}
	id := p.ID()
	f.pages = slices.Delete(f.pages, i, i+1)
	f.Document.Pages = slices.DeleteFunc(f.Document.Pages, func(r *model.FileReference) bool {
		pid, ok := r.PageID()
		return ok && pid == id
	})
	delete(f.Meta.PagesAndArtboards, id)
	delete(f.User, id)
	f.touch(schema.EntryDocument)
	f.touch(model.PageEntry(id))
	f.retire([]model.Layer{p})
	f.note(f.reindex())
	return nil
}

// idTaken reports whether id names a page, an indexed object or a page
// index or user state entry.
func (f *File) idTaken(id model.ObjectID) bool {
	if f.index.Has(id) {
		return true
	}
	if _, ok := f.Meta.PagesAndArtboards[id]; ok {
		return true
	}
	if _, ok := f.User[id]; ok {
		return true
	}
	for entry := range f.rejected {
		if pageIDOf(entry) == id {
			return true
		}
	}
	return slices.ContainsFunc(f.Document.PageIDs(), func(p model.ObjectID) bool { return p == id })
}

// freshID returns an identifier never used in this session.
func (f *File) freshID() model.ObjectID {
	for {
		id := model.NewObjectID()
		if !f.retired[id] && !f.idTaken(id) {
			return id
		}
	}
}

// retire records id and the identifiers below layers as used.
func (f *File) retire(layers []model.Layer, ids ...model.ObjectID) {
	for _, id := range ids {
		f.retired[id] = true
	}
	for _, l := range layers {
		_ = walkLayers(l, func(l model.Layer) error {
			if b := l.Base(); b != nil && b.ID() != "" {
				f.retired[b.ID()] = true
			}
			return nil
		})
	}
}

func pageIDOf(entry string) model.ObjectID {
	return model.ObjectID(strings.TrimSuffix(strings.TrimPrefix(entry, schema.EntryPages), ".json"))
}

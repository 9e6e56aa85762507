// Package refindex maps object identifiers, discriminator tags and symbol
// identifiers to the entities of one loaded document.
package refindex

import (
	sketchkit "github.com/reoring/sketchkit"
	"github.com/reoring/sketchkit/model"
)

// Index holds non-owning lookup links. It is not safe for concurrent use.
type Index struct {
	byID     map[model.ObjectID]any
	byTag    map[string][]any
	masters  map[model.ObjectID]*model.SymbolMaster
	symNames map[string]model.ObjectID
}

// New returns an empty index.
func New() *Index {
	ix := &Index{}
	ix.Reset()
	return ix
}

// Reset drops every entry.
func (ix *Index) Reset() {
	ix.byID = map[model.ObjectID]any{}
	ix.byTag = map[string][]any{}
	ix.masters = map[model.ObjectID]*model.SymbolMaster{}
	ix.symNames = map[string]model.ObjectID{}
}

// Add records v under its identifier (if it has one) and under tag (if not
// empty). Duplicate identifiers and duplicate symbol names are reported as
// warnings; the first entity keeps the identifier.
func (ix *Index) Add(v any, tag string) sketchkit.Issues {
	var iss sketchkit.Issues
	if idf, ok := v.(model.Identified); ok {
		if id := idf.ID(); id != "" {
			if prev, dup := ix.byID[id]; dup && prev != v {
				iss = append(iss, sketchkit.WarnAt(sketchkit.Root(), sketchkit.CodeDuplicateID, string(id),
					map[string]any{"id": string(id)}))
			} else {
				ix.byID[id] = v
			}
		}
	}
	if tag != "" {
		ix.byTag[tag] = append(ix.byTag[tag], v)
	}
	if m, ok := v.(*model.SymbolMaster); ok && m.SymbolID != "" {
		if _, dup := ix.masters[m.SymbolID]; !dup {
			ix.masters[m.SymbolID] = m
		}
		if other, dup := ix.symNames[m.Name]; dup && other != m.SymbolID {
			iss = append(iss, sketchkit.WarnAt(sketchkit.Root(), sketchkit.CodeDuplicateSymbolName, m.Name,
				map[string]any{"name": m.Name, "symbolID": string(m.SymbolID)}))
		} else {
			ix.symNames[m.Name] = m.SymbolID
		}
	}
	return iss
}

// ByID returns the entity with identifier id.
func (ix *Index) ByID(id model.ObjectID) (any, bool) {
	v, ok := ix.byID[id]
	return v, ok
}

// Has reports whether id is taken.
func (ix *Index) Has(id model.ObjectID) bool {
	_, ok := ix.byID[id]
	return ok
}

// ByTag returns the entities carrying tag, in insertion order.
func (ix *Index) ByTag(tag string) []any { return ix.byTag[tag] }

// Master resolves a symbol identifier.
func (ix *Index) Master(symbolID model.ObjectID) (*model.SymbolMaster, bool) {
	m, ok := ix.masters[symbolID]
	return m, ok
}

// Len returns the number of identified entities.
func (ix *Index) Len() int { return len(ix.byID) }


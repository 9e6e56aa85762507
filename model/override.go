package model

import "strings"

// Override key suffixes.
const (
	SuffixStringValue = "_stringValue"
	SuffixSymbolID    = "_symbolID"
	// PathSeparator joins the layer identifiers of an override path.
	PathSeparator = "/"
)

// OverrideEntry is one element of a symbol instance's override audit list.
type OverrideEntry struct {
	IDBase
	OverrideName string `json:"overrideName"`
	Value        any    `json:"value"`
}

// SymbolIDOverride swaps a nested symbol.
type SymbolIDOverride struct {
	SymbolID ObjectID `json:"symbolID"`
}

// OverrideText replaces the content of a text layer.
type OverrideText string

// OverrideMap is the nested override mapping, keyed by the identifier of the
// next layer on the override path.
type OverrideMap map[ObjectID]OverrideValue

// OverrideKey joins the identifiers of path with the separator and appends
// suffix, e.g. "A/B_stringValue".
func OverrideKey(path []ObjectID, suffix string) string {
	parts := make([]string, len(path))
	for i, id := range path {
		parts[i] = string(id)
	}
	return strings.Join(parts, PathSeparator) + suffix
}

// Override looks up the audit entry with the given name.
func (s *SymbolInstance) Override(name string) (*OverrideEntry, bool) {
	for _, o := range s.OverrideValues {
		if o.OverrideName == name {
			return o, true
		}
	}
	return nil, false
}

// SetTextOverride records a text override for the layer reached through path,
// where path[0] is a direct child of the master and the last element is the
// text layer. Both override representations are updated.
func (s *SymbolInstance) SetTextOverride(path []ObjectID, text string) {
	s.setOverride(path, SuffixStringValue, text, OverrideText(text))
}

// SetSymbolOverride swaps the nested instance reached through path for
// symbolID.
func (s *SymbolInstance) SetSymbolOverride(path []ObjectID, symbolID ObjectID) {
	s.setOverride(path, SuffixSymbolID, string(symbolID), &SymbolIDOverride{SymbolID: symbolID})
}

func (s *SymbolInstance) setOverride(path []ObjectID, suffix string, audit any, nested OverrideValue) {
	if len(path) == 0 {
		return
	}
	name := OverrideKey(path, suffix)
	if o, ok := s.Override(name); ok {
		o.Value = audit
	} else {
		o := NewOverrideEntry()
		o.DoObjectID = NewObjectID()
		o.OverrideName = name
		o.Value = audit
		s.OverrideValues = append(s.OverrideValues, o)
	}

	if s.Overrides == nil {
		s.Overrides = OverrideMap{}
	}
	m := s.Overrides
	for _, id := range path[:len(path)-1] {
		next, ok := m[id].(OverrideMap)
		if !ok {
			next = OverrideMap{}
			m[id] = next
		}
		m = next
	}
	m[path[len(path)-1]] = nested
}

// NestedOverride follows path through the nested mapping.
func (s *SymbolInstance) NestedOverride(path []ObjectID) (OverrideValue, bool) {
	var cur OverrideValue = s.Overrides
	for _, id := range path {
		m, ok := cur.(OverrideMap)
		if !ok || m == nil {
			return nil, false
		}
		cur, ok = m[id]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

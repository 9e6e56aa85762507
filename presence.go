package sketchkit

// Presence is the bit flag collected by WithMeta APIs.
type Presence uint8

const (
	PresenceSeen           Presence = 1 << iota // Field appeared in the input.
	PresenceWasNull                             // Field value was null.
	PresenceDefaultApplied                      // Field was absent and its default was applied.
)

// Has reports whether all bits of q are set.
func (p Presence) Has(q Presence) bool { return p&q == q }

// PresenceMap maps JSON Pointers to Presence flags.
type PresenceMap map[string]Presence

// Decoded carries the decoded value along with presence metadata.
type Decoded[T any] struct {
	Value    T
	Presence PresenceMap
}

// Mark ORs flags into the entry for path.
func (pm PresenceMap) Mark(path string, p Presence) {
	if pm == nil {
		return
	}
	pm[path] |= p
}

// Package codec converts raw JSON trees of Sketch files into the typed graph
// of package model and back, guided by the schema registry.
//
// Decoding starts every entity from its default instance and overwrites the
// fields present in the input. Keys unknown to the registry are handled by
// the configured sketchkit.UnknownPolicy; under the default strict policy
// the entity is rejected and dropped from its parent. Encoding omits unset
// optional fields so that absent input stays absent.
package codec

import (
	"reflect"

	sketchkit "github.com/reoring/sketchkit"
)

// Indexer receives every decoded entity. *refindex.Index implements it.
type Indexer interface {
	Add(v any, tag string) sketchkit.Issues
}

// Extras keeps the unknown keys retained under the passthrough policy, per
// entity instance. It is shared between the decoder and the encoder of one
// document.
type Extras map[any]map[string]any

// Get returns the retained keys of entity v.
func (x Extras) Get(v any) map[string]any {
	if x == nil || !hashable(v) {
		return nil
	}
	return x[v]
}

func (x Extras) put(v any, m map[string]any) {
	if x == nil || !hashable(v) {
		return
	}
	x[v] = m
}

// Forget drops the retained keys of v.
func (x Extras) Forget(v any) {
	if x != nil && hashable(v) {
		delete(x, v)
	}
}

func hashable(v any) bool { return v != nil && reflect.TypeOf(v).Comparable() }

// Options configures a codec.
type Options struct {
	Bindings *Bindings
	Unknown  sketchkit.UnknownPolicy
	// Index, when set, is populated with every entity of a successfully
	// decoded file.
	Index Indexer
	// Extras stores passthrough keys. A nil map is allocated on first use
	// by the file codecs.
	Extras Extras
	// IssueSink, when set, receives every issue of each decode call,
	// warnings included.
	IssueSink func(sketchkit.Issues)
}

func (o Options) bindings() *Bindings {
	if o.Bindings != nil {
		return o.Bindings
	}
	return Sketch()
}

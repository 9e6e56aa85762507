package sketch

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"

	sketchkit "github.com/reoring/sketchkit"
	"github.com/reoring/sketchkit/container"
)

// DiffKind classifies a Difference.
type DiffKind string

const (
	DiffMissingEntry  DiffKind = "missing_entry"
	DiffExtraEntry    DiffKind = "extra_entry"
	DiffMissingKey    DiffKind = "missing_key"
	DiffExtraKey      DiffKind = "extra_key"
	DiffListLength    DiffKind = "list_length"
	DiffTypeMismatch  DiffKind = "type_mismatch"
	DiffValueMismatch DiffKind = "value_mismatch"
)

// Difference is one structural difference between two sets of entries.
type Difference struct {
	Entry string
	// Path is the JSON Pointer inside Entry, empty for the entry itself.
	Path string
	Kind DiffKind
	Want any
	Got  any
}

func (d Difference) String() string {
	loc := d.Entry + d.Path
	switch d.Kind {
	case DiffMissingEntry, DiffMissingKey, DiffExtraEntry, DiffExtraKey:
		return fmt.Sprintf("%s: %s", loc, d.Kind)
	}
	return fmt.Sprintf("%s: %s: want %v, got %v", loc, d.Kind, d.Want, d.Got)
}

// Diff compares the entries got against want. Numbers compare by value, so
// 1 and 1.0 are equal. The content of PNG entries is not compared since
// previews are regenerated.
func Diff(want, got container.Contents) []Difference {
	var out []Difference
	for _, name := range want.Names() {
		g, ok := got[name]
		if !ok {
			out = append(out, Difference{Entry: name, Kind: DiffMissingEntry})
			continue
		}
		out = diffValue(out, name, sketchkit.Root(), want[name], g)
	}
	for _, name := range got.Names() {
		if _, ok := want[name]; !ok {
			out = append(out, Difference{Entry: name, Kind: DiffExtraEntry})
		}
	}
	return out
}

func diffValue(out []Difference, entry string, p sketchkit.PathRef, want, got any) []Difference {
	mismatch := func(kind DiffKind) []Difference {
		return append(out, Difference{Entry: entry, Path: p.Pointer(), Kind: kind, Want: want, Got: got})
	}
	switch w := want.(type) {
	case map[string]any:
		g, ok := got.(map[string]any)
		if !ok {
			return mismatch(DiffTypeMismatch)
		}
		for _, k := range sortedKeys(w) {
			gv, ok := g[k]
			if !ok {
				out = append(out, Difference{Entry: entry, Path: p.Field(k).Pointer(), Kind: DiffMissingKey, Want: w[k]})
				continue
			}
			out = diffValue(out, entry, p.Field(k), w[k], gv)
		}
		for _, k := range sortedKeys(g) {
			if _, ok := w[k]; !ok {
				out = append(out, Difference{Entry: entry, Path: p.Field(k).Pointer(), Kind: DiffExtraKey, Got: g[k]})
			}
		}
		return out
	case []any:
		g, ok := got.([]any)
		if !ok {
			return mismatch(DiffTypeMismatch)
		}
		if len(w) != len(g) {
			return append(out, Difference{Entry: entry, Path: p.Pointer(), Kind: DiffListLength, Want: len(w), Got: len(g)})
		}
		for i := range w {
			out = diffValue(out, entry, p.Index(i), w[i], g[i])
		}
		return out
	case []byte:
		g, ok := got.([]byte)
		if !ok {
			return mismatch(DiffTypeMismatch)
		}
		if !strings.HasSuffix(entry, ".png") && !bytes.Equal(w, g) {
			return mismatch(DiffValueMismatch)
		}
		return out
	}
	if wn, ok := number(want); ok {
		gn, ok := number(got)
		if !ok {
			return mismatch(DiffTypeMismatch)
		}
		if wn != gn {
			return mismatch(DiffValueMismatch)
		}
		return out
	}
	if fmt.Sprintf("%T", want) != fmt.Sprintf("%T", got) {
		return mismatch(DiffTypeMismatch)
	}
	if want != got {
		return mismatch(DiffValueMismatch)
	}
	return out
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := strconv.ParseFloat(string(n), 64)
		return f, err == nil
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

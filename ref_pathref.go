package sketchkit

import (
	"strconv"
	"strings"
)

// PathRef builds JSON Pointer paths. Each step returns a new value, so a
// prefix can be shared between siblings.
type PathRef interface {
	Field(name string) PathRef
	Index(i int) PathRef
	Pointer() string
}

// Root returns the PathRef of a document root ("/").
func Root() PathRef { return &pathRef{parts: nil} }

// At parses a JSON Pointer into a PathRef.
func At(path string) PathRef {
	if path == "" || path == "/" {
		return Root()
	}
	parts := []string{}
	for _, p := range strings.Split(path, "/") {
		if p == "" {
			continue
		}
		parts = append(parts, p)
	}
	return &pathRef{parts: parts}
}

type pathRef struct {
	parts []string
}

func (p *pathRef) Field(name string) PathRef {
	if name == "" {
		return p
	}
	// escape '~' -> '~0', '/' -> '~1' per RFC6901
	esc := strings.ReplaceAll(strings.ReplaceAll(name, "~", "~0"), "/", "~1")
	return &pathRef{parts: append(append([]string{}, p.parts...), esc)}
}

func (p *pathRef) Index(i int) PathRef {
	return &pathRef{parts: append(append([]string{}, p.parts...), strconv.Itoa(i))}
}

func (p *pathRef) Pointer() string {
	if len(p.parts) == 0 {
		return "/"
	}
	return "/" + strings.Join(p.parts, "/")
}

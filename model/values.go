package model

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gitlab.com/tozd/go/errors"
)

// ObjectID identifies an entity across all files of a document. Canonical
// identifiers are upper-case 8-4-4-4-12 hexadecimal groups, but any string
// read from a file is accepted as is.
type ObjectID string

// NewObjectID returns a fresh random identifier.
func NewObjectID() ObjectID {
	return ObjectID(strings.ToUpper(uuid.New().String()))
}

// Valid reports whether id has the canonical shape.
func (id ObjectID) Valid() bool {
	if len(id) != 36 {
		return false
	}
	u, err := uuid.Parse(string(id))
	if err != nil {
		return false
	}
	return strings.ToUpper(u.String()) == string(id)
}

func (id ObjectID) String() string { return string(id) }

// PointString is a "{x, y}" coordinate pair.
type PointString string

// Point formats a PointString.
func Point(x, y float64) PointString {
	return PointString("{" + formatFloat(x) + ", " + formatFloat(y) + "}")
}

// XY parses the coordinates.
func (p PointString) XY() (float64, float64, error) {
	v, err := parseNumbers(string(p), 2)
	if err != nil {
		return 0, 0, errors.Errorf("point %q: %w", string(p), err)
	}
	return v[0], v[1], nil
}

// RectString is a "{{x, y}, {w, h}}" rectangle.
type RectString string

// RectOf formats a RectString.
func RectOf(x, y, w, h float64) RectString {
	return RectString("{" + string(Point(x, y)) + ", " + string(Point(w, h)) + "}")
}

// Bounds parses origin and size.
func (r RectString) Bounds() (x, y, w, h float64, err error) {
	v, err := parseNumbers(string(r), 4)
	if err != nil {
		return 0, 0, 0, 0, errors.Errorf("rect %q: %w", string(r), err)
	}
	return v[0], v[1], v[2], v[3], nil
}

// ArchiveData is a base64 encoded binary property list.
type ArchiveData string

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }

func parseNumbers(s string, n int) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == '{' || r == '}' || r == ',' || r == ' '
	})
	if len(fields) != n {
		return nil, errors.Errorf("want %d numbers, got %d", n, len(fields))
	}
	out := make([]float64, n)
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, errors.Wrap(err, "parse number")
		}
		out[i] = v
	}
	return out, nil
}

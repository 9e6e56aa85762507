package model

import (
	"unicode/utf16"

	"gitlab.com/tozd/go/errors"
)

// ErrRuns is returned when attribute runs do not cover the string.
var ErrRuns = errors.New("attribute runs do not cover the string")

type FontDescriptorAttributes struct {
	Name string  `json:"name"`
	Size float64 `json:"size"`
}

type FontDescriptor struct {
	Attributes *FontDescriptorAttributes `json:"attributes"`
}

type ParagraphStyle struct {
	Alignment                            Optional[int]     `json:"alignment"`
	MaximumLineHeight                    Optional[float64] `json:"maximumLineHeight"`
	MinimumLineHeight                    Optional[float64] `json:"minimumLineHeight"`
	LineHeightMultiple                   Optional[float64] `json:"lineHeightMultiple"`
	ParagraphSpacing                     Optional[float64] `json:"paragraphSpacing"`
	AllowsDefaultTighteningForTruncation Optional[int]     `json:"allowsDefaultTighteningForTruncation"`
}

// TextStyleAttributes are the encoded attributes of a run or text style.
type TextStyleAttributes struct {
	Font               FontAttribute      `json:"MSAttributedStringFontAttribute"`
	Kerning            Optional[float64]  `json:"kerning"`
	Color              *Color             `json:"MSAttributedStringColorAttribute"`
	ParagraphStyle     ParagraphAttribute `json:"paragraphStyle"`
	ColorDictionary    *ColorComponents   `json:"MSAttributedStringColorDictionaryAttribute"`
	TextTransform      Optional[int]      `json:"MSAttributedStringTextTransformAttribute"`
	StrikethroughStyle Optional[int]      `json:"strikethroughStyle"`
	UnderlineStyle     Optional[int]      `json:"underlineStyle"`
}

type TextStyle struct {
	VerticalAlignment int                  `json:"verticalAlignment"`
	EncodedAttributes *TextStyleAttributes `json:"encodedAttributes"`
}

// StringAttribute is one run: Length UTF-16 code units starting at Location.
type StringAttribute struct {
	Location   int                  `json:"location"`
	Length     int                  `json:"length"`
	Attributes *TextStyleAttributes `json:"attributes"`
}

// AttributedString is a string with attribute runs.
type AttributedString struct {
	String     string             `json:"string"`
	Attributes []*StringAttribute `json:"attributes"`
}

// LegacyAttributedString keeps its content in a keyed archive.
type LegacyAttributedString struct {
	ArchivedAttributedString *KeyValueArchive `json:"archivedAttributedString"`
}

// TextLength returns the length of s in UTF-16 code units, the unit of
// run locations and lengths.
func TextLength(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// SetText replaces the string and re-derives the runs so that their lengths
// add up to the new length. Runs are kept in order and truncated; the last
// kept run absorbs any growth.
func (a *AttributedString) SetText(s string) {
	n := TextLength(s)
	a.String = s
	if len(a.Attributes) == 0 {
		a.Attributes = []*StringAttribute{{Location: 0, Length: n, Attributes: NewTextStyleAttributes()}}
		return
	}
	kept := a.Attributes[:0]
	loc := 0
	for i, r := range a.Attributes {
		if i > 0 && loc >= n {
			break
		}
		length := min(max(r.Length, 0), n-loc)
		r.Location, r.Length = loc, length
		kept = append(kept, r)
		loc += length
	}
	kept[len(kept)-1].Length += n - loc
	a.Attributes = kept
}

// CheckRuns verifies that runs are contiguous and cover the whole string.
func (a *AttributedString) CheckRuns() error {
	loc := 0
	for i, r := range a.Attributes {
		if r.Location != loc || r.Length < 0 {
			return errors.Errorf("%w: run %d at %d (length %d), want location %d", ErrRuns, i, r.Location, r.Length, loc)
		}
		loc += r.Length
	}
	if n := TextLength(a.String); loc != n {
		return errors.Errorf("%w: runs cover %d of %d", ErrRuns, loc, n)
	}
	return nil
}

// Content returns the string of a text layer.
func (t *Text) Content() (string, error) {
	switch s := t.AttributedString.(type) {
	case *AttributedString:
		return s.String, nil
	case *LegacyAttributedString:
		return s.Text()
	case nil:
		return "", nil
	default:
		return "", errors.Errorf("text %q: unsupported attributed string %T", t.Name, s)
	}
}

// SetContent replaces the string of a text layer, keeping runs consistent.
func (t *Text) SetContent(s string) error {
	switch as := t.AttributedString.(type) {
	case *AttributedString:
		as.SetText(s)
		return nil
	case *LegacyAttributedString:
		return as.SetText(s)
	case nil:
		as2 := &AttributedString{}
		as2.SetText(s)
		t.AttributedString = as2
		return nil
	default:
		return errors.Errorf("text %q: unsupported attributed string %T", t.Name, as)
	}
}

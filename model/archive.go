package model

import (
	"encoding/base64"

	"gitlab.com/tozd/go/errors"
	"howett.net/plist"
)

// ErrArchive is returned when an archive cannot be read or written.
var ErrArchive = errors.New("invalid key value archive")

// KeyValueArchive is a base64 encoded binary property list produced by a
// keyed archiver. Values are addressed by their index in $objects.
type KeyValueArchive struct {
	Archive ArchiveData `json:"_archive"`

	raw      map[string]any
	cacheFor ArchiveData
}

func (a *KeyValueArchive) root() (map[string]any, error) {
	if a.raw != nil && a.cacheFor == a.Archive {
		return a.raw, nil
	}
	data, err := base64.StdEncoding.DecodeString(string(a.Archive))
	if err != nil {
		return nil, errors.Errorf("%w: %s", ErrArchive, err)
	}
	var root map[string]any
	if _, err := plist.Unmarshal(data, &root); err != nil {
		return nil, errors.Errorf("%w: %s", ErrArchive, err)
	}
	a.raw, a.cacheFor = root, a.Archive
	return root, nil
}

func (a *KeyValueArchive) objects() ([]any, error) {
	root, err := a.root()
	if err != nil {
		return nil, err
	}
	objs, ok := root["$objects"].([]any)
	if !ok {
		return nil, errors.Errorf("%w: no $objects", ErrArchive)
	}
	return objs, nil
}

// Len returns the number of archived objects.
func (a *KeyValueArchive) Len() (int, error) {
	objs, err := a.objects()
	if err != nil {
		return 0, err
	}
	return len(objs), nil
}

// Get returns the object at index i.
func (a *KeyValueArchive) Get(i int) (any, error) {
	objs, err := a.objects()
	if err != nil {
		return nil, err
	}
	if i < 0 || i >= len(objs) {
		return nil, errors.Errorf("%w: index %d out of range [0,%d)", ErrArchive, i, len(objs))
	}
	return objs[i], nil
}

// Set replaces the object at index i and re-encodes the archive.
func (a *KeyValueArchive) Set(i int, v any) error {
	objs, err := a.objects()
	if err != nil {
		return err
	}
	if i < 0 || i >= len(objs) {
		return errors.Errorf("%w: index %d out of range [0,%d)", ErrArchive, i, len(objs))
	}
	objs[i] = v
	data, err := plist.Marshal(a.raw, plist.BinaryFormat)
	if err != nil {
		return errors.Errorf("%w: %s", ErrArchive, err)
	}
	a.Archive = ArchiveData(base64.StdEncoding.EncodeToString(data))
	a.cacheFor = a.Archive
	return nil
}

// NewArchive encodes root as a KeyValueArchive.
func NewArchive(root map[string]any) (*KeyValueArchive, error) {
	data, err := plist.Marshal(root, plist.BinaryFormat)
	if err != nil {
		return nil, errors.Errorf("%w: %s", ErrArchive, err)
	}
	return &KeyValueArchive{Archive: ArchiveData(base64.StdEncoding.EncodeToString(data))}, nil
}

// Indexes of the legacy attributed string archive.
const (
	legacyText       = 2
	legacyFontSize   = 16
	legacyFontFamily = 17
	legacyRed        = 25
	legacyAlpha      = 26
	legacyBlue       = 27
	legacyGreen      = 28
)

func (s *LegacyAttributedString) archive() (*KeyValueArchive, error) {
	if s.ArchivedAttributedString == nil {
		return nil, errors.Errorf("%w: empty attributed string", ErrArchive)
	}
	return s.ArchivedAttributedString, nil
}

// Text returns the string content.
func (s *LegacyAttributedString) Text() (string, error) {
	a, err := s.archive()
	if err != nil {
		return "", err
	}
	v, err := a.Get(legacyText)
	if err != nil {
		return "", err
	}
	str, ok := v.(string)
	if !ok {
		return "", errors.Errorf("%w: object %d is %T, not a string", ErrArchive, legacyText, v)
	}
	return str, nil
}

// SetText replaces the string content.
func (s *LegacyAttributedString) SetText(text string) error {
	a, err := s.archive()
	if err != nil {
		return err
	}
	return a.Set(legacyText, text)
}

// FontSize returns the font size.
func (s *LegacyAttributedString) FontSize() (float64, error) {
	a, err := s.archive()
	if err != nil {
		return 0, err
	}
	return a.number(legacyFontSize)
}

// SetFontSize replaces the font size.
func (s *LegacyAttributedString) SetFontSize(size float64) error {
	a, err := s.archive()
	if err != nil {
		return err
	}
	return a.Set(legacyFontSize, size)
}

// FontFamily returns the font family name.
func (s *LegacyAttributedString) FontFamily() (string, error) {
	a, err := s.archive()
	if err != nil {
		return "", err
	}
	v, err := a.Get(legacyFontFamily)
	if err != nil {
		return "", err
	}
	str, _ := v.(string)
	return str, nil
}

// SetFontFamily replaces the font family name.
func (s *LegacyAttributedString) SetFontFamily(family string) error {
	a, err := s.archive()
	if err != nil {
		return err
	}
	return a.Set(legacyFontFamily, family)
}

// Color returns the text color.
func (s *LegacyAttributedString) Color() (*Color, error) {
	a, err := s.archive()
	if err != nil {
		return nil, err
	}
	var c Color
	for _, f := range []struct {
		idx int
		dst *float64
	}{{legacyRed, &c.Red}, {legacyAlpha, &c.Alpha}, {legacyBlue, &c.Blue}, {legacyGreen, &c.Green}} {
		v, err := a.number(f.idx)
		if err != nil {
			return nil, err
		}
		*f.dst = v
	}
	return &c, nil
}

// SetColor replaces the text color.
func (s *LegacyAttributedString) SetColor(c *Color) error {
	a, err := s.archive()
	if err != nil {
		return err
	}
	for _, f := range []struct {
		idx int
		v   float64
	}{{legacyRed, c.Red}, {legacyAlpha, c.Alpha}, {legacyBlue, c.Blue}, {legacyGreen, c.Green}} {
		if err := a.Set(f.idx, f.v); err != nil {
			return err
		}
	}
	return nil
}

func (a *KeyValueArchive) number(i int) (float64, error) {
	v, err := a.Get(i)
	if err != nil {
		return 0, err
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case int64:
		return float64(n), nil
	}
	return 0, errors.Errorf("%w: object %d is %T, not a number", ErrArchive, i, v)
}

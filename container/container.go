// Package container reads and writes the ZIP container of a design file.
// JSON entries are exchanged as generic trees (see internal/engine), every
// other entry as raw bytes.
package container

import (
	"bytes"
	"context"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mholt/archives"
	slogctx "github.com/veqryn/slog-context"
	"gitlab.com/tozd/go/errors"

	sketchkit "github.com/reoring/sketchkit"
	"github.com/reoring/sketchkit/internal/engine"
)

var (
	// ErrMalformedEntry is returned when a .json entry is not valid JSON.
	ErrMalformedEntry = errors.New("malformed JSON entry")
	// ErrEntryValue is returned when a non-JSON entry does not hold bytes.
	ErrEntryValue = errors.New("entry value must be []byte")
)

// deflate is the ZIP method number of DEFLATE.
const deflate uint16 = 8

// maxDuplicates caps the duplicate key warnings reported per entry.
const maxDuplicates = 100

// modTime is stamped on every written entry so equal contents produce equal
// archives.
var modTime = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

// Contents maps entry names to a decoded JSON tree (names ending in .json)
// or raw bytes (everything else).
type Contents map[string]any

// Names returns the entry names in sorted order.
func (c Contents) Names() []string {
	out := make([]string, 0, len(c))
	for k := range c {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// IsJSON reports whether entry is exchanged as a JSON tree.
func IsJSON(entry string) bool { return strings.HasSuffix(entry, ".json") }

// EntryInfo describes one entry as stored.
type EntryInfo struct {
	Name string
	Size int64
}

// HumanSize renders Size for display, e.g. "12 kB".
func (e EntryInfo) HumanSize() string { return humanize.Bytes(uint64(e.Size)) }

// Archive is the result of Read.
type Archive struct {
	Entries Contents
	// Info lists the entries in name order with their uncompressed sizes.
	Info []EntryInfo
	// Warnings holds duplicate object keys found in JSON entries. The last
	// occurrence of a duplicated key wins.
	Warnings sketchkit.Issues
}

// TotalSize sums the uncompressed entry sizes.
func (a *Archive) TotalSize() int64 {
	var n int64
	for _, e := range a.Info {
		n += e.Size
	}
	return n
}

// ReadFile opens and reads the container at file.
func ReadFile(ctx context.Context, file string) (*Archive, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer f.Close()
	a, err := Read(ctx, f)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", file)
	}
	return a, nil
}

// Read extracts every entry of the ZIP stream r. Readers that cannot seek
// are buffered in memory first.
func Read(ctx context.Context, r io.Reader) (*Archive, error) {
	src, err := seekable(r)
	if err != nil {
		return nil, err
	}
	a := &Archive{Entries: Contents{}}
	zipper := archives.Zip{}
	err = zipper.Extract(ctx, src, func(ctx context.Context, info archives.FileInfo) error {
		if info.IsDir() {
			return nil
		}
		name := path.Clean(strings.TrimPrefix(info.NameInArchive, "/"))
		f, err := info.Open()
		if err != nil {
			return errors.Errorf("open entry %s: %w", name, err)
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			return errors.Errorf("read entry %s: %w", name, err)
		}
		a.Info = append(a.Info, EntryInfo{Name: name, Size: int64(len(data))})
		if !IsJSON(name) {
			a.Entries[name] = data
			return nil
		}
		tree, err := engine.DecodeJSON(data)
		if err != nil {
			return errors.Errorf("%w: %s: %s", ErrMalformedEntry, name, err.Error())
		}
		dups, err := sketchkit.DetectJSONDuplicateKeysBytes(data, sketchkit.Strictness{OnDuplicateKey: sketchkit.Warn}, maxDuplicates)
		if err != nil {
			return errors.Errorf("%w: %s: %s", ErrMalformedEntry, name, err.Error())
		}
		for _, it := range dups {
			it.Entry = name
			a.Warnings = append(a.Warnings, it)
		}
		a.Entries[name] = tree
		return nil
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}
	sort.Slice(a.Info, func(i, j int) bool { return a.Info[i].Name < a.Info[j].Name })
	slogctx.FromCtx(ctx).Debug("container read",
		slog.Int("entries", len(a.Info)), slog.String("size", humanize.Bytes(uint64(a.TotalSize()))))
	return a, nil
}

func seekable(r io.Reader) (io.Reader, error) {
	type readSeekerAt interface {
		io.ReaderAt
		io.Seeker
	}
	if _, ok := r.(readSeekerAt); ok {
		return r, nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return bytes.NewReader(data), nil
}

// WriteFile writes c to file, replacing any existing file.
func WriteFile(ctx context.Context, file string, c Contents) error {
	f, err := os.Create(file)
	if err != nil {
		return errors.WithStack(err)
	}
	if err := Write(ctx, f, c); err != nil {
		f.Close()
		return errors.Wrapf(err, "write %s", file)
	}
	return errors.WithStack(f.Close())
}

// Write encodes c as a deflated ZIP stream. Entries are written in name
// order with a fixed modification time.
func Write(ctx context.Context, w io.Writer, c Contents) error {
	files := make([]archives.FileInfo, 0, len(c))
	var total int64
	for _, name := range c.Names() {
		data, err := entryBytes(name, c[name])
		if err != nil {
			return err
		}
		total += int64(len(data))
		files = append(files, archives.FileInfo{
			NameInArchive: name,
			FileInfo:      memInfo{name: path.Base(name), size: int64(len(data))},
			Open: func() (fs.File, error) {
				return &memFile{Reader: bytes.NewReader(data), info: memInfo{name: path.Base(name), size: int64(len(data))}}, nil
			},
		})
	}
	zipper := archives.Zip{Compression: deflate}
	if err := zipper.Archive(ctx, w, files); err != nil {
		return errors.WithStack(err)
	}
	slogctx.FromCtx(ctx).Debug("container written",
		slog.Int("entries", len(files)), slog.String("size", humanize.Bytes(uint64(total))))
	return nil
}

func entryBytes(name string, v any) ([]byte, error) {
	if b, ok := v.([]byte); ok {
		return b, nil
	}
	if !IsJSON(name) {
		return nil, errors.Errorf("%w: %s holds %T", ErrEntryValue, name, v)
	}
	data, err := engine.EncodeJSON(v)
	if err != nil {
		return nil, errors.Errorf("encode %s: %w", name, err)
	}
	return data, nil
}

type memInfo struct {
	name string
	size int64
}

func (m memInfo) Name() string       { return m.name }
func (m memInfo) Size() int64        { return m.size }
func (m memInfo) Mode() fs.FileMode  { return 0o644 }
func (m memInfo) ModTime() time.Time { return modTime }
func (m memInfo) IsDir() bool        { return false }
func (m memInfo) Sys() any           { return nil }

type memFile struct {
	*bytes.Reader
	info memInfo
}

func (f *memFile) Stat() (fs.FileInfo, error) { return f.info, nil }
func (f *memFile) Close() error               { return nil }

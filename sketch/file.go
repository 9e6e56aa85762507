// Package sketch loads, edits and saves design documents. A File owns the
// decoded entries of one container and keeps the page list of the document,
// the page index of the metadata and the user state in step.
//
// A File is not safe for concurrent use.
package sketch

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"strings"

	slogctx "github.com/veqryn/slog-context"
	"gitlab.com/tozd/go/errors"

	sketchkit "github.com/reoring/sketchkit"
	"github.com/reoring/sketchkit/codec"
	"github.com/reoring/sketchkit/container"
	"github.com/reoring/sketchkit/internal/refindex"
	"github.com/reoring/sketchkit/model"
	"github.com/reoring/sketchkit/raster"
	"github.com/reoring/sketchkit/schema"
)

// PreviewEntry is the container entry of the document thumbnail.
const PreviewEntry = "previews/preview.png"

// Option configures New, Load, Open and Read.
type Option func(*options)

type options struct {
	cfg    Config
	logger *slog.Logger
}

// WithConfig replaces DefaultConfig.
func WithConfig(cfg Config) Option { return func(o *options) { o.cfg = cfg } }

// WithLogger sets the logger. Without it the logger carried by the context
// is used.
func WithLogger(l *slog.Logger) Option { return func(o *options) { o.logger = l } }

func newOptions(opts []Option) options {
	o := options{cfg: DefaultConfig()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// File is one loaded or newly built document.
type File struct {
	Document *model.Document
	Meta     *model.Metadata
	User     model.UserState

	cfg   Config
	log   *slog.Logger
	pages []*model.Page
	// rejected holds page entries whose root was rejected on load. They are
	// written back unchanged.
	rejected map[string]any
	images   map[string]*raster.Image
	preview  *raster.Image
	other    container.Contents
	index    *refindex.Index
	extras   codec.Extras
	presence map[string]sketchkit.PresenceMap
	retired  map[model.ObjectID]bool
	issues   sketchkit.Issues
	reported map[string]bool
}

func newFile(o options) *File {
	log := o.logger
	if log == nil {
		log = slog.Default()
	}
	return &File{
		cfg:      o.cfg,
		log:      log,
		rejected: map[string]any{},
		images:   map[string]*raster.Image{},
		other:    container.Contents{},
		index:    refindex.New(),
		extras:   codec.Extras{},
		presence: map[string]sketchkit.PresenceMap{},
		retired:  map[model.ObjectID]bool{},
		reported: map[string]bool{},
	}
}

// New returns an empty document without pages. At least one page must be
// added before it can be saved.
func New(opts ...Option) *File {
	f := newFile(newOptions(opts))
	f.Document = model.NewDocument()
	f.Document.DoObjectID = model.DocumentID
	f.Meta = model.NewMetadata()
	f.cfg.Stamps.apply(&f.Meta.CreateMeta)
	f.cfg.Stamps.apply(f.Meta.Created)
	ue := model.NewUserEntry()
	ue.PageListHeight = model.Some(110.0)
	f.User = model.UserState{f.Document.ID(): ue}
	f.note(f.reindex())
	return f
}

// Open reads the container at path.
func Open(ctx context.Context, path string, opts ...Option) (*File, error) {
	a, err := container.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}
	return load(ctx, a, opts)
}

// Read reads a container stream.
func Read(ctx context.Context, r io.Reader, opts ...Option) (*File, error) {
	a, err := container.Read(ctx, r)
	if err != nil {
		return nil, err
	}
	return load(ctx, a, opts)
}

func load(ctx context.Context, a *container.Archive, opts []Option) (*File, error) {
	f, err := Load(ctx, a.Entries, opts...)
	if f != nil && len(a.Warnings) > 0 {
		f.issues = append(append(sketchkit.Issues{}, a.Warnings...), f.issues...)
	}
	return f, err
}

// Load decodes container contents in the order meta, document, user,
// pages. Pages follow the order of the document's page list; page entries
// the document does not reference are appended with a warning.
//
// A missing or undecodable meta, document or user entry fails the load.
// Otherwise the File is returned even when subtrees were rejected; the error
// is then the Issues value holding the Error issues, and Issues returns
// everything that was found.
func Load(ctx context.Context, c container.Contents, opts ...Option) (*File, error) {
	o := newOptions(opts)
	if o.logger != nil {
		ctx = slogctx.NewCtx(ctx, o.logger)
	} else {
		o.logger = slogctx.FromCtx(ctx)
	}
	f := newFile(o)
	copts := f.codecOptions()
	copts.Index = f.index

	var err error
	if f.Meta, err = decodeRoot(ctx, f, codec.NewMetaCodec(copts), c); err != nil {
		return nil, err
	}
	if f.Document, err = decodeRoot(ctx, f, codec.NewDocumentCodec(copts), c); err != nil {
		return nil, err
	}
	if f.User, err = decodeRoot(ctx, f, codec.NewUserCodec(copts), c); err != nil {
		return nil, err
	}
	if f.User == nil {
		f.User = model.UserState{}
	}
	f.loadPages(ctx, codec.NewPageCodec(copts), c)
	f.loadOther(c)

	f.log.Debug("document loaded",
		slog.Int("pages", len(f.pages)), slog.Int("objects", f.index.Len()), slog.Int("issues", len(f.issues)))
	if errs := f.issues.Errors(); len(errs) > 0 {
		return f, errs
	}
	return f, nil
}

func decodeRoot[T any](ctx context.Context, f *File, fc *codec.FileCodec[T], c container.Contents) (T, error) {
	var zero T
	entry := fc.Entry()
	raw, ok := c[entry]
	if !ok {
		return zero, errors.Errorf("%w: %s", ErrMissingEntry, entry)
	}
	db, iss, ok := fc.DecodeReport(ctx, raw, true)
	f.issues = append(f.issues, iss...)
	if !ok {
		return zero, errors.Join(errors.Errorf("%w: %s", ErrDecode, entry), iss)
	}
	f.presence[entry] = db.Presence
	return db.Value, nil
}

func (f *File) loadPages(ctx context.Context, pc *codec.PageCodec, c container.Contents) {
	seen := map[string]bool{}
	decode := func(entry string, raw any) {
		db, iss, ok := pc.ForEntry(entry).DecodeReport(ctx, raw, true)
		f.issues = append(f.issues, iss...)
		if !ok || db.Value == nil {
			f.rejected[entry] = raw
			f.log.Warn("page rejected, keeping it unchanged", slog.String("entry", entry))
			return
		}
		f.pages = append(f.pages, db.Value)
		f.presence[entry] = db.Presence
	}
	for i, id := range f.Document.PageIDs() {
		entry := model.PageEntry(id)
		if seen[entry] {
			continue
		}
		seen[entry] = true
		raw, ok := c[entry]
		if !ok {
			f.warn(schema.EntryDocument, sketchkit.Root().Field("pages").Index(i), sketchkit.CodeDanglingReference,
				string(id), map[string]any{"id": string(id)})
			continue
		}
		decode(entry, raw)
	}
	for _, name := range c.Names() {
		if seen[name] || !isPageEntry(name) {
			continue
		}
		f.warn(name, sketchkit.Root(), sketchkit.CodeDanglingReference, "not referenced by "+schema.EntryDocument, nil)
		decode(name, c[name])
	}
}

func (f *File) loadOther(c container.Contents) {
	for _, name := range c.Names() {
		switch {
		case name == schema.EntryMeta, name == schema.EntryDocument, name == schema.EntryUser, isPageEntry(name):
			continue
		}
		data, ok := c[name].([]byte)
		if !ok {
			f.other[name] = c[name]
			continue
		}
		if !isImage(name) {
			f.other[name] = data
			continue
		}
		img, err := raster.Decode(data)
		if err != nil {
			it := sketchkit.WarnAt(sketchkit.Root(), sketchkit.CodeAssetUnreadable, err.Error(), nil)
			it.Entry, it.Cause = name, err
			f.issues = append(f.issues, it)
			f.log.Warn("skipping unreadable image", slog.String("entry", name), slog.Any("error", err))
			continue
		}
		if name == PreviewEntry {
			f.preview = img
		} else {
			f.images[name] = img
		}
	}
}

func isPageEntry(name string) bool {
	return strings.HasPrefix(name, schema.EntryPages) && container.IsJSON(name)
}

func isImage(name string) bool {
	return strings.HasPrefix(name, "images/") || strings.HasSuffix(name, ".png")
}

func (f *File) warn(entry string, p sketchkit.PathRef, code, hint string, params map[string]any) {
	it := sketchkit.WarnAt(p, code, hint, params)
	it.Entry = entry
	f.issues = append(f.issues, it)
	f.log.Warn(it.Message, slog.String("code", code), slog.String("entry", entry), slog.String("path", it.Path))
}

// note records index findings that are not already recorded. Rebuilding
// the index reports the same duplicates again.
func (f *File) note(iss sketchkit.Issues) {
	for _, it := range iss {
		known := slices.ContainsFunc(f.issues, func(o sketchkit.Issue) bool {
			return o.Code == it.Code && o.Entry == it.Entry && o.Path == it.Path && o.Hint == it.Hint
		})
		if known {
			continue
		}
		f.issues = append(f.issues, it)
		f.log.Warn(it.Message, slog.String("code", it.Code), slog.String("hint", it.Hint))
	}
}

func (f *File) codecOptions() codec.Options {
	return codec.Options{Unknown: f.cfg.Unknown, Extras: f.extras}
}

// Issues returns every issue found while loading and traversing.
func (f *File) Issues() sketchkit.Issues { return f.issues }

// Warnings returns the Warn issues of Issues.
func (f *File) Warnings() sketchkit.Issues { return f.issues.Warnings() }

// Config returns the configuration the File was created with.
func (f *File) Config() Config { return f.cfg }

// Contents encodes the document into container entries. It fails with
// ErrNoPages for a document without pages and with ErrInconsistent when
// Check fails.
func (f *File) Contents(ctx context.Context) (container.Contents, error) {
	if len(f.pages)+len(f.rejected) == 0 {
		return nil, errors.WithStack(ErrNoPages)
	}
	if err := f.Check(); err != nil {
		return nil, err
	}
	out := container.Contents{}
	for name, v := range f.other {
		out[name] = v
	}
	opts := f.codecOptions()

	var err error
	if out[schema.EntryMeta], err = encodeEntry(ctx, f, codec.NewMetaCodec(opts), f.Meta); err != nil {
		return nil, err
	}
	if out[schema.EntryDocument], err = encodeEntry(ctx, f, codec.NewDocumentCodec(opts), f.Document); err != nil {
		return nil, err
	}
	if out[schema.EntryUser], err = encodeEntry(ctx, f, codec.NewUserCodec(opts), f.User); err != nil {
		return nil, err
	}
	pc := codec.NewPageCodec(opts)
	for _, p := range f.pages {
		entry := model.PageEntry(p.ID())
		if out[entry], err = encodeEntry(ctx, f, pc.ForEntry(entry), p); err != nil {
			return nil, err
		}
	}
	for entry, raw := range f.rejected {
		out[entry] = raw
	}
	for name, img := range f.images {
		out[name] = img.Data
	}
	out[PreviewEntry] = f.Preview().Data
	return out, nil
}

func encodeEntry[T any](ctx context.Context, f *File, fc *codec.FileCodec[T], v T) (any, error) {
	pm := f.presence[fc.Entry()]
	mode := f.cfg.Encode
	if pm == nil {
		mode = sketchkit.EncodeCanonical
	}
	out, err := sketchkit.EncodeWithDecoded[any, T](ctx, fc, sketchkit.Decoded[T]{Value: v, Presence: pm}, mode)
	if err != nil {
		return nil, errors.Wrapf(err, "encode %s", fc.Entry())
	}
	return out, nil
}

// Write encodes the document as a ZIP stream.
func (f *File) Write(ctx context.Context, w io.Writer) error {
	c, err := f.Contents(ctx)
	if err != nil {
		return err
	}
	return container.Write(ctx, w, c)
}

// Save writes the document to path.
func (f *File) Save(ctx context.Context, path string) error {
	c, err := f.Contents(ctx)
	if err != nil {
		return err
	}
	return container.WriteFile(ctx, path, c)
}

// Preview returns the document thumbnail, or a blank one when none was
// loaded or set.
func (f *File) Preview() *raster.Image {
	if f.preview == nil {
		return raster.Blank(f.cfg.PreviewSize, f.cfg.PreviewSize)
	}
	return f.preview
}

// SetPreview replaces the thumbnail, scaled down to the configured maximum
// side.
func (f *File) SetPreview(img *raster.Image) error {
	p, err := raster.Thumbnail(img, f.cfg.MaxPreviewSide)
	if err != nil {
		return err
	}
	f.preview = p
	return nil
}

// Image returns the asset stored under entry.
func (f *File) Image(entry string) (*raster.Image, bool) {
	img, ok := f.images[entry]
	return img, ok
}

// AddImage validates data and stores it under images/<name>. The returned
// reference can be assigned to a bitmap layer.
func (f *File) AddImage(name string, data []byte) (*model.ImageDataReference, error) {
	img, err := raster.Decode(data)
	if err != nil {
		return nil, err
	}
	entry := "images/" + strings.TrimPrefix(name, "images/")
	f.images[entry] = img
	return model.ImageRef(entry), nil
}

// reindex rebuilds the reference index from the document and the pages.
func (f *File) reindex() sketchkit.Issues {
	f.index.Reset()
	var iss sketchkit.Issues
	add := func(v any, tag string) error {
		iss = append(iss, f.index.Add(v, tag)...)
		return nil
	}
	_ = codec.Walk(f.Document, add)
	for _, p := range f.pages {
		_ = codec.Walk(p, add)
	}
	return iss
}

// touch drops the presence of entry after a structural change, so the next
// save encodes it canonically.
func (f *File) touch(entry string) { delete(f.presence, entry) }

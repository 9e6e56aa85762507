package codec

import (
	"context"
	"reflect"

	"gitlab.com/tozd/go/errors"

	sketchkit "github.com/reoring/sketchkit"
	"github.com/reoring/sketchkit/model"
	"github.com/reoring/sketchkit/schema"
)

// ErrNoRoot is returned for an entry name that has no registry root.
var ErrNoRoot = errors.New("entry has no registered root type")

// FileCodec converts one container entry between its raw JSON tree and the
// typed value T.
type FileCodec[T any] struct {
	opts  Options
	root  *schema.Type
	entry string
}

var _ sketchkit.Codec[any, *model.Page] = (*FileCodec[*model.Page])(nil)

type (
	DocumentCodec = FileCodec[*model.Document]
	PageCodec     = FileCodec[*model.Page]
	MetaCodec     = FileCodec[*model.Metadata]
	UserCodec     = FileCodec[model.UserState]
)

// NewFileCodec returns a codec for the registry root of entry.
func NewFileCodec[T any](entry string, opts Options) (*FileCodec[T], error) {
	bs := opts.bindings()
	rt, ok := bs.Registry().RootFor(entry)
	if !ok {
		return nil, errors.Errorf("%w: %s", ErrNoRoot, entry)
	}
	if opts.Extras == nil {
		opts.Extras = Extras{}
	}
	return &FileCodec[T]{opts: opts, root: rt, entry: entry}, nil
}

func mustFileCodec[T any](entry string, opts Options) *FileCodec[T] {
	c, err := NewFileCodec[T](entry, opts)
	if err != nil {
		panic(err)
	}
	return c
}

func NewDocumentCodec(opts Options) *DocumentCodec {
	return mustFileCodec[*model.Document](schema.EntryDocument, opts)
}

func NewMetaCodec(opts Options) *MetaCodec {
	return mustFileCodec[*model.Metadata](schema.EntryMeta, opts)
}

func NewUserCodec(opts Options) *UserCodec {
	return mustFileCodec[model.UserState](schema.EntryUser, opts)
}

// NewPageCodec returns a codec for pages. Use ForEntry to label issues with
// the page's own entry name.
func NewPageCodec(opts Options) *PageCodec {
	return mustFileCodec[*model.Page](schema.EntryPages+"page.json", opts)
}

// ForEntry returns a copy of c whose issues carry entry. Both copies share
// options, index and extras.
func (c *FileCodec[T]) ForEntry(entry string) *FileCodec[T] {
	cp := *c
	cp.entry = entry
	return &cp
}

// Entry returns the entry name issues are labeled with.
func (c *FileCodec[T]) Entry() string { return c.entry }

// Extras returns the passthrough store shared with the encoder.
func (c *FileCodec[T]) Extras() Extras { return c.opts.Extras }

// DecodeReport decodes a and returns every issue, warnings included. ok is
// false when the root itself was rejected.
func (c *FileCodec[T]) DecodeReport(ctx context.Context, a any, collect bool) (sketchkit.Decoded[T], sketchkit.Issues, bool) {
	d := &decoder{ctx: ctx, bs: c.opts.bindings(), unknown: c.opts.Unknown, extras: c.opts.Extras}
	if collect {
		d.presence = sketchkit.PresenceMap{}
	}
	var out sketchkit.Decoded[T]
	gt := reflect.TypeFor[T]()
	v, ok := d.value(c.root, a, gt, sketchkit.Root(), sketchkit.Root())
	if ok && v.IsValid() {
		out.Value = v.Interface().(T)
	}
	if ok && a == nil {
		d.issue(sketchkit.IssueAt(sketchkit.Root(), sketchkit.CodeInvalidType, "null", map[string]any{"expected": c.root.String()}))
		ok = false
	}
	if ok && c.opts.Index != nil {
		_ = c.opts.bindings().Walk(out.Value, func(v any, tag string) error {
			d.iss = append(d.iss, c.opts.Index.Add(v, tag)...)
			return nil
		})
	}
	out.Presence = d.presence
	for i := range d.iss {
		d.iss[i].Entry = c.entry
	}
	if c.opts.IssueSink != nil && len(d.iss) > 0 {
		c.opts.IssueSink(d.iss)
	}
	return out, d.iss, ok
}

// Decode implements sketchkit.Codec. Warnings go to the issue sink only; the
// returned error is the full Issues value when any issue is an error.
func (c *FileCodec[T]) Decode(ctx context.Context, a any) (T, error) {
	db, iss, _ := c.DecodeReport(ctx, a, false)
	if iss.HasErrors() {
		return db.Value, iss
	}
	return db.Value, nil
}

// DecodeWithMeta implements sketchkit.Codec.
func (c *FileCodec[T]) DecodeWithMeta(ctx context.Context, a any) (sketchkit.Decoded[T], error) {
	db, iss, _ := c.DecodeReport(ctx, a, true)
	if iss.HasErrors() {
		return db, iss
	}
	return db, nil
}

// Encode implements sketchkit.Codec.
func (c *FileCodec[T]) Encode(_ context.Context, b T) (any, error) {
	return c.encode(b, nil)
}

// EncodePreserving implements sketchkit.Codec.
func (c *FileCodec[T]) EncodePreserving(_ context.Context, db sketchkit.Decoded[T]) (any, error) {
	if db.Presence == nil {
		return nil, errors.WithStack(sketchkit.ErrEncodePreserveRequiresPresence)
	}
	return c.encode(db.Value, db.Presence)
}

func (c *FileCodec[T]) encode(b T, pm sketchkit.PresenceMap) (any, error) {
	e := &encoder{bs: c.opts.bindings(), extras: c.opts.Extras, presence: pm}
	out, err := e.value(c.root, reflect.ValueOf(&b).Elem(), sketchkit.Root())
	if err != nil {
		return nil, errors.Wrapf(err, "encode %s", c.entry)
	}
	return out, nil
}

// EncodeValue encodes a single bound entity pointer outside of a file root.
func EncodeValue(v any, extras Extras) (any, error) {
	bs := Sketch()
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || rv.Kind() != reflect.Pointer || rv.IsNil() {
		return nil, errors.Errorf("%w: %T", ErrUnbound, v)
	}
	if _, ok := bs.ForType(rv.Type()); !ok {
		return nil, errors.Errorf("%w: %T", ErrUnbound, v)
	}
	e := &encoder{bs: bs, extras: extras}
	return e.entity(rv, sketchkit.Root())
}

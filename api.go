package sketchkit

import (
	"context"

	"gitlab.com/tozd/go/errors"
)

// Codec performs bidirectional transformation between the wire
// representation A (generic JSON trees) and the typed representation B.
type Codec[A, B any] interface {
	// Decode converts a wire value. On Error issues the returned value is the
	// partially decoded graph with the failing subtrees removed and the error
	// is an Issues value.
	Decode(ctx context.Context, a A) (B, error)
	Encode(ctx context.Context, b B) (A, error)
	// DecodeWithMeta returns the value and presence metadata (enabling
	// preserving encode).
	DecodeWithMeta(ctx context.Context, a A) (Decoded[B], error)
	// EncodePreserving emits output using preserving semantics guided by
	// presence metadata: fields that were absent and defaulted on decode
	// stay absent while they still hold their default.
	EncodePreserving(ctx context.Context, db Decoded[B]) (A, error)
}

// EncodeMode exposes canonical vs preserving output intent at call sites.
type EncodeMode int

const (
	EncodeCanonical EncodeMode = iota
	EncodePreserve
)

func (m EncodeMode) String() string {
	if m == EncodePreserve {
		return "preserve"
	}
	return "canonical"
}

// ParseEncodeMode maps "canonical" or "preserve" to an EncodeMode.
func ParseEncodeMode(s string) (EncodeMode, error) {
	switch s {
	case "canonical":
		return EncodeCanonical, nil
	case "preserve", "":
		return EncodePreserve, nil
	}
	return EncodeCanonical, errors.Errorf("unknown encode mode %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (m EncodeMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *EncodeMode) UnmarshalText(b []byte) error {
	v, err := ParseEncodeMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// ErrEncodePreserveRequiresPresence is returned by a preserving encode that was
// given no presence metadata.
var ErrEncodePreserveRequiresPresence = errors.New("encode preserve requires presence metadata")

// EncodeWithDecoded encodes a decoded value using the given mode, consuming
// presence information when mode is EncodePreserve.
func EncodeWithDecoded[A, B any](ctx context.Context, c Codec[A, B], db Decoded[B], mode EncodeMode) (A, error) {
	switch mode {
	case EncodePreserve:
		return c.EncodePreserving(ctx, db)
	default:
		return c.Encode(ctx, db.Value)
	}
}

package sketchkit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/reoring/sketchkit"
)

func TestUnknownPolicy_Text(t *testing.T) {
	for _, p := range []sketchkit.UnknownPolicy{sketchkit.UnknownStrict, sketchkit.UnknownStrip, sketchkit.UnknownPassthrough} {
		b, err := p.MarshalText()
		require.NoError(t, err)
		var got sketchkit.UnknownPolicy
		require.NoError(t, got.UnmarshalText(b))
		assert.Equal(t, p, got)
	}

	var p sketchkit.UnknownPolicy
	assert.Error(t, p.UnmarshalText([]byte("lenient")))
	assert.Equal(t, "UnknownPolicy(7)", sketchkit.UnknownPolicy(7).String())
}

func TestEncodeMode_Text(t *testing.T) {
	var m sketchkit.EncodeMode
	require.NoError(t, m.UnmarshalText([]byte("canonical")))
	assert.Equal(t, sketchkit.EncodeCanonical, m)

	// Empty selects the default.
	require.NoError(t, m.UnmarshalText(nil))
	assert.Equal(t, sketchkit.EncodePreserve, m)

	assert.Error(t, m.UnmarshalText([]byte("pretty")))
}

func TestIssues(t *testing.T) {
	iss := sketchkit.Issues{
		sketchkit.IssueAt(sketchkit.Root().Field("layers").Index(2), sketchkit.CodeUnknownKey, "flow", nil),
		sketchkit.WarnAt(sketchkit.At("/do_objectID"), sketchkit.CodeDuplicateID, "", nil),
		sketchkit.IssueAt(sketchkit.Root(), sketchkit.CodeRequired, "", nil),
		sketchkit.IssueAt(sketchkit.Root(), sketchkit.CodeInvalidType, "", nil),
	}
	iss[0].Entry = "pages/A.json"

	assert.True(t, iss.HasErrors())
	assert.Len(t, iss.Errors(), 3)
	assert.Len(t, iss.Warnings(), 1)
	assert.Len(t, iss.WithCode(sketchkit.CodeRequired), 1)
	assert.Equal(t, "unknown_key at pages/A.json#/layers/2 (flow)", iss[0].String())
	assert.Contains(t, iss.Error(), "(total 4)")

	wrapped := errors.Wrap(iss, "load")
	got, ok := sketchkit.AsIssues(wrapped)
	require.True(t, ok)
	assert.Len(t, got, 4)

	_, ok = sketchkit.AsIssues(errors.New("plain"))
	assert.False(t, ok)
}

package sketchkit_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/sketchkit"
)

func TestDetectJSONDuplicateKeysBytes(t *testing.T) {
	t.Run("no duplicates", func(t *testing.T) {
		iss, err := sketchkit.DetectJSONDuplicateKeysBytes([]byte(`{"a":1,"b":{"a":2}}`), sketchkit.Strictness{OnDuplicateKey: sketchkit.Warn}, -1)
		require.NoError(t, err)
		assert.Empty(t, iss)
	})

	t.Run("duplicate at root", func(t *testing.T) {
		iss, err := sketchkit.DetectJSONDuplicateKeysBytes([]byte(`{"a":1,"a":2}`), sketchkit.Strictness{OnDuplicateKey: sketchkit.Warn}, -1)
		require.NoError(t, err)
		require.Len(t, iss, 1)
		assert.Equal(t, sketchkit.CodeDuplicateKey, iss[0].Code)
		assert.Equal(t, sketchkit.Warn, iss[0].Severity)
	})

	t.Run("duplicate inside array element", func(t *testing.T) {
		iss, err := sketchkit.DetectJSONDuplicateKeysReader(strings.NewReader(`{"layers":[{"name":"a","name":"b"}]}`), sketchkit.Strictness{OnDuplicateKey: sketchkit.Error}, -1)
		require.NoError(t, err)
		require.NotEmpty(t, iss)
		assert.True(t, iss.HasErrors())
	})

	t.Run("ignored", func(t *testing.T) {
		iss, err := sketchkit.DetectJSONDuplicateKeysBytes([]byte(`{"a":1,"a":2}`), sketchkit.Strictness{OnDuplicateKey: sketchkit.Ignore}, -1)
		require.NoError(t, err)
		assert.Empty(t, iss)
	})
}

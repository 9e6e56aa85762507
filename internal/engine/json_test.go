package engine

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON_KeepsNumbers(t *testing.T) {
	v, err := DecodeJSON([]byte(`{"x":1,"y":1.5,"s":"a"}`))
	require.NoError(t, err)
	m := v.(map[string]any)
	assert.Equal(t, json.Number("1"), m["x"])
	assert.Equal(t, json.Number("1.5"), m["y"])

	out, err := EncodeJSON(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"x":1,"y":1.5,"s":"a"}`, string(out))
}

func TestEncodeJSON_NoHTMLEscape(t *testing.T) {
	out, err := EncodeJSON(map[string]any{"name": "a<b>&c"})
	require.NoError(t, err)
	assert.Equal(t, `{"name":"a<b>&c"}`, string(out))
}

type node struct {
	Name     string  `json:"name"`
	Children []*node `json:"children,omitempty"`
	Next     *node   `json:"next,omitempty"`
}

func TestEncodeJSONIndent_RecursiveType(t *testing.T) {
	v := &node{Name: "a", Children: []*node{{Name: "b", Next: &node{Name: "c"}}}}
	out, err := EncodeJSONIndent(v)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"name\": \"a\",\n  \"children\": [\n    {\n      \"name\": \"b\",\n      \"next\": {\n        \"name\": \"c\"\n      }\n    }\n  ]\n}", string(out))
}

func TestDetectDuplicateKeys_Path(t *testing.T) {
	iss, err := DetectJSONDuplicateKeysBytes([]byte(`{"layers":[{"a":1},{"b":1,"b":2}]}`), DupWarn, -1)
	require.NoError(t, err)
	require.Len(t, iss, 1)
	assert.Equal(t, "/layers/1", iss[0].Path)
	assert.Equal(t, "duplicate_key", iss[0].Code)
}

func TestDetectDuplicateKeys_Limit(t *testing.T) {
	iss, err := DetectJSONDuplicateKeysBytes([]byte(`{"a":1,"a":2,"a":3}`), DupWarn, 1)
	require.NoError(t, err)
	require.Len(t, iss, 2)
	assert.Equal(t, "truncated", iss[1].Code)
}

// Package engine holds the raw JSON boundary shared by the container and the
// codec: decoding into generic trees and encoding them back.
package engine

import (
	"bytes"

	json "github.com/goccy/go-json"
)

// DecodeJSON decodes data into a generic tree (map[string]any, []any,
// string, bool, json.Number, nil). Numbers stay json.Number so integer and
// float formatting survives a round trip.
func DecodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// EncodeJSON encodes a generic tree. Map keys are emitted in sorted order.
// HTML characters are not escaped since the files are not served as HTML.
func EncodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// EncodeJSONIndent is EncodeJSON with two-space indentation. The compact
// form is indented afterwards: go-json's MarshalIndent exhausts memory on
// recursive types.
func EncodeJSONIndent(v any) ([]byte, error) {
	data, err := EncodeJSON(v)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

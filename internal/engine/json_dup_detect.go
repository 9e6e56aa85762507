package engine

import (
	"bytes"
	"io"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// DuplicateStrictness controls duplicate key handling in detection helpers.
type DuplicateStrictness int

const (
	DupIgnore DuplicateStrictness = iota
	DupWarn
	DupError
)

// SimpleIssue is a minimal issue representation used by internal helpers.
type SimpleIssue struct {
	Code    string
	Path    string
	Message string
}

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type dupFrame struct {
	kind         containerKind
	keys         map[string]struct{}
	expectingKey bool
	path         string
	pendingKey   string
	index        int
}

// DetectJSONDuplicateKeysBytes detects duplicate object keys from a JSON byte slice.
// If onDup is DupIgnore, no issues are produced. maxIssues < 0 means unlimited; 0 means disabled; >0 sets limit.
func DetectJSONDuplicateKeysBytes(data []byte, onDup DuplicateStrictness, maxIssues int) ([]SimpleIssue, error) {
	if onDup == DupIgnore {
		return nil, nil
	}
	return DetectJSONDuplicateKeysReader(bytes.NewReader(data), onDup, maxIssues)
}

// DetectJSONDuplicateKeysReader detects duplicate object keys from an io.Reader.
// Note: this will consume the reader fully.
func DetectJSONDuplicateKeysReader(r io.Reader, onDup DuplicateStrictness, maxIssues int) ([]SimpleIssue, error) {
	if onDup == DupIgnore {
		return nil, nil
	}
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return detectJSONDuplicateKeys(dec, onDup, maxIssues)
}

func escapePointer(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "~", "~0"), "/", "~1")
}

// childPath computes the pointer of the value about to be read in the top frame.
func childPath(stack []dupFrame) string {
	if len(stack) == 0 {
		return ""
	}
	top := &stack[len(stack)-1]
	if top.kind == kindObject {
		return top.path + "/" + escapePointer(top.pendingKey)
	}
	return top.path + "/" + strconv.Itoa(top.index)
}

// valueDone advances the top frame after a complete value was read.
func valueDone(stack []dupFrame) {
	if len(stack) == 0 {
		return
	}
	top := &stack[len(stack)-1]
	if top.kind == kindObject {
		top.expectingKey = true
		top.pendingKey = ""
		return
	}
	top.index++
}

func detectJSONDuplicateKeys(dec *json.Decoder, onDup DuplicateStrictness, maxIssues int) ([]SimpleIssue, error) {
	var issues []SimpleIssue
	var stack []dupFrame

	appendIssue := func(i SimpleIssue) bool {
		if maxIssues == 0 {
			return false
		}
		issues = append(issues, i)
		if maxIssues > 0 && len(issues) >= maxIssues {
			issues = append(issues, SimpleIssue{Code: "truncated", Path: "/", Message: "max issues reached"})
			return true
		}
		return false
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			appendIssue(SimpleIssue{Code: "parse_error", Path: "/", Message: err.Error()})
			break
		}

		switch v := tok.(type) {
		case json.Delim:
			switch v {
			case '{':
				p := childPath(stack)
				stack = append(stack, dupFrame{kind: kindObject, keys: make(map[string]struct{}), expectingKey: true, path: p})
			case '[':
				p := childPath(stack)
				stack = append(stack, dupFrame{kind: kindArray, path: p})
			case '}', ']':
				if len(stack) > 0 {
					stack = stack[:len(stack)-1]
					valueDone(stack)
				}
			}
		case string:
			if len(stack) > 0 {
				top := &stack[len(stack)-1]
				if top.kind == kindObject && top.expectingKey {
					if _, ok := top.keys[v]; ok {
						path := top.path
						if path == "" {
							path = "/"
						}
						if appendIssue(SimpleIssue{Code: "duplicate_key", Path: path, Message: "key '" + v + "' duplicated"}) {
							return issues, nil
						}
						if onDup == DupError {
							return issues, nil
						}
					}
					top.keys[v] = struct{}{}
					top.expectingKey = false
					top.pendingKey = v
					continue
				}
			}
			valueDone(stack)
		default:
			valueDone(stack)
		}
	}

	return issues, nil
}

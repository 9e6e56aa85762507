package sketchkit

import (
	"fmt"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// Issue codes
const (
	CodeInvalidType           = "invalid_type"
	CodeRequired              = "required"
	CodeUnknownKey            = "unknown_key"
	CodeDuplicateKey          = "duplicate_key"
	CodeVariantUnresolved     = "variant_unresolved"
	CodeDiscriminatorMismatch = "discriminator_mismatch"
	CodeDanglingReference     = "dangling_reference"
	CodeDuplicateID           = "duplicate_id"
	CodeDuplicateSymbolName   = "duplicate_symbol_name"
	CodeAssetUnreadable       = "asset_unreadable"
	CodeParseError            = "parse_error"
	CodeTruncated             = "truncated"
	CodeOutOfRange            = "out_of_range"
)

// Issue represents a single decode or consistency finding.
type Issue struct {
	Path     string // JSON Pointer inside Entry (for example: /layers/2/frame).
	Code     string // One of the codes listed above.
	Message  string
	Hint     string // Optional: remediation hints, offending keys, etc.
	Cause    error  // Optional: underlying error.
	Severity Severity
	// Entry is the container entry the issue was found in (for example
	// "pages/<id>.json"). Empty for issues not tied to a file.
	Entry string
	// Params carries structured parameters (e.g., {"keys": [...]}) for i18n
	// and logging.
	Params map[string]any
}

// String renders the issue the way Issues.Error does for a single entry.
func (it Issue) String() string {
	loc := it.Path
	if it.Entry != "" {
		loc = it.Entry + "#" + it.Path
	}
	if it.Hint != "" {
		return fmt.Sprintf("%s at %s (%s)", it.Code, loc, it.Hint)
	}
	return fmt.Sprintf("%s at %s", it.Code, loc)
}

// Issues is a collection of findings that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(iss[i].String())
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Errors returns only the issues with Error severity.
func (iss Issues) Errors() Issues { return iss.filter(Error) }

// Warnings returns only the issues with Warn severity.
func (iss Issues) Warnings() Issues { return iss.filter(Warn) }

// HasErrors reports whether at least one issue has Error severity.
func (iss Issues) HasErrors() bool {
	for _, it := range iss {
		if it.Severity == Error {
			return true
		}
	}
	return false
}

// WithCode returns the issues carrying the given code.
func (iss Issues) WithCode(code string) Issues {
	var out Issues
	for _, it := range iss {
		if it.Code == code {
			out = append(out, it)
		}
	}
	return out
}

func (iss Issues) filter(sev Severity) Issues {
	var out Issues
	for _, it := range iss {
		if it.Severity == sev {
			out = append(out, it)
		}
	}
	return out
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

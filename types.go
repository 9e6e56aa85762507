package sketchkit

import (
	"fmt"

	"gitlab.com/tozd/go/errors"
)

// UnknownPolicy controls how keys not declared for an entity are handled.
type UnknownPolicy int

const (
	UnknownStrict      UnknownPolicy = iota // Reject the entity; its subtree is dropped.
	UnknownStrip                            // Drop unknown keys with a warning.
	UnknownPassthrough                      // Keep unknown keys and emit them again on encode.
)

var unknownPolicyNames = map[UnknownPolicy]string{
	UnknownStrict:      "strict",
	UnknownStrip:       "strip",
	UnknownPassthrough: "passthrough",
}

func (p UnknownPolicy) String() string {
	if s, ok := unknownPolicyNames[p]; ok {
		return s
	}
	return fmt.Sprintf("UnknownPolicy(%d)", int(p))
}

// ParseUnknownPolicy maps "strict", "strip" or "passthrough" to a policy.
func ParseUnknownPolicy(s string) (UnknownPolicy, error) {
	for p, name := range unknownPolicyNames {
		if name == s {
			return p, nil
		}
	}
	return UnknownStrict, errors.Errorf("unknown policy %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (p UnknownPolicy) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *UnknownPolicy) UnmarshalText(b []byte) error {
	v, err := ParseUnknownPolicy(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Severity expresses the severity level for issues.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

func (s Severity) String() string {
	switch s {
	case Warn:
		return "warn"
	case Error:
		return "error"
	default:
		return "ignore"
	}
}

// Strictness configures enforcement for duplicate keys.
type Strictness struct {
	OnDuplicateKey Severity // Warn or Error (duplicate JSON keys).
}

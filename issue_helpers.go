package sketchkit

import "github.com/reoring/sketchkit/i18n"

// IssueAt creates an Error issue at the given path with a localized message.
func IssueAt(p PathRef, code, hint string, params map[string]any) Issue {
	return Issue{Path: p.Pointer(), Code: code, Message: i18n.T(code, nil), Hint: hint, Params: params, Severity: Error}
}

// WarnAt is IssueAt with Warn severity.
func WarnAt(p PathRef, code, hint string, params map[string]any) Issue {
	it := IssueAt(p, code, hint, params)
	it.Severity = Warn
	return it
}

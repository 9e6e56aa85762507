package sketchkit

import (
	"io"

	eng "github.com/reoring/sketchkit/internal/engine"
)

// DetectJSONDuplicateKeysBytes detects duplicate object keys in a JSON byte
// slice. The implementation delegates to internal/engine.
func DetectJSONDuplicateKeysBytes(data []byte, strict Strictness, maxIssues int) (Issues, error) {
	mode := toEngineDup(strict.OnDuplicateKey)
	si, err := eng.DetectJSONDuplicateKeysBytes(data, mode, maxIssues)
	if err != nil {
		return nil, err
	}
	return fromEngineIssues(si, strict.OnDuplicateKey), nil
}

// DetectJSONDuplicateKeysReader is DetectJSONDuplicateKeysBytes for an
// io.Reader. The reader is consumed fully.
func DetectJSONDuplicateKeysReader(r io.Reader, strict Strictness, maxIssues int) (Issues, error) {
	mode := toEngineDup(strict.OnDuplicateKey)
	si, err := eng.DetectJSONDuplicateKeysReader(r, mode, maxIssues)
	if err != nil {
		return nil, err
	}
	return fromEngineIssues(si, strict.OnDuplicateKey), nil
}

func toEngineDup(s Severity) eng.DuplicateStrictness {
	switch s {
	case Error:
		return eng.DupError
	case Warn:
		return eng.DupWarn
	default:
		return eng.DupIgnore
	}
}

func fromEngineIssues(si []eng.SimpleIssue, sev Severity) Issues {
	var iss Issues
	for _, s := range si {
		iss = AppendIssues(iss, Issue{Code: s.Code, Path: s.Path, Message: s.Message, Severity: sev})
	}
	return iss
}

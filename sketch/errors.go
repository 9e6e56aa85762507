package sketch

import "gitlab.com/tozd/go/errors"

var (
	ErrNoPages           = errors.New("document has no pages")
	ErrPageNotFound      = errors.New("page not found")
	ErrLayerNotFound     = errors.New("layer not found")
	ErrDuplicateID       = errors.New("object identifier already in use")
	ErrDanglingReference = errors.New("reference to a missing object")
	ErrEmptyGroup        = errors.New("group needs at least one layer")
	ErrInvalidPath       = errors.New("invalid override path")
	ErrMissingEntry      = errors.New("container entry missing")
	ErrInconsistent      = errors.New("cross references are inconsistent")
	// ErrDecode wraps the issues of an entry whose root could not be decoded.
	ErrDecode = errors.New("entry could not be decoded")
)

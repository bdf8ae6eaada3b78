package tag

import "errors"

var (
	// ErrTypeMismatch is returned by typed accessors when the stored
	// node's type differs from the accessor's expected type.
	ErrTypeMismatch = errors.New("tag type mismatch")

	// ErrListType is returned when an element's type disagrees with a
	// list's locked element type, or when changing the element type
	// would orphan existing elements.
	ErrListType = errors.New("list element type violation")

	// ErrRange is returned by indexed accessors for out-of-range
	// indices.
	ErrRange = errors.New("index out of range")

	// ErrPath is returned when path navigation fails.
	ErrPath = errors.New("bad tag path")
)

package serializer

import "fmt"

// Kind classifies serialization failures.
type Kind int

const (
	// TypeMismatch: a stored tag's type is structurally incompatible
	// with the requested native type. Fatal.
	TypeMismatch Kind = iota + 1
	// ListTypeViolation: an element's tag type disagrees with a list's
	// locked element type. Fatal.
	ListTypeViolation
	// UnknownType: a recorded concrete type identity cannot be
	// resolved. Fatal under strict type matching, otherwise the field
	// is skipped and a diagnostic recorded.
	UnknownType
	// AmbiguousRename: two fields of one type resolve to the same
	// effective key. Detected when the type's descriptor is built,
	// before any traversal. Fatal.
	AmbiguousRename
	// CyclicReference: a non-weak field revisits an instance already
	// being serialized while reference resolution is disabled. Fatal.
	CyclicReference
)

func (k Kind) String() string {
	switch k {
	case TypeMismatch:
		return "type mismatch"
	case ListTypeViolation:
		return "list type violation"
	case UnknownType:
		return "unknown polymorphic type"
	case AmbiguousRename:
		return "ambiguous rename"
	case CyclicReference:
		return "cyclic reference"
	}
	return "<unknown kind>"
}

// Error is the typed serialization error. FieldPath is the dotted key
// chain from the traversal root to the failure point, e.g.
// "Scene.Children[2].Material".
type Error struct {
	Kind      Kind
	FieldPath string
	Message   string
	Err       error
}

func (e *Error) Error() string {
	if e.FieldPath != "" {
		return fmt.Sprintf("%s at %s: %s", e.Kind, e.FieldPath, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error of the same Kind, so callers can test with
// errors.Is(err, &Error{Kind: TypeMismatch}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.FieldPath == "" || t.FieldPath == e.FieldPath)
}

func errAt(kind Kind, path, format string, args ...any) *Error {
	return &Error{Kind: kind, FieldPath: path, Message: fmt.Sprintf(format, args...)}
}

func wrapAt(kind Kind, path string, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, FieldPath: path, Message: fmt.Sprintf(format, args...), Err: err}
}

// Diagnostic reports a non-fatal condition encountered during a lenient
// deserialize: the named field was left at its default.
type Diagnostic struct {
	FieldPath string
	Message   string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.FieldPath, d.Message)
}

package materialize

import "fmt"

// ErrorKind categorizes materialization failures.
type ErrorKind int

const (
	// IOFailure indicates the source could not be read as text or the
	// destination could not be written.
	IOFailure ErrorKind = iota
	// ExpansionFailure indicates the expansion facility rejected or could not
	// process the template.
	ExpansionFailure
)

// String returns the string representation of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case IOFailure:
		return "io failure"
	case ExpansionFailure:
		return "expansion failure"
	default:
		return "unknown"
	}
}

// Error is returned by every Materializer in this package.
type Error struct {
	// Kind categorizes the error.
	Kind ErrorKind
	// Op is the failed operation (e.g. "read source", "write destination").
	Op string
	// Path is the file involved.
	Path string
	// Cause is the underlying error.
	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s %s: %v", e.Kind, e.Op, e.Path, e.Cause)
	}
	return fmt.Sprintf("%s: %s %s", e.Kind, e.Op, e.Path)
}

// Unwrap returns the underlying cause error for error unwrapping.
func (e *Error) Unwrap() error {
	return e.Cause
}

func newError(kind ErrorKind, op, path string, cause error) *Error {
	return &Error{
		Kind:  kind,
		Op:    op,
		Path:  path,
		Cause: cause,
	}
}

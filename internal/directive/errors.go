package directive

import "fmt"

// ErrorKind identifies why a template could not be expanded.
type ErrorKind int

const (
	// UnknownDirective indicates an unrecognized @gen-* directive.
	UnknownDirective ErrorKind = iota
	// MissingVariable indicates a required variable has no value.
	MissingVariable
	// TypeMismatch indicates a value of the wrong type (e.g. non-bool in @gen-if:).
	TypeMismatch
	// UnclosedBlock indicates an @gen-if: without @gen-endif@.
	UnclosedBlock
	// CircularInclude indicates an include chain that loops.
	CircularInclude
	// IncludeDepth indicates includes nested deeper than allowed.
	IncludeDepth
	// IncludeNotFound indicates an include target that cannot be read.
	IncludeNotFound
	// InvalidSyntax indicates a malformed directive.
	InvalidSyntax
)

var kindNames = map[ErrorKind]string{
	UnknownDirective: "unknown directive",
	MissingVariable:  "missing variable",
	TypeMismatch:     "type mismatch",
	UnclosedBlock:    "unclosed block",
	CircularInclude:  "circular include",
	IncludeDepth:     "include depth exceeded",
	IncludeNotFound:  "include not found",
	InvalidSyntax:    "invalid syntax",
}

// String returns the string representation of the error kind.
func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// SyntaxError describes a template that could not be expanded.
type SyntaxError struct {
	Kind      ErrorKind
	Message   string
	File      string
	Directive string
	Cause     error
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	msg := e.Message
	if e.Directive != "" {
		msg = fmt.Sprintf("%s (directive: %s)", msg, e.Directive)
	}
	if e.File != "" {
		msg = e.File + ": " + msg
	}
	return msg
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *SyntaxError) Unwrap() error {
	return e.Cause
}

func syntaxErr(kind ErrorKind, directive, format string, args ...interface{}) *SyntaxError {
	return &SyntaxError{
		Kind:      kind,
		Message:   fmt.Sprintf(format, args...),
		Directive: directive,
	}
}

// inFile attaches file context if the error has none yet.
func inFile(err error, file string) error {
	if se, ok := err.(*SyntaxError); ok && se.File == "" && file != "" {
		se.File = file
	}
	return err
}

package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseLoad      Phase = "load"      // session load
	PhaseRestore   Phase = "restore"   // design deserialization
	PhaseElaborate Phase = "elaborate" // instance binding
	PhaseSession   Phase = "session"   // registry lookups
	PhaseTraverse  Phase = "traverse"  // hierarchy queries
	PhaseEncode    Phase = "encode"    // design serialization
	PhaseConfig    Phase = "config"    // configuration
)

// Kind categorizes the error
type Kind string

const (
	KindNoDesign      Kind = "no_design"
	KindElaboration   Kind = "elaboration"
	KindNotFound      Kind = "not_found"
	KindNotLoaded     Kind = "not_loaded"
	KindInvalidHandle Kind = "invalid_handle"
	KindInvalidData   Kind = "invalid_data"
	KindInvalidInput  Kind = "invalid_input"
	KindUnsupported   Kind = "unsupported"
	KindIO            Kind = "io"
)

// Sentinels for errors.Is. They match on Kind only.
var (
	ErrLoad          = &Error{Kind: KindNoDesign}
	ErrElaboration   = &Error{Kind: KindElaboration}
	ErrNotFound      = &Error{Kind: KindNotFound}
	ErrNotLoaded     = &Error{Kind: KindNotLoaded}
	ErrInvalidHandle = &Error{Kind: KindInvalidHandle}
)

// Error is the structured error type used throughout the module
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	if e.Phase != "" {
		b.WriteByte('[')
		b.WriteString(string(e.Phase))
		b.WriteString("] ")
	}
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error.
// A target without a Phase matches any phase.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Phase != "" && t.Phase != e.Phase {
		return false
	}
	return e.Kind == t.Kind
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the hierarchical path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Load creates a load error for a design file that restored nothing
func Load(path string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindNoDesign,
		Detail: fmt.Sprintf("failed to restore design from %s", path),
		Value:  path,
		Cause:  cause,
	}
}

// Elaboration creates an elaboration failure error
func Elaboration(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseElaborate,
		Kind:   KindElaboration,
		Detail: detail,
		Cause:  cause,
	}
}

// SessionNotFound creates a not-found error for an unknown session id
func SessionNotFound(id uint32) *Error {
	return &Error{
		Phase:  PhaseSession,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("session %d not found", id),
		Value:  id,
	}
}

// NotLoaded creates an error for a session without a root design
func NotLoaded(id uint32) *Error {
	return &Error{
		Phase:  PhaseSession,
		Kind:   KindNotLoaded,
		Detail: fmt.Sprintf("session %d has no design loaded", id),
		Value:  id,
	}
}

// InvalidHandle creates an error for a handle the registry did not produce
func InvalidHandle(detail string) *Error {
	return &Error{
		Phase:  PhaseTraverse,
		Kind:   KindInvalidHandle,
		Detail: detail,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
		Value:  name,
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: detail,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// IO wraps a filesystem or database failure
func IO(phase Phase, detail string, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindIO,
		Detail: detail,
		Cause:  cause,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// ParseFailed creates a parsing error
func ParseFailed(what string, cause error) *Error {
	return &Error{
		Phase:  PhaseRestore,
		Kind:   KindInvalidData,
		Detail: fmt.Sprintf("parse %s", what),
		Cause:  cause,
	}
}

package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Is reports whether any error in err's chain matches target. It is
// the standard library's errors.Is, re-exported so callers need a
// single errors import.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// Unwrap returns the next error in err's chain, if any.
func Unwrap(err error) error {
	return stderrors.Unwrap(err)
}

// Stage indicates where in the pipeline the error occurred
type Stage string

const (
	StageLoad       Stage = "load"       // reading, compiling, instantiating module bytes
	StageLookup     Stage = "lookup"     // registry and export resolution
	StageCall       Stage = "call"       // argument marshalling and guest execution
	StageIntrospect Stage = "introspect" // export signature rendering
	StageConfig     Stage = "config"     // configuration parsing
)

// Kind categorizes the error
type Kind string

const (
	KindIO               Kind = "io"
	KindCompile          Kind = "compile"
	KindInstantiation    Kind = "instantiation"
	KindInstanceNotFound Kind = "instance_not_found"
	KindFunctionNotFound Kind = "function_not_found"
	KindArityMismatch    Kind = "arity_mismatch"
	KindUnsupportedType  Kind = "unsupported_type"
	KindExecutionFault   Kind = "execution_fault"
	KindInvalidConfig    Kind = "invalid_config"
)

// Error is the structured error type used throughout the library
type Error struct {
	Value    any
	Cause    error
	Stage    Stage
	Kind     Kind
	Instance string
	Function string
	Detail   string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Stage))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Instance != "" || e.Function != "" {
		b.WriteString(" at ")
		b.WriteString(e.Instance)
		if e.Function != "" {
			if e.Instance != "" {
				b.WriteByte('#')
			}
			b.WriteString(e.Function)
		}
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

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Stage == t.Stage && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(stage Stage, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Stage: stage,
			Kind:  kind,
		},
	}
}

// Instance sets the instance identifier
func (b *Builder) Instance(id string) *Builder {
	b.err.Instance = id
	return b
}

// Function sets the function name
func (b *Builder) Function(name string) *Builder {
	b.err.Function = name
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

// Convenience constructors for common error patterns

// IO creates a module-read error
func IO(path string, cause error) *Error {
	return &Error{
		Stage:  StageLoad,
		Kind:   KindIO,
		Detail: fmt.Sprintf("read module %q", path),
		Cause:  cause,
	}
}

// Compile creates a compilation error for malformed module bytes
func Compile(path string, cause error) *Error {
	return &Error{
		Stage:  StageLoad,
		Kind:   KindCompile,
		Detail: fmt.Sprintf("compile module %q", path),
		Cause:  cause,
	}
}

// Instantiation creates an instantiation error. Instantiation with an empty
// import set fails when the module declares imports or traps during start;
// both are recoverable conditions, never process-fatal.
func Instantiation(path string, cause error) *Error {
	return &Error{
		Stage:  StageLoad,
		Kind:   KindInstantiation,
		Detail: fmt.Sprintf("instantiate module %q", path),
		Cause:  cause,
	}
}

// InstanceNotFound creates a registry-miss error
func InstanceNotFound(id string) *Error {
	return &Error{
		Stage:    StageLookup,
		Kind:     KindInstanceNotFound,
		Instance: id,
		Detail:   "no instance registered under this identifier",
	}
}

// FunctionNotFound creates an export-miss error
func FunctionNotFound(id, name string) *Error {
	return &Error{
		Stage:    StageLookup,
		Kind:     KindFunctionNotFound,
		Instance: id,
		Function: name,
		Detail:   "instance exports no function with this name",
	}
}

// ArityMismatch creates an argument-count error
func ArityMismatch(id, name string, declared, supplied int) *Error {
	return &Error{
		Stage:    StageCall,
		Kind:     KindArityMismatch,
		Instance: id,
		Function: name,
		Detail:   fmt.Sprintf("function takes %d argument(s), %d supplied", declared, supplied),
		Value:    supplied,
	}
}

// UnsupportedParam creates an error for a parameter type outside the
// integer marshalling boundary
func UnsupportedParam(id, name string, pos int, typeName string) *Error {
	return &Error{
		Stage:    StageCall,
		Kind:     KindUnsupportedType,
		Instance: id,
		Function: name,
		Detail:   fmt.Sprintf("parameter %d has type %s; only i32 and i64 cross the boundary", pos, typeName),
		Value:    typeName,
	}
}

// ExecutionFault creates an error for a guest trap during a call
func ExecutionFault(id, name string, cause error) *Error {
	return &Error{
		Stage:    StageCall,
		Kind:     KindExecutionFault,
		Instance: id,
		Function: name,
		Detail:   "guest execution faulted",
		Cause:    cause,
	}
}

// Config creates a configuration error
func Config(detail string, cause error) *Error {
	return &Error{
		Stage:  StageConfig,
		Kind:   KindInvalidConfig,
		Detail: detail,
		Cause:  cause,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(stage Stage, kind Kind, cause error, detail string) *Error {
	return &Error{
		Stage:  stage,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

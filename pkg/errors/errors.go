// Package errors provides structured error handling for stackui.
//
// Most of stackui has no fallible operations: building a stack or publishing a
// value cannot fail. Errors surface in three places only: markup documents
// that do not parse or bind, content closures that panic while a bound
// container rebuilds, and publishers updated from inside their own fan-out.
// Each of those is reported through the global [ErrorHandler].
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindParsing indicates a markup document that could not be decoded.
	KindParsing
	// KindBinding indicates a reference to missing or mistyped bound data.
	KindBinding
	// KindConfig indicates an invalid project configuration.
	KindConfig
	// KindBuild indicates a failure while building container content.
	KindBuild
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindParsing:
		return "parsing"
	case KindBinding:
		return "binding"
	case KindConfig:
		return "config"
	case KindBuild:
		return "build"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// StackError represents a structured error in stackui.
type StackError struct {
	// Op is the operation that failed (e.g., "markup.Load").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Key is the data key or node path involved, if applicable.
	Key string
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *StackError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s [%s] key=%s: %v", e.Op, e.Kind, e.Key, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *StackError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "stackui.main").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// BuildError represents a failure while a container evaluated its content.
type BuildError struct {
	// View is the type name of the container that was rebuilding.
	View string
	// Generation is the rebuild count at the time of the failure.
	Generation int
	// Recovered is the panic value (nil for regular errors).
	Recovered any
	// Err is the underlying error (nil for panics that did not carry one).
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *BuildError) Error() string {
	if e.Recovered != nil {
		return fmt.Sprintf("panic in %s content: %v", e.View, e.Recovered)
	}
	if e.Err != nil {
		return fmt.Sprintf("error in %s content: %v", e.View, e.Err)
	}
	return fmt.Sprintf("unknown error in %s content", e.View)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

// ReentrancyError is the panic value raised when a publisher is updated by
// one of its own subscribers while it is still notifying them.
type ReentrancyError struct {
	// Op names the publisher operation (e.g., "core.Publisher[int].Update").
	Op string
	// Depth is the number of subscribers already notified in the running fan-out.
	Depth int
}

func (e *ReentrancyError) Error() string {
	return fmt.Sprintf("%s: re-entrant update after %d subscriber(s)", e.Op, e.Depth)
}

// ErrorHandler receives errors reported by stackui.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *StackError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
	// HandleBuildError is called when container content fails to build.
	HandleBuildError(err *BuildError)
}

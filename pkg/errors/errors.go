// Package errors provides structured error reporting for marquee hosts and
// the animation engine.
//
// Nothing in the engine surfaces errors to the end user. Failures are either
// returned as values (construction) or reported to the installed [Handler],
// which by default logs to stderr.
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
	// KindConfig indicates a missing or invalid marquee configuration.
	KindConfig
	// KindLayout indicates a layout or measurement failure.
	KindLayout
	// KindCapability indicates a host capability that is not available.
	KindCapability
	// KindContent indicates a content document that could not be loaded.
	KindContent
	// KindRender indicates a host drawing error.
	KindRender
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindLayout:
		return "layout"
	case KindCapability:
		return "capability"
	case KindContent:
		return "content"
	case KindRender:
		return "render"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// MarqueeError represents a structured error raised by the engine or a host.
type MarqueeError struct {
	// Op is the operation that failed (e.g., "marquee.New").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Container is the container id involved, if any.
	Container string
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *MarqueeError) Error() string {
	if e.Container != "" {
		return fmt.Sprintf("%s [%s] container=%s: %v", e.Op, e.Kind, e.Container, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *MarqueeError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "marquee.onReady").
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

// Handler receives errors reported by the engine and its hosts.
type Handler interface {
	// HandleError is called when an error occurs.
	HandleError(err *MarqueeError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}

// Package errors carries structured context along the error path. Each wrap
// site records its source location and slog attributes, so the single log
// line at the top of a command names where a failure happened and what it
// was operating on.
package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
)

// annotation is one wrap site: a message, the program counter of the caller,
// and the attributes describing the failed operation.
type annotation struct {
	msg   string
	pc    uintptr
	attrs []slog.Attr
}

// NewSentinel creates a plain error for classification with Is. Sentinels
// carry no context of their own; Wrap adds it at the failure site.
func NewSentinel(msg string) error {
	return errors.New(msg)
}

// Wrap annotates err with a message and attributes pointing at the caller.
// It is the one way errors gain context on their way up.
func Wrap(err error, msg string, attrs ...slog.Attr) error {
	var pcs [1]uintptr
	// Skip runtime.Callers and Wrap itself.
	runtime.Callers(2, pcs[:])

	return fmt.Errorf("%w: %w", annotation{msg: msg, pc: pcs[0], attrs: attrs}, err)
}

// Error implements the error interface.
func (a annotation) Error() string {
	return a.msg
}

// LogValue resolves the recorded program counter so that log events point at
// the line that wrapped the error.
func (a annotation) LogValue() slog.Value {
	frames := runtime.CallersFrames([]uintptr{a.pc})
	frame, _ := frames.Next()

	attrs := append(
		[]slog.Attr{slog.String("source", fmt.Sprintf("%s:%d", frame.File, frame.Line))},
		a.attrs...,
	)

	return slog.GroupValue(attrs...)
}

// SlogError formats err as an attribute for structured logging. The
// outermost annotation in the chain contributes its source location and
// context attributes.
func SlogError(err error) slog.Attr {
	attrs := []slog.Attr{slog.String("msg", err.Error())}
	var ann annotation
	if errors.As(err, &ann) {
		attrs = append(attrs, slog.Any("annotations", ann))
	}

	return slog.Attr{Key: "error", Value: slog.GroupValue(attrs...)}
}

// As exposes stdlib errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Is exposes stdlib errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// Join exposes stdlib errors.Join.
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// Unwrap exposes stdlib errors.Unwrap.
func Unwrap(err error) error {
	return errors.Unwrap(err)
}

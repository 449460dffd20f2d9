// Package errors provides the structured error returned by detailed
// boundaries and by configuration loading: a numeric code, a message that is
// safe to show to the caller, optional metadata and the underlying cause.
package errors

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// UnknownCode is assigned to errors that carry no code.
const UnknownCode = CodeInternal

// Error is a coded error. It is immutable: the With methods return copies.
type Error struct {
	Code     int               `json:"code"`
	Message  string            `json:"message,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`

	cause error
}

// New creates an error. format is used verbatim when no args are given.
func New(code int, format string, args ...any) *Error {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	return &Error{Code: code, Message: msg}
}

// Wrap attaches err as the cause of a new coded error. It returns nil for a
// nil err.
func Wrap(err error, code int, format string, args ...any) *Error {
	if err == nil {
		return nil
	}
	return New(code, format, args...).WithCause(err)
}

// Error formats as "code=C, message=M[, metadata={k=v, ...}][, cause=...]"
// with metadata keys sorted.
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString("code=")
	b.WriteString(strconv.Itoa(e.Code))
	b.WriteString(", message=")
	b.WriteString(e.Message)

	if len(e.Metadata) > 0 {
		b.WriteString(", metadata={")
		for i, k := range slices.Sorted(maps.Keys(e.Metadata)) {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(k)
			b.WriteByte('=')
			b.WriteString(e.Metadata[k])
		}
		b.WriteByte('}')
	}

	if e.cause != nil {
		b.WriteString(", cause=")
		b.WriteString(e.cause.Error())
	}

	return b.String()
}

// Unwrap returns the cause.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches another *Error with the same code and message. Metadata and
// cause are ignored.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && e.Code == t.Code && e.Message == t.Message
}

// Cause returns the underlying error, or nil.
func (e *Error) Cause() error {
	return e.cause
}

// WithMetadata returns a copy with m merged into the metadata. An empty m
// returns e itself.
func (e *Error) WithMetadata(m map[string]string) *Error {
	if len(m) == 0 {
		return e
	}

	c := e.copy()
	if c.Metadata == nil {
		c.Metadata = make(map[string]string, len(m))
	}
	maps.Copy(c.Metadata, m)
	return c
}

// WithCause returns a copy with cause set. A nil cause returns e itself.
func (e *Error) WithCause(cause error) *Error {
	if cause == nil {
		return e
	}

	c := e.copy()
	c.cause = cause
	return c
}

func (e *Error) copy() *Error {
	c := *e
	c.Metadata = maps.Clone(e.Metadata)
	return &c
}

// FromError returns the first *Error in err's chain, or a new error with
// UnknownCode wrapping err.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}

	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, UnknownCode, "%v", err)
}

// Code returns the code of the first *Error in err's chain, 0 for nil and
// UnknownCode for uncoded errors.
func Code(err error) int {
	if err == nil {
		return 0
	}
	return FromError(err).Code
}

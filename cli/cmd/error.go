package cmd

import (
	"log/slog"
	"strings"
)

// Error is a command error carrying structured logging attributes.
type Error struct {
	msg   string
	err   error
	attrs []slog.Attr
	base  *Error
}

func NewError(msg string) *Error {
	return &Error{msg: msg}
}

func (e *Error) Error() string {
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

func (e *Error) Unwrap() error { return e.err }

// Is matches the sentinel e was derived from with [Error.Wrap] or
// [Error.With].
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && (e == t || (e.base != nil && e.base == t))
}

func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.Any("cause", e.err))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap returns a copy of e wrapping err.
func (e *Error) Wrap(err error) *Error {
	c := e.clone()
	c.err = err

	return c
}

// With returns a copy of e with attrs appended.
func (e *Error) With(attrs ...slog.Attr) *Error {
	c := e.clone()
	c.attrs = append(c.attrs, attrs...)

	return c
}

func (e *Error) clone() *Error {
	base := e.base
	if base == nil {
		base = e
	}

	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: append([]slog.Attr(nil), e.attrs...),
		base:  base,
	}
}

var (
	ErrReadInput     = NewError("read input")
	ErrWriteOutput   = NewError("write output")
	ErrInvalidFormat = NewError("invalid format")
	ErrWriteConfig   = NewError("write configuration file")
	ErrFileExists    = NewError("file exists (use --force to overwrite)")
)

package argtree

import (
	"errors"
	"log/slog"
	"slices"
	"strconv"
	"strings"
)

// Predefined errors (sentinel values), one per failure kind.
// Use [errors.Is] to classify an error returned from a parse call.
var (
	ErrUnexpectedToken        = NewError("unexpected token")
	ErrDuplicateField         = NewError("duplicate field")
	ErrMalformedNumber        = NewError("malformed number")
	ErrMalformedBoolean       = NewError("malformed boolean")
	ErrUnterminatedQuotedPath = NewError("unterminated quoted path")
	ErrTrailingInput          = NewError("trailing input")
	ErrMissingMethod          = NewError("missing method")
	ErrNumericOverflow        = NewError("numeric overflow")
	ErrReadInput              = NewError("failed to read input")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	msg   string
	err   error
	attrs []slog.Attr
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
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

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is an Error of the same kind.
// Errors derived from a sentinel with [Error.With] or [Error.Wrap] match it.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && t.msg != "" && t.msg == e.msg
}

// Attrs returns a copy of the structured attributes attached to the error.
func (e *Error) Attrs() []slog.Attr { return slices.Clone(e.attrs) }

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		attrs: e.attrs,
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: newAttrs,
	}
}

// ParseError locates a failure in the argument string.
type ParseError struct {
	Err         *Error   // The failure kind, one of the sentinel errors
	Source      string   // The original input
	Found       string   // Token at Offset, empty at end of input
	Expected    []string // Keywords or tokens legal at Offset
	Suggestions []string // Expected keywords resembling Found
	Offset      int      // Byte offset into Source
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	var buf strings.Builder

	buf.WriteString("parse error at offset ")
	buf.WriteString(strconv.Itoa(e.Offset))
	buf.WriteString(": ")
	buf.WriteString(e.Err.Error())

	if e.Found != "" {
		buf.WriteString(" ")
		buf.WriteString(strconv.Quote(e.Found))
	} else if e.Offset >= len(e.Source) {
		buf.WriteString(" at end of input")
	}

	buf.WriteRune('\n')
	buf.WriteString(e.snippet())

	if exp := quoteSorted(e.Expected); len(exp) > 0 {
		buf.WriteString("\texpected: ")
		buf.WriteString(strings.Join(exp, ", "))
		buf.WriteRune('\n')
	}

	if len(e.Suggestions) > 0 {
		buf.WriteString("\tdid you mean: ")
		buf.WriteString(strings.Join(quoteSorted(e.Suggestions), ", "))
		buf.WriteRune('\n')
	}

	return strings.TrimSuffix(buf.String(), "\n")
}

// Unwrap returns the failure kind.
func (e *ParseError) Unwrap() error { return e.Err }

// LogValue implements slog.LogValuer.
func (e *ParseError) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Any("kind", e.Err),
		slog.Int("offset", e.Offset),
	}

	if e.Found != "" {
		attrs = append(attrs, slog.String("found", e.Found))
	}

	if len(e.Expected) > 0 {
		attrs = append(attrs, slog.Any("expected", quoteSorted(e.Expected)))
	}

	if len(e.Suggestions) > 0 {
		attrs = append(attrs, slog.Any("suggestions", e.Suggestions))
	}

	return slog.GroupValue(attrs...)
}

// snippet returns the source line containing the offset with a caret marker
// beneath the offending byte.
func (e *ParseError) snippet() string {
	off := min(max(e.Offset, 0), len(e.Source))

	start := strings.LastIndexByte(e.Source[:off], '\n') + 1

	end := len(e.Source)
	if i := strings.IndexByte(e.Source[off:], '\n'); i >= 0 {
		end = off + i
	}

	var buf strings.Builder

	buf.WriteString("  | ")
	buf.WriteString(e.Source[start:end])
	buf.WriteRune('\n')

	// Tabs are preserved so the caret lines up with the echoed line.
	pad := strings.Map(
		func(r rune) rune {
			if r == '\t' {
				return r
			}

			return ' '
		},
		e.Source[start:off],
	)

	buf.WriteString("    ")
	buf.WriteString(pad)
	buf.WriteString("^\n")

	return buf.String()
}

func quoteSorted(s []string) []string {
	exp := make([]string, 0, len(s))
	for _, e := range s {
		exp = append(exp, strconv.Quote(e))
	}

	slices.Sort(exp)

	return slices.Compact(exp)
}

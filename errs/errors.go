// Package errs defines the closed error taxonomy shared across Trinity's
// RPC fabric. Every error that can cross a command boundary is a
// *Error with one of these kinds, so a proxy can translate it into an
// ErrorReply code and a caller can recover the kind with errors.As.
package errs

import (
	"errors"
	"fmt"
)

// Kind is a closed enumeration of the error categories this package names.
type Kind int

const (
	Unknown Kind = iota
	ConnectFailed
	Timeout
	ProtocolError
	InvalidArgument
	RemoteError
	ResourceExhausted
	DatasetIncompatible
)

func (k Kind) String() string {
	switch k {
	case ConnectFailed:
		return "ConnectFailed"
	case Timeout:
		return "Timeout"
	case ProtocolError:
		return "ProtocolError"
	case InvalidArgument:
		return "InvalidArgument"
	case RemoteError:
		return "RemoteError"
	case ResourceExhausted:
		return "ResourceExhausted"
	case DatasetIncompatible:
		return "DatasetIncompatible"
	default:
		return "Unknown"
	}
}

// Error is the concrete error type carried through the RPC fabric.
type Error struct {
	Kind  Kind
	Code  int32 // populated for RemoteError, echoes ErrorReply.Code
	Msg   string
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is allows errors.Is(err, errs.Marker(errs.Timeout)) style checks: for any
// *Error target it compares Kind alone, ignoring the target's Code, Cause
// and Msg.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// New constructs an *Error of the given kind.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap constructs an *Error of the given kind, chaining cause.
func Wrap(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Cause: cause}
}

// Remote constructs the *Error surfaced when a proxy receives an ErrorReply.
func Remote(code int32) *Error {
	return &Error{Kind: RemoteError, Code: code, Msg: fmt.Sprintf("remote error code %d", code)}
}

// Marker returns a zero-value *Error of kind k, suitable as the target of
// errors.Is(err, errs.Marker(errs.Timeout)).
func Marker(k Kind) *Error { return &Error{Kind: k} }

// CodeOf maps err to the int32 an ErrorReply carries across the wire
//. A RemoteError forwards its original Code; every other kind is
// carried as its own ordinal, which the receiving proxy's errs.Remote error
// keeps in its Code (that error's Kind is always RemoteError).
func CodeOf(err error) int32 {
	var e *Error
	if errors.As(err, &e) {
		if e.Kind == RemoteError {
			return e.Code
		}
		return int32(e.Kind)
	}
	return int32(Unknown)
}

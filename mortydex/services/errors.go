package services

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a domain failure so the transport layer can map it to
// a status code without string matching.
type ErrorKind int

const (
	KindNotFound ErrorKind = iota + 1
	KindConflict
	KindForbidden
	KindUnavailable
	KindInvalidArgument
	KindInvalidState
)

// Error is the domain error returned by every service operation.
type Error struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func wrapError(kind ErrorKind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

func kindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func IsNotFound(err error) bool        { return kindOf(err) == KindNotFound }
func IsConflict(err error) bool        { return kindOf(err) == KindConflict }
func IsForbidden(err error) bool       { return kindOf(err) == KindForbidden }
func IsUnavailable(err error) bool     { return kindOf(err) == KindUnavailable }
func IsInvalidArgument(err error) bool { return kindOf(err) == KindInvalidArgument }
func IsInvalidState(err error) bool    { return kindOf(err) == KindInvalidState }

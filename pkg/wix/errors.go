package wix

import (
	"errors"
	"fmt"
)

// Kind enumerates everything that can go wrong while producing an
// installer. The set is closed; the numeric values double as process
// exit codes, so they must stay stable.
type Kind int

const (
	KindBuild    Kind = 1
	KindCompile  Kind = 2
	KindGeneric  Kind = 3
	KindIo       Kind = 4
	KindLink     Kind = 5
	KindManifest Kind = 6
	KindSign     Kind = 7
	KindParse    Kind = 8
)

func (k Kind) String() string {
	switch k {
	case KindBuild:
		return "Build"
	case KindCompile:
		return "Compile"
	case KindGeneric:
		return "Generic"
	case KindIo:
		return "Io"
	case KindLink:
		return "Link"
	case KindManifest:
		return "Manifest"
	case KindSign:
		return "Sign"
	case KindParse:
		return "Parse"
	}
	return "Unknown"
}

// Error is the one error type this package returns. Manifest errors
// carry the field that was missing, Io and Parse errors carry the
// lower-level cause.
type Error struct {
	kind  Kind
	msg   string
	field string
	cause error
}

func newError(kind Kind, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

func manifestError(field string) *Error {
	return &Error{kind: KindManifest, field: field}
}

func ioError(msg string, cause error) *Error {
	return &Error{kind: KindIo, msg: msg, cause: cause}
}

func parseError(msg string, cause error) *Error {
	return &Error{kind: KindParse, msg: msg, cause: cause}
}

func (e *Error) Error() string {
	if e.kind == KindManifest {
		return fmt.Sprintf("no '%s' field found in the package's manifest (Cargo.toml)", e.field)
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.cause)
	}
	return e.msg
}

// Kind reports which variant this error is.
func (e *Error) Kind() Kind { return e.kind }

// Field is the manifest field a KindManifest error is about. Empty
// for every other kind.
func (e *Error) Field() string { return e.field }

// Code is the process exit code for this error.
func (e *Error) Code() int { return int(e.kind) }

func (e *Error) Unwrap() error { return e.cause }

// Cause exists for github.com/pkg/errors chains.
func (e *Error) Cause() error { return e.cause }

// ErrorCode maps any error to an exit code. Errors from outside this
// package get the generic code.
func ErrorCode(err error) int {
	if err == nil {
		return 0
	}
	var werr *Error
	if errors.As(err, &werr) {
		return werr.Code()
	}
	return int(KindGeneric)
}

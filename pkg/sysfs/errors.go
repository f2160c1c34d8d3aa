package sysfs

import (
	"errors"
	"fmt"
	"io/fs"
)

// Kind classifies a failure of an attribute access.
type Kind int

const (
	// KindNone is reported for a nil error.
	KindNone Kind = iota
	// KindNotFound means the attribute file does not exist for the device.
	// The kernel documents a missing attribute as "feature unavailable".
	KindNotFound
	// KindUnsupported means the file exists but holds the <unsupported> sentinel.
	KindUnsupported
	// KindDecode means the content could not be converted to the declared type.
	KindDecode
	// KindIO covers every other failure opening, reading or writing the file.
	KindIO
	// KindInvalidValue means the codec refused to encode the value passed to a write.
	KindInvalidValue
)

// String returns the short name used in reports and metrics labels.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindNotFound:
		return "not_found"
	case KindUnsupported:
		return "unsupported"
	case KindDecode:
		return "decode"
	case KindIO:
		return "io"
	case KindInvalidValue:
		return "invalid_value"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Sentinels matched by errors.Is against any *Error of the same kind.
var (
	ErrNotFound     = errors.New("the requested sysfs attribute does not exist")
	ErrUnsupported  = errors.New("the requested sysfs attribute is not supported on this platform")
	ErrDecode       = errors.New("unexpected sysfs attribute content")
	ErrIO           = errors.New("sysfs I/O error")
	ErrInvalidValue = errors.New("value cannot be encoded for this sysfs attribute")
)

func (k Kind) sentinel() error {
	switch k {
	case KindNotFound:
		return ErrNotFound
	case KindUnsupported:
		return ErrUnsupported
	case KindDecode:
		return ErrDecode
	case KindIO:
		return ErrIO
	case KindInvalidValue:
		return ErrInvalidValue
	}
	return nil
}

// Error is returned by every read, write and enumeration in this package.
type Error struct {
	Kind Kind
	Op   string // "read", "write" or "enumerate"
	Path string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Kind.sentinel()
	if msg == nil {
		msg = errors.New(e.Kind.String())
	}
	if e.Err == nil {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, msg)
	}
	return fmt.Sprintf("%s %s: %v: %v", e.Op, e.Path, msg, e.Err)
}

// Unwrap exposes the underlying OS or codec error.
func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel for e's kind.
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && s == target
}

// KindOf extracts the failure kind of err. Errors that did not come from
// this package are reported as KindIO.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	var de *DecodeError
	if errors.As(err, &de) {
		return KindDecode
	}
	return KindIO
}

// DecodeError is returned by codecs when text does not match the declared type.
type DecodeError struct {
	Type string
	Text string
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("cannot decode %q as %s", e.Text, e.Type)
	}
	return fmt.Sprintf("cannot decode %q as %s: %v", e.Text, e.Type, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func classify(op, path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return &Error{Kind: KindNotFound, Op: op, Path: path, Err: err}
	}
	return &Error{Kind: KindIO, Op: op, Path: path, Err: err}
}

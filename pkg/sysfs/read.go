// Package sysfs provides typed, bounded access to attributes exposed by the
// kernel through sysfs and procfs.
//
// Every call opens, reads or writes, and closes its own file; nothing is
// cached and nothing is retried.
//
// <https://www.kernel.org/doc/html/latest/filesystems/sysfs.html>
// <https://www.kernel.org/doc/html/latest/admin-guide/sysfs-rules.html>
package sysfs

import (
	"errors"
	"io"
	"strings"
	"unicode/utf8"
)

const (
	// MaxAttrBytes is the largest attribute payload the kernel hands out in
	// a single read. Anything past it is truncated.
	MaxAttrBytes = 1024

	// UnsupportedSentinel is returned by attributes the driver knows about but
	// does not implement on this platform.
	UnsupportedSentinel = "<unsupported>"
)

// ReadText returns the content of path with one trailing newline removed.
// The <unsupported> sentinel is reported as ErrUnsupported.
func ReadText(fsys FileSystem, path string) (string, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return "", classify("read", path, err)
	}
	defer f.Close()

	buf := make([]byte, MaxAttrBytes)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return "", classify("read", path, err)
	}
	buf = buf[:n]
	if !utf8.Valid(buf) {
		return "", &Error{Kind: KindDecode, Op: "read", Path: path,
			Err: &DecodeError{Type: "utf-8 text", Text: string(buf)}}
	}

	text := strings.TrimSuffix(string(buf), "\n")
	if text == UnsupportedSentinel {
		return "", &Error{Kind: KindUnsupported, Op: "read", Path: path}
	}
	return text, nil
}

// Read reads path and decodes it with c.
func Read[T any](fsys FileSystem, path string, c Codec[T]) (T, error) {
	var zero T
	text, err := ReadText(fsys, path)
	if err != nil {
		return zero, err
	}
	v, err := c.Decode(text)
	if err != nil {
		return zero, &Error{Kind: KindDecode, Op: "read", Path: path, Err: err}
	}
	return v, nil
}

package sysfs

import "io"

// WriteText writes text verbatim to an existing path. No terminator is
// added and the value is not read back: drivers may clamp or round it.
func WriteText(fsys FileSystem, path, text string) error {
	f, err := fsys.OpenWrite(path)
	if err != nil {
		return classify("write", path, err)
	}
	if _, err = io.WriteString(f, text); err != nil {
		f.Close()
		return classify("write", path, err)
	}
	if err = f.Close(); err != nil {
		return classify("write", path, err)
	}
	return nil
}

// Write encodes v with c and writes it to path.
func Write[T any](fsys FileSystem, path string, c Codec[T], v T) error {
	text, err := c.Encode(v)
	if err != nil {
		return &Error{Kind: KindInvalidValue, Op: "write", Path: path, Err: err}
	}
	return WriteText(fsys, path, text)
}

package sysfs

import (
	"io"
	"os"
	"path/filepath"
)

// Host is the FileSystem for the running kernel's /sys and /proc.
var Host FileSystem = OSFileSystem{}

// FileSystem abstracts the pseudo-filesystem operations used to access
// attributes. Paths are always absolute kernel paths such as
// /sys/class/power_supply/BAT0/capacity.
type FileSystem interface {
	// Open opens name for reading only.
	Open(name string) (io.ReadCloser, error)
	// OpenWrite opens an existing name for writing only. It never creates.
	OpenWrite(name string) (io.WriteCloser, error)
	ReadDir(name string) ([]os.DirEntry, error)
	Stat(name string) (os.FileInfo, error)
}

// OSFileSystem implements FileSystem with real OS operations. Root, when
// set, is prepended to every path, e.g. "/host" when the host's sysfs is
// mounted into a container, or a temporary directory in tests.
type OSFileSystem struct {
	Root string
}

func (f OSFileSystem) path(name string) string {
	if f.Root == "" || f.Root == "/" {
		return name
	}
	return filepath.Join(f.Root, name)
}

// Open ...
func (f OSFileSystem) Open(name string) (io.ReadCloser, error) {
	return os.OpenFile(f.path(name), os.O_RDONLY, 0)
}

// OpenWrite ...
func (f OSFileSystem) OpenWrite(name string) (io.WriteCloser, error) {
	return os.OpenFile(f.path(name), os.O_WRONLY|os.O_TRUNC, 0)
}

// ReadDir ...
func (f OSFileSystem) ReadDir(name string) ([]os.DirEntry, error) {
	return os.ReadDir(f.path(name))
}

// Stat ...
func (f OSFileSystem) Stat(name string) (os.FileInfo, error) {
	return os.Stat(f.path(name))
}

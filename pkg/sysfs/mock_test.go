package sysfs

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockFileSystem is an expectation based FileSystem for error injection
type MockFileSystem struct {
	openCalls      []OpenCall
	openWriteCalls []OpenWriteCall
	readDirCalls   []ReadDirCall
	currentOpen    int
	currentWrite   int
	currentReadDir int
}

type OpenCall struct {
	expectedPath string
	returnData   []byte
	returnError  error
	readError    error
}

type OpenWriteCall struct {
	expectedPath string
	returnError  error
	writeError   error
	written      *bytes.Buffer
}

type ReadDirCall struct {
	expectedPath string
	returnDirs   []os.DirEntry
	returnError  error
}

func (m *MockFileSystem) ExpectOpen(path string, data []byte, err error) {
	m.openCalls = append(m.openCalls, OpenCall{expectedPath: path, returnData: data, returnError: err})
}

func (m *MockFileSystem) ExpectOpenFailingRead(path string, err error) {
	m.openCalls = append(m.openCalls, OpenCall{expectedPath: path, readError: err})
}

func (m *MockFileSystem) ExpectOpenWrite(path string, err, writeErr error) *bytes.Buffer {
	buf := &bytes.Buffer{}
	m.openWriteCalls = append(m.openWriteCalls, OpenWriteCall{
		expectedPath: path,
		returnError:  err,
		writeError:   writeErr,
		written:      buf,
	})
	return buf
}

func (m *MockFileSystem) ExpectReadDir(path string, dirs []os.DirEntry, err error) {
	m.readDirCalls = append(m.readDirCalls, ReadDirCall{expectedPath: path, returnDirs: dirs, returnError: err})
}

func (m *MockFileSystem) Open(name string) (io.ReadCloser, error) {
	if m.currentOpen >= len(m.openCalls) {
		return nil, errors.New("unexpected Open call")
	}
	call := m.openCalls[m.currentOpen]
	m.currentOpen++
	if call.expectedPath != name {
		return nil, errors.New("Open called with unexpected path " + name)
	}
	if call.returnError != nil {
		return nil, call.returnError
	}
	if call.readError != nil {
		return io.NopCloser(failingReader{call.readError}), nil
	}
	return io.NopCloser(bytes.NewReader(call.returnData)), nil
}

func (m *MockFileSystem) OpenWrite(name string) (io.WriteCloser, error) {
	if m.currentWrite >= len(m.openWriteCalls) {
		return nil, errors.New("unexpected OpenWrite call")
	}
	call := m.openWriteCalls[m.currentWrite]
	m.currentWrite++
	if call.expectedPath != name {
		return nil, errors.New("OpenWrite called with unexpected path " + name)
	}
	if call.returnError != nil {
		return nil, call.returnError
	}
	return &mockWriter{buf: call.written, err: call.writeError}, nil
}

func (m *MockFileSystem) ReadDir(name string) ([]os.DirEntry, error) {
	if m.currentReadDir >= len(m.readDirCalls) {
		return nil, errors.New("unexpected ReadDir call")
	}
	call := m.readDirCalls[m.currentReadDir]
	m.currentReadDir++
	if call.expectedPath != name {
		return nil, errors.New("ReadDir called with unexpected path " + name)
	}
	return call.returnDirs, call.returnError
}

func (m *MockFileSystem) Stat(name string) (os.FileInfo, error) {
	return nil, os.ErrNotExist
}

func (m *MockFileSystem) VerifyAllCalls(t *testing.T) {
	assert.Equal(t, len(m.openCalls), m.currentOpen, "Not all expected Open calls were made")
	assert.Equal(t, len(m.openWriteCalls), m.currentWrite, "Not all expected OpenWrite calls were made")
	assert.Equal(t, len(m.readDirCalls), m.currentReadDir, "Not all expected ReadDir calls were made")
}

type failingReader struct{ err error }

func (r failingReader) Read([]byte) (int, error) { return 0, r.err }

type mockWriter struct {
	buf *bytes.Buffer
	err error
}

func (w *mockWriter) Write(p []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	return w.buf.Write(p)
}

func (w *mockWriter) Close() error { return nil }

// MockDirEntry implements os.DirEntry for testing
type MockDirEntry struct {
	name  string
	isDir bool
	mode  os.FileMode
}

func (m MockDirEntry) Name() string               { return m.name }
func (m MockDirEntry) IsDir() bool                { return m.isDir }
func (m MockDirEntry) Type() os.FileMode          { return m.mode }
func (m MockDirEntry) Info() (os.FileInfo, error) { return nil, nil }

// writeTree creates files (and their parent directories) below root.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		p := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
}

func mkdirs(t *testing.T, root string, dirs ...string) {
	t.Helper()
	for _, d := range dirs {
		require.NoError(t, os.MkdirAll(filepath.Join(root, d), 0o755))
	}
}

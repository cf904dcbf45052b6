package filesystem

import (
	"errors"
	"io/fs"
	"os"
)

// OSFileSystem implements FileSystem using the operating system primitives.
type OSFileSystem struct{}

// Stat retrieves file metadata.
func (OSFileSystem) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// MkdirAll ensures a directory hierarchy exists with the provided permissions.
func (OSFileSystem) MkdirAll(path string, permissions fs.FileMode) error {
	return os.MkdirAll(path, permissions)
}

// WriteFile writes data to a file with the supplied permissions, truncating existing content.
func (OSFileSystem) WriteFile(path string, data []byte, permissions fs.FileMode) error {
	return os.WriteFile(path, data, permissions)
}

// AppendFile appends data to a file, creating it with the supplied permissions when missing.
func (OSFileSystem) AppendFile(path string, data []byte, permissions fs.FileMode) error {
	file, openError := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, permissions)
	if openError != nil {
		return openError
	}
	if _, writeError := file.Write(data); writeError != nil {
		_ = file.Close()
		return writeError
	}
	return file.Close()
}

// RemoveFile deletes a file. A missing file is not an error.
func (OSFileSystem) RemoveFile(path string) error {
	removeError := os.Remove(path)
	if removeError != nil && !errors.Is(removeError, fs.ErrNotExist) {
		return removeError
	}
	return nil
}

package lifecycle

import (
	"io/fs"
	"os"
)

// FS is the slice of the filesystem the manager mutates
type FS interface {
	MkdirAll(path string, perm fs.FileMode) error
	WriteFile(name string, data []byte, perm fs.FileMode) error
	Remove(name string) error
	Stat(name string) (fs.FileInfo, error)
}

// OSFS is the real filesystem
type OSFS struct{}

func (OSFS) MkdirAll(path string, perm fs.FileMode) error { return os.MkdirAll(path, perm) }

func (OSFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(name, data, perm)
}

func (OSFS) Remove(name string) error { return os.Remove(name) }

func (OSFS) Stat(name string) (fs.FileInfo, error) { return os.Stat(name) }

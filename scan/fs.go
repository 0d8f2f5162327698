package scan

import (
	"os"
	"time"
)

// DirEntry is one entry of a directory listing.
type DirEntry struct {
	Name  string
	IsDir bool
}

// FileInfo is the file metadata the scanner needs.
type FileInfo struct {
	ModTime time.Time
	IsDir   bool
}

// FS is the slice of the host's filesystem surface used for counting.
// Implementations must return directory entries in a stable order for a
// fixed filesystem state; no particular order is promised beyond that.
type FS interface {
	ReadFile(path string) ([]byte, error)
	ReadDir(path string) ([]DirEntry, error)
	Stat(path string) (FileInfo, error)
}

// OSFS is the operating-system filesystem.
type OSFS struct{}

// ReadFile reads the whole file.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// ReadDir lists a directory in the order returned by the OS.
func (OSFS) ReadDir(path string) ([]DirEntry, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	out := make([]DirEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, DirEntry{Name: e.Name(), IsDir: e.IsDir()})
	}
	return out, nil
}

// Stat returns metadata for a path.
func (OSFS) Stat(path string) (FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileInfo{}, err
	}
	return FileInfo{ModTime: info.ModTime(), IsDir: info.IsDir()}, nil
}

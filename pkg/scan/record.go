package scan

import (
	"io/fs"
	"path/filepath"
	"strings"
	"time"
)

// Metadata is what the walker could learn about an entry.
// A zero time means the platform did not provide it.
type Metadata struct {
	Size     int64
	Mode     fs.FileMode
	Accessed time.Time
	Created  time.Time
	Modified time.Time
}

// Record is a single scanned filesystem entry.
// Meta is nil when the entry's metadata could not be read.
type Record struct {
	Path  string
	Depth int
	IsDir bool
	Meta  *Metadata
}

func (r Record) Name() string {
	return filepath.Base(r.Path)
}

func (r Record) Parent() string {
	return filepath.Dir(r.Path)
}

// Size is the file length, or 0 for directories and unreadable entries.
func (r Record) Size() int64 {
	if r.IsDir || r.Meta == nil {
		return 0
	}
	return r.Meta.Size
}

// Extension returns the file extension without the dot.
// Dotfiles without a further dot have no extension.
func Extension(name string) string {
	trimmed := strings.TrimLeft(name, ".")
	if trimmed != name && !strings.Contains(trimmed, ".") {
		return ""
	}
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return ""
	}
	return name[i+1:]
}

// IsHidden reports whether a name is a dotfile.
func IsHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}

package scan

import (
	"io/fs"
	"syscall"
	"time"
)

func fileTimes(info fs.FileInfo) (accessed, created time.Time) {
	data, ok := info.Sys().(*syscall.Win32FileAttributeData)
	if !ok {
		return
	}
	return time.Unix(0, data.LastAccessTime.Nanoseconds()), time.Unix(0, data.CreationTime.Nanoseconds())
}

func birthTimeOf(string) time.Time {
	return time.Time{}
}

package fsutils

import "github.com/dustin/go-humanize"

// SizeText returns a human readable size using binary prefixes, e.g. "1.5 KiB".
func SizeText(size int64) string {
	if size < 0 {
		size = 0
	}
	return humanize.IBytes(uint64(size))
}

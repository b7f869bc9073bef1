package scan

import (
	"io/fs"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

// fileTimes returns access time; Linux stat carries no birth time.
func fileTimes(info fs.FileInfo) (accessed, created time.Time) {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return
	}
	sec, nsec := st.Atim.Unix()
	return time.Unix(sec, nsec), time.Time{}
}

func birthTimeOf(path string) time.Time {
	var stx unix.Statx_t
	if err := unix.Statx(unix.AT_FDCWD, path, unix.AT_SYMLINK_NOFOLLOW, unix.STATX_BTIME, &stx); err != nil {
		return time.Time{}
	}
	if stx.Mask&unix.STATX_BTIME == 0 {
		return time.Time{}
	}
	return time.Unix(stx.Btime.Sec, int64(stx.Btime.Nsec))
}

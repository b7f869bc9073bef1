package tree

import (
	"strings"
	"time"

	"github.com/filetug/treetug/pkg/scan"
)

type TimeMode int

const (
	After TimeMode = iota
	Before
)

func (m TimeMode) String() string {
	if m == Before {
		return "before"
	}
	return "after"
}

// TimeFilter keeps files modified at or after (After) or strictly before (Before) Threshold.
type TimeFilter struct {
	Mode      TimeMode
	Threshold time.Time
}

// Matches reports whether t passes the filter. A missing time never passes.
func (f TimeFilter) Matches(t time.Time) bool {
	if t.IsZero() {
		return false
	}
	if f.Mode == Before {
		return t.Before(f.Threshold)
	}
	return !t.Before(f.Threshold)
}

type Options struct {
	FilesOnly bool
	DirsOnly  bool
	// MaxFilesPerDir caps listed files per directory; 0 means no cap.
	MaxFilesPerDir int
	// Exclude holds lowercase extensions without the leading dot.
	Exclude map[string]struct{}
	Time    *TimeFilter
}

// needsPrune reports whether file filters may have emptied directories.
func (o Options) needsPrune() bool {
	return o.Time != nil || len(o.Exclude) > 0
}

// Filter drops records before aggregation: files when DirsOnly is set,
// files with an excluded extension, and files failing the time filter.
// Directories are never dropped here.
func Filter(records []scan.Record, o Options) []scan.Record {
	if !o.DirsOnly && !o.needsPrune() {
		return records
	}
	kept := records[:0:0]
	for _, r := range records {
		if !r.IsDir && !keepFile(r, o) {
			continue
		}
		kept = append(kept, r)
	}
	return kept
}

func keepFile(r scan.Record, o Options) bool {
	if o.DirsOnly {
		return false
	}
	if len(o.Exclude) > 0 {
		if _, excluded := o.Exclude[strings.ToLower(scan.Extension(r.Name()))]; excluded {
			return false
		}
	}
	if o.Time != nil {
		if r.Meta == nil || !o.Time.Matches(r.Meta.Modified) {
			return false
		}
	}
	return true
}

package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/filetug/treetug/pkg/tree"
)

var ErrInvalidTimeFilter = errors.New("invalid time filter")

var dateLayouts = []string{"02-01-2006", "02/01/2006", "2006-01-02"}

const day = 24 * time.Hour

var timeUnits = map[byte]time.Duration{
	's': time.Second,
	'm': time.Minute,
	'h': time.Hour,
	'd': day,
	'w': 7 * day,
	'M': 30 * day,
	'y': 365 * day,
}

// ParseTimeFilter parses "<date", ">date", "date" (after) or a relative age such as "5d".
// Dates use dd-mm-yyyy, dd/mm/yyyy or yyyy-mm-dd at midnight UTC.
// A relative age n<unit> keeps files modified since now minus that age.
func ParseTimeFilter(s string, now time.Time) (tree.TimeFilter, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return tree.TimeFilter{}, fmt.Errorf("%w: empty", ErrInvalidTimeFilter)
	}

	mode, datePart, prefixed := tree.After, s, false
	switch s[0] {
	case '<':
		mode, datePart, prefixed = tree.Before, s[1:], true
	case '>':
		datePart, prefixed = s[1:], true
	}
	for _, layout := range dateLayouts {
		if date, err := time.ParseInLocation(layout, datePart, time.UTC); err == nil {
			return tree.TimeFilter{Mode: mode, Threshold: date}, nil
		}
	}
	if prefixed {
		return tree.TimeFilter{}, fmt.Errorf("%w: date %q, use dd-mm-yyyy, dd/mm/yyyy or yyyy-mm-dd", ErrInvalidTimeFilter, datePart)
	}

	unit, ok := timeUnits[s[len(s)-1]]
	if !ok {
		return tree.TimeFilter{}, fmt.Errorf("%w: %q, use a relative age (5d, 2w, 3M) or a date (dd-mm-yyyy)", ErrInvalidTimeFilter, s)
	}
	n, err := strconv.ParseInt(s[:len(s)-1], 10, 64)
	if err != nil {
		return tree.TimeFilter{}, fmt.Errorf("%w: %q, use a relative age (5d, 2w, 3M) or a date (dd-mm-yyyy)", ErrInvalidTimeFilter, s)
	}
	return tree.TimeFilter{Mode: tree.After, Threshold: now.Add(-time.Duration(n) * unit)}, nil
}

// TimeFilterValue is a pflag.Value holding an optional time filter.
type TimeFilterValue struct {
	raw    string
	filter *tree.TimeFilter
	now    func() time.Time
}

func (v *TimeFilterValue) String() string {
	return v.raw
}

func (v *TimeFilterValue) Set(s string) error {
	now := time.Now
	if v.now != nil {
		now = v.now
	}
	f, err := ParseTimeFilter(s, now())
	if err != nil {
		return err
	}
	v.raw = s
	v.filter = &f
	return nil
}

func (v *TimeFilterValue) Type() string {
	return "filter"
}

// Filter is nil when no time filter was set.
func (v *TimeFilterValue) Filter() *tree.TimeFilter {
	return v.filter
}

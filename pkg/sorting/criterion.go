package sorting

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownCriterion = errors.New("unknown sort criterion")

// Criterion is the primary key entries are ordered by.
type Criterion int

const (
	ByName Criterion = iota
	BySize
	ByAccessed
	ByCreated
	ByModified
	ByExtension
)

var criterionNames = [...]string{
	ByName:      "name",
	BySize:      "size",
	ByAccessed:  "accessed",
	ByCreated:   "created",
	ByModified:  "modified",
	ByExtension: "extension",
}

func (c Criterion) String() string {
	if c < 0 || int(c) >= len(criterionNames) {
		return fmt.Sprintf("Criterion(%d)", int(c))
	}
	return criterionNames[c]
}

// ParseCriterion accepts a criterion name, case-insensitively.
func ParseCriterion(s string) (Criterion, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range criterionNames {
		if name == s {
			return Criterion(i), nil
		}
	}
	return ByName, fmt.Errorf("%w: %q (expected one of %s)", ErrUnknownCriterion, s, strings.Join(criterionNames[:], ", "))
}

// Set implements pflag.Value.
func (c *Criterion) Set(s string) error {
	v, err := ParseCriterion(s)
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// Type implements pflag.Value.
func (c *Criterion) Type() string {
	return "criterion"
}

func (c Criterion) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Criterion) UnmarshalText(text []byte) error {
	return c.Set(string(text))
}

// Package sorting orders scanned records, either as one flat list
// or sibling group by sibling group while keeping the tree shape.
package sorting

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/filetug/treetug/pkg/scan"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type Options struct {
	Criterion        Criterion
	DirectoriesFirst bool
	// DotfilesFirst takes precedence over DirectoriesFirst.
	DotfilesFirst bool
	CaseSensitive bool
	NaturalSort   bool
	Reverse       bool
}

type sortKey struct {
	isDir    bool
	isDot    bool
	size     int64
	accessed time.Time
	created  time.Time
	modified time.Time
	name     string
	ext      string
}

func newKey(r scan.Record, o Options, caser cases.Caser) sortKey {
	name := r.Name()
	k := sortKey{
		isDir: r.IsDir,
		isDot: strings.HasPrefix(name, "."),
		size:  r.Size(),
		name:  name,
	}
	if r.Meta != nil {
		k.accessed = r.Meta.Accessed
		k.created = r.Meta.Created
		k.modified = r.Meta.Modified
	}
	if o.Criterion == ByExtension {
		k.ext = scan.Extension(name)
		if !o.CaseSensitive {
			k.ext = caser.String(k.ext)
		}
	}
	if !o.CaseSensitive && !o.NaturalSort {
		k.name = caser.String(name)
	}
	return k
}

func newCaser() cases.Caser {
	return cases.Lower(language.Und)
}

// Compare orders a before b (negative), after b (positive) or as equal (zero).
// Reverse is applied to the result.
func Compare(a, b scan.Record, o Options) int {
	caser := newCaser()
	ka, kb := newKey(a, o, caser), newKey(b, o, caser)
	c := compareKeys(&ka, &kb, o)
	if o.Reverse {
		return -c
	}
	return c
}

func compareKeys(a, b *sortKey, o Options) int {
	if c := compareCategories(a, b, o); c != 0 {
		return c
	}
	switch o.Criterion {
	case BySize:
		return cmp.Compare(a.size, b.size)
	case ByAccessed:
		return compareTimes(a.accessed, b.accessed)
	case ByCreated:
		return compareTimes(a.created, b.created)
	case ByModified:
		return compareTimes(a.modified, b.modified)
	case ByExtension:
		if c := strings.Compare(a.ext, b.ext); c != 0 {
			return c
		}
		return compareNames(a.name, b.name, o)
	default:
		return compareNames(a.name, b.name, o)
	}
}

// compareCategories applies the pre-order: with DotfilesFirst it is
// dot-directory, directory, dotfile, file; with DirectoriesFirst directories lead.
func compareCategories(a, b *sortKey, o Options) int {
	switch {
	case o.DotfilesFirst:
		return cmp.Compare(categoryRank(a), categoryRank(b))
	case o.DirectoriesFirst:
		if a.isDir == b.isDir {
			return 0
		}
		if a.isDir {
			return -1
		}
		return 1
	}
	return 0
}

func categoryRank(k *sortKey) int {
	switch {
	case k.isDot && k.isDir:
		return 0
	case k.isDir:
		return 1
	case k.isDot:
		return 2
	default:
		return 3
	}
}

// names are already lowercased by newKey when the comparison is case-insensitive
func compareNames(a, b string, o Options) int {
	if o.NaturalSort {
		return NaturalCompare(a, b)
	}
	return strings.Compare(a, b)
}

// compareTimes puts newer first and missing times last.
func compareTimes(a, b time.Time) int {
	switch {
	case a.IsZero() && b.IsZero():
		return 0
	case a.IsZero():
		return 1
	case b.IsZero():
		return -1
	}
	return b.Compare(a)
}

// Sort orders records in place. Ties keep their input order; Reverse
// reverses the complete resulting order.
func Sort(records []scan.Record, o Options) {
	if len(records) <= 1 {
		return
	}
	caser := newCaser()
	keys := make([]sortKey, len(records))
	for i, r := range records {
		keys[i] = newKey(r, o, caser)
	}
	indices := make([]int, len(records))
	for i := range indices {
		indices[i] = i
	}
	slices.SortStableFunc(indices, func(a, b int) int {
		return compareKeys(&keys[a], &keys[b], o)
	})
	if o.Reverse {
		slices.Reverse(indices)
	}
	applyPermutation(records, indices)
}

// applyPermutation moves records[indices[k]] to position k by following cycles.
func applyPermutation[T any](items []T, indices []int) {
	visited := make([]bool, len(items))
	for start := range items {
		if visited[start] {
			continue
		}
		current := start
		next := indices[current]
		for next != start {
			items[current], items[next] = items[next], items[current]
			visited[current] = true
			current = next
			next = indices[current]
		}
		visited[current] = true
	}
}

// SortHierarchically sorts every sibling group independently and
// re-emits the tree in depth-first pre-order starting from depth-1 records.
func SortHierarchically(records []scan.Record, o Options) []scan.Record {
	if len(records) <= 1 {
		return records
	}
	children := make(map[string][]scan.Record, len(records)/2)
	var roots []scan.Record
	for _, r := range records {
		if r.Depth == 1 {
			roots = append(roots, r)
			continue
		}
		parent := r.Parent()
		children[parent] = append(children[parent], r)
	}
	for _, group := range children {
		Sort(group, o)
	}
	Sort(roots, o)

	result := make([]scan.Record, 0, len(records))
	var emit func(r scan.Record)
	emit = func(r scan.Record) {
		result = append(result, r)
		if !r.IsDir {
			return
		}
		group, ok := children[r.Path]
		if !ok {
			return
		}
		delete(children, r.Path)
		for _, child := range group {
			emit(child)
		}
	}
	for _, r := range roots {
		emit(r)
	}

	if len(children) > 0 {
		// records whose parent was never emitted keep their input order at the end
		for _, r := range records {
			if r.Depth == 1 {
				continue
			}
			if _, orphan := children[r.Parent()]; orphan {
				result = append(result, r)
			}
		}
	}
	return result
}

// Package tree turns scanned records into a linearized, aggregated tree.
package tree

import (
	"path/filepath"
	"time"
)

const (
	ConnectorMiddle = "├──"
	ConnectorLast   = "└──"
)

// Entry is one row of the linearized tree.
// For directories Size, Dirs and Files are recursive totals.
type Entry struct {
	Path        string
	Depth       int
	IsDir       bool
	Connector   string
	Size        int64
	Dirs        int64
	Files       int64
	Modified    time.Time
	Permissions string
	Icon        string
}

func (e Entry) Name() string {
	return filepath.Base(e.Path)
}

func (e Entry) Parent() string {
	return filepath.Dir(e.Path)
}

// IsLast reports whether no later sibling follows this entry.
func (e Entry) IsLast() bool {
	return e.Connector == ConnectorLast
}

type Tree struct {
	// Root is the scan root with totals over everything scanned below it.
	Root    Entry
	Entries []Entry

	depthIndex map[int][]int
}

func (t *Tree) Len() int {
	return len(t.Entries)
}

// EntriesAtDepth returns indexes into Entries of rows at the given depth, in list order.
func (t *Tree) EntriesAtDepth(depth int) []int {
	if t.depthIndex == nil {
		t.reindex()
	}
	return t.depthIndex[depth]
}

func (t *Tree) reindex() {
	t.depthIndex = make(map[int][]int)
	for i, e := range t.Entries {
		t.depthIndex[e.Depth] = append(t.depthIndex[e.Depth], i)
	}
}

// relink recomputes connectors and the depth index after entries changed.
func (t *Tree) relink() {
	assignConnectors(t.Entries)
	t.reindex()
}

// assignConnectors marks an entry last when no later entry shares its parent and depth.
func assignConnectors(entries []Entry) {
	type sibling struct {
		parent string
		depth  int
	}
	seen := make(map[sibling]struct{}, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		key := sibling{parent: entries[i].Parent(), depth: entries[i].Depth}
		if _, ok := seen[key]; ok {
			entries[i].Connector = ConnectorMiddle
			continue
		}
		seen[key] = struct{}{}
		entries[i].Connector = ConnectorLast
	}
}

// DirectChildren sums the depth-1 rows: size, directory count and file count.
func (t *Tree) DirectChildren() (size, dirs, files int64) {
	for _, i := range t.EntriesAtDepth(1) {
		e := t.Entries[i]
		size += e.Size
		if e.IsDir {
			dirs++
		} else {
			files++
		}
	}
	return
}

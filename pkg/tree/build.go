package tree

import (
	"cmp"
	"slices"

	"github.com/filetug/treetug/pkg/fsutils"
	"github.com/filetug/treetug/pkg/scan"
)

type aggregate struct {
	size  int64
	dirs  int64
	files int64
}

// Build aggregates records under root and linearizes them into rows in the order given.
// Every scanned descendant counts towards its ancestors' totals, including files
// later hidden by the per-directory cap. Totals do not depend on the record order,
// so a flat sort may place a directory after its own children.
func Build(root string, records []scan.Record, o Options) *Tree {
	infos := make(map[string]*aggregate, len(records)+1)
	infos[root] = &aggregate{}
	for _, r := range records {
		if r.IsDir {
			infos[r.Path] = &aggregate{}
		} else {
			infos[r.Path] = &aggregate{files: 1, size: r.Size()}
		}
	}

	// deepest first: every child is folded before its parent passes its
	// subtotal upwards
	for _, i := range foldOrder(records) {
		r := records[i]
		info := infos[r.Path]
		parentPath := r.Parent()
		parent, ok := infos[parentPath]
		if !ok {
			parent = &aggregate{}
			infos[parentPath] = parent
		}
		if r.IsDir {
			parent.dirs++
		}
		parent.dirs += info.dirs
		parent.files += info.files
		parent.size += info.size
	}

	entries := make([]Entry, 0, len(records))
	listedFiles := make(map[string]int)
	for _, r := range records {
		switch {
		case o.FilesOnly && r.IsDir:
			continue
		case o.DirsOnly && !r.IsDir:
			continue
		}
		if !r.IsDir && o.MaxFilesPerDir > 0 {
			parent := r.Parent()
			if listedFiles[parent] >= o.MaxFilesPerDir {
				continue
			}
			listedFiles[parent]++
		}

		info := infos[r.Path]
		e := Entry{
			Path:        r.Path,
			Depth:       r.Depth,
			IsDir:       r.IsDir,
			Size:        info.size,
			Dirs:        info.dirs,
			Files:       info.files,
			Permissions: permissions(r),
		}
		if o.FilesOnly {
			e.Depth = 1
		}
		if r.Meta != nil {
			e.Modified = r.Meta.Modified
		}
		entries = append(entries, e)
	}

	rootInfo := infos[root]
	t := &Tree{
		Root: Entry{
			Path:        root,
			IsDir:       true,
			Connector:   ConnectorLast,
			Size:        rootInfo.size,
			Dirs:        rootInfo.dirs,
			Files:       rootInfo.files,
			Permissions: fsutils.NoPermissions,
		},
		Entries: entries,
	}
	t.relink()
	return t
}

// foldOrder returns record indices by decreasing depth. For pre-order input
// this is the reverse order within each depth.
func foldOrder(records []scan.Record) []int {
	order := make([]int, len(records))
	for i := range order {
		order[i] = len(records) - 1 - i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(records[b].Depth, records[a].Depth)
	})
	return order
}

func permissions(r scan.Record) string {
	if r.Meta == nil {
		return fsutils.NoPermissions
	}
	return fsutils.PermissionsText(r.Meta.Mode, true)
}

package tree

import (
	"context"
	"os"

	"github.com/filetug/treetug/pkg/fsutils"
	"github.com/filetug/treetug/pkg/icons"
	"github.com/filetug/treetug/pkg/scan"
	"github.com/filetug/treetug/pkg/sorting"
	"github.com/rs/zerolog/log"
)

// Stage transforms a built tree. Stages run in the order given.
type Stage func(*Tree) *Tree

type PrepareOptions struct {
	Root   string
	Scan   scan.Options
	Sort   sorting.Options
	Tree   Options
	Stages []Stage
}

// Prepare scans, filters, sorts, aggregates and prunes, then applies the stages.
func Prepare(ctx context.Context, o PrepareOptions) (*Tree, error) {
	if o.Sort.Criterion == sorting.ByCreated {
		o.Scan.BirthTime = true
	}
	root, records, err := scan.Walk(ctx, o.Root, o.Scan)
	if err != nil {
		return nil, err
	}
	records = Filter(records, o.Tree)
	if o.Tree.FilesOnly {
		sorting.Sort(records, o.Sort)
	} else {
		records = sorting.SortHierarchically(records, o.Sort)
	}

	t := Build(root, records, o.Tree)
	// with DirsOnly every file is gone already, pruning would empty the tree
	if o.Tree.needsPrune() && !o.Tree.DirsOnly {
		t = PruneEmptyDirs(t)
	}
	t.Root.Permissions = rootPermissions(root)
	for _, stage := range o.Stages {
		t = stage(t)
	}
	log.Debug().Str("root", root).Int("entries", t.Len()).Int64("files", t.Root.Files).Msg("tree prepared")
	return t, nil
}

func rootPermissions(root string) string {
	info, err := os.Stat(root)
	if err != nil {
		return fsutils.NoPermissions
	}
	return fsutils.PermissionsText(info.Mode(), true)
}

// WithIcons fills Entry.Icon for the root and every row.
func WithIcons(t *Tree) *Tree {
	t.Root.Icon = icons.For(t.Root.Name(), true)
	for i := range t.Entries {
		t.Entries[i].Icon = icons.For(t.Entries[i].Name(), t.Entries[i].IsDir)
	}
	return t
}


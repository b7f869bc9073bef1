package tree

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/filetug/treetug/pkg/icons"
	"github.com/filetug/treetug/pkg/scan"
	"github.com/filetug/treetug/pkg/sorting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRoot = filepath.FromSlash("/r")

func file(rel string, size int64) scan.Record {
	return record(rel, false, &scan.Metadata{Size: size, Mode: 0o644})
}

func dir(rel string) scan.Record {
	return record(rel, true, &scan.Metadata{Mode: os.ModeDir | 0o755})
}

func record(rel string, isDir bool, meta *scan.Metadata) scan.Record {
	rel = filepath.FromSlash(rel)
	depth := 1
	for _, c := range rel {
		if c == filepath.Separator {
			depth++
		}
	}
	return scan.Record{Path: filepath.Join(testRoot, rel), Depth: depth, IsDir: isDir, Meta: meta}
}

func rels(entries []Entry) []string {
	result := make([]string, 0, len(entries))
	for _, e := range entries {
		rel, _ := filepath.Rel(testRoot, e.Path)
		result = append(result, filepath.ToSlash(rel))
	}
	return result
}

func find(t *testing.T, tr *Tree, rel string) Entry {
	t.Helper()
	p := filepath.Join(testRoot, filepath.FromSlash(rel))
	for _, e := range tr.Entries {
		if e.Path == p {
			return e
		}
	}
	t.Fatalf("entry %s not found", rel)
	return Entry{}
}

// sample is already in pre-order.
func sample() []scan.Record {
	return []scan.Record{
		dir("a"),
		dir("a/b"),
		file("a/b/c.txt", 10),
		file("a/d.go", 5),
		dir("e"),
		file("f.txt", 3),
	}
}

func TestBuild(t *testing.T) {
	t.Parallel()

	t.Run("aggregates", func(t *testing.T) {
		t.Parallel()
		tr := Build(testRoot, sample(), Options{})
		assert.Equal(t, []string{"a", "a/b", "a/b/c.txt", "a/d.go", "e", "f.txt"}, rels(tr.Entries))

		a := find(t, tr, "a")
		assert.Equal(t, int64(15), a.Size)
		assert.Equal(t, int64(2), a.Files)
		assert.Equal(t, int64(1), a.Dirs)

		b := find(t, tr, "a/b")
		assert.Equal(t, int64(10), b.Size)
		assert.Equal(t, int64(1), b.Files)
		assert.Equal(t, int64(0), b.Dirs)

		e := find(t, tr, "e")
		assert.Equal(t, int64(0), e.Size)
		assert.Equal(t, int64(0), e.Files)

		assert.Equal(t, int64(18), tr.Root.Size)
		assert.Equal(t, int64(3), tr.Root.Files)
		assert.Equal(t, int64(3), tr.Root.Dirs)
	})

	t.Run("connectors", func(t *testing.T) {
		t.Parallel()
		tr := Build(testRoot, sample(), Options{})
		var connectors []string
		for _, e := range tr.Entries {
			connectors = append(connectors, e.Connector)
		}
		assert.Equal(t, []string{
			ConnectorMiddle, // a
			ConnectorMiddle, // a/b
			ConnectorLast,   // a/b/c.txt
			ConnectorLast,   // a/d.go
			ConnectorMiddle, // e
			ConnectorLast,   // f.txt
		}, connectors)
	})

	t.Run("depth_index", func(t *testing.T) {
		t.Parallel()
		tr := Build(testRoot, sample(), Options{})
		assert.Equal(t, []int{0, 4, 5}, tr.EntriesAtDepth(1))
		assert.Equal(t, []int{1, 3}, tr.EntriesAtDepth(2))
		assert.Equal(t, []int{2}, tr.EntriesAtDepth(3))
		assert.Empty(t, tr.EntriesAtDepth(4))
		size, dirs, files := tr.DirectChildren()
		assert.Equal(t, int64(18), size)
		assert.Equal(t, int64(2), dirs)
		assert.Equal(t, int64(1), files)
	})

	t.Run("files_only", func(t *testing.T) {
		t.Parallel()
		tr := Build(testRoot, sample(), Options{FilesOnly: true})
		assert.Equal(t, []string{"a/b/c.txt", "a/d.go", "f.txt"}, rels(tr.Entries))
		for _, e := range tr.Entries {
			assert.Equal(t, 1, e.Depth)
			assert.Equal(t, ConnectorLast, e.Connector, "each file is the last listed child of its own parent")
		}
	})

	t.Run("files_only_flat_sorted", func(t *testing.T) {
		t.Parallel()
		records := []scan.Record{
			dir("dir1"),
			file("dir1/b.txt", 20),
			file("a.txt", 10),
		}
		sorting.Sort(records, sorting.Options{})
		require.Equal(t, "a.txt", records[0].Name())

		tr := Build(testRoot, records, Options{FilesOnly: true})
		assert.Equal(t, []string{"a.txt", "dir1/b.txt"}, rels(tr.Entries))
		assert.Equal(t, int64(30), tr.Root.Size)
		assert.Equal(t, int64(2), tr.Root.Files)
		assert.Equal(t, int64(1), tr.Root.Dirs)
	})

	t.Run("order_independent_totals", func(t *testing.T) {
		t.Parallel()
		records := sample()
		slices.Reverse(records)
		tr := Build(testRoot, records, Options{})
		a := find(t, tr, "a")
		assert.Equal(t, int64(15), a.Size)
		assert.Equal(t, int64(2), a.Files)
		assert.Equal(t, int64(1), a.Dirs)
		assert.Equal(t, int64(18), tr.Root.Size)
		assert.Equal(t, int64(3), tr.Root.Files)
		assert.Equal(t, int64(3), tr.Root.Dirs)
	})

	t.Run("dirs_only", func(t *testing.T) {
		t.Parallel()
		tr := Build(testRoot, sample(), Options{DirsOnly: true})
		assert.Equal(t, []string{"a", "a/b", "e"}, rels(tr.Entries))
		assert.Equal(t, ConnectorLast, find(t, tr, "e").Connector)
	})

	t.Run("files_cap_keeps_totals", func(t *testing.T) {
		t.Parallel()
		records := []scan.Record{
			dir("d"),
			file("d/1", 5),
			file("d/2", 5),
			file("d/3", 5),
		}
		tr := Build(testRoot, records, Options{MaxFilesPerDir: 1})
		assert.Equal(t, []string{"d", "d/1"}, rels(tr.Entries))
		d := find(t, tr, "d")
		assert.Equal(t, int64(15), d.Size)
		assert.Equal(t, int64(3), d.Files)
		assert.Equal(t, ConnectorLast, find(t, tr, "d/1").Connector)
	})

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		tr := Build(testRoot, nil, Options{})
		assert.Equal(t, 0, tr.Len())
		assert.Equal(t, int64(0), tr.Root.Size)
	})

	t.Run("missing_parent_is_zeroed", func(t *testing.T) {
		t.Parallel()
		tr := Build(testRoot, []scan.Record{file("ghost/x", 4)}, Options{})
		assert.Equal(t, 1, tr.Len())
		assert.Equal(t, int64(0), tr.Root.Size)
	})

	t.Run("permissions", func(t *testing.T) {
		t.Parallel()
		records := []scan.Record{dir("a"), record("a/x", false, nil)}
		tr := Build(testRoot, records, Options{})
		assert.Equal(t, "drwxr-xr-x", find(t, tr, "a").Permissions)
		assert.Equal(t, "----------", find(t, tr, "a/x").Permissions)
	})
}

func TestFilter(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	modified := func(rel string, ts time.Time) scan.Record {
		return record(rel, false, &scan.Metadata{Modified: ts})
	}
	records := []scan.Record{
		dir("d"),
		modified("d/new.go", now),
		modified("d/old.go", now.Add(-72*time.Hour)),
		modified("d/new.LOG", now),
		record("d/unknown.go", false, nil),
	}

	t.Run("no_filters", func(t *testing.T) {
		assert.Len(t, Filter(records, Options{}), len(records))
	})
	t.Run("dirs_only", func(t *testing.T) {
		assert.Equal(t, []string{"d"}, recordRels(Filter(records, Options{DirsOnly: true})))
	})
	t.Run("exclude", func(t *testing.T) {
		kept := Filter(records, Options{Exclude: map[string]struct{}{"log": {}}})
		assert.Equal(t, []string{"d", "d/new.go", "d/old.go", "d/unknown.go"}, recordRels(kept))
	})
	t.Run("after", func(t *testing.T) {
		kept := Filter(records, Options{Time: &TimeFilter{Mode: After, Threshold: now.Add(-24 * time.Hour)}})
		assert.Equal(t, []string{"d", "d/new.go", "d/new.LOG"}, recordRels(kept))
	})
	t.Run("before", func(t *testing.T) {
		kept := Filter(records, Options{Time: &TimeFilter{Mode: Before, Threshold: now.Add(-24 * time.Hour)}})
		assert.Equal(t, []string{"d", "d/old.go"}, recordRels(kept))
	})
}

func recordRels(records []scan.Record) []string {
	result := make([]string, 0, len(records))
	for _, r := range records {
		rel, _ := filepath.Rel(testRoot, r.Path)
		result = append(result, filepath.ToSlash(rel))
	}
	return result
}

func TestTimeFilterMatches(t *testing.T) {
	t.Parallel()
	threshold := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	after := TimeFilter{Mode: After, Threshold: threshold}
	before := TimeFilter{Mode: Before, Threshold: threshold}

	assert.True(t, after.Matches(threshold))
	assert.True(t, after.Matches(threshold.Add(time.Second)))
	assert.False(t, after.Matches(threshold.Add(-time.Second)))
	assert.False(t, before.Matches(threshold))
	assert.True(t, before.Matches(threshold.Add(-time.Second)))
	assert.False(t, after.Matches(time.Time{}))
	assert.False(t, before.Matches(time.Time{}))
	assert.Equal(t, "before", Before.String())
	assert.Equal(t, "after", After.String())
}

func TestPruneEmptyDirs(t *testing.T) {
	t.Parallel()
	records := []scan.Record{
		dir("a"),
		dir("a/empty"),
		dir("a/full"),
		file("a/full/x.go", 1),
		dir("b"),
		dir("b/c"),
		file("z.go", 1),
	}
	tr := PruneEmptyDirs(Build(testRoot, records, Options{}))
	assert.Equal(t, []string{"a", "a/full", "a/full/x.go", "z.go"}, rels(tr.Entries))
	assert.Equal(t, ConnectorLast, find(t, tr, "a/full").Connector)
	assert.Equal(t, []int{0, 3}, tr.EntriesAtDepth(1))

	for _, d := range tr.Entries {
		if !d.IsDir {
			continue
		}
		hasFile := false
		for _, other := range tr.Entries {
			if !other.IsDir && isBelow(other.Path, d.Path) {
				hasFile = true
				break
			}
		}
		assert.True(t, hasFile, d.Path)
	}
}

func isBelow(p, dir string) bool {
	rel, err := filepath.Rel(dir, p)
	return err == nil && rel != "." && rel[0] != '.'
}

func writeFile(t *testing.T, root, rel string, content string, mtime time.Time) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	require.NoError(t, os.Chtimes(full, mtime, mtime))
}

func TestPrepare(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	now := time.Now()
	old := now.Add(-30 * 24 * time.Hour)
	writeFile(t, root, "src/main.go", "package main", now)
	writeFile(t, root, "src/util/old.go", "old", old)
	writeFile(t, root, "docs/readme.md", "hello", old)
	writeFile(t, root, "Zeta.txt", "zz", now)

	t.Run("default", func(t *testing.T) {
		t.Parallel()
		tr, err := Prepare(context.Background(), PrepareOptions{Root: root})
		require.NoError(t, err)
		var names []string
		for _, e := range tr.Entries {
			names = append(names, e.Name())
		}
		assert.Equal(t, []string{"docs", "readme.md", "src", "main.go", "util", "old.go", "Zeta.txt"}, names)
		assert.Equal(t, int64(len("package main")+len("old")+len("hello")+len("zz")), tr.Root.Size)
		assert.NotEqual(t, "----------", tr.Root.Permissions)
	})

	t.Run("time_filter_prunes", func(t *testing.T) {
		t.Parallel()
		tr, err := Prepare(context.Background(), PrepareOptions{
			Root: root,
			Tree: Options{Time: &TimeFilter{Mode: After, Threshold: now.Add(-time.Hour)}},
		})
		require.NoError(t, err)
		var names []string
		for _, e := range tr.Entries {
			names = append(names, e.Name())
		}
		assert.Equal(t, []string{"src", "main.go", "Zeta.txt"}, names)
	})

	t.Run("dirs_only_with_file_filters", func(t *testing.T) {
		t.Parallel()
		tr, err := Prepare(context.Background(), PrepareOptions{
			Root: root,
			Tree: Options{
				DirsOnly: true,
				Exclude:  map[string]struct{}{"go": {}},
				Time:     &TimeFilter{Mode: After, Threshold: now.Add(-time.Hour)},
			},
		})
		require.NoError(t, err)
		var names []string
		for _, e := range tr.Entries {
			names = append(names, e.Name())
		}
		assert.Equal(t, []string{"docs", "src", "util"}, names)
	})

	t.Run("files_only_flat_sort", func(t *testing.T) {
		t.Parallel()
		tr, err := Prepare(context.Background(), PrepareOptions{
			Root: root,
			Tree: Options{FilesOnly: true},
			Sort: sorting.Options{Criterion: sorting.BySize},
		})
		require.NoError(t, err)
		var names []string
		for _, e := range tr.Entries {
			names = append(names, e.Name())
			assert.Equal(t, 1, e.Depth)
		}
		assert.Equal(t, []string{"Zeta.txt", "old.go", "readme.md", "main.go"}, names)
		assert.Equal(t, int64(len("package main")+len("old")+len("hello")+len("zz")), tr.Root.Size)
		assert.Equal(t, int64(4), tr.Root.Files)
		assert.Equal(t, int64(3), tr.Root.Dirs)
	})

	t.Run("stages_in_order", func(t *testing.T) {
		t.Parallel()
		var calls []string
		first := func(tr *Tree) *Tree { calls = append(calls, "first"); return tr }
		second := func(tr *Tree) *Tree { calls = append(calls, "second"); return tr }
		tr, err := Prepare(context.Background(), PrepareOptions{Root: root, Stages: []Stage{first, WithIcons, second}})
		require.NoError(t, err)
		assert.Equal(t, []string{"first", "second"}, calls)
		assert.Equal(t, icons.Directory, tr.Root.Icon)
		for _, e := range tr.Entries {
			assert.NotEmpty(t, e.Icon)
		}
	})

	t.Run("not_a_directory", func(t *testing.T) {
		t.Parallel()
		_, err := Prepare(context.Background(), PrepareOptions{Root: filepath.Join(root, "Zeta.txt")})
		assert.ErrorIs(t, err, scan.ErrNotDirectory)
	})
}

package tree

import "path/filepath"

// PruneEmptyDirs removes directories that have no file among their listed descendants.
func PruneEmptyDirs(t *Tree) *Tree {
	marked := make(map[string]struct{})
	for _, e := range t.Entries {
		if e.IsDir {
			continue
		}
		for dir := e.Parent(); dir != t.Root.Path; {
			if _, done := marked[dir]; done {
				break
			}
			marked[dir] = struct{}{}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	kept := t.Entries[:0:0]
	for _, e := range t.Entries {
		if e.IsDir {
			if _, ok := marked[e.Path]; !ok {
				continue
			}
		}
		kept = append(kept, e)
	}
	t.Entries = kept
	t.relink()
	return t
}

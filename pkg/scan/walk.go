// Package scan walks a directory tree and produces ordered entry records.
package scan

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"
	"github.com/filetug/treetug/pkg/fsutils"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"github.com/rs/zerolog/log"
)

var ErrNotDirectory = errors.New("not a directory")

type Options struct {
	ShowHidden    bool
	RespectIgnore bool
	// MaxDepth limits descent; 0 means unlimited.
	MaxDepth int
	// BirthTime asks for creation times where the platform needs an extra syscall.
	BirthTime bool
	// OnEntry is called once per emitted record.
	OnEntry func(path string)
}

// CheckRoot canonicalizes root and verifies that it is a directory.
func CheckRoot(root string) (string, error) {
	canonical := fsutils.Canonicalize(root)
	info, err := os.Stat(canonical)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("'%s' is %w", root, ErrNotDirectory)
	}
	return canonical, nil
}

// Walk scans root and returns its canonical path and the records below it
// in depth-first pre-order: every directory precedes its descendants.
func Walk(ctx context.Context, root string, opts Options) (string, []Record, error) {
	rootPath, err := CheckRoot(root)
	if err != nil {
		return "", nil, err
	}

	var matcher gitignore.Matcher
	if opts.RespectIgnore {
		matcher = loadIgnoreMatcher(rootPath)
	}

	var (
		mu      sync.Mutex
		records []Record
	)
	conf := &fastwalk.Config{Follow: false}
	err = fastwalk.Walk(conf, rootPath, func(fullPath string, d fs.DirEntry, err error) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			if fullPath == rootPath {
				return err
			}
			log.Debug().Err(err).Str("path", fullPath).Msg("walk error")
			return nil
		}
		if fullPath == rootPath {
			return nil
		}

		rel, relErr := filepath.Rel(rootPath, fullPath)
		if relErr != nil {
			return nil
		}
		name := d.Name()
		isDir := d.IsDir()

		if !opts.ShowHidden && IsHidden(name) {
			return skip(isDir)
		}
		if opts.RespectIgnore {
			if isDir && name == gitDir {
				return fastwalk.SkipDir
			}
			if isIgnoredPath(rel, isDir, matcher) {
				return skip(isDir)
			}
		}

		depth := strings.Count(rel, string(filepath.Separator)) + 1
		record := Record{
			Path:  fullPath,
			Depth: depth,
			IsDir: isDir,
			Meta:  readMetadata(fullPath, d, opts.BirthTime),
		}

		mu.Lock()
		records = append(records, record)
		if opts.OnEntry != nil {
			opts.OnEntry(fullPath)
		}
		mu.Unlock()

		if isDir && opts.MaxDepth > 0 && depth >= opts.MaxDepth {
			return fastwalk.SkipDir
		}
		return nil
	})
	if err != nil {
		return "", nil, fmt.Errorf("failed to walk %s: %w", rootPath, err)
	}

	SortTreeOrder(records)
	return rootPath, records, nil
}

func skip(isDir bool) error {
	if isDir {
		return fastwalk.SkipDir
	}
	return nil
}

func readMetadata(path string, d fs.DirEntry, birthTime bool) *Metadata {
	info, err := fastwalk.StatDirEntry(path, d)
	if err != nil {
		log.Debug().Err(err).Str("path", path).Msg("unreadable metadata")
		return nil
	}
	meta := &Metadata{
		Size:     info.Size(),
		Mode:     info.Mode(),
		Modified: info.ModTime(),
	}
	meta.Accessed, meta.Created = fileTimes(info)
	if birthTime && meta.Created.IsZero() {
		meta.Created = birthTimeOf(path)
	}
	return meta
}

// SortTreeOrder orders records so that a parent precedes its children and
// siblings' subtrees stay contiguous. Separators sort before any other byte.
func SortTreeOrder(records []Record) {
	slices.SortStableFunc(records, func(a, b Record) int {
		return compareTreeOrder(a.Path, b.Path)
	})
}

func compareTreeOrder(a, b string) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		ca, cb := a[i], b[i]
		if ca == cb {
			continue
		}
		if os.IsPathSeparator(ca) {
			return -1
		}
		if os.IsPathSeparator(cb) {
			return 1
		}
		if ca < cb {
			return -1
		}
		return 1
	}
	return len(a) - len(b)
}

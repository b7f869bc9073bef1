// Package config holds the command line options, their conversion into
// component options, and config file loading.
package config

import (
	"errors"

	"github.com/filetug/treetug/pkg/scan"
	"github.com/filetug/treetug/pkg/sorting"
	"github.com/filetug/treetug/pkg/tree"
)

type Options struct {
	Path        string
	Interactive bool
	Watch       bool
	Config      string

	Out     string
	OutFile string

	DirsOnly    bool
	FilesOnly   bool
	All         bool
	Gitignore   bool
	Exclude     string
	Time        TimeFilterValue
	ExpandLevel int
	Level       int
	Files       int

	Sort          sorting.Criterion
	Reverse       bool
	DirsFirst     bool
	CaseSensitive bool
	NaturalSort   bool
	DotfilesFirst bool

	Hyperlinks  bool
	Icons       bool
	Size        bool
	Permissions bool
	Info        bool
	Stats       bool

	Verbose bool
	LogFile string
}

func Defaults() Options {
	return Options{
		Path:    ".",
		OutFile: "-",
		Stats:   true,
	}
}

func (o *Options) ScanOptions() scan.Options {
	return scan.Options{
		ShowHidden:    o.All,
		RespectIgnore: o.Gitignore,
		MaxDepth:      o.Level,
	}
}

func (o *Options) SortOptions() sorting.Options {
	return sorting.Options{
		Criterion:        o.Sort,
		DirectoriesFirst: o.DirsFirst,
		DotfilesFirst:    o.DotfilesFirst,
		CaseSensitive:    o.CaseSensitive,
		NaturalSort:      o.NaturalSort,
		Reverse:          o.Reverse,
	}
}

func (o *Options) TreeOptions() tree.Options {
	return tree.Options{
		FilesOnly:      o.FilesOnly,
		DirsOnly:       o.DirsOnly,
		MaxFilesPerDir: o.Files,
		Exclude:        ParseExtensions(o.Exclude),
		Time:           o.Time.Filter(),
	}
}

// PrepareOptions assembles the full tree pipeline for these options.
func (o *Options) PrepareOptions() tree.PrepareOptions {
	var stages []tree.Stage
	if o.Icons {
		stages = append(stages, tree.WithIcons)
	}
	return tree.PrepareOptions{
		Root:   o.Path,
		Scan:   o.ScanOptions(),
		Sort:   o.SortOptions(),
		Tree:   o.TreeOptions(),
		Stages: stages,
	}
}

// WatchRecursive reports whether the watcher should cover the whole tree.
// A depth limit restricts watching to the root directory.
func (o *Options) WatchRecursive() bool {
	return o.Level <= 0
}

// Validate rejects option combinations that cannot be honored.
func (o *Options) Validate() error {
	if o.FilesOnly && o.DirsOnly {
		return errors.New("--files-only and --dirs-only cannot be combined")
	}
	if o.Level < 0 || o.Files < 0 || o.ExpandLevel < 0 {
		return errors.New("--level, --files and --expand-level must not be negative")
	}
	if o.Interactive && o.Out != "" {
		return errors.New("--out cannot be used with --interactive")
	}
	return nil
}

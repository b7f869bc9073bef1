package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/filetug/treetug/pkg/fsutils"
	"github.com/filetug/treetug/pkg/sorting"
)

// DefaultFileNames are looked up in the target directory when no config file is given.
var DefaultFileNames = []string{"treetug.toml", "treetug.yaml", "treetug.yml"}

// File mirrors Options for config files. Unset keys stay nil.
type File struct {
	Interactive   *bool   `yaml:"interactive" toml:"interactive"`
	Watch         *bool   `yaml:"watch" toml:"watch"`
	Out           *string `yaml:"out" toml:"out"`
	OutFile       *string `yaml:"out_file" toml:"out_file"`
	DirsOnly      *bool   `yaml:"dirs_only" toml:"dirs_only"`
	FilesOnly     *bool   `yaml:"files_only" toml:"files_only"`
	All           *bool   `yaml:"all" toml:"all"`
	Gitignore     *bool   `yaml:"gitignore" toml:"gitignore"`
	Exclude       *string `yaml:"exclude" toml:"exclude"`
	Time          *string `yaml:"time" toml:"time"`
	ExpandLevel   *int    `yaml:"expand_level" toml:"expand_level"`
	Level         *int    `yaml:"level" toml:"level"`
	Files         *int    `yaml:"files" toml:"files"`
	Sort          *string `yaml:"sort" toml:"sort"`
	Reverse       *bool   `yaml:"reverse" toml:"reverse"`
	DirsFirst     *bool   `yaml:"dirs_first" toml:"dirs_first"`
	CaseSensitive *bool   `yaml:"case_sensitive" toml:"case_sensitive"`
	NaturalSort   *bool   `yaml:"natural_sort" toml:"natural_sort"`
	DotfilesFirst *bool   `yaml:"dotfiles_first" toml:"dotfiles_first"`
	Hyperlinks    *bool   `yaml:"hyperlinks" toml:"hyperlinks"`
	Icons         *bool   `yaml:"icons" toml:"icons"`
	Size          *bool   `yaml:"size" toml:"size"`
	Permissions   *bool   `yaml:"permissions" toml:"permissions"`
	Info          *bool   `yaml:"info" toml:"info"`
	Stats         *bool   `yaml:"stats" toml:"stats"`
}

// LoadFile reads a TOML or YAML config file, chosen by extension.
func LoadFile(path string, required bool) (*File, error) {
	var f File
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = fsutils.ReadTOMLFile(path, required, &f)
	case ".yaml", ".yml":
		err = fsutils.ReadYAMLFile(path, required, &f)
	default:
		return nil, fmt.Errorf("unsupported config file %s: expected .toml, .yaml or .yml", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return &f, nil
}

// FindFile returns the first default config file present in dir.
func FindFile(dir string) (string, bool) {
	for _, name := range DefaultFileNames {
		p := filepath.Join(dir, name)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, true
		}
	}
	return "", false
}

// Merge applies file values to o for every option whose flag was not set
// explicitly on the command line.
func (o *Options) Merge(f *File, changed func(flag string) bool) error {
	if f == nil {
		return nil
	}
	setBool := func(flag string, dst *bool, src *bool) {
		if src != nil && !changed(flag) {
			*dst = *src
		}
	}
	setInt := func(flag string, dst *int, src *int) {
		if src != nil && !changed(flag) {
			*dst = *src
		}
	}
	setString := func(flag string, dst *string, src *string) {
		if src != nil && !changed(flag) {
			*dst = *src
		}
	}

	setBool("interactive", &o.Interactive, f.Interactive)
	setBool("watch", &o.Watch, f.Watch)
	setString("out", &o.Out, f.Out)
	setString("out-file", &o.OutFile, f.OutFile)
	setBool("dirs-only", &o.DirsOnly, f.DirsOnly)
	setBool("files-only", &o.FilesOnly, f.FilesOnly)
	setBool("all", &o.All, f.All)
	setBool("gitignore", &o.Gitignore, f.Gitignore)
	setString("exclude", &o.Exclude, f.Exclude)
	setInt("expand-level", &o.ExpandLevel, f.ExpandLevel)
	setInt("level", &o.Level, f.Level)
	setInt("files", &o.Files, f.Files)
	setBool("reverse", &o.Reverse, f.Reverse)
	setBool("dirs-first", &o.DirsFirst, f.DirsFirst)
	setBool("case-sensitive", &o.CaseSensitive, f.CaseSensitive)
	setBool("natural-sort", &o.NaturalSort, f.NaturalSort)
	setBool("dotfiles-first", &o.DotfilesFirst, f.DotfilesFirst)
	setBool("hyperlinks", &o.Hyperlinks, f.Hyperlinks)
	setBool("icons", &o.Icons, f.Icons)
	setBool("size", &o.Size, f.Size)
	setBool("permissions", &o.Permissions, f.Permissions)
	setBool("info", &o.Info, f.Info)
	setBool("stats", &o.Stats, f.Stats)

	if f.Sort != nil && !changed("sort") {
		c, err := sorting.ParseCriterion(*f.Sort)
		if err != nil {
			return err
		}
		o.Sort = c
	}
	if f.Time != nil && !changed("time") {
		if err := o.Time.Set(*f.Time); err != nil {
			return err
		}
	}
	return nil
}

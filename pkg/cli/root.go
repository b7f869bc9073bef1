// Package cli provides the treetug command line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/filetug/treetug/pkg/config"
	"github.com/filetug/treetug/pkg/fsutils"
	"github.com/filetug/treetug/pkg/logging"
	"github.com/filetug/treetug/pkg/profiling"
	"github.com/filetug/treetug/pkg/scan"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Version is set by the main package at startup.
var Version = "dev"

// NewRootCmd creates the treetug command.
func NewRootCmd() *cobra.Command {
	o := config.Defaults()
	var cpuProfile, memProfile string
	cmd := &cobra.Command{
		Use:   "treetug [PATH]",
		Short: "Directory tree explorer with recursive sizes, sorting, export and an interactive browser",
		Long: `treetug prints a directory as a tree with recursive sizes and counts.

Modes:
  static (default)  print the tree, optionally re-printing it on changes (--watch)
  export (--out)    write the tree as json, csv, xml or yaml
  interactive (-i)  browse the tree, search it and follow changes (--watch)

Options may also come from a treetug.toml, treetug.yaml or treetug.yml file in
the target directory, or from --config. Flags given on the command line win.`,
		Args:          cobra.MaximumNArgs(1),
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(cmd.ErrOrStderr(), o.Verbose)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				o.Path = args[0]
			}
			if cpuProfile != "" {
				stop, err := profiling.StartCPU(cpuProfile)
				if err != nil {
					return err
				}
				defer func() {
					if err := stop(); err != nil {
						log.Warn().Err(err).Msg("failed to close CPU profile")
					}
				}()
			}
			err := run(cmd.Context(), cmd, &o)
			if memProfile != "" {
				if herr := profiling.WriteHeap(memProfile); herr != nil {
					log.Warn().Err(herr).Msg("failed to write memory profile")
				}
			}
			return err
		},
	}

	f := cmd.Flags()
	f.BoolVarP(&o.Interactive, "interactive", "i", false, "browse the tree interactively")
	f.BoolVar(&o.Watch, "watch", false, "follow filesystem changes and refresh")
	f.StringVar(&o.Config, "config", "", "config file (.toml, .yaml or .yml)")
	f.StringVarP(&o.Out, "out", "o", "", "export format: json, csv, xml or yaml")
	f.StringVar(&o.OutFile, "out-file", o.OutFile, "export destination, - for stdout")

	f.BoolVarP(&o.DirsOnly, "dirs-only", "d", false, "list directories only")
	f.BoolVarP(&o.FilesOnly, "files-only", "f", false, "list files only, as a flat list")
	f.BoolVarP(&o.All, "all", "a", false, "include hidden entries")
	f.BoolVarP(&o.Gitignore, "gitignore", "g", false, "respect .gitignore, .ignore and the global git excludes")
	f.StringVarP(&o.Exclude, "exclude", "e", "", "comma separated file extensions to leave out")
	f.VarP(&o.Time, "time", "t", "only files modified within an age (5d, 2w) or after/before a date (>01-02-2024, <2024-02-01)")
	f.IntVar(&o.ExpandLevel, "expand-level", 0, "expand directories up to this depth in interactive mode")
	f.IntVarP(&o.Level, "level", "L", 0, "descend at most this many levels, 0 for no limit")
	f.IntVarP(&o.Files, "files", "F", 0, "list at most this many files per directory, 0 for no limit")

	f.Var(&o.Sort, "sort", "sort by name, size, accessed, created, modified or extension")
	f.BoolVarP(&o.Reverse, "reverse", "r", false, "reverse the sort order")
	f.BoolVar(&o.DirsFirst, "dirs-first", false, "list directories before files")
	f.BoolVar(&o.CaseSensitive, "case-sensitive", false, "compare names case-sensitively")
	f.BoolVar(&o.NaturalSort, "natural-sort", false, "compare digit runs numerically")
	f.BoolVar(&o.DotfilesFirst, "dotfiles-first", false, "list dotfiles before other entries")

	f.BoolVarP(&o.Hyperlinks, "hyperlinks", "l", false, "render file names as terminal hyperlinks")
	f.BoolVar(&o.Icons, "icons", false, "show icons")
	f.BoolVarP(&o.Size, "size", "s", false, "show file sizes")
	f.BoolVarP(&o.Permissions, "permissions", "p", false, "show permissions")
	f.BoolVarP(&o.Info, "info", "x", false, "show sizes and recursive counts")
	f.BoolVar(&o.Stats, "stats", o.Stats, "print the summary line")

	f.BoolVarP(&o.Verbose, "verbose", "v", false, "verbose logging")
	f.StringVar(&o.LogFile, "log-file", "", "log file for interactive sessions")

	f.StringVar(&cpuProfile, "cpuprofile", "", "write a CPU profile to `file`")
	f.StringVar(&memProfile, "memprofile", "", "write a heap profile to `file` on exit")
	_ = f.MarkHidden("cpuprofile")
	_ = f.MarkHidden("memprofile")

	cmd.MarkFlagsMutuallyExclusive("files-only", "dirs-only")
	return cmd
}

// Execute runs the root command with args.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd.ExecuteContext(ctx)
}

func run(ctx context.Context, cmd *cobra.Command, o *config.Options) error {
	label := o.Path
	o.Path = fsutils.ExpandHome(o.Path)
	if err := loadConfig(cmd, o); err != nil {
		return err
	}
	if err := o.Validate(); err != nil {
		return err
	}
	root, err := scan.CheckRoot(o.Path)
	if err != nil {
		return err
	}
	o.Path = root

	switch {
	case o.Out != "":
		return runExport(ctx, cmd, o)
	case o.Interactive:
		return runInteractive(ctx, cmd, o)
	default:
		return runStatic(ctx, cmd, o, label)
	}
}

// loadConfig merges the --config file, or a default config file found in the
// target directory, under the flags set explicitly.
func loadConfig(cmd *cobra.Command, o *config.Options) error {
	path, required := fsutils.ExpandHome(o.Config), true
	if path == "" {
		var found bool
		if path, found = config.FindFile(o.Path); !found {
			return nil
		}
		required = false
	}
	f, err := config.LoadFile(path, required)
	if err != nil {
		return err
	}
	if err = o.Merge(f, cmd.Flags().Changed); err != nil {
		return fmt.Errorf("config file %s: %w", path, err)
	}
	log.Debug().Str("file", path).Msg("config file loaded")
	return nil
}

var isTerminal = func(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

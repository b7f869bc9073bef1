package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/filetug/treetug/pkg/config"
	"github.com/filetug/treetug/pkg/export"
	"github.com/filetug/treetug/pkg/logging"
	"github.com/filetug/treetug/pkg/printer"
	"github.com/filetug/treetug/pkg/tree"
	"github.com/filetug/treetug/pkg/tui"
	"github.com/filetug/treetug/pkg/watch"
	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

const clearScreen = "\x1b[H\x1b[2J"

var (
	newApplication = tview.NewApplication
	runBrowser     = func(ctx context.Context, b *tui.App) (string, error) {
		return b.Run(ctx)
	}
)

// prepare builds the tree, showing a spinner on stderr while scanning when stderr is a terminal.
func prepare(ctx context.Context, stderr io.Writer, o *config.Options) (*tree.Tree, error) {
	po := o.PrepareOptions()
	if isTerminal(stderr) {
		bar := progressbar.NewOptions(-1,
			progressbar.OptionSetWriter(stderr),
			progressbar.OptionSetDescription("scanning"),
			progressbar.OptionSpinnerType(14),
			progressbar.OptionShowCount(),
			progressbar.OptionThrottle(100*time.Millisecond),
			progressbar.OptionClearOnFinish(),
		)
		po.Scan.OnEntry = func(string) {
			_ = bar.Add(1)
		}
		defer func() {
			_ = bar.Finish()
		}()
	}
	return tree.Prepare(ctx, po)
}

func runStatic(ctx context.Context, cmd *cobra.Command, o *config.Options, label string) error {
	out := cmd.OutOrStdout()
	if err := printTree(ctx, cmd, o, label); err != nil {
		return err
	}
	if !o.Watch {
		return nil
	}

	w, err := watch.New(o.Path, o.WatchRecursive())
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", o.Path, err)
	}
	defer func() {
		_ = w.Close()
	}()
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		_ = w.Close()
	}()

	log.Info().Str("root", o.Path).Msg("watching for changes, press Ctrl+C to stop")
	for w.WaitSettled(watch.DefaultWindow) {
		w.Drain()
		if isTerminal(out) {
			_, _ = io.WriteString(out, clearScreen)
		} else {
			_, _ = fmt.Fprintln(out)
		}
		if err := printTree(ctx, cmd, o, label); err != nil {
			log.Warn().Err(err).Msg("refresh failed")
		}
	}
	return nil
}

func printTree(ctx context.Context, cmd *cobra.Command, o *config.Options, label string) error {
	start := time.Now()
	t, err := prepare(ctx, cmd.ErrOrStderr(), o)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	p := printer.New(out, printer.Options{
		RootLabel:   label,
		Permissions: o.Permissions,
		Info:        o.Info,
		Size:        o.Size,
		Hyperlinks:  o.Hyperlinks,
	})
	stats, err := p.Print(t)
	if err != nil {
		return err
	}
	if o.Stats {
		_, err = fmt.Fprintln(out, printer.Footer(stats, time.Since(start)))
	}
	return err
}

func runExport(ctx context.Context, cmd *cobra.Command, o *config.Options) error {
	format, err := export.ParseFormat(o.Out)
	if err != nil {
		return err
	}
	start := time.Now()
	t, err := prepare(ctx, cmd.ErrOrStderr(), o)
	if err != nil {
		return err
	}

	if o.OutFile == "" || o.OutFile == "-" {
		return export.Write(cmd.OutOrStdout(), t, format, export.Options{Permissions: o.Permissions})
	}
	f, err := os.Create(o.OutFile)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	if err = export.Write(f, t, format, export.Options{Permissions: o.Permissions}); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", o.OutFile, err)
	}
	if err = f.Close(); err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.ErrOrStderr(), "Export completed in %s\n", time.Since(start).Round(time.Millisecond))
	return err
}

func runInteractive(ctx context.Context, cmd *cobra.Command, o *config.Options) error {
	// the terminal belongs to the browser from here on
	var logOut io.Writer
	if o.LogFile != "" {
		f, err := logging.OpenFile(o.LogFile)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer func() {
			_ = f.Close()
		}()
		logOut = f
	}

	t, err := prepare(ctx, cmd.ErrOrStderr(), o)
	if err != nil {
		return err
	}
	logging.Setup(logOut, o.Verbose)
	defer logging.Setup(cmd.ErrOrStderr(), o.Verbose)

	var controller *watch.Controller
	if o.Watch {
		w, err := watch.New(o.Path, o.WatchRecursive())
		if err != nil {
			return fmt.Errorf("failed to watch %s: %w", o.Path, err)
		}
		defer func() {
			_ = w.Close()
		}()
		controller = watch.NewController(w, watch.DefaultWindow)
	}

	po := o.PrepareOptions()
	load := func(ctx context.Context) (*tree.Tree, error) {
		return tree.Prepare(ctx, po)
	}
	browser := tui.New(newApplication(), t, tui.Options{
		Info:        o.Info,
		Size:        o.Size,
		Permissions: o.Permissions,
		ExpandLevel: o.ExpandLevel,
	}, load, controller)

	path, err := runBrowser(ctx, browser)
	if err != nil {
		return err
	}
	if path != "" {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
	}
	return err
}

// Package tui is the interactive tree browser built on tview.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/filetug/treetug/pkg/navigator"
	"github.com/filetug/treetug/pkg/tree"
	"github.com/filetug/treetug/pkg/watch"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"
)

const (
	tickInterval     = 100 * time.Millisecond
	statusLifetime   = 2 * time.Second
	treeTitle        = "Directory Tree"
	helpText         = "q: quit | /: search | r: refresh | Tab: enter dir | Ctrl+T: open terminal | Ctrl+S: print path"
	statusChanges    = "Changes detected..."
	statusRefreshing = "Refreshing..."
	statusUpdated    = "Updated ✓"
)

type Options struct {
	Info        bool
	Size        bool
	Permissions bool
	ExpandLevel int
}

// Loader rescans the tree with the options the browser was started with.
type Loader func(ctx context.Context) (*tree.Tree, error)

type App struct {
	app     *tview.Application
	layout  *tview.Flex
	crumb   *tview.TextView
	table   *tview.Table
	box     *boxed
	status  *tview.TextView
	content *rowContent

	state      *navigator.State
	o          Options
	load       Loader
	controller *watch.Controller

	ctx         context.Context
	watchStatus string
	clearAt     time.Time
	now         func() time.Time
	exitPath    string
}

// New wires the browser around an already prepared tree. controller may be nil when not watching.
func New(app *tview.Application, t *tree.Tree, o Options, load Loader, controller *watch.Controller) *App {
	a := &App{
		app:        app,
		state:      navigator.New(t.Entries, t.Root.Path),
		o:          o,
		load:       load,
		controller: controller,
		ctx:        context.Background(),
		now:        time.Now,
	}
	a.state.ApplyInitialExpansion(o.ExpandLevel)
	a.content = newRowContent(a.state, o)

	a.crumb = tview.NewTextView().SetDynamicColors(true)
	a.status = tview.NewTextView().SetDynamicColors(true)

	a.table = tview.NewTable()
	a.table.SetContent(a.content)
	a.table.SetSelectable(true, false)
	a.table.SetSelectedStyle(Style.SelectedStyle)
	a.table.SetSelectionChangedFunc(a.selectionChanged)
	a.table.SetMouseCapture(a.mouseCapture)
	a.box = newBoxed(a.table, treeTitle)

	a.layout = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.crumb, 1, 0, false).
		AddItem(a.box, 0, 1, true).
		AddItem(a.status, 1, 0, false)

	app.EnableMouse(true)
	app.SetRoot(a.layout, true)
	app.SetFocus(a.box)
	app.SetInputCapture(a.inputCapture)
	a.render()
	return a
}

// Run blocks until the browser quits and returns the path chosen with Ctrl+S, if any.
func (a *App) Run(ctx context.Context) (string, error) {
	a.ctx = ctx
	done := make(chan struct{})
	defer close(done)
	go a.tickLoop(done)
	if err := a.app.Run(); err != nil {
		return "", err
	}
	return a.exitPath, nil
}

func (a *App) tickLoop(done <-chan struct{}) {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-a.ctx.Done():
			a.app.Stop()
			return
		case <-ticker.C:
			a.app.QueueUpdateDraw(a.tick)
		}
	}
}

// tick runs on the tview goroutine: it polls the watch controller and expires the status message.
func (a *App) tick() {
	if a.controller != nil {
		switch a.controller.Poll() {
		case watch.Pending:
			a.setStatus(statusChanges, false)
		case watch.NeedsRefresh:
			a.setStatus(statusRefreshing, false)
			if a.rescan() {
				a.setStatus(statusUpdated, true)
			}
		}
	}
	if !a.clearAt.IsZero() && !a.now().Before(a.clearAt) {
		a.watchStatus = ""
		a.clearAt = time.Time{}
	}
	a.render()
}

// refresh is the manual rescan: it also restores the initial expansion
// and keeps the selected path when it still shows.
func (a *App) refresh() {
	if a.controller != nil {
		a.controller.Reset()
	}
	selected := a.state.SelectedPath()
	if !a.rescan() {
		return
	}
	a.state.ApplyInitialExpansion(a.o.ExpandLevel)
	if selected != "" {
		a.state.SelectPath(selected)
	}
	a.setStatus(statusUpdated, true)
}

func (a *App) rescan() bool {
	if a.load == nil {
		return false
	}
	t, err := a.load(a.ctx)
	if err != nil {
		log.Error().Err(err).Str("root", a.state.Root()).Msg("rescan failed")
		a.setStatus("Refresh failed: "+err.Error(), true)
		return false
	}
	a.state.Refresh(t.Entries)
	log.Debug().Int("entries", t.Len()).Msg("tree refreshed")
	return true
}

func (a *App) setStatus(text string, expires bool) {
	a.watchStatus = text
	if expires {
		a.clearAt = a.now().Add(statusLifetime)
	} else {
		a.clearAt = time.Time{}
	}
}

func (a *App) selectionChanged(row, _ int) {
	if row != a.state.SelectedIndex() {
		a.state.Select(row)
	}
}

func (a *App) mouseCapture(action tview.MouseAction, event *tcell.EventMouse) (tview.MouseAction, *tcell.EventMouse) {
	switch action {
	case tview.MouseScrollUp:
		a.state.MoveUp()
	case tview.MouseScrollDown:
		a.state.MoveDown()
	default:
		return action, event
	}
	a.render()
	return action, nil
}

func (a *App) render() {
	a.content.update()
	selected := max(a.state.SelectedIndex(), 0)
	a.table.Select(selected, nameColIndex)

	a.crumb.SetText(colorTag(Style.BreadcrumbColor) + "[::i]" + tview.Escape(a.breadcrumbText()))
	a.status.SetText(a.statusText())

	total := len(a.state.Visible())
	if total == 0 {
		a.box.SetFooter("")
	} else {
		a.box.SetFooter(fmt.Sprintf("%d/%d", selected+1, total))
	}
}

func (a *App) breadcrumbText() string {
	if a.controller != nil {
		return "watching: " + a.state.Focus()
	}
	return a.state.Focus()
}

func (a *App) statusText() string {
	if a.state.Mode() == navigator.Search {
		return colorTag(Style.SearchColor) + "[::b]/" + tview.Escape(a.state.Query())
	}
	text := helpText
	if a.watchStatus != "" {
		text += " | " + a.watchStatus
	}
	return colorTag(Style.StatusColor) + tview.Escape(text)
}

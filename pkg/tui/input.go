package tui

import (
	"path/filepath"

	"github.com/filetug/treetug/pkg/fsutils"
	"github.com/filetug/treetug/pkg/navigator"
	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"
)

func (a *App) inputCapture(event *tcell.EventKey) *tcell.EventKey {
	if a.state.Mode() == navigator.Search && event.Modifiers()&tcell.ModCtrl == 0 {
		if event = a.searchInput(event); event == nil {
			a.render()
		}
		return event
	}

	switch event.Key() {
	case tcell.KeyCtrlS:
		if path := a.state.SelectedPath(); path != "" {
			a.exitPath = fsutils.Canonicalize(path)
			a.app.Stop()
		}
	case tcell.KeyCtrlT:
		a.openTerminal()
	case tcell.KeyUp:
		a.state.MoveUp()
	case tcell.KeyDown:
		a.state.MoveDown()
	case tcell.KeyLeft, tcell.KeyRight:
		a.state.ToggleExpansion()
	case tcell.KeyEnter:
		a.activate()
	case tcell.KeyTab:
		a.state.EnterSelected()
	case tcell.KeyRune:
		switch event.Rune() {
		case 'q':
			a.app.Stop()
			return nil
		case 'r':
			a.refresh()
		case '/':
			a.state.StartSearch()
		default:
			return event
		}
	default:
		return event
	}
	a.render()
	return nil
}

// activate goes up from the parent row, toggles a directory or opens a file.
func (a *App) activate() {
	row, ok := a.state.Selected()
	switch {
	case !ok:
	case row.IsParent():
		a.state.GoUp()
	case row.Entry.IsDir:
		a.state.ToggleExpansion()
	default:
		a.openFile(row.Path)
	}
}

func (a *App) searchInput(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyUp:
		a.state.MoveUp()
	case tcell.KeyDown:
		a.state.MoveDown()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		a.state.Backspace()
	case tcell.KeyEscape:
		a.state.ExitSearch()
	case tcell.KeyEnter:
		row, ok := a.state.Selected()
		switch {
		case !ok:
		case row.IsParent():
			a.state.GoUp()
		case row.Entry.IsDir:
			a.state.EnterDirectory(row.Index)
		default:
			a.openFile(row.Path)
		}
	case tcell.KeyRune:
		a.state.AppendQuery(event.Rune())
	default:
		return event
	}
	return nil
}

func (a *App) openFile(path string) {
	if err := openFile(path); err != nil {
		log.Error().Err(err).Str("path", path).Msg("failed to open file")
		a.setStatus("Cannot open "+filepath.Base(path), true)
	}
}

// openTerminal suspends the browser and runs a shell in the selected directory,
// or in the directory holding the selected file.
func (a *App) openTerminal() {
	row, ok := a.state.Selected()
	if !ok {
		return
	}
	dir := row.Path
	if !row.IsParent() && !row.Entry.IsDir {
		dir = filepath.Dir(row.Path)
	}
	var err error
	a.app.Suspend(func() {
		err = runShell(dir)
	})
	if err != nil {
		log.Error().Err(err).Str("dir", dir).Msg("shell failed")
	}
}

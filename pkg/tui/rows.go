package tui

import (
	"fmt"
	"strings"

	"github.com/filetug/treetug/pkg/fsutils"
	"github.com/filetug/treetug/pkg/icons"
	"github.com/filetug/treetug/pkg/navigator"
	"github.com/rivo/tview"
)

var _ tview.TableContent = (*rowContent)(nil)

const (
	nameColIndex = 0
	infoColIndex = 1

	indentUnit = "    "
)

// rowContent exposes the navigator's visible rows to a tview.Table.
type rowContent struct {
	tview.TableContentReadOnly
	state *navigator.State
	o     Options
	rows  []navigator.Row
}

func newRowContent(state *navigator.State, o Options) *rowContent {
	c := &rowContent{state: state, o: o}
	c.update()
	return c
}

func (c *rowContent) update() {
	c.rows = c.state.Rows()
}

func (c *rowContent) GetRowCount() int {
	if len(c.rows) == 0 {
		return 1
	}
	return len(c.rows)
}

func (c *rowContent) GetColumnCount() int {
	return 2
}

func (c *rowContent) GetCell(row, col int) *tview.TableCell {
	if len(c.rows) == 0 {
		if col != nameColIndex || row != 0 {
			return nil
		}
		text := "[::i]No entries[::-]"
		if c.state.Mode() == navigator.Search {
			text = "[::i]No matches[::-]"
		}
		return tview.NewTableCell(text).SetTextColor(Style.EmptyColor)
	}
	if row < 0 || row >= len(c.rows) {
		return nil
	}
	r := c.rows[row]
	switch col {
	case nameColIndex:
		cell := tview.NewTableCell(c.nameText(r))
		if r.IsParent() {
			cell.SetTextColor(Style.ParentColor)
		} else {
			cell.SetTextColor(icons.Color(r.Entry.Name(), r.Entry.IsDir))
		}
		cell.SetReference(r)
		return cell
	case infoColIndex:
		if r.IsParent() {
			return tview.NewTableCell("").SetExpansion(1)
		}
		return tview.NewTableCell(tview.Escape(c.infoText(r.Entry))).
			SetAlign(tview.AlignRight).
			SetExpansion(1).
			SetTextColor(Style.InfoColor)
	}
	return nil
}

func (c *rowContent) nameText(r navigator.Row) string {
	if r.IsParent() {
		return "▲ .."
	}
	e := r.Entry
	var sb strings.Builder
	if c.o.Permissions {
		sb.WriteString(colorTag(Style.PermissionsColor) + e.Permissions + "[-] ")
	}
	sb.WriteString(strings.Repeat(indentUnit, c.indent(e)))
	switch {
	case !e.IsDir:
		sb.WriteString("  ")
	case e.Expanded:
		sb.WriteString("▼ ")
	default:
		sb.WriteString("▶ ")
	}
	if e.Icon != "" {
		sb.WriteString(e.Icon + " ")
	}
	sb.WriteString(tview.Escape(e.Name()))
	return sb.String()
}

// indent is relative to the focus: nested levels at the root, flat below it.
func (c *rowContent) indent(e *navigator.Entry) int {
	if !c.state.AtRoot() {
		return 0
	}
	return max(e.Depth-1, 0)
}

func (c *rowContent) infoText(e *navigator.Entry) string {
	switch {
	case c.o.Info && e.IsDir:
		return fmt.Sprintf("[%s, %d files, %d dirs]", fsutils.SizeText(e.Size), e.Files, e.Dirs)
	case c.o.Info, c.o.Size:
		return fmt.Sprintf("[%s]", fsutils.SizeText(e.Size))
	}
	return ""
}

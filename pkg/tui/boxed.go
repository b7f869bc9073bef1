package tui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

var (
	focusedStyle = tcell.StyleDefault.Foreground(Style.BorderColor)
	blurredStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

type borderChars struct {
	horizontal, vertical    rune
	topLeft, topRight       rune
	bottomLeft, bottomRight rune
	labelOpen, labelClose   rune
}

var (
	focusedBorder = borderChars{'═', '│', '╒', '╕', '╘', '╛', '╡', '╞'}
	blurredBorder = borderChars{'─', '│', '┌', '┐', '└', '┘', '┤', '├'}
)

// boxed draws a border around the table with a centered title on top
// and a centered footer at the bottom.
type boxed struct {
	*tview.Table
	title  string
	footer string
}

func newBoxed(table *tview.Table, title string) *boxed {
	table.SetBorderPadding(1, 1, 1, 1)
	return &boxed{Table: table, title: title}
}

func (b *boxed) SetFooter(footer string) {
	b.footer = footer
}

func (b *boxed) Draw(screen tcell.Screen) {
	b.Table.Draw(screen)
	b.drawBorders(screen)
}

func (b *boxed) drawBorders(screen tcell.Screen) {
	x, y, width, height := b.GetRect()
	if width < 2 || height < 2 {
		return
	}
	style, chars := blurredStyle, blurredBorder
	if b.HasFocus() {
		style, chars = focusedStyle, focusedBorder
	}

	horizontal := func(y int, label string) {
		for i := 1; i < width-1; i++ {
			screen.SetContent(x+i, y, chars.horizontal, nil, style)
		}
		labelWidth := tview.TaggedStringWidth(label)
		if label == "" || labelWidth+4 > width {
			return
		}
		start := x + (width-labelWidth)/2
		screen.SetContent(start-1, y, chars.labelOpen, nil, style)
		tview.Print(screen, label, start, y, labelWidth, tview.AlignLeft, Style.TitleColor)
		screen.SetContent(start+labelWidth, y, chars.labelClose, nil, style)
	}
	horizontal(y, b.title)
	horizontal(y+height-1, b.footer)

	for i := 1; i < height-1; i++ {
		screen.SetContent(x, y+i, chars.vertical, nil, style)
		screen.SetContent(x+width-1, y+i, chars.vertical, nil, style)
	}
	screen.SetContent(x, y, chars.topLeft, nil, style)
	screen.SetContent(x+width-1, y, chars.topRight, nil, style)
	screen.SetContent(x, y+height-1, chars.bottomLeft, nil, style)
	screen.SetContent(x+width-1, y+height-1, chars.bottomRight, nil, style)
}

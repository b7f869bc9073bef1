package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

type Styles struct {
	BorderColor tcell.Color
	TitleColor  tcell.Color

	SelectedStyle tcell.Style

	BreadcrumbColor  tcell.Color
	StatusColor      tcell.Color
	SearchColor      tcell.Color
	InfoColor        tcell.Color
	PermissionsColor tcell.Color
	ParentColor      tcell.Color
	EmptyColor       tcell.Color
}

var Style = Styles{
	BorderColor: tcell.ColorCornflowerBlue,
	TitleColor:  tcell.ColorGhostWhite,

	SelectedStyle: tcell.StyleDefault.Background(tcell.ColorDarkGray).Foreground(tcell.ColorWhite).Bold(true),

	BreadcrumbColor:  tcell.ColorGray,
	StatusColor:      tcell.ColorGray,
	SearchColor:      tcell.ColorYellow,
	InfoColor:        tcell.ColorDarkGray,
	PermissionsColor: tcell.ColorDarkGray,
	ParentColor:      tcell.ColorLightSkyBlue,
	EmptyColor:       tcell.ColorGray,
}

// colorTag returns a tview foreground color tag for c.
func colorTag(c tcell.Color) string {
	return fmt.Sprintf("[#%06x]", c.Hex())
}

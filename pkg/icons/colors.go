package icons

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"
)

const (
	DirColor     = tcell.ColorDodgerBlue
	DefaultColor = tcell.ColorWhiteSmoke
)

var fileColors = map[string]tcell.Color{
	"exe":  tcell.ColorRed,
	"go":   tcell.ColorAqua,
	"cpp":  tcell.ColorDodgerBlue,
	"c":    tcell.ColorDodgerBlue,
	"h":    tcell.ColorDodgerBlue,
	"cs":   tcell.ColorLime,
	"js":   tcell.ColorYellow,
	"ts":   tcell.ColorDeepSkyBlue,
	"html": tcell.ColorOrangeRed,
	"css":  tcell.ColorViolet,
	"sql":  tcell.ColorSpringGreen,
	"json": tcell.ColorGold,
	"xml":  tcell.ColorLightYellow,
	"yaml": tcell.ColorLightYellow,
	"yml":  tcell.ColorLightYellow,
	"toml": tcell.ColorLightYellow,
	"md":   tcell.ColorBisque,
	"py":   tcell.ColorLightGreen,
	"rb":   tcell.ColorRed,
	"php":  tcell.ColorPurple,
	"rs":   tcell.ColorOrange,
	"sh":   tcell.ColorGreen,
	"bat":  tcell.ColorDarkRed,
	"txt":  tcell.ColorWhite,
	"csv":  tcell.ColorLightGreen,
	"jpg":  tcell.ColorMediumPurple,
	"jpeg": tcell.ColorMediumPurple,
	"png":  tcell.ColorMediumPurple,
	"gif":  tcell.ColorMediumPurple,
	"webp": tcell.ColorMediumPurple,
	"mov":  tcell.ColorLightSalmon,
	"mp4":  tcell.ColorLightSalmon,
	"log":  tcell.ColorRosyBrown,
	"zip":  tcell.ColorIndianRed,
	"gz":   tcell.ColorIndianRed,
	"tar":  tcell.ColorIndianRed,
	"xls":  tcell.ColorGreen,
	"xlsx": tcell.ColorGreen,
	"doc":  tcell.ColorBlue,
	"docx": tcell.ColorBlue,
}

// Color returns the display color for a name.
func Color(name string, isDir bool) tcell.Color {
	if isDir {
		return DirColor
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if color, ok := fileColors[ext]; ok {
		return color
	}
	return DefaultColor
}

// HexColor returns Color as "#rrggbb".
func HexColor(name string, isDir bool) string {
	return fmt.Sprintf("#%06x", Color(name, isDir).Hex())
}

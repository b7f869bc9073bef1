// Package printer renders a prepared tree as classic indented text.
package printer

import (
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/filetug/treetug/pkg/fsutils"
	"github.com/filetug/treetug/pkg/icons"
	"github.com/filetug/treetug/pkg/tree"
)

const (
	branchIndent = "│   "
	blankIndent  = "    "
)

type Options struct {
	// RootLabel replaces the root path on the first line, e.g. the path as typed by the user.
	RootLabel   string
	Permissions bool
	Info        bool
	Size        bool
	Hyperlinks  bool
}

// Stats summarizes what was printed. Size is the sum over depth-1 rows.
type Stats struct {
	Dirs  int
	Files int
	Size  int64
}

type Printer struct {
	w       io.Writer
	o       Options
	dimmed  lipgloss.Style
	rootDir lipgloss.Style
	r       *lipgloss.Renderer
}

// New creates a printer writing to w. Colors are only emitted when w is a color capable terminal.
func New(w io.Writer, o Options) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w:       w,
		o:       o,
		r:       r,
		dimmed:  r.NewStyle().Faint(true),
		rootDir: r.NewStyle().Bold(true).Foreground(lipgloss.Color(icons.HexColor("", true))),
	}
}

// Print writes the root line followed by one line per entry.
func (p *Printer) Print(t *tree.Tree) (Stats, error) {
	var stats Stats
	size, dirs, files := t.DirectChildren()
	stats.Size = size

	if err := p.printRoot(t.Root, size, dirs, files); err != nil {
		return stats, err
	}

	var lastStack []bool
	for _, e := range t.Entries {
		depth := max(e.Depth, 1)
		for len(lastStack) >= depth {
			lastStack = lastStack[:len(lastStack)-1]
		}
		lastStack = append(lastStack, e.IsLast())

		var prefix strings.Builder
		for _, last := range lastStack[:len(lastStack)-1] {
			if last {
				prefix.WriteString(blankIndent)
			} else {
				prefix.WriteString(branchIndent)
			}
		}

		if e.IsDir {
			stats.Dirs++
		} else {
			stats.Files++
		}

		if _, err := fmt.Fprintln(p.w, p.line(e, prefix.String())); err != nil {
			return stats, err
		}
	}
	return stats, nil
}

func (p *Printer) printRoot(root tree.Entry, size, dirs, files int64) error {
	var sb strings.Builder
	if p.o.Permissions {
		sb.WriteString(p.dimmed.Render(root.Permissions + " "))
	}
	if root.Icon != "" {
		sb.WriteString(root.Icon + " ")
	}
	label := root.Path
	if p.o.RootLabel != "" {
		label = p.o.RootLabel
	}
	sb.WriteString(p.rootDir.Render(label))
	if p.o.Info || p.o.Size {
		summary := fmt.Sprintf(" ( %s  %d dirs, %d files )", fsutils.SizeText(size), dirs, files)
		sb.WriteString(p.dimmed.Render(summary))
	}
	_, err := fmt.Fprintln(p.w, sb.String())
	return err
}

func (p *Printer) line(e tree.Entry, prefix string) string {
	var sb strings.Builder
	if p.o.Permissions {
		sb.WriteString(p.dimmed.Render(e.Permissions + " "))
	}
	sb.WriteString(prefix)
	sb.WriteString(e.Connector)
	sb.WriteString(" ")
	if e.Icon != "" {
		sb.WriteString(e.Icon + " ")
	}

	style := p.r.NewStyle().Foreground(lipgloss.Color(icons.HexColor(e.Name(), e.IsDir)))
	if e.IsDir {
		style = style.Bold(true)
	}
	name := style.Render(e.Name())
	if p.o.Hyperlinks && !e.IsDir {
		name = Hyperlink(e.Path, name)
	}
	sb.WriteString(name)
	if info := p.info(e); info != "" {
		sb.WriteString(p.dimmed.Render(info))
	}
	return sb.String()
}

func (p *Printer) info(e tree.Entry) string {
	switch {
	case p.o.Info && e.IsDir:
		return fmt.Sprintf("  [ %s  %d dirs, %d files ]", fsutils.SizeText(e.Size), e.Dirs, e.Files)
	case p.o.Info:
		return fmt.Sprintf("  [ %s ]", fsutils.SizeText(e.Size))
	case p.o.Size && !e.IsDir:
		return fmt.Sprintf(" (%s)", fsutils.SizeText(e.Size))
	}
	return ""
}

// Hyperlink wraps text in an OSC 8 terminal hyperlink pointing at the file.
func Hyperlink(path, text string) string {
	u := url.URL{Scheme: "file", Path: path}
	return "\x1b]8;;" + u.String() + "\x07" + text + "\x1b]8;;\x07"
}

// Footer formats the summary line printed after the tree.
func Footer(s Stats, elapsed time.Duration) string {
	return fmt.Sprintf("\n%s, %d directories, %d files ( %s )", fsutils.SizeText(s.Size), s.Dirs, s.Files, elapsed.Round(10*time.Microsecond))
}

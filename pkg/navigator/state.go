// Package navigator holds the interactive browsing state: which rows are
// visible, which is selected, which directories are expanded, and search.
// It performs no I/O.
package navigator

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/filetug/treetug/pkg/tree"
)

type Mode int

const (
	Normal Mode = iota
	Search
)

// ParentRef marks the synthetic row leading back to the parent of the focused directory.
const ParentRef = -1

// RegexPrefix switches a search query to regular expression matching.
const RegexPrefix = "r:"

type Entry struct {
	tree.Entry
	Expanded bool
}

// Row is one visible line. Entry is nil for the parent row.
type Row struct {
	Index int
	Entry *Entry
	Path  string
}

func (r Row) IsParent() bool {
	return r.Index == ParentRef
}

type State struct {
	root     string
	focus    string
	entries  []Entry
	visible  []int
	selected int
	mode     Mode
	query    string
	backup   []int
}

func New(entries []tree.Entry, root string) *State {
	s := &State{
		root:     root,
		focus:    root,
		entries:  wrap(entries, nil),
		selected: -1,
	}
	s.RebuildVisible()
	return s
}

func wrap(entries []tree.Entry, expanded map[string]struct{}) []Entry {
	result := make([]Entry, len(entries))
	for i, e := range entries {
		_, wasExpanded := expanded[e.Path]
		result[i] = Entry{Entry: e, Expanded: wasExpanded}
	}
	return result
}

func (s *State) Root() string { return s.root }
func (s *State) Focus() string { return s.focus }
func (s *State) Mode() Mode { return s.mode }
func (s *State) Query() string { return s.query }
func (s *State) AtRoot() bool { return s.focus == s.root }
func (s *State) Entries() []Entry { return s.entries }

// Visible returns entry indexes of the visible rows; ParentRef stands for the parent row.
func (s *State) Visible() []int {
	return s.visible
}

func (s *State) Rows() []Row {
	rows := make([]Row, len(s.visible))
	for i := range s.visible {
		rows[i] = s.row(i)
	}
	return rows
}

func (s *State) row(pos int) Row {
	idx := s.visible[pos]
	if idx == ParentRef {
		return Row{Index: ParentRef, Path: filepath.Dir(s.focus)}
	}
	return Row{Index: idx, Entry: &s.entries[idx], Path: s.entries[idx].Path}
}

// SelectedIndex is the selected position within the visible rows, or -1.
func (s *State) SelectedIndex() int {
	return s.selected
}

func (s *State) Selected() (Row, bool) {
	if s.selected < 0 || s.selected >= len(s.visible) {
		return Row{}, false
	}
	return s.row(s.selected), true
}

func (s *State) SelectedPath() string {
	if row, ok := s.Selected(); ok {
		return row.Path
	}
	return ""
}

// Select moves the selection to pos, clamped to the visible rows.
func (s *State) Select(pos int) {
	if len(s.visible) == 0 {
		s.selected = -1
		return
	}
	s.selected = max(0, min(pos, len(s.visible)-1))
}

// RebuildVisible recomputes the visible rows and selects the first one.
// At the root an entry shows when all its ancestors are expanded.
// Below the root only direct children of the focus show, after the parent row.
func (s *State) RebuildVisible() {
	s.visible = s.visible[:0]
	if s.focus == s.root {
		expandedStack := make([]bool, 0, 16)
		for i, e := range s.entries {
			if e.Depth-1 < len(expandedStack) {
				expandedStack = expandedStack[:max(e.Depth-1, 0)]
			}
			if e.Depth == 0 || allTrue(expandedStack) {
				s.visible = append(s.visible, i)
			}
			if e.IsDir && e.Depth > 0 {
				expandedStack = append(expandedStack, e.Expanded)
			}
		}
	} else {
		s.visible = append(s.visible, ParentRef)
		for i, e := range s.entries {
			if e.Parent() == s.focus {
				s.visible = append(s.visible, i)
			}
		}
	}
	s.Select(0)
}

func allTrue(values []bool) bool {
	for _, v := range values {
		if !v {
			return false
		}
	}
	return true
}

func (s *State) MoveDown() {
	if len(s.visible) == 0 {
		return
	}
	if s.selected < 0 || s.selected >= len(s.visible)-1 {
		s.selected = 0
		return
	}
	s.selected++
}

func (s *State) MoveUp() {
	if len(s.visible) == 0 {
		return
	}
	if s.selected <= 0 {
		s.selected = len(s.visible) - 1
		return
	}
	s.selected--
}

// ToggleExpansion flips the selected directory and keeps it selected.
func (s *State) ToggleExpansion() bool {
	row, ok := s.Selected()
	if !ok || row.IsParent() || !row.Entry.IsDir {
		return false
	}
	pos := s.selected
	row.Entry.Expanded = !row.Entry.Expanded
	s.RebuildVisible()
	if !s.SelectPath(row.Path) {
		s.Select(pos)
	}
	return true
}

// ApplyInitialExpansion expands every directory shallower than level.
func (s *State) ApplyInitialExpansion(level int) {
	if level <= 0 {
		return
	}
	for i := range s.entries {
		if s.entries[i].IsDir && s.entries[i].Depth < level {
			s.entries[i].Expanded = true
		}
	}
	s.RebuildVisible()
}

// EnterDirectory focuses the directory at entry index idx and leaves search mode.
func (s *State) EnterDirectory(idx int) bool {
	if idx < 0 || idx >= len(s.entries) || !s.entries[idx].IsDir {
		return false
	}
	s.leaveSearch()
	s.focus = s.entries[idx].Path
	s.RebuildVisible()
	return true
}

// EnterSelected enters the selected directory, or goes up from the parent row.
func (s *State) EnterSelected() bool {
	row, ok := s.Selected()
	if !ok {
		return false
	}
	if row.IsParent() {
		return s.GoUp()
	}
	return s.EnterDirectory(row.Index)
}

// GoUp focuses the parent of the focused directory, never above the root.
func (s *State) GoUp() bool {
	if s.focus == s.root {
		return false
	}
	previous := s.focus
	parent := filepath.Dir(s.focus)
	if parent == s.root || s.indexOf(parent) < 0 {
		parent = s.root
	}
	s.leaveSearch()
	s.focus = parent
	s.RebuildVisible()
	s.SelectPath(previous)
	return true
}

func (s *State) StartSearch() {
	if s.mode == Normal {
		s.backup = append(s.backup[:0], s.visible...)
	}
	s.mode = Search
	s.query = ""
}

// ExitSearch restores the rows shown before the search started.
func (s *State) ExitSearch() {
	if s.mode != Search {
		return
	}
	s.visible, s.backup = s.backup, s.visible[:0]
	s.mode = Normal
	s.query = ""
	switch {
	case len(s.visible) == 0:
		s.selected = -1
	case s.selected >= len(s.visible):
		s.selected = len(s.visible) - 1
	case s.selected < 0:
		s.selected = 0
	}
}

func (s *State) leaveSearch() {
	s.mode = Normal
	s.query = ""
	s.backup = s.backup[:0]
}

func (s *State) SetQuery(q string) {
	s.query = q
	s.ApplyFilter()
}

func (s *State) AppendQuery(r rune) {
	s.SetQuery(s.query + string(r))
}

func (s *State) Backspace() {
	if s.query == "" {
		return
	}
	runes := []rune(s.query)
	s.SetQuery(string(runes[:len(runes)-1]))
}

// ApplyFilter narrows the rows to direct children of the focus whose name
// matches the query. A query starting with RegexPrefix is a regular expression;
// an invalid one matches nothing. Otherwise matching is a case-insensitive substring test.
func (s *State) ApplyFilter() {
	raw := strings.TrimSpace(s.query)
	if raw == "" {
		s.RebuildVisible()
		return
	}

	var match func(name string) bool
	if pattern, isRegex := strings.CutPrefix(raw, RegexPrefix); isRegex {
		re, err := regexp.Compile(pattern)
		if err != nil {
			match = func(string) bool { return false }
		} else {
			match = re.MatchString
		}
	} else {
		needle := strings.ToLower(raw)
		match = func(name string) bool {
			return strings.Contains(strings.ToLower(name), needle)
		}
	}

	s.visible = s.visible[:0]
	for i, e := range s.entries {
		if e.Parent() == s.focus && match(e.Name()) {
			s.visible = append(s.visible, i)
		}
	}
	s.Select(0)
}

// Refresh swaps in a rescanned entry list, keeping the focus, the expanded
// directories and the selected path where they still exist.
func (s *State) Refresh(entries []tree.Entry) {
	selectedPath := s.SelectedPath()
	selectedParent := false
	if row, ok := s.Selected(); ok {
		selectedParent = row.IsParent()
	}
	expanded := make(map[string]struct{})
	for _, e := range s.entries {
		if e.Expanded {
			expanded[e.Path] = struct{}{}
		}
	}

	s.entries = wrap(entries, expanded)
	if s.focus != s.root && s.indexOf(s.focus) < 0 {
		s.focus = s.root
		s.leaveSearch()
	}

	s.RebuildVisible()
	if s.mode == Search {
		s.backup = append(s.backup[:0], s.visible...)
		s.ApplyFilter()
	}

	switch {
	case selectedParent && s.focus != s.root && s.mode == Normal:
		s.Select(0)
	case selectedPath != "" && s.SelectPath(selectedPath):
	default:
		s.Select(0)
	}
}

func (s *State) indexOf(path string) int {
	for i := range s.entries {
		if s.entries[i].Path == path {
			return i
		}
	}
	return -1
}

// SelectPath selects the visible row showing path and reports whether it is visible.
func (s *State) SelectPath(path string) bool {
	for pos, idx := range s.visible {
		if idx != ParentRef && s.entries[idx].Path == path {
			s.selected = pos
			return true
		}
	}
	return false
}

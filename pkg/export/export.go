// Package export serializes a prepared tree as json, csv, xml or yaml.
package export

import (
	"encoding/csv"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/filetug/treetug/pkg/tree"
	"gopkg.in/yaml.v3"
)

var ErrUnknownFormat = errors.New("unknown export format")

type Format string

const (
	JSON Format = "json"
	CSV  Format = "csv"
	XML  Format = "xml"
	YAML Format = "yaml"
)

var Formats = []Format{JSON, CSV, XML, YAML}

// ParseFormat accepts a format name case-insensitively; "yml" is an alias of yaml.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case JSON, CSV, XML, YAML:
		return f, nil
	case "yml":
		return YAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

type Options struct {
	Permissions bool
}

// Node is one exported entry. DirCount and FileCount are only set for directories.
type Node struct {
	XMLName     xml.Name `json:"-" yaml:"-" xml:"node"`
	Name        string   `json:"name" yaml:"name" xml:"name"`
	Path        string   `json:"path" yaml:"path" xml:"path"`
	IsDir       bool     `json:"is_dir" yaml:"is_dir" xml:"is_dir"`
	Size        int64    `json:"size" yaml:"size" xml:"size"`
	DirCount    *int64   `json:"dir_count,omitempty" yaml:"dir_count,omitempty" xml:"dir_count,omitempty"`
	FileCount   *int64   `json:"file_count,omitempty" yaml:"file_count,omitempty" xml:"file_count,omitempty"`
	Permissions string   `json:"permissions,omitempty" yaml:"permissions,omitempty" xml:"permissions,omitempty"`
	Children    []*Node  `json:"children,omitempty" yaml:"children,omitempty" xml:"children>node,omitempty"`
}

// Write serializes t to w in the given format.
func Write(w io.Writer, t *tree.Tree, format Format, o Options) error {
	switch format {
	case CSV:
		return writeCSV(w, Flatten(t, o))
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(Nest(t, o))
	case XML:
		if _, err := io.WriteString(w, xml.Header); err != nil {
			return err
		}
		enc := xml.NewEncoder(w)
		enc.Indent("", "  ")
		if err := enc.Encode(Nest(t, o)); err != nil {
			return err
		}
		_, err := io.WriteString(w, "\n")
		return err
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(Nest(t, o)); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, string(format))
}

// Flatten returns one node per tree entry in list order, without children.
func Flatten(t *tree.Tree, o Options) []*Node {
	nodes := make([]*Node, 0, t.Len())
	for _, e := range t.Entries {
		nodes = append(nodes, newNode(t.Root.Path, e, o))
	}
	return nodes
}

// Nest returns the root node with every entry attached under its parent.
// Entries whose parent is not listed hang off the root.
func Nest(t *tree.Tree, o Options) *Node {
	root := newNode(t.Root.Path, t.Root, o)
	byPath := map[string]*Node{t.Root.Path: root}
	for _, e := range t.Entries {
		n := newNode(t.Root.Path, e, o)
		parent, ok := byPath[e.Parent()]
		if !ok {
			parent = root
		}
		parent.Children = append(parent.Children, n)
		if e.IsDir {
			byPath[e.Path] = n
		}
	}
	return root
}

func newNode(root string, e tree.Entry, o Options) *Node {
	n := &Node{
		Name:  e.Name(),
		Path:  displayPath(root, e.Path),
		IsDir: e.IsDir,
		Size:  e.Size,
	}
	if e.IsDir {
		dirs, files := e.Dirs, e.Files
		n.DirCount = &dirs
		n.FileCount = &files
	}
	if o.Permissions {
		n.Permissions = e.Permissions
	}
	return n
}

// displayPath renders p as "./<root name>/<path relative to root>".
func displayPath(root, p string) string {
	base := "./" + filepath.Base(root)
	if p == root {
		return base
	}
	rel, err := filepath.Rel(root, p)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(p)
	}
	return base + "/" + filepath.ToSlash(rel)
}

var csvHeader = []string{"path", "name", "is_dir", "size", "dir_count", "file_count", "permissions"}

func writeCSV(w io.Writer, nodes []*Node) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, n := range nodes {
		record := []string{
			n.Path,
			n.Name,
			strconv.FormatBool(n.IsDir),
			strconv.FormatInt(n.Size, 10),
			optional(n.DirCount),
			optional(n.FileCount),
			n.Permissions,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func optional(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}
